package report

import (
	"fmt"
	"regexp"
	"time"
)

// The bulletin header carries a trade date like "Fri, Jan 16, 2026".
// Weekend abbreviations are deliberately absent; the bulletin is only
// published for trading days.
var datePattern = regexp.MustCompile(`(Mon|Tue|Wed|Thu|Fri),\s+(\w+)\s+(\d+),\s+(\d{4})`)

var monthNumbers = map[string]string{
	"Jan": "01", "Feb": "02", "Mar": "03", "Apr": "04",
	"May": "05", "Jun": "06", "Jul": "07", "Aug": "08",
	"Sep": "09", "Oct": "10", "Nov": "11", "Dec": "12",
}

// ResolveDate finds the report date in the first-page text and returns
// it as YYYY-MM-DD. When no date is found the current date is used and
// the second return value is false. A month abbreviation outside the
// known set falls back to January rather than failing the pass.
func ResolveDate(text string, now time.Time) (string, bool) {
	m := datePattern.FindStringSubmatch(text)
	if m == nil {
		return now.Format("2006-01-02"), false
	}

	month, ok := monthNumbers[m[2]]
	if !ok {
		month = "01"
	}
	day := m[3]
	if len(day) < 2 {
		day = "0" + day
	}

	return fmt.Sprintf("%s-%s-%s", m[4], month, day), true
}
