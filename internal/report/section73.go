package report

import "strings"

// Grand-total rows in the Section 73 report start with TOTAL after the
// layout indentation. The row reads "TOTAL <volume> <open_interest>".
const section73Marker = "TOTAL"

// Section73Volume sums the volume figure from every TOTAL row across the
// given page texts. Rows whose second field is not a number are skipped,
// so column headings like "TOTAL VOLUME" contribute nothing. A report
// with no matching rows yields zero.
func Section73Volume(pages []string) int64 {
	var total int64
	for _, page := range pages {
		for _, line := range strings.Split(page, "\n") {
			if !strings.HasPrefix(strings.TrimSpace(line), section73Marker) {
				continue
			}
			parts := strings.Fields(line)
			if len(parts) < 2 {
				continue
			}
			n, err := ParseFigure(parts[1])
			if err != nil {
				continue
			}
			total += n
		}
	}
	return total
}
