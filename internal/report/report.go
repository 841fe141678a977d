// Package report parses volume figures and report dates out of the text
// of the CME daily bulletin event contracts reports.
package report

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// ParseFigure parses a comma-grouped integer such as "735,540".
func ParseFigure(s string) (int64, error) {
	n, err := strconv.ParseInt(strings.ReplaceAll(s, ",", ""), 10, 64)
	if err != nil {
		return 0, eris.Wrapf(err, "report: parse figure %q", s)
	}
	return n, nil
}
