package report

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// The CALLS and PUTS sections each close with a "Totals <volume>
	// <open_interest>" summary row.
	swapsMarker = "Totals"
	// The report also carries a "Totals by Products" breakdown whose
	// rows must not be counted a second time.
	swapsExcludeMarker = "by Products"
)

// SwapsVolume sums the volume figure from each section summary row of
// the swap-based report, skipping the per-product breakdown rows. Rows
// whose second field is not a number are skipped. A report with no
// matching rows yields zero.
func SwapsVolume(pages []string) int64 {
	var total int64
	for _, page := range pages {
		for _, line := range strings.Split(page, "\n") {
			if !strings.HasPrefix(strings.TrimSpace(line), swapsMarker) {
				continue
			}
			if strings.Contains(line, swapsExcludeMarker) {
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
			zap.L().Debug("swaps subtotal found", zap.Int64("volume", n))
		}
	}
	return total
}
