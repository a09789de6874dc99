package alerts

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dhvll/status/internal/outage"
)

// startTimeLayout renders outage start times for humans. Times are shown
// in the process's local zone.
const startTimeLayout = "Mon, 02 Jan 2006 15:04:05 MST"

// FormatDuration renders an outage duration for the alert message:
// "{m}min" under an hour, "{h}hr {mm}min" from one hour up, with the
// minute part zero-padded. Minutes are rounded to the nearest whole
// minute, so 125s renders as "2min" and 61min as "1hr 01min".
func FormatDuration(d time.Duration) string {
	minutes := int(math.Round(d.Minutes()))
	if minutes >= 60 {
		return fmt.Sprintf("%dhr %02dmin", minutes/60, minutes%60)
	}
	return fmt.Sprintf("%dmin", minutes)
}

// formatMessage renders the human-readable alert body: a header naming
// the number of affected services, then one block per outage.
func formatMessage(outages []outage.Outage) string {
	var b strings.Builder

	noun := "services"
	if len(outages) == 1 {
		noun = "service"
	}
	fmt.Fprintf(&b, "%d %s down:\n", len(outages), noun)

	for _, o := range outages {
		fmt.Fprintf(&b, "\n%s: down for %s (since %s)\n%s\n",
			o.Service,
			FormatDuration(o.Duration),
			o.StartTime.Local().Format(startTimeLayout),
			o.Error,
		)
	}
	return b.String()
}
