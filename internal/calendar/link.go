// Package calendar builds Google Calendar reminder links for deposit
// maturities. Pure string construction, no network calls.
package calendar

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/dlow/fd-tracker/internal/domain"
)

// MaturityLink returns a Google Calendar "render" URL that creates an
// all-day event on the deposit's maturity date. Google wants YYYYMMDD date
// pairs for all-day events, with start and end on the same day.
func MaturityLink(d domain.Deposit) string {
	dateStr := strings.ReplaceAll(d.MaturityDate, "-", "")
	dates := fmt.Sprintf("%s/%s", dateStr, dateStr)

	title := fmt.Sprintf("FD Maturity: %s", d.BankName)
	details := fmt.Sprintf(
		"Your fixed deposit at %s matures today.\n\nPrincipal: RM %.2f\n\nLog in to FD Tracker to update it.",
		d.BankName, d.Principal,
	)

	q := url.Values{}
	q.Set("action", "TEMPLATE")
	q.Set("text", title)
	q.Set("dates", dates)
	q.Set("details", details)
	q.Set("sf", "true")
	q.Set("output", "xml")

	return "https://calendar.google.com/calendar/render?" + q.Encode()
}
