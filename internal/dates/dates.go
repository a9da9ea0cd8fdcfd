// Package dates produces the selectable day options offered by the date
// dropdown and the "move to" menu: the next seven days starting today,
// with Today/Tomorrow labels.
package dates

import (
	"time"

	dom "github.com/Ting-WeiTimHsu/DailyTaskManagement/internal/domain"
)

// Option is one selectable day.
type Option struct {
	Date    string `json:"date"`    // "2006-01-02"
	Display string `json:"display"` // "Today - Aug 28"
}

// Today returns the current calendar day in UTC.
func Today() string {
	return time.Now().UTC().Format(dom.DateLayout)
}

// Upcoming returns n day options starting at now's day.
func Upcoming(n int, now time.Time) []Option {
	day := now.Truncate(24 * time.Hour)
	out := make([]Option, 0, n)
	for i := 0; i < n; i++ {
		d := day.AddDate(0, 0, i)
		out = append(out, Option{
			Date:    d.Format(dom.DateLayout),
			Display: label(d, day),
		})
	}
	return out
}

func label(d, today time.Time) string {
	switch d.Format(dom.DateLayout) {
	case today.Format(dom.DateLayout):
		return "Today - " + d.Format("Jan 2")
	case today.AddDate(0, 0, 1).Format(dom.DateLayout):
		return "Tomorrow - " + d.Format("Jan 2")
	default:
		return d.Format("Monday, Jan 2")
	}
}
