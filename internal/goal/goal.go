// Package goal derives display state for savings/debt goals: percent
// complete, remaining amount, calendar-aware days remaining and completion
// classification. Progress is user-maintained on the backend; nothing here is
// recomputed from the ledger.
package goal

import (
	"fmt"
	"math"
	"time"

	"financas/internal/core"
)

// Labels for the days-remaining readout.
const (
	LabelExpired = "Expired"
	LabelToday   = "Today"
)

// Completion messages.
const (
	CompletedFully     = "Completed Successfully"
	completedPartlyFmt = "Partially Completed: %d%%"
)

// Progress is the derived display state of one goal.
type Progress struct {
	Remaining core.Money
	// Percent is the true, unclamped completion percentage; textual readouts
	// show this value.
	Percent float64
	// BarPercent is Percent clamped to [0, 100] for bar widths and the label
	// inside the bar.
	BarPercent float64
}

// Deadline is the calendar distance to a goal's due date.
type Deadline struct {
	Days    int // negative when past due
	Expired bool
	Today   bool
}

// Measure computes remaining amount and completion percentages.
// A zero target degrades to 0% rather than dividing by zero.
func Measure(g core.Goal) Progress {
	var p Progress
	remaining := g.TargetAmount.Sub(g.AchievedAmount)
	if remaining.IsNegative() {
		remaining = core.Money{}
	}
	p.Remaining = remaining
	if g.TargetAmount.Cents > 0 {
		p.Percent = float64(g.AchievedAmount.Cents) / float64(g.TargetAmount.Cents) * 100
	}
	p.BarPercent = math.Min(100, math.Max(0, p.Percent))
	return p
}

// DaysRemaining compares calendar dates, not timestamps. Both sides are
// normalized to midnight before subtracting so DST shifts and UTC-parsing
// artifacts cannot produce off-by-one results.
func DaysRemaining(due core.Date, today time.Time) Deadline {
	d0 := core.Truncate(today)
	d1 := core.NewDate(due.Year(), due.Month(), due.Day())
	days := int(d1.Sub(d0.Time).Hours() / 24)
	return Deadline{
		Days:    days,
		Expired: days < 0,
		Today:   days == 0,
	}
}

// Label renders the deadline the way goal cards show it.
func (d Deadline) Label() string {
	switch {
	case d.Expired:
		return LabelExpired
	case d.Today:
		return LabelToday
	case d.Days == 1:
		return "1 day"
	default:
		return fmt.Sprintf("%d days", d.Days)
	}
}

// CompletionStatus classifies a finished goal. Unfinished goals return
// ok=false and show nothing, which is distinct from having failed.
func CompletionStatus(g core.Goal) (string, bool) {
	if !g.Completed {
		return "", false
	}
	if g.AchievedAmount.Cents >= g.TargetAmount.Cents {
		return CompletedFully, true
	}
	pct := Measure(g).Percent
	return fmt.Sprintf(completedPartlyFmt, int(math.Round(pct))), true
}
