package schedule

import (
	"time"
)

const (
	DateLayout = "2006-01-02"
	SlotLayout = "15:04"

	// The salon is closed on Sundays.
	ClosedWeekday = time.Sunday

	slotStep = 30 * time.Minute
)

// dailyTemplate is the fixed slot list every open day offers: two
// business periods, morning and afternoon, in 30-minute steps.
var dailyTemplate = buildTemplate()

func buildTemplate() []string {
	var slots []string
	appendRange := func(from, to string) {
		start, _ := time.Parse(SlotLayout, from)
		end, _ := time.Parse(SlotLayout, to)
		for t := start; !t.After(end); t = t.Add(slotStep) {
			slots = append(slots, t.Format(SlotLayout))
		}
	}
	appendRange("09:00", "11:30")
	appendRange("14:00", "17:30")
	return slots
}

// Catalog derives the bookable slots for a calendar date. It is pure:
// given the same date and clock it always returns the same list.
type Catalog struct {
	Now func() time.Time
}

func NewCatalog() *Catalog {
	return &Catalog{Now: time.Now}
}

// SlotsFor returns the ordered slot list for date ("2006-01-02").
// Closed days, past days and unparseable dates yield an empty list.
func (c *Catalog) SlotsFor(date string) []string {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return []string{}
	}
	if d.Weekday() == ClosedWeekday {
		return []string{}
	}

	now := c.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if d.Before(today) {
		return []string{}
	}

	out := make([]string, len(dailyTemplate))
	copy(out, dailyTemplate)
	return out
}

// ContainsSlot reports whether slot is bookable on date.
func (c *Catalog) ContainsSlot(date, slot string) bool {
	for _, s := range c.SlotsFor(date) {
		if s == slot {
			return true
		}
	}
	return false
}

// NormalizeDate parses a calendar date and returns it in canonical
// "2006-01-02" form.
func NormalizeDate(raw string) (string, error) {
	d, err := time.Parse(DateLayout, raw)
	if err != nil {
		return "", err
	}
	return d.Format(DateLayout), nil
}

// NormalizeSlot collapses time-of-day spellings ("9:00", "09:00:00")
// to the canonical "15:04" form. Stored slots always pass through this
// so availability lookups never depend on caller formatting.
func NormalizeSlot(raw string) (string, error) {
	var t time.Time
	var err error
	for _, layout := range []string{SlotLayout, "15:04:05"} {
		t, err = time.Parse(layout, raw)
		if err == nil {
			return t.Format(SlotLayout), nil
		}
	}
	return "", err
}
