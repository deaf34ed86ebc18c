package bill

import "slices"

// CompareDatesDesc orders stored dates most recent first. Dates that cannot
// be parsed compare after every valid date and equal to each other.
func CompareDatesDesc(a, b string) int {
	ta, errA := ParseDate(a)
	tb, errB := ParseDate(b)

	switch {
	case errA != nil && errB != nil:
		return 0
	case errA != nil:
		return 1
	case errB != nil:
		return -1
	}

	return tb.Compare(ta)
}

// SortDisplayedByDate sorts bills newest first on the canonical date, not
// the display string. Bills sharing a date keep their relative order.
func SortDisplayedByDate(bills []Displayed) {
	slices.SortStableFunc(bills, func(a, b Displayed) int {
		return CompareDatesDesc(a.Bill.Date, b.Bill.Date)
	})
}
