package bill

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ids(bills []Bill) []string {
	out := make([]string, 0, len(bills))
	for _, b := range bills {
		out = append(out, b.ID)
	}
	return out
}

// sortBills sorts bills the way the bill list does.
func sortBills(bills []Bill) {
	displayed := make([]Displayed, len(bills))
	for i, b := range bills {
		displayed[i] = Displayed{Bill: b}
	}
	SortDisplayedByDate(displayed)
	for i, d := range displayed {
		bills[i] = d.Bill
	}
}

func TestSortDisplayedByDate_NewestFirst(t *testing.T) {
	bills := []Bill{
		{ID: "b", Date: "2001-01-01"},
		{ID: "a", Date: "2004-04-04"},
		{ID: "d", Date: "2002-02-02"},
		{ID: "c", Date: "2003-03-03"},
	}

	sortBills(bills)

	assert.Equal(t, []string{"a", "c", "d", "b"}, ids(bills))
}

func TestSortDisplayedByDate_TiesAreStable(t *testing.T) {
	bills := []Bill{
		{ID: "first", Date: "2003-03-03"},
		{ID: "newest", Date: "2010-01-01"},
		{ID: "second", Date: "2003-03-03"},
		{ID: "third", Date: "2003-03-03"},
	}

	sortBills(bills)

	assert.Equal(t, []string{"newest", "first", "second", "third"}, ids(bills))
}

func TestSortDisplayedByDate_MalformedLast(t *testing.T) {
	bills := []Bill{
		{ID: "bad", Date: "corrupted_date"},
		{ID: "old", Date: "1999-01-01"},
		{ID: "new", Date: "2020-01-01"},
	}

	sortBills(bills)

	assert.Equal(t, []string{"new", "old", "bad"}, ids(bills))
}

func TestSortDisplayedByDate_UsesCanonicalDate(t *testing.T) {
	// Display strings sort the wrong way lexically ("4 Avr." < "9 Jan.").
	displayed := []Displayed{
		{Bill: Bill{ID: "jan", Date: "2004-01-09"}, Date: "9 Jan. 04"},
		{Bill: Bill{ID: "apr", Date: "2004-04-04"}, Date: "4 Avr. 04"},
	}

	SortDisplayedByDate(displayed)

	assert.Equal(t, "apr", displayed[0].Bill.ID)
	assert.Equal(t, "jan", displayed[1].Bill.ID)
}

func TestStatusValid(t *testing.T) {
	for _, s := range Statuses {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, Status("").Valid())
	assert.False(t, Status("archived").Valid())
}
