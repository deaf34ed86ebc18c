package bill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "april", in: "2004-04-04", want: "4 Avr. 04"},
		{name: "february keeps accent", in: "2021-02-15", want: "15 Fév. 21"},
		{name: "august", in: "2019-08-01", want: "1 Aoû. 19"},
		{name: "december", in: "2000-12-31", want: "31 Déc. 00"},
		{name: "rfc3339", in: "2003-03-03T10:00:00Z", want: "3 Mar. 03"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatDate(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatDate_Invalid(t *testing.T) {
	for _, in := range []string{"corrupted_date", "", "2004-13-01", "04/04/2004"} {
		_, err := FormatDate(in)
		assert.ErrorIs(t, err, ErrInvalidDate, in)
	}
}

func TestFormatStatus(t *testing.T) {
	assert.Equal(t, "En attente", FormatStatus(StatusPending))
	assert.Equal(t, "Accepté", FormatStatus(StatusAccepted))
	assert.Equal(t, "Refusé", FormatStatus(StatusRefused))
	assert.Equal(t, "archived", FormatStatus("archived"))
}

func TestDisplay_KeepsRawDateOnFailure(t *testing.T) {
	b := Bill{ID: "corrupted1", Date: "corrupted_date", Status: StatusPending}

	d, err := Display(b)

	assert.Error(t, err)
	assert.Equal(t, "corrupted_date", d.Date)
	assert.Equal(t, "En attente", d.Status)
	assert.Equal(t, "corrupted_date", d.Bill.Date)
}

func TestDisplay_DoesNotTouchCanonicalDate(t *testing.T) {
	b := Bill{ID: "a", Date: "2004-04-04", Status: StatusAccepted}

	d, err := Display(b)

	require.NoError(t, err)
	assert.Equal(t, "4 Avr. 04", d.Date)
	assert.Equal(t, "2004-04-04", d.Bill.Date)
	assert.Equal(t, "2004-04-04", b.Date)
}
