package newbill

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelofallars/billed/internal/bill"
)

func TestForm_Bind(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)

	tests := []struct {
		name    string
		edit    func(f *Form)
		wantErr string
	}{
		{name: "filled", edit: func(f *Form) {}},
		{name: "empty pct", edit: func(f *Form) { f.Pct = "" }},
		{name: "amount not a number", edit: func(f *Form) { f.Amount = "douze" }, wantErr: "montant"},
		{name: "amount NaN", edit: func(f *Form) { f.Amount = "NaN" }, wantErr: "montant"},
		{name: "pct not a number", edit: func(f *Form) { f.Pct = "vingt" }, wantErr: "pourcentage"},
		{name: "bad date", edit: func(f *Form) { f.Date = "hier" }, wantErr: "date"},
		{name: "unknown type", edit: func(f *Form) { f.Type = "Casino" }, wantErr: "Type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := filledForm()
			tt.edit(&f)

			err := f.Bind(req)

			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestForm_Bill(t *testing.T) {
	f := filledForm()
	f.Pct = ""
	require.NoError(t, f.Bind(httptest.NewRequest(http.MethodPost, "/", nil)))

	b := f.Bill("a@a")

	assert.Equal(t, bill.Bill{
		Email:      "a@a",
		Type:       bill.TypeTransports,
		Name:       "Vol Paris Londres",
		Amount:     348,
		Date:       "2022-02-02",
		VAT:        "70",
		Pct:        20,
		Commentary: "séminaire",
		Status:     bill.StatusPending,
	}, b)
}
