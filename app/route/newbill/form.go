package newbill

import (
	"errors"
	"math"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/angelofallars/billed/internal/bill"
)

// DefaultPct is the VAT rate used when the form leaves it empty.
const DefaultPct = "20"

// Form is the submitted new bill form.
type Form struct {
	Type       string `form:"expense-type"`
	Name       string `form:"expense-name"`
	Date       string `form:"datepicker"`
	Amount     string `form:"amount"`
	VAT        string `form:"vat"`
	Pct        string `form:"pct"`
	Commentary string `form:"commentary"`

	// File carries the path some browsers send for the file input. The file
	// itself was uploaded on selection.
	File string `form:"file"`
}

// Form satisfies [render.Binder]
func (f *Form) Bind(r *http.Request) error {
	f.Amount = strings.TrimSpace(f.Amount)
	f.Pct = strings.TrimSpace(f.Pct)
	f.VAT = strings.TrimSpace(f.VAT)

	if !slices.Contains(bill.Types, bill.Type(f.Type)) {
		return errors.New("Type de dépense inconnu.")
	}

	if _, err := bill.ParseDate(f.Date); err != nil {
		return errors.New("La date est invalide.")
	}

	if !isNumber(f.Amount) {
		return errors.New("Le montant doit être un nombre.")
	}

	if f.Pct == "" {
		f.Pct = DefaultPct
	}
	if !isNumber(f.Pct) {
		return errors.New("Le pourcentage de TVA doit être un nombre.")
	}

	return nil
}

func isNumber(s string) bool {
	n, err := strconv.ParseFloat(s, 64)
	return err == nil && !math.IsNaN(n) && !math.IsInf(n, 0)
}

// Bill assembles the pending bill of a bound form for email. The file
// fields are left to the draft.
func (f Form) Bill(email string) bill.Bill {
	amount, _ := strconv.ParseFloat(f.Amount, 64)
	pct, _ := strconv.ParseFloat(f.Pct, 64)

	return bill.Bill{
		Email:      email,
		Type:       bill.Type(f.Type),
		Name:       f.Name,
		Amount:     amount,
		Date:       f.Date,
		VAT:        f.VAT,
		Pct:        pct,
		Commentary: f.Commentary,
		Status:     bill.StatusPending,
	}
}
