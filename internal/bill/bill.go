package bill

type Bill struct {
	ID           string  `json:"id,omitempty" firestore:"-"`
	Email        string  `json:"email" firestore:"email"`
	Type         Type    `json:"type" firestore:"type"`
	Name         string  `json:"name" firestore:"name"`
	Amount       float64 `json:"amount" firestore:"amount"`
	Date         string  `json:"date" firestore:"date"`
	VAT          string  `json:"vat" firestore:"vat"`
	Pct          float64 `json:"pct" firestore:"pct"`
	Commentary   string  `json:"commentary,omitempty" firestore:"commentary"`
	FileURL      *string `json:"fileUrl" firestore:"fileUrl"`
	FileName     *string `json:"fileName" firestore:"fileName"`
	Status       Status  `json:"status" firestore:"status"`
	CommentAdmin string  `json:"commentAdmin,omitempty" firestore:"commentAdmin"`
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRefused  Status = "refused"
)

var Statuses = []Status{StatusPending, StatusAccepted, StatusRefused}

// Valid reports whether s is one of Statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRefused:
		return true
	}
	return false
}

type Type string

const (
	TypeTransports  Type = "Transports"
	TypeRestaurants Type = "Restaurants et bars"
	TypeHotel       Type = "Hôtel et logement"
	TypeOnline      Type = "Services en ligne"
	TypeIT          Type = "IT et électronique"
	TypeEquipment   Type = "Equipement et matériel"
	TypeOffice      Type = "Fournitures de bureau"
)

// Types lists the expense categories in the order the creation form offers them.
var Types = []Type{
	TypeTransports,
	TypeRestaurants,
	TypeHotel,
	TypeOnline,
	TypeIT,
	TypeEquipment,
	TypeOffice,
}

// Displayed is a bill as handed to the renderer. Date holds the formatted
// date, or the stored date verbatim when it could not be parsed.
type Displayed struct {
	Bill   Bill
	Date   string
	Status string
}

// Display derives the presentation values of b. On a date parsing failure
// the returned Displayed still carries the raw date and the status label,
// alongside the error.
func Display(b Bill) (Displayed, error) {
	d := Displayed{
		Bill:   b,
		Date:   b.Date,
		Status: FormatStatus(b.Status),
	}

	formatted, err := FormatDate(b.Date)
	if err != nil {
		return d, err
	}
	d.Date = formatted

	return d, nil
}
