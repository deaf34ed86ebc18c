// Package route holds the paths of the views and the navigation
// capability that containers receive.
package route

import (
	"net/http"

	"github.com/angelofallars/htmx-go"

	"github.com/angelofallars/billed/app/event"
	"github.com/angelofallars/billed/internal/session"
)

// Path identifies a view in the router table.
type Path string

const (
	Login     Path = "/"
	Bills     Path = "/employee/bills"
	NewBill   Path = "/employee/bill/new"
	Dashboard Path = "/admin/dashboard"
)

func (p Path) String() string { return string(p) }

// Navigate activates the view at a path. A Navigate value is bound to one
// request and activates at most one view; later calls do nothing.
type Navigate func(Path)

// Navigator hands out the Navigate capability for a request.
type Navigator interface {
	For(w http.ResponseWriter, r *http.Request) Navigate
}

// ShowError leaves the page untouched and sends message to the error
// banner of the current view.
func ShowError(w http.ResponseWriter, code int, err error) {
	_ = htmx.NewResponse().
		StatusCode(code).
		Reswap(htmx.SwapNone).
		AddTrigger(event.TriggerSetErrMessage(err.Error())).
		Write(w)
}

// NoContent answers an htmx request without swapping anything.
func NoContent(w http.ResponseWriter) {
	_ = htmx.NewResponse().
		Reswap(htmx.SwapNone).
		Write(w)
}

// Home is the view a signed-in user lands on.
func Home(role session.Role) Path {
	switch role {
	case session.RoleEmployee:
		return Bills
	case session.RoleAdmin:
		return Dashboard
	default:
		return Login
	}
}
