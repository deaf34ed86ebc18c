// Package bills lists the signed-in employee's bills.
package bills

import (
	"context"
	"log/slog"

	"github.com/a-h/templ"

	"github.com/angelofallars/billed/app/route"
	"github.com/angelofallars/billed/app/view"
	"github.com/angelofallars/billed/internal/bill"
	"github.com/angelofallars/billed/internal/store"
)

// Previewer displays the file behind a bill.
type Previewer interface {
	Show(fileURL string)
}

type Renderer interface {
	Render(name view.Name, props view.Props) templ.Component
}

// Container mediates between the bill list view, the store and the
// navigation capability for one view activation.
type Container struct {
	store     store.Store
	navigate  route.Navigate
	previewer Previewer
	renderer  Renderer
	log       *slog.Logger
}

// New returns a Container. store and previewer may be nil; the operations
// that need them then do nothing.
func New(s store.Store, navigate route.Navigate, previewer Previewer, renderer Renderer, log *slog.Logger) *Container {
	return &Container{
		store:     s,
		navigate:  navigate,
		previewer: previewer,
		renderer:  renderer,
		log:       log,
	}
}

// GetBills lists the bills with their display date and status label, in
// the order the store returned them. A bill whose date cannot be formatted
// keeps its stored date.
func (c *Container) GetBills(ctx context.Context) ([]bill.Displayed, error) {
	if c.store == nil {
		return []bill.Displayed{}, nil
	}

	bills, err := c.store.Bills().List(ctx)
	if err != nil {
		return nil, err
	}

	displayed := make([]bill.Displayed, 0, len(bills))
	for _, b := range bills {
		d, err := bill.Display(b)
		if err != nil {
			c.log.Error("failed to format bill", "error", err, "bill", b)
		}
		displayed = append(displayed, d)
	}

	return displayed, nil
}

// View renders the bill list newest first, or the error view when the
// store could not be read.
func (c *Container) View(ctx context.Context) templ.Component {
	bills, err := c.GetBills(ctx)
	if err != nil {
		c.log.Error("failed to list bills", "error", err, "status", store.StatusOf(err))
		return c.renderer.Render(view.Bills, view.Props{Error: store.Message(err)})
	}

	bill.SortDisplayedByDate(bills)

	return c.renderer.Render(view.Bills, view.Props{Data: bills})
}

func (c *Container) HandleClickNewBill() {
	c.navigate(route.NewBill)
}

// HandleClickIconEye previews the file of a bill. Bills without a file
// have nothing to show.
func (c *Container) HandleClickIconEye(fileURL string) {
	if fileURL == "" || c.previewer == nil {
		return
	}
	c.previewer.Show(fileURL)
}
