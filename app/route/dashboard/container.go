// Package dashboard is the administrators' view: every bill grouped by
// status, with the accept and refuse decisions.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/angelofallars/billed/app/route"
	"github.com/angelofallars/billed/app/route/bills"
	"github.com/angelofallars/billed/app/view"
	"github.com/angelofallars/billed/internal/bill"
	"github.com/angelofallars/billed/internal/store"
)

var ErrInvalidDecision = errors.New("Une note de frais ne peut être qu'acceptée ou refusée.")

type Container struct {
	store    store.Store
	navigate route.Navigate
	renderer bills.Renderer
	log      *slog.Logger
}

func New(s store.Store, navigate route.Navigate, renderer bills.Renderer, log *slog.Logger) *Container {
	return &Container{
		store:    s,
		navigate: navigate,
		renderer: renderer,
		log:      log,
	}
}

// Groups splits bills by status, pending first, each group newest first.
func Groups(displayed []bill.Displayed) []view.Group {
	groups := make([]view.Group, 0, len(bill.Statuses))
	for _, status := range bill.Statuses {
		g := view.Group{Status: status, Label: bill.FormatStatus(status), Bills: []bill.Displayed{}}
		for _, d := range displayed {
			if d.Bill.Status == status {
				g.Bills = append(g.Bills, d)
			}
		}
		bill.SortDisplayedByDate(g.Bills)
		groups = append(groups, g)
	}
	return groups
}

func (c *Container) View(ctx context.Context) templ.Component {
	displayed, err := bills.New(c.store, c.navigate, nil, c.renderer, c.log).GetBills(ctx)
	if err != nil {
		c.log.Error("failed to list bills", "error", err, "status", store.StatusOf(err))
		return c.renderer.Render(view.Dashboard, view.Props{Error: store.Message(err)})
	}

	return c.renderer.Render(view.Dashboard, view.Props{Groups: Groups(displayed)})
}

// Decide records the administrator's decision on bill id, then reloads the
// dashboard.
func (c *Container) Decide(ctx context.Context, id string, status bill.Status, commentAdmin string) error {
	if c.store == nil {
		return nil
	}
	if !status.Valid() || status == bill.StatusPending {
		return ErrInvalidDecision
	}

	list, err := c.store.Bills().List(ctx)
	if err != nil {
		return err
	}

	var target *bill.Bill
	for i := range list {
		if list[i].ID == id {
			target = &list[i]
			break
		}
	}
	if target == nil {
		return store.NewError(http.StatusNotFound, fmt.Errorf("%w: %s", store.ErrNotFound, id))
	}

	target.Status = status
	target.CommentAdmin = commentAdmin

	if _, err := c.store.Bills().Update(context.WithoutCancel(ctx), id, *target); err != nil {
		c.log.Error("failed to update bill", "error", err, "key", id, "status", store.StatusOf(err))
		return err
	}

	c.navigate(route.Dashboard)
	return nil
}
