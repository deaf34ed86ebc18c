package dashboard

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/angelofallars/billed/app/auth"
	"github.com/angelofallars/billed/app/route"
	"github.com/angelofallars/billed/app/route/bills"
	"github.com/angelofallars/billed/internal/bill"
	"github.com/angelofallars/billed/internal/session"
	"github.com/angelofallars/billed/internal/store"
)

type HandlerGroup struct {
	store     store.Store
	renderer  bills.Renderer
	navigator route.Navigator
	log       *slog.Logger
}

func NewHandlerGroup(s store.Store, renderer bills.Renderer, navigator route.Navigator, log *slog.Logger) *HandlerGroup {
	return &HandlerGroup{
		store:     s,
		renderer:  renderer,
		navigator: navigator,
		log:       log,
	}
}

func (hg *HandlerGroup) Mount(r chi.Router) {
	requireAdmin := auth.RequireRole(session.RoleAdmin, hg.denied)

	r.Post("/admin/dashboard/bills/{id}", requireAdmin(hg.handleDecide))
}

func (hg *HandlerGroup) Activate(r *http.Request, navigate route.Navigate) templ.Component {
	return New(hg.store, navigate, hg.renderer, hg.log).View(r.Context())
}

type DecisionForm struct {
	Status       bill.Status `form:"status"`
	CommentAdmin string      `form:"commentAdmin"`
}

// DecisionForm satisfies [render.Binder]
func (f *DecisionForm) Bind(r *http.Request) error {
	if !f.Status.Valid() || f.Status == bill.StatusPending {
		return ErrInvalidDecision
	}
	return nil
}

func (hg *HandlerGroup) handleDecide(w http.ResponseWriter, r *http.Request) {
	form := &DecisionForm{}
	if err := render.Bind(r, form); err != nil {
		route.ShowError(w, http.StatusBadRequest, err)
		return
	}

	navigated := false
	navigate := hg.navigator.For(w, r)

	err := New(hg.store, func(p route.Path) {
		navigated = true
		navigate(p)
	}, hg.renderer, hg.log).Decide(r.Context(), chi.URLParam(r, "id"), form.Status, form.CommentAdmin)
	switch {
	case errors.Is(err, ErrInvalidDecision):
		route.ShowError(w, http.StatusBadRequest, err)
	case err != nil:
		route.ShowError(w, store.StatusOf(err), errors.New(store.Message(err)))
	case !navigated:
		route.NoContent(w)
	}
}

func (hg *HandlerGroup) denied(w http.ResponseWriter, r *http.Request) {
	hg.navigator.For(w, r)(route.Login)
}
