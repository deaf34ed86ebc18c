package bills

import (
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/angelofallars/billed/app/auth"
	"github.com/angelofallars/billed/app/route"
	"github.com/angelofallars/billed/app/view"
	"github.com/angelofallars/billed/internal/session"
	"github.com/angelofallars/billed/internal/store"
)

// PageRenderer renders the bill list and the preview modal.
type PageRenderer interface {
	Renderer
	Modal(fileURL string) templ.Component
}

type HandlerGroup struct {
	store     store.Store
	renderer  PageRenderer
	navigator route.Navigator
	log       *slog.Logger
}

func NewHandlerGroup(s store.Store, renderer PageRenderer, navigator route.Navigator, log *slog.Logger) *HandlerGroup {
	return &HandlerGroup{
		store:     s,
		renderer:  renderer,
		navigator: navigator,
		log:       log,
	}
}

func (hg *HandlerGroup) Mount(r chi.Router) {
	requireEmployee := auth.RequireRole(session.RoleEmployee, hg.denied)
	requireSignedIn := auth.RequireSignedIn(hg.denied)

	r.Post("/employee/bills/new-bill", requireEmployee(hg.handleClickNewBill))
	r.Get("/bills/preview", requireSignedIn(hg.handleClickIconEye))
}

// Activate builds the bill list for a navigation to the bills view.
func (hg *HandlerGroup) Activate(r *http.Request, navigate route.Navigate) templ.Component {
	return New(hg.store, navigate, nil, hg.renderer, hg.log).View(r.Context())
}

func (hg *HandlerGroup) handleClickNewBill(w http.ResponseWriter, r *http.Request) {
	New(hg.store, hg.navigator.For(w, r), nil, hg.renderer, hg.log).HandleClickNewBill()
}

func (hg *HandlerGroup) handleClickIconEye(w http.ResponseWriter, r *http.Request) {
	previewer := route.NewModalPreviewer(w, r, hg.renderer.Modal)

	New(hg.store, hg.navigator.For(w, r), previewer, hg.renderer, hg.log).
		HandleClickIconEye(r.URL.Query().Get("url"))

	if !previewer.Shown() {
		route.NoContent(w)
	}
}

func (hg *HandlerGroup) denied(w http.ResponseWriter, r *http.Request) {
	hg.navigator.For(w, r)(route.Login)
}

var _ PageRenderer = (*view.Renderer)(nil)
