package app

import (
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/a-h/templ"
	"github.com/angelofallars/htmx-go"
	"github.com/go-chi/chi/v5"

	"github.com/angelofallars/billed/app/auth"
	"github.com/angelofallars/billed/app/route"
	"github.com/angelofallars/billed/app/view"
	"github.com/angelofallars/billed/internal/metrics"
	"github.com/angelofallars/billed/internal/session"
)

const title = "Billed"

type viewEntry struct {
	path route.Path
	view view.Name
	role session.Role
	icon view.Icon
}

var views = []viewEntry{
	{path: route.Login, view: view.Login},
	{path: route.Bills, view: view.Bills, role: session.RoleEmployee, icon: view.IconWindow},
	{path: route.NewBill, view: view.NewBill, role: session.RoleEmployee, icon: view.IconMail},
	{path: route.Dashboard, view: view.Dashboard, role: session.RoleAdmin},
}

func lookup(path route.Path) (viewEntry, bool) {
	for _, e := range views {
		if e.path == path {
			return e, true
		}
	}
	return viewEntry{}, false
}

// Resolve picks the view shown for a request of path by rec's holder.
// Unknown paths resolve to the not found view, and views needing a role
// rec lacks resolve to the login view.
func Resolve(rec session.Record, path route.Path) (route.Path, view.Name) {
	e, ok := lookup(path)
	if !ok {
		return path, view.NotFound
	}
	if e.role != session.RoleNone && rec.Role != e.role {
		return route.Login, view.Login
	}
	return e.path, e.view
}

// Activator builds the content of a view on activation. Calling navigate
// from Activate is a no-op, the request already has its view.
type Activator interface {
	Activate(r *http.Request, navigate route.Navigate) templ.Component
}

// Router activates views into #root. It hands every handler the
// navigation capability for its request.
type Router struct {
	renderer   *view.Renderer
	metrics    *metrics.Metrics
	log        *slog.Logger
	activators map[view.Name]Activator
}

var _ route.Navigator = (*Router)(nil)

func NewRouter(renderer *view.Renderer, m *metrics.Metrics, log *slog.Logger) *Router {
	return &Router{
		renderer:   renderer,
		metrics:    m,
		log:        log,
		activators: map[view.Name]Activator{},
	}
}

func (rt *Router) Register(name view.Name, a Activator) {
	rt.activators[name] = a
}

// For returns the navigation capability of one request. Only its first
// call activates a view; later calls, including ones made while that view
// is being built, are ignored.
func (rt *Router) For(w http.ResponseWriter, r *http.Request) route.Navigate {
	var (
		activated atomic.Bool
		navigate  route.Navigate
	)
	navigate = func(path route.Path) {
		if !activated.CompareAndSwap(false, true) {
			rt.log.Debug("navigation ignored, view already activated", "path", path)
			return
		}
		rt.activate(w, r, path, navigate)
	}
	return navigate
}

func (rt *Router) activate(w http.ResponseWriter, r *http.Request, path route.Path, navigate route.Navigate) {
	rec := auth.Record(r.Context())
	resolved, name := Resolve(rec, path)

	var content templ.Component
	if a, ok := rt.activators[name]; ok {
		content = a.Activate(r, navigate)
	} else {
		content = rt.renderer.Render(name, view.Props{})
	}

	if e, ok := lookup(resolved); ok && e.role != session.RoleNone {
		content = rt.renderer.Layout(e.icon, rec.Email, rec.Role == session.RoleAdmin, content)
	}

	rt.metrics.ObserveActivation(string(name))
	rt.log.Debug("view activated", "path", path, "resolved", resolved, "view", name)

	if htmx.IsHTMX(r) {
		err := htmx.NewResponse().
			Retarget("#root").
			Reswap(htmx.SwapInnerHTML).
			PushURL(string(resolved)).
			RenderTempl(r.Context(), w, content)
		if err != nil {
			rt.log.Error("failed to render view", "error", err, "view", name)
		}
		return
	}

	if r.Method != http.MethodGet || route.Path(r.URL.Path) != resolved {
		http.Redirect(w, r, string(resolved), http.StatusSeeOther)
		return
	}

	status := http.StatusOK
	if name == view.NotFound {
		status = http.StatusNotFound
	}
	templ.Handler(rt.renderer.Page(title, content), templ.WithStatus(status)).ServeHTTP(w, r)
}

func (rt *Router) Mount(r chi.Router) {
	r.Get(string(route.Login), rt.handleStart)
	for _, e := range views[1:] {
		r.Get(string(e.path), rt.handleView(e.path))
	}
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		rt.For(w, r)(route.Path(r.URL.Path))
	})
}

// handleStart continues a previous session on the role's home view.
func (rt *Router) handleStart(w http.ResponseWriter, r *http.Request) {
	rt.For(w, r)(route.Home(auth.Record(r.Context()).Role))
}

func (rt *Router) handleView(path route.Path) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rt.For(w, r)(path)
	}
}
