package login

import (
	"errors"
	"net/http"

	"github.com/a-h/templ"
	"github.com/angelofallars/htmx-go"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/angelofallars/billed/app/auth"
	"github.com/angelofallars/billed/app/route"
	"github.com/angelofallars/billed/app/view"
	"github.com/angelofallars/billed/internal/session"
	"github.com/angelofallars/billed/internal/store"
)

type Renderer interface {
	Render(name view.Name, props view.Props) templ.Component
	Page(title string, content templ.Component) templ.Component
}

type HandlerGroup struct {
	store     store.Store
	renderer  Renderer
	navigator route.Navigator
}

func NewHandlerGroup(s store.Store, renderer Renderer, navigator route.Navigator) *HandlerGroup {
	return &HandlerGroup{store: s, renderer: renderer, navigator: navigator}
}

func (hg *HandlerGroup) Mount(r chi.Router) {
	r.Post("/login/employee", hg.handleLogin(session.RoleEmployee))
	r.Post("/login/admin", hg.handleLogin(session.RoleAdmin))
	r.Post("/logout", hg.handleLogout)
}

func (hg *HandlerGroup) Activate(r *http.Request, navigate route.Navigate) templ.Component {
	return hg.renderer.Render(view.Login, view.Props{})
}

func (hg *HandlerGroup) handleLogin(role session.Role) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form := &Form{}
		if err := render.Bind(r, form); err != nil {
			hg.showLoginError(w, r, http.StatusBadRequest, err.Error())
			return
		}

		c := New(hg.store, hg.navigator.For(w, r), auth.Store(r.Context()))
		if err := c.Login(r.Context(), role, form.Email, form.Password); err != nil {
			if errors.Is(err, ErrInvalidCredentials) {
				hg.showLoginError(w, r, http.StatusUnauthorized, ErrInvalidCredentials.Error())
				return
			}
			hg.showLoginError(w, r, store.StatusOf(err), store.Message(err))
		}
	}
}

func (hg *HandlerGroup) handleLogout(w http.ResponseWriter, r *http.Request) {
	New(hg.store, hg.navigator.For(w, r), auth.Store(r.Context())).Logout()
}

// showLoginError renders the sign-in forms again with message above them.
func (hg *HandlerGroup) showLoginError(w http.ResponseWriter, r *http.Request, code int, message string) {
	content := hg.renderer.Render(view.Login, view.Props{FormError: message})

	if !htmx.IsHTMX(r) {
		templ.Handler(hg.renderer.Page("Billed", content), templ.WithStatus(code)).ServeHTTP(w, r)
		return
	}

	// htmx only swaps successful responses.
	_ = htmx.NewResponse().
		Retarget("#root").
		Reswap(htmx.SwapInnerHTML).
		RenderTempl(r.Context(), w, content)
}
