package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/angelofallars/billed/app/auth"
	"github.com/angelofallars/billed/app/route/bills"
	"github.com/angelofallars/billed/app/route/dashboard"
	"github.com/angelofallars/billed/app/route/login"
	"github.com/angelofallars/billed/app/route/newbill"
	"github.com/angelofallars/billed/app/view"
	"github.com/angelofallars/billed/pkg/billedapi"
)

func (a *App) RegisterRoutes() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)

	a.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("app/static/"))))
	if a.metrics != nil {
		a.router.Handle("/metrics", a.metrics.Handler())
	}
	if a.filesDir != "" {
		a.router.Handle("/files/*", http.StripPrefix("/files/", http.FileServer(http.Dir(a.filesDir))))
	}

	a.router.Group(func(r chi.Router) {
		r.Use(auth.Sessions(a.signer, a.secureCookies))
		r.Use(storeToken)

		router := NewRouter(a.renderer, a.metrics, a.slog)

		billsGroup := bills.NewHandlerGroup(a.store, a.renderer, router, a.slog)
		newBillGroup := newbill.NewHandlerGroup(a.store, a.drafts, a.renderer, router, a.slog, a.uploadMaxBytes)
		dashboardGroup := dashboard.NewHandlerGroup(a.store, a.renderer, router, a.slog)
		loginGroup := login.NewHandlerGroup(a.store, a.renderer, router)

		router.Register(view.Login, loginGroup)
		router.Register(view.Bills, billsGroup)
		router.Register(view.NewBill, newBillGroup)
		router.Register(view.Dashboard, dashboardGroup)

		billsGroup.Mount(r)
		newBillGroup.Mount(r)
		dashboardGroup.Mount(r)
		loginGroup.Mount(r)
		router.Mount(r)
	})
}

// storeToken passes the token saved at sign-in on to the API store.
func storeToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token := auth.Token(r.Context()); token != "" {
			r = r.WithContext(billedapi.WithToken(r.Context(), token))
		}
		next.ServeHTTP(w, r)
	})
}
