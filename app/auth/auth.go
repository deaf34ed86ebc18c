// Package auth attaches the session store to each request and guards
// handlers by the role of the signed-in user.
package auth

import (
	"context"
	"net/http"

	"github.com/angelofallars/billed/internal/session"
)

// Sessions binds a signed cookie store to every request.
func Sessions(signer *session.Signer, secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			store := session.NewCookieStore(signer, w, r, secure)
			next.ServeHTTP(w, WithStore(r, store))
		})
	}
}

// WithStore returns r carrying s as its session store.
func WithStore(r *http.Request, s session.Store) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), storeKey, s))
}

// Store returns the session store of the request. Without one, an empty
// store is returned and the request counts as signed out.
func Store(c context.Context) session.Store {
	s, ok := c.Value(storeKey).(session.Store)
	if !ok {
		return session.NewMemory()
	}
	return s
}

func Record(c context.Context) session.Record {
	return session.Load(Store(c))
}

// Token returns the remote store token saved at sign-in.
func Token(c context.Context) string {
	token, _ := Store(c).GetItem(session.TokenKey)
	return token
}

// RequireRole calls denied instead of f when the signed-in user does not
// have role.
func RequireRole(role session.Role, denied http.HandlerFunc) func(http.HandlerFunc) http.HandlerFunc {
	return func(f http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if Record(r.Context()).Role != role {
				denied(w, r)
				return
			}
			f(w, r)
		}
	}
}

// RequireSignedIn calls denied instead of f when nobody is signed in.
func RequireSignedIn(denied http.HandlerFunc) func(http.HandlerFunc) http.HandlerFunc {
	return func(f http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if !Record(r.Context()).Authenticated() {
				denied(w, r)
				return
			}
			f(w, r)
		}
	}
}

type key struct{}

var storeKey = key{}
