package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelofallars/billed/internal/session"
)

func signedIn(t *testing.T, r *http.Request, rec session.Record) *http.Request {
	t.Helper()

	store := session.NewMemory()
	require.NoError(t, session.Save(store, rec))
	return WithStore(r, store)
}

func TestRequireRole(t *testing.T) {
	guard := RequireRole(session.RoleEmployee, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	h := guard(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name string
		req  func() *http.Request
		want int
	}{
		{
			name: "no session",
			req:  func() *http.Request { return httptest.NewRequest(http.MethodGet, "/", nil) },
			want: http.StatusUnauthorized,
		},
		{
			name: "employee",
			req: func() *http.Request {
				return signedIn(t, httptest.NewRequest(http.MethodGet, "/", nil), session.Record{Role: session.RoleEmployee, Email: "a@a"})
			},
			want: http.StatusOK,
		},
		{
			name: "admin",
			req: func() *http.Request {
				return signedIn(t, httptest.NewRequest(http.MethodGet, "/", nil), session.Record{Role: session.RoleAdmin})
			},
			want: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h(rec, tt.req())
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestSessions_BindsCookieStore(t *testing.T) {
	signer := session.NewSigner("secret")

	// First request signs in, second one reads the cookie back.
	login := Sessions(signer, false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, session.Save(Store(r.Context()), session.Record{Role: session.RoleEmployee, Email: "a@a"}))
		require.NoError(t, Store(r.Context()).SetItem(session.TokenKey, "token-1"))
	}))
	rec := httptest.NewRecorder()
	login.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	req := httptest.NewRequest(http.MethodGet, "/employee/bills", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}

	var got session.Record
	var token string
	Sessions(signer, false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = Record(r.Context())
		token = Token(r.Context())
	})).ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, session.Record{Role: session.RoleEmployee, Email: "a@a"}, got)
	assert.Equal(t, "token-1", token)
}

func TestStore_Missing(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	assert.False(t, Record(r.Context()).Authenticated())
	assert.Empty(t, Token(r.Context()))
}
