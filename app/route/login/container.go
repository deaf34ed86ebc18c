// Package login signs employees and administrators in and out.
package login

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/angelofallars/billed/app/route"
	"github.com/angelofallars/billed/internal/session"
	"github.com/angelofallars/billed/internal/store"
)

var ErrInvalidCredentials = errors.New("Email ou mot de passe incorrect.")

type Container struct {
	store    store.Store
	navigate route.Navigate
	session  session.Store
}

func New(s store.Store, navigate route.Navigate, sess session.Store) *Container {
	return &Container{store: s, navigate: navigate, session: sess}
}

// Login signs email in with role and goes to the role's home view. Stores
// that authenticate users check the password first; the token they hand
// back is kept in the session.
func (c *Container) Login(ctx context.Context, role session.Role, email, password string) error {
	var token string
	if authenticator, ok := c.store.(store.Authenticator); ok {
		t, err := authenticator.Login(ctx, email, password)
		if err != nil {
			if store.StatusOf(err) == http.StatusUnauthorized {
				return fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
			}
			return err
		}
		token = t
	}

	if err := session.Save(c.session, session.Record{Role: role, Email: email}); err != nil {
		return err
	}
	if token != "" {
		if err := c.session.SetItem(session.TokenKey, token); err != nil {
			return err
		}
	}

	c.navigate(route.Home(role))
	return nil
}

func (c *Container) Logout() {
	c.session.Clear()
	c.navigate(route.Login)
}

var validate = validator.New()

type Form struct {
	Email    string `form:"email" validate:"required,max=320,contains=@"`
	Password string `form:"password" validate:"required"`
}

// Form satisfies [render.Binder]
func (f *Form) Bind(r *http.Request) error {
	if err := validate.Struct(f); err != nil {
		return errors.New("Veuillez saisir votre email et votre mot de passe.")
	}
	return nil
}
