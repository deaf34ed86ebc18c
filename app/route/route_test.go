package route

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"

	"github.com/angelofallars/billed/internal/session"
)

func TestHome(t *testing.T) {
	assert.Equal(t, Bills, Home(session.RoleEmployee))
	assert.Equal(t, Dashboard, Home(session.RoleAdmin))
	assert.Equal(t, Login, Home(session.RoleNone))
}

func TestShowError(t *testing.T) {
	rec := httptest.NewRecorder()

	ShowError(rec, http.StatusBadRequest, errors.New("Le montant doit être un nombre."))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "none", rec.Header().Get("HX-Reswap"))
	assert.Contains(t, rec.Header().Get("HX-Trigger"), "set-err-message")
}

func TestModalPreviewer(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/bills/preview", nil)

	var shown []string
	p := NewModalPreviewer(rec, req, func(fileURL string) templ.Component {
		shown = append(shown, fileURL)
		return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			_, err := io.WriteString(w, `<img alt="Bill">`)
			return err
		})
	})

	assert.False(t, p.Shown())
	p.Show("https://localhost/a.png")
	p.Show("https://localhost/b.png")

	assert.True(t, p.Shown())
	assert.Equal(t, []string{"https://localhost/a.png"}, shown)
	assert.Equal(t, "#modal-body", rec.Header().Get("HX-Retarget"))
	assert.Contains(t, rec.Header().Get("HX-Trigger"), "show-modal")
	assert.Contains(t, rec.Body.String(), `alt="Bill"`)
}
