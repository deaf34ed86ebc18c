package view

import (
	"bytes"
	"context"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelofallars/billed/internal/bill"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func ptr(s string) *string { return &s }

func TestRender_Bills(t *testing.T) {
	r := MustNew()

	html := render(t, r.Render(Bills, Props{Data: []bill.Displayed{
		{
			Bill:   bill.Bill{ID: "47qAXb6fIm2zOKkLzMro", Type: bill.TypeHotel, Name: "encore", Amount: 400, FileURL: ptr("https://test.storage.tld/a.jpg?alt=media&token=1")},
			Date:   "4 Avr. 04",
			Status: "En attente",
		},
	}}))

	assert.Contains(t, html, `data-testid="btn-new-bill"`)
	assert.Contains(t, html, `data-testid="icon-eye"`)
	assert.Contains(t, html, "4 Avr. 04")
	assert.Contains(t, html, "En attente")
	assert.Contains(t, html, "400 €")
	assert.Contains(t, html, "/bills/preview?url=https%3A%2F%2Ftest.storage.tld%2Fa.jpg")
}

func TestRender_ErrorProps(t *testing.T) {
	r := MustNew()

	for _, name := range []Name{Bills, Dashboard, NewBill} {
		html := render(t, r.Render(name, Props{Error: "Erreur 404"}))

		assert.Contains(t, html, `data-testid="error-message"`)
		assert.Contains(t, html, "Erreur 404")
		assert.NotContains(t, html, `data-testid="tbody"`)
	}
}

func TestRender_NewBill(t *testing.T) {
	r := MustNew()

	html := render(t, r.Render(NewBill, Props{DraftID: "d1"}))

	assert.Contains(t, html, `data-testid="form-new-bill"`)
	assert.Contains(t, html, `hx-post="/employee/bill/new/d1"`)
	assert.Contains(t, html, `hx-post="/employee/bill/new/d1/file"`)
	assert.Contains(t, html, `x-on:set-err-message.window="message = $event.detail.value"`)
	assert.Contains(t, html, `x-on:file-uploaded.window="name = $event.detail.value"`)
	for _, typ := range bill.Types {
		assert.Contains(t, html, "<option>"+templ.EscapeString(string(typ))+"</option>")
	}
}

func TestLayout_HighlightsActiveIcon(t *testing.T) {
	r := MustNew()
	content := r.Render(NotFound, Props{})

	html := render(t, r.Layout(IconWindow, "a@a", false, content))

	assert.Contains(t, html, `data-testid="icon-window" class="active-icon"`)
	assert.Contains(t, html, `data-testid="icon-mail" class=""`)
	assert.Contains(t, html, `data-testid="not-found"`)

	html = render(t, r.Layout(IconNone, "admin@a", true, content))
	assert.NotContains(t, html, `data-testid="icon-window"`)
}

func TestPage_MountsRoot(t *testing.T) {
	r := MustNew()

	html := render(t, r.Page("Billed", r.Render(Login, Props{})))

	assert.Contains(t, html, `<div id="root">`)
	assert.Contains(t, html, `data-testid="form-employee"`)
	assert.Contains(t, html, `x-on:show-modal.window="open = true"`)
}

func TestModal(t *testing.T) {
	r := MustNew()

	html := render(t, r.Modal("https://localhost/a.png"))

	assert.Contains(t, html, `src="https://localhost/a.png"`)
	assert.Contains(t, html, `alt="Bill"`)
}
