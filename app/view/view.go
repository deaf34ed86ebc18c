// Package view renders the markup of every view. Views are html/template
// definitions embedded in the binary and handed out as templ components.
package view

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"github.com/angelofallars/billed/app/event"
	"github.com/angelofallars/billed/internal/bill"
)

//go:embed templates/*.gohtml
var templates embed.FS

// Name identifies a view template.
type Name string

const (
	Login     Name = "login"
	Bills     Name = "bills"
	NewBill   Name = "newbill"
	Dashboard Name = "dashboard"
	NotFound  Name = "notfound"

	errorView Name = "error"
)

// Icon is the navigation icon highlighted by the layout.
type Icon string

const (
	IconNone   Icon = ""
	IconWindow Icon = "window"
	IconMail   Icon = "mail"
)

// Group is one status column of the dashboard.
type Group struct {
	Status bill.Status
	Label  string
	Bills  []bill.Displayed
}

// Props is everything a view can show. Each view reads the fields it
// needs and ignores the rest.
type Props struct {
	Data   []bill.Displayed
	Groups []Group

	// Error switches any view to the error view showing this message.
	Error string

	// FormError is shown above a form that was rejected.
	FormError string

	DraftID string
	Types   []bill.Type
}

type Renderer struct {
	tmpl *template.Template
}

func New() (*Renderer, error) {
	tmpl, err := template.New("").Funcs(funcs).ParseFS(templates, "templates/*.gohtml")
	if err != nil {
		return nil, fmt.Errorf("parsing view templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

func MustNew() *Renderer {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

// Render returns the markup of view name. Props with an Error render the
// error view instead.
func (r *Renderer) Render(name Name, props Props) templ.Component {
	if props.Error != "" {
		return r.component(string(errorView), props)
	}
	if name == NewBill && props.Types == nil {
		props.Types = bill.Types
	}
	return r.component(string(name), props)
}

type layoutData struct {
	Active  Icon
	Email   string
	Admin   bool
	Content template.HTML
}

// Layout wraps content in the signed-in navigation bar with active
// highlighted.
func (r *Renderer) Layout(active Icon, email string, admin bool, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		inner, err := templ.ToGoHTML(ctx, content)
		if err != nil {
			return err
		}
		return r.component("layout", layoutData{
			Active:  active,
			Email:   email,
			Admin:   admin,
			Content: inner,
		}).Render(ctx, w)
	})
}

type pageData struct {
	Title   string
	Content template.HTML
}

// Page is the full document with content mounted in #root.
func (r *Renderer) Page(title string, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		inner, err := templ.ToGoHTML(ctx, content)
		if err != nil {
			return err
		}
		return r.component("page", pageData{Title: title, Content: inner}).Render(ctx, w)
	})
}

// FileInput is an empty file input of the new bill form.
func (r *Renderer) FileInput(draftID string) templ.Component {
	return r.component("file-input", Props{DraftID: draftID})
}

// Modal is the body of the file preview modal.
func (r *Renderer) Modal(fileURL string) templ.Component {
	return r.component("modal", fileURL)
}

func (r *Renderer) component(name string, data any) templ.Component {
	return templ.FromGoHTML(r.tmpl.Lookup(name), data)
}

var funcs = template.FuncMap{
	"listen": func(e string, js string) template.HTMLAttr {
		var attr string
		for name, code := range event.Event(e).Listen(js) {
			attr += name + `="` + template.HTMLEscapeString(fmt.Sprint(code)) + `"`
		}
		return template.HTMLAttr(attr)
	},
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
	"amount": func(f float64) string {
		return strconv.FormatFloat(f, 'f', -1, 64)
	},
	"previewURL": func(fileURL *string) string {
		if fileURL == nil {
			return ""
		}
		return "/bills/preview?" + url.Values{"url": {*fileURL}}.Encode()
	},
}
