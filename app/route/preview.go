package route

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/angelofallars/htmx-go"

	"github.com/angelofallars/billed/app/event"
)

// ModalPreviewer shows a file in the page's preview modal as the answer to
// one htmx request.
type ModalPreviewer struct {
	w     http.ResponseWriter
	r     *http.Request
	modal func(fileURL string) templ.Component

	shown bool
}

func NewModalPreviewer(w http.ResponseWriter, r *http.Request, modal func(fileURL string) templ.Component) *ModalPreviewer {
	return &ModalPreviewer{w: w, r: r, modal: modal}
}

func (p *ModalPreviewer) Show(fileURL string) {
	if p.shown {
		return
	}
	p.shown = true

	_ = htmx.NewResponse().
		Retarget("#modal-body").
		Reswap(htmx.SwapInnerHTML).
		AddTrigger(event.TriggerShowModal).
		RenderTempl(p.r.Context(), p.w, p.modal(fileURL))
}

// Shown reports whether Show wrote the response.
func (p *ModalPreviewer) Shown() bool { return p.shown }
