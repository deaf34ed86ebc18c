package newbill

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/angelofallars/htmx-go"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/angelofallars/billed/app/auth"
	"github.com/angelofallars/billed/app/event"
	"github.com/angelofallars/billed/app/route"
	"github.com/angelofallars/billed/internal/session"
	"github.com/angelofallars/billed/internal/store"
)

// FormRenderer renders the form and its file input alone.
type FormRenderer interface {
	Renderer
	FileInput(draftID string) templ.Component
}

type HandlerGroup struct {
	store          store.Store
	drafts         *Registry
	renderer       FormRenderer
	navigator      route.Navigator
	log            *slog.Logger
	uploadMaxBytes int64
}

func NewHandlerGroup(s store.Store, drafts *Registry, renderer FormRenderer, navigator route.Navigator, log *slog.Logger, uploadMaxBytes int64) *HandlerGroup {
	return &HandlerGroup{
		store:          s,
		drafts:         drafts,
		renderer:       renderer,
		navigator:      navigator,
		log:            log,
		uploadMaxBytes: uploadMaxBytes,
	}
}

func (hg *HandlerGroup) Mount(r chi.Router) {
	requireEmployee := auth.RequireRole(session.RoleEmployee, hg.denied)

	r.Post("/employee/bill/new/{draftID}/file", requireEmployee(hg.handleChangeFile))
	r.Post("/employee/bill/new/{draftID}", requireEmployee(hg.handleSubmit))
}

// Activate opens a new draft for a navigation to the creation view.
func (hg *HandlerGroup) Activate(r *http.Request, navigate route.Navigate) templ.Component {
	return hg.container(r, navigate).View()
}

func (hg *HandlerGroup) container(r *http.Request, navigate route.Navigate) *Container {
	return New(hg.store, navigate, auth.Store(r.Context()), hg.drafts, hg.renderer, hg.log)
}

func (hg *HandlerGroup) handleChangeFile(w http.ResponseWriter, r *http.Request) {
	draftID := chi.URLParam(r, "draftID")

	r.Body = http.MaxBytesReader(w, r.Body, hg.uploadMaxBytes)
	if err := r.ParseMultipartForm(hg.uploadMaxBytes); err != nil {
		hg.resetFileInput(w, r, draftID)
		return
	}
	defer r.MultipartForm.RemoveAll()

	// Only the first file of a selection counts.
	headers := r.MultipartForm.File["file"]
	if len(headers) == 0 {
		hg.resetFileInput(w, r, draftID)
		return
	}
	header := headers[0]

	f, err := header.Open()
	if err != nil {
		hg.log.Error("failed to open uploaded file", "error", err, "file", header.Filename)
		hg.resetFileInput(w, r, draftID)
		return
	}
	defer f.Close()

	accepted, err := hg.container(r, hg.navigator.For(w, r)).HandleChangeFile(r.Context(), draftID, store.File{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     f,
	})
	switch {
	case errors.Is(err, ErrDraftNotFound):
		route.ShowError(w, http.StatusGone, err)
	case !accepted:
		hg.resetFileInput(w, r, draftID)
	case err != nil:
		route.NoContent(w)
	default:
		_ = htmx.NewResponse().
			Reswap(htmx.SwapNone).
			AddTrigger(
				event.TriggerFileUploaded(baseName(header.Filename)),
				event.TriggerSetErrMessage(""),
			).
			Write(w)
	}
}

// resetFileInput swaps in an empty file input.
func (hg *HandlerGroup) resetFileInput(w http.ResponseWriter, r *http.Request, draftID string) {
	_ = htmx.NewResponse().
		Retarget("#file-input").
		Reswap(htmx.SwapOuterHTML).
		AddTrigger(event.TriggerFileUploaded("")).
		RenderTempl(r.Context(), w, hg.renderer.FileInput(draftID))
}

func (hg *HandlerGroup) handleSubmit(w http.ResponseWriter, r *http.Request) {
	form := &Form{}
	if err := render.Bind(r, form); err != nil {
		route.ShowError(w, http.StatusBadRequest, err)
		return
	}

	navigated := false
	navigate := hg.navigator.For(w, r)

	err := hg.container(r, func(p route.Path) {
		navigated = true
		navigate(p)
	}).HandleSubmit(r.Context(), chi.URLParam(r, "draftID"), *form)
	switch {
	case errors.Is(err, ErrDraftNotFound):
		route.ShowError(w, http.StatusGone, err)
	case err != nil:
		route.ShowError(w, store.StatusOf(err), errors.New(store.Message(err)))
	case !navigated:
		route.NoContent(w)
	}
}

func (hg *HandlerGroup) denied(w http.ResponseWriter, r *http.Request) {
	hg.navigator.For(w, r)(route.Login)
}
