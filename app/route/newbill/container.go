// Package newbill owns the bill creation form: file upload, submission and
// the navigation back to the bill list.
package newbill

import (
	"context"
	"errors"
	"log/slog"
	"mime"
	"strings"

	"github.com/a-h/templ"

	"github.com/angelofallars/billed/app/route"
	"github.com/angelofallars/billed/app/view"
	"github.com/angelofallars/billed/internal/bill"
	"github.com/angelofallars/billed/internal/session"
	"github.com/angelofallars/billed/internal/store"
)

var ErrDraftNotFound = errors.New("Ce formulaire a expiré, veuillez recharger la page.")

// acceptedTypes are the media types a bill proof may have.
var acceptedTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
}

// Accepted reports whether a file of the declared contentType can be
// attached to a bill.
func Accepted(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return acceptedTypes[mediaType]
}

type Renderer interface {
	Render(name view.Name, props view.Props) templ.Component
}

type Container struct {
	store    store.Store
	navigate route.Navigate
	session  session.Store
	drafts   *Registry
	renderer Renderer
	log      *slog.Logger
}

// New returns a Container. With a nil store, uploads and submissions do
// nothing.
func New(s store.Store, navigate route.Navigate, sess session.Store, drafts *Registry, renderer Renderer, log *slog.Logger) *Container {
	return &Container{
		store:    s,
		navigate: navigate,
		session:  sess,
		drafts:   drafts,
		renderer: renderer,
		log:      log,
	}
}

// View opens a draft and renders an empty form bound to it.
func (c *Container) View() templ.Component {
	d := c.drafts.Create()
	return c.renderer.Render(view.NewBill, view.Props{DraftID: d.ID, Types: bill.Types})
}

// HandleChangeFile takes the file selected on the form of draftID. A file
// of a type that is not accepted is dropped along with any earlier upload
// and false is returned. An accepted file is uploaded right away; a failed
// upload is logged and returned, the draft keeps no file.
func (c *Container) HandleChangeFile(ctx context.Context, draftID string, file store.File) (bool, error) {
	d, ok := c.drafts.Get(draftID)
	if !ok {
		return false, ErrDraftNotFound
	}

	d.mu.Lock()
	if d.State() == StateSubmitted || d.State() == StateSubmitting {
		d.mu.Unlock()
		return false, nil
	}

	d.upload++
	d.clearFile()

	if !Accepted(file.ContentType) {
		err := d.fire(TriggerRejectFile)
		d.mu.Unlock()
		return false, err
	}

	if err := d.fire(TriggerSelectFile); err != nil {
		d.mu.Unlock()
		return false, err
	}

	if c.store == nil {
		d.mu.Unlock()
		return true, nil
	}

	if err := d.fire(TriggerStartUpload); err != nil {
		d.mu.Unlock()
		return false, err
	}
	upload := d.upload
	uploaded := make(chan struct{})
	d.uploaded = uploaded
	d.mu.Unlock()

	email := session.Load(c.session).Email

	created, err := c.store.Bills().Create(context.WithoutCancel(ctx), store.CreateRequest{
		File:  file,
		Email: email,
	})

	d.mu.Lock()
	defer d.mu.Unlock()
	defer close(uploaded)

	if d.upload != upload || d.State() != StateUploading {
		c.log.Debug("dropping stale upload result", "draft", d.ID)
		return true, nil
	}

	if err != nil {
		c.log.Error("failed to upload bill file", "error", err, "draft", d.ID, "file", file.Name)
		_ = d.fire(TriggerUploadFail)
		return true, err
	}

	fileName := baseName(file.Name)
	d.FileURL = &created.FileURL
	d.FileName = &fileName
	d.Key = created.Key

	return true, d.fire(TriggerUploadSucceed)
}

// HandleSubmit turns the form of draftID into a pending bill and saves it,
// then goes back to the bill list. A file upload still in flight is
// awaited first. Concurrent submits of one draft share a single store call.
// A draft that was already submitted goes straight back to the list.
func (c *Container) HandleSubmit(ctx context.Context, draftID string, form Form) error {
	if c.store == nil {
		return nil
	}

	d, ok := c.drafts.Get(draftID)
	if !ok {
		return ErrDraftNotFound
	}

	b := form.Bill(session.Load(c.session).Email)

	_, err, _ := c.drafts.submits.Do(d.ID, func() (any, error) {
		return nil, c.submit(ctx, d, b)
	})
	if err != nil {
		return err
	}

	c.navigate(route.Bills)
	return nil
}

// submit waits for an upload in flight so the bill is saved under the key
// it created.
func (c *Container) submit(ctx context.Context, d *Draft, b bill.Bill) error {
	d.mu.Lock()
	d.awaitUpload()
	if d.State() == StateSubmitted {
		d.mu.Unlock()
		return nil
	}
	if err := d.fire(TriggerSubmit); err != nil {
		d.mu.Unlock()
		return err
	}
	b.FileURL = d.FileURL
	b.FileName = d.FileName
	key := d.Key
	d.mu.Unlock()

	err := c.updateBill(ctx, key, b)

	d.mu.Lock()
	defer d.mu.Unlock()
	if err != nil {
		_ = d.fire(TriggerSubmitFail)
		return err
	}
	return d.fire(TriggerSubmitSucceed)
}

// UpdateBill saves b under key and goes back to the bill list once the
// store has answered. On failure nothing navigates.
func (c *Container) UpdateBill(ctx context.Context, key string, b bill.Bill) error {
	if c.store == nil {
		return nil
	}

	if err := c.updateBill(ctx, key, b); err != nil {
		return err
	}

	c.navigate(route.Bills)
	return nil
}

func (c *Container) updateBill(ctx context.Context, key string, b bill.Bill) error {
	if _, err := c.store.Bills().Update(context.WithoutCancel(ctx), key, b); err != nil {
		c.log.Error("failed to update bill", "error", err, "key", key, "status", store.StatusOf(err))
		return err
	}
	return nil
}

// baseName strips the directories browsers sometimes send along with a
// file name, in either separator style.
func baseName(name string) string {
	return name[strings.LastIndexAny(name, `/\`)+1:]
}
