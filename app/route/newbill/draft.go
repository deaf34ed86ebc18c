package newbill

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/qmuntal/stateless"
	"golang.org/x/sync/singleflight"
)

type State string

const (
	StateIdle            State = "idle"
	StateFileSelected    State = "file-selected"
	StateUploading       State = "uploading"
	StateUploadFailed    State = "upload-failed"
	StateUploadSucceeded State = "upload-succeeded"
	StateSubmitting      State = "submitting"
	StateSubmitFailed    State = "submit-failed"
	StateSubmitted       State = "submitted"
)

type Trigger string

const (
	TriggerSelectFile    Trigger = "select-file"
	TriggerRejectFile    Trigger = "reject-file"
	TriggerStartUpload   Trigger = "start-upload"
	TriggerUploadFail    Trigger = "upload-fail"
	TriggerUploadSucceed Trigger = "upload-succeed"
	TriggerSubmit        Trigger = "submit"
	TriggerSubmitFail    Trigger = "submit-fail"
	TriggerSubmitSucceed Trigger = "submit-succeed"
)

// Draft is one new bill form between its first render and its submission.
// Fields are guarded by mu.
type Draft struct {
	ID string

	mu      sync.Mutex
	machine *stateless.StateMachine
	expires time.Time

	// upload is bumped on every file selection; an upload result for an
	// older value is stale.
	upload uint64
	// uploaded is closed once the upload numbered upload has settled.
	uploaded chan struct{}

	FileURL  *string
	FileName *string
	Key      string
}

func newDraft(id string, expires time.Time) *Draft {
	d := &Draft{
		ID:      id,
		machine: stateless.NewStateMachine(StateIdle),
		expires: expires,
	}

	// Selecting a file is possible whenever the form is still editable.
	reselectable := func(cfg *stateless.StateConfiguration) *stateless.StateConfiguration {
		return cfg.
			Permit(TriggerSelectFile, StateFileSelected).
			Permit(TriggerRejectFile, StateIdle).
			Permit(TriggerSubmit, StateSubmitting)
	}

	d.machine.Configure(StateIdle).
		Permit(TriggerSelectFile, StateFileSelected).
		PermitReentry(TriggerRejectFile).
		Permit(TriggerSubmit, StateSubmitting)

	d.machine.Configure(StateFileSelected).
		Permit(TriggerStartUpload, StateUploading).
		PermitReentry(TriggerSelectFile).
		Permit(TriggerRejectFile, StateIdle).
		Permit(TriggerSubmit, StateSubmitting)

	reselectable(d.machine.Configure(StateUploading)).
		Permit(TriggerUploadFail, StateUploadFailed).
		Permit(TriggerUploadSucceed, StateUploadSucceeded)

	reselectable(d.machine.Configure(StateUploadFailed))
	reselectable(d.machine.Configure(StateUploadSucceeded))
	reselectable(d.machine.Configure(StateSubmitFailed))

	d.machine.Configure(StateSubmitting).
		Permit(TriggerSubmitFail, StateSubmitFailed).
		Permit(TriggerSubmitSucceed, StateSubmitted).
		Ignore(TriggerSubmit).
		Ignore(TriggerUploadFail).
		Ignore(TriggerUploadSucceed)

	d.machine.Configure(StateSubmitted).
		Ignore(TriggerSubmit).
		Ignore(TriggerUploadFail).
		Ignore(TriggerUploadSucceed)

	return d
}

// State must be called with mu held.
func (d *Draft) State() State {
	return d.machine.MustState().(State)
}

// fire must be called with mu held.
func (d *Draft) fire(t Trigger) error {
	if err := d.machine.Fire(t); err != nil {
		return fmt.Errorf("draft %s: %w", d.ID, err)
	}
	return nil
}

// awaitUpload blocks until no upload of d is in flight. It must be called
// with mu held and returns with mu held.
func (d *Draft) awaitUpload() {
	for d.State() == StateUploading && d.uploaded != nil {
		uploaded := d.uploaded
		d.mu.Unlock()
		<-uploaded
		d.mu.Lock()
	}
}

func (d *Draft) clearFile() {
	d.FileURL = nil
	d.FileName = nil
	d.Key = ""
}

// Registry holds the open drafts of every form. Drafts not touched for the
// TTL are dropped.
type Registry struct {
	mu     sync.Mutex
	drafts map[string]*Draft
	ttl    time.Duration
	now    func() time.Time

	submits singleflight.Group
}

func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		drafts: map[string]*Draft{},
		ttl:    ttl,
		now:    time.Now,
	}
}

// Create opens a new draft and drops the expired ones.
func (r *Registry) Create() *Draft {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for id, d := range r.drafts {
		if now.After(d.expires) {
			delete(r.drafts, id)
		}
	}

	d := newDraft(uuid.NewString(), now.Add(r.ttl))
	r.drafts[d.ID] = d
	return d
}

// Get returns the draft with id and extends its lifetime.
func (r *Registry) Get(id string) (*Draft, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.drafts[id]
	if !ok {
		return nil, false
	}

	now := r.now()
	if now.After(d.expires) {
		delete(r.drafts, id)
		return nil, false
	}
	d.expires = now.Add(r.ttl)

	return d, true
}
