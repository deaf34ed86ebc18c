package newbill

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDraftTransitions(t *testing.T) {
	d := newDraft("d", time.Now().Add(time.Hour))

	steps := []struct {
		trigger Trigger
		want    State
	}{
		{TriggerSelectFile, StateFileSelected},
		{TriggerStartUpload, StateUploading},
		{TriggerSelectFile, StateFileSelected},
		{TriggerStartUpload, StateUploading},
		{TriggerUploadFail, StateUploadFailed},
		{TriggerSelectFile, StateFileSelected},
		{TriggerStartUpload, StateUploading},
		{TriggerUploadSucceed, StateUploadSucceeded},
		{TriggerSubmit, StateSubmitting},
		{TriggerSubmit, StateSubmitting},
		{TriggerSubmitFail, StateSubmitFailed},
		{TriggerRejectFile, StateIdle},
		{TriggerSubmit, StateSubmitting},
		{TriggerSubmitSucceed, StateSubmitted},
		{TriggerSubmit, StateSubmitted},
	}

	for _, step := range steps {
		require.NoError(t, d.fire(step.trigger), step.trigger)
		assert.Equal(t, step.want, d.State(), step.trigger)
	}

	assert.Error(t, d.fire(TriggerSelectFile))
}

func TestRegistry_Expiry(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	r := NewRegistry(time.Minute)
	r.now = func() time.Time { return now }

	d := r.Create()
	assert.NotEmpty(t, d.ID)

	now = now.Add(50 * time.Second)
	got, ok := r.Get(d.ID)
	require.True(t, ok)
	assert.Same(t, d, got)

	// The lookup above extended the lifetime.
	now = now.Add(50 * time.Second)
	_, ok = r.Get(d.ID)
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok = r.Get(d.ID)
	assert.False(t, ok)
	assert.Empty(t, r.drafts)
}

func TestRegistry_CreatePrunes(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	r := NewRegistry(time.Minute)
	r.now = func() time.Time { return now }

	r.Create()
	r.Create()
	now = now.Add(2 * time.Minute)
	r.Create()

	assert.Len(t, r.drafts, 1)
}
