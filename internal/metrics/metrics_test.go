package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/angelofallars/billed/internal/bill"
	"github.com/angelofallars/billed/internal/store"
	"github.com/angelofallars/billed/internal/store/mocks"
)

func TestInstrument_CountsCalls(t *testing.T) {
	m := New(prometheus.NewRegistry())

	bills := mocks.NewBills(t)
	bills.On("List", mock.Anything).Return([]bill.Bill{{ID: "1"}}, nil).Once()
	bills.On("Update", mock.Anything, "1", mock.Anything).
		Return(nil, store.NewError(http.StatusNotFound, store.ErrNotFound)).Once()

	s := mocks.NewStore(t)
	s.On("Bills").Return(bills)

	instrumented := m.Instrument(s)

	got, err := instrumented.Bills().List(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = instrumented.Bills().Update(context.Background(), "1", bill.Bill{})
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.storeCalls.WithLabelValues("list", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.storeCalls.WithLabelValues("update", "client")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.storeDuration))
}

func TestInstrument_NilStore(t *testing.T) {
	m := New(prometheus.NewRegistry())

	assert.Nil(t, m.Instrument(nil))
}

type authStore struct {
	*mocks.Store
}

func (authStore) Login(ctx context.Context, email, password string) (string, error) {
	return "token", nil
}

func TestInstrument_KeepsAuthenticator(t *testing.T) {
	m := New(prometheus.NewRegistry())

	s := m.Instrument(authStore{Store: mocks.NewStore(t)})

	auth, ok := s.(store.Authenticator)
	require.True(t, ok)

	token, err := auth.Login(context.Background(), "a@a", "pw")
	require.NoError(t, err)
	assert.Equal(t, "token", token)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.storeCalls.WithLabelValues("login", "ok")))

	_, ok = m.Instrument(mocks.NewStore(t)).(store.Authenticator)
	assert.False(t, ok)
}

func TestObserveActivation(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveActivation("bills")
	m.ObserveActivation("bills")

	var nilMetrics *Metrics
	nilMetrics.ObserveActivation("login")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.activations.WithLabelValues("bills")))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), "billed_view_activations_total")
}
