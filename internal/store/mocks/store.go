package mocks

import (
	store "github.com/angelofallars/billed/internal/store"
	mock "github.com/stretchr/testify/mock"
)

// Store is a testify mock of the Store type
type Store struct {
	mock.Mock
}

// Bills provides a mock function with given fields:
func (_m *Store) Bills() store.Bills {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for Bills")
	}

	var r0 store.Bills
	if rf, ok := ret.Get(0).(func() store.Bills); ok {
		r0 = rf()
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(store.Bills)
		}
	}

	return r0
}

// NewStore creates a new instance of Store. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *Store {
	mock := &Store{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
