package mocks

import (
	context "context"

	bill "github.com/angelofallars/billed/internal/bill"
	mock "github.com/stretchr/testify/mock"

	store "github.com/angelofallars/billed/internal/store"
)

// Bills is a testify mock of the Bills type
type Bills struct {
	mock.Mock
}

// Create provides a mock function with given fields: ctx, req
func (_m *Bills) Create(ctx context.Context, req store.CreateRequest) (*store.Created, error) {
	ret := _m.Called(ctx, req)

	if len(ret) == 0 {
		panic("no return value specified for Create")
	}

	var r0 *store.Created
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, store.CreateRequest) (*store.Created, error)); ok {
		return rf(ctx, req)
	}
	if rf, ok := ret.Get(0).(func(context.Context, store.CreateRequest) *store.Created); ok {
		r0 = rf(ctx, req)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*store.Created)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, store.CreateRequest) error); ok {
		r1 = rf(ctx, req)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// List provides a mock function with given fields: ctx
func (_m *Bills) List(ctx context.Context) ([]bill.Bill, error) {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for List")
	}

	var r0 []bill.Bill
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context) ([]bill.Bill, error)); ok {
		return rf(ctx)
	}
	if rf, ok := ret.Get(0).(func(context.Context) []bill.Bill); ok {
		r0 = rf(ctx)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]bill.Bill)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context) error); ok {
		r1 = rf(ctx)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// Update provides a mock function with given fields: ctx, key, b
func (_m *Bills) Update(ctx context.Context, key string, b bill.Bill) (*bill.Bill, error) {
	ret := _m.Called(ctx, key, b)

	if len(ret) == 0 {
		panic("no return value specified for Update")
	}

	var r0 *bill.Bill
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string, bill.Bill) (*bill.Bill, error)); ok {
		return rf(ctx, key, b)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string, bill.Bill) *bill.Bill); ok {
		r0 = rf(ctx, key, b)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*bill.Bill)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, string, bill.Bill) error); ok {
		r1 = rf(ctx, key, b)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewBills creates a new instance of Bills. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewBills(t interface {
	mock.TestingT
	Cleanup(func())
}) *Bills {
	mock := &Bills{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
