package mocks

import (
	mock "github.com/stretchr/testify/mock"
)

// Resolver is a mock type for the resolver.Resolver type
type Resolver struct {
	mock.Mock
}

// Resolve provides a mock function with given fields: name
func (_m *Resolver) Resolve(name string) (any, bool, error) {
	ret := _m.Called(name)

	var r0 any
	if rf, ok := ret.Get(0).(func(string) any); ok {
		r0 = rf(name)
	} else {
		r0 = ret.Get(0)
	}

	var r1 bool
	if rf, ok := ret.Get(1).(func(string) bool); ok {
		r1 = rf(name)
	} else {
		r1 = ret.Get(1).(bool)
	}

	var r2 error
	if rf, ok := ret.Get(2).(func(string) error); ok {
		r2 = rf(name)
	} else {
		r2 = ret.Error(2)
	}

	return r0, r1, r2
}

// Names provides a mock function with given fields:
func (_m *Resolver) Names() []string {
	ret := _m.Called()

	var r0 []string
	if rf, ok := ret.Get(0).(func() []string); ok {
		r0 = rf()
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]string)
	}

	return r0
}

type mockConstructorTestingTNewResolver interface {
	mock.TestingT
	Cleanup(func())
}

// NewResolver creates a new instance of Resolver. It also registers a testing
// interface on the mock and a cleanup function to assert the mocks
// expectations.
func NewResolver(t mockConstructorTestingTNewResolver) *Resolver {
	m := &Resolver{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
