package mocks

import (
	"testing"

	mock "github.com/stretchr/testify/mock"
)

// NameCapturer is a Resolver that finds nothing and records every name it is
// asked to resolve.
type NameCapturer struct {
	Resolver *Resolver
	Got      []string
}

func (c *NameCapturer) capture(args mock.Arguments) {
	c.Got = append(c.Got, args.String(0))
}

func NewNameCapturer(t *testing.T) *NameCapturer {
	c := &NameCapturer{
		Resolver: NewResolver(t),
	}

	c.Resolver.
		On("Resolve", mock.AnythingOfType("string")).
		Run(c.capture).
		Maybe().
		Return(nil, false, nil)

	c.Resolver.
		On("Names").
		Maybe().
		Return([]string(nil))

	return c
}
