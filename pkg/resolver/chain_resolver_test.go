package resolver

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/stackb/nsproxy/pkg/resolver/mocks"
)

func TestNewChainResolverRequiresMembers(t *testing.T) {
	if _, err := NewChainResolver(); !errors.Is(err, ErrEmptyChain) {
		t.Errorf("empty chain: want ErrEmptyChain, got %v", err)
	}
	if _, err := NewChainResolver(NewMapResolver(nil), nil); !errors.Is(err, ErrNilResolver) {
		t.Errorf("nil member: want ErrNilResolver, got %v", err)
	}
}

func TestChainResolverOrder(t *testing.T) {
	for name, tc := range map[string]struct {
		chain     []Resolver
		symbol    string
		want      any
		wantFound bool
	}{
		"fallback to second": {
			chain: []Resolver{
				NewMapResolver(map[string]any{"y": 1}),
				NewMapResolver(map[string]any{"x": 5}),
			},
			symbol:    "x",
			want:      5,
			wantFound: true,
		},
		"first wins": {
			chain: []Resolver{
				NewMapResolver(map[string]any{"x": 1}),
				NewMapResolver(map[string]any{"x": 2}),
			},
			symbol:    "x",
			want:      1,
			wantFound: true,
		},
		"miss": {
			chain: []Resolver{
				NewMapResolver(map[string]any{"x": 1}),
				NewMapResolver(map[string]any{"y": 2}),
			},
			symbol: "z",
		},
		"single": {
			chain:     []Resolver{NewMapResolver(map[string]any{"x": "only"})},
			symbol:    "x",
			want:      "only",
			wantFound: true,
		},
	} {
		t.Run(name, func(t *testing.T) {
			chain, err := NewChainResolver(tc.chain...)
			if err != nil {
				t.Fatal(err)
			}
			got, found, err := chain.Resolve(tc.symbol)
			if err != nil {
				t.Fatal(err)
			}
			if found != tc.wantFound {
				t.Fatalf("found: want %t, got %t", tc.wantFound, found)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestChainResolverConsultsMembersInOrder(t *testing.T) {
	first := mocks.NewNameCapturer(t)
	second := mocks.NewNameCapturer(t)

	chain, err := NewChainResolver(first.Resolver, second.Resolver, NewMapResolver(map[string]any{"x": 5}))
	if err != nil {
		t.Fatal(err)
	}
	if got, found, err := chain.Resolve("x"); err != nil || !found || got != 5 {
		t.Fatalf("x: got (%v, %t, %v)", got, found, err)
	}

	if diff := cmp.Diff([]string{"x"}, first.Got); diff != "" {
		t.Errorf("first (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"x"}, second.Got); diff != "" {
		t.Errorf("second (-want +got):\n%s", diff)
	}
}

func TestChainResolverStopsAtFirstHit(t *testing.T) {
	first := mocks.NewResolver(t)
	first.On("Resolve", "x").Return(1, true, nil).Once()
	second := mocks.NewResolver(t) // no expectations: must not be called

	chain, err := NewChainResolver(first, second)
	if err != nil {
		t.Fatal(err)
	}
	if got, _, _ := chain.Resolve("x"); got != 1 {
		t.Errorf("x: want 1, got %v", got)
	}
}

func TestChainResolverFaultAbortsChain(t *testing.T) {
	fault := errors.New("getter failed")

	faulty := mocks.NewResolver(t)
	faulty.On("Resolve", "x").Return(nil, false, fault).Once()
	fallback := mocks.NewResolver(t) // no expectations: must not be called

	chain, err := NewChainResolver(faulty, fallback)
	if err != nil {
		t.Fatal(err)
	}
	_, found, err := chain.Resolve("x")
	if err != fault {
		t.Errorf("want the fault returned unchanged, got %v", err)
	}
	if found {
		t.Error("a fault must not report found")
	}
}

func TestChainResolverNames(t *testing.T) {
	chain, err := NewChainResolver(
		NewMapResolver(map[string]any{"triple": 3, "sin": 0}),
		NewMapResolver(map[string]any{"sin": 1, "cos": 2}),
		NewFuncResolver(nil, nil),
	)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"cos", "sin", "triple"}, chain.Names()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if chain.Len() != 3 {
		t.Errorf("Len: want 3, got %d", chain.Len())
	}
}
