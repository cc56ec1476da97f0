package resolver

import (
	"errors"
	"testing"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/go-cmp/cmp"
)

func TestFilterResolver(t *testing.T) {
	base := NewMapResolver(map[string]any{
		"get_user":  1,
		"get_posts": 2,
		"delete":    3,
		"PI":        4,
	})

	for name, tc := range map[string]struct {
		include []string
		exclude []string
		want    []string
	}{
		"no patterns": {
			want: []string{"PI", "delete", "get_posts", "get_user"},
		},
		"include": {
			include: []string{"get_*"},
			want:    []string{"get_posts", "get_user"},
		},
		"exclude": {
			exclude: []string{"delete"},
			want:    []string{"PI", "get_posts", "get_user"},
		},
		"include and exclude": {
			include: []string{"get_*", "PI"},
			exclude: []string{"*_posts"},
			want:    []string{"PI", "get_user"},
		},
		"alternation": {
			include: []string{"{PI,delete}"},
			want:    []string{"PI", "delete"},
		},
	} {
		t.Run(name, func(t *testing.T) {
			r, err := NewFilterResolver(base, tc.include, tc.exclude)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tc.want, r.Names()); diff != "" {
				t.Errorf("Names (-want +got):\n%s", diff)
			}
			for _, name := range base.Names() {
				_, found, err := r.Resolve(name)
				if err != nil {
					t.Fatal(err)
				}
				if found != r.Visible(name) {
					t.Errorf("%s: found=%t but visible=%t", name, found, r.Visible(name))
				}
			}
		})
	}
}

func TestFilterResolverErrors(t *testing.T) {
	if _, err := NewFilterResolver(nil, nil, nil); !errors.Is(err, ErrNilResolver) {
		t.Errorf("nil next: want ErrNilResolver, got %v", err)
	}
	if _, err := NewFilterResolver(NewMapResolver(nil), []string{"[a-"}, nil); !errors.Is(err, doublestar.ErrBadPattern) {
		t.Errorf("bad pattern: want ErrBadPattern, got %v", err)
	}
}
