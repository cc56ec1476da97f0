package collections

import (
	"flag"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStringSlice(t *testing.T) {
	for name, tc := range map[string]struct {
		args []string
		want StringSlice
	}{
		"degenerate": {},
		"repeated": {
			args: []string{"-ns", "a", "-ns", "b"},
			want: StringSlice{"a", "b"},
		},
		"comma separated": {
			args: []string{"-ns", "a, b,,c"},
			want: StringSlice{"a", "b", "c"},
		},
	} {
		t.Run(name, func(t *testing.T) {
			var got StringSlice
			fs := flag.NewFlagSet(name, flag.ContinueOnError)
			fs.Var(&got, "ns", "namespaces")
			if err := fs.Parse(tc.args); err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(fs.Lookup("ns").Value.String(), got.String()); diff != "" {
				t.Errorf("String (-want +got):\n%s", diff)
			}
		})
	}
}
