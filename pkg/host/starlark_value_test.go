package host

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.starlark.net/starlark"
)

type point struct {
	X, Y int
}

func (p point) Sum() int { return p.X + p.Y }

func TestStarlarkRoundTrip(t *testing.T) {
	for name, tc := range map[string]struct {
		in   any
		want any
	}{
		"nil":          {in: nil, want: nil},
		"bool":         {in: true, want: true},
		"int":          {in: 42, want: int64(42)},
		"uint8":        {in: uint8(7), want: int64(7)},
		"float":        {in: float32(1.5), want: 1.5},
		"string":       {in: "hello", want: "hello"},
		"bytes":        {in: []byte("raw"), want: []byte("raw")},
		"nil slice":    {in: []string(nil), want: nil},
		"string slice": {in: []string{"a", "b"}, want: []any{"a", "b"}},
		"array":        {in: [2]int{1, 2}, want: []any{int64(1), int64(2)}},
		"map": {
			in:   map[string]int{"one": 1},
			want: map[string]any{"one": int64(1)},
		},
		"nested": {
			in:   map[string]any{"list": []any{"x", 1.0}},
			want: map[string]any{"list": []any{"x", 1.0}},
		},
		"nil pointer": {in: (*point)(nil), want: nil},
	} {
		t.Run(name, func(t *testing.T) {
			value, err := ToStarlark(tc.in)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tc.want, FromStarlark(value)); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestToStarlarkObject(t *testing.T) {
	value, err := ToStarlark(point{X: 1, Y: 2})
	if err != nil {
		t.Fatal(err)
	}
	module, ok := value.(*Module)
	if !ok {
		t.Fatalf("want *Module, got %T", value)
	}
	if got := module.Type(); got != "host.point" {
		t.Errorf("Type: want host.point, got %s", got)
	}
	if diff := cmp.Diff([]string{"Sum", "X", "Y"}, module.AttrNames()); diff != "" {
		t.Errorf("AttrNames (-want +got):\n%s", diff)
	}

	sum, err := module.Attr("Sum")
	if err != nil {
		t.Fatal(err)
	}
	result, err := starlark.Call(&starlark.Thread{}, sum, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(int64(3), FromStarlark(result)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	missing, err := module.Attr("Z")
	if err != nil || missing != nil {
		t.Errorf("missing attribute: want (nil, nil), got (%v, %v)", missing, err)
	}
	if diff := cmp.Diff(point{X: 1, Y: 2}, FromStarlark(module)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestBuiltinVariadic(t *testing.T) {
	join := func(sep string, parts ...string) string {
		out := ""
		for i, p := range parts {
			if i > 0 {
				out += sep
			}
			out += p
		}
		return out
	}
	value, err := ToStarlark(join)
	if err != nil {
		t.Fatal(err)
	}
	result, err := starlark.Call(&starlark.Thread{}, value, starlark.Tuple{
		starlark.String("-"),
		starlark.String("a"),
		starlark.String("b"),
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff("a-b", FromStarlark(result)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestBuiltinNumericArguments(t *testing.T) {
	describe := func(small int8, count uint, ratio int) string {
		return fmt.Sprintf("%d/%d/%d", small, count, ratio)
	}
	value, err := ToStarlark(describe)
	if err != nil {
		t.Fatal(err)
	}

	for name, tc := range map[string]struct {
		args    starlark.Tuple
		want    string
		wantErr string
	}{
		"in range": {
			args: starlark.Tuple{starlark.MakeInt(-128), starlark.MakeInt(3), starlark.Float(4)},
			want: "-128/3/4",
		},
		"int8 overflow": {
			args:    starlark.Tuple{starlark.MakeInt(300), starlark.MakeInt(1), starlark.MakeInt(1)},
			wantErr: "argument 1: cannot use 300 as int8",
		},
		"negative unsigned": {
			args:    starlark.Tuple{starlark.MakeInt(1), starlark.MakeInt(-1), starlark.MakeInt(1)},
			wantErr: "argument 2: cannot use -1 as uint",
		},
		"fractional float": {
			args:    starlark.Tuple{starlark.MakeInt(1), starlark.MakeInt(1), starlark.Float(2.5)},
			wantErr: "argument 3: cannot use 2.5 as int",
		},
	} {
		t.Run(name, func(t *testing.T) {
			result, err := starlark.Call(&starlark.Thread{}, value, tc.args, nil)
			if tc.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
					t.Fatalf("error: want substring %q, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tc.want, FromStarlark(result)); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuiltinMultipleResults(t *testing.T) {
	divmod := func(a, b int) (int, int) { return a / b, a % b }
	value, err := ToStarlark(divmod)
	if err != nil {
		t.Fatal(err)
	}
	result, err := starlark.Call(&starlark.Thread{}, value, starlark.Tuple{
		starlark.MakeInt(7),
		starlark.MakeInt(2),
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]any{int64(3), int64(1)}, FromStarlark(result)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
