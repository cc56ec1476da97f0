package main

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pcj/mobyprogress"

	"github.com/stackb/nsproxy/pkg/collections"
	"github.com/stackb/nsproxy/pkg/testutil"
)

const testConfig = `
namespaces:
  - name: mymath
    values: {PI: 3.5, E: 2.5}
  - name: consts
    alias: mymath
    include: ["P*"]
`

func TestParseFlags(t *testing.T) {
	for name, tc := range map[string]struct {
		args    []string
		wantErr error
		want    *settings
	}{
		"nothing to do": {
			wantErr: fmt.Errorf("nothing to do: one of -expr, -js, -list or a script is required"),
		},
		"unsupported script": {
			args:    []string{"script.py"},
			wantErr: fmt.Errorf(`unsupported script "script.py": want a .star or .js file`),
		},
		"expr": {
			args: []string{"-config", "ns.yaml", "-expr", "mymath.PI"},
			want: &settings{configFile: "ns.yaml", logLevel: "info", expr: "mymath.PI"},
		},
		"scripts": {
			args: []string{"-log_level", "debug", "-dump", "-progress", "a.star", "b.js"},
			want: &settings{logLevel: "debug", dump: true, progress: true, scripts: []string{"a.star", "b.js"}},
		},
		"namespaces": {
			args: []string{"-namespace", "a,b", "-namespace", "c", "-expr", "a.x"},
			want: &settings{logLevel: "info", expr: "a.x", namespaces: collections.StringSlice{"a", "b", "c"}},
		},
	} {
		t.Run(name, func(t *testing.T) {
			got, err := parseFlags(tc.args)
			if testutil.ExpectError(t, tc.wantErr, err) {
				return
			}
			if diff := cmp.Diff(tc.want, got, cmp.AllowUnexported(settings{})); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestRun(t *testing.T) {
	dir, _ := testutil.MustWriteTestFiles(t, []testutil.FileSpec{
		{Path: "nsproxy.yaml", Content: testConfig},
		{Path: "hello.star", Content: `
load("mymath", "PI")
print("pi is", PI)
print("e is", mymath.E)
`},
		{Path: "hello.js", Content: `consts.PI * 2`},
	})
	configFile := filepath.Join(dir, "nsproxy.yaml")

	for name, tc := range map[string]struct {
		cfg  settings
		want string
	}{
		"list": {
			cfg:  settings{list: true},
			want: "consts: PI\nmymath: E, PI\n",
		},
		"expr": {
			cfg:  settings{expr: "mymath.PI + mymath.E"},
			want: "6\n",
		},
		"expr with namespaces": {
			cfg:  settings{expr: "consts.PI", namespaces: collections.StringSlice{"consts"}},
			want: "3.5\n",
		},
		"js": {
			cfg:  settings{js: `consts.PI > mymath.E`},
			want: "true\n",
		},
		"starlark script": {
			cfg:  settings{scripts: []string{filepath.Join(dir, "hello.star")}},
			want: "pi is 3.5\ne is 2.5\n",
		},
		"js script": {
			cfg:  settings{scripts: []string{filepath.Join(dir, "hello.js")}},
			want: "7\n",
		},
	} {
		t.Run(name, func(t *testing.T) {
			cfg := tc.cfg
			cfg.configFile = configFile
			var out bytes.Buffer
			if err := run(&cfg, testutil.NewTestLogger(t), &out, nil); err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tc.want, out.String()); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

type recordingProgress struct {
	updates []mobyprogress.Progress
}

func (r *recordingProgress) WriteProgress(p mobyprogress.Progress) error {
	r.updates = append(r.updates, p)
	return nil
}

func TestRunProgress(t *testing.T) {
	dir, _ := testutil.MustWriteTestFiles(t, []testutil.FileSpec{
		{Path: "a.star", Content: `x = 1`},
		{Path: "b.star", Content: `y = 2`},
	})

	prog := &recordingProgress{}
	cfg := &settings{scripts: []string{filepath.Join(dir, "a.star"), filepath.Join(dir, "b.star")}}
	if err := run(cfg, testutil.NewTestLogger(t), &bytes.Buffer{}, prog); err != nil {
		t.Fatal(err)
	}

	want := []mobyprogress.Progress{
		{ID: "scripts", Action: "a.star", Current: 0, Total: 2, Units: "scripts"},
		{ID: "scripts", Action: "a.star", Current: 1, Total: 2, Units: "scripts"},
		{ID: "scripts", Action: "b.star", Current: 1, Total: 2, Units: "scripts"},
		{ID: "scripts", Action: "b.star", Current: 2, Total: 2, Units: "scripts", LastUpdate: true},
	}
	if diff := cmp.Diff(want, prog.updates); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestRunDump(t *testing.T) {
	_, filenames := testutil.MustWriteTestFiles(t, []testutil.FileSpec{
		{Path: "nsproxy.yaml", Content: testConfig},
	})

	var out bytes.Buffer
	cfg := &settings{configFile: filenames[0], expr: "mymath.PI", dump: true}
	if err := run(cfg, testutil.NewTestLogger(t), &out, nil); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); !strings.Contains(got, "(float64) 3.5") {
		t.Errorf("want spew output, got %q", got)
	}
}

func TestRunErrors(t *testing.T) {
	for name, tc := range map[string]struct {
		cfg     settings
		wantErr string
	}{
		"missing config": {
			cfg:     settings{configFile: "/nonexistent/nsproxy.yaml", list: true},
			wantErr: "no such file",
		},
		"unknown namespace in expr": {
			cfg:     settings{expr: "nope.x"},
			wantErr: "-expr:",
		},
		"missing script": {
			cfg:     settings{scripts: []string{"/nonexistent/script.star"}},
			wantErr: "/nonexistent/script.star",
		},
	} {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			err := run(&tc.cfg, testutil.NewTestLogger(t), &out, nil)
			if err == nil {
				t.Fatalf("expected error containing %q", tc.wantErr)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error: want substring %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger("warn", &buf)
	if err != nil {
		t.Fatal(err)
	}
	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")
	if got := buf.String(); strings.Contains(got, "hidden") || !strings.Contains(got, "shown") {
		t.Errorf("unexpected log output: %q", got)
	}

	if _, err := newLogger("loud", &buf); err == nil {
		t.Error("invalid level: expected error")
	}
}
