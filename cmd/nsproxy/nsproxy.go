package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/pcj/mobyprogress"
	"github.com/rs/zerolog"
	_ "google.golang.org/protobuf/types/known/durationpb"
	_ "google.golang.org/protobuf/types/known/structpb"
	_ "google.golang.org/protobuf/types/known/timestamppb"

	"github.com/stackb/nsproxy/pkg/collections"
	"github.com/stackb/nsproxy/pkg/config"
	"github.com/stackb/nsproxy/pkg/host"
	"github.com/stackb/nsproxy/pkg/namespace"
	"github.com/stackb/nsproxy/pkg/procutil"
	"github.com/stackb/nsproxy/pkg/registry"
)

const (
	executableName = "nsproxy"
)

type settings struct {
	configFile string
	logLevel   string
	expr       string
	js         string
	namespaces collections.StringSlice
	list       bool
	dump       bool
	progress   bool
	scripts    []string
}

func main() {
	log.SetPrefix(executableName + ": ")
	log.SetFlags(0) // don't print timestamps

	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	logger, err := newLogger(cfg.logLevel, os.Stderr)
	if err != nil {
		log.Fatal(err)
	}

	var prog mobyprogress.Output
	if cfg.progress {
		prog = mobyprogress.NewProgressOutput(mobyprogress.NewOut(os.Stderr))
	}

	if err := run(cfg, logger, os.Stdout, prog); err != nil {
		log.Fatalln("ERROR:", err)
	}
}

func parseFlags(args []string) (*settings, error) {
	cfg := new(settings)

	defaultLevel := "info"
	if procutil.LookupBoolEnv(procutil.NSPROXY_DEBUG, false) {
		defaultLevel = "debug"
	}

	fs := flag.NewFlagSet(executableName, flag.ContinueOnError)
	fs.StringVar(&cfg.configFile, "config", "", "the YAML file that declares namespaces")
	fs.StringVar(&cfg.logLevel, "log_level", defaultLevel, "the log level (debug, info, warn, error)")
	fs.StringVar(&cfg.expr, "expr", "", "an expr-lang expression to evaluate against the namespaces")
	fs.StringVar(&cfg.js, "js", "", "a JavaScript expression to evaluate against the namespaces")
	fs.Var(&cfg.namespaces, "namespace", "a namespace to expose to -expr; repeatable (default: every top-level namespace)")
	fs.BoolVar(&cfg.list, "list", false, "list the registered namespaces and their names")
	fs.BoolVar(&cfg.dump, "dump", false, "print results with go-spew")
	fs.BoolVar(&cfg.progress, "progress", false, "report script progress on stderr")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: %s OPTIONS [SCRIPT.star|SCRIPT.js...]\n", executableName)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if args := fs.Args(); len(args) > 0 {
		cfg.scripts = args
	}

	if cfg.expr == "" && cfg.js == "" && !cfg.list && len(cfg.scripts) == 0 {
		return nil, fmt.Errorf("nothing to do: one of -expr, -js, -list or a script is required")
	}
	for _, script := range cfg.scripts {
		switch filepath.Ext(script) {
		case ".star", ".js":
		default:
			return nil, fmt.Errorf("unsupported script %q: want a .star or .js file", script)
		}
	}

	return cfg, nil
}

func newLogger(level string, w io.Writer) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w}).
		Level(lvl).
		With().
		Timestamp().
		Logger(), nil
}

func run(cfg *settings, logger zerolog.Logger, out io.Writer, prog mobyprogress.Output) error {
	im := namespace.NewImporter(
		registry.New(registry.WithLogger(logger)),
		namespace.WithImporterLogger(logger),
	)

	if cfg.configFile != "" {
		c, err := config.ReadFile(cfg.configFile)
		if err != nil {
			return err
		}
		if err := c.Apply(im, logger); err != nil {
			return err
		}
	}

	if cfg.list {
		if err := list(im, out); err != nil {
			return err
		}
	}

	for i, script := range cfg.scripts {
		if prog != nil {
			writeScriptProgress(prog, script, i, len(cfg.scripts), false)
		}
		if err := runScript(im, script, logger, out, cfg.dump); err != nil {
			return fmt.Errorf("%s: %w", script, err)
		}
		if prog != nil {
			writeScriptProgress(prog, script, i+1, len(cfg.scripts), i+1 == len(cfg.scripts))
		}
	}

	if cfg.expr != "" {
		result, err := host.EvalExpr(im, cfg.expr, cfg.namespaces...)
		if err != nil {
			return fmt.Errorf("-expr: %w", err)
		}
		printResult(out, result, cfg.dump)
	}

	if cfg.js != "" {
		result, err := host.EvalJS(im, cfg.js)
		if err != nil {
			return fmt.Errorf("-js: %w", err)
		}
		printResult(out, result, cfg.dump)
	}

	return nil
}

func list(im *namespace.Importer, out io.Writer) error {
	for _, name := range im.Registry().Names() {
		ns, err := im.Import(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s: %s\n", name, strings.Join(ns.Names(), ", "))
	}
	return nil
}

func runScript(im *namespace.Importer, filename string, logger zerolog.Logger, out io.Writer, dump bool) error {
	switch filepath.Ext(filename) {
	case ".js":
		src, err := os.ReadFile(filename)
		if err != nil {
			return err
		}
		result, err := host.RunJS(im, filename, string(src))
		if err != nil {
			return err
		}
		if result != nil {
			printResult(out, result, dump)
		}
		return nil
	default:
		f, err := os.Open(filename)
		if err != nil {
			return err
		}
		defer f.Close()
		interp := host.NewInterpreter(im, func(format string, args ...interface{}) {
			fmt.Fprintf(out, format+"\n", args...)
		})
		globals, err := interp.Exec(filename, f)
		if err != nil {
			return err
		}
		logger.Debug().Strs("globals", globals.Keys()).Str("script", filename).Msg("executed")
		return nil
	}
}

func writeScriptProgress(output mobyprogress.Output, script string, current, total int, lastUpdate bool) {
	output.WriteProgress(mobyprogress.Progress{
		ID:         "scripts",
		Action:     filepath.Base(script),
		Current:    int64(current),
		Total:      int64(total),
		Units:      "scripts",
		LastUpdate: lastUpdate,
	})
}

func printResult(out io.Writer, result any, dump bool) {
	if dump {
		spew.Fdump(out, result)
		return
	}
	fmt.Fprintln(out, result)
}
