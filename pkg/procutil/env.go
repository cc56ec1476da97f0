package procutil

import (
	"os"
	"sort"
	"strings"
)

type EnvVar string

const (
	// NSPROXY_DEBUG turns on debug logging in the nsproxy command when the
	// -log_level flag is not given.
	NSPROXY_DEBUG = EnvVar("NSPROXY_DEBUG")
)

func LookupBoolEnv(name EnvVar, defaultValue bool) bool {
	if val, ok := os.LookupEnv(string(name)); ok {
		switch strings.ToLower(val) {
		case "true", "1":
			return true
		case "false", "0":
			return false
		}
	}
	return defaultValue
}

func LookupEnv(name EnvVar) (string, bool) {
	return os.LookupEnv(string(name))
}

// EnvNames returns the sorted names of the environment variables that start
// with prefix, with the prefix trimmed.  Names that are empty after trimming
// are skipped.
func EnvNames(prefix string) []string {
	var names []string
	for _, kv := range os.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		rest, ok := strings.CutPrefix(name, prefix)
		if !ok || rest == "" {
			continue
		}
		names = append(names, rest)
	}
	sort.Strings(names)
	return names
}
