package collections

import "strings"

// StringSlice is a flag.Value that collects a list of strings from repeated
// flags, each of which may itself be a comma-separated list.  Empty elements
// are dropped.
type StringSlice []string

func (i *StringSlice) String() string {
	return strings.Join(*i, ",")
}

// Set implements the flag.Value interface.
func (i *StringSlice) Set(value string) error {
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			*i = append(*i, v)
		}
	}
	return nil
}
