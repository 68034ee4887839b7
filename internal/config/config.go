package config

import (
	"maps"
	"strconv"
	"strings"
)

// FileName is the dedicated linter config file looked up in every candidate directory.
const FileName = ".jshintrc"

// PackageFileName is the package descriptor that may embed a config block.
const PackageFileName = "package.json"

// PackageConfigKey is the key of the embedded config block inside package.json.
const PackageConfigKey = "jshintConfig"

// Options maps linter option names to their values (bool, float64, string or
// whatever the JSON decoder produced). No schema is applied.
type Options map[string]any

// Globals maps pre-declared identifiers to whether they are assignable.
type Globals map[string]bool

// Config is the merged view of every config file that applies to a source file.
type Config struct {
	Options Options
	Globals Globals
	// Sources lists contributing files, lowest precedence first.
	Sources []string
}

// New returns an empty config.
func New() *Config {
	return &Config{
		Options: make(Options),
		Globals: make(Globals),
	}
}

// Clone returns a deep copy of the maps and the source list.
func (c *Config) Clone() *Config {
	if c == nil {
		return New()
	}
	out := &Config{
		Options: make(Options, len(c.Options)),
		Globals: make(Globals, len(c.Globals)),
		Sources: append([]string(nil), c.Sources...),
	}
	maps.Copy(out.Options, c.Options)
	maps.Copy(out.Globals, c.Globals)
	return out
}

// Merge overlays over onto c. Keys present in over win; everything else in c is kept.
func (c *Config) Merge(over *Config) {
	if over == nil {
		return
	}
	if c.Options == nil {
		c.Options = make(Options, len(over.Options))
	}
	if c.Globals == nil {
		c.Globals = make(Globals, len(over.Globals))
	}
	maps.Copy(c.Options, over.Options)
	maps.Copy(c.Globals, over.Globals)
	c.Sources = append(c.Sources, over.Sources...)
}

// Set stores an option, routing globals keys into Globals.
func (c *Config) Set(key string, value any) {
	if isGlobalsKey(key) {
		c.setGlobals(value)
		return
	}
	if c.Options == nil {
		c.Options = make(Options)
	}
	c.Options[key] = Normalize(value)
}

// Empty reports whether neither options nor globals are set.
func (c *Config) Empty() bool {
	return c == nil || (len(c.Options) == 0 && len(c.Globals) == 0)
}

func (c *Config) setGlobals(value any) {
	if c.Globals == nil {
		c.Globals = make(Globals)
	}
	switch v := value.(type) {
	case map[string]any:
		for name, assignable := range v {
			c.Globals[name] = isTrue(assignable)
		}
	case []any:
		for _, item := range v {
			name, ok := item.(string)
			if !ok || name == "" {
				continue
			}
			// "-name" removes a global declared by a base config
			if strings.HasPrefix(name, "-") {
				delete(c.Globals, name[1:])
				continue
			}
			c.Globals[name] = false
		}
	case string:
		// predef as a comma separated list, as accepted on the command line
		for _, name := range strings.Split(v, ",") {
			name = strings.TrimSpace(name)
			if name != "" {
				c.Globals[name] = false
			}
		}
	}
}

// Normalize turns the boolean-like strings "true" and "false" into booleans.
// Other values are returned unchanged.
func Normalize(value any) any {
	if s, ok := value.(string); ok {
		switch s {
		case "true":
			return true
		case "false":
			return false
		}
	}
	return value
}

// ParseOverride splits an inline "key:value" override and normalizes its value.
// Numbers decode as float64 so they look the same as values read from JSON.
func ParseOverride(s string) (string, any, error) {
	key, raw, ok := strings.Cut(s, ":")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return "", nil, &OverrideError{Input: s}
	}
	raw = strings.TrimSpace(raw)
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return key, n, nil
	}
	return key, Normalize(raw), nil
}

func isTrue(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t == "true"
	}
	return false
}

func isGlobalsKey(key string) bool {
	return key == "globals" || key == "global" || key == "predef"
}
