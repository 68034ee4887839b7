package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/tidwall/gjson"
)

// StripComments blanks out // line comments and /* */ block comments that sit
// outside JSON string literals. Newlines inside block comments are kept so
// decoder error offsets still point at the right line.
func StripComments(data []byte) []byte {
	out := make([]byte, 0, len(data))
	inString := false
	for i := 0; i < len(data); i++ {
		c := data[i]
		if inString {
			out = append(out, c)
			switch c {
			case '\\':
				if i+1 < len(data) {
					i++
					out = append(out, data[i])
				}
			case '"':
				inString = false
			}
			continue
		}
		if c == '"' {
			inString = true
			out = append(out, c)
			continue
		}
		if c == '/' && i+1 < len(data) {
			switch data[i+1] {
			case '/':
				i += 2
				for i < len(data) && data[i] != '\n' {
					i++
				}
				if i < len(data) {
					out = append(out, '\n')
				}
				continue
			case '*':
				i += 2
				for i < len(data) && !(data[i] == '*' && i+1 < len(data) && data[i+1] == '/') {
					if data[i] == '\n' {
						out = append(out, '\n')
					}
					i++
				}
				// skip the closing "*/"; an unterminated comment swallows the rest
				i++
				out = append(out, ' ')
				continue
			}
		}
		out = append(out, c)
	}
	return out
}

// Parse decodes a JSON-with-comments config file. The "extends" reference is
// returned separately and is not resolved here.
func Parse(data []byte) (*Config, string, error) {
	entries, extends, err := decodeEntries(StripComments(data))
	if err != nil {
		return nil, "", err
	}
	cfg := New()
	cfg.apply(entries)
	return cfg, extends, nil
}

// ParsePackageJSON extracts the embedded config block from a package.json.
// The boolean result is false when the descriptor has no such block.
func ParsePackageJSON(data []byte) (*Config, string, bool, error) {
	entries, extends, ok, err := decodePackageEntries(data)
	if err != nil || !ok {
		return nil, "", ok, err
	}
	cfg := New()
	cfg.apply(entries)
	return cfg, extends, true, nil
}

// HasPackageConfig reports whether package.json data embeds a config block.
func HasPackageConfig(data []byte) bool {
	return gjson.GetBytes(data, PackageConfigKey).Exists()
}

func decodePackageEntries(data []byte) (map[string]any, string, bool, error) {
	if !gjson.ValidBytes(data) {
		return nil, "", false, fmt.Errorf("invalid %s", PackageFileName)
	}
	block := gjson.GetBytes(data, PackageConfigKey)
	if !block.Exists() {
		return nil, "", false, nil
	}
	if !block.IsObject() {
		return nil, "", true, fmt.Errorf("%s.%s must be an object", PackageFileName, PackageConfigKey)
	}
	entries, extends, err := decodeEntries([]byte(block.Raw))
	return entries, extends, true, err
}

func decodeEntries(data []byte) (map[string]any, string, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]any{}, "", nil
	}
	var entries map[string]any
	if err := json.Unmarshal(data, &entries); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, "", fmt.Errorf("config must be a JSON object")
		}
		return nil, "", err
	}
	if entries == nil {
		// literal null
		return map[string]any{}, "", nil
	}
	var extends string
	if raw, ok := entries["extends"]; ok {
		s, isString := raw.(string)
		if !isString {
			return nil, "", fmt.Errorf("extends must be a string, got %T", raw)
		}
		extends = s
		delete(entries, "extends")
	}
	return entries, extends, nil
}

// apply sets entries in key order so globals edits are deterministic.
func (c *Config) apply(entries map[string]any) {
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		c.Set(k, entries[k])
	}
}
