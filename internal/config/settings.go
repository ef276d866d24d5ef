package config

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/dshills/fpane/internal/config/loader"
	"github.com/dshills/fpane/internal/entry"
	"github.com/dshills/fpane/internal/logging"
)

// setting decodes one scalar setting into a Config.
type setting struct {
	path  string
	apply func(c *Config, path string, v any) error
}

var settings = []setting{
	{"browser.show_hidden", boolSetting(func(c *Config) *bool { return &c.Browser.ShowHidden })},
	{"browser.dirs_first", boolSetting(func(c *Config) *bool { return &c.Browser.DirsFirst })},
	{"browser.sort", func(c *Config, path string, v any) error {
		s, err := asString(path, v)
		if err != nil {
			return err
		}
		if c.Browser.Sort, err = entry.ParseSortKey(s); err != nil {
			return &ValidationError{Path: path, Message: "expected name, size or mtime", Value: v, Code: ErrCodeInvalidEnum}
		}
		return nil
	}},
	{"browser.scroll_off", func(c *Config, path string, v any) error {
		n, err := asInt(path, v)
		if err != nil {
			return err
		}
		if n < 0 {
			return &ValidationError{Path: path, Message: "must not be negative", Value: v, Code: ErrCodeOutOfRange}
		}
		c.Browser.ScrollOff = n
		return nil
	}},
	{"marks.persist", boolSetting(func(c *Config) *bool { return &c.Marks.Persist })},
	{"marks.state_dir", stringSetting(func(c *Config) *string { return &c.Marks.StateDir })},
	{"watch.enabled", boolSetting(func(c *Config) *bool { return &c.Watch.Enabled })},
	{"watch.debounce", func(c *Config, path string, v any) error {
		d, err := asDuration(path, v)
		if err != nil {
			return err
		}
		if d <= 0 {
			return &ValidationError{Path: path, Message: "must be positive", Value: v, Code: ErrCodeOutOfRange}
		}
		c.Watch.Debounce = d
		return nil
	}},
	{"log.level", func(c *Config, path string, v any) error {
		s, err := asString(path, v)
		if err != nil {
			return err
		}
		if c.Log.Level, err = logging.ParseLevel(s); err != nil {
			return &ValidationError{Path: path, Message: "expected debug, info, warn or error", Value: v, Code: ErrCodeInvalidEnum}
		}
		return nil
	}},
	{"log.file", stringSetting(func(c *Config) *string { return &c.Log.File })},
}

// keyTables are free-form tables of key notation to action name.
var keyTables = map[string]func(c *Config) *map[string]string{
	"keys.normal": func(c *Config) *map[string]string { return &c.Keys.Normal },
	"keys.visual": func(c *Config) *map[string]string { return &c.Keys.Visual },
}

func decode(c *Config, data map[string]any) error {
	for _, s := range settings {
		v, ok := loader.GetByPath(data, s.path)
		if !ok {
			continue
		}
		if err := s.apply(c, s.path, v); err != nil {
			return err
		}
	}

	paths := make([]string, 0, len(keyTables))
	for p := range keyTables {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		v, ok := loader.GetByPath(data, p)
		if !ok {
			continue
		}
		table, ok := v.(map[string]any)
		if !ok {
			return typeMismatch(p, "table", v)
		}
		out := make(map[string]string, len(table))
		for k, action := range table {
			s, ok := action.(string)
			if !ok {
				return typeMismatch(p+"."+k, "string", action)
			}
			out[k] = s
		}
		*keyTables[p](c) = out
	}
	return nil
}

// checkKnown reports the first unrecognized setting in a file.
func checkKnown(data map[string]any) error {
	known := make(map[string]bool, len(settings))
	for _, s := range settings {
		known[s.path] = true
	}

	sections := make([]string, 0, len(data))
	for k := range data {
		sections = append(sections, k)
	}
	sort.Strings(sections)

	for _, section := range sections {
		table, ok := data[section].(map[string]any)
		if !ok {
			return typeMismatch(section, "table", data[section])
		}
		names := make([]string, 0, len(table))
		for k := range table {
			names = append(names, k)
		}
		sort.Strings(names)
		for _, name := range names {
			p := section + "." + name
			if known[p] {
				continue
			}
			if _, ok := keyTables[p]; ok {
				continue
			}
			return &ValidationError{Path: p, Message: "unknown setting", Code: ErrCodeUnknownSetting}
		}
	}
	return nil
}

func boolSetting(field func(*Config) *bool) func(*Config, string, any) error {
	return func(c *Config, path string, v any) error {
		switch b := v.(type) {
		case bool:
			*field(c) = b
		case int64:
			// FPANE_X=0 and FPANE_X=1 arrive as integers.
			if b != 0 && b != 1 {
				return typeMismatch(path, "bool", v)
			}
			*field(c) = b == 1
		default:
			return typeMismatch(path, "bool", v)
		}
		return nil
	}
}

func stringSetting(field func(*Config) *string) func(*Config, string, any) error {
	return func(c *Config, path string, v any) error {
		s, err := asString(path, v)
		if err != nil {
			return err
		}
		*field(c) = s
		return nil
	}
}

func asString(path string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", typeMismatch(path, "string", v)
	}
	return strings.TrimSpace(s), nil
}

func asInt(path string, v any) (int, error) {
	switch n := v.(type) {
	case int64:
		if n > math.MaxInt32 || n < math.MinInt32 {
			return 0, &ValidationError{Path: path, Message: "out of range", Value: v, Code: ErrCodeOutOfRange}
		}
		return int(n), nil
	case int:
		return n, nil
	default:
		return 0, typeMismatch(path, "integer", v)
	}
}

func asDuration(path string, v any) (time.Duration, error) {
	switch d := v.(type) {
	case time.Duration:
		return d, nil
	case string:
		parsed, err := time.ParseDuration(d)
		if err != nil {
			return 0, &ValidationError{Path: path, Message: fmt.Sprintf("invalid duration: %v", err), Value: v, Code: ErrCodeTypeMismatch}
		}
		return parsed, nil
	case int64:
		// Bare numbers are milliseconds.
		return time.Duration(d) * time.Millisecond, nil
	default:
		return 0, typeMismatch(path, "duration", v)
	}
}
