package loader

import (
	"errors"
	"io/fs"
	"reflect"
	"strings"
	"testing"
	"time"
)

// MemFS is an in-memory file system for testing.
type MemFS struct {
	files map[string][]byte
	err   error
}

func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

func (m *MemFS) AddFile(path string, content string) {
	m.files[path] = []byte(content)
}

func (m *MemFS) Open(name string) (fs.File, error) {
	return nil, fs.ErrNotExist
}

func (m *MemFS) ReadFile(path string) ([]byte, error) {
	if m.err != nil {
		return nil, m.err
	}
	data, ok := m.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return data, nil
}

func TestTOMLLoader_Load(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/config.toml", `
[browser]
show_hidden = true
scroll_off = 4

[keys.visual]
"<C-g>" = "visual.cycleAmend"
`)

	config, err := NewTOMLLoaderWithFS(memfs, "/config.toml").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if v, _ := GetByPath(config, "browser.show_hidden"); v != true {
		t.Errorf("browser.show_hidden = %v, want true", v)
	}
	if v, _ := GetByPath(config, "browser.scroll_off"); v != int64(4) {
		t.Errorf("browser.scroll_off = %v (%T), want 4", v, v)
	}
	if v, _ := GetByPath(config, "keys.visual.<C-g>"); v != "visual.cycleAmend" {
		t.Errorf("keys.visual.<C-g> = %v", v)
	}
}

func TestTOMLLoader_Missing(t *testing.T) {
	config, err := NewTOMLLoaderWithFS(NewMemFS(), "/nope.toml").Load()
	if err != nil || config != nil {
		t.Errorf("Load() = %v, %v; want nil, nil", config, err)
	}
}

func TestTOMLLoader_ReadError(t *testing.T) {
	memfs := NewMemFS()
	memfs.err = fs.ErrPermission
	_, err := NewTOMLLoaderWithFS(memfs, "/config.toml").Load()
	if !errors.Is(err, fs.ErrPermission) {
		t.Errorf("Load() error = %v, want permission error", err)
	}
}

func TestTOMLLoader_ParseError(t *testing.T) {
	memfs := NewMemFS()
	memfs.AddFile("/bad.toml", "[browser]\nshow_hidden = \n")

	_, err := NewTOMLLoaderWithFS(memfs, "/bad.toml").Load()
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("Load() error = %v, want ParseError", err)
	}
	if perr.Path != "/bad.toml" || perr.Line != 2 {
		t.Errorf("ParseError = %+v, want /bad.toml line 2", perr)
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestTOMLLoader_LoadFromReader(t *testing.T) {
	config, err := NewTOMLLoader("").LoadFromReader(strings.NewReader("[log]\nlevel = \"debug\"\n"))
	if err != nil {
		t.Fatalf("LoadFromReader failed: %v", err)
	}
	if v, _ := GetByPath(config, "log.level"); v != "debug" {
		t.Errorf("log.level = %v", v)
	}
}

func TestParseErrorFormat(t *testing.T) {
	tests := []struct {
		err  ParseError
		want string
	}{
		{ParseError{Path: "a", Line: 1, Column: 2, Message: "m"}, "parse error in a at line 1, column 2: m"},
		{ParseError{Path: "a", Line: 1, Message: "m"}, "parse error in a at line 1: m"},
		{ParseError{Path: "a", Message: "m"}, "parse error in a: m"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestDeepMerge(t *testing.T) {
	dst := map[string]any{
		"browser": map[string]any{"sort": "name", "scroll_off": int64(2)},
		"log":     map[string]any{"level": "info"},
	}
	src := map[string]any{
		"browser": map[string]any{"sort": "size"},
		"log":     "flat",
		"watch":   map[string]any{"enabled": false},
	}

	got := DeepMerge(dst, src)
	want := map[string]any{
		"browser": map[string]any{"sort": "size", "scroll_off": int64(2)},
		"log":     "flat",
		"watch":   map[string]any{"enabled": false},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DeepMerge() = %v, want %v", got, want)
	}

	if got := DeepMerge(nil, nil); got == nil || len(got) != 0 {
		t.Errorf("DeepMerge(nil, nil) = %v, want empty map", got)
	}
}

func TestPathHelpers(t *testing.T) {
	data := map[string]any{"browser": "scalar"}
	SetByPath(data, "marks.state_dir", "/s")
	SetByPath(data, "browser.sort", "mtime")

	if v, ok := GetByPath(data, "marks.state_dir"); !ok || v != "/s" {
		t.Errorf("marks.state_dir = %v, %v", v, ok)
	}
	if v, ok := GetByPath(data, "browser.sort"); !ok || v != "mtime" {
		t.Errorf("SetByPath should replace a scalar section, got %v, %v", v, ok)
	}
	if _, ok := GetByPath(data, "browser.sort.deeper"); ok {
		t.Error("GetByPath through a scalar should fail")
	}
	if _, ok := GetByPath(data, "watch.enabled"); ok {
		t.Error("GetByPath of a missing section should fail")
	}
}

func testEnv(vars ...string) func() []string {
	return func() []string { return vars }
}

func TestEnvLoader_Load(t *testing.T) {
	l := NewEnvLoader("FPANE_")
	l.environ = testEnv(
		"FPANE_LOG_LEVEL=debug",
		"FPANE_BROWSER_SCROLL_OFF=3",
		"FPANE_WATCH_DEBOUNCE=250ms",
		"FPANE_WATCH_ENABLED=off",
		"FPANE_STATE_DIR=/var/fpane",
		"FPANE_SHOW_HIDDEN=yes",
		"FPANE_DEBUG=1",
		"HOME=/root",
	)

	config, err := l.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := map[string]any{
		"log":     map[string]any{"level": "debug"},
		"browser": map[string]any{"scroll_off": int64(3), "show_hidden": true},
		"watch":   map[string]any{"debounce": 250 * time.Millisecond, "enabled": false},
		"marks":   map[string]any{"state_dir": "/var/fpane"},
	}
	if !reflect.DeepEqual(config, want) {
		t.Errorf("Load() = %v, want %v", config, want)
	}
}

func TestEnvLoader_AddMapping(t *testing.T) {
	l := NewEnvLoader("FPANE_")
	l.AddMapping("FPANE_LEVEL", "log.level")
	l.environ = testEnv("FPANE_LEVEL=warn")

	config, _ := l.Load()
	if v, _ := GetByPath(config, "log.level"); v != "warn" {
		t.Errorf("log.level = %v, want warn", v)
	}
}

func TestEnvLoader_envToPath(t *testing.T) {
	l := NewEnvLoader("FPANE_")
	tests := map[string]string{
		"FPANE_LOG_LEVEL":          "log.level",
		"FPANE_BROWSER_DIRS_FIRST": "browser.dirs_first",
		"FPANE_DEBUG":              "",
		"FPANE__X":                 "",
	}
	for env, want := range tests {
		if got := l.envToPath(env); got != want {
			t.Errorf("envToPath(%q) = %q, want %q", env, got, want)
		}
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"", ""},
		{"true", true},
		{"Off", false},
		{"42", int64(42)},
		{"1", int64(1)},
		{"2s", 2 * time.Second},
		{"size", "size"},
	}
	for _, tt := range tests {
		if got := parseValue(tt.in); got != tt.want {
			t.Errorf("parseValue(%q) = %v (%T), want %v (%T)", tt.in, got, got, tt.want, tt.want)
		}
	}
}
