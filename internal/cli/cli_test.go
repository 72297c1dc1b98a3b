package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/ng-lang/ng/internal/parser"
)

func newTestLogger(verbose, debug bool) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := NewLogger(verbose, debug)
	l.SetOutput(&buf)
	l.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return l, &buf
}

func TestLoggerLevels(t *testing.T) {
	tests := []struct {
		verbose, debug bool
		expected       string
	}{
		{false, false, "[WARN] 03:04:05: w 1\n[ERROR] 03:04:05: e 2\n"},
		{true, false, "[INFO] 03:04:05: i\n[WARN] 03:04:05: w 1\n[ERROR] 03:04:05: e 2\n"},
		{true, true, "[INFO] 03:04:05: i\n[DEBUG] 03:04:05: d\n[WARN] 03:04:05: w 1\n[ERROR] 03:04:05: e 2\n"},
	}

	for i, tt := range tests {
		l, buf := newTestLogger(tt.verbose, tt.debug)
		l.Info("i")
		l.Debug("d")
		l.Warn("w %d", 1)
		l.Error("e %d", 2)
		if got := buf.String(); got != tt.expected {
			t.Fatalf("tests[%d] - log wrong. expected=%q, got=%q", i, tt.expected, got)
		}
	}
}

func TestLoggerColor(t *testing.T) {
	l, buf := newTestLogger(false, false)
	l.SetColor(true)
	l.Error("boom")
	got := buf.String()
	if !strings.Contains(got, "\x1b[") {
		t.Fatalf("coloured tag expected, got=%q", got)
	}
	if !strings.Contains(got, "[ERROR]") || !strings.HasSuffix(got, "03:04:05: boom\n") {
		t.Fatalf("log wrong, got=%q", got)
	}
}

const yamlConfig = `
verbose: true
color: never
language: ">= 0.1.0, < 1.0.0"
serve:
  addr: "127.0.0.1:9443"
  hosts: [localhost]
watch:
  debounce: 750ms
index:
  path: /tmp/ng.db
`

const tomlConfig = `
verbose = true
color = "never"
language = ">= 0.1.0, < 1.0.0"

[serve]
addr = "127.0.0.1:9443"
hosts = ["localhost"]

[watch]
debounce = "750ms"

[index]
path = "/tmp/ng.db"
`

const jsonConfig = `{
  "verbose": true,
  "color": "never",
  "language": ">= 0.1.0, < 1.0.0",
  "serve": {"addr": "127.0.0.1:9443", "hosts": ["localhost"]},
  "watch": {"debounce": "750ms"},
  "index": {"path": "/tmp/ng.db"}
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadConfigFormats(t *testing.T) {
	expected := DefaultConfig()
	expected.Verbose = true
	expected.Color = ColorNever
	expected.Language = ">= 0.1.0, < 1.0.0"
	expected.Serve.Addr = "127.0.0.1:9443"
	expected.Serve.Hosts = []string{"localhost"}
	expected.Watch.Debounce = Duration{750 * time.Millisecond}
	expected.Index.Path = "/tmp/ng.db"

	tests := []struct {
		name    string
		content string
	}{
		{"ng.yaml", yamlConfig},
		{"ng.yml", yamlConfig},
		{"ng.toml", tomlConfig},
		{"ng.json", jsonConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(writeFile(t, tt.name, tt.content))
			if err != nil {
				t.Fatalf("LoadConfig failed: %v", err)
			}
			if !reflect.DeepEqual(expected, cfg) {
				t.Fatalf("config wrong.\nexpected=%+v\ngot=%+v", expected, cfg)
			}
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	for _, path := range []string{"", filepath.Join(t.TempDir(), "missing.yaml")} {
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig(%q) failed: %v", path, err)
		}
		if !reflect.DeepEqual(DefaultConfig(), cfg) {
			t.Fatalf("LoadConfig(%q) should return defaults, got=%+v", path, cfg)
		}
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"ng.ini", "verbose=true"},
		{"ng.yaml", "color: sometimes"},
		{"ng.yaml", "language: \"not a constraint\""},
		{"ng.toml", "[watch]\ndebounce = \"soon\""},
		{"ng.json", "{"},
	}

	for i, tt := range tests {
		if _, err := LoadConfig(writeFile(t, tt.name, tt.content)); err == nil {
			t.Fatalf("tests[%d] - expected error for %s %q", i, tt.name, tt.content)
		}
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Debug = true
	cfg.Watch.Debounce = Duration{time.Second}

	for _, name := range []string{"out.json", "out.yaml", "out.toml"} {
		path := filepath.Join(t.TempDir(), name)
		if err := cfg.SaveConfig(path); err != nil {
			t.Fatalf("SaveConfig(%s) failed: %v", name, err)
		}
		loaded, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig(%s) failed: %v", name, err)
		}
		if !reflect.DeepEqual(cfg, loaded) {
			t.Fatalf("%s round trip wrong.\nexpected=%+v\ngot=%+v", name, cfg, loaded)
		}
	}
}

func TestCheckLanguage(t *testing.T) {
	tests := []struct {
		constraint string
		version    string
		ok         bool
	}{
		{"", "0.1.0", true},
		{">= 0.1.0", "0.1.0", true},
		{"^0.1", "0.1.3", true},
		{">= 1.0.0", "0.1.0", false},
		{"~0.2", "0.1.0", false},
	}

	for i, tt := range tests {
		cfg := &Config{Language: tt.constraint}
		err := cfg.CheckLanguage(tt.version)
		if (err == nil) != tt.ok {
			t.Fatalf("tests[%d] - CheckLanguage(%q, %q) wrong. expected ok=%t, got=%v",
				i, tt.constraint, tt.version, tt.ok, err)
		}
	}
}

func TestColorEnabled(t *testing.T) {
	var buf bytes.Buffer
	if !(&Config{Color: ColorAlways}).ColorEnabled(&buf) {
		t.Fatalf("always should enable colour")
	}
	if (&Config{Color: ColorNever}).ColorEnabled(os.Stderr) {
		t.Fatalf("never should disable colour")
	}
	f, err := os.Create(filepath.Join(t.TempDir(), "plain"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if (&Config{Color: ColorAuto}).ColorEnabled(f) {
		t.Fatalf("a regular file is not a terminal")
	}
	if (&Config{Color: ColorAuto}).ColorEnabled(&buf) {
		t.Fatalf("a buffer has no file descriptor and should not get colour")
	}
}

func TestReportError(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		err        error
		withLogger bool
		expected   string
	}{
		{nil, false, ""},
		{ErrReported, false, ""},
		{fmt.Errorf("parse: %w", ErrReported), true, ""},
		{boom, false, "Error: boom\n"},
		{boom, true, "[ERROR] 03:04:05: boom\n"},
	}

	for i, tt := range tests {
		var w bytes.Buffer
		var logger *Logger
		got := &w
		if tt.withLogger {
			logger, got = newTestLogger(false, false)
		}
		ReportError(&w, tt.err, logger)
		if got.String() != tt.expected {
			t.Fatalf("tests[%d] - report wrong. expected=%q, got=%q", i, tt.expected, got.String())
		}
		if tt.withLogger && w.Len() != 0 {
			t.Fatalf("tests[%d] - fallback writer used with a logger: %q", i, w.String())
		}
	}
}

func TestRenderDiagnostic(t *testing.T) {
	src := "val x = 1\nval y = \tx )"
	_, err := parser.ParseString(src)
	if err == nil {
		t.Fatalf("expected parse error")
	}

	var buf bytes.Buffer
	RenderDiagnostic(&buf, nil, err, src)
	expected := strings.Join([]string{
		"error: " + err.Error(),
		" --> 2:12",
		"  |",
		"2 | val y = \tx )",
		"  |         \t  ^",
		"",
	}, "\n")
	if got := buf.String(); got != expected {
		t.Fatalf("diagnostic wrong.\nexpected=%q\ngot=%q", expected, got)
	}
}

func TestRenderDiagnosticWithoutPosition(t *testing.T) {
	var buf bytes.Buffer
	RenderDiagnostic(&buf, nil, errors.New("plain failure"), "val x = 1")
	if got := buf.String(); got != "error: plain failure\n" {
		t.Fatalf("diagnostic wrong, got=%q", got)
	}
}

func TestPrintVersion(t *testing.T) {
	info := GetVersionInfo("0.1.0")

	var text bytes.Buffer
	if err := PrintVersion(&text, "ngc", info, false); err != nil {
		t.Fatalf("PrintVersion failed: %v", err)
	}
	if !strings.HasPrefix(text.String(), "ngc v"+Version+"\nLanguage: 0.1.0\n") {
		t.Fatalf("text output wrong, got=%q", text.String())
	}

	var js bytes.Buffer
	if err := PrintVersion(&js, "ngc", info, true); err != nil {
		t.Fatalf("PrintVersion failed: %v", err)
	}
	var decoded struct {
		Tool        string      `json:"tool"`
		VersionInfo VersionInfo `json:"version_info"`
	}
	if err := json.Unmarshal(js.Bytes(), &decoded); err != nil {
		t.Fatalf("json output invalid: %v", err)
	}
	if decoded.Tool != "ngc" || decoded.VersionInfo != *info {
		t.Fatalf("json output wrong: %+v", decoded)
	}
}
