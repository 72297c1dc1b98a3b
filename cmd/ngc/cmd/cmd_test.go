package cmd

import (
	"bytes"
	"crypto/tls"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ng-lang/ng/internal/index"
	"github.com/ng-lang/ng/internal/netstack"
)

const fixture = "../../../internal/parser/testdata/sample.ng"

// run executes ngc with args and returns what it wrote to stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	fmtWrite, fmtDiff, fmtList, versionJSON = false, false, false, false
	cfgFile, indexDB, serveAddr, serveCertDir = "", "", "", ""

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(append([]string{"--color=never"}, args...))
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeSource(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "main.ng")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestVersionCommand(t *testing.T) {
	out, _, err := run(t, "version", "--json")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(out, `"tool": "ngc"`) || !strings.Contains(out, `"language_version": "0.1.0"`) {
		t.Fatalf("unexpected output:\n%s", out)
	}
}

func TestTokensAndParseCommands(t *testing.T) {
	path := writeSource(t, "val x = 1\n")

	tests := []struct {
		args     []string
		expected []string
	}{
		{[]string{"tokens", path}, []string{"1:1", "VAL", `"x"`, "EQUAL", "NUM"}},
		{[]string{"parse", path}, []string{"Program", "  ValDecl x", "    NumLiteral 1"}},
	}

	for i, tt := range tests {
		out, _, err := run(t, tt.args...)
		if err != nil {
			t.Fatalf("tests[%d] - %v failed: %v", i, tt.args, err)
		}
		for _, want := range tt.expected {
			if !strings.Contains(out, want) {
				t.Fatalf("tests[%d] - output missing %q:\n%s", i, want, out)
			}
		}
	}
}

func TestResolveCommand(t *testing.T) {
	out, stderr, err := run(t, "resolve", fixture, "fact::x", "nothing", "hello::world")
	if !errors.Is(err, errReported) {
		t.Fatalf("expected reported error for hello::world, got=%v", err)
	}
	if !strings.Contains(out, "fact::x") || !strings.Contains(out, "Ident") {
		t.Fatalf("fact::x not resolved:\n%s", out)
	}
	if !strings.Contains(out, "not found") {
		t.Fatalf("missing name not reported:\n%s", out)
	}
	if !strings.Contains(stderr, "unexpected symbol 'world'") {
		t.Fatalf("unexpected symbol not logged:\n%s", stderr)
	}
}

func TestScopesCommand(t *testing.T) {
	out, _, err := run(t, "scopes", fixture)
	if err != nil {
		t.Fatalf("scopes failed: %v", err)
	}
	for _, want := range []string{"root#0", "fact Func function#", "if#", "branch#"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFmtCommand(t *testing.T) {
	path := writeSource(t, "val   x =   1\nfun id   a = a")

	out, _, err := run(t, "fmt", "-d", path)
	if err != nil {
		t.Fatalf("fmt -d failed: %v", err)
	}
	if !strings.Contains(out, "-val   x =   1") || !strings.Contains(out, "+val x = 1") {
		t.Fatalf("unexpected diff:\n%s", out)
	}

	if _, _, err := run(t, "fmt", "-w", path); err != nil {
		t.Fatalf("fmt -w failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	expected := "val x = 1\n\nfun id a = a\n"
	if string(data) != expected {
		t.Fatalf("file not rewritten. expected=%q, got=%q", expected, string(data))
	}

	out, _, err = run(t, "fmt", "-l", path)
	if err != nil || out != "" {
		t.Fatalf("formatted file should not be listed, got=%q err=%v", out, err)
	}
}

func TestFmtFallsBackOnParseError(t *testing.T) {
	path := writeSource(t, "val x = 1  \nval = 2\t\n")

	out, stderr, err := run(t, "fmt", "-d", path)
	if !errors.Is(err, errReported) {
		t.Fatalf("expected reported error, got=%v", err)
	}
	if !strings.Contains(stderr, "--> "+path+":2:5") || !strings.Contains(stderr, "only whitespace is cleaned") {
		t.Fatalf("diagnostic or warning missing:\n%s", stderr)
	}
	if !strings.Contains(out, "-val x = 1  ") || !strings.Contains(out, "+val x = 1\n") {
		t.Fatalf("unexpected diff:\n%s", out)
	}

	if _, _, err := run(t, "fmt", "-w", path); !errors.Is(err, errReported) {
		t.Fatalf("expected reported error, got=%v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if expected := "val x = 1\nval = 2\n"; string(data) != expected {
		t.Fatalf("whitespace not cleaned. expected=%q, got=%q", expected, string(data))
	}
}

func TestColorFollowsErrorWriter(t *testing.T) {
	path := writeSource(t, "val = 2\n")

	_, stderr, err := run(t, "--color=auto", "parse", path)
	if !errors.Is(err, errReported) {
		t.Fatalf("expected reported error, got=%v", err)
	}
	if strings.Contains(stderr, "\x1b[") {
		t.Fatalf("auto colour should be off for a buffer, got=%q", stderr)
	}

	_, stderr, _ = run(t, "--color=always", "parse", path)
	if !strings.Contains(stderr, "\x1b[") {
		t.Fatalf("always should colour the diagnostic, got=%q", stderr)
	}
}

func TestDiagnosticOnError(t *testing.T) {
	path := writeSource(t, "val x = 1\nval = 2\n")
	_, stderr, err := run(t, "parse", path)
	if !errors.Is(err, errReported) {
		t.Fatalf("expected reported error, got=%v", err)
	}
	for _, want := range []string{"error: parse " + path, "--> " + path + ":2:5", "2 | val = 2", "^"} {
		if !strings.Contains(stderr, want) {
			t.Fatalf("diagnostic missing %q:\n%s", want, stderr)
		}
	}
}

func TestLanguageConstraint(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "ngc.yaml")
	if err := os.WriteFile(cfgPath, []byte("language: \">= 2.0\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, _, err := run(t, "--config", cfgPath, "tokens", writeSource(t, "val x = 1"))
	if err == nil || !strings.Contains(err.Error(), "does not satisfy") {
		t.Fatalf("expected language constraint error, got=%v", err)
	}
}

func TestIndexCommands(t *testing.T) {
	db := filepath.Join(t.TempDir(), "ng-index.db")
	store, err := index.Open(db)
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	store.Close()

	out, _, err := run(t, "index", "--db", db, fixture)
	if err != nil {
		t.Fatalf("index failed: %v", err)
	}
	runID := strings.TrimSpace(out)

	out, _, err = run(t, "index", "runs", "--db", db)
	if err != nil || !strings.Contains(out, runID) {
		t.Fatalf("run not listed, err=%v:\n%s", err, out)
	}

	out, _, err = run(t, "index", "lookup", "--db", db, runID, "fact::x")
	if err != nil || !strings.Contains(out, "Ident") {
		t.Fatalf("lookup failed, err=%v:\n%s", err, out)
	}
}

func TestWriteServeCert(t *testing.T) {
	tlsCfg, err := netstack.GenerateSelfSignedTLS([]string{"localhost"}, time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	dir := filepath.Join(t.TempDir(), "certs")
	certPath, err := writeServeCert(dir, tlsCfg)
	if err != nil {
		t.Fatalf("writeServeCert failed: %v", err)
	}
	if _, err := netstack.LoadTLSConfig(certPath, filepath.Join(dir, "key.pem")); err != nil {
		t.Fatalf("written pair does not load: %v", err)
	}

	if _, err := writeServeCert(dir, &tls.Config{}); err == nil {
		t.Fatalf("expected error without a certificate")
	}
}
