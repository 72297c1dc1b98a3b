package netstack

import (
	"crypto/tls"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ng-lang/ng/internal/cli"
	"github.com/ng-lang/ng/internal/frontend"
	"github.com/ng-lang/ng/internal/resolver"
)

func fixtureSymbols(t *testing.T) *resolver.SymbolDict {
	t.Helper()
	unit, err := frontend.AnalyzeFile("../parser/testdata/sample.ng")
	if err != nil {
		t.Fatalf("AnalyzeFile failed: %v", err)
	}
	return unit.Symbols
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestLookupHandler(t *testing.T) {
	h := NewLookupHandler(fixtureSymbols(t), nil)

	tests := []struct {
		path          string
		expectedCode  int
		expectedFound bool
		expectedKind  string
		expectScope   bool
	}{
		{"fact::x", http.StatusOK, true, "Ident", false},
		{"fact", http.StatusOK, true, "Func", true},
		{"option::Some", http.StatusOK, true, "ProductCons", false},
		{"nothing", http.StatusOK, false, "", false},
		{"fact::nothing", http.StatusOK, false, "", false},
		{"hello::world", http.StatusNotFound, false, "", false},
	}

	for i, tt := range tests {
		rec := get(t, h, "/lookup?path="+tt.path)
		if rec.Code != tt.expectedCode {
			t.Fatalf("tests[%d] - status wrong. expected=%d, got=%d (%s)", i, tt.expectedCode, rec.Code, rec.Body.String())
		}
		if _, err := uuid.Parse(rec.Header().Get(RequestIDHeader)); err != nil {
			t.Fatalf("tests[%d] - request id is not a uuid: %q", i, rec.Header().Get(RequestIDHeader))
		}
		if tt.expectedCode != http.StatusOK {
			if !strings.Contains(rec.Body.String(), "world") {
				t.Fatalf("tests[%d] - error body should name the segment, got=%s", i, rec.Body.String())
			}
			continue
		}
		var res LookupResult
		if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
			t.Fatalf("tests[%d] - bad json: %v", i, err)
		}
		if res.Path != tt.path || res.Found != tt.expectedFound || res.Kind != tt.expectedKind {
			t.Fatalf("tests[%d] - result wrong: %+v", i, res)
		}
		if (res.Scope != int(resolver.NoScope)) != tt.expectScope {
			t.Fatalf("tests[%d] - scope wrong, got=%d", i, res.Scope)
		}
		if res.Found && res.Text == "" {
			t.Fatalf("tests[%d] - found symbol should carry its text", i)
		}
	}
}

func TestLookupHandlerMissingPath(t *testing.T) {
	h := NewLookupHandler(fixtureSymbols(t), nil)
	if rec := get(t, h, "/lookup"); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got=%d", rec.Code)
	}
}

func TestLookupHandlerScopes(t *testing.T) {
	dict := fixtureSymbols(t)
	h := NewLookupHandler(dict, nil)
	rec := get(t, h, "/scopes")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got=%d", rec.Code)
	}
	var scopes []ScopeInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &scopes); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if len(scopes) != dict.Tree().Len() {
		t.Fatalf("scope count wrong. expected=%d, got=%d", dict.Tree().Len(), len(scopes))
	}
	root := scopes[0]
	if root.ID != 0 || root.Parent != -1 || root.Kind != resolver.ScopeKindRoot.String() || root.Depth != 0 {
		t.Fatalf("root scope wrong: %+v", root)
	}
	if len(root.Names) != dict.Root().Len() {
		t.Fatalf("root names wrong: %v", root.Names)
	}
}

func TestLookupHandlerSwapAndLog(t *testing.T) {
	var buf strings.Builder
	logger := cli.NewLogger(false, true)
	logger.SetOutput(&buf)

	h := NewLookupHandler(fixtureSymbols(t), logger)
	unit, err := frontend.Analyze("swap.ng", "val answer = 42")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	h.Swap(unit.Symbols)

	var res LookupResult
	rec := get(t, h, "/lookup?path=answer")
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil || !res.Found || res.Text != "42" {
		t.Fatalf("swapped symbols not served: %s", rec.Body.String())
	}
	if !strings.Contains(buf.String(), "GET /lookup?path=answer") {
		t.Fatalf("request not logged:\n%s", buf.String())
	}
}

func TestGenerateSelfSignedTLS_UsesTLS13Min(t *testing.T) {
	cfg, err := GenerateSelfSignedTLS([]string{"localhost", "127.0.0.1"}, time.Hour)
	if err != nil {
		t.Fatalf("GenerateSelfSignedTLS error: %v", err)
	}
	if cfg.MinVersion != tls.VersionTLS13 || len(cfg.Certificates) != 1 {
		t.Fatalf("unexpected config: %#v", cfg)
	}
}

func TestWritePEMAndServerTLS(t *testing.T) {
	cfg, err := GenerateSelfSignedTLS([]string{"localhost"}, time.Hour)
	if err != nil {
		t.Fatalf("self-signed: %v", err)
	}
	dir := t.TempDir()
	certPath := filepath.Join(dir, "cert.pem")
	keyPath := filepath.Join(dir, "key.pem")
	if err := WritePEM(&cfg.Certificates[0], certPath, keyPath); err != nil {
		t.Fatalf("write pem: %v", err)
	}
	if _, err := os.Stat(keyPath); err != nil {
		t.Fatalf("missing key: %v", err)
	}

	loaded, err := ServerTLS(cli.ServeConfig{CertFile: certPath, KeyFile: keyPath})
	if err != nil {
		t.Fatalf("ServerTLS: %v", err)
	}
	if loaded.MinVersion != tls.VersionTLS13 {
		t.Fatalf("MinVersion not TLS1.3 after load: %v", loaded.MinVersion)
	}
	if _, err := ServerTLS(cli.ServeConfig{CertFile: certPath}); err == nil {
		t.Fatalf("expected error for cert without key")
	}
	if err := WritePEM(nil, certPath, keyPath); err == nil {
		t.Fatalf("expected error for nil certificate")
	}
}

func TestHTTP3Loopback(t *testing.T) {
	srvTLS, err := GenerateSelfSignedTLS([]string{"localhost", "127.0.0.1"}, time.Hour)
	if err != nil {
		t.Fatalf("self-signed: %v", err)
	}
	s := NewHTTP3Server("127.0.0.1:0", srvTLS, NewLookupHandler(fixtureSymbols(t), nil))
	addr, err := s.Start()
	if err != nil {
		t.Skip("http3 not supported here:", err)
	}
	defer s.Stop()

	client := HTTP3Client(&tls.Config{InsecureSkipVerify: true, MinVersion: tls.VersionTLS13}, 2*time.Second)
	defer ShutdownHTTP3(client)
	resp, err := client.Get("https://" + addr + "/lookup?path=fact::x")
	if err != nil {
		t.Skip("http3 dial failed:", err)
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	var res LookupResult
	if err := json.Unmarshal(b, &res); err != nil || res.Kind != "Ident" {
		t.Fatalf("unexpected: %q", string(b))
	}
}
