package netstack

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/ng-lang/ng/internal/cli"
	"github.com/ng-lang/ng/internal/format"
	"github.com/ng-lang/ng/internal/resolver"
)

// RequestIDHeader carries the id assigned to every request.
const RequestIDHeader = "X-Request-ID"

// LookupResult is the body of a /lookup response.
type LookupResult struct {
	Path  string `json:"path"`
	Found bool   `json:"found"`
	Kind  string `json:"kind,omitempty"`
	// Scope is the id of the scope the symbol opens, -1 when it opens none.
	Scope int    `json:"scope"`
	Text  string `json:"text,omitempty"`
}

// ScopeInfo is one entry of a /scopes response.
type ScopeInfo struct {
	ID     int      `json:"id"`
	Parent int      `json:"parent"`
	Kind   string   `json:"kind"`
	Depth  int      `json:"depth"`
	Names  []string `json:"names"`
}

type errorBody struct {
	Error string `json:"error"`
}

// LookupHandler answers qualified lookups against a resolved program.
type LookupHandler struct {
	dict   atomic.Pointer[resolver.SymbolDict]
	logger *cli.Logger
	mux    *http.ServeMux
}

// NewLookupHandler serves GET /lookup?path=a::b and GET /scopes over dict.
// A nil logger disables request logging.
func NewLookupHandler(dict *resolver.SymbolDict, logger *cli.Logger) *LookupHandler {
	h := &LookupHandler{logger: logger, mux: http.NewServeMux()}
	h.dict.Store(dict)
	h.mux.HandleFunc("GET /lookup", h.lookup)
	h.mux.HandleFunc("GET /scopes", h.scopes)
	return h
}

// Swap replaces the symbols served by h.
func (h *LookupHandler) Swap(dict *resolver.SymbolDict) {
	h.dict.Store(dict)
}

func (h *LookupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()
	w.Header().Set(RequestIDHeader, id)
	if h.logger != nil {
		h.logger.Debug("%s %s %s", id, r.Method, r.URL.RequestURI())
	}
	h.mux.ServeHTTP(w, r)
}

func (h *LookupHandler) lookup(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "missing path parameter"})
		return
	}
	dict := h.dict.Load()
	node, err := dict.Lookup(path)
	if err != nil {
		var unexpected *resolver.UnexpectedSymbolError
		if errors.As(err, &unexpected) {
			writeJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: err.Error()})
		return
	}
	result := LookupResult{Path: path, Scope: int(resolver.NoScope)}
	if node != nil {
		result.Found = true
		result.Kind = node.Kind().String()
		result.Text = format.Node(node)
		if s, ok := dict.ScopeOf(node); ok {
			result.Scope = int(s.ID())
		}
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *LookupHandler) scopes(w http.ResponseWriter, r *http.Request) {
	scopes := h.dict.Load().Scopes()
	out := make([]ScopeInfo, 0, len(scopes))
	for _, s := range scopes {
		parent := int(resolver.NoScope)
		if p := s.Parent(); p != nil {
			parent = int(p.ID())
		}
		out = append(out, ScopeInfo{
			ID:     int(s.ID()),
			Parent: parent,
			Kind:   s.Kind().String(),
			Depth:  s.Depth(),
			Names:  s.Names(),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
