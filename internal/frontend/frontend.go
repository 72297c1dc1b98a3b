// Package frontend runs the ng front end over one compilation unit: lexing,
// parsing and resolution, in that order.
package frontend

import (
	"fmt"
	"os"
	"time"

	"github.com/ng-lang/ng/internal/ast"
	"github.com/ng-lang/ng/internal/cli"
	"github.com/ng-lang/ng/internal/lexer"
	"github.com/ng-lang/ng/internal/parser"
	"github.com/ng-lang/ng/internal/resolver"
)

// LanguageVersion is the version of the ng language this front end accepts.
const LanguageVersion = "0.1.0"

// Stage is one step of the pipeline.
type Stage int

const (
	StageLex Stage = iota
	StageParse
	StageResolve
)

func (s Stage) String() string {
	switch s {
	case StageLex:
		return "lex"
	case StageParse:
		return "parse"
	case StageResolve:
		return "resolve"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// Unit is the result of analyzing one source. Fields past the last stage
// that ran are nil.
type Unit struct {
	Name    string
	Source  string
	Tokens  []lexer.Token
	Program *ast.Program
	Symbols *resolver.SymbolDict
}

// StageError wraps the first error of a stage.
type StageError struct {
	Stage Stage
	Name  string
	Err   error
}

func (e *StageError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("%s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Stage, e.Name, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

type options struct {
	logger *cli.Logger
	last   Stage
	cache  *Cache
}

// Option configures Analyze.
type Option func(*options)

// WithLogger logs stage timings at debug level.
func WithLogger(l *cli.Logger) Option {
	return func(o *options) { o.logger = l }
}

// UpTo stops the pipeline after stage s.
func UpTo(s Stage) Option {
	return func(o *options) { o.last = s }
}

// WithCache reuses units analyzed earlier from identical input.
func WithCache(c *Cache) Option {
	return func(o *options) { o.cache = c }
}

// Analyze runs the pipeline over source. name is used in positions and
// error messages.
func Analyze(name, source string, opts ...Option) (*Unit, error) {
	o := options{last: StageResolve}
	for _, opt := range opts {
		opt(&o)
	}

	key := NewKey(name, source, o.last)
	if o.cache != nil {
		if unit, ok := o.cache.Get(key); ok {
			o.debug("%s: cache hit", name)
			return unit, nil
		}
	}

	unit := &Unit{Name: name, Source: source}
	for stage := StageLex; stage <= o.last; stage++ {
		start := time.Now()
		if err := unit.run(stage); err != nil {
			return nil, &StageError{Stage: stage, Name: name, Err: err}
		}
		o.debug("%s: %s took %s", name, stage, time.Since(start))
	}

	if o.cache != nil {
		o.cache.Put(key, unit)
	}
	return unit, nil
}

// AnalyzeFile reads path and analyzes its contents.
func AnalyzeFile(path string, opts ...Option) (*Unit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read source: %w", err)
	}
	return Analyze(path, string(data), opts...)
}

func (u *Unit) run(stage Stage) error {
	var err error
	switch stage {
	case StageLex:
		u.Tokens, err = lexer.NewWithFilename(u.Source, u.Name).Run()
	case StageParse:
		u.Program, err = parser.New(u.Tokens).ParseProgram()
	case StageResolve:
		u.Symbols, err = resolver.Resolve(u.Program)
	}
	return err
}

func (o *options) debug(format string, args ...interface{}) {
	if o.logger != nil {
		o.logger.Debug(format, args...)
	}
}
