// Package selector narrows the tile design space with a JavaScript predicate.
//
// The expression sees three globals for each candidate tile:
//
//	flags  array of 0/1 ints, one per edge
//	id     combination id
//	index  position in enumeration order
//
// A truthy result keeps the tile.
package selector

import (
	"errors"
	"fmt"
	"time"

	"github.com/dop251/goja"

	"github.com/MJE43/tile-variations-go/internal/variant"
)

// ErrFilter wraps compile and evaluation failures.
var ErrFilter = errors.New("filter error")

const evalTimeout = 1 * time.Second

// Filter is a compiled predicate. Every evaluation runs in a fresh
// sandboxed runtime, so no state survives from one tile to the next.
type Filter struct {
	source  string
	program *goja.Program
}

// Compile parses expr. An empty expression is rejected; callers that want
// no filtering pass a nil *Filter.
func Compile(expr string) (*Filter, error) {
	if expr == "" {
		return nil, fmt.Errorf("%w: empty expression", ErrFilter)
	}
	program, err := goja.Compile("filter", "("+expr+")", true)
	if err != nil {
		return nil, fmt.Errorf("%w: compile %q: %v", ErrFilter, expr, err)
	}
	return &Filter{source: expr, program: program}, nil
}

func newRuntime() *goja.Runtime {
	rt := goja.New()
	// Block dangerous globals.
	rt.Set("require", goja.Undefined())
	rt.Set("eval", goja.Undefined())
	rt.Set("Function", goja.Undefined())
	return rt
}

// Source returns the expression text.
func (f *Filter) Source() string {
	if f == nil {
		return ""
	}
	return f.source
}

// Match evaluates the predicate for one tile. A nil filter matches all.
func (f *Filter) Match(index int, v variant.Vector) (bool, error) {
	if f == nil {
		return true, nil
	}

	rt := newRuntime()
	flags := make([]any, 0, variant.FlagCount)
	for _, flag := range v.Ints() {
		flags = append(flags, flag)
	}
	rt.Set("flags", flags)
	rt.Set("id", int(variant.Encode(v)))
	rt.Set("index", index)

	timer := time.AfterFunc(evalTimeout, func() {
		rt.Interrupt("filter evaluation timeout")
	})
	defer timer.Stop()

	val, err := rt.RunProgram(f.program)
	if err != nil {
		return false, fmt.Errorf("%w: evaluate %q for %s: %v", ErrFilter, f.source, v, err)
	}
	return val.ToBoolean(), nil
}
