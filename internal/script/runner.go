package script

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dop251/goja"

	"scriptdeck/internal/catalog"
)

// Binding is one scripting integration: a catalog descriptor plus the native
// functions it installs on a VM.
type Binding interface {
	Descriptor() catalog.Integration
	Install(ctx context.Context, vm *goja.Runtime) error
}

// RunResult is the outcome of a completed script run.
type RunResult struct {
	Value    string
	Output   []string
	Duration time.Duration
}

// Runner executes scripts on a fresh goja VM per run, with every registered
// binding installed. Bindings keep their registration order; the catalog the
// help dialog reads is derived from it.
type Runner struct {
	bindings []Binding
}

func NewRunner(bindings ...Binding) *Runner {
	return &Runner{bindings: append([]Binding(nil), bindings...)}
}

// Catalog builds the integration catalog in registration order.
func (r *Runner) Catalog() (*catalog.Catalog, error) {
	items := make([]catalog.Integration, 0, len(r.bindings))
	for _, b := range r.bindings {
		items = append(items, b.Descriptor())
	}
	return catalog.New(items...)
}

// Run executes src. The VM is interrupted when ctx is done. Thrown values and
// syntax errors come back as errors, never panics.
func (r *Runner) Run(ctx context.Context, src string) (RunResult, error) {
	start := time.Now()
	vm := goja.New()

	var output []string
	vm.Set("print", func(args ...goja.Value) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, a.String())
		}
		output = append(output, strings.Join(parts, " "))
	})
	vm.Set("sprintf", fmt.Sprintf)

	for _, b := range r.bindings {
		if err := b.Install(ctx, vm); err != nil {
			return RunResult{}, fmt.Errorf("install %s: %w", b.Descriptor().ID, err)
		}
	}

	watchdone := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			vm.Interrupt(ctx.Err())
		case <-watchdone:
		}
	}()
	defer close(watchdone)

	val, err := vm.RunString(src)
	res := RunResult{Output: output, Duration: time.Since(start)}
	if err != nil {
		if _, ok := err.(*goja.InterruptedError); ok && ctx.Err() != nil {
			return res, fmt.Errorf("script interrupted: %w", ctx.Err())
		}
		return res, fmt.Errorf("script: %w", err)
	}
	if val != nil && val != goja.Undefined() && val != goja.Null() {
		res.Value = val.String()
	}
	return res, nil
}
