package sysadapter

import (
	"context"
	"errors"
	"strings"
)

// fakeRunner serves canned stdout keyed by "name args..." and records
// every mutating call.
type fakeRunner struct {
	outputs map[string]string
	errs    map[string]error
	calls   []string
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{
		outputs: make(map[string]string),
		errs:    make(map[string]error),
	}
}

func key(name string, args []string) string {
	return strings.Join(append([]string{name}, args...), " ")
}

func (f *fakeRunner) on(cmdline, output string) {
	f.outputs[cmdline] = output
}

func (f *fakeRunner) failOn(cmdline string, err error) {
	f.errs[cmdline] = err
}

func (f *fakeRunner) lookup(name string, args []string) (string, error) {
	k := key(name, args)
	if err, ok := f.errs[k]; ok {
		return "", err
	}
	if out, ok := f.outputs[k]; ok {
		return out, nil
	}
	return "", errors.New("unexpected command: " + k)
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) error {
	f.calls = append(f.calls, key(name, args))
	_, err := f.lookup(name, args)
	return err
}

func (f *fakeRunner) RunSudo(ctx context.Context, name string, args ...string) error {
	f.calls = append(f.calls, "sudo "+key(name, args))
	_, err := f.lookup(name, args)
	return err
}

func (f *fakeRunner) Output(ctx context.Context, name string, args ...string) (string, error) {
	return f.lookup(name, args)
}

func (f *fakeRunner) OutputQuiet(ctx context.Context, name string, args ...string) (string, error) {
	return f.lookup(name, args)
}

func (f *fakeRunner) OutputSudo(ctx context.Context, name string, args ...string) (string, error) {
	return f.lookup(name, args)
}

func (f *fakeRunner) OutputCombined(ctx context.Context, name string, args ...string) (string, error) {
	return f.lookup(name, args)
}

func (f *fakeRunner) called(cmdline string) bool {
	for _, c := range f.calls {
		if c == cmdline {
			return true
		}
	}
	return false
}
