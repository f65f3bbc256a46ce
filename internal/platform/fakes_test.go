package platform

import (
	"context"
	"net/url"
	"strings"
)

type runCall struct {
	name string
	args []string
}

func (c runCall) String() string { return c.name + " " + strings.Join(c.args, " ") }

type fakeRunner struct {
	output   []byte
	err      error
	startErr error
	outputs  []runCall
	starts   []runCall
}

func (f *fakeRunner) Output(_ context.Context, name string, args ...string) ([]byte, error) {
	f.outputs = append(f.outputs, runCall{name: name, args: args})
	return f.output, f.err
}

func (f *fakeRunner) Start(_ context.Context, name string, args ...string) error {
	f.starts = append(f.starts, runCall{name: name, args: args})
	return f.startErr
}

type fakeOpener struct {
	opened []string
	err    error
}

func (f *fakeOpener) OpenURL(u *url.URL) error {
	f.opened = append(f.opened, u.String())
	return f.err
}
