package nvm

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"nvm-manager/internal/app"
)

type recordingRunner struct {
	calls    []string
	out      map[string]string
	err      map[string]error
	deadline bool
}

func (r *recordingRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	call := strings.TrimSpace(name + " " + strings.Join(args, " "))
	r.calls = append(r.calls, call)
	_, r.deadline = ctx.Deadline()
	if err := r.err[strings.Join(args, " ")]; err != nil {
		return nil, err
	}
	return []byte(r.out[strings.Join(args, " ")]), nil
}

func TestClientCommands(t *testing.T) {
	r := &recordingRunner{}
	c := NewClient(r, "")
	ctx := context.Background()

	if err := c.Install(ctx, "20.9.0"); err != nil {
		t.Fatalf("install: %v", err)
	}
	if err := c.Uninstall(ctx, "18.0.0"); err != nil {
		t.Fatalf("uninstall: %v", err)
	}
	if err := c.Use(ctx, "v16.3.0"); err != nil {
		t.Fatalf("use: %v", err)
	}
	if _, err := c.List(ctx); err != nil {
		t.Fatalf("ls: %v", err)
	}
	if _, err := c.ListRemote(ctx); err != nil {
		t.Fatalf("ls-remote: %v", err)
	}
	want := []string{"nvm install 20.9.0", "nvm uninstall 18.0.0", "nvm use v16.3.0", "nvm ls", "nvm ls-remote"}
	if strings.Join(r.calls, "|") != strings.Join(want, "|") {
		t.Fatalf("unexpected calls: %#v", r.calls)
	}
}

func TestClientListParsesOutput(t *testing.T) {
	r := &recordingRunner{out: map[string]string{"ls": "* 18.9.2 (Currently using 64-bit executable)\n  16.3.0\n"}}
	got, err := NewClient(r, "nvm").List(context.Background())
	if err != nil {
		t.Fatalf("ls: %v", err)
	}
	if len(got) != 2 || !got[0].IsCurrent || got[1].Version != "16.3.0" {
		t.Fatalf("unexpected parse: %#v", got)
	}
}

func TestClientPropagatesExecutionError(t *testing.T) {
	execErr := &app.ExecutionError{Command: "nvm ls", Stderr: "nvm: command not found", ExitCode: 127}
	r := &recordingRunner{err: map[string]error{"ls": execErr}}
	_, err := NewClient(r, "nvm").List(context.Background())
	var got *app.ExecutionError
	if !errors.As(err, &got) {
		t.Fatalf("expected ExecutionError, got %v", err)
	}
}

func TestClientTimeout(t *testing.T) {
	r := &recordingRunner{}
	c := NewClient(r, "nvm")
	_ = c.Use(context.Background(), "20.9.0")
	if r.deadline {
		t.Fatalf("expected no deadline without timeout")
	}
	_ = c.WithTimeout(time.Minute).Use(context.Background(), "20.9.0")
	if !r.deadline {
		t.Fatalf("expected deadline with timeout")
	}
}

func TestCustomBinary(t *testing.T) {
	r := &recordingRunner{}
	c := NewClient(r, "nvm-windows")
	_, _ = c.Version(context.Background())
	if r.calls[0] != "nvm-windows version" || c.Binary() != "nvm-windows" {
		t.Fatalf("unexpected call: %v", r.calls)
	}
}
