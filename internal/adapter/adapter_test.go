package adapter

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nvm-manager/internal/engine"
	"nvm-manager/internal/logx"
	"nvm-manager/internal/nvm"
)

type fakeEngine struct {
	mu     sync.Mutex
	calls  []string
	listed chan struct{}
}

func (f *fakeEngine) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeEngine) Install(_ context.Context, v string) engine.ActionResult {
	f.record("install " + v)
	if v == "99.0.0" {
		return engine.ActionResult{Message: "Error installing version 99.0.0: version not found"}
	}
	if f.listed != nil {
		<-f.listed
	}
	return engine.ActionResult{Success: true, Message: "Successfully installed version " + v}
}

func (f *fakeEngine) Uninstall(_ context.Context, v string) engine.ActionResult {
	f.record("uninstall " + v)
	return engine.ActionResult{Success: true, Message: "Successfully uninstalled version " + v}
}

func (f *fakeEngine) Switch(_ context.Context, v string) engine.ActionResult {
	f.record("use " + v)
	return engine.ActionResult{Success: true, Message: "Switched to version " + v}
}

func (f *fakeEngine) ListInstalled(context.Context) engine.InstalledResult {
	f.record("ls")
	if f.listed != nil {
		close(f.listed)
	}
	return engine.InstalledResult{Success: true, Versions: []nvm.InstalledVersion{{Version: "20.9.0", IsCurrent: true}}}
}

func (f *fakeEngine) ListAvailable(context.Context) engine.AvailableResult {
	f.record("available")
	return engine.AvailableResult{Success: true, Degraded: true, Message: "Catalog unavailable", Versions: []nvm.AvailableVersion{
		{Version: "v21.0.0", NpmVersion: nvm.UnknownNpm, Status: nvm.StatusNotInstalled},
	}}
}

func TestHandleMutatingActions(t *testing.T) {
	fe := &fakeEngine{}
	d := NewDispatcher(fe)
	ctx := context.Background()

	resp := d.Handle(ctx, Request{ID: "1", Action: ActionInstall, Version: "20.9.0"})
	assert.Equal(t, Response{ID: "1", Action: ActionInstall, Success: true, Message: "Successfully installed version 20.9.0"}, resp)

	resp = d.Handle(ctx, Request{ID: "2", Action: ActionInstall, Version: "99.0.0"})
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, "version not found")

	resp = d.Handle(ctx, Request{ID: "3", Action: ActionUninstall, Version: " 18.0.0 "})
	assert.True(t, resp.Success)

	resp = d.Handle(ctx, Request{ID: "4", Action: ActionSwitch, Version: "18.0.0"})
	assert.Equal(t, "Switched to version 18.0.0", resp.Message)

	assert.Equal(t, []string{"install 20.9.0", "install 99.0.0", "uninstall 18.0.0", "use 18.0.0"}, fe.calls)
}

func TestHandleRequiresVersion(t *testing.T) {
	fe := &fakeEngine{}
	resp := NewDispatcher(fe).Handle(context.Background(), Request{Action: ActionSwitch})
	assert.False(t, resp.Success)
	assert.Equal(t, "switch-node-version requires a version", resp.Message)
	assert.Empty(t, fe.calls)
}

func TestHandleListActions(t *testing.T) {
	d := NewDispatcher(&fakeEngine{})

	resp := d.Handle(context.Background(), Request{Action: ActionInstalled})
	require.True(t, resp.Success)
	assert.Equal(t, []nvm.InstalledVersion{{Version: "20.9.0", IsCurrent: true}}, resp.Versions)

	resp = d.Handle(context.Background(), Request{Action: ActionAvailable})
	require.True(t, resp.Success)
	assert.True(t, resp.Degraded)
	assert.Len(t, resp.Versions, 1)
}

func TestHandleUnknownAction(t *testing.T) {
	resp := NewDispatcher(&fakeEngine{}).Handle(context.Background(), Request{ID: "x", Action: "format-disk"})
	assert.False(t, resp.Success)
	assert.Equal(t, `unknown action "format-disk"`, resp.Message)
}

func decodeResponses(t *testing.T, out *bytes.Buffer) []map[string]any {
	t.Helper()
	var responses []map[string]any
	sc := bufio.NewScanner(out)
	for sc.Scan() {
		var m map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m))
		responses = append(responses, m)
	}
	return responses
}

func TestServeJSONLines(t *testing.T) {
	in := strings.Join([]string{
		`{"id":"a","action":"install-node-version","version":"20.9.0"}`,
		``,
		`not json`,
		`{"action":"get-installed-versions"}`,
		`{"id":"b","action":"nope"}`,
	}, "\n")
	var out bytes.Buffer

	err := Serve(context.Background(), NewDispatcher(&fakeEngine{}), strings.NewReader(in), &out, logx.Discard())
	require.NoError(t, err)

	responses := decodeResponses(t, &out)
	require.Len(t, responses, 4)

	byID := map[string]map[string]any{}
	var malformed, listed map[string]any
	for _, r := range responses {
		id, ok := r["id"].(string)
		require.True(t, ok, "every response carries an id")
		switch {
		case id == "a" || id == "b":
			byID[id] = r
		case r["action"] == ActionInstalled:
			listed = r
			_, err := uuid.Parse(id)
			assert.NoError(t, err, "missing id should be filled with a uuid")
		default:
			malformed = r
		}
	}

	require.Contains(t, byID, "a")
	assert.Equal(t, true, byID["a"]["success"])
	assert.NotContains(t, byID["a"], "versions")

	require.NotNil(t, malformed)
	assert.Equal(t, false, malformed["success"])
	assert.Contains(t, malformed["message"], "malformed request")

	require.NotNil(t, listed)
	assert.Equal(t, []any{map[string]any{"version": "20.9.0", "isCurrent": true}}, listed["versions"])

	require.Contains(t, byID, "b")
	assert.Equal(t, false, byID["b"]["success"])
}

func TestServeDoesNotBlockOnSlowRequest(t *testing.T) {
	fe := &fakeEngine{listed: make(chan struct{})}
	in := `{"id":"slow","action":"install-node-version","version":"20.9.0"}` + "\n" +
		`{"id":"list","action":"get-installed-versions"}` + "\n"
	var out bytes.Buffer

	done := make(chan error, 1)
	go func() {
		done <- Serve(context.Background(), NewDispatcher(fe), strings.NewReader(in), &out, logx.Discard())
	}()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("install blocked the following request")
	}

	ids := []string{}
	for _, r := range decodeResponses(t, &out) {
		ids = append(ids, r["id"].(string))
	}
	assert.ElementsMatch(t, []string{"slow", "list"}, ids)
}

func TestServeStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	err := Serve(ctx, NewDispatcher(&fakeEngine{}), strings.NewReader(`{"action":"get-installed-versions"}`), &out, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out.String())
}
