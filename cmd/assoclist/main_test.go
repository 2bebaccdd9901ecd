package main

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/graph-guard/assoclist/pkg/cli"
	plog "github.com/phuslu/log"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

const testScenario = `
steps:
  - op: insert
    key: x
    value: "1"
  - op: insert
    key: y
    value: "2"
  - op: remove
    key: x
`

const testScenarioPath = "/scenarios/scenario.yaml"

func writeScenario(t *testing.T, content string) afero.Fs {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, testScenarioPath, []byte(content), 0o644))
	return fs
}

func discard() *plog.Logger { return newLogger(io.Discard, plog.WarnLevel) }

func TestRunJSON(t *testing.T) {
	out := new(bytes.Buffer)
	code := run(out, discard(), writeScenario(t, testScenario), cli.CommandRun{
		ScenarioPath: testScenarioPath,
		Format:       cli.FormatJSON,
	})
	require.Equal(t, 0, code)

	j := out.String()
	require.True(t, gjson.Valid(j), j)
	require.Equal(t, int64(1), gjson.Get(j, "len").Int())
	require.Equal(t, "y", gjson.Get(j, "pairs.0.key").String())
	require.Equal(t, "remove x: 1", gjson.Get(j, "steps.2").String())
}

func TestRunText(t *testing.T) {
	out := new(bytes.Buffer)
	code := run(out, discard(), writeScenario(t, testScenario), cli.CommandRun{
		ScenarioPath: testScenarioPath,
		Format:       cli.FormatText,
	})
	require.Equal(t, 0, code)
	require.True(t, strings.HasPrefix(out.String(), lines(
		"insert x=1: new",
		"insert y=2: new",
		"remove x: 1",
		"",
		"len: 1",
	)), out.String())
}

func TestRunInvalidScenario(t *testing.T) {
	out := new(bytes.Buffer)
	fs := writeScenario(t, "steps: [{op: sort}]")
	code := run(out, discard(), fs, cli.CommandRun{
		ScenarioPath: testScenarioPath,
		Format:       cli.FormatText,
	})
	require.Equal(t, 1, code)
	require.Equal(t,
		`reading scenario: illegal step 0 in scenario.yaml: unknown op "sort"`+"\n",
		out.String(),
	)
}

func TestRunAborted(t *testing.T) {
	out := new(bytes.Buffer)
	fs := writeScenario(t, "budget: 1\n"+testScenario)
	code := run(out, discard(), fs, cli.CommandRun{
		ScenarioPath: testScenarioPath,
		Format:       cli.FormatText,
	})
	require.Equal(t, 1, code)
	require.Contains(t, out.String(), "step 0 (insert) aborted")
	require.Contains(t, out.String(), "allocator exhausted")
}

func TestRunInitialCapacityExceedsBudget(t *testing.T) {
	out := new(bytes.Buffer)
	fs := writeScenario(t, "capacity: 5\nbudget: 2\nsteps: [{op: dump}]")
	code := run(out, discard(), fs, cli.CommandRun{
		ScenarioPath: testScenarioPath,
		Format:       cli.FormatText,
	})
	require.Equal(t, 1, code)
	require.Contains(t, out.String(), "new aborted")
	require.Contains(t, out.String(), "allocator exhausted")
}

func TestBench(t *testing.T) {
	out, logs := new(bytes.Buffer), new(bytes.Buffer)
	code := bench(out, newLogger(logs, plog.InfoLevel), cli.CommandBench{Keys: 3})
	require.Equal(t, 0, code)

	l := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, l, 4)
	require.Equal(t, "keys: 3, rounds: 1,000", l[0])
	require.True(t, strings.HasPrefix(l[1], "assoclist "), l[1])
	require.True(t, strings.HasPrefix(l[2], "gomap "), l[2])
	require.Equal(t, "assoclist capacity: 4 (", l[3][:len("assoclist capacity: 4 (")])

	require.Equal(t, "bench done", gjson.Get(logs.String(), "message").String())
	require.Equal(t, int64(3), gjson.Get(logs.String(), "keys").Int())
	require.Equal(t, int64(1), gjson.Get(logs.String(), "allocations").Int())
}

func TestRunNotFound(t *testing.T) {
	out := new(bytes.Buffer)
	code := run(out, discard(), afero.NewMemMapFs(), cli.CommandRun{
		ScenarioPath: testScenarioPath,
		Format:       cli.FormatText,
	})
	require.Equal(t, 1, code)
	require.True(t, strings.HasPrefix(out.String(), "reading scenario: "), out.String())
}

func TestBasePathAndFileName(t *testing.T) {
	for _, td := range []struct{ Input, Base, File string }{
		{"/tmp/s.yaml", "/tmp", "s.yaml"},
		{"/tmp/x/../s/scenario.yaml", "/tmp/s", "scenario.yaml"},
	} {
		b, f, err := basePathAndFileName(td.Input)
		require.NoError(t, err)
		require.Equal(t, td.Base, b, td.Input)
		require.Equal(t, td.File, f, td.Input)
	}
}

func TestWatchLoop(t *testing.T) {
	events := make(chan fsnotify.Event)
	errs := make(chan error)
	stop := make(chan struct{})
	replayed := make(chan struct{}, 8)
	done := make(chan struct{})
	go func() {
		defer close(done)
		watchLoop(discard(), testScenarioPath, events, errs, stop,
			func() { replayed <- struct{}{} })
	}()

	// Unrelated files and operations are ignored
	events <- fsnotify.Event{Name: "/scenarios/other.yaml", Op: fsnotify.Write}
	events <- fsnotify.Event{Name: testScenarioPath, Op: fsnotify.Chmod}
	errs <- io.ErrUnexpectedEOF
	require.Len(t, replayed, 0)

	events <- fsnotify.Event{Name: testScenarioPath, Op: fsnotify.Write}
	events <- fsnotify.Event{Name: testScenarioPath, Op: fsnotify.Create}
	close(stop)
	<-done
	require.Len(t, replayed, 2)
}

func TestWatchLoopClosedEvents(t *testing.T) {
	events := make(chan fsnotify.Event)
	close(events)
	watchLoop(discard(), testScenarioPath, events, nil, nil, func() {
		t.Fatal("unexpected replay")
	})
}

func lines(lines ...string) string {
	var b strings.Builder
	for i := range lines {
		b.WriteString(lines[i])
		b.WriteByte('\n')
	}
	return b.String()
}
