package main

import (
	"io"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/graph-guard/assoclist/pkg/cli"
	plog "github.com/phuslu/log"
	"github.com/spf13/afero"
)

// watch replays the scenario once and again every time
// the scenario file is written until stop is closed.
func watch(
	w io.Writer,
	l *plog.Logger,
	filesystem afero.Fs,
	c cli.CommandRun,
	stop <-chan struct{},
) (exitCode int) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		l.Error().Err(err).Msg("creating file watcher")
		return 1
	}
	defer watcher.Close()

	path, err := filepath.Abs(c.ScenarioPath)
	if err != nil {
		l.Error().Err(err).Msg("resolving scenario path")
		return 1
	}
	// Editors may replace the file, the directory is watched instead.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		l.Error().Err(err).Str("path", path).Msg("watching scenario")
		return 1
	}

	replay := func() { exitCode = run(w, l, filesystem, c) }
	replay()
	watchLoop(l, path, watcher.Events, watcher.Errors, stop, replay)
	return exitCode
}

// watchLoop calls replay for every write or creation of path
// until stop is closed or either channel is closed.
func watchLoop(
	l *plog.Logger,
	path string,
	events <-chan fsnotify.Event,
	errs <-chan error,
	stop <-chan struct{},
	replay func(),
) {
	for {
		select {
		case <-stop:
			return
		case e, ok := <-events:
			if !ok {
				return
			}
			if filepath.Clean(e.Name) != path ||
				!(e.Has(fsnotify.Write) || e.Has(fsnotify.Create)) {
				continue
			}
			l.Info().Str("path", path).Msg("scenario changed")
			replay()
		case err, ok := <-errs:
			if !ok {
				return
			}
			l.Error().Err(err).Msg("watching scenario")
		}
	}
}
