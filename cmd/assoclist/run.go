package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/graph-guard/assoclist/pkg/cli"
	"github.com/graph-guard/assoclist/pkg/scenario"
	plog "github.com/phuslu/log"
	"github.com/spf13/afero"
)

// run replays the scenario file and writes the report to w.
func run(
	w io.Writer,
	l *plog.Logger,
	filesystem afero.Fs,
	c cli.CommandRun,
) (exitCode int) {
	s := ReadScenario(w, filesystem, c.ScenarioPath)
	if s == nil {
		return 1
	}

	l.Debug().
		Str("scenario", c.ScenarioPath).
		Int("steps", len(s.Steps)).
		Msg("replaying")

	r, err := scenario.Run(s, l)
	if err != nil {
		fmt.Fprintf(w, "replaying %s: %s\n", c.ScenarioPath, err)
		return 1
	}

	if c.Format == cli.FormatJSON {
		err = r.WriteJSON(w)
	} else {
		err = r.WriteText(w)
	}
	if err != nil {
		l.Error().Err(err).Msg("writing report")
		return 1
	}
	return 0
}

// ReadScenario reads the scenario file at path from filesystem.
// Returns nil and writes the error to w if reading failed.
func ReadScenario(
	w io.Writer,
	filesystem afero.Fs,
	path string,
) *scenario.Scenario {
	basePath, fileName, err := basePathAndFileName(path)
	if err != nil {
		fmt.Fprintf(w, "reading scenario: %s\n", err)
		return nil
	}
	s, err := scenario.Read(
		afero.NewIOFS(afero.NewBasePathFs(filesystem, basePath)),
		fileName,
	)
	if err != nil {
		fmt.Fprintf(w, "reading scenario: %s\n", err)
		return nil
	}
	return s
}

func basePathAndFileName(path string) (basePath, fileName string, err error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", "", err
	}
	return filepath.Dir(abs), filepath.Base(abs), nil
}
