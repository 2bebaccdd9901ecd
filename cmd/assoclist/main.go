package main

import (
	"fmt"
	"io"
	"os"

	"github.com/graph-guard/assoclist/pkg/cli"
	"github.com/joho/godotenv"
	plog "github.com/phuslu/log"
	"github.com/spf13/afero"
)

func main() {
	// Load a .env file if it exists
	_ = godotenv.Load()

	w := os.Stdout
	exitCode := 0
	switch c := cli.Parse(w, os.Args).(type) {
	case cli.CommandRun:
		l := newLogger(os.Stderr, c.LogLevel)
		if c.Watch {
			exitCode = watch(w, l, afero.NewOsFs(), c, RegisterStop(nil))
		} else {
			exitCode = run(w, l, afero.NewOsFs(), c)
		}
	case cli.CommandBench:
		exitCode = bench(w, newLogger(os.Stderr, c.LogLevel), c)
	default:
		if c != nil {
			panic(fmt.Errorf("unexpected command: %#v", c))
		}
	}
	os.Exit(exitCode)
}

func newLogger(w io.Writer, level plog.Level) *plog.Logger {
	return &plog.Logger{
		Level:  level,
		Writer: &plog.IOWriter{Writer: w},
	}
}
