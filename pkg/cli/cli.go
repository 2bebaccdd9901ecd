package cli

import (
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"
	plog "github.com/phuslu/log"
)

const EnvPrefix = "ASSOCLIST"
const EnvLogLevel = EnvPrefix + "_LOG_LEVEL"

const (
	FormatText = "text"
	FormatJSON = "json"
)

const DefaultBenchKeys = 16

// Env is the configuration read from environment variables.
type Env struct {
	LogLevel string `envconfig:"LOG_LEVEL" default:"warn"`
}

// Command can be any of:
//
//	CommandRun
//	CommandBench
type Command any

type CommandRun struct {
	ScenarioPath string
	Format       string
	Watch        bool
	LogLevel     plog.Level
}

type CommandBench struct {
	Keys     int
	LogLevel plog.Level
}

func Parse(w io.Writer, args []string) (cmd Command) {
	fm := fmt.Sprintf

	executableName := "assoclist"
	if len(args) > 0 {
		executableName = filepath.Base(args[0])
	}

	flags := flag.NewFlagSet("assoclist", flag.ContinueOnError)
	flags.SetOutput(w)
	flags.Usage = func() {
		writeLines(w,
			fm("usage: %s <command> [flags]", executableName),
			"",
			"commands available:",
			" run - replays a scenario file",
			" bench - compares the associated list with the Go map",
			" help - prints help",
		)
	}

	parseFlags := func() (ok bool) {
		err := flags.Parse(args[2:])
		// flags will automatically call .Usage()
		return err == nil
	}

	if len(args) < 2 {
		flags.Usage()
		return nil
	}

	var env Env
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		writeLines(w, fm("reading environment: %s", err))
		return nil
	}
	level, ok := ParseLogLevel(env.LogLevel)
	if !ok {
		writeLines(w,
			fm("%s contains an unknown level %q.", EnvLogLevel, env.LogLevel),
			"Use one of: debug, info, warn, error",
		)
		return nil
	}

	switch args[1] {
	case "run":
		c := CommandRun{LogLevel: level}

		flags.Usage = func() {
			writeLines(w,
				"",
				fm("usage: %s run -scenario <path> [-format text|json] [-watch]", executableName),
				"",
				"flags:",
				"-scenario <path>: defines the scenario file path",
				"-format <format>: defines the report format (default: text)",
				"-watch: replays the scenario whenever the file changes",
				"",
				"environment variables:",
				fm("%s: log level (default: warn)", EnvLogLevel),
			)
		}

		flags.StringVar(&c.ScenarioPath, "scenario", "", "")
		flags.StringVar(&c.Format, "format", FormatText, "")
		flags.BoolVar(&c.Watch, "watch", false, "")
		if !parseFlags() {
			return nil
		}

		if c.ScenarioPath == "" {
			writeLines(w, "-scenario isn't set.")
			flags.Usage()
			return nil
		}
		if c.Format != FormatText && c.Format != FormatJSON {
			writeLines(w, fm("unsupported format %q.", c.Format))
			flags.Usage()
			return nil
		}

		cmd = c

	case "bench":
		c := CommandBench{LogLevel: level}

		flags.Usage = func() {
			writeLines(w,
				"",
				fm("usage: %s bench [-n <keys>]", executableName),
				"",
				"flags:",
				fm("-n <keys>: defines the number of keys (default: %d)", DefaultBenchKeys),
			)
		}

		flags.IntVar(&c.Keys, "n", DefaultBenchKeys, "")
		if !parseFlags() {
			return nil
		}

		if c.Keys < 1 {
			writeLines(w, "-n must be positive.")
			flags.Usage()
			return nil
		}

		cmd = c

	case "help":
		PrintHelp(w)
		return

	default:
		flags.Usage()
		return nil
	}
	return cmd
}

// ParseLogLevel parses the value of EnvLogLevel.
// An empty string selects the warn level.
func ParseLogLevel(s string) (plog.Level, bool) {
	switch strings.ToLower(s) {
	case "":
		return plog.WarnLevel, true
	case "debug":
		return plog.DebugLevel, true
	case "info":
		return plog.InfoLevel, true
	case "warn":
		return plog.WarnLevel, true
	case "error":
		return plog.ErrorLevel, true
	}
	return 0, false
}

func writeLines(w io.Writer, lines ...string) {
	for i := range lines {
		_, _ = w.Write([]byte(lines[i]))
		_, _ = w.Write([]byte("\n"))
	}
}

func PrintHelp(w io.Writer) {
	writeLines(w,
		"assoclist replays scripted operations on an associated list",
		"and compares it with the Go map.",
	)
}
