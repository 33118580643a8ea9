package config

import (
	"flag"
	"fmt"
	"os"
)

// Flags carries the command-line options. The tunables themselves live in
// the config file; flags only select the file, logging, and startup mode.
type Flags struct {
	ConfigPath  string
	LogLevel    string
	LogFile     string
	Start       bool
	ShowVersion bool
}

// ParseFlags parses os.Args. -version prints and exits here, matching the
// behavior users expect from the binary.
func ParseFlags(version string) (*Flags, error) {
	return parseFlags(version, os.Args[1:])
}

func parseFlags(version string, args []string) (*Flags, error) {
	flags := flag.NewFlagSet("nudge", flag.ExitOnError)

	configPath := flags.String("config", DefaultPath(), "Path to the config file")
	logLevel := flags.String("log-level", "info", "Log level (trace, debug, info, warn, error)")
	logFile := flags.String("log-file", "", "Append logs to this file in addition to stdout")
	start := flags.Bool("start", false, "Enable triggering immediately, overriding auto_start")
	showVersion := flags.Bool("version", false, "Show version information")
	flags.BoolVar(showVersion, "v", false, "Show version information")

	if err := flags.Parse(args); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		return nil, err
	}

	if *showVersion {
		fmt.Printf("Nudge Version: %s\n", version)
		os.Exit(0)
	}

	return &Flags{
		ConfigPath:  *configPath,
		LogLevel:    *logLevel,
		LogFile:     *logFile,
		Start:       *start,
		ShowVersion: *showVersion,
	}, nil
}
