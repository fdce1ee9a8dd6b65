package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/systemstart/scriptcs-bootstrap/pkg/api"
	"github.com/systemstart/scriptcs-bootstrap/pkg/logging"
	"github.com/systemstart/scriptcs-bootstrap/pkg/processing"
	"github.com/systemstart/scriptcs-bootstrap/pkg/scriptcs"
	"gopkg.in/yaml.v3"
)

var version = "dev"

const (
	_ = iota
	exitLoggingSetupFailed
	exitDotenvError
	exitNoScripts
	exitScriptDiscoveryFailed
	exitWorkingDirectoryCheckFailed
	exitWorkingDirectoryNotADirectory
	exitLoadVariablesFailed
	exitLocatorFailed
	exitPrepareFailed
	exitOutputFailed
	exitUnknownOutputFormat
)

const (
	outputText = "text"
	outputYAML = "yaml"

	installDirectoryEnv = "SCRIPTCS_INSTALL_DIRECTORY"
)

type listFlag []string

func (l *listFlag) String() string { return strings.Join(*l, ",") }

func (l *listFlag) Set(value string) error {
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			*l = append(*l, v)
		}
	}
	return nil
}

var (
	scriptPatterns   listFlag
	variablesFiles   listFlag
	assignments      []string
	workingDirectory string
	installDirectory string
	outputFormat     string
	loggingType      string
	logLevel         string
	showVersion      bool
)

func init() {
	flag.Var(
		&scriptPatterns,
		"script",
		"script path or glob, comma-separated or repeated")
	flag.Var(
		&variablesFiles,
		"variables",
		"variables file (.yaml or .env), comma-separated or repeated; later files override earlier ones")
	flag.Func(
		"set",
		"set a variable as name=value (a bare name sets null), repeatable",
		func(s string) error {
			assignments = append(assignments, s)
			return nil
		})
	flag.StringVar(
		&workingDirectory,
		"working-directory",
		".",
		"directory receiving the generated scripts")
	flag.StringVar(
		&installDirectory,
		"install-directory",
		"",
		"directory holding ScriptCS/"+scriptcs.ExecutableName+" (default: this binary's directory, or $"+installDirectoryEnv+")")
	flag.StringVar(
		&outputFormat,
		"output",
		outputText,
		"output format: text or yaml")
	flag.StringVar(
		&loggingType,
		"logging-type",
		"tint",
		"logging type: json, text or tint")
	flag.StringVar(
		&logLevel,
		"log-level",
		"info",
		"logging level: debug, info, warn, error")
	flag.BoolVar(
		&showVersion,
		"version",
		false,
		"print version and exit")
}

func main() {
	flag.Parse()

	if showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	if err := logging.Initialize(os.Stderr, loggingType, logLevel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitLoggingSetupFailed)
	}

	checkOutputFormat()
	includeEnv()
	checkWorkingDirectory()

	scripts := discoverScripts()
	vars := loadVariables()
	locator := newLocator()

	inv, err := processing.Prepare(processing.Options{
		Scripts:          scripts,
		WorkingDirectory: workingDirectory,
		Variables:        vars,
		Locator:          locator,
	})
	if err != nil {
		slog.Error("preparing scripts failed", "error", err)
		os.Exit(exitPrepareFailed)
	}

	if err := writeInvocation(inv); err != nil {
		slog.Error("writing output failed", "error", err)
		os.Exit(exitOutputFailed)
	}

	slog.Info("done", "scripts", len(inv.Scripts))
}

func checkOutputFormat() {
	if outputFormat != outputText && outputFormat != outputYAML {
		slog.Error("unknown -output format", "format", outputFormat)
		os.Exit(exitUnknownOutputFormat)
	}
}

func includeEnv() {
	err := godotenv.Load()
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Error("failed to load .env", "error", err)
			os.Exit(exitDotenvError)
		}
		slog.Debug("no .env file found")
	} else {
		slog.Info("using .env file")
	}
}

func checkWorkingDirectory() {
	st, err := os.Stat(workingDirectory)
	if err != nil {
		slog.Error("failed to check working directory", "directory", workingDirectory, "error", err)
		os.Exit(exitWorkingDirectoryCheckFailed)
	}

	if !st.IsDir() {
		slog.Error("-working-directory is not a directory", "directory", workingDirectory)
		os.Exit(exitWorkingDirectoryNotADirectory)
	}
}

func discoverScripts() []string {
	if len(scriptPatterns) == 0 {
		slog.Error("-script not set")
		os.Exit(exitNoScripts)
	}

	scripts, err := processing.DiscoverScripts(".", scriptPatterns)
	if err != nil {
		slog.Error("failed to discover scripts", "patterns", scriptPatterns.String(), "error", err)
		os.Exit(exitScriptDiscoveryFailed)
	}

	slog.Info("discovered scripts", "count", len(scripts))
	return scripts
}

func loadVariables() *api.VariableSet {
	fromFiles, err := processing.LoadVariableSet(variablesFiles...)
	if err != nil {
		slog.Error("failed to load variables", "files", variablesFiles.String(), "error", err)
		os.Exit(exitLoadVariablesFailed)
	}

	fromFlags, err := processing.ParseAssignments(assignments)
	if err != nil {
		slog.Error("invalid -set value", "error", err)
		os.Exit(exitLoadVariablesFailed)
	}

	return api.Merge(fromFiles, fromFlags)
}

func newLocator() *scriptcs.Locator {
	locator, err := scriptcs.NewLocator()
	if err != nil {
		slog.Error("failed to create locator", "error", err)
		os.Exit(exitLocatorFailed)
	}

	dir := installDirectory
	if dir == "" {
		dir = os.Getenv(installDirectoryEnv)
	}
	if dir != "" {
		locator.InstallDir = dir
	}
	return locator
}

func writeInvocation(inv *processing.Invocation) error {
	switch outputFormat {
	case outputYAML:
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(inv); err != nil {
			return fmt.Errorf("encoding invocation: %w", err)
		}
		return enc.Close()
	default:
		for _, s := range inv.Scripts {
			if _, err := fmt.Printf("\"%s\" %s\n", inv.Executable, s.Arguments); err != nil {
				return err
			}
		}
		return nil
	}
}
