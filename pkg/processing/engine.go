package processing

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/systemstart/scriptcs-bootstrap/pkg/api"
	"github.com/systemstart/scriptcs-bootstrap/pkg/scriptcs"
)

// Options configures Prepare. Locator and Template default to the
// running binary's locator and the embedded template.
type Options struct {
	Scripts          []string
	WorkingDirectory string
	Variables        *api.VariableSet
	Locator          *scriptcs.Locator
	Template         *scriptcs.Template
}

// Invocation describes everything needed to run scriptcs. The generated
// files are left on disk for the caller.
type Invocation struct {
	Executable        string           `yaml:"executable"`
	ConfigurationFile string           `yaml:"configurationFile"`
	Scripts           []PreparedScript `yaml:"scripts"`
}

// PreparedScript is the bootstrap for one user script.
type PreparedScript struct {
	Script        string   `yaml:"script"`
	BootstrapFile string   `yaml:"bootstrapFile"`
	Arguments     string   `yaml:"arguments"`
	Args          []string `yaml:"args"`
}

// Prepare locates scriptcs, writes one configuration script for the
// variables and one bootstrap script per user script. Relative script
// paths are resolved against the working directory.
func Prepare(opts Options) (*Invocation, error) {
	if len(opts.Scripts) == 0 {
		return nil, errors.New("no scripts to prepare")
	}
	if opts.WorkingDirectory == "" {
		return nil, errors.New("working directory is required")
	}

	workDir, err := filepath.Abs(opts.WorkingDirectory)
	if err != nil {
		return nil, fmt.Errorf("resolving working directory: %w", err)
	}

	executable, err := findExecutable(opts.Locator)
	if err != nil {
		return nil, err
	}

	bootstrapper, err := newBootstrapper(opts.Template)
	if err != nil {
		return nil, err
	}

	configurationFile, err := bootstrapper.PrepareConfigurationFile(workDir, opts.Variables)
	if err != nil {
		return nil, fmt.Errorf("preparing configuration file: %w", err)
	}
	slog.Info("configuration file prepared", "path", configurationFile, "variables", opts.Variables.Len())

	inv := &Invocation{
		Executable:        executable,
		ConfigurationFile: configurationFile,
		Scripts:           make([]PreparedScript, 0, len(opts.Scripts)),
	}

	for _, script := range opts.Scripts {
		prepared, err := prepareScript(bootstrapper, script, configurationFile, workDir)
		if err != nil {
			return nil, err
		}
		inv.Scripts = append(inv.Scripts, *prepared)
	}

	return inv, nil
}

func prepareScript(b *scriptcs.Bootstrapper, script, configurationFile, workDir string) (*PreparedScript, error) {
	absScript := script
	if !filepath.IsAbs(absScript) {
		absScript = filepath.Join(workDir, script)
	}

	bootstrapFile, err := b.PrepareBootstrapFile(absScript, configurationFile, workDir)
	if err != nil {
		return nil, fmt.Errorf("preparing bootstrap file for %s: %w", script, err)
	}
	slog.Info("bootstrap file prepared", "script", absScript, "path", bootstrapFile)

	return &PreparedScript{
		Script:        absScript,
		BootstrapFile: bootstrapFile,
		Arguments:     scriptcs.FormatCommandArguments(bootstrapFile),
		Args:          scriptcs.CommandArguments(bootstrapFile),
	}, nil
}

func findExecutable(locator *scriptcs.Locator) (string, error) {
	if locator == nil {
		var err error
		if locator, err = scriptcs.NewLocator(); err != nil {
			return "", fmt.Errorf("creating locator: %w", err)
		}
	}

	executable, err := locator.FindExecutable()
	if err != nil {
		return "", fmt.Errorf("locating scriptcs: %w", err)
	}
	return executable, nil
}

func newBootstrapper(tmpl *scriptcs.Template) (*scriptcs.Bootstrapper, error) {
	if tmpl == nil {
		var err error
		if tmpl, err = scriptcs.DefaultTemplate(); err != nil {
			return nil, fmt.Errorf("loading configuration template: %w", err)
		}
	}
	return scriptcs.NewBootstrapper(tmpl), nil
}
