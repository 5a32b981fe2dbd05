package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vvka-141/swapify/internal/config"
	"github.com/vvka-141/swapify/internal/files/scanner"
	"github.com/vvka-141/swapify/internal/transform"
	"github.com/vvka-141/swapify/pkg/swapify"
)

// modelFlags holds the flag values shared by apply and list.
type modelFlags struct {
	model      string
	varName    string
	exclude    []string
	configPath string
}

// resolvedOptions is the merged result of flags, environment and swapify.yaml.
type resolvedOptions struct {
	Model   string
	VarName string
	Exclude []string
	Workers int
}

func registerModelFlags(cmd *cobra.Command, flags *modelFlags) {
	cmd.Flags().StringVar(&flags.model, "model", "",
		"Swappable model as '<app_label>.<model_name>' (default: "+swapify.DefaultModel+", or $"+config.EnvModel+")")
	cmd.Flags().StringVar(&flags.varName, "var-name", "",
		"Setting holding the swappable model, e.g. AUTH_USER_MODEL\n"+
			"(default: <APP_LABEL>_<MODEL_NAME>_MODEL, or $"+config.EnvVarName+")")
	cmd.Flags().StringArrayVar(&flags.exclude, "exclude", nil,
		"Skip files whose path relative to <DIR> matches this glob (repeatable, ** supported)")
	cmd.Flags().StringVar(&flags.configPath, "config", "",
		"Path to a swapify config file (default: <DIR>/"+config.ConfigFileName+" when present)")
}

// loadProjectConfig loads godotenv and project configuration.
// A missing default swapify.yaml yields an empty config; a missing explicit
// --config file is an error.
func loadProjectConfig(dir, explicitPath string) (*config.ProjectConfig, error) {
	_ = godotenv.Load()

	var (
		cfg *config.ProjectConfig
		err error
	)
	if explicitPath != "" {
		cfg, err = config.LoadFile(explicitPath)
	} else {
		cfg, err = config.Load(dir)
	}

	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			if explicitPath != "" {
				return nil, fmt.Errorf("%w: config file %s not found", swapify.ErrInvalidConfig, explicitPath)
			}
			return &config.ProjectConfig{}, nil
		}
		return nil, fmt.Errorf("failed to load %s: %w", config.ConfigFileName, err)
	}
	return cfg, nil
}

// resolveOptions merges flags over environment over swapify.yaml over defaults.
// workers is only applied when workersSet is true.
func resolveOptions(dir string, flags modelFlags, workers int, workersSet bool) (resolvedOptions, error) {
	cfg, err := loadProjectConfig(dir, flags.configPath)
	if err != nil {
		return resolvedOptions{}, err
	}
	cfg.ApplyEnv(os.LookupEnv)

	opts := resolvedOptions{
		Model:   swapify.DefaultModel,
		VarName: cfg.VarName,
		Workers: swapify.DefaultWorkers,
	}
	if cfg.Model != "" {
		opts.Model = cfg.Model
	}
	if cfg.Workers > 0 {
		opts.Workers = cfg.Workers
	}

	if flags.model != "" {
		opts.Model = flags.model
	}
	if flags.varName != "" {
		opts.VarName = flags.varName
	}
	if workersSet {
		if workers < 1 {
			return resolvedOptions{}, fmt.Errorf("%w: --workers must be at least 1, got %d", swapify.ErrInvalidConfig, workers)
		}
		opts.Workers = workers
	}

	opts.Exclude = append(append([]string(nil), cfg.Exclude...), flags.exclude...)
	return opts, nil
}

// buildScanner constructs the transformer and scanner for opts.
func buildScanner(opts resolvedOptions) (*transform.Transformer, *scanner.Scanner, error) {
	tr, err := transform.NewFromString(opts.Model, opts.VarName)
	if err != nil {
		return nil, nil, err
	}
	sc, err := scanner.NewScanner(tr).WithExcludes(opts.Exclude)
	if err != nil {
		return nil, nil, err
	}
	return tr, sc, nil
}

// logOptionsVerbose logs the resolved options when verbose mode is enabled.
func logOptionsVerbose(logger swapify.Logger, dir string, opts resolvedOptions, tr *transform.Transformer) {
	binding := tr.Binding()
	logger.Verbose("Directory: %s", dir)
	logger.Verbose("Model: %s", opts.Model)
	logger.Verbose("Setting: %s (app label %s, model name %s)", binding.SettingName, binding.NamespaceConstName, binding.NameConstName)
	logger.Verbose("Marker: %s", tr.Marker())
	if len(opts.Exclude) > 0 {
		logger.Verbose("Exclude: %v", opts.Exclude)
	}
	logger.Verbose("Workers: %d", opts.Workers)
}

// logScanFailures reports files the scanner could not read.
func logScanFailures(logger swapify.Logger, failures []swapify.FileFailure) {
	for _, f := range failures {
		logger.Error("%s: %v", f.Path, f.Err)
	}
}
