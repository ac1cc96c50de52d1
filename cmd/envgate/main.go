package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"envgate/internal/cli"
	"envgate/internal/launcher"
	"envgate/internal/logging"
	"envgate/internal/reporter"
	"envgate/internal/resolver"
	"envgate/internal/runmode"
	"envgate/internal/schema"
	"envgate/internal/settings"
	"envgate/internal/validator"

	log "github.com/sirupsen/logrus"
)

// Exit codes
const (
	exitOK               = 0
	exitInvalid          = 1
	exitUsage            = 2
	exitInput            = 3
	exitPermissionDenied = 126
	exitNotFound         = 127
)

func main() {
	cfg, err := settings.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitUsage)
	}
	os.Exit(run(os.Args[1:], os.Environ(), cfg, os.Stdout, os.Stderr))
}

// app carries everything a subcommand needs once inputs are resolved.
type app struct {
	cmd    cli.Command
	spec   schema.Spec
	env    resolver.Snapshot
	v      *validator.Validator
	ci     bool
	log    *log.Logger
	stdout io.Writer
	stderr io.Writer
}

// run orchestrates the full execution flow and returns an exit code.
// It is separated from main() to enable testing.
func run(args []string, environ []string, cfg settings.Settings, stdout, stderr io.Writer) int {
	cmd, err := cli.ParseArgs(args)
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return exitUsage
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, stderr)
	if err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return exitUsage
	}

	spec, specPath, err := loadSpec(cmd.SpecPath, cfg.Spec)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintf(stderr, "spec file not found: %s\n", specPath)
		} else {
			fmt.Fprintf(stderr, "failed to load spec: %v\n", err)
		}
		return exitInput
	}

	env := resolver.NewSnapshot(environ)
	if envFile := firstNonEmpty(cmd.EnvFile, cfg.EnvFile); envFile != "" {
		fileEnv, err := resolver.LoadDotenv(envFile)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitInput
		}
		env = env.Overlay(fileEnv)
		logger.WithFields(log.Fields{"file": envFile, "vars": fileEnv.Len()}).Debug("loaded env file")
	}

	modeVar := firstNonEmpty(spec.ModeVar(), cfg.ModeVar)
	if err := spec.CheckModeVar(modeVar); err != nil {
		fmt.Fprintf(stderr, "failed to load spec: %v\n", err)
		return exitInput
	}

	if len(cmd.Require) > 0 {
		spec, err = spec.WithRequired(cmd.Require...)
		if err != nil {
			fmt.Fprintln(stderr, "Error:", err)
			return exitUsage
		}
	}

	rawMode, _ := env.Lookup(modeVar)
	mode := runmode.Resolve(cmd.Mode, rawMode, cfg.Fallback())

	exempt := spec.ExemptModes()
	if exempt == nil {
		exempt = cfg.Exempt()
	}

	a := &app{
		cmd:    cmd,
		spec:   spec,
		env:    env,
		v:      validator.New(spec, env, mode, validator.WithExemptModes(exempt...)),
		ci:     cmd.CIMode || cfg.CI || getEnvBool(env, "CI"),
		log:    logger,
		stdout: stdout,
		stderr: stderr,
	}

	logger.WithFields(log.Fields{
		"spec":     specLabel(specPath),
		"keys":     spec.Len(),
		"mode":     a.v.Mode(),
		"mode_var": modeVar,
		"exempt":   a.v.Exempt(),
	}).Debug("resolved configuration")

	switch cmd.Subcommand {
	case cli.SubcommandCheck:
		return a.check()
	case cli.SubcommandRun:
		return a.run()
	case cli.SubcommandGet:
		return a.get()
	case cli.SubcommandList:
		return a.list()
	case cli.SubcommandSpec:
		return a.printSpec()
	}

	fmt.Fprintln(stderr, "Error:", cli.ErrNoSubcommand)
	return exitUsage
}

// check validates the environment and reports the outcome.
func (a *app) check() int {
	err := a.v.Validate()
	result := a.v.Report()

	if a.cmd.JSON {
		out, jerr := reporter.FormatJSON(result)
		if jerr != nil {
			fmt.Fprintf(a.stderr, "Error: cannot format result: %v\n", jerr)
			return exitInvalid
		}
		fmt.Fprintln(a.stdout, out)
	}

	if err != nil {
		a.reportFailure(err, result)
		return exitInvalid
	}

	a.log.WithField("mode", result.Mode).Info("environment validation passed")
	if !a.cmd.JSON && !a.cmd.Quiet {
		fmt.Fprint(a.stdout, reporter.FormatCLI(result))
	}
	return exitOK
}

// run validates the environment and, on success, replaces the process
// with the target command. Success is silent.
func (a *app) run() int {
	if err := a.v.Validate(); err != nil {
		a.reportFailure(err, a.v.Report())
		return exitInvalid
	}

	a.log.WithField("command", a.cmd.Target).Info("environment valid, executing")

	err := launcher.Exec(a.cmd.Target, a.cmd.Args, a.env.Environ())
	if err == nil {
		// Unreachable: a successful exec replaces the process
		return exitOK
	}
	if launcher.IsNotFound(err) {
		fmt.Fprintf(a.stderr, "Error: command not found: %s\n", a.cmd.Target)
		return exitNotFound
	}
	if launcher.IsPermissionDenied(err) {
		fmt.Fprintf(a.stderr, "Error: permission denied: %s\n", a.cmd.Target)
		return exitPermissionDenied
	}
	fmt.Fprintf(a.stderr, "Error: %v\n", err)
	return exitInvalid
}

// get prints a single value.
func (a *app) get() int {
	if a.cmd.Optional {
		if value, ok := a.v.GetOptional(a.cmd.Key); ok {
			fmt.Fprintln(a.stdout, value)
		}
		return exitOK
	}

	value, err := a.v.GetRequired(a.cmd.Key)
	if err != nil {
		fmt.Fprintln(a.stderr, "Error:", err)
		return exitInvalid
	}
	fmt.Fprintln(a.stdout, value)
	return exitOK
}

// list prints the status of every key without revealing values.
func (a *app) list() int {
	result := a.v.Report()

	if a.cmd.JSON {
		out, err := reporter.FormatJSON(result)
		if err != nil {
			fmt.Fprintf(a.stderr, "Error: cannot format result: %v\n", err)
			return exitInvalid
		}
		fmt.Fprintln(a.stdout, out)
		return exitOK
	}

	fmt.Fprint(a.stdout, reporter.FormatList(result))
	return exitOK
}

// printSpec prints the effective spec as YAML.
func (a *app) printSpec() int {
	out, err := a.spec.ToYAML()
	if err != nil {
		fmt.Fprintf(a.stderr, "Error: cannot serialize spec: %v\n", err)
		return exitInvalid
	}
	fmt.Fprint(a.stdout, string(out))
	return exitOK
}

func (a *app) reportFailure(err error, result validator.Result) {
	keys, ok := validator.MissingKeys(err)
	if !ok {
		fmt.Fprintln(a.stderr, "Error:", err)
		return
	}

	a.log.WithFields(log.Fields{
		"mode":    result.Mode,
		"missing": strings.Join(keys, ","),
	}).Info("environment validation failed")

	if a.cmd.JSON {
		return
	}
	if a.ci {
		fmt.Fprint(a.stderr, reporter.FormatCI(result))
		return
	}
	fmt.Fprint(a.stderr, reporter.FormatCLI(result))
}

// loadSpec resolves the spec from the flag, the settings, envgate.yaml in
// the working directory, or the built-in table, in that order.
// The returned path is empty for the built-in table.
func loadSpec(flagPath, settingsPath string) (schema.Spec, string, error) {
	if path := firstNonEmpty(flagPath, settingsPath); path != "" {
		s, err := schema.LoadSpecFromPath(path)
		return s, path, err
	}

	s, err := schema.LoadSpec(".")
	if err == nil {
		return s, schema.DefaultFileName, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return schema.Default(), "", nil
	}
	return schema.Spec{}, schema.DefaultFileName, err
}

func specLabel(path string) string {
	if path == "" {
		return "built-in"
	}
	return path
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// getEnvBool checks if an environment variable is set to a truthy value
func getEnvBool(env resolver.Snapshot, name string) bool {
	val, _ := env.Lookup(name)
	val = strings.ToLower(val)
	return val == "true" || val == "1" || val == "yes"
}
