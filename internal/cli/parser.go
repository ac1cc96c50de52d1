package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Usage is printed on usage errors
const Usage = "usage: envgate <check|run|get|list|spec> [flags] [args...]"

// ErrNoSubcommand is returned when no known subcommand is provided
var ErrNoSubcommand = errors.New("missing subcommand: " + Usage)

// ErrNoCommand is returned when no command is provided after "run"
var ErrNoCommand = errors.New("no command provided: usage: envgate run [flags] <command> [args...]")

// ErrNoKey is returned when no key is provided after "get"
var ErrNoKey = errors.New("no key provided: usage: envgate get [flags] <KEY>")

// ErrMissingFlagValue is returned when a flag requires a value but none is provided
var ErrMissingFlagValue = errors.New("flag requires a value")

// ErrInvalidFlagValue is returned when a boolean flag is given a non-boolean value
var ErrInvalidFlagValue = errors.New("invalid flag value")

// ErrUnknownFlag is returned for flags the subcommand does not accept
var ErrUnknownFlag = errors.New("unknown flag")

// ErrUnexpectedArg is returned for positional arguments the subcommand does not accept
var ErrUnexpectedArg = errors.New("unexpected argument")

// Subcommand represents the CLI subcommand
type Subcommand string

const (
	SubcommandCheck Subcommand = "check"
	SubcommandRun   Subcommand = "run"
	SubcommandGet   Subcommand = "get"
	SubcommandList  Subcommand = "list"
	SubcommandSpec  Subcommand = "spec"
)

var subcommands = map[string]Subcommand{
	"check": SubcommandCheck,
	"run":   SubcommandRun,
	"get":   SubcommandGet,
	"list":  SubcommandList,
	"spec":  SubcommandSpec,
}

// Command represents the parsed CLI input
type Command struct {
	Subcommand Subcommand
	Target     string   // The command to execute (run only)
	Args       []string // Arguments to pass (run only)
	Key        string   // The key to print (get only)

	SpecPath string   // --spec <path>
	Mode     string   // --mode <mode>
	EnvFile  string   // --env-file <path>
	Require  []string // --require <KEY>, repeatable
	CIMode   bool     // --ci
	JSON     bool     // --json
	Optional bool     // --optional (get only)
	Quiet    bool     // --quiet
}

// ParseArgs parses CLI arguments into a Command.
// It expects args to be os.Args[1:] (excluding the program name).
func ParseArgs(args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, ErrNoSubcommand
	}

	sub, ok := subcommands[args[0]]
	if !ok {
		return Command{}, ErrNoSubcommand
	}

	cmd := Command{Subcommand: sub}

	i := 1 // Start after subcommand
	for i < len(args) {
		arg := args[i]

		if arg == "--" {
			i++
			break
		}

		if !strings.HasPrefix(arg, "--") {
			break
		}

		flagName := strings.TrimPrefix(arg, "--")
		value := ""
		inline := false
		if eq := strings.Index(flagName, "="); eq >= 0 {
			flagName, value = flagName[:eq], flagName[eq+1:]
			inline = true
		} else if takesValue(flagName) {
			if i+1 >= len(args) {
				return Command{}, fmt.Errorf("%w: --%s", ErrMissingFlagValue, flagName)
			}
			i++
			value = args[i]
		}

		if takesValue(flagName) && value == "" {
			return Command{}, fmt.Errorf("%w: --%s", ErrMissingFlagValue, flagName)
		}

		on := true
		if inline && !takesValue(flagName) {
			b, err := strconv.ParseBool(value)
			if err != nil {
				return Command{}, fmt.Errorf("%w: --%s=%s", ErrInvalidFlagValue, flagName, value)
			}
			on = b
		}

		switch flagName {
		case "spec":
			cmd.SpecPath = value
		case "mode":
			cmd.Mode = value
		case "env-file":
			cmd.EnvFile = value
		case "require":
			cmd.Require = append(cmd.Require, value)
		case "ci":
			cmd.CIMode = on
		case "json":
			cmd.JSON = on
		case "quiet":
			cmd.Quiet = on
		case "optional":
			if sub != SubcommandGet {
				return Command{}, fmt.Errorf("%w: --%s", ErrUnknownFlag, flagName)
			}
			cmd.Optional = on
		default:
			return Command{}, fmt.Errorf("%w: --%s", ErrUnknownFlag, flagName)
		}
		i++
	}

	rest := args[i:]

	switch sub {
	case SubcommandRun:
		if len(rest) == 0 {
			return Command{}, ErrNoCommand
		}
		cmd.Target = rest[0]
		if len(rest) > 1 {
			cmd.Args = rest[1:]
		}
	case SubcommandGet:
		if len(rest) == 0 {
			return Command{}, ErrNoKey
		}
		if len(rest) > 1 {
			return Command{}, fmt.Errorf("%w: %s", ErrUnexpectedArg, rest[1])
		}
		cmd.Key = rest[0]
	default:
		if len(rest) > 0 {
			return Command{}, fmt.Errorf("%w: %s", ErrUnexpectedArg, rest[0])
		}
	}

	return cmd, nil
}

func takesValue(flagName string) bool {
	switch flagName {
	case "spec", "mode", "env-file", "require":
		return true
	}
	return false
}
