// Package cmd implements the ringview CLI commands.
//
// A root command dispatches to subcommands (simulate, render, watch), each
// registering itself from an init function.
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-drift/ringview/pkg/config"
	"github.com/go-drift/ringview/pkg/progress"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// Command represents a CLI command.
type Command struct {
	Name  string
	Short string
	Long  string
	Usage string
	Run   func(env *Env, args []string) error
}

// Env carries global options into a command.
type Env struct {
	// ConfigPath is the --config value; empty means ./ringview.yaml if present.
	ConfigPath string
	Stdout     io.Writer
	Stderr     io.Writer
}

// Config loads the indicator configuration selected by the global flags.
func (e *Env) Config() (progress.Config, error) {
	if e.ConfigPath != "" {
		return config.Load(e.ConfigPath)
	}
	return config.LoadOptional(".")
}

var rootCmd = &Command{
	Name:  "ringview",
	Short: "ringview - circular progress animation engine",
	Long: `ringview runs the circular progress state machine outside a UI toolkit.

Use "ringview <command> --help" for more information about a command.`,
	Usage: "ringview [--config FILE] <command> [flags]",
}

var (
	commands = make(map[string]*Command)
	ordered  []*Command
)

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
	ordered = append(ordered, cmd)
}

// Execute runs the CLI with the given arguments.
func Execute(args []string) error {
	return execute(&Env{Stdout: os.Stdout, Stderr: os.Stderr}, args)
}

func execute(env *Env, args []string) error {
	if len(args) == 0 {
		printHelp(env.Stdout)
		return nil
	}

	// Handle global flags before the command name
	var filtered []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if len(filtered) > 0 {
			filtered = append(filtered, arg)
			continue
		}
		switch arg {
		case "-h", "--help", "help":
			printHelp(env.Stdout)
			return nil
		case "-v", "--version", "version":
			fmt.Fprintf(env.Stdout, "ringview version %s (built %s)\n", Version, BuildTime)
			return nil
		case "--config":
			if i+1 >= len(args) {
				return fmt.Errorf("--config requires a file path")
			}
			env.ConfigPath = args[i+1]
			i++
		default:
			if strings.HasPrefix(arg, "--config=") {
				env.ConfigPath = strings.TrimPrefix(arg, "--config=")
				continue
			}
			filtered = append(filtered, arg)
		}
	}

	if len(filtered) == 0 {
		printHelp(env.Stdout)
		return nil
	}

	name := filtered[0]
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(env.Stderr, "Error: unknown command %q\n\n", name)
		printHelp(env.Stderr)
		return fmt.Errorf("unknown command: %s", name)
	}

	cmdArgs := filtered[1:]
	for _, arg := range cmdArgs {
		if arg == "-h" || arg == "--help" {
			printCommandHelp(env.Stdout, cmd)
			return nil
		}
	}

	return cmd.Run(env, cmdArgs)
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, rootCmd.Long)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintf(w, "  %s\n", rootCmd.Usage)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, sub := range ordered {
		fmt.Fprintf(w, "  %-14s %s\n", sub.Name, sub.Short)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -h, --help           Show help for a command")
	fmt.Fprintln(w, "  -v, --version        Show version information")
	fmt.Fprintln(w, "  --config FILE        Indicator settings (default: ./ringview.yaml if present)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  ringview simulate --value 60          Print the state changes of a spin-then-fill run")
	fmt.Fprintln(w, "  ringview render --out frames          Write the same run as PNG frames")
	fmt.Fprintln(w, "  ringview watch                        Drive an indicator from the keyboard")
}

func printCommandHelp(w io.Writer, cmd *Command) {
	fmt.Fprintln(w, cmd.Long)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintf(w, "  %s\n", cmd.Usage)
}
