// Package cmd implements the swipenav CLI commands.
//
// The command structure follows standard Go CLI patterns with a root
// command that dispatches to subcommands (run, inspect).
package cmd

import (
	"fmt"
	"os"

	"github.com/MarkGodwin/hass-swipe-navigation/pkg/swipenav"
)

// Command represents a CLI command.
type Command struct {
	Name        string
	Short       string
	Long        string
	Usage       string
	Run         func(args []string) error
	SubCommands []*Command
}

var rootCmd = &Command{
	Name:  "swipenav",
	Short: "Swipe navigation scenario runner",
	Long: `Swipenav replays scripted pointer gestures against an in-memory model
of the dashboard DOM, driving the same configuration, resolver and
gesture code the embedded library runs. Use it to debug swipe
recognition, tab selection and configuration handling deterministically.

Use "swipenav <command> --help" for more information about a command.`,
	Usage: "swipenav <command> [flags]",
}

// Commands registered with the CLI.
var commands = make(map[string]*Command)

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
	rootCmd.SubCommands = append(rootCmd.SubCommands, cmd)
}

// Execute runs the CLI with the given arguments.
func Execute() error {
	args := os.Args[1:]

	if len(args) == 0 {
		printHelp(rootCmd)
		return nil
	}

	switch args[0] {
	case "-h", "--help", "help":
		printHelp(rootCmd)
		return nil
	case "-v", "--version", "version":
		fmt.Printf("swipenav version %s\n", swipenav.Version)
		return nil
	}

	cmdName := args[0]
	cmd, ok := commands[cmdName]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", cmdName)
		printHelp(rootCmd)
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	cmdArgs := args[1:]
	for _, arg := range cmdArgs {
		if arg == "-h" || arg == "--help" || arg == "help" {
			printCommandHelp(cmd)
			return nil
		}
	}

	if err := cmd.Run(cmdArgs); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

func printHelp(cmd *Command) {
	fmt.Println(cmd.Long)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Printf("  %s\n", cmd.Usage)
	fmt.Println()
	fmt.Println("Commands:")
	for _, sub := range cmd.SubCommands {
		fmt.Printf("  %-10s %s\n", sub.Name, sub.Short)
	}
	fmt.Println()
	fmt.Println("Flags:")
	fmt.Println("  -h, --help      Show help for a command")
	fmt.Println("  -v, --version   Show version information")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  swipenav run scenario.yaml            Replay a scenario")
	fmt.Println("  swipenav run scenario.yaml --watch    Replay on every file change")
	fmt.Println("  swipenav inspect scenario.yaml        Show effective settings and resolution")
}

func printCommandHelp(cmd *Command) {
	fmt.Println(cmd.Long)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Printf("  %s\n", cmd.Usage)
}
