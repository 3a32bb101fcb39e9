// internal/cli/list_commands.go
package losdash

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// newCommandsCmd implements 'commands', which prints the command tree with
// each command's description and the flags it accepts.
func newCommandsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "commands",
		Short: "List all commands with their flags",
		Run: func(cmd *cobra.Command, args []string) {
			runListCommands(cmd.OutOrStdout(), cmd.Root())
		},
	}
}

// commandInfo is one row of the command tree.
type commandInfo struct {
	path        string
	description string
	flags       []string
}

func runListCommands(out io.Writer, root *cobra.Command) {
	rows := collectCommandData(root, "", "")

	width := 0
	for _, row := range rows {
		width = max(width, len(row.path))
	}

	fmt.Fprintln(out, "Commands and Subcommands:")
	for _, row := range rows {
		fmt.Fprintf(out, "  %-*s  %s\n", width, row.path, row.description)
		if len(row.flags) > 0 {
			fmt.Fprintf(out, "  %-*s  flags: %s\n", width, "", strings.Join(row.flags, " "))
		}
	}
}

// collectCommandData walks the tree depth first. The root lists its
// persistent flags; every other command lists only its own flags, so the
// global ones are not repeated on each line.
func collectCommandData(cmd *cobra.Command, parentPath, indent string) []commandInfo {
	if cmd.Hidden || cmd.Name() == "help" || cmd.Name() == "completion" {
		return nil
	}

	path := cmd.Name()
	if parentPath != "" {
		path = parentPath + " " + cmd.Name()
	}

	flagSet := cmd.LocalNonPersistentFlags()
	if !cmd.HasParent() {
		flagSet = cmd.PersistentFlags()
	}
	var flags []string
	flagSet.VisitAll(func(f *pflag.Flag) {
		if f.Hidden || f.Name == "help" {
			return
		}
		name := "--" + f.Name
		if f.Shorthand != "" {
			name = "-" + f.Shorthand + "/" + name
		}
		flags = append(flags, name)
	})

	rows := []commandInfo{{path: indent + path, description: cmd.Short, flags: flags}}
	for _, sub := range cmd.Commands() {
		rows = append(rows, collectCommandData(sub, path, indent+"  ")...)
	}
	return rows
}
