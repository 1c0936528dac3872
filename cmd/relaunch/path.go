package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hostruntime/relaunch/envedit"
)

var pathUnique bool

var pathCmd = &cobra.Command{
	Use:   "path NAME DIR",
	Short: "Show the effect of prepending DIR to the path-list variable NAME",
	Long: `Computes the value NAME would have after prepending DIR and prints
it as a shell-style diff, without mutating the environment.`,
	Args: cobra.ExactArgs(2),
	RunE: runPath,
}

func init() {
	pathCmd.Flags().BoolVar(&pathUnique, "unique", false,
		"skip prepending when DIR is already present")
	rootCmd.AddCommand(pathCmd)
}

func runPath(cmd *cobra.Command, args []string) error {
	name, dir := args[0], args[1]

	// Work on a copy so the real environment stays untouched.
	table := envedit.NewMapTable(envedit.Parse(envedit.System().Environ()))
	before, _ := table.Lookup(name)

	envedit.PrependPath(table, name, dir, pathUnique)

	after, _ := table.Lookup(name)
	fmt.Fprintln(cmd.OutOrStdout(), envedit.DiffForDisplay(name, before, after))
	return nil
}
