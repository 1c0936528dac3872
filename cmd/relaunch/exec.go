package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hostruntime/relaunch/envedit"
	"github.com/hostruntime/relaunch/execbind"
)

var (
	execSetVars      []string
	execPrependPaths []string
	execUnique       bool
	execRestore      bool
)

var execCmd = &cobra.Command{
	Use:   "exec [flags] -- program [args...]",
	Short: "Edit the environment, then replace this process with program",
	Long: `Applies the requested environment edits to this process and then
replaces it with program via execvp. On success exec never returns;
the program inherits the edited environment.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExec,
}

func init() {
	execCmd.Flags().StringArrayVar(&execSetVars, "env", nil,
		"set NAME=VALUE in the environment (repeatable)")
	execCmd.Flags().StringArrayVar(&execPrependPaths, "prepend-path", nil,
		"prepend NAME=DIR to a colon-delimited variable (repeatable)")
	execCmd.Flags().BoolVar(&execUnique, "unique", false,
		"skip prepending a path element that is already present")
	execCmd.Flags().BoolVar(&execRestore, "restore-preload", false,
		"restore "+envedit.DefaultPreloadVar+" from its backup before exec")
	rootCmd.AddCommand(execCmd)
}

func runExec(cmd *cobra.Command, args []string) error {
	table := envedit.System()

	for _, kv := range execSetVars {
		name, value, err := splitAssignment(kv)
		if err != nil {
			return err
		}
		table.Set(name, value)
	}

	for _, kv := range execPrependPaths {
		name, dir, err := splitAssignment(kv)
		if err != nil {
			return err
		}
		envedit.PrependPath(table, name, dir, execUnique)
	}

	if execRestore {
		envedit.RestorePreload(table, envedit.DefaultPreloadVar, envedit.DefaultPreloadBackupVar)
	}

	// Only reached when the replacement failed.
	return execbind.ExecLookup(args[0], args[1:])
}

func splitAssignment(kv string) (name, value string, err error) {
	idx := strings.IndexByte(kv, '=')
	if idx <= 0 {
		return "", "", fmt.Errorf("expected NAME=VALUE, got %q", kv)
	}
	return kv[:idx], kv[idx+1:], nil
}
