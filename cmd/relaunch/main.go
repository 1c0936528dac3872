// Command relaunch edits the environment and replaces itself with the
// requested program, so the mutated environment is what the program's
// dynamic linker observes at start.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:     "relaunch",
	Short:   "Environment editing and in-place process replacement",
	Long:    "relaunch edits search-path environment variables and replaces the current process image via the POSIX exec family.",
	Version: Version,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
