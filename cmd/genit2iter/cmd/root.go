package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information, set by build flags.
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "genit2iter",
	Short: "Rewrite a single-method generator class into an explicit iterator",
	Long: `genit2iter compiles a class whose single "generate" method yields values
in straight-line code, loops and conditionals into a class implementing an
explicit pull-based iterator: a hasNext()/next() pair backed by a resumable
state machine, with no change to the values the generator would have
produced.

Input is a YAML description of the class (see the generate subcommand); the
rewritten class is printed back out in the same surface syntax.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}
