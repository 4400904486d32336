package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	cfgFile     string
	quietFlag   bool
	verboseFlag bool
	watchFlag   bool
)

// rootCmd represents the base command. The bare command runs the check, so
// the tool can be invoked from a project directory with no arguments.
var rootCmd = &cobra.Command{
	Use:   "bevy-reflect-check",
	Short: "Find Bevy components missing #[reflect(Component)]",
	Long: `bevy-reflect-check scans a Bevy project for struct and enum types that
derive both Reflect and Component but lack the #[reflect(Component)]
attribute, which silently breaks reflection-based tooling at runtime.

The checker:
  - Resolves the dependency graph via cargo metadata
  - Parses the local src tree with tree-sitter
  - Scans every dependency crate whose name matches the crate prefix
  - Reports each offender as a fully qualified module::path::TypeName

Examples:
  # Check the project in the current directory
  bevy-reflect-check

  # Include types that are private to their crate
  bevy-reflect-check --include-private

  # Check against an engine fork
  bevy-reflect-check --crate-prefix my_engine_

  # Re-check automatically as sources change
  bevy-reflect-check --watch
`,
	RunE: runCheck,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVar(&cfgFile, "config", "", "config file (default is .reflect-check.yml in the project directory)")
	rootCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "Disable progress output")
	rootCmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable debug logging")
	rootCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Watch the source tree and re-check on changes")
	registerOverrideFlags(rootCmd.Flags())
}

// registerOverrideFlags declares the flags that override configuration keys.
// Split out so tests can build the same flag set.
func registerOverrideFlags(flags *pflag.FlagSet) {
	flags.String("crate-prefix", "", "scan dependency crates whose name starts with this prefix")
	flags.String("source-root", "", "local source directory to scan")
	flags.String("format", "", "output format: debug, table or json")
	flags.Bool("include-private", false, "also report types that are not visible outside their crate")
}
