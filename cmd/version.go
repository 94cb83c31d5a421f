package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is set with -ldflags "-X github.com/abhisek/kanaz/cmd.version=..."
// by the release build.
var version = "(devel)"

// buildVersion falls back to the module version recorded by go install
// when no version was linked in.
func buildVersion(linked string, info func() (*debug.BuildInfo, bool)) string {
	if linked != "(devel)" {
		return linked
	}
	if bi, ok := info(); ok && bi.Main.Version != "" {
		return bi.Main.Version
	}
	return linked
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the kanaz version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		if short, _ := cmd.Flags().GetBool("short"); short {
			fmt.Fprintln(out, version)
			return
		}
		fmt.Fprintf(out, "kanaz %s (%s/%s, %s)\n", version, runtime.GOOS, runtime.GOARCH, runtime.Version())
	},
}

func init() {
	version = buildVersion(version, debug.ReadBuildInfo)
	versionCmd.Flags().Bool("short", false, "Print only the version")
}
