package commands

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
)

// Version information - these will be set at build time
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  "Display detailed version information about dsrename",
	RunE: func(cmd *cobra.Command, args []string) error {
		f := formatter(cmd)
		if f.IsJSON() {
			return f.Output(map[string]string{
				"version":   Version,
				"gitCommit": GitCommit,
				"buildDate": BuildDate,
				"goVersion": runtime.Version(),
				"os":        runtime.GOOS,
				"arch":      runtime.GOARCH,
			})
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "dsrename version %s\n", Version)
		fmt.Fprintf(&sb, "  Git commit: %s\n", GitCommit)
		fmt.Fprintf(&sb, "  Build date: %s\n", BuildDate)
		fmt.Fprintf(&sb, "  Go version: %s\n", runtime.Version())
		fmt.Fprintf(&sb, "  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
		return f.Output(sb.String())
	},
}
