package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/satishbabariya/mysqlite-go/internal/ui"
)

var (
	// Version is the version of the CLI
	Version = "0.1.0"
	// BuildDate is the build date
	BuildDate = "unknown"
	// GitCommit is the git commit hash
	GitCommit = "unknown"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ui.PrintKeyValue("mysqlite", Version)
			ui.PrintKeyValue("Build Date", BuildDate)
			ui.PrintKeyValue("Git Commit", GitCommit)
			ui.PrintKeyValue("Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH))
			ui.PrintKeyValue("Go Version", runtime.Version())
			return nil
		},
	}
}
