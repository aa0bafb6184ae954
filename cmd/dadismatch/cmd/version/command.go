// Package version provides the version command.
package version

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/vbo-tools/dadismatch/internal/appcontext"
)

// NewCommand creates the version command.
func NewCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Show version information for the dadismatch CLI.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "dadismatch version %s\n", app.Version())
			_, _ = fmt.Fprintf(w, "commit: %s\n", app.Commit())
			_, _ = fmt.Fprintf(w, "built: %s\n", app.Date())
			_, _ = fmt.Fprintf(w, "built by: %s\n", app.BuiltBy())
			_, _ = fmt.Fprintf(w, "go version: %s\n", runtime.Version())
			_, _ = fmt.Fprintf(w, "platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
