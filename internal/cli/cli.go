// Package cli implements the sublayout command-line interface.
//
// The commands load layout documents (see package document), build them
// over an in-memory scene and report what the reconciler does with them:
//
//	sublayout tree panel.yaml --anchors
//	sublayout check layouts/*.yaml
//	sublayout apply before.yaml after.yaml --ops
//
// All commands accept --verbose (-v) for debug logging. The logger is
// passed to commands through the context. --debug-log FILE (or the
// SUBLAYOUT_DEBUG environment variable) sends reconciler debug output to a
// file instead.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/grindlemire/go-sublayout/pkg/debug"
)

var (
	version = "dev"
	commit  string
	date    string
)

// SetVersion sets the version information displayed by --version.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the CLI with the process arguments. The debug log is closed
// on return even when a command fails.
func Execute(ctx context.Context) error {
	defer debug.Close()
	return NewRootCommand(os.Stdout, os.Stderr).ExecuteContext(ctx)
}

// NewRootCommand builds the command tree writing results to out and logs
// to errOut.
func NewRootCommand(out, errOut io.Writer) *cobra.Command {
	var (
		verbose  bool
		debugLog string
	)

	root := &cobra.Command{
		Use:           "sublayout",
		Short:         "Inspect and apply declarative view layouts",
		Long:          `sublayout loads layout documents, renders their trees and reconciles them against an in-memory scene to show which host operations each change needs.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(errOut, level))

			path := debugLog
			if path == "" {
				path = os.Getenv(debug.EnvVar)
			}
			if path != "" {
				if err := debug.Init(path); err != nil {
					return err
				}
				ctx = withDebugLog(ctx)
				debug.Logf("%s %s", cmd.CommandPath(), version)
			}
			cmd.SetContext(ctx)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return debug.Close()
		},
	}

	root.SetOut(out)
	root.SetErr(errOut)
	root.SetVersionTemplate(fmt.Sprintf("sublayout %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&debugLog, "debug-log", "", "append reconciler debug output to `FILE`")

	root.AddCommand(newTreeCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newApplyCmd())

	return root
}
