package cli

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/grindlemire/go-sublayout"
	"github.com/grindlemire/go-sublayout/pkg/document"
	"github.com/grindlemire/go-sublayout/pkg/scene"
)

func newCheckCmd() *cobra.Command {
	var flags layoutFlags

	cmd := &cobra.Command{
		Use:   "check FILE...",
		Short: "Validate layout documents without applying them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vars, err := flags.parse()
			if err != nil {
				return err
			}
			logger := loggerFromContext(cmd.Context())
			out := cmd.OutOrStdout()

			failed := 0
			for _, path := range args {
				n, err := checkFile(path, vars)
				if err != nil {
					failed++
					logger.Debug("check failed", "file", path, "err", err)
					printError(out, "%s: %v", path, err)
					continue
				}
				printSuccess(out, "%s: %d views", path, n)
			}
			if failed > 0 {
				return errors.Errorf("%d of %d layouts are invalid", failed, len(args))
			}
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func checkFile(path string, vars map[string]any) (int, error) {
	l, err := buildFile(document.NewBuilder(scene.New()), path, vars)
	if err != nil {
		return 0, err
	}
	components, err := sublayout.Flatten(l, nil)
	if err != nil {
		return 0, err
	}
	return len(components), nil
}
