package cli

import (
	"github.com/spf13/cobra"

	"github.com/grindlemire/go-sublayout"
	"github.com/grindlemire/go-sublayout/pkg/document"
	"github.com/grindlemire/go-sublayout/pkg/scene"
)

func newTreeCmd() *cobra.Command {
	var (
		flags   layoutFlags
		anchors bool
	)

	cmd := &cobra.Command{
		Use:   "tree FILE",
		Short: "Print the declared layout tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			vars, err := flags.parse()
			if err != nil {
				return err
			}
			l, err := buildFile(document.NewBuilder(scene.New()), args[0], vars)
			if err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Debug("built layout", "file", args[0], "vars", len(vars))
			printTree(cmd.OutOrStdout(), sublayout.RenderTree(l, anchors))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&anchors, "anchors", false, "list each node's anchors under it")
	return cmd
}
