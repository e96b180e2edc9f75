package cli

import (
	"github.com/spf13/cobra"

	"github.com/grindlemire/go-sublayout"
	"github.com/grindlemire/go-sublayout/pkg/document"
)

// layoutFlags are shared by commands that build documents.
type layoutFlags struct {
	vars []string
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&f.vars, "var", nil, "override a document variable (name=value, repeatable)")
}

func (f *layoutFlags) parse() (map[string]any, error) {
	return document.ParseVars(f.vars)
}

// buildFile loads path and builds it with b.
func buildFile(b *document.Builder, path string, vars map[string]any) (sublayout.Layout, error) {
	doc, err := document.Load(path)
	if err != nil {
		return nil, err
	}
	return b.Build(doc, vars)
}
