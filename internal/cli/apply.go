package cli

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/grindlemire/go-sublayout"
	"github.com/grindlemire/go-sublayout/pkg/document"
	"github.com/grindlemire/go-sublayout/pkg/observability"
	"github.com/grindlemire/go-sublayout/pkg/scene"
)

type applyOptions struct {
	layoutFlags
	force    bool
	ops      bool
	metrics  bool
	teardown bool
}

func newApplyCmd() *cobra.Command {
	var opts applyOptions

	cmd := &cobra.Command{
		Use:   "apply FILE...",
		Short: "Reconcile layouts against a scene in sequence",
		Long: `apply activates the first layout on an empty scene and updates the
activation with each following layout, printing the host operations every
pass issued and the resulting scene.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(cmd, args, opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().BoolVar(&opts.force, "force", false, "recreate every constraint on each pass")
	cmd.Flags().BoolVar(&opts.ops, "ops", false, "print every host operation")
	cmd.Flags().BoolVar(&opts.metrics, "metrics", false, "print reconciliation metrics at the end")
	cmd.Flags().BoolVar(&opts.teardown, "teardown", false, "tear the activation down after the last pass")
	return cmd
}

func runApply(cmd *cobra.Command, files []string, opts applyOptions) error {
	vars, err := opts.parse()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	reg := prometheus.NewRegistry()
	sc := scene.New()
	builder := document.NewBuilder(sc)
	r := sublayout.NewReconciler(sc,
		sublayout.WithLogger(reconcilerLogger(cmd.Context())),
		sublayout.WithHooks(observability.NewPrometheusHooks(reg)))

	var passOpts []sublayout.PassOption
	if opts.force {
		passOpts = append(passOpts, sublayout.ForceLayout())
	}

	var a *sublayout.Activation
	for _, path := range files {
		l, err := buildFile(builder, path, vars)
		if err != nil {
			return err
		}
		sc.ResetOps()
		if a, err = r.Update(l, a, passOpts...); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		printTitle(out, path)
		printStats(out, a.Stats())
		if opts.ops {
			printOps(out, sc.Ops())
		}
	}

	printTitle(out, "scene")
	printTree(out, sc.Tree())

	if opts.teardown {
		sc.ResetOps()
		a.Deactive()
		printTitle(out, "teardown")
		printStat(out, "detached", sc.Count(scene.OpDetach))
		printStat(out, "constraints deactivated", sc.Count(scene.OpDeactivate))
		if opts.ops {
			printOps(out, sc.Ops())
		}
	}

	if opts.metrics {
		printTitle(out, "metrics")
		return writeMetrics(out, reg)
	}
	return nil
}

func printStats(w io.Writer, s sublayout.Stats) {
	printStat(w, "attached", s.Attached)
	printStat(w, "detached", s.Detached)
	printStat(w, "moved", s.Moved)
	printStat(w, "arranged", s.Arranged)
	printStat(w, "constraints activated", s.ConstraintsActivated)
	printStat(w, "constraints deactivated", s.ConstraintsDeactivated)
	printStat(w, "configured", s.Configured)
}

func printOps(w io.Writer, ops []scene.Op) {
	for _, op := range ops {
		fmt.Fprintln(w, "  "+styleDim.Render(op.String()))
	}
}

func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
