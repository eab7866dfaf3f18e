package cmd

import (
	"github.com/spf13/cobra"

	"github.com/viant/mlnotes/dataset"
)

type normalizeOptions struct {
	source    sourceFlags
	normalize normalizeFlags
}

func newNormalizeCmd(a *app) *cobra.Command {
	o := &normalizeOptions{}
	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Print the training set rescaled with min-max or z-score normalization",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			set, err := a.loadTraining(cmd.Context(), cmd, o.source)
			if err != nil {
				return err
			}
			strategy, names, opts, err := o.normalize.resolve(cmd, a.cfg)
			if err != nil {
				return err
			}
			scales, err := set.Normalize(strategy, names, opts...)
			if err != nil {
				return err
			}
			a.log.Debugw("scales fitted", "strategy", scales.Strategy, "columns", len(scales.Scales), "skipped", scales.Skipped)
			return dataset.Write(cmd.OutOrStdout(), set.Schema(), set.Examples())
		},
	}
	o.source.register(cmd)
	o.normalize.register(cmd)
	return cmd
}
