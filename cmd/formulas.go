package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/viant/mlnotes/neuron"
	"github.com/viant/mlnotes/regression"
	"github.com/viant/mlnotes/stats"
)

func newPosteriorCmd() *cobra.Command {
	var likelihood, prior, marginal string
	cmd := &cobra.Command{
		Use:     "posterior",
		Short:   "Bayes' rule: P(A|B) = P(B|A) P(A) / P(B)",
		Example: "  mlnotes posterior --likelihood 4/20 --prior 20/100 --marginal 5/100",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var ratios [3]stats.Ratio
			for i, s := range []string{likelihood, prior, marginal} {
				r, err := stats.ParseRatio(s)
				if err != nil {
					return err
				}
				ratios[i] = r
			}
			p, err := stats.Posterior(ratios[0], ratios[1], ratios[2])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%.6g\n", p)
			return err
		},
	}
	cmd.Flags().StringVar(&likelihood, "likelihood", "", "P(B|A), as n/d or a probability")
	cmd.Flags().StringVar(&prior, "prior", "", "P(A)")
	cmd.Flags().StringVar(&marginal, "marginal", "", "P(B)")
	for _, name := range []string{"likelihood", "prior", "marginal"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func newEntropyCmd() *cobra.Command {
	var labels []string
	cmd := &cobra.Command{
		Use:   "entropy [p...]",
		Short: "Shannon entropy in bits of a class distribution",
		Example: `  mlnotes entropy 0.6 0.4
  mlnotes entropy --labels red,red,white`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				h   float64
				err error
			)
			if len(labels) > 0 {
				h, err = stats.EntropyOfLabels(labels)
			} else {
				var p []float64
				if p, err = parseFloats(args); err != nil {
					return err
				}
				h, err = stats.Entropy(p)
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%.6g\n", h)
			return err
		},
	}
	cmd.Flags().StringSliceVar(&labels, "labels", nil, "class labels, one per example")
	return cmd
}

func newActivateCmd() *cobra.Command {
	var (
		fn      string
		weights []float64
		bias    float64
	)
	cmd := &cobra.Command{
		Use:   "activate <input...>",
		Short: "Fire a single neuron with a step or sigmoid activation",
		Example: `  mlnotes activate --fn sigmoid 0.5
  mlnotes activate --weights 1,1 --bias -1.5 1 1`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			activation, err := neuron.ParseActivation(fn)
			if err != nil {
				return err
			}
			inputs, err := parseFloats(args)
			if err != nil {
				return err
			}
			w := weights
			if len(w) == 0 && len(inputs) == 1 {
				w = []float64{1}
			}
			out, err := neuron.Fire(w, inputs, bias, activation)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%.6g\n", out)
			return err
		},
	}
	cmd.Flags().StringVar(&fn, "fn", "step", "step or sigmoid")
	cmd.Flags().Float64SliceVar(&weights, "weights", nil, "one weight per input")
	cmd.Flags().Float64Var(&bias, "bias", 0, "added to the weighted sum")
	return cmd
}

func newRegressCmd() *cobra.Command {
	var (
		x, y    []float64
		predict float64
	)
	cmd := &cobra.Command{
		Use:   "regress",
		Short: "Fit y = a + b*x by least squares, or predict with the O-ring line",
		Example: `  mlnotes regress --x 1,2,3 --y 2,4,6
  mlnotes regress --predict 70`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			line := regression.ORing
			if len(x) > 0 || len(y) > 0 {
				fitted, err := regression.Fit(x, y)
				if err != nil {
					return err
				}
				r, err := regression.Correlation(x, y)
				if err != nil {
					return err
				}
				line = fitted
				fmt.Fprintf(out, "%s\nr = %.6g\n", line, r)
			} else if !cmd.Flags().Changed("predict") {
				fmt.Fprintln(out, line)
			}
			if cmd.Flags().Changed("predict") {
				fmt.Fprintf(out, "%.6g\n", line.Predict(predict))
			}
			return nil
		},
	}
	cmd.Flags().Float64SliceVar(&x, "x", nil, "explanatory values")
	cmd.Flags().Float64SliceVar(&y, "y", nil, "response values")
	cmd.Flags().Float64Var(&predict, "predict", 0, "x at which to evaluate the line")
	return cmd
}

func parseFloats(args []string) ([]float64, error) {
	values := make([]float64, len(args))
	for i, arg := range args {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", arg)
		}
		values[i] = v
	}
	return values, nil
}
