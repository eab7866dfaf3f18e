package cmd

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/viant/mlnotes/dataset"
	"github.com/viant/mlnotes/knn"
)

type classifyOptions struct {
	source    sourceFlags
	normalize normalizeFlags
	query     string
	k         int
	index     string
	explain   bool
}

func newClassifyCmd(a *app) *cobra.Command {
	o := &classifyOptions{}
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Predict the label of a query by majority vote of its k nearest neighbors",
		Example: `  mlnotes classify --query 6,4 --k 3
  mlnotes classify --data foods.csv --query 6,4 --normalize minmax --explain`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runClassify(cmd, o)
		},
	}
	o.source.register(cmd)
	o.normalize.register(cmd)
	cmd.Flags().StringVarP(&o.query, "query", "q", "", "comma separated feature values")
	cmd.Flags().IntVarP(&o.k, "k", "k", 1, "number of neighbors")
	cmd.Flags().StringVar(&o.index, "index", "brute", "brute or cover")
	cmd.Flags().BoolVar(&o.explain, "explain", false, "print the ranked neighbors and votes")
	_ = cmd.MarkFlagRequired("query")
	return cmd
}

func (a *app) runClassify(cmd *cobra.Command, o *classifyOptions) error {
	if !cmd.Flags().Changed("k") {
		o.k = a.cfg.K
	}
	if !cmd.Flags().Changed("index") {
		o.index = a.cfg.Index
	}
	set, err := a.loadTraining(cmd.Context(), cmd, o.source)
	if err != nil {
		return err
	}
	query, err := dataset.ParseQuery(o.query, set.Schema().Len())
	if err != nil {
		return err
	}
	strategy, names, normOpts, err := o.normalize.resolve(cmd, a.cfg)
	if err != nil {
		return err
	}
	idx, err := newIndex(o.index)
	if err != nil {
		return err
	}
	classifier, err := knn.New(set, knn.WithIndex(idx), knn.WithNormalization(strategy, names, normOpts...))
	if err != nil {
		return err
	}
	if scales := classifier.Scales(); scales != nil {
		a.log.Debugw("scales fitted", "strategy", scales.Strategy, "columns", len(scales.Scales), "skipped", scales.Skipped)
	}
	a.log.Debugw("classifying", "query", query, "k", o.k, "index", o.index)

	result, err := classifier.Classify(query, o.k)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if o.explain {
		return explain(out, result)
	}
	_, err = fmt.Fprintln(out, result.Label)
	return err
}

func explain(w io.Writer, result knn.Result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tNAME\tLABEL\tDISTANCE")
	for i, n := range result.Neighbors {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.4f\n", i+1, n.Example.Name, n.Example.Label, n.Distance)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if len(result.Votes) > 0 {
		labels := make([]string, 0, len(result.Votes))
		for label := range result.Votes {
			labels = append(labels, label)
		}
		sort.Strings(labels)
		fmt.Fprintln(w)
		for _, label := range labels {
			fmt.Fprintf(w, "votes %s: %d\n", label, result.Votes[label])
		}
	}
	_, err := fmt.Fprintf(w, "label: %s\n", result.Label)
	return err
}
