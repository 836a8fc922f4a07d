package main

import (
	"fmt"
	"text/tabwriter"

	"stackpulse/internal/services"

	"github.com/spf13/cobra"
)

var tagsLimit int

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List tags by question count",
	RunE:  runTags,
}

func init() {
	tagsCmd.Flags().IntVar(&tagsLimit, "limit", services.DefaultTagLimit, "Number of tags to show (1-200)")
	rootCmd.AddCommand(tagsCmd)
}

func runTags(cmd *cobra.Command, args []string) error {
	limit, err := services.ResolveTagLimit(&tagsLimit)
	if err != nil {
		return err
	}

	_, conn, err := openCorpus()
	if err != nil {
		return err
	}

	tags, err := services.NewCorpusService(conn).ListTags(cmd.Context(), limit)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TAG\tQUESTIONS")
	for _, t := range tags {
		fmt.Fprintf(w, "%s\t%d\n", t.Name, t.QuestionCount)
	}
	return w.Flush()
}
