package main

import (
	"errors"
	"fmt"
	"strconv"

	"stackpulse/internal/services"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete-question <id>",
	Short: "Delete a question with its answers and comments",
	Long: `Delete a question together with its answers, question comments and answer
comments. Tags are kept even when no other question references them.`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid question id %q", args[0])
	}

	_, conn, err := openCorpus()
	if err != nil {
		return err
	}

	err = services.NewCorpusService(conn).DeleteQuestion(cmd.Context(), id)
	if errors.Is(err, services.ErrNotFound) {
		return fmt.Errorf("question %d not found", id)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "deleted question %d\n", id)
	return nil
}
