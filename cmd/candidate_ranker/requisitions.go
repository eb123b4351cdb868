package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/candidate-ranker/internal/db"
)

var requisitionsCmd = &cobra.Command{
	Use:   "requisitions",
	Short: "Manage requisitions stored in the database",
}

var requisitionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored requisitions",
	RunE:  runRequisitionsList,
}

var requisitionsDeleteCmd = &cobra.Command{
	Use:   "delete <requisition-id>",
	Short: "Delete a requisition with its candidates and ranking runs",
	Args:  cobra.ExactArgs(1),
	RunE:  runRequisitionsDelete,
}

var requisitionsDatabaseURL string

func init() {
	requisitionsCmd.PersistentFlags().StringVar(&requisitionsDatabaseURL, "db-url", "", "PostgreSQL connection URL (defaults to DATABASE_URL env var)")
	requisitionsCmd.AddCommand(requisitionsListCmd, requisitionsDeleteCmd)
	rootCmd.AddCommand(requisitionsCmd)
}

func runRequisitionsList(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	url, err := databaseURL(requisitionsDatabaseURL)
	if err != nil {
		return err
	}
	database, err := db.Connect(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	reqs, err := database.ListRequisitions(ctx)
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), "", reqs, "")
}

func runRequisitionsDelete(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	id, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid requisition id %q: %w", args[0], err)
	}

	url, err := databaseURL(requisitionsDatabaseURL)
	if err != nil {
		return err
	}
	database, err := db.Connect(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	if err := database.DeleteRequisition(ctx, id); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted requisition %s\n", id)
	return nil
}
