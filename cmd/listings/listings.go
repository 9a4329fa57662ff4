// Package listings implements the commands that inspect the listing store.
package listings

import (
	"context"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/matwasilewski/data-vortex/cmd/common"
	"github.com/matwasilewski/data-vortex/internal/database"
)

// Command returns the listings command with its subcommands.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listings",
		Short: "Inspect stored listings",
	}

	cmd.AddCommand(listCommand())
	cmd.AddCommand(countCommand())
	cmd.AddCommand(getCommand())

	return cmd
}

func listCommand() *cobra.Command {
	var (
		limit  int
		offset int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored listings, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd.Context(), limit, offset)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of listings to show")
	cmd.Flags().IntVar(&offset, "offset", 0, "number of listings to skip")

	return cmd
}

func countCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Print the number of stored listings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCount(cmd.Context())
		},
	}
}

func getCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <property-id>",
		Short: "Show one listing in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd.Context(), args[0])
		},
	}
}

func runList(ctx context.Context, limit, offset int) error {
	deps, err := common.NewCommandDeps()
	if err != nil {
		return err
	}

	repo, db, err := deps.OpenRepository()
	if err != nil {
		return err
	}
	defer db.Close()

	rows, err := repo.List(ctx, limit, offset)
	if err != nil {
		return fmt.Errorf("failed to list listings: %w", err)
	}

	if len(rows) == 0 {
		fmt.Println("No listings stored.")
		return nil
	}

	renderTable(rows)
	return nil
}

func runCount(ctx context.Context) error {
	deps, err := common.NewCommandDeps()
	if err != nil {
		return err
	}

	repo, db, err := deps.OpenRepository()
	if err != nil {
		return err
	}
	defer db.Close()

	count, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count listings: %w", err)
	}

	fmt.Printf("%d listings stored\n", count)
	return nil
}

func runGet(ctx context.Context, propertyID string) error {
	deps, err := common.NewCommandDeps()
	if err != nil {
		return err
	}

	repo, db, err := deps.OpenRepository()
	if err != nil {
		return err
	}
	defer db.Close()

	row, err := repo.GetByID(ctx, propertyID)
	if err != nil {
		return fmt.Errorf("failed to get listing %s: %w", propertyID, err)
	}

	fmt.Printf("Property ID:  %s\n", row.PropertyID)
	fmt.Printf("Address:      %s\n", row.Address)
	fmt.Printf("Postcode:     %s\n", row.Postcode)
	fmt.Printf("Price:        %d %s %s\n", row.PriceAmount, row.PriceCurrency, row.PricePer)
	fmt.Printf("Added:        %s\n", row.AddedDate.Format("2006-01-02"))
	fmt.Printf("First seen:   %s\n", row.CreatedDate.Format("2006-01-02 15:04:05"))
	fmt.Printf("Image:        %s\n", row.ImageURL)
	fmt.Printf("Description:  %s\n", row.Description)
	return nil
}

func renderTable(rows []database.ListingRow) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{"ID", "Postcode", "Price", "Added", "Address"})

	for _, row := range rows {
		t.AppendRow(table.Row{
			row.PropertyID,
			row.Postcode,
			fmt.Sprintf("%d %s %s", row.PriceAmount, row.PriceCurrency, row.PricePer),
			row.AddedDate.Format("2006-01-02"),
			truncate(row.Address, 48),
		})
	}

	t.Render()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
