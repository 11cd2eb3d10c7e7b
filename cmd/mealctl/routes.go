package main

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"mealroute/internal/core/application/usecases/queries"
	"mealroute/internal/core/domain/model/kernel"
)

var routesCmd = &cobra.Command{
	Use:   "routes <date> <zone>",
	Short: "Preview a delivery route",
	Long: `Print the ordered stop list for one date and zone, using the frozen
snapshot when one was saved and the live plan otherwise.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := time.Parse(kernel.DateLayout, args[0])
		if err != nil {
			return fmt.Errorf("invalid date %q, want YYYY-MM-DD: %w", args[0], err)
		}

		ctx := context.Background()
		root, err := newRoot(ctx)
		if err != nil {
			return err
		}

		query, err := queries.NewGetRouteQuery(date, kernel.NewZone(args[1]))
		if err != nil {
			return err
		}

		route, err := root.CreateGetRouteQueryHandler().Handle(ctx, query)
		if err != nil {
			return err
		}

		source := "live plan"
		if route.FromSnapshot {
			source = "saved snapshot"
		}
		fmt.Printf("Route for %s / %s (%s)\n\n", route.Date.Format(kernel.DateLayout), route.Zone, source)

		if len(route.Stops) == 0 {
			fmt.Println("No routable stops.")
			return nil
		}

		for _, stop := range route.Stops {
			marker := color.YellowString("·")
			if stop.Completed {
				marker = color.GreenString("✓")
			}
			fmt.Printf("%2d. %s %s  %s", stop.Sequence, marker, stop.DisplayName, stop.Address)
			if stop.DishSummary != "" {
				fmt.Printf(" (%s, %d portions)", stop.DishSummary, stop.Portions)
			}
			fmt.Println()
		}

		if route.NavigationLink != "" {
			fmt.Printf("\nNavigation: %s\n", route.NavigationLink)
		}
		return nil
	},
}
