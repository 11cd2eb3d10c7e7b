// mealctl is the operator's command line for the meal delivery system:
// sync status inspection, pending-queue replay, the one-time remote
// migration, and route previews without opening the app.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("Error:"), err)
		os.Exit(1)
	}
}
