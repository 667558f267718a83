// Command campusbites runs the campus food-ordering backend.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Imported so their init() funcs register migrations and seeders.
	_ "github.com/ashrith-07/campus-bites-sub000/database/migrations"
	_ "github.com/ashrith-07/campus-bites-sub000/database/seeders"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "campusbites",
	Short: "Campus Bites — campus food ordering backend",
	Long:  "Campus Bites serves the menu, order, and store APIs plus the realtime notification layer.",
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(migrateRollbackCmd)
	rootCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(seedCmd)
}
