package main

import (
	"github.com/spf13/cobra"

	"github.com/ashrith-07/campus-bites-sub000/internal/server"
)

// campusbites serve
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP (and optional gRPC) server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return server.Start()
	},
}
