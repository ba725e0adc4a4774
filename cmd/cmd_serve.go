// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"log"

	"github.com/jcodagnone/coordsmap/history"
	"github.com/jcodagnone/coordsmap/server"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Expone la conversión como API HTTP (solo local por defecto)",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		var repo history.Repository

		if convertOpts.DbPath != "" {
			db, r, err := openHistory(convertOpts.DbPath)
			if err != nil {
				return err
			}
			defer db.Close()

			repo = r
		}

		log.Printf("Listening on http://%s", serveAddr)

		if err := server.NewServer(repo).Run(serveAddr); err != nil {
			return fmt.Errorf("serving: %w", err)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "localhost:8080", "Dirección donde escuchar")
}
