// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2" // register duckdb driver
	"github.com/jcodagnone/coordsmap/history"
	"github.com/jcodagnone/coordsmap/links"
	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Lista los enlaces registrados con --db",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if convertOpts.DbPath == "" {
			return errors.New("se requiere --db")
		}

		if _, err := os.Stat(convertOpts.DbPath); errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("database not found at %s", convertOpts.DbPath)
		}

		db, repo, err := openHistory(convertOpts.DbPath)
		if err != nil {
			return err
		}
		defer db.Close()

		entries, err := repo.List(historyLimit)
		if err != nil {
			return err
		}

		total, err := repo.Count()
		if err != nil {
			return err
		}

		printHistory(cmd.OutOrStdout(), entries, total)

		return nil
	},
}

func openHistory(path string) (*sql.DB, history.Repository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, nil, fmt.Errorf("creating db directory: %w", err)
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}

	repo := history.NewRepository(db)
	if err := repo.CreateSchema(); err != nil {
		return nil, nil, errors.Join(err, db.Close())
	}

	return db, repo, nil
}

func saveHistory(path string, batch []*history.Link) error {
	db, repo, err := openHistory(path)
	if err != nil {
		return err
	}
	defer db.Close()

	return repo.Save(batch)
}

// truncate shortens s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}

	return string(r[:n-1]) + "…"
}

func printHistory(w io.Writer, entries []*history.Link, total int) {
	a, b, c := strings.Repeat("─", 5), strings.Repeat("─", 19), strings.Repeat("─", 20)

	fmt.Fprintf(w, "╭─%5s─┬─%-19s─┬─%-20s─┬─\n", a, b, c)
	fmt.Fprintf(w, "│ %5s │ %-19s │ %-20s │ %s\n", "Id", "Fecha", "Origen", "Enlace")
	fmt.Fprintf(w, "├─%5s─┼─%-19s─┼─%-20s─┼─\n", a, b, c)

	for _, e := range entries {
		link := e.URL
		if e.AltURL != "" {
			link += links.Separator + e.AltURL
		}

		source := truncate(e.Source, 20)

		fmt.Fprintf(w, "│ %5d │ %-19s │ %-20s │ %s\n", e.ID, e.CreatedAt.Local().Format("2006-01-02 15:04:05"), source, link)
	}

	fmt.Fprintf(w, "╰─%5s─┴─%-19s─┴─%-20s─┴─\n", a, b, c)
	fmt.Fprintf(w, "%d de %d enlaces\n", len(entries), total)
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Cantidad máxima de enlaces a listar (0 para todos)")
}
