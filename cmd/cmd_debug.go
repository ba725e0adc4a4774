// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jcodagnone/coordsmap/coords"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

var debugCmd = &cobra.Command{
	Use:   "debug",
	Short: "Dev tools",
}

var debugValueCmd = &cobra.Command{
	Use:   "value",
	Short: "Interpreta un valor de coordenada por línea",
	Long: `Lee un valor por línea, e imprime en stdout el valor seguido de su
interpretación en grados decimales.

$ echo "25°24'36\"S" | coordsmap debug value
25°24'36"S		-25.41
	`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if isTerminal(os.Stdin) {
			fmt.Fprintln(os.Stderr, "Ingrese valores a analizar, uno por línea…")
		}

		return debugValues(cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

var debugCellsSep string

var debugCellsCmd = &cobra.Command{
	Use:   "cells",
	Short: "Calcula las celdas H3 (resoluciones 1 a 8) de cada coordenada",
	Long: `Lee una coordenada (o texto con coordenadas) por línea, e imprime en stdout
cada punto encontrado seguido de sus celdas H3.

$ echo "-34.8822366,-56.1529602" | coordsmap debug cells
-34.8822366,-56.1529602		81c2bffffffffff 82c2b7fffffffff …
	`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if isTerminal(os.Stdin) {
			fmt.Fprintln(os.Stderr, "Ingrese coordenadas a analizar, una por línea…")
		}

		return debugCells(cmd.InOrStdin(), cmd.OutOrStdout(), debugCellsSep)
	},
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func debugValues(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		token := scanner.Text()
		if strings.TrimSpace(token) == "" {
			continue
		}

		if v, ok := coords.ParseValue(token); ok {
			fmt.Fprintf(w, "%s\t\t%s\n", token, formatValue(v))
		} else {
			fmt.Fprintf(w, "%s\t%q\n", token, "no es una coordenada")
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	return nil
}

func debugCells(r io.Reader, w io.Writer, sep string) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		for _, p := range coords.ParseLine(scanner.Text(), sep) {
			cells, err := p.Cells(1, 8)
			if err != nil {
				return err
			}

			s := make([]string, len(cells))
			for i, c := range cells {
				s[i] = c.String()
			}

			fmt.Fprintf(w, "%s,%s\t\t%s\n", formatValue(p.Lat), formatValue(p.Lng), strings.Join(s, " "))
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	return nil
}

func init() {
	rootCmd.AddCommand(debugCmd)
	debugCmd.AddCommand(debugValueCmd)
	debugCmd.AddCommand(debugCellsCmd)
	debugCellsCmd.Flags().StringVar(&debugCellsSep, "sep", ",", "Separador de columnas")
}
