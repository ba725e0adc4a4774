// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"
)

type logWriter struct {
	writer io.Writer
}

func (w *logWriter) Write(bytes []byte) (int, error) {
	return fmt.Fprintf(w.writer, "%s %s", time.Now().Format("2006-01-02 15:04:05"), string(bytes))
}

func init() {
	log.SetFlags(0)
	log.SetOutput(&logWriter{writer: os.Stderr})
}

var rootCmd = &cobra.Command{
	Use:   "coordsmap [lat lon]",
	Short: "convierte coordenadas a enlaces de Google Maps/OpenStreetMap",
	Long: `
coordsmap convierte coordenadas en grados decimales, DMS (° ' ") con hemisferio
N/S/E/W, texto crudo o archivos CSV en enlaces de Google Maps y OpenStreetMap.

Ejemplos:
  coordsmap 25.40999984741211 -101.0199966430664
  coordsmap "25°24'36\"N" "101°01'12\"W"
  printf 'Latitude: 25.4099998474\nLongitude: -101.019996643\n' | coordsmap --extract
  coordsmap --file puntos.csv --sep "," --open
`,
	Args:         cobra.MaximumNArgs(2),
	SilenceUsage: true,
	PreRun: func(_ *cobra.Command, _ []string) {
		if convertOpts.HTML {
			convertOpts.Extract = true
		}
	},
	RunE: runConvert,
}

var Version = "dev"

func Execute(version string) {
	Version = version
	rootCmd.Version = version
	rootCmd.SetArgs(rewriteNegativeArgs(rootCmd, os.Args[1:]))

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
