// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"strings"

	"github.com/jcodagnone/coordsmap/coords"
	"github.com/jcodagnone/coordsmap/history"
	"github.com/jcodagnone/coordsmap/links"
	"github.com/jcodagnone/coordsmap/spatial"
	"github.com/jcodagnone/coordsmap/utils/htmlutils"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var (
	errInvalidPair   = errors.New("no pude interpretar lat/lon proporcionadas")
	errNoCoordinates = errors.New("no se encontraron coordenadas para procesar")
)

type convertOptions struct {
	File    string
	Sep     string
	Extract bool
	HTML    bool
	Open    bool
	OSM     bool
	Output  string
	DbPath  string
}

var convertOpts = &convertOptions{}

// found is a point and where it came from.
type found struct {
	point  spatial.Point
	source string
}

type converter struct {
	opts        *convertOptions
	stdin       io.Reader
	stdout      io.Writer
	interactive bool // stdin is a terminal, so it's never read
	progress    io.Writer
	opener      links.Opener
}

func runConvert(cmd *cobra.Command, args []string) error {
	c := &converter{
		opts:        convertOpts,
		stdin:       cmd.InOrStdin(),
		stdout:      cmd.OutOrStdout(),
		interactive: isTerminal(os.Stdin),
		opener:      &links.BrowserOpener{},
	}

	if isatty.IsTerminal(os.Stderr.Fd()) {
		c.progress = os.Stderr
	}

	points, err := c.collect(args)
	if err != nil {
		return err
	}

	if len(points) == 0 {
		_ = cmd.Usage()

		return errNoCoordinates
	}

	return c.emit(points)
}

// collect gathers the points from the arguments, the input file and stdin,
// in that order. stdin is only read in extract mode when nothing else was
// found.
func (c *converter) collect(args []string) ([]found, error) {
	var result []found

	switch len(args) {
	case 2:
		p, ok := coords.ParsePair(args[0], args[1])
		if !ok {
			return nil, fmt.Errorf("%w: %q %q", errInvalidPair, args[0], args[1])
		}

		result = append(result, found{p, "args"})
	case 1:
		points := coords.ExtractText(args[0])
		if len(points) == 0 {
			return nil, fmt.Errorf("%w: %q", errInvalidPair, args[0])
		}

		result = appendFound(result, points, "args")
	}

	if c.opts.File != "" {
		points, err := c.readFile(c.opts.File)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("archivo no encontrado: %s", c.opts.File)
		} else if err != nil {
			return nil, fmt.Errorf("leyendo %s: %w", c.opts.File, err)
		}

		result = appendFound(result, points, "file:"+c.opts.File)
	}

	if len(result) == 0 && c.opts.Extract && !c.interactive && c.stdin != nil {
		points, err := c.extract(c.stdin)
		if err != nil {
			return nil, fmt.Errorf("leyendo stdin: %w", err)
		}

		result = appendFound(result, points, "stdin")
	}

	return result, nil
}

func appendFound(result []found, points []spatial.Point, source string) []found {
	for _, p := range points {
		result = append(result, found{p, source})
	}

	return result
}

func (c *converter) readFile(path string) ([]spatial.Point, error) {
	f, err := os.Open(path) // #nosec G304 - path is provided by the user
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f

	if c.progress != nil {
		if info, err := f.Stat(); err == nil {
			bar := progressbar.NewOptions64(info.Size(),
				progressbar.OptionSetDescription("Leyendo "+path),
				progressbar.OptionSetWriter(c.progress),
				progressbar.OptionShowBytes(true),
				progressbar.OptionClearOnFinish(),
			)
			defer func() { _ = bar.Finish() }()

			r = io.TeeReader(f, bar)
		}
	}

	if c.opts.Extract {
		return c.extract(r)
	}

	return coords.ReadPairs(r, c.opts.Sep)
}

func (c *converter) extract(r io.Reader) ([]spatial.Point, error) {
	if c.opts.HTML {
		text, err := htmlutils.Text(r, "")
		if err != nil {
			return nil, err
		}

		return coords.ExtractText(text), nil
	}

	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	return coords.ExtractText(string(b)), nil
}

// emit prints one line per point, and then opens, writes and records them as
// requested. Browser failures are only reported.
func (c *converter) emit(points []found) error {
	lines := make([]string, 0, len(points))
	batch := make([]*history.Link, 0, len(points))

	for _, f := range points {
		line := links.Line(f.point, c.opts.OSM)
		lines = append(lines, line)
		batch = append(batch, history.NewLink(f.point, f.source, c.opts.OSM))

		fmt.Fprintln(c.stdout, line)

		if c.opts.Open && c.opener != nil {
			if err := c.opener.Open(links.GoogleURL(f.point)); err != nil {
				log.Printf("[!] No se pudo abrir el navegador: %v", err)
			}
		}
	}

	if c.opts.Output != "" {
		content := strings.Join(lines, "\n") + "\n"
		if err := os.WriteFile(c.opts.Output, []byte(content), 0o644); err != nil { // #nosec G306
			return fmt.Errorf("no pude escribir en %s: %w", c.opts.Output, err)
		}
	}

	if c.opts.DbPath != "" {
		if err := saveHistory(c.opts.DbPath, batch); err != nil {
			return fmt.Errorf("guardando historial: %w", err)
		}
	}

	return nil
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&convertOpts.File, "file", "f", "", "Archivo con lat,lon por línea (o texto crudo)")
	flags.StringVar(&convertOpts.Sep, "sep", ",", "Separador de columnas")
	flags.BoolVar(&convertOpts.Extract, "extract", false, "Extraer coordenadas desde texto crudo (stdin o --file)")
	flags.BoolVar(&convertOpts.HTML, "html", false, "La entrada es HTML; se extrae su texto visible (implica --extract)")
	flags.BoolVar(&convertOpts.Open, "open", false, "Abrir enlaces en el navegador")
	flags.BoolVar(&convertOpts.OSM, "osm", false, "Además del enlace de Google Maps, genera enlace OSM")
	flags.StringVarP(&convertOpts.Output, "output", "o", "", "Guardar enlaces en un archivo")

	rootCmd.PersistentFlags().StringVar(
		&convertOpts.DbPath,
		"db",
		"",
		"Base de datos DuckDB donde registrar el historial de enlaces",
	)
}
