// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package coords

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/jcodagnone/coordsmap/spatial"
)

const (
	latLabels = `lat|latitude|latitud`
	lngLabels = `lon|long|longitud|longitude`
	number    = `[-+]?\d+(?:\.\d+)?`
)

var (
	labeledRegex  = regexp.MustCompile(`(?i)(` + latLabels + `|` + lngLabels + `)\s*[:=]\s*(` + number + `)`)
	latLabelRegex = regexp.MustCompile(`(?i)^(?:` + latLabels + `)$`)
	pairRegex     = regexp.MustCompile(`(` + number + `)\s*[,;\s]\s*(` + number + `)`)
)

// ExtractText finds every coordinate pair in a block of free text.
//
// Labeled values come first: the last "lat:" and the last "lon:" seen form a
// single point, accepted as is. Then loose "lat, lon" pairs follow in order of
// appearance, skipping those out of range or already found.
func ExtractText(text string) []spatial.Point {
	text = foldText(text)

	var results []spatial.Point

	if p, ok := extractLabeled(text); ok {
		results = append(results, p)
	}

	for _, m := range pairRegex.FindAllStringSubmatch(text, -1) {
		lat, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}

		lng, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			continue
		}

		p := spatial.Point{Lat: lat, Lng: lng}
		if !p.InRange() || contains(results, p) {
			continue
		}

		results = append(results, p)
	}

	return results
}

// Later labels of the same kind overwrite earlier ones.
func extractLabeled(text string) (spatial.Point, bool) {
	var (
		p              spatial.Point
		hasLat, hasLng bool
	)

	for _, m := range labeledRegex.FindAllStringSubmatch(text, -1) {
		v, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			continue
		}

		if latLabelRegex.MatchString(m[1]) {
			p.Lat, hasLat = v, true
		} else {
			p.Lng, hasLng = v, true
		}
	}

	return p, hasLat && hasLng
}

func contains(points []spatial.Point, p spatial.Point) bool {
	for _, q := range points {
		if q == p {
			return true
		}
	}

	return false
}

// ParseLine reads the points in a single line. The line is split on sep, or on
// whitespace when sep doesn't occur in it, and the first two fields are parsed
// as a pair. When that doesn't yield a point the whole line is treated as free
// text.
func ParseLine(line, sep string) []spatial.Point {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	var fields []string
	if sep != "" && strings.Contains(line, sep) {
		fields = strings.Split(line, sep)
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
	} else {
		fields = strings.Fields(line)
	}

	if len(fields) >= 2 {
		if p, ok := ParsePair(fields[0], fields[1]); ok {
			return []spatial.Point{p}
		}
	}

	return ExtractText(line)
}

// ReadPairs reads r line by line, collecting the points found by ParseLine.
// Blank lines are skipped.
func ReadPairs(r io.Reader, sep string) ([]spatial.Point, error) {
	const maxLine = 1024 * 1024

	var points []spatial.Point

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLine)

	for scanner.Scan() {
		points = append(points, ParseLine(scanner.Text(), sep)...)
	}

	if err := scanner.Err(); err != nil {
		return points, fmt.Errorf("reading lines: %w", err)
	}

	return points, nil
}
