// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

// Package coords turns coordinate text into validated points. It understands
// decimal degrees, degrees-minutes-seconds with an optional hemisphere letter,
// labeled values ("Latitude: 25.41") and loose "lat, lon" pairs in free text.
package coords

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/jcodagnone/coordsmap/spatial"
)

var (
	decimalRegex = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?$`)

	// degrees, then optional minutes and seconds separated by anything that
	// isn't a digit, then an optional hemisphere.
	dmsRegex = regexp.MustCompile(
		`(?i)^\s*(-?\d+(?:\.\d+)?)(?:\D+(\d+(?:\.\d+)?))?(?:\D+(\d+(?:\.\d+)?))?\s*([NSEW])?\s*$`,
	)

	dmsSymbols = strings.NewReplacer(
		"°", " ",
		"º", " ",
		"'", " ",
		"’", " ",
		"′", " ",
		`"`, " ",
		"”", " ",
		"″", " ",
	)
)

// ParseValue decodes a single coordinate component, either decimal ("25.41",
// "25,41") or DMS ("25°24'36\"N"). It returns false when the token has no
// numeric interpretation.
func ParseValue(token string) (float64, bool) {
	s := strings.ReplaceAll(strings.TrimSpace(foldWidth(token)), ",", ".")

	// anything shaped like a decimal is never read as DMS, even when it
	// overflows ("1e400" isn't 1° 400').
	if decimalRegex.MatchString(s) {
		return parseDecimal(s)
	}

	m := dmsRegex.FindStringSubmatch(dmsSymbols.Replace(s))
	if m == nil {
		return 0, false
	}

	deg, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}

	var minutes, seconds float64
	if m[2] != "" {
		if minutes, err = strconv.ParseFloat(m[2], 64); err != nil {
			return 0, false
		}
	}

	if m[3] != "" {
		if seconds, err = strconv.ParseFloat(m[3], 64); err != nil {
			return 0, false
		}
	}

	return dmsToDecimal(deg, strings.HasPrefix(m[1], "-"), minutes, seconds, m[4]), true
}

func parseDecimal(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) {
		return 0, false
	}

	return v, true
}

// The hemisphere, when present, wins over the sign of the degrees.
func dmsToDecimal(deg float64, negative bool, minutes, seconds float64, hemisphere string) float64 {
	v := math.Abs(deg) + minutes/60 + seconds/3600
	if negative {
		v = -v
	}

	switch strings.ToUpper(hemisphere) {
	case "S", "W":
		v = -math.Abs(v)
	case "N", "E":
		v = math.Abs(v)
	}

	return v
}

// ParsePair decodes a latitude and a longitude token. Pairs where either token
// can't be decoded, or that fall outside the valid ranges, are rejected.
func ParsePair(lat, lng string) (spatial.Point, bool) {
	latV, ok := ParseValue(lat)
	if !ok {
		return spatial.Point{}, false
	}

	lngV, ok := ParseValue(lng)
	if !ok {
		return spatial.Point{}, false
	}

	p := spatial.Point{Lat: latV, Lng: lngV}
	if !p.InRange() {
		return spatial.Point{}, false
	}

	return p, true
}
