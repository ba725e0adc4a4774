// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package coords

import (
	"testing"

	"github.com/jcodagnone/coordsmap/spatial"
	"github.com/stretchr/testify/assert"
)

const dms = 25 + 24.0/60 + 36.0/3600

func TestParseValue(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
		ok       bool
	}{
		{"25.41", 25.41, true},
		{"  25.41  ", 25.41, true},
		{"-101.0199966430664", -101.0199966430664, true},
		{"+25.41", 25.41, true},
		{"25,41", 25.41, true},
		{"25", 25, true},
		{"25.", 25, true},
		{".5", 0.5, true},
		{"２５．４１", 25.41, true},
		{`25°24'36"N`, dms, true},
		{`25°24'36"S`, -dms, true},
		{`25°24'36"n`, dms, true},
		{`101°01'12"W`, -(101 + 1.0/60 + 12.0/3600), true},
		{`101°01'12"E`, 101 + 1.0/60 + 12.0/3600, true},
		{`-25°24'36"N`, dms, true},
		{`-25°24'36"`, -dms, true},
		{`25°24’36”S`, -dms, true},
		{`25º 24′ 36″ N`, dms, true},
		{"25 24 36", dms, true},
		{"25 30", 25.5, true},
		{"25 N", 25, true},
		{"25.5 S", -25.5, true},
		{"-0°30'", -0.5, true},
		{`25°24,5'N`, 25 + 24.5/60, true},
		{"", 0, false},
		{"   ", 0, false},
		{"abc", 0, false},
		{"N25", 0, false},
		{"inf", 0, false},
		{"NaN", 0, false},
		{"1e400", 0, false},
		{"-1e400", 0, false},
		{"25\u00a0N", 25, true},
		{"\u00a025.41\u00a0", 25.41, true},
		{"25 24 36 X", 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			v, ok := ParseValue(tc.input)
			assert.Equal(t, tc.ok, ok)
			assert.InDelta(t, tc.expected, v, 1e-9)
		})
	}
}

func TestParseValueRoundTrip(t *testing.T) {
	for _, v := range []float64{0, 25.41, -101.02, 90, -180, 25.40999984741211, 1e-7} {
		got, ok := ParseValue(formatFloat(v))
		assert.True(t, ok)
		assert.Equal(t, v, got) //nolint:testifylint // exact round-trip is the point
	}
}

func TestParseValueDecimalWins(t *testing.T) {
	// "25" could be degrees-only DMS too, but decimal takes precedence.
	v, ok := ParseValue("-25")
	assert.True(t, ok)
	assert.Equal(t, -25.0, v) //nolint:testifylint
}

func TestParsePair(t *testing.T) {
	tests := []struct {
		name     string
		lat, lng string
		expected spatial.Point
		ok       bool
	}{
		{"decimal", "25.40999984741211", "-101.0199966430664", spatial.Point{Lat: 25.40999984741211, Lng: -101.0199966430664}, true},
		{"dms", `25°24'36"N`, `101°01'12"W`, spatial.Point{Lat: dms, Lng: -(101 + 1.0/60 + 12.0/3600)}, true},
		{"limits", "-90", "180", spatial.Point{Lat: -90, Lng: 180}, true},
		{"lat out of range", "90.5", "10", spatial.Point{}, false},
		{"lng out of range", "10", "-180.01", spatial.Point{}, false},
		{"swapped", "-101.02", "25.41", spatial.Point{}, false},
		{"bad lat", "foo", "10", spatial.Point{}, false},
		{"bad lng", "10", "", spatial.Point{}, false},
		{"overflowing lat", "1e400", "5", spatial.Point{}, false},
		{"overflowing lng", "5", "-1e400", spatial.Point{}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, ok := ParsePair(tc.lat, tc.lng)
			assert.Equal(t, tc.ok, ok)
			assert.InDelta(t, tc.expected.Lat, p.Lat, 1e-9)
			assert.InDelta(t, tc.expected.Lng, p.Lng, 1e-9)
		})
	}
}
