// Copyright 2025 The ChapaUY Authors
//
// SPDX-License-Identifier: Apache-2.0
package spatial

import (
	"fmt"

	"github.com/uber/h3-go/v4"
)

// Valid ranges for geographic coordinates, in degrees.
const (
	MaxLat = 90.0
	MaxLng = 180.0
)

// Point represents a geographical point with latitude and longitude.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// String returns a string representation of the Point.
func (p Point) String() string {
	return fmt.Sprintf("POINT(%f %f)", p.Lng, p.Lat)
}

// InRange reports whether the latitude is within [-90, 90] and the longitude
// within [-180, 180].
func (p Point) InRange() bool {
	return p.Lat >= -MaxLat && p.Lat <= MaxLat && p.Lng >= -MaxLng && p.Lng <= MaxLng
}

// Cells returns the H3 cells containing the point, one per resolution from
// minRes to maxRes (inclusive).
func (p Point) Cells(minRes, maxRes int) ([]h3.Cell, error) {
	if minRes < 0 || maxRes > h3.MaxResolution || minRes > maxRes {
		return nil, fmt.Errorf("invalid h3 resolution range [%d, %d]", minRes, maxRes)
	}

	latLng := h3.NewLatLng(p.Lat, p.Lng)
	cells := make([]h3.Cell, 0, maxRes-minRes+1)

	for res := minRes; res <= maxRes; res++ {
		cell, err := h3.LatLngToCell(latLng, res)
		if err != nil {
			return nil, fmt.Errorf("error converting to h3 cell at res %d: %w", res, err)
		}

		cells = append(cells, cell)
	}

	return cells, nil
}
