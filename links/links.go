// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

// Package links builds map-service URLs for points.
package links

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jcodagnone/coordsmap/spatial"
	"github.com/pkg/browser"
)

// Separator joins the Google Maps and OpenStreetMap links on a single line.
const Separator = "    |    "

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// GoogleURL returns a Google Maps search URL for the point.
func GoogleURL(p spatial.Point) string {
	return fmt.Sprintf(
		"https://www.google.com/maps/search/?api=1&query=%s,%s",
		formatCoord(p.Lat),
		formatCoord(p.Lng),
	)
}

// OSMURL returns an OpenStreetMap URL with a marker on the point.
func OSMURL(p spatial.Point) string {
	lat, lng := formatCoord(p.Lat), formatCoord(p.Lng)

	return fmt.Sprintf("https://www.openstreetmap.org/?mlat=%s&mlon=%s#map=16/%s/%s", lat, lng, lat, lng)
}

// Line returns the output line for a point: the Google Maps URL, followed by
// the OpenStreetMap one when withOSM is set.
func Line(p spatial.Point, withOSM bool) string {
	line := GoogleURL(p)
	if withOSM {
		line += Separator + OSMURL(p)
	}

	return line
}

// Opener opens URLs for the user.
type Opener interface {
	Open(url string) error
}

// BrowserOpener opens URLs in the system's default browser.
type BrowserOpener struct {
	// Output receives whatever the launcher prints. Defaults to stderr so it
	// never mixes with the generated links.
	Output io.Writer
}

// Open launches the default browser on url.
func (o *BrowserOpener) Open(url string) error {
	w := o.Output
	if w == nil {
		w = os.Stderr
	}

	browser.Stdout = w
	browser.Stderr = w

	if err := browser.OpenURL(url); err != nil {
		return fmt.Errorf("opening %s: %w", url, err)
	}

	return nil
}
