// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

// Package server exposes the coordinate extraction over a small HTTP API.
package server

import (
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jcodagnone/coordsmap/coords"
	"github.com/jcodagnone/coordsmap/history"
	"github.com/jcodagnone/coordsmap/links"
	"github.com/jcodagnone/coordsmap/spatial"
	"github.com/jcodagnone/coordsmap/utils/htmlutils"
)

// maxBodySize bounds the text accepted by /api/extract.
const maxBodySize = 1 << 20

// Result is a point together with its map links.
type Result struct {
	Point  spatial.Point `json:"point"`
	URL    string        `json:"url"`
	OSMURL string        `json:"osm_url"`
}

func newResult(p spatial.Point) Result {
	return Result{Point: p, URL: links.GoogleURL(p), OSMURL: links.OSMURL(p)}
}

type Server struct {
	repo history.Repository // optional
}

// NewServer creates a server. When repo is not nil every generated link is
// recorded in it.
func NewServer(repo history.Repository) *Server {
	return &Server{repo: repo}
}

// Router returns the gin engine with all the routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", s.healthz)
	r.GET("/api/link", s.link)
	r.POST("/api/extract", s.extract)

	return r
}

// Run serves the API on addr until it fails.
func (s *Server) Run(addr string) error {
	return s.Router().Run(addr)
}

func (s *Server) healthz(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) link(ctx *gin.Context) {
	lat, lon := ctx.Query("lat"), ctx.Query("lon")
	if lat == "" || lon == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "lat and lon query parameters are required"})

		return
	}

	p, ok := coords.ParsePair(lat, lon)
	if !ok {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "could not interpret lat/lon"})

		return
	}

	s.record(ctx, []spatial.Point{p})
	ctx.JSON(http.StatusOK, newResult(p))
}

func (s *Server) extract(ctx *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(ctx.Request.Body, maxBodySize+1))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "failed to read body"})

		return
	}

	if len(body) > maxBodySize {
		ctx.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "body too large"})

		return
	}

	text := string(body)
	if ctx.Query("html") != "" || strings.HasPrefix(ctx.ContentType(), "text/html") {
		text, err = htmlutils.Text(strings.NewReader(text), ctx.GetHeader("Content-Type"))
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

			return
		}
	}

	points := coords.ExtractText(text)
	s.record(ctx, points)

	results := make([]Result, 0, len(points))
	for _, p := range points {
		results = append(results, newResult(p))
	}

	ctx.JSON(http.StatusOK, gin.H{"points": results})
}

// History failures are logged and never fail the request.
func (s *Server) record(ctx *gin.Context, points []spatial.Point) {
	if s.repo == nil || len(points) == 0 {
		return
	}

	batch := make([]*history.Link, 0, len(points))
	for _, p := range points {
		batch = append(batch, history.NewLink(p, "api:"+ctx.FullPath(), true))
	}

	if err := s.repo.Save(batch); err != nil {
		log.Printf("Saving history failed - %s", err)
	}
}
