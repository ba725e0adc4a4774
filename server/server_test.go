// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jcodagnone/coordsmap/history"
	"github.com/jcodagnone/coordsmap/spatial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of history.Repository for testing.
type MockRepository struct {
	saved []*history.Link
	err   error
}

func (m *MockRepository) CreateSchema() error { return nil }
func (m *MockRepository) Save(links []*history.Link) error {
	m.saved = append(m.saved, links...)

	return m.err
}
func (m *MockRepository) List(_ int) ([]*history.Link, error) { return m.saved, nil }
func (m *MockRepository) Count() (int, error)                 { return len(m.saved), nil }

func setupServerTest(repo history.Repository) *gin.Engine {
	gin.SetMode(gin.TestMode)

	return NewServer(repo).Router()
}

func TestHealthz(t *testing.T) {
	router := setupServerTest(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/healthz", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestLinkAPI(t *testing.T) {
	repo := &MockRepository{}
	router := setupServerTest(repo)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, `/api/link?lat=25%C2%B024'36%22N&lon=-101.02`, nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var result Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.InDelta(t, 25.41, result.Point.Lat, 1e-9)
	assert.InDelta(t, -101.02, result.Point.Lng, 1e-9)
	assert.Contains(t, result.URL, "https://www.google.com/maps/search/?api=1&query=25.4")
	assert.Contains(t, result.OSMURL, "https://www.openstreetmap.org/?mlat=25.4")

	require.Len(t, repo.saved, 1)
	assert.Equal(t, "api:/api/link", repo.saved[0].Source)
}

func TestLinkAPIErrors(t *testing.T) {
	router := setupServerTest(nil)

	for _, query := range []string{"", "?lat=10", "?lat=100&lon=10", "?lat=foo&lon=bar"} {
		t.Run(query, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodGet, "/api/link"+query, nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "error")
		})
	}
}

func TestExtractAPI(t *testing.T) {
	repo := &MockRepository{}
	router := setupServerTest(repo)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/extract", strings.NewReader("25.41, -101.02 and 10.0,20.0"))
	req.Header.Set("Content-Type", "text/plain")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Points []Result `json:"points"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Points, 2)
	assert.Equal(t, spatial.Point{Lat: 25.41, Lng: -101.02}, response.Points[0].Point)
	assert.Equal(t, spatial.Point{Lat: 10, Lng: 20}, response.Points[1].Point)
	assert.Len(t, repo.saved, 2)
}

func TestExtractAPIHTML(t *testing.T) {
	router := setupServerTest(nil)

	w := httptest.NewRecorder()
	body := `<ul><li>Latitude: 25.41</li><li>Longitude: -101.02</li></ul><script>var x = "1, 2";</script>`
	req, _ := http.NewRequest(http.MethodPost, "/api/extract", strings.NewReader(body))
	req.Header.Set("Content-Type", "text/html; charset=utf-8")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Points []Result `json:"points"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Points, 1)
	assert.Equal(t, spatial.Point{Lat: 25.41, Lng: -101.02}, response.Points[0].Point)
}

func TestExtractAPIEmpty(t *testing.T) {
	router := setupServerTest(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/extract", strings.NewReader("   "))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"points":[]}`, w.Body.String())
}

func TestExtractAPIHistoryFailureIsNotFatal(t *testing.T) {
	repo := &MockRepository{err: errors.New("db down")}
	router := setupServerTest(repo)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/extract", strings.NewReader("1,2"))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestExtractAPITooLarge(t *testing.T) {
	router := setupServerTest(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/extract", strings.NewReader(strings.Repeat("a", maxBodySize+1)))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}
