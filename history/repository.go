// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

// Package history keeps a record of the links generated by coordsmap.
package history

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jcodagnone/coordsmap/links"
	"github.com/jcodagnone/coordsmap/spatial"
)

// cellRes is the H3 resolution stored alongside each link (~0.7 km² cells).
const cellRes = 8

// Link is a generated map link.
type Link struct {
	ID        int64         `json:"id"`
	Point     spatial.Point `json:"point"`
	URL       string        `json:"url"`
	AltURL    string        `json:"alt_url,omitempty"`
	Source    string        `json:"source"`
	H3Cell    int64         `json:"h3_cell"`
	CreatedAt time.Time     `json:"created_at"`
}

// NewLink builds the Link for a point found in source.
func NewLink(p spatial.Point, source string, withOSM bool) *Link {
	l := &Link{
		Point:  p,
		URL:    links.GoogleURL(p),
		Source: source,
	}

	if withOSM {
		l.AltURL = links.OSMURL(p)
	}

	return l
}

// Repository handles persistence of generated links.
type Repository interface {
	// CreateSchema creates the links table
	CreateSchema() error

	// Save stores the links, filling in their ID and creation time
	Save(batch []*Link) error

	// List returns the most recent links first
	List(limit int) ([]*Link, error)

	// Count returns the total number of links
	Count() (int, error)
}

type sqlLinkRepository struct {
	db *sql.DB
}

// NewRepository creates a new link repository.
func NewRepository(db *sql.DB) Repository {
	return &sqlLinkRepository{db: db}
}

func (r *sqlLinkRepository) CreateSchema() error {
	_, err := r.db.Exec(`
		CREATE SEQUENCE IF NOT EXISTS links_seq START 1;

		CREATE TABLE IF NOT EXISTS links (
			id BIGINT PRIMARY KEY DEFAULT nextval('links_seq'),
			lat DOUBLE NOT NULL,
			lng DOUBLE NOT NULL,
			url VARCHAR NOT NULL,
			alt_url VARCHAR NOT NULL DEFAULT '',
			source VARCHAR NOT NULL,
			h3_res8 BIGINT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating links schema: %w", err)
	}

	return nil
}

func (r *sqlLinkRepository) Save(batch []*Link) (err error) {
	if len(batch) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			err = errors.Join(err, tx.Rollback())
		}
	}()

	stmt, err := tx.Prepare(`
		INSERT INTO links(lat, lng, url, alt_url, source, h3_res8, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Truncate(time.Microsecond)

	for _, link := range batch {
		cells, err := link.Point.Cells(cellRes, cellRes)
		if err != nil {
			return err
		}

		link.H3Cell = int64(cells[0])
		link.CreatedAt = now

		if err := stmt.QueryRow(
			link.Point.Lat,
			link.Point.Lng,
			link.URL,
			link.AltURL,
			link.Source,
			link.H3Cell,
			link.CreatedAt,
		).Scan(&link.ID); err != nil {
			return fmt.Errorf("inserting link %s: %w", link.URL, err)
		}
	}

	return tx.Commit()
}

func (r *sqlLinkRepository) List(limit int) ([]*Link, error) {
	query := `
		SELECT id, lat, lng, url, alt_url, source, h3_res8, created_at
		FROM links
		ORDER BY created_at DESC, id DESC
	`

	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"

		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing links: %w", err)
	}
	defer rows.Close()

	var result []*Link

	for rows.Next() {
		var (
			l    Link
			cell sql.NullInt64
		)

		if err := rows.Scan(
			&l.ID,
			&l.Point.Lat,
			&l.Point.Lng,
			&l.URL,
			&l.AltURL,
			&l.Source,
			&cell,
			&l.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning link: %w", err)
		}

		l.H3Cell = cell.Int64
		result = append(result, &l)
	}

	return result, rows.Err()
}

func (r *sqlLinkRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM links`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting links: %w", err)
	}

	return count, nil
}
