// Package dataset persists harvested publication records in SQLite and
// writes the CSV and yearly text exports.
package dataset

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/matsen/scholarvest/internal/scholar"
)

// Store wraps a SQLite database of harvested publications.
type Store struct {
	db *sql.DB
}

// selectPubFields contains the standard field list for SELECT queries.
const selectPubFields = `department, faculty_name, title,
	pub_year, cited_by_total, cites_per_year,
	description, profile_id, detail_url, series_json`

// Open opens or creates the publication database at the given path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		-- One row per publication attributed to a roster entry
		CREATE TABLE IF NOT EXISTS publications (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			department TEXT NOT NULL,
			faculty_name TEXT NOT NULL,
			title TEXT NOT NULL,
			pub_year INTEGER,
			cited_by_total INTEGER,
			cites_per_year REAL,
			description TEXT,
			profile_id TEXT NOT NULL,
			detail_url TEXT NOT NULL,
			series_json TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_publications_profile ON publications(profile_id);
		CREATE INDEX IF NOT EXISTS idx_publications_year ON publications(pub_year);
	`

	_, err := db.Exec(schema)
	return err
}

// ReplaceAuthor atomically swaps the stored rows for one profile, so an
// aborted run keeps every author that finished before the failure.
func (s *Store) ReplaceAuthor(profileID string, recs []scholar.Record) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM publications WHERE profile_id = ?", profileID); err != nil {
		return fmt.Errorf("clearing rows for %s: %w", profileID, err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO publications (
			department, faculty_name, title,
			pub_year, cited_by_total, cites_per_year,
			description, profile_id, detail_url, series_json
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range recs {
		seriesJSON, err := marshalSeries(rec.Series)
		if err != nil {
			return fmt.Errorf("marshaling series for %q: %w", rec.Title, err)
		}

		_, err = stmt.Exec(
			rec.Department, rec.Faculty, rec.Title,
			nullableInt(rec.Year), nullableInt(rec.CitedBy), nullableFloat(rec.PerYear),
			nullableText(rec.Description), rec.ProfileID, rec.DetailURL, seriesJSON,
		)
		if err != nil {
			return fmt.Errorf("inserting %q: %w", rec.Title, err)
		}
	}

	return tx.Commit()
}

// All returns every stored record, oldest insertion first, so export
// order follows harvest order.
func (s *Store) All() ([]scholar.Record, error) {
	rows, err := s.db.Query(`SELECT ` + selectPubFields + ` FROM publications ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing publications: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// ByProfile returns the stored records for one profile in insertion order.
func (s *Store) ByProfile(profileID string) ([]scholar.Record, error) {
	rows, err := s.db.Query(`SELECT `+selectPubFields+` FROM publications WHERE profile_id = ? ORDER BY id`, profileID)
	if err != nil {
		return nil, fmt.Errorf("listing publications for %s: %w", profileID, err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// Count returns the total number of stored records.
func (s *Store) Count() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM publications").Scan(&count)
	return count, err
}

// scanner interface for sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(s scanner) (*scholar.Record, error) {
	var rec scholar.Record
	var pubYear, citedBy sql.NullInt64
	var perYear sql.NullFloat64
	var description, seriesJSON sql.NullString

	err := s.Scan(
		&rec.Department, &rec.Faculty, &rec.Title,
		&pubYear, &citedBy, &perYear,
		&description, &rec.ProfileID, &rec.DetailURL, &seriesJSON,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	if pubYear.Valid {
		y := int(pubYear.Int64)
		rec.Year = &y
	}
	if citedBy.Valid {
		c := int(citedBy.Int64)
		rec.CitedBy = &c
	}
	if perYear.Valid {
		v := perYear.Float64
		rec.PerYear = &v
	}
	if description.Valid {
		d := description.String
		rec.Description = &d
	}
	if seriesJSON.Valid && seriesJSON.String != "" {
		if err := json.Unmarshal([]byte(seriesJSON.String), &rec.Series); err != nil {
			return nil, fmt.Errorf("parsing series JSON for %q: %w", rec.Title, err)
		}
	}

	return &rec, nil
}

func scanRecords(rows *sql.Rows) ([]scholar.Record, error) {
	var recs []scholar.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		if rec != nil {
			recs = append(recs, *rec)
		}
	}
	return recs, rows.Err()
}

func marshalSeries(series map[int]int) (sql.NullString, error) {
	if len(series) == 0 {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(series)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

func nullableInt(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}

func nullableFloat(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}

// nullableText converts an optional string to sql.NullString, treating
// empty as NULL.
func nullableText(p *string) sql.NullString {
	if p == nil || *p == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}
