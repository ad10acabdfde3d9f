// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/rota/internal/visit"
)

// SQLite implements visit.Repository using SQLite.
type SQLite struct {
	db *sql.DB
}

var _ visit.Repository = (*SQLite)(nil)

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// A single connection keeps PRAGMA foreign_keys in effect for every query.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// LoadRoster returns every staff row with its visits, in display order.
func (s *SQLite) LoadRoster(ctx context.Context) ([]*visit.StaffRow, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, kind FROM staff_rows ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying staff rows: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var (
		roster []*visit.StaffRow
		byID   = make(map[string]*visit.StaffRow)
	)
	for rows.Next() {
		r := &visit.StaffRow{}
		if err := rows.Scan(&r.ID, &r.Name, &r.Kind); err != nil {
			return nil, fmt.Errorf("scanning staff row: %w", err)
		}
		roster = append(roster, r)
		byID[r.ID] = r
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating staff rows: %w", err)
	}

	vrows, err := s.db.QueryContext(ctx, `
		SELECT id, row_id, start_hour, duration_hours, subject, category, status
		FROM visits
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("querying visits: %w", err)
	}
	defer func() { _ = vrows.Close() }()

	for vrows.Next() {
		var (
			v     visit.Visit
			rowID string
		)
		if err := vrows.Scan(&v.ID, &rowID, &v.StartHour, &v.DurationHours, &v.Subject, &v.Category, &v.Status); err != nil {
			return nil, fmt.Errorf("scanning visit: %w", err)
		}
		if err := v.Validate(); err != nil {
			return nil, fmt.Errorf("loading visit: %w", err)
		}
		r, ok := byID[rowID]
		if !ok {
			return nil, fmt.Errorf("visit %s: %w", v.ID, visit.ErrRowNotFound)
		}
		r.Visits = append(r.Visits, &v)
	}
	if err := vrows.Err(); err != nil {
		return nil, fmt.Errorf("iterating visits: %w", err)
	}

	return roster, nil
}

// SaveRoster replaces the stored roster with rows. The move log is kept.
func (s *SQLite) SaveRoster(ctx context.Context, roster []*visit.StaffRow) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM visits`); err != nil {
		return fmt.Errorf("clearing visits: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM staff_rows`); err != nil {
		return fmt.Errorf("clearing staff rows: %w", err)
	}

	rowStmt, err := tx.PrepareContext(ctx, `INSERT INTO staff_rows (id, name, kind, position) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = rowStmt.Close() }()

	visitStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO visits (id, row_id, start_hour, duration_hours, subject, category, status, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = visitStmt.Close() }()

	position := 0
	for i, r := range roster {
		if r.ID == "" {
			return fmt.Errorf("row %d: %w", i, visit.ErrEmptyID)
		}
		if _, err := rowStmt.ExecContext(ctx, r.ID, r.Name, r.Kind, i); err != nil {
			return fmt.Errorf("inserting row %q: %w", r.ID, err)
		}
		for _, v := range r.Visits {
			if err := v.Validate(); err != nil {
				return err
			}
			if _, err := visitStmt.ExecContext(ctx,
				v.ID, r.ID, v.StartHour, v.DurationHours,
				v.Subject, v.Category, statusOrDefault(v.Status), position,
			); err != nil {
				return fmt.Errorf("inserting visit %q: %w", v.ID, err)
			}
			position++
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// RecordMove applies a committed move and appends it to the move log in one
// transaction. The visit is placed after every other visit.
// The visit must still be where the move found it: a move whose source row
// or start no longer matches the stored visit returns ErrStaleMove and
// changes nothing.
func (s *SQLite) RecordMove(ctx context.Context, m visit.Move) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM staff_rows WHERE id = ?`, m.ToRowID).Scan(&exists)
	if err == sql.ErrNoRows {
		return fmt.Errorf("row %s: %w", m.ToRowID, visit.ErrRowNotFound)
	}
	if err != nil {
		return fmt.Errorf("querying row: %w", err)
	}

	result, err := tx.ExecContext(ctx, `
		UPDATE visits
		SET row_id = ?, start_hour = ?, position = (SELECT COALESCE(MAX(position), 0) + 1 FROM visits)
		WHERE id = ? AND row_id = ? AND start_hour = ?
	`, m.ToRowID, m.StartHour, m.VisitID, m.FromRowID, m.FromHour)
	if err != nil {
		return fmt.Errorf("updating visit: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if affected == 0 {
		return staleOrMissing(ctx, tx, m)
	}

	movedAt := m.MovedAt
	if movedAt.IsZero() {
		movedAt = time.Now()
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO moves (visit_id, from_row_id, to_row_id, from_hour, start_hour, moved_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, m.VisitID, m.FromRowID, m.ToRowID, m.FromHour, m.StartHour, movedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("inserting move: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// staleOrMissing explains why a move matched no visit.
func staleOrMissing(ctx context.Context, tx *sql.Tx, m visit.Move) error {
	var (
		rowID string
		start float64
	)
	err := tx.QueryRowContext(ctx, `SELECT row_id, start_hour FROM visits WHERE id = ?`, m.VisitID).Scan(&rowID, &start)
	if err == sql.ErrNoRows {
		return fmt.Errorf("visit %s: %w", m.VisitID, visit.ErrVisitNotFound)
	}
	if err != nil {
		return fmt.Errorf("querying visit: %w", err)
	}
	return fmt.Errorf("visit %s is on %s at %.2f, move expected %s at %.2f: %w",
		m.VisitID, rowID, start, m.FromRowID, m.FromHour, visit.ErrStaleMove)
}

// ListMoves returns up to limit moves, newest first. A limit <= 0 returns all.
func (s *SQLite) ListMoves(ctx context.Context, limit int) ([]visit.Move, error) {
	if limit <= 0 {
		limit = -1 // SQLite treats a negative LIMIT as unbounded
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT visit_id, from_row_id, to_row_id, from_hour, start_hour, moved_at
		FROM moves
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying moves: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var moves []visit.Move
	for rows.Next() {
		var (
			m       visit.Move
			movedAt string
		)
		if err := rows.Scan(&m.VisitID, &m.FromRowID, &m.ToRowID, &m.FromHour, &m.StartHour, &movedAt); err != nil {
			return nil, fmt.Errorf("scanning move: %w", err)
		}
		m.MovedAt, err = time.Parse(time.RFC3339Nano, movedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing moved at: %w", err)
		}
		moves = append(moves, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating moves: %w", err)
	}

	return moves, nil
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func statusOrDefault(st visit.Status) visit.Status {
	if st == "" {
		return visit.StatusScheduled
	}
	return st
}
