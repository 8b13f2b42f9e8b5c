package store

import (
	"database/sql"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Snappable represents an object definition stored in the database.
type Snappable struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SnappableRepository provides CRUD operations for snappables.
type SnappableRepository struct {
	db *sql.DB
}

// Snappables returns the snappable repository for this store.
func (s *Store) Snappables() *SnappableRepository {
	return &SnappableRepository{db: s.db}
}

// Create inserts a new snappable into the database.
func (r *SnappableRepository) Create(sn *Snappable) error {
	now := time.Now()
	sn.CreatedAt = now
	sn.UpdatedAt = now

	_, err := r.db.Exec(
		`INSERT INTO snappables (id, name, created_at, updated_at)
		 VALUES (?, ?, ?, ?)`,
		sn.ID, sn.Name, sn.CreatedAt, sn.UpdatedAt,
	)
	return err
}

// GetByID retrieves a snappable by its ID.
func (r *SnappableRepository) GetByID(id string) (*Snappable, error) {
	sn := &Snappable{}
	err := r.db.QueryRow(
		`SELECT id, name, created_at, updated_at FROM snappables WHERE id = ?`,
		id,
	).Scan(&sn.ID, &sn.Name, &sn.CreatedAt, &sn.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return sn, nil
}

// GetByName retrieves a snappable by its name.
func (r *SnappableRepository) GetByName(name string) (*Snappable, error) {
	sn := &Snappable{}
	err := r.db.QueryRow(
		`SELECT id, name, created_at, updated_at FROM snappables WHERE name = ?`,
		name,
	).Scan(&sn.ID, &sn.Name, &sn.CreatedAt, &sn.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return sn, nil
}

// List retrieves all snappables ordered by name.
func (r *SnappableRepository) List() ([]*Snappable, error) {
	rows, err := r.db.Query(
		`SELECT id, name, created_at, updated_at FROM snappables ORDER BY name`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Snappable
	for rows.Next() {
		sn := &Snappable{}
		if err := rows.Scan(&sn.ID, &sn.Name, &sn.CreatedAt, &sn.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, sn)
	}
	return out, rows.Err()
}

// Delete removes a snappable and, via cascade, its snap points and
// reference poses.
func (r *SnappableRepository) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM snappables WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
