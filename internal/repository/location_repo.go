package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"survey_registry/internal/models"
)

type LocationRepository struct {
	db *sql.DB
}

func NewLocationRepository(db *sql.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

var _ Locations = (*LocationRepository)(nil)

const (
	insertWoredaSQL       = `INSERT INTO woredas (name) VALUES (?)`
	selectWoredasSQL      = `SELECT id, name FROM woredas ORDER BY name ASC`
	selectWoredaByNameSQL = `SELECT id, name FROM woredas WHERE name = ?`
	renameWoredaSQL       = `UPDATE woredas SET name = ? WHERE id = ?`
	deleteWoredaSQL       = `DELETE FROM woredas WHERE id = ?`
	insertKebeleSQL       = `INSERT INTO kebeles (name, woreda_id) VALUES (?, ?)`
	selectKebelesSQL      = `SELECT id, name, woreda_id FROM kebeles WHERE woreda_id = ? ORDER BY name ASC`
	deleteKebeleSQL       = `DELETE FROM kebeles WHERE id = ?`
)

// CreateWoreda inserts a woreda and returns its ID.
func (r *LocationRepository) CreateWoreda(ctx context.Context, name string) (int, error) {
	res, err := r.db.ExecContext(ctx, insertWoredaSQL, name)
	if err != nil {
		return 0, fmt.Errorf("insert woreda %q: %w", name, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for woreda %q: %w", name, err)
	}
	return int(lastID), nil
}

// ListWoredas returns every woreda with its kebeles attached.
func (r *LocationRepository) ListWoredas(ctx context.Context) ([]models.Woreda, error) {
	rows, err := r.db.QueryContext(ctx, selectWoredasSQL)
	if err != nil {
		return nil, fmt.Errorf("select woredas: %w", err)
	}
	defer rows.Close()

	out := make([]models.Woreda, 0, 16)
	for rows.Next() {
		var w models.Woreda
		if err := rows.Scan(&w.ID, &w.Name); err != nil {
			return nil, fmt.Errorf("scan woreda row: %w", err)
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate woredas: %w", err)
	}

	for i := range out {
		kebeles, err := r.listKebeles(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Kebeles = kebeles
	}
	return out, nil
}

// GetWoredaByName fetches one woreda with kebeles. Returns (nil, nil) if
// not found.
func (r *LocationRepository) GetWoredaByName(ctx context.Context, name string) (*models.Woreda, error) {
	var w models.Woreda
	err := r.db.QueryRowContext(ctx, selectWoredaByNameSQL, name).Scan(&w.ID, &w.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select woreda %q: %w", name, err)
	}
	kebeles, err := r.listKebeles(ctx, w.ID)
	if err != nil {
		return nil, err
	}
	w.Kebeles = kebeles
	return &w, nil
}

// RenameWoreda updates a woreda's name.
func (r *LocationRepository) RenameWoreda(ctx context.Context, id int, name string) error {
	if _, err := r.db.ExecContext(ctx, renameWoredaSQL, name, id); err != nil {
		return fmt.Errorf("rename woreda %d: %w", id, err)
	}
	return nil
}

// DeleteWoreda removes a woreda; kebeles go with it via ON DELETE CASCADE.
func (r *LocationRepository) DeleteWoreda(ctx context.Context, id int) error {
	if _, err := r.db.ExecContext(ctx, deleteWoredaSQL, id); err != nil {
		return fmt.Errorf("delete woreda %d: %w", id, err)
	}
	return nil
}

// CreateKebele inserts a kebele under a woreda and returns its ID.
func (r *LocationRepository) CreateKebele(ctx context.Context, woredaID int, name string) (int, error) {
	res, err := r.db.ExecContext(ctx, insertKebeleSQL, name, woredaID)
	if err != nil {
		return 0, fmt.Errorf("insert kebele %q: %w", name, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for kebele %q: %w", name, err)
	}
	return int(lastID), nil
}

// DeleteKebele removes a single kebele.
func (r *LocationRepository) DeleteKebele(ctx context.Context, id int) error {
	if _, err := r.db.ExecContext(ctx, deleteKebeleSQL, id); err != nil {
		return fmt.Errorf("delete kebele %d: %w", id, err)
	}
	return nil
}

func (r *LocationRepository) listKebeles(ctx context.Context, woredaID int) ([]models.Kebele, error) {
	rows, err := r.db.QueryContext(ctx, selectKebelesSQL, woredaID)
	if err != nil {
		return nil, fmt.Errorf("select kebeles of woreda %d: %w", woredaID, err)
	}
	defer rows.Close()

	var out []models.Kebele
	for rows.Next() {
		var k models.Kebele
		if err := rows.Scan(&k.ID, &k.Name, &k.WoredaID); err != nil {
			return nil, fmt.Errorf("scan kebele row: %w", err)
		}
		out = append(out, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate kebeles: %w", err)
	}
	return out, nil
}
