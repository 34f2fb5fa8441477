package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"survey_registry/internal/models"
)

type FarmerRepository struct {
	db *sql.DB
}

func NewFarmerRepository(db *sql.DB) *FarmerRepository {
	return &FarmerRepository{db: db}
}

var _ Farmers = (*FarmerRepository)(nil)

const (
	insertFarmerSQL = `
		INSERT INTO farmers (name, farmer_type, woreda, kebele, phone, audio_url, registered_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	selectFarmersSQL = `
		SELECT id, name, farmer_type, woreda, kebele, phone, audio_url, registered_by, created_at
		FROM farmers ORDER BY id ASC
	`
	selectFarmerByIDSQL = `
		SELECT id, name, farmer_type, woreda, kebele, phone, audio_url, registered_by, created_at
		FROM farmers WHERE id = ?
	`
	updateFarmerSQL       = `UPDATE farmers SET name = ?, phone = ? WHERE id = ?`
	updateFarmerAudioSQL  = `UPDATE farmers SET audio_url = ? WHERE id = ?`
	deleteFarmerSQL       = `DELETE FROM farmers WHERE id = ?`
	timestampSQLiteLayout = "2006-01-02 15:04:05"
)

// Create inserts a new farmer record and returns its ID. A zero CreatedAt
// is stamped with the current UTC time.
func (r *FarmerRepository) Create(ctx context.Context, f models.Farmer) (int, error) {
	ts := f.CreatedAt
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx, insertFarmerSQL,
		f.Name,
		f.FarmerType,
		f.Woreda,
		f.Kebele,
		f.Phone,
		nullable(f.AudioURL),
		f.RegisteredBy,
		ts.UTC().Format(timestampSQLiteLayout),
	)
	if err != nil {
		return 0, fmt.Errorf("insert farmer %q: %w", f.Name, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for farmer %q: %w", f.Name, err)
	}
	return int(lastID), nil
}

// List returns all farmer records ordered by ID.
func (r *FarmerRepository) List(ctx context.Context) ([]models.Farmer, error) {
	rows, err := r.db.QueryContext(ctx, selectFarmersSQL)
	if err != nil {
		return nil, fmt.Errorf("select farmers: %w", err)
	}
	defer rows.Close()

	out := make([]models.Farmer, 0, 32)
	for rows.Next() {
		f, err := scanFarmer(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan farmer row: %w", err)
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate farmers: %w", err)
	}
	return out, nil
}

// GetByID fetches one farmer. Returns (nil, nil) if not found.
func (r *FarmerRepository) GetByID(ctx context.Context, id int) (*models.Farmer, error) {
	row := r.db.QueryRowContext(ctx, selectFarmerByIDSQL, id)
	f, err := scanFarmer(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select farmer %d: %w", id, err)
	}
	return &f, nil
}

// Update changes name and phone, the two editable fields of a record.
func (r *FarmerRepository) Update(ctx context.Context, id int, name, phone string) error {
	if _, err := r.db.ExecContext(ctx, updateFarmerSQL, name, phone, id); err != nil {
		return fmt.Errorf("update farmer %d: %w", id, err)
	}
	return nil
}

// SetAudioURL attaches a stored audio note to a record.
func (r *FarmerRepository) SetAudioURL(ctx context.Context, id int, url string) error {
	if _, err := r.db.ExecContext(ctx, updateFarmerAudioSQL, url, id); err != nil {
		return fmt.Errorf("set farmer %d audio url: %w", id, err)
	}
	return nil
}

// Delete removes a farmer record.
func (r *FarmerRepository) Delete(ctx context.Context, id int) error {
	if _, err := r.db.ExecContext(ctx, deleteFarmerSQL, id); err != nil {
		return fmt.Errorf("delete farmer %d: %w", id, err)
	}
	return nil
}

// scanFarmer maps one row onto a Farmer, tolerating NULLs in the optional
// columns.
func scanFarmer(scan func(dest ...any) error) (models.Farmer, error) {
	var (
		f          models.Farmer
		ftype      sql.NullString
		woreda     sql.NullString
		kebele     sql.NullString
		phone      sql.NullString
		audioURL   sql.NullString
		registered sql.NullString
		createdAt  time.Time
	)
	if err := scan(&f.ID, &f.Name, &ftype, &woreda, &kebele, &phone, &audioURL, &registered, &createdAt); err != nil {
		return models.Farmer{}, err
	}
	f.FarmerType = ftype.String
	f.Woreda = woreda.String
	f.Kebele = kebele.String
	f.Phone = phone.String
	f.AudioURL = audioURL.String
	f.RegisteredBy = registered.String
	f.CreatedAt = createdAt.UTC()
	return f, nil
}

// nullable maps "" to NULL so empty optionals don't persist as empty strings.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
