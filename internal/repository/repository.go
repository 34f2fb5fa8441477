package repository

import (
	"context"
	"database/sql"

	"survey_registry/internal/models"
	"survey_registry/internal/repository/db"
)

// Users is the directory's storage surface: a lookup by username, a lookup
// by the full credential pair, and an insert. Lookups return (nil, nil)
// when no row matches.
type Users interface {
	Create(ctx context.Context, username, password string) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByCredentials(ctx context.Context, username, password string) (*models.User, error)
}

type Farmers interface {
	Create(ctx context.Context, f models.Farmer) (int, error)
	List(ctx context.Context) ([]models.Farmer, error)
	GetByID(ctx context.Context, id int) (*models.Farmer, error)
	Update(ctx context.Context, id int, name, phone string) error
	SetAudioURL(ctx context.Context, id int, url string) error
	Delete(ctx context.Context, id int) error
}

type Locations interface {
	CreateWoreda(ctx context.Context, name string) (int, error)
	ListWoredas(ctx context.Context) ([]models.Woreda, error)
	GetWoredaByName(ctx context.Context, name string) (*models.Woreda, error)
	RenameWoreda(ctx context.Context, id int, name string) error
	DeleteWoreda(ctx context.Context, id int) error
	CreateKebele(ctx context.Context, woredaID int, name string) (int, error)
	DeleteKebele(ctx context.Context, id int) error
}

type Repository struct {
	Users     Users
	Farmers   Farmers
	Locations Locations
}

func NewRepository(sqlDB *sql.DB) *Repository {
	return &Repository{
		Users:     NewUserRepository(sqlDB),
		Farmers:   NewFarmerRepository(sqlDB),
		Locations: NewLocationRepository(sqlDB),
	}
}

// InitDB opens the SQLite file and ensures the schema, re-exported so
// callers wire storage through this package alone.
func InitDB(path string) (*sql.DB, error) {
	return db.InitDB(path)
}
