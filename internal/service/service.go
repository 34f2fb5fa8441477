package service

import (
	"context"
	"io"

	"survey_registry/internal/models"
	"survey_registry/internal/repository"
)

// Directory is the user directory: username/password registration and
// plaintext credential verification. Both operations report their outcome
// as a boolean; errors carry storage failures only.
type Directory interface {
	Register(ctx context.Context, username, password string) (bool, error)
	Login(ctx context.Context, username, password string) (bool, error)
}

// Registry manages farmer survey records.
type Registry interface {
	Create(ctx context.Context, p FarmerParams) (models.Farmer, error)
	List(ctx context.Context) ([]models.Farmer, error)
	Get(ctx context.Context, id int) (*models.Farmer, error)
	Update(ctx context.Context, id int, name, phone string) error
	AttachAudio(ctx context.Context, id int, filename string, src io.Reader) (string, error)
	Delete(ctx context.Context, id int) error
}

// Locations manages the woreda/kebele hierarchy.
type Locations interface {
	AddWoreda(ctx context.Context, name string) (int, error)
	ListWoredas(ctx context.Context) ([]models.Woreda, error)
	RenameWoreda(ctx context.Context, id int, name string) error
	DeleteWoreda(ctx context.Context, id int) error
	AddKebele(ctx context.Context, woredaID int, name string) (int, error)
	DeleteKebele(ctx context.Context, id int) error
}

// Exporter writes survey records as CSV.
type Exporter interface {
	FarmersCSV(ctx context.Context, w io.Writer) (int, error)
}

// FarmerParams is the registration payload for a survey record.
type FarmerParams struct {
	Name         string
	FarmerType   string // Smallholder | Commercial | Large Scale | Subsistence
	Woreda       string
	Kebele       string
	Phone        string
	RegisteredBy string
}

// Service aggregates all sub-services.
type Service struct {
	Directory
	Registry
	Locations
	Exporter
}

// NewService wires the repository layer into concrete services. mediaDir
// is where the registry stores uploaded audio notes.
func NewService(repos *repository.Repository, mediaDir string) *Service {
	return &Service{
		Directory: NewDirectoryService(repos.Users),
		Registry:  NewRegistryService(repos.Farmers, repos.Locations, NewMediaStore(mediaDir)),
		Locations: NewLocationService(repos.Locations),
		Exporter:  NewExportService(repos.Farmers),
	}
}
