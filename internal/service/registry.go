package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"survey_registry/internal/models"
	"survey_registry/internal/repository"
)

// Domain errors for the registry flows.
var (
	ErrNameRequired   = errors.New("farmer name is required")
	ErrKebeleRequired = errors.New("kebele is required")
	ErrUnknownWoreda  = errors.New("unknown woreda")
	ErrUnknownKebele  = errors.New("kebele does not belong to the given woreda")
	ErrRecordNotFound = errors.New("record not found")
)

var validFarmerTypes = map[string]bool{
	"":                       true, // optional
	models.FarmerSmallholder: true,
	models.FarmerCommercial:  true,
	models.FarmerLargeScale:  true,
	models.FarmerSubsistence: true,
}

// RegistryService creates and maintains farmer survey records.
type RegistryService struct {
	farmers   repository.Farmers
	locations repository.Locations
	media     *MediaStore
}

func NewRegistryService(farmers repository.Farmers, locations repository.Locations, media *MediaStore) *RegistryService {
	return &RegistryService{farmers: farmers, locations: locations, media: media}
}

// Create validates the payload and inserts a record. Name and kebele are
// mandatory; when a woreda is given the kebele must belong to it.
func (s *RegistryService) Create(ctx context.Context, p FarmerParams) (models.Farmer, error) {
	if p.Name == "" {
		return models.Farmer{}, ErrNameRequired
	}
	if p.Kebele == "" {
		return models.Farmer{}, ErrKebeleRequired
	}
	if !validFarmerTypes[p.FarmerType] {
		return models.Farmer{}, fmt.Errorf("invalid farmer type %q", p.FarmerType)
	}

	if p.Woreda != "" {
		w, err := s.locations.GetWoredaByName(ctx, p.Woreda)
		if err != nil {
			return models.Farmer{}, err
		}
		if w == nil {
			return models.Farmer{}, ErrUnknownWoreda
		}
		if !hasKebele(w.Kebeles, p.Kebele) {
			return models.Farmer{}, ErrUnknownKebele
		}
	}

	f := models.Farmer{
		Name:         p.Name,
		FarmerType:   p.FarmerType,
		Woreda:       p.Woreda,
		Kebele:       p.Kebele,
		Phone:        p.Phone,
		RegisteredBy: p.RegisteredBy,
		CreatedAt:    time.Now().UTC(),
	}
	id, err := s.farmers.Create(ctx, f)
	if err != nil {
		return models.Farmer{}, err
	}
	f.ID = id
	return f, nil
}

func (s *RegistryService) List(ctx context.Context) ([]models.Farmer, error) {
	return s.farmers.List(ctx)
}

func (s *RegistryService) Get(ctx context.Context, id int) (*models.Farmer, error) {
	return s.farmers.GetByID(ctx, id)
}

// Update edits the two mutable fields of a record, name and phone.
func (s *RegistryService) Update(ctx context.Context, id int, name, phone string) error {
	if name == "" {
		return ErrNameRequired
	}
	existing, err := s.farmers.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrRecordNotFound
	}
	return s.farmers.Update(ctx, id, name, phone)
}

// AttachAudio stores an uploaded audio note and links it to the record.
// Returns the URL path the note is served under.
func (s *RegistryService) AttachAudio(ctx context.Context, id int, filename string, src io.Reader) (string, error) {
	existing, err := s.farmers.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if existing == nil {
		return "", ErrRecordNotFound
	}
	url, err := s.media.Store(filename, src)
	if err != nil {
		return "", err
	}
	if err := s.farmers.SetAudioURL(ctx, id, url); err != nil {
		return "", err
	}
	return url, nil
}

func (s *RegistryService) Delete(ctx context.Context, id int) error {
	existing, err := s.farmers.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrRecordNotFound
	}
	return s.farmers.Delete(ctx, id)
}

func hasKebele(kebeles []models.Kebele, name string) bool {
	for _, k := range kebeles {
		if k.Name == name {
			return true
		}
	}
	return false
}
