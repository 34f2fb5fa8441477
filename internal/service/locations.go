package service

import (
	"context"
	"errors"
	"strings"

	"survey_registry/internal/models"
	"survey_registry/internal/repository"
)

var (
	ErrWoredaNameRequired = errors.New("woreda name is required")
	ErrKebeleNameRequired = errors.New("kebele name is required")
)

// LocationService maintains the woreda/kebele hierarchy.
type LocationService struct {
	locations repository.Locations
}

func NewLocationService(locations repository.Locations) *LocationService {
	return &LocationService{locations: locations}
}

// AddWoreda creates a woreda. Names are trimmed; empty names rejected.
func (s *LocationService) AddWoreda(ctx context.Context, name string) (int, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, ErrWoredaNameRequired
	}
	return s.locations.CreateWoreda(ctx, name)
}

func (s *LocationService) ListWoredas(ctx context.Context) ([]models.Woreda, error) {
	return s.locations.ListWoredas(ctx)
}

func (s *LocationService) RenameWoreda(ctx context.Context, id int, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrWoredaNameRequired
	}
	return s.locations.RenameWoreda(ctx, id, name)
}

func (s *LocationService) DeleteWoreda(ctx context.Context, id int) error {
	return s.locations.DeleteWoreda(ctx, id)
}

// AddKebele creates a kebele under a woreda.
func (s *LocationService) AddKebele(ctx context.Context, woredaID int, name string) (int, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, ErrKebeleNameRequired
	}
	return s.locations.CreateKebele(ctx, woredaID, name)
}

func (s *LocationService) DeleteKebele(ctx context.Context, id int) error {
	return s.locations.DeleteKebele(ctx, id)
}
