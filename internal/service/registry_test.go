package service

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"survey_registry/internal/models"
)

// mockFarmersRepo is an in-test mock for repository.Farmers.
type mockFarmersRepo struct {
	CreateFn      func(f models.Farmer) (int, error)
	ListFn        func() ([]models.Farmer, error)
	GetByIDFn     func(id int) (*models.Farmer, error)
	UpdateFn      func(id int, name, phone string) error
	SetAudioURLFn func(id int, url string) error
	DeleteFn      func(id int) error

	created []models.Farmer
}

func (m *mockFarmersRepo) Create(_ context.Context, f models.Farmer) (int, error) {
	m.created = append(m.created, f)
	return m.CreateFn(f)
}
func (m *mockFarmersRepo) List(_ context.Context) ([]models.Farmer, error) { return m.ListFn() }
func (m *mockFarmersRepo) GetByID(_ context.Context, id int) (*models.Farmer, error) {
	return m.GetByIDFn(id)
}
func (m *mockFarmersRepo) Update(_ context.Context, id int, name, phone string) error {
	return m.UpdateFn(id, name, phone)
}
func (m *mockFarmersRepo) SetAudioURL(_ context.Context, id int, url string) error {
	return m.SetAudioURLFn(id, url)
}
func (m *mockFarmersRepo) Delete(_ context.Context, id int) error { return m.DeleteFn(id) }

// mockLocationsRepo is an in-test mock for repository.Locations.
type mockLocationsRepo struct {
	CreateWoredaFn    func(name string) (int, error)
	ListWoredasFn     func() ([]models.Woreda, error)
	GetWoredaByNameFn func(name string) (*models.Woreda, error)
	RenameWoredaFn    func(id int, name string) error
	DeleteWoredaFn    func(id int) error
	CreateKebeleFn    func(woredaID int, name string) (int, error)
	DeleteKebeleFn    func(id int) error
}

func (m *mockLocationsRepo) CreateWoreda(_ context.Context, name string) (int, error) {
	return m.CreateWoredaFn(name)
}
func (m *mockLocationsRepo) ListWoredas(_ context.Context) ([]models.Woreda, error) {
	return m.ListWoredasFn()
}
func (m *mockLocationsRepo) GetWoredaByName(_ context.Context, name string) (*models.Woreda, error) {
	return m.GetWoredaByNameFn(name)
}
func (m *mockLocationsRepo) RenameWoreda(_ context.Context, id int, name string) error {
	return m.RenameWoredaFn(id, name)
}
func (m *mockLocationsRepo) DeleteWoreda(_ context.Context, id int) error {
	return m.DeleteWoredaFn(id)
}
func (m *mockLocationsRepo) CreateKebele(_ context.Context, woredaID int, name string) (int, error) {
	return m.CreateKebeleFn(woredaID, name)
}
func (m *mockLocationsRepo) DeleteKebele(_ context.Context, id int) error {
	return m.DeleteKebeleFn(id)
}

func bahirDarZuria() *models.Woreda {
	return &models.Woreda{
		ID:   1,
		Name: "Bahir Dar Zuria",
		Kebeles: []models.Kebele{
			{ID: 10, Name: "Sebatamit", WoredaID: 1},
			{ID: 11, Name: "Meshenti", WoredaID: 1},
		},
	}
}

func newTestRegistry(farmers *mockFarmersRepo, locations *mockLocationsRepo, mediaDir string) *RegistryService {
	return NewRegistryService(farmers, locations, NewMediaStore(mediaDir))
}

func TestRegistryService_Create_Success(t *testing.T) {
	farmers := &mockFarmersRepo{
		CreateFn: func(f models.Farmer) (int, error) { return 3, nil },
	}
	locations := &mockLocationsRepo{
		GetWoredaByNameFn: func(name string) (*models.Woreda, error) { return bahirDarZuria(), nil },
	}
	svc := newTestRegistry(farmers, locations, t.TempDir())

	f, err := svc.Create(context.Background(), FarmerParams{
		Name:         "Abebe",
		FarmerType:   models.FarmerSmallholder,
		Woreda:       "Bahir Dar Zuria",
		Kebele:       "Sebatamit",
		Phone:        "0911000000",
		RegisteredBy: "alice",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if f.ID != 3 {
		t.Fatalf("expected id=3, got %d", f.ID)
	}
	if len(farmers.created) != 1 {
		t.Fatalf("expected 1 insert, got %d", len(farmers.created))
	}
	stored := farmers.created[0]
	if stored.RegisteredBy != "alice" {
		t.Errorf("expected registered_by 'alice', got %q", stored.RegisteredBy)
	}
	if stored.CreatedAt.IsZero() {
		t.Error("expected created_at to be stamped")
	}
}

func TestRegistryService_Create_Validation(t *testing.T) {
	locations := &mockLocationsRepo{
		GetWoredaByNameFn: func(name string) (*models.Woreda, error) {
			if name == "Bahir Dar Zuria" {
				return bahirDarZuria(), nil
			}
			return nil, nil
		},
	}
	farmers := &mockFarmersRepo{
		CreateFn: func(f models.Farmer) (int, error) {
			t.Fatal("Create should not reach the repository on validation failure")
			return 0, nil
		},
	}
	svc := newTestRegistry(farmers, locations, t.TempDir())

	tests := []struct {
		name    string
		params  FarmerParams
		wantErr error
	}{
		{
			name:    "missing name",
			params:  FarmerParams{Kebele: "Sebatamit"},
			wantErr: ErrNameRequired,
		},
		{
			name:    "missing kebele",
			params:  FarmerParams{Name: "Abebe"},
			wantErr: ErrKebeleRequired,
		},
		{
			name:    "unknown woreda",
			params:  FarmerParams{Name: "Abebe", Woreda: "Nowhere", Kebele: "Sebatamit"},
			wantErr: ErrUnknownWoreda,
		},
		{
			name:    "kebele not in woreda",
			params:  FarmerParams{Name: "Abebe", Woreda: "Bahir Dar Zuria", Kebele: "Elsewhere"},
			wantErr: ErrUnknownKebele,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.params)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestRegistryService_Create_InvalidFarmerType(t *testing.T) {
	svc := newTestRegistry(&mockFarmersRepo{}, &mockLocationsRepo{}, t.TempDir())

	_, err := svc.Create(context.Background(), FarmerParams{
		Name:       "Abebe",
		Kebele:     "Sebatamit",
		FarmerType: "Nomadic",
	})
	if err == nil || !strings.Contains(err.Error(), "invalid farmer type") {
		t.Fatalf("expected invalid farmer type error, got %v", err)
	}
}

func TestRegistryService_Update_NotFound(t *testing.T) {
	farmers := &mockFarmersRepo{
		GetByIDFn: func(id int) (*models.Farmer, error) { return nil, nil },
	}
	svc := newTestRegistry(farmers, &mockLocationsRepo{}, t.TempDir())

	err := svc.Update(context.Background(), 99, "Abebe", "0911")
	if !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestRegistryService_AttachAudio(t *testing.T) {
	dir := t.TempDir()
	var linkedURL string
	farmers := &mockFarmersRepo{
		GetByIDFn: func(id int) (*models.Farmer, error) {
			return &models.Farmer{ID: id, Name: "Abebe", Kebele: "Sebatamit"}, nil
		},
		SetAudioURLFn: func(id int, url string) error {
			linkedURL = url
			return nil
		},
	}
	svc := newTestRegistry(farmers, &mockLocationsRepo{}, dir)

	url, err := svc.AttachAudio(context.Background(), 1, "note.mp3", bytes.NewReader([]byte("audio-bytes")))
	if err != nil {
		t.Fatalf("AttachAudio returned error: %v", err)
	}
	if !strings.HasPrefix(url, "/media/") || !strings.HasSuffix(url, ".mp3") {
		t.Fatalf("unexpected url %q", url)
	}
	if linkedURL != url {
		t.Fatalf("record linked to %q, stored at %q", linkedURL, url)
	}

	// The file must exist on disk with the uploaded contents.
	data, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, "/media/")))
	if err != nil {
		t.Fatalf("stored file missing: %v", err)
	}
	if string(data) != "audio-bytes" {
		t.Fatalf("stored file contents = %q", data)
	}
}

func TestRegistryService_AttachAudio_UnsupportedFormat(t *testing.T) {
	farmers := &mockFarmersRepo{
		GetByIDFn: func(id int) (*models.Farmer, error) {
			return &models.Farmer{ID: id}, nil
		},
	}
	svc := newTestRegistry(farmers, &mockLocationsRepo{}, t.TempDir())

	_, err := svc.AttachAudio(context.Background(), 1, "note.pdf", bytes.NewReader(nil))
	if !errors.Is(err, ErrUnsupportedAudio) {
		t.Fatalf("expected ErrUnsupportedAudio, got %v", err)
	}
}

func TestRegistryService_Delete_NotFound(t *testing.T) {
	farmers := &mockFarmersRepo{
		GetByIDFn: func(id int) (*models.Farmer, error) { return nil, nil },
	}
	svc := newTestRegistry(farmers, &mockLocationsRepo{}, t.TempDir())

	if err := svc.Delete(context.Background(), 99); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}
