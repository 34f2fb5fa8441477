package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"survey_registry/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockFarmerRepo(t *testing.T) (*FarmerRepository, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	repo := NewFarmerRepository(db)
	cleanup := func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet sqlmock expectations: %v", err)
		}
		_ = db.Close()
	}
	return repo, mock, cleanup
}

func TestFarmerRepository_Create(t *testing.T) {
	repo, mock, cleanup := newMockFarmerRepo(t)
	defer cleanup()

	f := models.Farmer{
		Name:         "Abebe",
		FarmerType:   models.FarmerSmallholder,
		Woreda:       "Bahir Dar Zuria",
		Kebele:       "Sebatamit",
		Phone:        "0911000000",
		RegisteredBy: "alice",
	}

	mock.ExpectExec(regexp.QuoteMeta(insertFarmerSQL)).
		WithArgs(f.Name, f.FarmerType, f.Woreda, f.Kebele, f.Phone, nil, f.RegisteredBy, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(3, 1))

	id, err := repo.Create(context.Background(), f)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if id != 3 {
		t.Fatalf("expected id=3, got %d", id)
	}
}

func TestFarmerRepository_Create_ExecError(t *testing.T) {
	repo, mock, cleanup := newMockFarmerRepo(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(insertFarmerSQL)).
		WillReturnError(errors.New("disk full"))

	_, err := repo.Create(context.Background(), models.Farmer{Name: "Abebe", Kebele: "Sebatamit"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "insert farmer") {
		t.Fatalf("expected wrapped insert error, got %q", err.Error())
	}
}

func TestFarmerRepository_List(t *testing.T) {
	repo, mock, cleanup := newMockFarmerRepo(t)
	defer cleanup()

	created := time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "name", "farmer_type", "woreda", "kebele", "phone", "audio_url", "registered_by", "created_at",
	}).
		AddRow(1, "Abebe", models.FarmerSmallholder, "Bahir Dar Zuria", "Sebatamit", "0911000000", "/media/a.mp3", "alice", created).
		AddRow(2, "Tigist", nil, nil, "Meshenti", nil, nil, "alice", created)

	mock.ExpectQuery(regexp.QuoteMeta(selectFarmersSQL)).WillReturnRows(rows)

	farmers, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(farmers) != 2 {
		t.Fatalf("expected 2 farmers, got %d", len(farmers))
	}
	if farmers[0].AudioURL != "/media/a.mp3" {
		t.Errorf("unexpected audio url: %q", farmers[0].AudioURL)
	}
	// NULL optional columns come back as empty strings.
	if farmers[1].FarmerType != "" || farmers[1].Woreda != "" || farmers[1].Phone != "" {
		t.Errorf("expected empty optionals for NULL columns, got %+v", farmers[1])
	}
	if !farmers[0].CreatedAt.Equal(created) {
		t.Errorf("expected created_at %v, got %v", created, farmers[0].CreatedAt)
	}
}

func TestFarmerRepository_GetByID_NotFound(t *testing.T) {
	repo, mock, cleanup := newMockFarmerRepo(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(selectFarmerByIDSQL)).
		WithArgs(99).
		WillReturnError(sql.ErrNoRows)

	f, err := repo.GetByID(context.Background(), 99)
	if err != nil {
		t.Fatalf("expected nil error for missing row, got %v", err)
	}
	if f != nil {
		t.Fatalf("expected nil farmer, got %+v", f)
	}
}

func TestFarmerRepository_Update(t *testing.T) {
	repo, mock, cleanup := newMockFarmerRepo(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(updateFarmerSQL)).
		WithArgs("Abebe Kebede", "0911222333", 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Update(context.Background(), 1, "Abebe Kebede", "0911222333"); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
}

func TestFarmerRepository_SetAudioURL(t *testing.T) {
	repo, mock, cleanup := newMockFarmerRepo(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(updateFarmerAudioSQL)).
		WithArgs("/media/x.mp3", 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.SetAudioURL(context.Background(), 1, "/media/x.mp3"); err != nil {
		t.Fatalf("SetAudioURL returned error: %v", err)
	}
}

func TestFarmerRepository_Delete(t *testing.T) {
	repo, mock, cleanup := newMockFarmerRepo(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(deleteFarmerSQL)).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), 1); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
}
