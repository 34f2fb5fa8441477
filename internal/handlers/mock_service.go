package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"

	"survey_registry/internal/models"
	"survey_registry/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockDirectory struct {
	registerOK  bool
	registerErr error
	loginOK     bool
	loginErr    error

	lastRegisterUsername string
	lastRegisterPassword string
	lastLoginUsername    string
	lastLoginPassword    string
	loginCalls           int
}

func (m *mockDirectory) Register(_ context.Context, username, password string) (bool, error) {
	m.lastRegisterUsername = username
	m.lastRegisterPassword = password
	return m.registerOK, m.registerErr
}

func (m *mockDirectory) Login(_ context.Context, username, password string) (bool, error) {
	m.loginCalls++
	m.lastLoginUsername = username
	m.lastLoginPassword = password
	return m.loginOK, m.loginErr
}

type mockRegistry struct {
	createFarmer models.Farmer
	createErr    error
	listResp     []models.Farmer
	listErr      error
	getResp      *models.Farmer
	getErr       error
	updateErr    error
	attachURL    string
	attachErr    error
	deleteErr    error

	lastCreate   service.FarmerParams
	lastUpdateID int
	deleteCalls  int
}

func (m *mockRegistry) Create(_ context.Context, p service.FarmerParams) (models.Farmer, error) {
	m.lastCreate = p
	return m.createFarmer, m.createErr
}
func (m *mockRegistry) List(_ context.Context) ([]models.Farmer, error) {
	return m.listResp, m.listErr
}
func (m *mockRegistry) Get(_ context.Context, id int) (*models.Farmer, error) {
	return m.getResp, m.getErr
}
func (m *mockRegistry) Update(_ context.Context, id int, name, phone string) error {
	m.lastUpdateID = id
	return m.updateErr
}
func (m *mockRegistry) AttachAudio(_ context.Context, id int, filename string, src io.Reader) (string, error) {
	return m.attachURL, m.attachErr
}
func (m *mockRegistry) Delete(_ context.Context, id int) error {
	m.deleteCalls++
	return m.deleteErr
}

type mockLocations struct {
	addWoredaID   int
	addWoredaErr  error
	listResp      []models.Woreda
	listErr       error
	renameErr     error
	deleteErr     error
	addKebeleID   int
	addKebeleErr  error
	delKebeleErr  error
	lastAddKebele int // woreda id of last AddKebele call
}

func (m *mockLocations) AddWoreda(_ context.Context, name string) (int, error) {
	return m.addWoredaID, m.addWoredaErr
}
func (m *mockLocations) ListWoredas(_ context.Context) ([]models.Woreda, error) {
	return m.listResp, m.listErr
}
func (m *mockLocations) RenameWoreda(_ context.Context, id int, name string) error {
	return m.renameErr
}
func (m *mockLocations) DeleteWoreda(_ context.Context, id int) error {
	return m.deleteErr
}
func (m *mockLocations) AddKebele(_ context.Context, woredaID int, name string) (int, error) {
	m.lastAddKebele = woredaID
	return m.addKebeleID, m.addKebeleErr
}
func (m *mockLocations) DeleteKebele(_ context.Context, id int) error {
	return m.delKebeleErr
}

type mockExporter struct {
	csv  string
	rows int
	err  error
}

func (m *mockExporter) FarmersCSV(_ context.Context, w io.Writer) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	_, _ = io.WriteString(w, m.csv)
	return m.rows, nil
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil, "")
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

// apiRequest builds a request against the credential-checked API group.
func apiRequest(method, target string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, target, body)
	req.SetBasicAuth("alice", "pw1")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}
