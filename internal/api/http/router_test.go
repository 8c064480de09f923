package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/melhem/content-hub/internal/api/http/handlers"
	"github.com/melhem/content-hub/internal/auth"
	"github.com/melhem/content-hub/internal/config"
	"github.com/melhem/content-hub/internal/domain"
	"github.com/melhem/content-hub/internal/events"
	"github.com/melhem/content-hub/internal/observability"
	"github.com/melhem/content-hub/internal/persistence"
	"github.com/melhem/content-hub/internal/repository"
	"github.com/melhem/content-hub/internal/service"
	"github.com/melhem/content-hub/internal/store"
)

type memAccountRepo struct {
	accounts map[string]*domain.Account
	seq      int
}

func newMemAccountRepo() *memAccountRepo {
	return &memAccountRepo{accounts: map[string]*domain.Account{}}
}

func (r *memAccountRepo) Create(_ context.Context, account *domain.Account) error {
	r.seq++
	account.ID = fmt.Sprintf("acc-%d", r.seq)
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt
	cp := *account
	r.accounts[account.ID] = &cp
	return nil
}

func (r *memAccountRepo) Update(_ context.Context, account *domain.Account) error {
	if _, ok := r.accounts[account.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *account
	r.accounts[account.ID] = &cp
	return nil
}

func (r *memAccountRepo) GetByID(_ context.Context, id string) (*domain.Account, error) {
	account, ok := r.accounts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	cp := *account
	return &cp, nil
}

func (r *memAccountRepo) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	for _, account := range r.accounts {
		if account.Email == email {
			cp := *account
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type memResetRepo struct{}

func (memResetRepo) Create(context.Context, *repository.PasswordResetToken) error {
	return nil
}

func (memResetRepo) GetByToken(context.Context, string) (*repository.PasswordResetToken, error) {
	return nil, pgx.ErrNoRows
}

func (memResetRepo) MarkUsed(context.Context, string) error { return nil }

type apiFixture struct {
	app      *fiber.App
	auth     *service.AuthService
	accounts *memAccountRepo
	profiles *store.Store
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	cfg := config.Config{Auth: config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 60,
		BcryptCost:            4,
	}}

	profiles := store.New(store.Options{})
	accounts := newMemAccountRepo()
	authService := service.NewAuthService(cfg, service.AuthDependencies{
		AccountRepo:       accounts,
		PasswordResetRepo: memResetRepo{},
		Profiles:          profiles,
	})
	caseService := service.NewCaseService(service.CaseDependencies{
		Store:      profiles,
		Dispatcher: events.NewInMemoryDispatcher(),
	})
	contentService := service.NewContentService(cfg.Content, nil, zap.NewNop())

	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("content-hub", "test", &persistence.Postgres{}, &persistence.Redis{}),
		Users:          handlers.NewUsersHandler(authService, profiles),
		Cases:          handlers.NewCasesHandler(caseService, contentService),
		Notifications:  handlers.NewNotificationsHandler(caseService),
		Stats:          handlers.NewStatsHandler(service.NewStatsService(profiles)),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager(), accounts),
	})

	return &apiFixture{app: app, auth: authService, accounts: accounts, profiles: profiles}
}

// newDoctor registers a doctor through the service and returns its token.
func (f *apiFixture) newDoctor(t *testing.T, email string) (*domain.Account, string) {
	t.Helper()
	account, token, _, err := f.auth.RegisterDoctor(context.Background(), service.RegisterInput{
		Name:      "Dr. Leyla Aliyeva",
		Email:     email,
		Password:  "s3cret-pass",
		Specialty: "Gynecologic surgery",
		Whatsapp:  "+994501234567",
	})
	require.NoError(t, err)
	return account, token
}

// newMarketing seeds a marketing account directly; registration is doctors-only.
func (f *apiFixture) newMarketing(t *testing.T) (*domain.Account, string) {
	t.Helper()
	account := &domain.Account{
		Name:  "Aysel Mammadova",
		Email: "aysel@hospital.az",
		Role:  domain.RoleMarketing,
	}
	require.NoError(t, f.accounts.Create(context.Background(), account))
	f.profiles.UpsertUser(account.Profile())
	token, _, err := f.auth.TokenManager().GenerateToken(account.ID, account.Role)
	require.NoError(t, err)
	return account, token
}

func (f *apiFixture) request(t *testing.T, method, path, token string, payload any) (*http.Response, map[string]json.RawMessage) {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	parsed := map[string]json.RawMessage{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &parsed))
	}
	return resp, parsed
}

func errorCode(t *testing.T, body map[string]json.RawMessage) string {
	t.Helper()
	var envelope struct {
		Code string `json:"code"`
	}
	require.Contains(t, body, "error")
	require.NoError(t, json.Unmarshal(body["error"], &envelope))
	return envelope.Code
}

func TestHealthLive(t *testing.T) {
	f := newAPIFixture(t)
	resp, body := f.request(t, http.MethodGet, "/health/live", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, body, "status")
}

func TestMissingTokenReturnsUnauthorizedEnvelope(t *testing.T) {
	f := newAPIFixture(t)
	resp, body := f.request(t, http.MethodGet, "/cases", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "UNAUTHORIZED", errorCode(t, body))
}

func TestRegisterAndLoginOverHTTP(t *testing.T) {
	f := newAPIFixture(t)

	resp, body := f.request(t, http.MethodPost, "/auth/register", "", map[string]string{
		"full_name": "Dr. Emil Gasimov",
		"email":     "emil@hospital.az",
		"password":  "s3cret-pass",
		"specialty": "Pediatric dentistry",
		"whatsapp":  "+994501112233",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Contains(t, string(body["data"]), "access")

	resp, _ = f.request(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "emil@hospital.az",
		"password": "s3cret-pass",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = f.request(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "emil@hospital.az",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "UNAUTHORIZED", errorCode(t, body))
}

func TestDoctorCanReadOwnDashboard(t *testing.T) {
	f := newAPIFixture(t)
	_, doctorToken := f.newDoctor(t, "leyla@hospital.az")

	resp, _ := f.request(t, http.MethodPost, "/cases", doctorToken, map[string]string{
		"title":    "Laparoscopic surgery",
		"category": "Gynecology",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := f.request(t, http.MethodGet, "/stats/dashboard", doctorToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var stats struct {
		Total   int `json:"total"`
		Pending int `json:"pending"`
	}
	require.NoError(t, json.Unmarshal(body["data"], &stats))
	require.Equal(t, 1, stats.Total)
	require.Equal(t, 1, stats.Pending)
}

func TestStatusChangeIsMarketingOnly(t *testing.T) {
	f := newAPIFixture(t)
	_, doctorToken := f.newDoctor(t, "leyla@hospital.az")
	_, marketingToken := f.newMarketing(t)

	_, created := f.request(t, http.MethodPost, "/cases", doctorToken, map[string]string{
		"title": "Laparoscopic surgery",
	})
	var caseData struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(created["data"], &caseData))

	resp, body := f.request(t, http.MethodPatch, "/cases/"+caseData.ID+"/status", doctorToken, map[string]string{
		"status": "REVIEWED",
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.Equal(t, "FORBIDDEN", errorCode(t, body))

	resp, _ = f.request(t, http.MethodPatch, "/cases/"+caseData.ID+"/status", marketingToken, map[string]string{
		"status": "REVIEWED",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// the status change lands in the doctor's notification feed
	resp, body = f.request(t, http.MethodGet, "/notifications", doctorToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var notifications []struct {
		Type string `json:"type"`
	}
	require.NoError(t, json.Unmarshal(body["data"], &notifications))
	require.Len(t, notifications, 1)
	require.Equal(t, "STATUS_CHANGE", notifications[0].Type)
}

func TestCaseCreationIsDoctorOnly(t *testing.T) {
	f := newAPIFixture(t)
	_, marketingToken := f.newMarketing(t)

	resp, body := f.request(t, http.MethodPost, "/cases", marketingToken, map[string]string{
		"title": "Not allowed",
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.Equal(t, "FORBIDDEN", errorCode(t, body))
}

func TestCaseListIsViewerScoped(t *testing.T) {
	f := newAPIFixture(t)
	_, leylaToken := f.newDoctor(t, "leyla@hospital.az")
	_, emilToken := f.newDoctor(t, "emil@hospital.az")
	_, marketingToken := f.newMarketing(t)

	resp, _ := f.request(t, http.MethodPost, "/cases", leylaToken, map[string]string{"title": "Mine"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	countCases := func(token string) int {
		resp, body := f.request(t, http.MethodGet, "/cases", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var cases []json.RawMessage
		require.NoError(t, json.Unmarshal(body["data"], &cases))
		return len(cases)
	}

	require.Equal(t, 1, countCases(leylaToken))
	require.Equal(t, 0, countCases(emilToken))
	require.Equal(t, 1, countCases(marketingToken))
}

func TestUnknownCaseReturnsNotFoundEnvelope(t *testing.T) {
	f := newAPIFixture(t)
	_, marketingToken := f.newMarketing(t)

	resp, body := f.request(t, http.MethodGet, "/cases/missing", marketingToken, nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, "NOT_FOUND", errorCode(t, body))
}
