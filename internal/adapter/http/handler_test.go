package httpadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"campaign-manager/internal/adapter/password"
	"campaign-manager/internal/adapter/token"
	"campaign-manager/internal/adapter/usecase"
	"campaign-manager/internal/core/domain"
	"campaign-manager/internal/core/port/mocks"
)

type testEnv struct {
	router    http.Handler
	users     *mocks.MockUserRepository
	campaigns *mocks.MockCampaignRepository
	tokens    *token.Service
	hasher    *password.Hasher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	users := mocks.NewMockUserRepository(t)
	campaigns := mocks.NewMockCampaignRepository(t)
	tokens := token.NewService("test-secret", 7*24*time.Hour)
	hasher := password.NewHasher(bcrypt.MinCost)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	h := NewHandler(
		usecase.NewAuthUseCase(users, hasher, tokens),
		usecase.NewCampaignUseCase(campaigns),
		tokens,
		nil,
		logger,
	)
	return &testEnv{router: h.Router(), users: users, campaigns: campaigns, tokens: tokens, hasher: hasher}
}

func (e *testEnv) do(t *testing.T, method, path, tok string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) tokenFor(t *testing.T, userID int64) string {
	t.Helper()
	tok, err := e.tokens.Issue(userID, "user@x.com")
	require.NoError(t, err)
	return tok
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

// TestRegisterListCreateStats walks a new user through registration, an
// empty listing, one campaign creation and the resulting stats.
func TestRegisterListCreateStats(t *testing.T) {
	env := newTestEnv(t)

	env.users.EXPECT().FindByEmail(mock.Anything, "a@x.com").Return(nil, nil)
	env.users.EXPECT().Create(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, u domain.NewUser) (*domain.User, error) {
			return &domain.User{ID: 1, Email: u.Email, Name: u.Name, PasswordHash: u.PasswordHash}, nil
		})

	rec := env.do(t, http.MethodPost, "/auth/register", "",
		map[string]any{"email": "a@x.com", "password": "secret1", "name": "A"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	data := decodeBody(t, rec)["data"].(map[string]any)
	tok := data["token"].(string)
	require.NotEmpty(t, tok)
	assert.Equal(t, map[string]any{"id": float64(1), "email": "a@x.com", "name": "A"}, data["user"])

	env.campaigns.EXPECT().FindAll(mock.Anything, int64(1)).Return([]domain.Campaign{}, nil)
	rec = env.do(t, http.MethodGet, "/campaigns", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":[]}`, rec.Body.String())

	env.campaigns.EXPECT().Create(mock.Anything, int64(1), mock.Anything).
		RunAndReturn(func(_ context.Context, userID int64, c domain.NewCampaign) (*domain.Campaign, error) {
			now := time.Now().UTC()
			return &domain.Campaign{
				ID: 10, UserID: userID, Name: c.Name, Budget: c.Budget, Spent: decimal.Zero,
				StartDate: c.StartDate, EndDate: c.EndDate, Status: c.Status,
				CreatedAt: now, UpdatedAt: now,
			}, nil
		})
	rec = env.do(t, http.MethodPost, "/campaigns", tok, map[string]any{
		"name": "Launch", "budget": 100,
		"startDate": "2024-01-01T00:00:00Z", "endDate": "2024-02-01T00:00:00Z",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeBody(t, rec)["data"].(map[string]any)
	assert.Equal(t, "draft", created["status"])
	assert.Equal(t, float64(0), created["spent"])
	assert.Equal(t, float64(100), created["budget"])
	assert.Equal(t, "Launch", created["name"])
	assert.Equal(t, "2024-01-01T00:00:00Z", created["startDate"])
	assert.NotContains(t, created, "description")

	env.campaigns.EXPECT().GetStats(mock.Anything, int64(1)).Return(&domain.CampaignStats{
		TotalCampaigns: 1,
		TotalBudget:    decimal.NewFromInt(100),
	}, nil)
	rec = env.do(t, http.MethodGet, "/campaigns/stats", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{
		"total_campaigns":1,"total_budget":100,"total_spent":0,
		"total_impressions":0,"total_clicks":0,"total_conversions":0}}`, rec.Body.String())
}

func TestStatsWithoutCampaignsAreZero(t *testing.T) {
	env := newTestEnv(t)

	env.campaigns.EXPECT().GetStats(mock.Anything, int64(2)).Return(&domain.CampaignStats{}, nil)

	rec := env.do(t, http.MethodGet, "/api/campaigns/stats", env.tokenFor(t, 2), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{
		"total_campaigns":0,"total_budget":0,"total_spent":0,
		"total_impressions":0,"total_clicks":0,"total_conversions":0}}`, rec.Body.String())
}

func TestLoginWrongPasswordIssuesNoToken(t *testing.T) {
	env := newTestEnv(t)

	hash, err := env.hasher.Hash("secret1")
	require.NoError(t, err)
	env.users.EXPECT().FindByEmail(mock.Anything, "a@x.com").
		Return(&domain.User{ID: 1, Email: "a@x.com", Name: "A", PasswordHash: hash}, nil)

	rec := env.do(t, http.MethodPost, "/auth/login", "", map[string]any{"email": "a@x.com", "password": "nope"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid credentials"}`, rec.Body.String())
}

func TestLoginSucceeds(t *testing.T) {
	env := newTestEnv(t)

	hash, err := env.hasher.Hash("secret1")
	require.NoError(t, err)
	env.users.EXPECT().FindByEmail(mock.Anything, "a@x.com").
		Return(&domain.User{ID: 1, Email: "a@x.com", Name: "A", PasswordHash: hash}, nil)

	rec := env.do(t, http.MethodPost, "/auth/login", "", map[string]any{"email": "a@x.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)["data"].(map[string]any)
	id, err := env.tokens.Validate(data["token"].(string))
	require.NoError(t, err)
	assert.Equal(t, int64(1), id.UserID)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)

	env.users.EXPECT().FindByEmail(mock.Anything, "a@x.com").Return(&domain.User{ID: 1}, nil)

	rec := env.do(t, http.MethodPost, "/auth/register", "",
		map[string]any{"email": "a@x.com", "password": "secret1", "name": "A"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Email already registered"}`, rec.Body.String())
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/auth/register", "",
		map[string]any{"email": "not-an-email", "password": "123", "name": ""})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "Validation error", body["error"])
	assert.ElementsMatch(t, []any{
		map[string]any{"field": "email", "message": "Invalid email address"},
		map[string]any{"field": "password", "message": "Password must be at least 6 characters"},
		map[string]any{"field": "name", "message": "Name is required"},
	}, body["details"])
}

func TestAuthGate(t *testing.T) {
	env := newTestEnv(t)
	expired := token.NewService("test-secret", time.Hour,
		token.WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) }))
	old, err := expired.Issue(1, "a@x.com")
	require.NoError(t, err)

	cases := map[string]string{
		"missing":   "",
		"malformed": "Token abc",
		"empty":     "Bearer ",
		"garbage":   "Bearer abc.def.ghi",
		"expired":   "Bearer " + old,
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/campaigns", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()
			env.router.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

func TestMe(t *testing.T) {
	env := newTestEnv(t)

	env.users.EXPECT().FindByID(mock.Anything, int64(3)).
		Return(&domain.User{ID: 3, Email: "c@x.com", Name: "C", PasswordHash: "h"}, nil)

	rec := env.do(t, http.MethodGet, "/auth/me", env.tokenFor(t, 3), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"id":3,"email":"c@x.com","name":"C"}}`, rec.Body.String())
}

// TestCrossTenantIsolation checks that another user's campaign behaves as
// if it did not exist.
func TestCrossTenantIsolation(t *testing.T) {
	env := newTestEnv(t)
	tokB := env.tokenFor(t, 2)

	env.campaigns.EXPECT().FindAll(mock.Anything, int64(2)).Return([]domain.Campaign{}, nil)
	env.campaigns.EXPECT().FindByID(mock.Anything, int64(10), int64(2)).Return(nil, nil)
	env.campaigns.EXPECT().Update(mock.Anything, int64(10), int64(2), mock.Anything).Return(nil, nil)
	env.campaigns.EXPECT().Delete(mock.Anything, int64(10), int64(2)).Return(false, nil)

	rec := env.do(t, http.MethodGet, "/campaigns", tokB, nil)
	assert.JSONEq(t, `{"data":[]}`, rec.Body.String())

	rec = env.do(t, http.MethodGet, "/campaigns/10", tokB, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Campaign not found"}`, rec.Body.String())

	rec = env.do(t, http.MethodPut, "/campaigns/10", tokB, map[string]any{"name": "Hijack"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodDelete, "/campaigns/10", tokB, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteCampaign(t *testing.T) {
	env := newTestEnv(t)
	tok := env.tokenFor(t, 1)

	env.campaigns.EXPECT().Delete(mock.Anything, int64(10), int64(1)).Return(true, nil)
	env.campaigns.EXPECT().Delete(mock.Anything, int64(999), int64(1)).Return(false, nil)

	rec := env.do(t, http.MethodDelete, "/campaigns/10", tok, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = env.do(t, http.MethodDelete, "/campaigns/999", tok, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodDelete, "/campaigns/abc", tok, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateCampaignPassesOnlySuppliedFields(t *testing.T) {
	env := newTestEnv(t)
	tok := env.tokenFor(t, 1)

	env.campaigns.EXPECT().
		Update(mock.Anything, int64(10), int64(1), mock.MatchedBy(func(p domain.CampaignPatch) bool {
			return p.Status != nil && *p.Status == domain.StatusActive &&
				p.Name == nil && p.Budget == nil && p.StartDate == nil &&
				p.EndDate == nil && p.Description == nil && p.TargetAudience == nil
		})).
		Return(&domain.Campaign{ID: 10, UserID: 1, Name: "Launch", Status: domain.StatusActive}, nil)

	rec := env.do(t, http.MethodPut, "/campaigns/10", tok, map[string]any{"status": "active"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "active", decodeBody(t, rec)["data"].(map[string]any)["status"])
}

func TestUpdateCampaignEmptyBody(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPut, "/campaigns/10", env.tokenFor(t, 1), map[string]any{})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"No fields to update"}`, rec.Body.String())
}

func TestCreateCampaignValidation(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/campaigns", env.tokenFor(t, 1), map[string]any{
		"name": "", "budget": -5, "startDate": "yesterday", "status": "archived",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeBody(t, rec)
	assert.ElementsMatch(t, []any{
		map[string]any{"field": "name", "message": "Campaign name is required"},
		map[string]any{"field": "budget", "message": "Budget must be positive"},
		map[string]any{"field": "startDate", "message": "Invalid datetime"},
		map[string]any{"field": "endDate", "message": "Required"},
		map[string]any{"field": "status", "message": "Invalid enum value. Expected 'draft' | 'active' | 'paused' | 'completed', received 'archived'"},
	}, body["details"])
}

func TestCreateCampaignTypeMismatch(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/campaigns", env.tokenFor(t, 1), `{"name": 5}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Expected string, received number")

	rec = env.do(t, http.MethodPost, "/campaigns", env.tokenFor(t, 1), `{not json`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid JSON body"}`, rec.Body.String())
}

func TestCreateCampaignBudgetMustBeNumber(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/campaigns", env.tokenFor(t, 1),
		`{"name":"Launch","budget":"100","startDate":"2024-01-01T00:00:00Z","endDate":"2024-02-01T00:00:00Z"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Validation error","details":[{"field":"budget","message":"Expected number, received string"}]}`,
		rec.Body.String())
}

func TestCreateCampaignBudgetOutOfColumnRange(t *testing.T) {
	env := newTestEnv(t)

	for body, msg := range map[string]string{
		`{"name":"Launch","budget":0.001,"startDate":"2024-01-01T00:00:00Z","endDate":"2024-02-01T00:00:00Z"}`: "Budget must have at most 2 decimal places",
		`{"name":"Launch","budget":1e13,"startDate":"2024-01-01T00:00:00Z","endDate":"2024-02-01T00:00:00Z"}`:  "Budget must not exceed 9999999999.99",
	} {
		rec := env.do(t, http.MethodPost, "/campaigns", env.tokenFor(t, 1), body)
		require.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.JSONEq(t, `{"error":"Validation error","details":[{"field":"budget","message":"`+msg+`"}]}`, rec.Body.String())
	}

	rec := env.do(t, http.MethodPut, "/campaigns/10", env.tokenFor(t, 1), `{"endDate":"2024-02-01T00:00:00+02:00"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Validation error","details":[{"field":"endDate","message":"Invalid datetime"}]}`, rec.Body.String())
}

func TestStoreFailureIsInternalError(t *testing.T) {
	env := newTestEnv(t)

	env.campaigns.EXPECT().FindAll(mock.Anything, int64(1)).Return(nil, errors.New("connection reset"))

	rec := env.do(t, http.MethodGet, "/campaigns", env.tokenFor(t, 1), nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, rec.Body.String())
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealth(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens := token.NewService("s", time.Hour)

	up := NewHandler(nil, nil, tokens, pingerFunc(func(context.Context) error { return nil }), logger)
	rec := httptest.NewRecorder()
	up.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	down := NewHandler(nil, nil, tokens, pingerFunc(func(context.Context) error { return errors.New("down") }), logger)
	rec = httptest.NewRecorder()
	down.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
