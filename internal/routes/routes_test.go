package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/loadshare-sa/loadshare-backend/internal/config"
	"github.com/loadshare-sa/loadshare-backend/internal/dto"
	"github.com/loadshare-sa/loadshare-backend/internal/eskom"
	"github.com/loadshare-sa/loadshare-backend/internal/handlers"
	"github.com/loadshare-sa/loadshare-backend/internal/models"
	"github.com/loadshare-sa/loadshare-backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	app *fiber.App
	db  *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Business{}, &models.RefreshToken{}))

	cfg := &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 24 * time.Hour,
		EskomTimeout:     time.Second,
	}

	authService := services.NewAuthService(db, cfg)
	businessService := services.NewBusinessService(db, nil)
	verificationService := services.NewVerificationService(db, nil)

	app := fiber.New()
	Setup(app, cfg, db,
		handlers.NewAuthHandler(authService),
		handlers.NewBusinessHandler(businessService),
		handlers.NewAdminHandler(verificationService),
		handlers.NewEskomHandler(eskom.NewClient(cfg), businessService),
		handlers.NewUploadHandler(nil, authService),
		handlers.NewHealthHandler(db),
	)
	return &testEnv{app: app, db: db}
}

func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// registerUser creates an account through the public endpoint and returns
// the issued access token plus the user id.
func (e *testEnv) registerUser(t *testing.T, email string) dto.AuthResponse {
	t.Helper()

	resp := e.request(t, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Name:     "Test User",
		Email:    email,
		Password: "long-enough-pass",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decodeBody[dto.AuthResponse](t, resp)
}

func (e *testEnv) promoteToAdmin(t *testing.T, auth dto.AuthResponse) {
	t.Helper()
	require.NoError(t, e.db.Model(&models.User{}).
		Where("id = ?", auth.User.ID).
		Update("role", models.RoleAdmin).Error)
}

func validBusinessPayload() dto.RegisterBusinessRequest {
	return dto.RegisterBusinessRequest{
		Name:      "Backup Bites",
		Type:      "restaurant",
		Address:   "12 Rivonia Rd",
		AreaID:    "eskde-4-sandton-sandton",
		AreaName:  "Sandton, Johannesburg",
		PowerType: models.PowerTypeGenerator,
	}
}

func TestHealthEndpoint(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestVerifyEndpointRequiresToken(t *testing.T) {
	env := newTestEnv(t)

	// no token at all, even with a well-formed payload
	resp := env.request(t, http.MethodPatch, "/api/admin/businesses/verify", "", fiber.Map{
		"businessId": "00000000-0000-0000-0000-000000000001",
		"action":     "approve",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = env.request(t, http.MethodGet, "/api/admin/businesses/verify", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestVerifyEndpointRejectsNonAdmins(t *testing.T) {
	env := newTestEnv(t)
	customer := env.registerUser(t, "customer@example.com")

	// payload validity is irrelevant: authorization is checked first
	for _, payload := range []interface{}{
		fiber.Map{"businessId": "00000000-0000-0000-0000-000000000001", "action": "approve"},
		fiber.Map{"garbage": true},
	} {
		resp := env.request(t, http.MethodPatch, "/api/admin/businesses/verify", customer.AccessToken, payload)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)

		body := decodeBody[dto.ErrorResponse](t, resp)
		assert.True(t, body.Error)
	}
}

func TestBusinessRegistrationRequiresToken(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodPost, "/api/businesses/register", "", validBusinessPayload())
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRegistrationApprovalFlow(t *testing.T) {
	env := newTestEnv(t)
	owner := env.registerUser(t, "owner@example.com")
	admin := env.registerUser(t, "admin@example.com")
	env.promoteToAdmin(t, admin)

	// register: created pending, owner promoted
	resp := env.request(t, http.MethodPost, "/api/businesses/register", owner.AccessToken, validBusinessPayload())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody[dto.BusinessResponse](t, resp)
	assert.False(t, created.Verified)
	assert.True(t, created.Active)

	// pending businesses are hidden from the public directory
	resp = env.request(t, http.MethodGet, "/api/businesses", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	listing := decodeBody[dto.BusinessListResponse](t, resp)
	assert.Empty(t, listing.Businesses)

	// but visible to the owner
	resp = env.request(t, http.MethodGet, "/api/businesses/mine", owner.AccessToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	mine := decodeBody[dto.BusinessListResponse](t, resp)
	require.Len(t, mine.Businesses, 1)

	// and queued for review
	resp = env.request(t, http.MethodGet, "/api/admin/businesses/verify", admin.AccessToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	pending := decodeBody[dto.BusinessListResponse](t, resp)
	require.Len(t, pending.Businesses, 1)

	// approve
	resp = env.request(t, http.MethodPatch, "/api/admin/businesses/verify", admin.AccessToken, dto.ReviewBusinessRequest{
		BusinessID: created.ID,
		Action:     "approve",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	reviewed := decodeBody[dto.BusinessResponse](t, resp)
	assert.True(t, reviewed.Verified)

	// now listed publicly
	resp = env.request(t, http.MethodGet, "/api/businesses", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	listing = decodeBody[dto.BusinessListResponse](t, resp)
	require.Len(t, listing.Businesses, 1)
	assert.Equal(t, created.ID, listing.Businesses[0].ID)
}

func TestReviewRejectFlow(t *testing.T) {
	env := newTestEnv(t)
	owner := env.registerUser(t, "owner2@example.com")
	admin := env.registerUser(t, "admin2@example.com")
	env.promoteToAdmin(t, admin)

	resp := env.request(t, http.MethodPost, "/api/businesses/register", owner.AccessToken, validBusinessPayload())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody[dto.BusinessResponse](t, resp)

	resp = env.request(t, http.MethodPatch, "/api/admin/businesses/verify", admin.AccessToken, dto.ReviewBusinessRequest{
		BusinessID: created.ID,
		Action:     "reject",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	reviewed := decodeBody[dto.BusinessResponse](t, resp)
	assert.False(t, reviewed.Verified)
	assert.False(t, reviewed.Active)

	// rejected entries leave the review queue
	resp = env.request(t, http.MethodGet, "/api/admin/businesses/verify", admin.AccessToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	pending := decodeBody[dto.BusinessListResponse](t, resp)
	assert.Empty(t, pending.Businesses)
}

func TestSecondRegistrationConflicts(t *testing.T) {
	env := newTestEnv(t)
	owner := env.registerUser(t, "owner3@example.com")

	resp := env.request(t, http.MethodPost, "/api/businesses/register", owner.AccessToken, validBusinessPayload())
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	second := validBusinessPayload()
	second.Name = "Second Venture"
	resp = env.request(t, http.MethodPost, "/api/businesses/register", owner.AccessToken, second)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestRegisterBusinessStoreFailureIsInternal(t *testing.T) {
	env := newTestEnv(t)
	owner := env.registerUser(t, "owner4@example.com")

	require.NoError(t, env.db.Exec("DROP TABLE businesses").Error)

	resp := env.request(t, http.MethodPost, "/api/businesses/register", owner.AccessToken, validBusinessPayload())
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	body := decodeBody[dto.ErrorResponse](t, resp)
	assert.True(t, body.Error)
	assert.Equal(t, "Failed to register business", body.Message)
	assert.NotContains(t, body.Message, "no such table")
}

func TestRegisterUserStoreFailureIsInternal(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.db.Exec("DROP TABLE users").Error)

	resp := env.request(t, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{
		Name:     "Test User",
		Email:    "broken@example.com",
		Password: "long-enough-pass",
	})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	body := decodeBody[dto.ErrorResponse](t, resp)
	assert.Equal(t, "Internal server error", body.Message)
}

func TestEskomStatusServesFallback(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, http.MethodGet, "/api/eskom/status?areaId=eskde-4-sandton-sandton", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	status := decodeBody[eskom.StatusResult](t, resp)
	assert.Equal(t, eskom.SourceFallback, status.Source)
	assert.Equal(t, "Sandton, Johannesburg", status.Area)
	assert.Equal(t, 2, status.CurrentStage)
	assert.Equal(t, 3, status.NextStage)
}

func TestAvatarUploadUnavailableWithoutCloudinary(t *testing.T) {
	env := newTestEnv(t)
	user := env.registerUser(t, "avatar@example.com")

	resp := env.request(t, http.MethodPost, "/api/users/me/avatar", user.AccessToken, nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
