package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaguar8340/crm-KS/internal/config"
	"github.com/jaguar8340/crm-KS/internal/model"
	"github.com/jaguar8340/crm-KS/internal/utils"
)

func testConfig() config.Config {
	return config.Config{
		SecretKey:    "handler-test-secret",
		AccessTTLMin: 60,
		BcryptCost:   4,
	}
}

func seedUser(t *testing.T, users *fakeUserStore, username, password, role string) *model.User {
	t.Helper()
	hash, err := utils.HashPassword(password, 4)
	require.NoError(t, err)
	u := &model.User{
		ID:           "id-" + username,
		Username:     username,
		Name:         "Test " + username,
		Role:         role,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, users.Create(t.Context(), u))
	return u
}

func TestLoginSuccess(t *testing.T) {
	users := newFakeUserStore()
	seedUser(t, users, "admin", "admin123", model.RoleAdmin)
	h := NewAuthHandler(testConfig(), users)

	c, rec := newTestContext(http.MethodPost, "/api/auth/login",
		`{"username":"admin","password":"admin123"}`)
	require.NoError(t, h.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		AccessToken string      `json:"access_token"`
		TokenType   string      `json:"token_type"`
		User        *model.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, "id-admin", resp.User.ID)

	// The issued token must verify against the same secret and name the
	// logged-in user as subject.
	sub, err := utils.ParseAccessToken(testConfig().SecretKey, resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "id-admin", sub)
}

func TestLoginWrongPassword(t *testing.T) {
	users := newFakeUserStore()
	seedUser(t, users, "admin", "admin123", model.RoleAdmin)
	h := NewAuthHandler(testConfig(), users)

	c, rec := newTestContext(http.MethodPost, "/api/auth/login",
		`{"username":"admin","password":"wrong"}`)
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "incorrect username or password")
}

func TestLoginUnknownUserSameError(t *testing.T) {
	h := NewAuthHandler(testConfig(), newFakeUserStore())

	c, rec := newTestContext(http.MethodPost, "/api/auth/login",
		`{"username":"nobody","password":"x"}`)
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	// Identical message for unknown user and wrong password.
	assert.Contains(t, rec.Body.String(), "incorrect username or password")
}

func TestLoginMissingFields(t *testing.T) {
	h := NewAuthHandler(testConfig(), newFakeUserStore())

	c, rec := newTestContext(http.MethodPost, "/api/auth/login", `{"username":"  "}`)
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginResponseHidesPasswordHash(t *testing.T) {
	users := newFakeUserStore()
	seedUser(t, users, "admin", "admin123", model.RoleAdmin)
	h := NewAuthHandler(testConfig(), users)

	c, rec := newTestContext(http.MethodPost, "/api/auth/login",
		`{"username":"admin","password":"admin123"}`)
	require.NoError(t, h.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "$2")
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestCreateUserDefaultsRoleAndRejectsDuplicates(t *testing.T) {
	users := newFakeUserStore()
	h := NewUserHandler(testConfig(), users)

	c, rec := newTestContext(http.MethodPost, "/api/users",
		`{"username":"vreni","name":"Vreni Meier","password":"pw","role":"superuser"}`)
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var created model.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, model.RoleUser, created.Role)

	stored, err := users.GetByUsername(t.Context(), "vreni")
	require.NoError(t, err)
	assert.True(t, utils.VerifyPassword(stored.PasswordHash, "pw"))

	c, rec = newTestContext(http.MethodPost, "/api/users",
		`{"username":"vreni","name":"Other","password":"pw2"}`)
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "username already exists")
}

func TestDeleteUserNotFound(t *testing.T) {
	h := NewUserHandler(testConfig(), newFakeUserStore())

	c, rec := newTestContext(http.MethodDelete, "/api/users/ghost", "")
	c.SetParamNames("id")
	c.SetParamValues("ghost")
	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
