package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fidomax07/vetting-api/internal/auth"
	"github.com/fidomax07/vetting-api/internal/dto"
	"github.com/fidomax07/vetting-api/internal/models"
	"github.com/fidomax07/vetting-api/internal/repository"
	"github.com/fidomax07/vetting-api/internal/services"
	"github.com/fidomax07/vetting-api/internal/testutil"
	"github.com/fidomax07/vetting-api/internal/validation"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type apiTestEnv struct {
	db     *gorm.DB
	router *gin.Engine
	signer *auth.JWTSigner
}

func setupAPITestEnv(t *testing.T) apiTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	users := repository.NewUserRepository(db)
	likes := repository.NewLikeRepository(db)
	signer := auth.NewJWTSigner("test-secret", 0)

	userService, err := services.NewUserService(users, likes, auth.NewBcryptHasher(bcrypt.MinCost), signer, validation.New())
	require.NoError(t, err)

	log := logrus.New()
	log.SetOutput(&bytes.Buffer{})

	router := NewRouter(RouterDeps{
		UserService: userService,
		Guard:       services.NewAuthGuard(users, signer, userService),
		Logger:      log,
	})

	return apiTestEnv{db: db, router: router, signer: signer}
}

func (env apiTestEnv) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

type authResponse struct {
	Data dto.AuthDTO `json:"data"`
}

type errorResponse struct {
	Error  string              `json:"error"`
	Errors map[string][]string `json:"errors"`
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func (env apiTestEnv) signup(t *testing.T, username string) dto.AuthDTO {
	t.Helper()
	w := env.do(t, http.MethodPost, "/signup", map[string]string{
		"name":     "Name " + username,
		"username": username,
		"password": "password123",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[authResponse](t, w).Data
}

func TestAuthHandler_Signup(t *testing.T) {
	env := setupAPITestEnv(t)

	res := env.signup(t, "NewUser")
	assert.Equal(t, "newuser", res.User.Username)
	assert.Equal(t, "Name NewUser", res.User.Name)
	assert.NotEmpty(t, res.User.CreatedAt)

	userID, err := env.signer.Verify(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, userID)

	var stored models.User
	require.NoError(t, env.db.First(&stored, res.User.ID).Error)
	assert.NotEqual(t, "password123", stored.Password)
}

func TestAuthHandler_SignupValidation(t *testing.T) {
	env := setupAPITestEnv(t)
	env.signup(t, "taken")

	tests := []struct {
		name  string
		body  any
		field string
		msg   string
	}{
		{name: "missing username", body: map[string]string{"password": "password123"}, field: "username", msg: "The username field is required."},
		{name: "short password", body: map[string]string{"username": "bob", "password": "abc"}, field: "password", msg: "The password must be at least 7 characters."},
		{name: "taken username", body: map[string]string{"username": "Taken", "password": "password123"}, field: "username", msg: "The username has already been taken."},
		{name: "malformed body", body: "not an object", field: "body", msg: "The request body is invalid."},
		{name: "password over 72 bytes", body: map[string]string{"username": "longpw", "password": strings.Repeat("a", 80)}, field: "password", msg: "The password may not be greater than 72 bytes."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/signup", tt.body, "")
			require.Equal(t, http.StatusUnprocessableEntity, w.Code)
			res := decode[errorResponse](t, w)
			assert.Equal(t, []string{tt.msg}, res.Errors[tt.field])
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupAPITestEnv(t)
	first := env.signup(t, "existing")

	w := env.do(t, http.MethodPost, "/login", map[string]string{
		"username": "existing",
		"password": "password123",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)
	res := decode[authResponse](t, w).Data
	assert.Equal(t, "existing", res.User.Username)
	assert.NotEqual(t, first.Token, res.Token)

	// the new token is the second entry of the user's sessions
	var tokens []models.UserToken
	require.NoError(t, env.db.Where("user_id = ?", res.User.ID).Order("id").Find(&tokens).Error)
	require.Len(t, tokens, 2)
	assert.Equal(t, res.Token, tokens[1].Token)

	var stored models.User
	require.NoError(t, env.db.First(&stored, res.User.ID).Error)
	assert.Equal(t, dto.FormatTime(stored.UpdatedAt), res.User.UpdatedAt)
}

func TestAuthHandler_LoginFailures(t *testing.T) {
	env := setupAPITestEnv(t)
	env.signup(t, "existing")

	unknown := env.do(t, http.MethodPost, "/login", map[string]string{"username": "ghost", "password": "password123"}, "")
	wrong := env.do(t, http.MethodPost, "/login", map[string]string{"username": "existing", "password": "wrong-password"}, "")

	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.Equal(t, unknown.Body.String(), wrong.Body.String())

	missing := env.do(t, http.MethodPost, "/login", map[string]string{}, "")
	assert.Equal(t, http.StatusUnprocessableEntity, missing.Code)
}

func TestAuthHandler_Logout(t *testing.T) {
	env := setupAPITestEnv(t)
	first := env.signup(t, "alice")

	w := env.do(t, http.MethodPost, "/login", map[string]string{"username": "alice", "password": "password123"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	second := decode[authResponse](t, w).Data

	w = env.do(t, http.MethodPost, "/logout", nil, first.Token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":{"message":"Successfully logged out."}}`, w.Body.String())

	assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodGet, "/me", nil, first.Token).Code)
	assert.Equal(t, http.StatusOK, env.do(t, http.MethodGet, "/me", nil, second.Token).Code)

	assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodPost, "/logout", nil, "").Code)
}

func TestAuthHandler_LogoutAllDevices(t *testing.T) {
	env := setupAPITestEnv(t)
	first := env.signup(t, "alice")

	w := env.do(t, http.MethodPost, "/login", map[string]string{"username": "alice", "password": "password123"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	second := decode[authResponse](t, w).Data

	w = env.do(t, http.MethodPost, "/logout?all_devices=true", nil, second.Token)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodGet, "/me", nil, first.Token).Code)
	assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodGet, "/me", nil, second.Token).Code)
}

func TestAuthHandler_Profile(t *testing.T) {
	env := setupAPITestEnv(t)
	alice := env.signup(t, "alice")

	w := env.do(t, http.MethodGet, "/me", nil, alice.Token)
	require.Equal(t, http.StatusOK, w.Code)

	var res map[string]map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	data := res["data"]
	assert.Equal(t, "alice", data["username"])
	assert.Equal(t, []any{}, data["likes"])
	assert.Equal(t, []any{}, data["liked"])
	assert.NotContains(t, data, "password")
	assert.NotContains(t, data, "tokens")

	assert.Equal(t, http.StatusUnauthorized, env.do(t, http.MethodGet, "/me", nil, "").Code)
}

func TestAuthHandler_UpdatePassword(t *testing.T) {
	env := setupAPITestEnv(t)
	alice := env.signup(t, "alice")

	w := env.do(t, http.MethodPut, "/me/update-password", map[string]string{}, alice.Token)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	res := decode[errorResponse](t, w)
	assert.Contains(t, res.Errors, "password_old")
	assert.Contains(t, res.Errors, "password")

	w = env.do(t, http.MethodPut, "/me/update-password", map[string]string{
		"password_old":          "password123",
		"password":              "newpassword",
		"password_confirmation": "different",
	}, alice.Token)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, []string{"The password confirmation does not match."}, decode[errorResponse](t, w).Errors["password"])

	w = env.do(t, http.MethodPut, "/me/update-password", map[string]string{
		"password_old": "password123",
		"password":     "newpassword",
	}, alice.Token)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, []string{"The password confirmation does not match."}, decode[errorResponse](t, w).Errors["password"])

	long := strings.Repeat("a", 80)
	w = env.do(t, http.MethodPut, "/me/update-password", map[string]string{
		"password_old":          "password123",
		"password":              long,
		"password_confirmation": long,
	}, alice.Token)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, []string{"The password may not be greater than 72 bytes."}, decode[errorResponse](t, w).Errors["password"])

	w = env.do(t, http.MethodPut, "/me/update-password", map[string]string{
		"password_old":          "wrong-old",
		"password":              "newpassword",
		"password_confirmation": "newpassword",
	}, alice.Token)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Old password does not match.", decode[errorResponse](t, w).Error)

	w = env.do(t, http.MethodPut, "/me/update-password", map[string]string{
		"password_old":          "password123",
		"password":              "newpassword",
		"password_confirmation": "newpassword",
	}, alice.Token)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodPost, "/login", map[string]string{"username": "alice", "password": "password123"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = env.do(t, http.MethodPost, "/login", map[string]string{"username": "alice", "password": "newpassword"}, "")
	assert.Equal(t, http.StatusOK, w.Code)
}
