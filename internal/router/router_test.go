package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/damirpristav/dogs-app-backend/internal/config"
	"github.com/damirpristav/dogs-app-backend/internal/database"
	"github.com/damirpristav/dogs-app-backend/internal/mailer"
	"github.com/damirpristav/dogs-app-backend/internal/models"
	"github.com/damirpristav/dogs-app-backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type capturingMailer struct {
	mu   sync.Mutex
	sent []mailer.Message
}

func (m *capturingMailer) Send(msg mailer.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return nil
}

func (m *capturingMailer) last(t *testing.T) mailer.Message {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.sent)
	return m.sent[len(m.sent)-1]
}

type testApp struct {
	router *gin.Engine
	db     *gorm.DB
	mail   *capturingMailer
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Init(config.DatabaseConfig{
		Path: filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	cfg := &config.Config{
		Server:   config.ServerConfig{Mode: gin.TestMode},
		JWT:      config.JWTConfig{Secret: "test-secret", ExpireSeconds: 3600},
		Security: config.SecurityConfig{BcryptCost: bcrypt.MinCost},
		Mail:     config.MailConfig{FrontendURL: "http://localhost:3000"},
	}

	m := &capturingMailer{}
	return &testApp{router: SetupRouter(cfg, db, m), db: db, mail: m}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Results int             `json:"results"`
	Data    json.RawMessage `json:"data"`
}

func (a *testApp) request(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func (a *testApp) seedAdmin(t *testing.T) {
	t.Helper()
	hash, err := util.HashPassword("AdminPass123", bcrypt.MinCost)
	require.NoError(t, err)
	admin := &models.User{
		FirstName:    "Site",
		LastName:     "Admin",
		Email:        "admin@example.com",
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		Active:       true,
	}
	require.NoError(t, a.db.Create(admin).Error)
}

func (a *testApp) seedAnimal(t *testing.T, name string) *models.Animal {
	t.Helper()
	animal := &models.Animal{
		Name:           name,
		Breed:          "Labrador",
		Active:         true,
		AdoptionStatus: models.AdoptionStatusNone,
	}
	require.NoError(t, a.db.Create(animal).Error)
	return animal
}

func (a *testApp) login(t *testing.T, email, password string) string {
	t.Helper()
	w, env := a.request(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, env.Message)

	header := w.Header().Get("X-Access-Token")
	require.True(t, strings.HasPrefix(header, "Bearer "))
	return strings.TrimPrefix(header, "Bearer ")
}

func TestAdoptionEndToEnd(t *testing.T) {
	app := newTestApp(t)
	app.seedAdmin(t)
	animal := app.seedAnimal(t, "Rex")

	// register
	w, env := app.request(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"firstName":       "John",
		"lastName":        "Doe",
		"email":           "john@example.com",
		"password":        "Password123",
		"confirmPassword": "Password123",
	})
	require.Equal(t, http.StatusOK, w.Code, env.Message)
	require.True(t, env.Success)

	// login before activation must fail
	w, _ = app.request(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    "john@example.com",
		"password": "Password123",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// activate with the token delivered out of band
	msg := app.mail.last(t)
	require.Equal(t, mailer.TemplateActivateAccount, msg.Template)
	rawToken := msg.URL[strings.LastIndex(msg.URL, "/")+1:]

	w, env = app.request(t, http.MethodGet, "/api/v1/auth/activateAccount/"+rawToken, "", nil)
	require.Equal(t, http.StatusOK, w.Code, env.Message)

	userToken := app.login(t, "john@example.com", "Password123")

	// unauthenticated listing is rejected
	w, _ = app.request(t, http.MethodGet, "/api/v1/adoptions", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// create the adoption request
	w, env = app.request(t, http.MethodPost, fmt.Sprintf("/api/v1/adoptions/dog/%d", animal.ID), userToken, nil)
	require.Equal(t, http.StatusOK, w.Code, env.Message)

	var adoption models.Adoption
	require.NoError(t, json.Unmarshal(env.Data, &adoption))
	assert.Equal(t, models.ProgressInProgress, adoption.Progress)

	// the animal is now unavailable
	w, env = app.request(t, http.MethodGet, fmt.Sprintf("/api/v1/dogs/%d", animal.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stored models.Animal
	require.NoError(t, json.Unmarshal(env.Data, &stored))
	assert.False(t, stored.Active)
	assert.Equal(t, models.AdoptionStatusInProgress, stored.AdoptionStatus)

	// a second request for the same animal conflicts
	w, _ = app.request(t, http.MethodPost, fmt.Sprintf("/api/v1/adoptions/dog/%d", animal.ID), userToken, nil)
	require.Equal(t, http.StatusConflict, w.Code)

	// regular users cannot advance the request
	w, _ = app.request(t, http.MethodPatch, fmt.Sprintf("/api/v1/adoptions/%d", adoption.ID), userToken, gin.H{
		"progress": models.ProgressCompleted,
	})
	require.Equal(t, http.StatusForbidden, w.Code)

	// the admin completes the adoption
	adminToken := app.login(t, "admin@example.com", "AdminPass123")
	w, env = app.request(t, http.MethodPatch, fmt.Sprintf("/api/v1/adoptions/%d", adoption.ID), adminToken, gin.H{
		"progress": models.ProgressCompleted,
	})
	require.Equal(t, http.StatusOK, w.Code, env.Message)

	w, env = app.request(t, http.MethodGet, fmt.Sprintf("/api/v1/dogs/%d", animal.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &stored))
	assert.False(t, stored.Active)
	assert.Equal(t, models.AdoptionStatusAdopted, stored.AdoptionStatus)

	// the requester has exactly one unseen notification
	w, env = app.request(t, http.MethodGet, "/api/v1/notifications", userToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var notifications []models.Notification
	require.NoError(t, json.Unmarshal(env.Data, &notifications))
	require.Len(t, notifications, 1)
	assert.Equal(t, "Adoption Completed", notifications[0].Subject)
	assert.False(t, notifications[0].Seen)
}

func TestListAdoptions_RoleScoping(t *testing.T) {
	app := newTestApp(t)
	app.seedAdmin(t)
	rex := app.seedAnimal(t, "Rex")
	luna := app.seedAnimal(t, "Luna")

	for i, animal := range []*models.Animal{rex, luna} {
		email := fmt.Sprintf("user%d@example.com", i)
		hash, err := util.HashPassword("Password123", bcrypt.MinCost)
		require.NoError(t, err)
		user := &models.User{
			FirstName: "User", LastName: fmt.Sprint(i),
			Email: email, PasswordHash: hash, Role: models.RoleUser, Active: true,
		}
		require.NoError(t, app.db.Create(user).Error)

		token := app.login(t, email, "Password123")
		w, env := app.request(t, http.MethodPost, fmt.Sprintf("/api/v1/adoptions/dog/%d", animal.ID), token, nil)
		require.Equal(t, http.StatusOK, w.Code, env.Message)
	}

	// a user sees only their own request
	token := app.login(t, "user0@example.com", "Password123")
	w, env := app.request(t, http.MethodGet, "/api/v1/adoptions", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, env.Results)

	// the admin sees everything
	adminToken := app.login(t, "admin@example.com", "AdminPass123")
	w, env = app.request(t, http.MethodGet, "/api/v1/adoptions", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 2, env.Results)
}

func TestCookieSession(t *testing.T) {
	app := newTestApp(t)
	app.seedAdmin(t)

	// login and pick up the session cookie
	payload, err := json.Marshal(gin.H{"email": "admin@example.com", "password": "AdminPass123"})
	require.NoError(t, err)
	loginReq := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(payload))
	loginReq.Header.Set("Content-Type", "application/json")
	loginW := httptest.NewRecorder()
	app.router.ServeHTTP(loginW, loginReq)
	require.Equal(t, http.StatusOK, loginW.Code)

	var tokenCookie *http.Cookie
	for _, c := range loginW.Result().Cookies() {
		if c.Name == "token" {
			tokenCookie = c
		}
	}
	require.NotNil(t, tokenCookie)

	// the cookie alone authenticates the request
	meReq := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	meReq.AddCookie(tokenCookie)
	meW := httptest.NewRecorder()
	app.router.ServeHTTP(meW, meReq)
	require.Equal(t, http.StatusOK, meW.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(meW.Body.Bytes(), &env))
	var user models.User
	require.NoError(t, json.Unmarshal(env.Data, &user))
	assert.Equal(t, "admin@example.com", user.Email)
}

func TestPasswordResetFlow(t *testing.T) {
	app := newTestApp(t)
	app.seedAdmin(t)

	w, env := app.request(t, http.MethodPost, "/api/v1/auth/forgotPassword", "", gin.H{
		"email": "admin@example.com",
	})
	require.Equal(t, http.StatusOK, w.Code, env.Message)

	msg := app.mail.last(t)
	require.Equal(t, mailer.TemplateResetPassword, msg.Template)
	rawToken := msg.URL[strings.LastIndex(msg.URL, "/")+1:]

	w, env = app.request(t, http.MethodPut, "/api/v1/auth/resetPassword/"+rawToken, "", gin.H{
		"password":        "BrandNewPass1",
		"confirmPassword": "BrandNewPass1",
	})
	require.Equal(t, http.StatusOK, w.Code, env.Message)

	// old password is gone, new one works
	w, _ = app.request(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    "admin@example.com",
		"password": "AdminPass123",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	app.login(t, "admin@example.com", "BrandNewPass1")

	// the reset token is single use
	w, _ = app.request(t, http.MethodPut, "/api/v1/auth/resetPassword/"+rawToken, "", gin.H{
		"password":        "AnotherPass2",
		"confirmPassword": "AnotherPass2",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
