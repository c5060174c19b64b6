package service

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/damirpristav/dogs-app-backend/internal/config"
	"github.com/damirpristav/dogs-app-backend/internal/database"
	"github.com/damirpristav/dogs-app-backend/internal/mailer"
	"github.com/damirpristav/dogs-app-backend/internal/models"
	"github.com/damirpristav/dogs-app-backend/internal/util"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Init(config.DatabaseConfig{
		Path: filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

// fakeMailer records outbound messages and can be told to fail.
type fakeMailer struct {
	mu   sync.Mutex
	sent []mailer.Message
	fail bool
}

func (f *fakeMailer) Send(msg mailer.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("smtp: connection refused")
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeMailer) lastMessage(t *testing.T) mailer.Message {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.sent)
	return f.sent[len(f.sent)-1]
}

func newAuthService(db *gorm.DB, m mailer.Mailer) *AuthService {
	return &AuthService{
		DB:          db,
		Mailer:      m,
		JWTSecret:   "test-secret",
		TokenTTL:    time.Hour,
		BcryptCost:  bcrypt.MinCost,
		FrontendURL: "http://localhost:3000",
	}
}

func createUser(t *testing.T, db *gorm.DB, email, role string, active bool) *models.User {
	t.Helper()
	hash, err := util.HashPassword("Password123", bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		FirstName:    "Test",
		LastName:     "User",
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Active:       active,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createAnimal(t *testing.T, db *gorm.DB, name string) *models.Animal {
	t.Helper()
	animal := &models.Animal{
		Name:           name,
		Breed:          "Labrador",
		Gender:         "male",
		Age:            "2 years",
		Size:           "medium",
		Description:    "Friendly and playful.",
		Location:       "Zagreb",
		Active:         true,
		AdoptionStatus: models.AdoptionStatusNone,
	}
	require.NoError(t, db.Create(animal).Error)
	return animal
}

func requireKind(t *testing.T, err error, kind Kind) {
	t.Helper()
	var se *Error
	require.ErrorAs(t, err, &se)
	require.Equal(t, kind, se.Kind)
}
