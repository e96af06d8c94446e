package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/angelmondragon/pizzaria-backend/pkg/config"
	"github.com/angelmondragon/pizzaria-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/pizzaria-backend/pkg/errors"
	"github.com/angelmondragon/pizzaria-backend/pkg/security"
)

type gormTxRunner struct {
	db *gorm.DB
}

func (g gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return g.db.WithContext(ctx).Transaction(fn)
}

func setupAuthTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	// a second pool connection would see its own empty memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	usersTable := `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  last_login_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(usersTable).Error)
	return db
}

func newRegisterService(t *testing.T, db *gorm.DB) RegisterService {
	t.Helper()
	svc, err := NewRegisterService(RegisterServiceParams{
		DB:             gormTxRunner{db: db},
		PasswordConfig: config.PasswordConfig{MinLength: 6},
	})
	require.NoError(t, err)
	return svc
}

func TestRegisterCreatesUser(t *testing.T) {
	db := setupAuthTestDB(t)
	svc := newRegisterService(t, db)

	dto, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Mario Rossi",
		Email:    "Mario@Example.com",
		Password: "secret-password",
	})
	require.NoError(t, err)
	assert.Equal(t, "mario@example.com", dto.Email)
	assert.Equal(t, "Mario Rossi", dto.Name)

	var stored models.User
	require.NoError(t, db.First(&stored, "email = ?", "mario@example.com").Error)
	assert.NotEqual(t, "secret-password", stored.PasswordHash)

	valid, err := security.VerifyPassword("secret-password", stored.PasswordHash)
	require.NoError(t, err)
	assert.True(t, valid)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	db := setupAuthTestDB(t)
	svc := newRegisterService(t, db)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Mario Rossi",
		Email:    "mario@example.com",
		Password: "12345",
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestRegisterRejectsMissingFields(t *testing.T) {
	db := setupAuthTestDB(t)
	svc := newRegisterService(t, db)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "mario@example.com",
		Password: "secret-password",
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	_, err = svc.Register(context.Background(), RegisterRequest{
		Name:     "Mario Rossi",
		Password: "secret-password",
	})
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	db := setupAuthTestDB(t)
	svc := newRegisterService(t, db)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Mario Rossi",
		Email:    "mario@example.com",
		Password: "secret-password",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterRequest{
		Name:     "Impostor",
		Email:    "MARIO@example.com",
		Password: "other-password",
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
}
