package services

import (
	"bytes"
	"mime/multipart"
	"testing"
	"time"

	"github.com/emrekaracan/jobboard-backend/internal/config"
	"github.com/emrekaracan/jobboard-backend/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Job{},
		&models.Application{},
		&models.ApplicationStatusHistory{},
	))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  time.Hour,
		JWTRefreshExpiry: 24 * time.Hour,
	}
}

func createUser(t *testing.T, db *gorm.DB, username, role string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		ID:        uuid.New(),
		Username:  username,
		Email:     username + "@example.com",
		Password:  string(hash),
		Role:      role,
		FirstName: "Test",
		LastName:  "User",
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createJob(t *testing.T, db *gorm.DB, title string, active bool, createdBy uuid.UUID) *models.Job {
	t.Helper()

	job := models.Job{
		ID:          uuid.New(),
		Title:       title,
		Company:     "Acme Corp",
		Location:    "Istanbul",
		Description: "A job posting for " + title,
		IsActive:    active,
		CreatedBy:   createdBy,
	}
	require.NoError(t, db.Create(&job).Error)
	return &job
}

// makeFileHeader builds a real multipart.FileHeader the same way Fiber's
// FormFile does, so upload validation sees what a handler would see.
func makeFileHeader(t *testing.T, filename string, size int) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("resume", filename)
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte("r"), size))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(body, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	files := form.File["resume"]
	require.Len(t, files, 1)
	return files[0]
}
