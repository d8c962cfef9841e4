package repositories

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"careconnect.backend/internal/domain/entities"
	"careconnect.backend/internal/infrastructure/models"
	"careconnect.backend/pkg/utils"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "open sqlite")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.AllModels()...), "migrate")
	return db
}

func seedClient(t *testing.T, db *gorm.DB, email string) *entities.Client {
	t.Helper()
	now := time.Now().UTC()
	c := &entities.Client{
		ID:        utils.GenerateUUIDv7(),
		UserID:    utils.GenerateUUIDv7(),
		Name:      entities.NameFromEmail(email),
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, NewClientRepository(db).Create(context.Background(), c))
	return c
}

func seedProvider(t *testing.T, db *gorm.DB, email string, mutate func(p *entities.Provider)) *entities.Provider {
	t.Helper()
	now := time.Now().UTC()
	p := &entities.Provider{
		ID:                 utils.GenerateUUIDv7(),
		UserID:             utils.GenerateUUIDv7(),
		Name:               "Nurse " + email,
		Email:              email,
		Specialty:          "elderly-care",
		Skills:             []string{"cpr"},
		HourlyRate:         25.5,
		VerificationStatus: entities.VerificationStatusPending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if mutate != nil {
		mutate(p)
	}
	require.NoError(t, NewProviderRepository(db).Create(context.Background(), p))
	return p
}
