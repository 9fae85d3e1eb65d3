package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"credon/internal/domain"
	"credon/internal/models"
	"credon/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestDepositAddress(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.PlatformSetting{}))

	settingRepo := repository.NewSettingRepository(db)
	h := NewTransactionHandler(nil, nil, settingRepo)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/deposits/address", h.DepositAddress)

	t.Run("not configured", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/deposits/address", nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	// the handler reads the same key the seeder and the admin update write
	require.NoError(t, settingRepo.SeedDefaults(map[string]string{
		domain.SettingDepositAddress: "0xDEADBEEF00000000000000000000000000000001",
	}))

	t.Run("configured", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/deposits/address", nil)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "0xDEADBEEF00000000000000000000000000000001")
	})
}
