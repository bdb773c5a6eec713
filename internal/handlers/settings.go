package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/elitecars/rental-backend/internal/models"
	"github.com/elitecars/rental-backend/internal/services"
)

type SettingsInput struct {
	SiteName        string `json:"siteName" binding:"required"`
	CurrencySymbol  string `json:"currencySymbol" binding:"required"`
	SupportEmail    string `json:"supportEmail"`
	SupportPhone    string `json:"supportPhone"`
	WhatsAppNumber  string `json:"whatsappNumber"`
	MaintenanceMode bool   `json:"maintenanceMode"`
}

func loadSettings(c *gin.Context, db *gorm.DB) (*models.Settings, error) {
	ctx := c.Request.Context()
	if settings, err := services.GetCachedSettings(ctx); err == nil && settings != nil {
		return settings, nil
	}

	var row models.Settings
	if err := db.First(&row, models.SettingsRowID).Error; err != nil {
		return nil, err
	}
	services.CacheSettings(ctx, &row)
	return &row, nil
}

// GetPublicSettings exposes the storefront subset of the settings row
func GetPublicSettings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		settings, err := loadSettings(c, db)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch settings"})
			return
		}

		c.JSON(200, gin.H{
			"siteName":        settings.SiteName,
			"currencySymbol":  settings.CurrencySymbol,
			"supportEmail":    settings.SupportEmail,
			"supportPhone":    settings.SupportPhone,
			"maintenanceMode": settings.MaintenanceMode,
		})
	}
}

// GetSettings returns the full settings row for the back office
func GetSettings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		settings, err := loadSettings(c, db)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch settings"})
			return
		}
		c.JSON(200, gin.H{"settings": settings})
	}
}

// UpdateSettings overwrites the singleton settings row and invalidates
// the cache
func UpdateSettings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input SettingsInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		updates := map[string]interface{}{
			"site_name":        input.SiteName,
			"currency_symbol":  input.CurrencySymbol,
			"support_email":    input.SupportEmail,
			"support_phone":    input.SupportPhone,
			"whats_app_number": input.WhatsAppNumber,
			"maintenance_mode": input.MaintenanceMode,
		}

		if err := db.Model(&models.Settings{}).
			Where("id = ?", models.SettingsRowID).
			Updates(updates).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update settings"})
			return
		}

		services.InvalidateSettings(c.Request.Context())

		var row models.Settings
		db.First(&row, models.SettingsRowID)
		c.JSON(200, gin.H{"settings": row})
	}
}
