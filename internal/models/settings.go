package models

// SettingsRowID is the fixed primary key of the singleton settings row.
const SettingsRowID uint = 1

// Settings is the single global configuration record read by the
// public-facing endpoints and mutated only by administrators.
type Settings struct {
	ID              uint   `json:"-" gorm:"primaryKey"`
	SiteName        string `json:"siteName" gorm:"not null;default:'Elite Car Rentals'"`
	CurrencySymbol  string `json:"currencySymbol" gorm:"not null;default:'$'"`
	SupportEmail    string `json:"supportEmail"`
	SupportPhone    string `json:"supportPhone"`
	WhatsAppNumber  string `json:"whatsappNumber"`
	MaintenanceMode bool   `json:"maintenanceMode" gorm:"not null;default:false"`
}

// TableName specifies the table name
func (Settings) TableName() string {
	return "admin_settings"
}
