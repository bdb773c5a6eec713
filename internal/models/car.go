package models

import "gorm.io/gorm"

type TripType string

const (
	TripTypeWedding  TripType = "wedding"
	TripTypeAirport  TripType = "airport"
	TripTypeLongTrip TripType = "long_trip"
)

// Car represents a fleet vehicle offered for rental. The Available flag
// mirrors booking state: it is cleared while the car is committed to a
// confirmed booking and restored when that booking ends.
type Car struct {
	gorm.Model
	Name        string   `json:"name" gorm:"not null"`
	ImageURL    string   `json:"imageUrl"`
	TripType    TripType `json:"tripType" gorm:"not null;default:'wedding'"`
	Capacity    int      `json:"capacity" gorm:"not null;default:4"`
	PricePerDay float64  `json:"pricePerDay" gorm:"not null"`
	Description string   `json:"description"`
	Available   bool     `json:"available" gorm:"not null;default:true"`
}

// TableName specifies the table name
func (Car) TableName() string {
	return "cars"
}
