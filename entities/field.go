package entities

import (
	"time"

	"agrotrack/pkg/lifecycle"
)

type Field struct {
	FieldID  uint               `gorm:"primaryKey" json:"id"`
	Name     string             `json:"name"`
	Location string             `json:"location"`
	AreaHa   float64            `json:"areaHa"`
	SoilType lifecycle.SoilType `json:"soilType"`
	Notes    string             `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
