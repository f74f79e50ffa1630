package entities

import (
	"time"

	"agrotrack/pkg/lifecycle"
)

type Culture struct {
	ID                   uint               `gorm:"primaryKey" json:"id"`
	FieldID              uint               `gorm:"index" json:"fieldId"`
	Name                 string             `json:"name"`
	Variety              string             `json:"variety"`
	SurfaceArea          float64            `json:"surfaceArea"` // hectares
	PlantedDate          time.Time          `json:"plantedDate"`
	EstimatedHarvestDate time.Time          `json:"estimatedHarvestDate"`
	Health               int                `json:"health"`          // 0-100 by convention
	IrrigationLevel      int                `json:"irrigationLevel"` // 0-100 by convention
	SoilType             lifecycle.SoilType `json:"soilType"`
	Status               lifecycle.Status   `gorm:"index" json:"status"`
	Notes                string             `json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
