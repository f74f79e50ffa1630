package entities

import "gorm.io/gorm"

type Harvest struct {
	gorm.Model
	CultureID    uint     `json:"cultureId" gorm:"index"`
	FieldID      uint     `json:"fieldId" gorm:"index"`
	Date         string   `json:"date" gorm:"index"` // YYYY-MM-DD
	QuantityKg   float64  `json:"quantityKg"`
	QualityGrade string   `json:"qualityGrade"` // A|B|C
	PricePerKg   *float64 `json:"pricePerKg"`
	NetAmount    *float64 `json:"netAmount"`
	Buyer        string   `json:"buyer,omitempty"`
	Notes        string   `json:"notes,omitempty"`
}
