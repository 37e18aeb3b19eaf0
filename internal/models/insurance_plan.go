package models

import "time"

// Convênio / plano de saúde aceito pela clínica
type InsurancePlan struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`
	Code string `gorm:"size:30;uniqueIndex" json:"code"`

	SessionPrice float64 `json:"session_price"`
	Active       bool    `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
