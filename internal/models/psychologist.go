package models

import "time"

type Psychologist struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	BranchID uint   `json:"branch_id"`
	Branch   Branch `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"branch"`

	Name      string `gorm:"size:100;not null" json:"name"`
	CRP       string `gorm:"size:20;uniqueIndex" json:"crp"`
	Email     string `gorm:"size:100" json:"email"`
	Phone     string `gorm:"size:20" json:"phone"`
	Specialty string `gorm:"size:100" json:"specialty"`
	Active    bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
