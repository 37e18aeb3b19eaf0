package models

import "time"

type Patient struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BranchID uint `json:"branch_id"`

	Name      string     `gorm:"size:100;not null" json:"name"`
	CPF       string     `gorm:"size:14;index" json:"cpf"`
	Phone     string     `gorm:"size:20" json:"phone"`
	Email     string     `gorm:"size:100" json:"email"`
	BirthDate *time.Time `json:"birth_date"`

	InsurancePlanID      *uint          `json:"insurance_plan_id"`
	InsurancePlan        *InsurancePlan `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"insurance_plan,omitempty"`
	MembershipNumber     string         `gorm:"size:50" json:"membership_number"`
	MembershipValidUntil *time.Time     `json:"membership_valid_until"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
