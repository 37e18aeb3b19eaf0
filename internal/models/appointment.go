package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BranchID uint   `json:"branch_id"`
	Branch   Branch `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"branch"`

	PatientID uint    `json:"patient_id"`
	Patient   Patient `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"patient"`

	PsychologistID uint         `gorm:"index" json:"psychologist_id"`
	Psychologist   Psychologist `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"psychologist"`

	// sala vazia quando o atendimento é remoto
	RoomID *uint `gorm:"index" json:"room_id"`
	Room   *Room `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"room,omitempty"`

	StartTime time.Time `gorm:"index" json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Status string `gorm:"size:20;default:'scheduled'" json:"status"`

	VisitType string `gorm:"size:30" json:"visit_type"`
	Remote    bool   `gorm:"default:false" json:"remote"`
	Sublease  bool   `gorm:"default:false" json:"sublease"`

	PrivatePay      bool           `gorm:"default:false" json:"private_pay"`
	InsurancePlanID *uint          `json:"insurance_plan_id"`
	InsurancePlan   *InsurancePlan `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"insurance_plan,omitempty"`
	Price           *float64       `json:"price"`

	Notes string `gorm:"size:255" json:"notes"`

	ConfirmedAt *time.Time `json:"confirmed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
