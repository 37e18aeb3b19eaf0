package models

import "time"

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	BranchID uint   `json:"branch_id"`
	Branch   Branch `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"branch"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`

	// admin | secretary | psychologist
	Role string `gorm:"size:20;default:'secretary'" json:"role"`

	// preenchido quando o usuário é o próprio psicólogo
	PsychologistID *uint         `json:"psychologist_id"`
	Psychologist   *Psychologist `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"psychologist,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
