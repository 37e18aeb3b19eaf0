package models

import "time"

// Atendimento: registro de que a sessão de fato ocorreu.
// A existência deste registro é o que libera a conclusão do agendamento.
type Visit struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint        `gorm:"uniqueIndex" json:"appointment_id"`
	Appointment   Appointment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"appointment"`

	PsychologistID uint `json:"psychologist_id"`
	PatientID      uint `json:"patient_id"`

	OccurredAt time.Time `json:"occurred_at"`
	Summary    string    `gorm:"type:text" json:"summary"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
