package models

import "time"

// Janela semanal recorrente em que o psicólogo atende.
// Horários no formato "15:04", sempre no timezone da filial.
type AvailabilityWindow struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	PsychologistID uint `gorm:"index" json:"psychologist_id"`

	Weekday   int    `json:"weekday"`
	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`

	RemoteEligible bool `gorm:"default:false" json:"remote_eligible"`
	Active         bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Bloqueio pontual de agenda (férias, feriado, afastamento).
// Datas inclusivas nas duas pontas.
type ExceptionBlock struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	PsychologistID uint `gorm:"index" json:"psychologist_id"`

	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`

	Reason   string `gorm:"size:255" json:"reason"`
	Approved bool   `gorm:"default:false" json:"approved"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
