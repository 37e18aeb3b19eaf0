package dto

import "time"

type AppointmentListDTO struct {
	ID               uint      `json:"id"`
	StartTime        time.Time `json:"start_time"`
	EndTime          time.Time `json:"end_time"`
	Status           string    `json:"status"`
	PatientName      string    `json:"patient_name"`
	PsychologistName string    `json:"psychologist_name"`
	RoomName         string    `json:"room_name,omitempty"`
	Remote           bool      `json:"remote"`
	VisitType        string    `json:"visit_type,omitempty"`
}
