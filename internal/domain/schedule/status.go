package schedule

import "github.com/RodrigobSilva/PsicoCare-sub000/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// transições permitidas; completed e cancelled são terminais
var transitions = map[Status][]Status{
	StatusScheduled: {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

func InitialStatus() Status {
	return StatusScheduled
}

func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CountsForOverlap diz se um agendamento neste status ocupa o horário
// para fins de conflito. Cancelado libera o horário.
func (s Status) CountsForOverlap() bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusCompleted:
		return true
	}
	return false
}

func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ===============================
// Validations
// ===============================

func CanConfirm(current Status) error {
	if !CanTransition(current, StatusConfirmed) {
		return httperr.ErrBusiness("invalid_transition")
	}
	return nil
}

func CanCancel(current Status) error {
	if !CanTransition(current, StatusCancelled) {
		return httperr.ErrBusiness("invalid_transition")
	}
	return nil
}

func CanComplete(current Status) error {
	if !CanTransition(current, StatusCompleted) {
		return httperr.ErrBusiness("invalid_transition")
	}
	return nil
}
