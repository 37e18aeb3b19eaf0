package schedule

import (
	"context"
	"time"

	"github.com/RodrigobSilva/PsicoCare-sub000/internal/models"
)

type Repository interface {
	// -------- Branch / lookups --------
	GetBranch(
		ctx context.Context,
		id uint,
	) (*models.Branch, error)

	GetPatient(
		ctx context.Context,
		id uint,
	) (*models.Patient, error)

	GetPsychologist(
		ctx context.Context,
		id uint,
	) (*models.Psychologist, error)

	GetRoom(
		ctx context.Context,
		id uint,
	) (*models.Room, error)

	// -------- Appointment (read) --------
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	ListForPsychologist(
		ctx context.Context,
		psychologistID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListForRoom(
		ctx context.Context,
		roomID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListForRange(
		ctx context.Context,
		branchID *uint,
		psychologistID *uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// -------- Appointment (write) --------
	// Check-and-insert atômico: retestam o overlap sob lock dentro da
	// transação e devolvem ConflictError em caso de corrida.
	CreateAppointmentChecked(
		ctx context.Context,
		ap *models.Appointment,
	) error

	UpdateAppointmentChecked(
		ctx context.Context,
		ap *models.Appointment,
	) error

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Availability --------
	ListWindows(
		ctx context.Context,
		psychologistID uint,
	) ([]models.AvailabilityWindow, error)

	ListBlocks(
		ctx context.Context,
		psychologistID uint,
		start time.Time,
		end time.Time,
	) ([]models.ExceptionBlock, error)

	// -------- Visit --------
	HasVisit(
		ctx context.Context,
		appointmentID uint,
	) (bool, error)
}
