package schedule

import (
	"time"

	"github.com/RodrigobSilva/PsicoCare-sub000/internal/httperr"
	"github.com/RodrigobSilva/PsicoCare-sub000/internal/models"
)

const (
	// duração padrão da sessão quando o fim não é informado
	DefaultDurationMinutes = 30
)

// ===============================
// Domain Actions
// ===============================

func Confirm(ap *models.Appointment, now time.Time) error {
	if err := CanConfirm(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusConfirmed)
	ap.ConfirmedAt = &now
	return nil
}

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}

// Complete só é permitido quando o atendimento correspondente já foi
// registrado; hasVisit vem do colaborador externo (store de atendimentos).
func Complete(ap *models.Appointment, now time.Time, hasVisit bool) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}
	if !hasVisit {
		return httperr.ErrBusiness("visit_required")
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

// ===============================
// Room / Remote (par exclusivo)
// ===============================

// SetRemote(true) limpa a sala; nunca existem os dois ao mesmo tempo.
func SetRemote(ap *models.Appointment, remote bool) {
	ap.Remote = remote
	if remote {
		ap.RoomID = nil
		ap.Room = nil
	}
}

// SetRoom limpa o flag remoto.
func SetRoom(ap *models.Appointment, roomID uint) {
	id := roomID
	ap.RoomID = &id
	ap.Remote = false
}

// ===============================
// Invariants
// ===============================

// CanEditSchedule: horário, sala e psicólogo ficam imutáveis em estado
// terminal (só o status pôde ter mudado até lá).
func CanEditSchedule(ap *models.Appointment) bool {
	return !Status(ap.Status).Terminal()
}

func DefaultEnd(start time.Time) time.Time {
	return start.Add(DefaultDurationMinutes * time.Minute)
}

func ValidateTimes(start, end time.Time) error {
	if !start.Before(end) {
		return httperr.ErrBusiness("invalid_time_range")
	}
	return nil
}

// ValidateBilling: particular e convênio são mutuamente exclusivos;
// convênio exige carteirinha vigente no cadastro do paciente.
func ValidateBilling(ap *models.Appointment, patient *models.Patient, now time.Time) error {
	if ap.PrivatePay {
		if ap.InsurancePlanID != nil {
			return httperr.ErrBusiness("private_pay_with_plan")
		}
		return nil
	}

	if ap.InsurancePlanID == nil {
		return httperr.ErrBusiness("insurance_plan_required")
	}
	if patient == nil || patient.MembershipNumber == "" || patient.MembershipValidUntil == nil {
		return httperr.ErrBusiness("membership_missing")
	}
	if patient.MembershipValidUntil.Before(now) {
		return httperr.ErrBusiness("membership_expired")
	}

	return nil
}
