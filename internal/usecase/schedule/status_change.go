package schedule

import (
	"context"

	"github.com/RodrigobSilva/PsicoCare-sub000/internal/audit"
	domain "github.com/RodrigobSilva/PsicoCare-sub000/internal/domain/schedule"
	"github.com/RodrigobSilva/PsicoCare-sub000/internal/httperr"
	"github.com/RodrigobSilva/PsicoCare-sub000/internal/models"
	"github.com/RodrigobSilva/PsicoCare-sub000/internal/notify"
	"github.com/RodrigobSilva/PsicoCare-sub000/internal/timezone"
)

// ======================================================
// CONFIRM
// ======================================================

type ConfirmAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewConfirmAppointment(
	repo domain.Repository,
	auditDisp *audit.Dispatcher,
) *ConfirmAppointment {
	return &ConfirmAppointment{repo: repo, audit: auditDisp}
}

func (uc *ConfirmAppointment) Execute(
	ctx context.Context,
	branchID uint,
	appointmentID uint,
	userID *uint,
	requestID string,
) (*models.Appointment, error) {

	branch, err := uc.repo.GetBranch(ctx, branchID)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	now := timezone.NowIn(branch.Timezone)
	if err := domain.Confirm(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BranchID:  branchID,
		UserID:    userID,
		Action:    "appointment_confirmed",
		Entity:    "appointment",
		EntityID:  &ap.ID,
		RequestID: requestID,
	})

	return ap, nil
}

// ======================================================
// CANCEL
// ======================================================

type CancelAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	notif *notify.Dispatcher
	slots *SlotCache
}

func NewCancelAppointment(
	repo domain.Repository,
	auditDisp *audit.Dispatcher,
	notif *notify.Dispatcher,
	slots *SlotCache,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: auditDisp,
		notif: notif,
		slots: slots,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	branchID uint,
	appointmentID uint,
	userID *uint,
	requestID string,
) (*models.Appointment, error) {

	branch, err := uc.repo.GetBranch(ctx, branchID)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	now := timezone.NowIn(branch.Timezone)
	if err := domain.Cancel(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.slots.InvalidateDay(ctx, ap.PsychologistID, ap.StartTime.Format(domain.DateLayout))

	uc.audit.Dispatch(audit.Event{
		BranchID:  branchID,
		UserID:    userID,
		Action:    "appointment_cancelled",
		Entity:    "appointment",
		EntityID:  &ap.ID,
		RequestID: requestID,
	})

	uc.notif.Dispatch(notify.Event{
		Type:        notify.EventCancelled,
		Appointment: *ap,
		Patient:     ap.Patient,
	})

	return ap, nil
}

// ======================================================
// COMPLETE
// ======================================================

type CompleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCompleteAppointment(
	repo domain.Repository,
	auditDisp *audit.Dispatcher,
) *CompleteAppointment {
	return &CompleteAppointment{repo: repo, audit: auditDisp}
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	branchID uint,
	appointmentID uint,
	userID *uint,
	requestID string,
) (*models.Appointment, error) {

	branch, err := uc.repo.GetBranch(ctx, branchID)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	// concluir exige o atendimento registrado
	hasVisit, err := uc.repo.HasVisit(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	now := timezone.NowIn(branch.Timezone)
	if err := domain.Complete(ap, now, hasVisit); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		BranchID:  branchID,
		UserID:    userID,
		Action:    "appointment_completed",
		Entity:    "appointment",
		EntityID:  &ap.ID,
		RequestID: requestID,
	})

	return ap, nil
}
