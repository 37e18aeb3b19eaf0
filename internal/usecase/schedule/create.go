package schedule

import (
	"context"
	"time"

	"github.com/RodrigobSilva/PsicoCare-sub000/internal/audit"
	domain "github.com/RodrigobSilva/PsicoCare-sub000/internal/domain/schedule"
	"github.com/RodrigobSilva/PsicoCare-sub000/internal/httperr"
	"github.com/RodrigobSilva/PsicoCare-sub000/internal/models"
	"github.com/RodrigobSilva/PsicoCare-sub000/internal/notify"
	"github.com/RodrigobSilva/PsicoCare-sub000/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	BranchID       uint
	PatientID      uint
	PsychologistID uint

	RoomID *uint
	Remote bool

	Date      string // 2006-01-02
	StartTime string // 15:04
	EndTime   string // opcional; vazio deriva da duração padrão

	VisitType string
	Sublease  bool

	PrivatePay      bool
	InsurancePlanID *uint
	Price           *float64

	Notes string

	UserID    *uint
	RequestID string
}

type CreateResult struct {
	Appointment *models.Appointment `json:"appointment"`

	// preenchido quando a política deixa passar um horário fora das
	// janelas declaradas — a UI decide se mostra o aviso
	Warning string `json:"warning,omitempty"`
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	notif *notify.Dispatcher
	slots *SlotCache

	enforceAvailability bool
}

func NewCreateAppointment(
	repo domain.Repository,
	auditDisp *audit.Dispatcher,
	notif *notify.Dispatcher,
	slots *SlotCache,
	enforceAvailability bool,
) *CreateAppointment {
	return &CreateAppointment{
		repo:                repo,
		audit:               auditDisp,
		notif:               notif,
		slots:               slots,
		enforceAvailability: enforceAvailability,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*CreateResult, error) {

	// --------------------------------------------------
	// 1. Filial e timezone
	// --------------------------------------------------
	branch, err := uc.repo.GetBranch(ctx, in.BranchID)
	if err != nil {
		return nil, err
	}
	loc := timezone.Location(branch.Timezone)

	// --------------------------------------------------
	// 2. Horário proposto
	// --------------------------------------------------
	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.StartTime,
		loc,
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	var end time.Time
	if in.EndTime == "" {
		end = domain.DefaultEnd(start)
	} else {
		end, err = time.ParseInLocation("2006-01-02 15:04", in.Date+" "+in.EndTime, loc)
		if err != nil {
			return nil, httperr.ErrBusiness("invalid_date_or_time")
		}
	}

	if err := domain.ValidateTimes(start, end); err != nil {
		return nil, err
	}

	now := timezone.NowIn(branch.Timezone)
	if branch.MinAdvanceMinutes > 0 &&
		start.Before(now.Add(time.Duration(branch.MinAdvanceMinutes)*time.Minute)) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	// --------------------------------------------------
	// 3. Participantes
	// --------------------------------------------------
	patient, err := uc.repo.GetPatient(ctx, in.PatientID)
	if err != nil {
		return nil, httperr.ErrBusiness("patient_not_found")
	}

	if _, err := uc.repo.GetPsychologist(ctx, in.PsychologistID); err != nil {
		return nil, httperr.ErrBusiness("psychologist_not_found")
	}

	// --------------------------------------------------
	// 4. Montagem + invariantes de entidade
	// --------------------------------------------------
	ap := &models.Appointment{
		BranchID:        in.BranchID,
		PatientID:       in.PatientID,
		PsychologistID:  in.PsychologistID,
		StartTime:       start,
		EndTime:         end,
		Status:          string(domain.InitialStatus()),
		VisitType:       in.VisitType,
		Sublease:        in.Sublease,
		PrivatePay:      in.PrivatePay,
		InsurancePlanID: in.InsurancePlanID,
		Price:           in.Price,
		Notes:           in.Notes,
	}

	if in.Remote {
		domain.SetRemote(ap, true)
	} else if in.RoomID != nil {
		room, err := uc.repo.GetRoom(ctx, *in.RoomID)
		if err != nil {
			return nil, httperr.ErrBusiness("room_not_found")
		}
		if room.BranchID != in.BranchID {
			return nil, httperr.ErrBusiness("room_wrong_branch")
		}
		domain.SetRoom(ap, *in.RoomID)
	}

	if err := domain.ValidateBilling(ap, patient, now); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 5. Conflitos (caminho rápido, erro preciso)
	// --------------------------------------------------
	dayStart := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.Add(24 * time.Hour)

	existing, err := uc.repo.ListForPsychologist(ctx, in.PsychologistID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	if ap.RoomID != nil {
		roomAps, err := uc.repo.ListForRoom(ctx, *ap.RoomID, dayStart, dayEnd)
		if err != nil {
			return nil, err
		}
		existing = append(existing, roomAps...)
	}

	windows, err := uc.repo.ListWindows(ctx, in.PsychologistID)
	if err != nil {
		return nil, err
	}
	blocks, err := uc.repo.ListBlocks(ctx, in.PsychologistID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	cand := domain.Candidate{
		PsychologistID: in.PsychologistID,
		RoomID:         ap.RoomID,
		Remote:         ap.Remote,
		Start:          start,
		End:            end,
	}

	warning := ""
	if res := domain.CheckConflict(cand, existing, blocks, windows); !res.Ok() {
		if res.Kind == domain.ConflictOutsideAvailability && !uc.enforceAvailability {
			warning = string(domain.ConflictOutsideAvailability)
		} else {
			return nil, domain.ConflictError{Result: res}
		}
	}

	// --------------------------------------------------
	// 6. Persistência atômica (check-and-insert)
	// --------------------------------------------------
	if err := uc.repo.CreateAppointmentChecked(ctx, ap); err != nil {
		return nil, err
	}

	uc.slots.InvalidateDay(ctx, in.PsychologistID, in.Date)

	// --------------------------------------------------
	// 7. Auditoria + notificação (nunca desfazem a reserva)
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		BranchID:  in.BranchID,
		UserID:    in.UserID,
		Action:    "appointment_created",
		Entity:    "appointment",
		EntityID:  &ap.ID,
		RequestID: in.RequestID,
	})

	uc.notif.Dispatch(notify.Event{
		Type:        notify.EventCreated,
		Appointment: *ap,
		Patient:     *patient,
	})

	return &CreateResult{Appointment: ap, Warning: warning}, nil
}
