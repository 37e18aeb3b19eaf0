package schedule

import (
	"context"
	"time"

	"github.com/RodrigobSilva/PsicoCare-sub000/internal/audit"
	domain "github.com/RodrigobSilva/PsicoCare-sub000/internal/domain/schedule"
	"github.com/RodrigobSilva/PsicoCare-sub000/internal/httperr"
	"github.com/RodrigobSilva/PsicoCare-sub000/internal/models"
	"github.com/RodrigobSilva/PsicoCare-sub000/internal/timezone"
)

type RescheduleAppointmentInput struct {
	BranchID      uint
	AppointmentID uint

	// novo horário; EndTime vazio mantém a duração atual
	Date      string
	StartTime string
	EndTime   string

	// nil = mantém; Remote=true limpa a sala, sala limpa o remoto
	RoomID *uint
	Remote *bool

	Notes *string

	UserID    *uint
	RequestID string
}

type RescheduleAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	slots *SlotCache

	enforceAvailability bool
}

func NewRescheduleAppointment(
	repo domain.Repository,
	auditDisp *audit.Dispatcher,
	slots *SlotCache,
	enforceAvailability bool,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		repo:                repo,
		audit:               auditDisp,
		slots:               slots,
		enforceAvailability: enforceAvailability,
	}
}

func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	in RescheduleAppointmentInput,
) (*models.Appointment, error) {

	branch, err := uc.repo.GetBranch(ctx, in.BranchID)
	if err != nil {
		return nil, err
	}
	loc := timezone.Location(branch.Timezone)

	ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	// estado terminal congela horário, sala e psicólogo
	if !domain.CanEditSchedule(ap) {
		return nil, httperr.ErrBusiness("appointment_locked")
	}

	oldDate := ap.StartTime.Format(domain.DateLayout)
	duration := ap.EndTime.Sub(ap.StartTime)

	// --------------------------------------------------
	// Novo horário
	// --------------------------------------------------
	if in.Date != "" && in.StartTime != "" {
		start, err := time.ParseInLocation("2006-01-02 15:04", in.Date+" "+in.StartTime, loc)
		if err != nil {
			return nil, httperr.ErrBusiness("invalid_date_or_time")
		}

		end := start.Add(duration)
		if in.EndTime != "" {
			end, err = time.ParseInLocation("2006-01-02 15:04", in.Date+" "+in.EndTime, loc)
			if err != nil {
				return nil, httperr.ErrBusiness("invalid_date_or_time")
			}
		}

		if err := domain.ValidateTimes(start, end); err != nil {
			return nil, err
		}

		ap.StartTime = start
		ap.EndTime = end
	}

	// --------------------------------------------------
	// Sala / remoto (par exclusivo por construção)
	// --------------------------------------------------
	if in.Remote != nil && *in.Remote {
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
	} else if in.Remote != nil && !*in.Remote {
		domain.SetRemote(ap, false)
	}

	if in.Notes != nil {
		ap.Notes = *in.Notes
	}

	// --------------------------------------------------
	// Mesmo pipeline de conflito da criação
	// --------------------------------------------------
	dayStart := time.Date(ap.StartTime.Year(), ap.StartTime.Month(), ap.StartTime.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.Add(24 * time.Hour)

	existing, err := uc.repo.ListForPsychologist(ctx, ap.PsychologistID, dayStart, dayEnd)
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

	windows, err := uc.repo.ListWindows(ctx, ap.PsychologistID)
	if err != nil {
		return nil, err
	}
	blocks, err := uc.repo.ListBlocks(ctx, ap.PsychologistID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	cand := domain.Candidate{
		AppointmentID:  ap.ID,
		PsychologistID: ap.PsychologistID,
		RoomID:         ap.RoomID,
		Remote:         ap.Remote,
		Start:          ap.StartTime,
		End:            ap.EndTime,
	}

	if res := domain.CheckConflict(cand, existing, blocks, windows); !res.Ok() {
		if res.Kind != domain.ConflictOutsideAvailability || uc.enforceAvailability {
			return nil, domain.ConflictError{Result: res}
		}
	}

	if err := uc.repo.UpdateAppointmentChecked(ctx, ap); err != nil {
		return nil, err
	}

	uc.slots.InvalidateDay(ctx, ap.PsychologistID, oldDate)
	uc.slots.InvalidateDay(ctx, ap.PsychologistID, ap.StartTime.Format(domain.DateLayout))

	uc.audit.Dispatch(audit.Event{
		BranchID:  in.BranchID,
		UserID:    in.UserID,
		Action:    "appointment_rescheduled",
		Entity:    "appointment",
		EntityID:  &ap.ID,
		RequestID: in.RequestID,
	})

	return ap, nil
}
