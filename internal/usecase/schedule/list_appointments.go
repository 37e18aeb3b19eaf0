package schedule

import (
	"context"
	"time"

	domain "github.com/RodrigobSilva/PsicoCare-sub000/internal/domain/schedule"
	"github.com/RodrigobSilva/PsicoCare-sub000/internal/dto"
)

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

// Execute lista um intervalo [start, end) já resolvido pelo handler,
// com filtros opcionais de filial e psicólogo.
func (uc *ListAppointments) Execute(
	ctx context.Context,
	branchID *uint,
	psychologistID *uint,
	start time.Time,
	end time.Time,
) ([]dto.AppointmentListDTO, error) {

	appointments, err := uc.repo.ListForRange(ctx, branchID, psychologistID, start, end)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		item := dto.AppointmentListDTO{
			ID:               ap.ID,
			StartTime:        ap.StartTime,
			EndTime:          ap.EndTime,
			Status:           ap.Status,
			PatientName:      ap.Patient.Name,
			PsychologistName: ap.Psychologist.Name,
			Remote:           ap.Remote,
			VisitType:        ap.VisitType,
		}
		if ap.Room != nil {
			item.RoomName = ap.Room.Name
		}
		out = append(out, item)
	}

	return out, nil
}
