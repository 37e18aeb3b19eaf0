package schedule

import (
	"context"
	"time"

	domain "github.com/RodrigobSilva/PsicoCare-sub000/internal/domain/schedule"
	"github.com/RodrigobSilva/PsicoCare-sub000/internal/httperr"
	"github.com/RodrigobSilva/PsicoCare-sub000/internal/timezone"
)

type ProjectCalendarInput struct {
	View   string // day | week | month
	Anchor string // 2006-01-02

	// filial do usuário logado (define o timezone da projeção)
	BranchID uint

	PsychologistFilter *uint
	BranchFilter       *uint

	RequesterRole           string
	RequesterPsychologistID uint
}

type ProjectCalendar struct {
	repo   domain.Repository
	dayCap int
}

func NewProjectCalendar(repo domain.Repository, dayCap int) *ProjectCalendar {
	return &ProjectCalendar{repo: repo, dayCap: dayCap}
}

func (uc *ProjectCalendar) Execute(
	ctx context.Context,
	in ProjectCalendarInput,
) (*domain.CalendarView, error) {

	view := domain.ViewMode(in.View)
	switch view {
	case domain.ViewDay, domain.ViewWeek, domain.ViewMonth:
	default:
		return nil, httperr.ErrBusiness("invalid_view")
	}

	branch, err := uc.repo.GetBranch(ctx, in.BranchID)
	if err != nil {
		return nil, err
	}
	loc := timezone.Location(branch.Timezone)

	anchor, err := time.ParseInLocation(domain.DateLayout, in.Anchor, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	// o papel de psicólogo restringe a consulta antes mesmo da projeção
	psyFilter := in.PsychologistFilter
	if in.RequesterRole == domain.RolePsychologist {
		own := in.RequesterPsychologistID
		psyFilter = &own
	}

	rangeStart, rangeEnd := domain.ViewRange(view, anchor)

	appointments, err := uc.repo.ListForRange(ctx, in.BranchFilter, psyFilter, rangeStart, rangeEnd)
	if err != nil {
		return nil, err
	}

	projected := domain.Project(appointments, domain.ProjectOptions{
		View:                    view,
		Anchor:                  anchor,
		PsychologistID:          psyFilter,
		BranchID:                in.BranchFilter,
		RequesterRole:           in.RequesterRole,
		RequesterPsychologistID: in.RequesterPsychologistID,
		DayCap:                  uc.dayCap,
	})

	return &projected, nil
}
