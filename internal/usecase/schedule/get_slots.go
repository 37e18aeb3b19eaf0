package schedule

import (
	"context"
	"time"

	domain "github.com/RodrigobSilva/PsicoCare-sub000/internal/domain/schedule"
	"github.com/RodrigobSilva/PsicoCare-sub000/internal/httperr"
	"github.com/RodrigobSilva/PsicoCare-sub000/internal/timezone"
)

type GetSlotsInput struct {
	PsychologistID uint
	Date           string // 2006-01-02
	GranularityMin int    // 0 usa a duração padrão
	Remote         bool   // filtra janelas elegíveis para remoto
}

type GetSlots struct {
	repo  domain.Repository
	slots *SlotCache
}

func NewGetSlots(repo domain.Repository, slots *SlotCache) *GetSlots {
	return &GetSlots{repo: repo, slots: slots}
}

func (uc *GetSlots) Execute(
	ctx context.Context,
	in GetSlotsInput,
) ([]domain.Slot, error) {

	if in.GranularityMin <= 0 {
		in.GranularityMin = domain.DefaultDurationMinutes
	}

	psy, err := uc.repo.GetPsychologist(ctx, in.PsychologistID)
	if err != nil {
		return nil, httperr.ErrBusiness("psychologist_not_found")
	}

	branch, err := uc.repo.GetBranch(ctx, psy.BranchID)
	if err != nil {
		return nil, err
	}
	loc := timezone.Location(branch.Timezone)

	date, err := time.ParseInLocation(domain.DateLayout, in.Date, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	// remoto não é parte da chave: janelas não elegíveis são filtradas
	// depois do cache só quando pedido
	if !in.Remote {
		if cached, hit := uc.slots.Get(ctx, in.PsychologistID, in.Date, in.GranularityMin); hit {
			return cached, nil
		}
	}

	windows, err := uc.repo.ListWindows(ctx, in.PsychologistID)
	if err != nil {
		return nil, err
	}
	if in.Remote {
		eligible := windows[:0:0]
		for _, w := range windows {
			if w.RemoteEligible {
				eligible = append(eligible, w)
			}
		}
		windows = eligible
	}

	dayStart := date
	dayEnd := date.AddDate(0, 0, 1)

	appointments, err := uc.repo.ListForPsychologist(ctx, in.PsychologistID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	blocks, err := uc.repo.ListBlocks(ctx, in.PsychologistID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	slots := domain.ResolveSlots(date, in.GranularityMin, windows, appointments, blocks)

	if !in.Remote {
		uc.slots.Set(ctx, in.PsychologistID, in.Date, in.GranularityMin, slots)
	}

	return slots, nil
}
