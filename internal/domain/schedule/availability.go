package schedule

import (
	"time"

	"github.com/RodrigobSilva/PsicoCare-sub000/internal/models"
)

const (
	TimeLayout = "15:04"
	DateLayout = "2006-01-02"
)

func minutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// parseClock converte "15:04" em minutos desde meia-noite.
// Janela com horário malformado nunca casa.
func parseClock(hm string) (int, bool) {
	t, err := time.Parse(TimeLayout, hm)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

// WithinAvailability verifica se [start, end] cabe inteiro em alguma
// janela ativa do dia da semana de start. Pedido remoto exige janela
// elegível para remoto. Sem janela compatível retorna false — quem
// decide bloquear ou só avisar é o chamador.
func WithinAvailability(windows []models.AvailabilityWindow, start, end time.Time, remote bool) bool {
	weekday := int(start.Weekday())

	s := minutesOfDay(start)
	e := minutesOfDay(end)
	if e <= s {
		return false
	}

	for _, w := range windows {
		if !w.Active || w.Weekday != weekday {
			continue
		}
		if remote && !w.RemoteEligible {
			continue
		}

		ws, ok := parseClock(w.StartTime)
		if !ok {
			continue
		}
		we, ok := parseClock(w.EndTime)
		if !ok {
			continue
		}

		if ws <= s && e <= we {
			return true
		}
	}

	return false
}

// clockAt materializa um horário "15:04" na data (e timezone) de ref.
func clockAt(ref time.Time, hm string) (time.Time, bool) {
	t, err := time.Parse(TimeLayout, hm)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(
		ref.Year(), ref.Month(), ref.Day(),
		t.Hour(), t.Minute(), 0, 0,
		ref.Location(),
	), true
}

// blockCovers: bloqueio aprovado cobre a data? Pontas inclusivas.
// Comparação por data-calendário, imune a timezone do valor persistido.
func blockCovers(b models.ExceptionBlock, date time.Time) bool {
	if !b.Approved {
		return false
	}
	d := date.Format(DateLayout)
	return b.StartDate.Format(DateLayout) <= d && d <= b.EndDate.Format(DateLayout)
}
