package schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/RodrigobSilva/PsicoCare-sub000/internal/models"
)

// ===============================
// Calendar Projection
// ===============================

type ViewMode string

const (
	ViewDay   ViewMode = "day"
	ViewWeek  ViewMode = "week"
	ViewMonth ViewMode = "month"
)

const (
	DefaultDayCap       = 3
	DefaultDayStartHour = 8
	DefaultDayEndHour   = 20
)

// Psicólogo logado vê só a própria agenda, independente do filtro pedido.
const RolePsychologist = "psychologist"

type ProjectOptions struct {
	View   ViewMode
	Anchor time.Time

	PsychologistID *uint
	BranchID       *uint

	RequesterRole           string
	RequesterPsychologistID uint

	// month: máximo de agendamentos por célula antes do "+N"
	DayCap int
	// day/week: limites e largura dos rótulos de horário
	DayStartHour int
	DayEndHour   int
	SlotMinutes  int
}

type CalendarCell struct {
	Label        string               `json:"label"`
	Appointments []models.Appointment `json:"appointments"`
}

type CalendarDay struct {
	Date         time.Time `json:"date"`
	OutsideMonth bool      `json:"outside_month,omitempty"`

	// preenchido em day/week
	Cells []CalendarCell `json:"cells,omitempty"`

	// preenchido em month
	Appointments []models.Appointment `json:"appointments,omitempty"`
	Overflow     int                  `json:"overflow,omitempty"`
}

type CalendarView struct {
	View       ViewMode      `json:"view"`
	RangeStart time.Time     `json:"range_start"`
	RangeEnd   time.Time     `json:"range_end"`
	Days       []CalendarDay `json:"days"`
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// mondayOf: início da semana ISO (segunda-feira) que contém t.
func mondayOf(t time.Time) time.Time {
	d := dateOnly(t)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// ViewRange deriva o intervalo [start, end) coberto pela visão.
// month expande para semanas cheias (segunda a domingo) para o grid.
func ViewRange(view ViewMode, anchor time.Time) (time.Time, time.Time) {
	switch view {
	case ViewWeek:
		start := mondayOf(anchor)
		return start, start.AddDate(0, 0, 7)
	case ViewMonth:
		first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
		last := first.AddDate(0, 1, -1)
		return mondayOf(first), mondayOf(last).AddDate(0, 0, 7)
	default:
		start := dateOnly(anchor)
		return start, start.AddDate(0, 0, 1)
	}
}

// Project monta a estrutura que o calendário renderiza a partir da
// lista crua de agendamentos. Função pura: não altera a entrada e
// chamadas repetidas com a mesma entrada produzem a mesma saída.
func Project(appointments []models.Appointment, opts ProjectOptions) CalendarView {

	// psicólogo logado enxerga apenas a própria agenda
	if opts.RequesterRole == RolePsychologist {
		own := opts.RequesterPsychologistID
		opts.PsychologistID = &own
	}

	if opts.DayCap <= 0 {
		opts.DayCap = DefaultDayCap
	}
	if opts.SlotMinutes <= 0 {
		opts.SlotMinutes = DefaultDurationMinutes
	}
	if opts.DayEndHour <= opts.DayStartHour {
		opts.DayStartHour = DefaultDayStartHour
		opts.DayEndHour = DefaultDayEndHour
	}

	rangeStart, rangeEnd := ViewRange(opts.View, opts.Anchor)

	// filtro + dedupe por identidade (primeira ocorrência vence)
	seen := make(map[uint]bool, len(appointments))
	var included []models.Appointment
	for _, ap := range appointments {
		if ap.StartTime.Before(rangeStart) || !ap.StartTime.Before(rangeEnd) {
			continue
		}
		if opts.PsychologistID != nil && ap.PsychologistID != *opts.PsychologistID {
			continue
		}
		if opts.BranchID != nil && ap.BranchID != *opts.BranchID {
			continue
		}
		if seen[ap.ID] {
			continue
		}
		seen[ap.ID] = true
		included = append(included, ap)
	}

	sort.Slice(included, func(i, j int) bool {
		if !included[i].StartTime.Equal(included[j].StartTime) {
			return included[i].StartTime.Before(included[j].StartTime)
		}
		return included[i].ID < included[j].ID
	})

	// agrupa por data-calendário
	byDate := make(map[string][]models.Appointment)
	for _, ap := range included {
		key := ap.StartTime.Format(DateLayout)
		byDate[key] = append(byDate[key], ap)
	}

	monthStart := time.Date(opts.Anchor.Year(), opts.Anchor.Month(), 1, 0, 0, 0, 0, opts.Anchor.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)

	var days []CalendarDay
	for d := rangeStart; d.Before(rangeEnd); d = d.AddDate(0, 0, 1) {
		dayAps := byDate[d.Format(DateLayout)]

		day := CalendarDay{Date: d}
		if opts.View == ViewMonth {
			day.OutsideMonth = d.Before(monthStart) || !d.Before(monthEnd)

			if len(dayAps) > opts.DayCap {
				day.Overflow = len(dayAps) - opts.DayCap
				dayAps = dayAps[:opts.DayCap]
			}
			day.Appointments = append([]models.Appointment(nil), dayAps...)
		} else {
			day.Cells = bucketByTime(dayAps, opts)
		}

		days = append(days, day)
	}

	return CalendarView{
		View:       opts.View,
		RangeStart: rangeStart,
		RangeEnd:   rangeEnd,
		Days:       days,
	}
}

// bucketByTime distribui os agendamentos do dia em células de largura
// fixa (ex.: 08:00, 08:30, ... 19:30). Horário fora dos limites cai na
// célula da ponta mais próxima para nunca sumir da visão.
func bucketByTime(dayAps []models.Appointment, opts ProjectOptions) []CalendarCell {
	startMin := opts.DayStartHour * 60
	endMin := opts.DayEndHour * 60
	n := (endMin - startMin) / opts.SlotMinutes
	if n <= 0 {
		// passo maior que o dia: célula única cobrindo o intervalo todo
		n = 1
	}

	cells := make([]CalendarCell, n)
	for i := range cells {
		m := startMin + i*opts.SlotMinutes
		cells[i].Label = fmt.Sprintf("%02d:%02d", m/60, m%60)
	}

	for _, ap := range dayAps {
		idx := (minutesOfDay(ap.StartTime) - startMin) / opts.SlotMinutes
		if idx < 0 {
			idx = 0
		}
		if idx >= n {
			idx = n - 1
		}
		cells[idx].Appointments = append(cells[idx].Appointments, ap)
	}

	return cells
}
