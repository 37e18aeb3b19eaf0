package schedule

import (
	"sort"
	"time"

	"github.com/RodrigobSilva/PsicoCare-sub000/internal/models"
)

type Slot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ResolveSlots gera os horários livres de um psicólogo na data:
// janelas ativas do dia da semana, fatiadas na granularidade, menos os
// agendamentos não cancelados e os bloqueios aprovados.
//
// Os cortes são alinhados ao início de cada janela; sobra de janela que
// não fecha um slot inteiro é descartada — nunca oferecemos slot parcial.
// Saída ordenada por início, janela a janela.
func ResolveSlots(
	date time.Time,
	granularityMin int,
	windows []models.AvailabilityWindow,
	appointments []models.Appointment,
	blocks []models.ExceptionBlock,
) []Slot {

	if granularityMin <= 0 {
		granularityMin = DefaultDurationMinutes
	}

	// bloqueio aprovado cobrindo a data zera o dia inteiro
	for _, b := range blocks {
		if blockCovers(b, date) {
			return []Slot{}
		}
	}

	weekday := int(date.Weekday())

	var active []models.AvailabilityWindow
	for _, w := range windows {
		if w.Active && w.Weekday == weekday {
			active = append(active, w)
		}
	}
	sort.Slice(active, func(i, j int) bool {
		return active[i].StartTime < active[j].StartTime
	})

	var busy []models.Appointment
	for _, ap := range appointments {
		if Status(ap.Status).CountsForOverlap() {
			busy = append(busy, ap)
		}
	}

	step := time.Duration(granularityMin) * time.Minute
	slots := []Slot{}

	for _, w := range active {
		winStart, ok := clockAt(date, w.StartTime)
		if !ok {
			continue
		}
		winEnd, ok := clockAt(date, w.EndTime)
		if !ok {
			continue
		}

		for cur := winStart; !cur.Add(step).After(winEnd); cur = cur.Add(step) {
			slotStart := cur
			slotEnd := cur.Add(step)

			taken := false
			for _, ap := range busy {
				if Overlaps(slotStart, slotEnd, ap.StartTime, ap.EndTime) {
					taken = true
					break
				}
			}

			if !taken {
				slots = append(slots, Slot{Start: slotStart, End: slotEnd})
			}
		}
	}

	return slots
}
