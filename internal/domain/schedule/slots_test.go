package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RodrigobSilva/PsicoCare-sub000/internal/models"
)

func TestResolveSlots_SingleWindow(t *testing.T) {
	windows := []models.AvailabilityWindow{
		{PsychologistID: 1, Weekday: 2, StartTime: "08:00", EndTime: "09:00", Active: true},
	}

	slots := ResolveSlots(testDay, 30, windows, nil, nil)

	require.Len(t, slots, 2)
	assert.Equal(t, at(8, 0), slots[0].Start)
	assert.Equal(t, at(8, 30), slots[0].End)
	assert.Equal(t, at(8, 30), slots[1].Start)
	assert.Equal(t, at(9, 0), slots[1].End)
}

func TestResolveSlots_DiscardsPartialTail(t *testing.T) {
	// 08:00–09:15 com passo de 30min: a sobra de 15min não vira slot
	windows := []models.AvailabilityWindow{
		{PsychologistID: 1, Weekday: 2, StartTime: "08:00", EndTime: "09:15", Active: true},
	}

	slots := ResolveSlots(testDay, 30, windows, nil, nil)

	require.Len(t, slots, 2)
	assert.Equal(t, at(9, 0), slots[1].End)
}

func TestResolveSlots_BusySubtraction(t *testing.T) {
	windows := []models.AvailabilityWindow{
		{PsychologistID: 1, Weekday: 2, StartTime: "08:00", EndTime: "10:00", Active: true},
	}
	appointments := []models.Appointment{
		{ID: 1, PsychologistID: 1, Status: "confirmed", StartTime: at(8, 30), EndTime: at(9, 0)},
		{ID: 2, PsychologistID: 1, Status: "cancelled", StartTime: at(9, 0), EndTime: at(9, 30)},
	}

	slots := ResolveSlots(testDay, 30, windows, appointments, nil)

	// 08:00 livre, 08:30 ocupado, 09:00 liberado pelo cancelamento, 09:30 livre
	require.Len(t, slots, 3)
	assert.Equal(t, at(8, 0), slots[0].Start)
	assert.Equal(t, at(9, 0), slots[1].Start)
	assert.Equal(t, at(9, 30), slots[2].Start)
}

func TestResolveSlots_ApprovedBlockEmptiesDay(t *testing.T) {
	windows := []models.AvailabilityWindow{
		{PsychologistID: 1, Weekday: 2, StartTime: "08:00", EndTime: "12:00", Active: true},
	}
	blocks := []models.ExceptionBlock{
		{ID: 1, PsychologistID: 1, Approved: true, StartDate: testDay.AddDate(0, 0, -1), EndDate: testDay.AddDate(0, 0, 1)},
	}

	slots := ResolveSlots(testDay, 30, windows, nil, blocks)

	assert.Empty(t, slots)
	assert.NotNil(t, slots)
}

func TestResolveSlots_PendingBlockKeepsDay(t *testing.T) {
	windows := []models.AvailabilityWindow{
		{PsychologistID: 1, Weekday: 2, StartTime: "08:00", EndTime: "09:00", Active: true},
	}
	blocks := []models.ExceptionBlock{
		{ID: 1, PsychologistID: 1, Approved: false, StartDate: testDay, EndDate: testDay},
	}

	slots := ResolveSlots(testDay, 30, windows, nil, blocks)
	assert.Len(t, slots, 2)
}

func TestResolveSlots_MultipleWindowsOrdered(t *testing.T) {
	// janelas fora de ordem na entrada; saída sempre cronológica
	windows := []models.AvailabilityWindow{
		{PsychologistID: 1, Weekday: 2, StartTime: "14:00", EndTime: "15:00", Active: true},
		{PsychologistID: 1, Weekday: 2, StartTime: "08:00", EndTime: "09:00", Active: true},
	}

	slots := ResolveSlots(testDay, 60, windows, nil, nil)

	require.Len(t, slots, 2)
	assert.Equal(t, at(8, 0), slots[0].Start)
	assert.Equal(t, at(14, 0), slots[1].Start)
}

func TestResolveSlots_IgnoresOtherWeekdaysAndInactive(t *testing.T) {
	windows := []models.AvailabilityWindow{
		{PsychologistID: 1, Weekday: 3, StartTime: "08:00", EndTime: "12:00", Active: true},
		{PsychologistID: 1, Weekday: 2, StartTime: "08:00", EndTime: "12:00", Active: false},
	}

	slots := ResolveSlots(testDay, 30, windows, nil, nil)
	assert.Empty(t, slots)
}

func TestResolveSlots_ZeroGranularityFallsBack(t *testing.T) {
	windows := []models.AvailabilityWindow{
		{PsychologistID: 1, Weekday: 2, StartTime: "08:00", EndTime: "09:00", Active: true},
	}

	slots := ResolveSlots(testDay, 0, windows, nil, nil)
	assert.Len(t, slots, 2)
}

func TestResolveSlots_SlotPassesConflictCheck(t *testing.T) {
	// todo slot oferecido tem que ser agendável na hora
	windows := []models.AvailabilityWindow{
		{PsychologistID: 1, Weekday: 2, StartTime: "08:00", EndTime: "10:00", Active: true},
	}
	appointments := []models.Appointment{
		{ID: 1, PsychologistID: 1, Status: "scheduled", StartTime: at(8, 30), EndTime: at(9, 0)},
	}

	slots := ResolveSlots(testDay, 30, windows, appointments, nil)
	require.NotEmpty(t, slots)

	for _, s := range slots {
		cand := Candidate{PsychologistID: 1, Start: s.Start, End: s.End}
		res := CheckConflict(cand, appointments, nil, windows)
		assert.Truef(t, res.Ok(), "slot %s should be bookable, got %s", s.Start.Format(time.Kitchen), res.Kind)
	}
}
