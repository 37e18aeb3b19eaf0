package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RodrigobSilva/PsicoCare-sub000/internal/models"
)

// terça-feira, 2026-03-03
var testDay = time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)

func at(h, m int) time.Time {
	return testDay.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

func uintPtr(v uint) *uint {
	return &v
}

func fullDayWindow(weekday int) models.AvailabilityWindow {
	return models.AvailabilityWindow{
		PsychologistID: 1,
		Weekday:        weekday,
		StartTime:      "08:00",
		EndTime:        "20:00",
		Active:         true,
	}
}

func TestOverlaps_HalfOpen(t *testing.T) {
	// fim às 10:00 não conflita com início às 10:00
	assert.False(t, Overlaps(at(9, 0), at(10, 0), at(10, 0), at(11, 0)))
	assert.False(t, Overlaps(at(10, 0), at(11, 0), at(9, 0), at(10, 0)))

	assert.True(t, Overlaps(at(9, 0), at(9, 30), at(9, 15), at(9, 45)))
	assert.True(t, Overlaps(at(9, 15), at(9, 45), at(9, 0), at(9, 30)))
	assert.True(t, Overlaps(at(9, 0), at(11, 0), at(9, 30), at(10, 0)))
}

func TestCheckConflict_PsychologistOverlap(t *testing.T) {
	existing := []models.Appointment{
		{ID: 7, PsychologistID: 1, Status: "scheduled", StartTime: at(9, 0), EndTime: at(9, 30)},
	}

	cand := Candidate{PsychologistID: 1, Start: at(9, 15), End: at(9, 45)}
	res := CheckConflict(cand, existing, nil, []models.AvailabilityWindow{fullDayWindow(2)})

	require.Equal(t, ConflictPsychologistOverlap, res.Kind)
	assert.Equal(t, uint(7), res.AppointmentID)
	assert.False(t, res.Ok())
}

func TestCheckConflict_CancelledFreesTheSlot(t *testing.T) {
	existing := []models.Appointment{
		{ID: 7, PsychologistID: 1, Status: "cancelled", StartTime: at(9, 0), EndTime: at(9, 30)},
	}

	cand := Candidate{PsychologistID: 1, Start: at(9, 0), End: at(9, 30)}
	res := CheckConflict(cand, existing, nil, []models.AvailabilityWindow{fullDayWindow(2)})

	assert.True(t, res.Ok())
}

func TestCheckConflict_BackToBackOk(t *testing.T) {
	existing := []models.Appointment{
		{ID: 7, PsychologistID: 1, Status: "confirmed", StartTime: at(9, 0), EndTime: at(9, 30)},
	}

	cand := Candidate{PsychologistID: 1, Start: at(9, 30), End: at(10, 0)}
	res := CheckConflict(cand, existing, nil, []models.AvailabilityWindow{fullDayWindow(2)})

	assert.True(t, res.Ok())
}

func TestCheckConflict_RoomOverlap(t *testing.T) {
	// outra psicóloga, mesma sala, mesmo horário
	existing := []models.Appointment{
		{ID: 12, PsychologistID: 2, RoomID: uintPtr(5), Status: "scheduled", StartTime: at(10, 0), EndTime: at(10, 30)},
	}

	cand := Candidate{PsychologistID: 1, RoomID: uintPtr(5), Start: at(10, 0), End: at(10, 30)}
	res := CheckConflict(cand, existing, nil, []models.AvailabilityWindow{fullDayWindow(2)})

	require.Equal(t, ConflictRoomOverlap, res.Kind)
	assert.Equal(t, uint(12), res.AppointmentID)
}

func TestCheckConflict_RemoteIgnoresRooms(t *testing.T) {
	existing := []models.Appointment{
		{ID: 12, PsychologistID: 2, RoomID: uintPtr(5), Status: "scheduled", StartTime: at(10, 0), EndTime: at(10, 30)},
	}

	win := fullDayWindow(2)
	win.RemoteEligible = true

	cand := Candidate{PsychologistID: 1, Remote: true, Start: at(10, 0), End: at(10, 30)}
	res := CheckConflict(cand, existing, nil, []models.AvailabilityWindow{win})

	assert.True(t, res.Ok())
}

func TestCheckConflict_PsychologistBeforeRoom(t *testing.T) {
	// os dois conflitos existem; o do psicólogo vence
	existing := []models.Appointment{
		{ID: 3, PsychologistID: 2, RoomID: uintPtr(5), Status: "scheduled", StartTime: at(10, 0), EndTime: at(10, 30)},
		{ID: 4, PsychologistID: 1, Status: "scheduled", StartTime: at(10, 0), EndTime: at(10, 30)},
	}

	cand := Candidate{PsychologistID: 1, RoomID: uintPtr(5), Start: at(10, 0), End: at(10, 30)}
	res := CheckConflict(cand, existing, nil, []models.AvailabilityWindow{fullDayWindow(2)})

	require.Equal(t, ConflictPsychologistOverlap, res.Kind)
	assert.Equal(t, uint(4), res.AppointmentID)
}

func TestCheckConflict_ExceptionBlocked(t *testing.T) {
	blocks := []models.ExceptionBlock{
		{ID: 9, PsychologistID: 1, Approved: true, StartDate: testDay, EndDate: testDay.AddDate(0, 0, 4)},
	}

	cand := Candidate{PsychologistID: 1, Start: at(10, 0), End: at(10, 30)}
	res := CheckConflict(cand, nil, blocks, []models.AvailabilityWindow{fullDayWindow(2)})

	require.Equal(t, ConflictExceptionBlocked, res.Kind)
	assert.Equal(t, uint(9), res.BlockID)
}

func TestCheckConflict_PendingBlockIgnored(t *testing.T) {
	blocks := []models.ExceptionBlock{
		{ID: 9, PsychologistID: 1, Approved: false, StartDate: testDay, EndDate: testDay},
	}

	cand := Candidate{PsychologistID: 1, Start: at(10, 0), End: at(10, 30)}
	res := CheckConflict(cand, nil, blocks, []models.AvailabilityWindow{fullDayWindow(2)})

	assert.True(t, res.Ok())
}

func TestCheckConflict_RemoteOutsideEligibleWindow(t *testing.T) {
	// janela cobre o horário mas não aceita remoto
	cand := Candidate{PsychologistID: 1, Remote: true, Start: at(10, 0), End: at(10, 30)}
	res := CheckConflict(cand, nil, nil, []models.AvailabilityWindow{fullDayWindow(2)})

	assert.Equal(t, ConflictOutsideAvailability, res.Kind)
}

func TestCheckConflict_SelfExcludedOnReschedule(t *testing.T) {
	existing := []models.Appointment{
		{ID: 7, PsychologistID: 1, Status: "scheduled", StartTime: at(9, 0), EndTime: at(9, 30)},
	}

	// remarcação do próprio 7 para um horário que encosta nele mesmo
	cand := Candidate{AppointmentID: 7, PsychologistID: 1, Start: at(9, 15), End: at(9, 45)}
	res := CheckConflict(cand, existing, nil, []models.AvailabilityWindow{fullDayWindow(2)})

	assert.True(t, res.Ok())
}

func TestConflictError_Message(t *testing.T) {
	err := ConflictError{Result: ConflictResult{Kind: ConflictPsychologistOverlap, AppointmentID: 42}}
	assert.Contains(t, err.Error(), "appointment 42")

	err = ConflictError{Result: ConflictResult{Kind: ConflictOutsideAvailability}}
	assert.Contains(t, err.Error(), "outside_availability")
}
