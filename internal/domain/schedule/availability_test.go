package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/RodrigobSilva/PsicoCare-sub000/internal/models"
)

func TestWithinAvailability(t *testing.T) {
	windows := []models.AvailabilityWindow{
		{Weekday: 2, StartTime: "09:00", EndTime: "12:00", Active: true},
		{Weekday: 2, StartTime: "14:00", EndTime: "18:00", Active: true, RemoteEligible: true},
	}

	// inteiro dentro da janela da manhã
	assert.True(t, WithinAvailability(windows, at(9, 0), at(9, 30), false))
	// colado nas bordas da janela também vale
	assert.True(t, WithinAvailability(windows, at(9, 0), at(12, 0), false))

	// começa antes da janela
	assert.False(t, WithinAvailability(windows, at(8, 30), at(9, 30), false))
	// vaza o fim da janela
	assert.False(t, WithinAvailability(windows, at(11, 30), at(12, 30), false))
	// cai no intervalo entre as janelas
	assert.False(t, WithinAvailability(windows, at(12, 30), at(13, 0), false))

	// remoto só na janela da tarde
	assert.False(t, WithinAvailability(windows, at(9, 0), at(9, 30), true))
	assert.True(t, WithinAvailability(windows, at(14, 0), at(14, 30), true))
}

func TestWithinAvailability_WrongWeekday(t *testing.T) {
	windows := []models.AvailabilityWindow{
		{Weekday: 3, StartTime: "09:00", EndTime: "12:00", Active: true},
	}
	// testDay é terça (weekday 2)
	assert.False(t, WithinAvailability(windows, at(9, 0), at(9, 30), false))
}

func TestWithinAvailability_InactiveWindow(t *testing.T) {
	windows := []models.AvailabilityWindow{
		{Weekday: 2, StartTime: "09:00", EndTime: "12:00", Active: false},
	}
	assert.False(t, WithinAvailability(windows, at(9, 0), at(9, 30), false))
}

func TestWithinAvailability_MalformedWindow(t *testing.T) {
	windows := []models.AvailabilityWindow{
		{Weekday: 2, StartTime: "9am", EndTime: "12:00", Active: true},
	}
	assert.False(t, WithinAvailability(windows, at(9, 0), at(9, 30), false))
}

func TestBlockCovers(t *testing.T) {
	b := models.ExceptionBlock{
		Approved:  true,
		StartDate: testDay,
		EndDate:   testDay.AddDate(0, 0, 2),
	}

	// pontas inclusivas
	assert.True(t, blockCovers(b, testDay))
	assert.True(t, blockCovers(b, testDay.AddDate(0, 0, 2)))

	assert.False(t, blockCovers(b, testDay.AddDate(0, 0, -1)))
	assert.False(t, blockCovers(b, testDay.AddDate(0, 0, 3)))

	b.Approved = false
	assert.False(t, blockCovers(b, testDay))
}
