package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RodrigobSilva/PsicoCare-sub000/internal/models"
)

func calAp(id uint, psyID uint, start time.Time) models.Appointment {
	return models.Appointment{
		ID:             id,
		BranchID:       1,
		PsychologistID: psyID,
		Status:         "scheduled",
		StartTime:      start,
		EndTime:        start.Add(30 * time.Minute),
	}
}

func TestViewRange_Day(t *testing.T) {
	start, end := ViewRange(ViewDay, at(15, 45))
	assert.Equal(t, testDay, start)
	assert.Equal(t, testDay.AddDate(0, 0, 1), end)
}

func TestViewRange_WeekStartsMonday(t *testing.T) {
	// testDay é terça 2026-03-03; a semana começa segunda 2026-03-02
	start, end := ViewRange(ViewWeek, testDay)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), end)

	// domingo pertence à semana que começou na segunda anterior
	sunday := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	start, _ = ViewRange(ViewWeek, sunday)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), start)
}

func TestViewRange_MonthExpandsToFullWeeks(t *testing.T) {
	// março/2026 começa num domingo; o grid abre na segunda 23/02
	start, end := ViewRange(ViewMonth, testDay)
	assert.Equal(t, time.Date(2026, 2, 23, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 4, 6, 0, 0, 0, 0, time.UTC), end)

	days := int(end.Sub(start).Hours() / 24)
	assert.Equal(t, 0, days%7)
}

func TestProject_SortAndDedupe(t *testing.T) {
	aps := []models.Appointment{
		calAp(2, 1, at(10, 0)),
		calAp(1, 1, at(10, 0)), // mesmo horário: desempate por id
		calAp(3, 1, at(9, 0)),
		calAp(2, 1, at(10, 0)), // duplicado, descartado
	}

	view := Project(aps, ProjectOptions{View: ViewDay, Anchor: testDay})

	require.Len(t, view.Days, 1)
	var flat []uint
	for _, cell := range view.Days[0].Cells {
		for _, ap := range cell.Appointments {
			flat = append(flat, ap.ID)
		}
	}
	assert.Equal(t, []uint{3, 1, 2}, flat)
}

func TestProject_DoesNotMutateInput(t *testing.T) {
	aps := []models.Appointment{
		calAp(2, 1, at(10, 0)),
		calAp(1, 1, at(9, 0)),
	}

	Project(aps, ProjectOptions{View: ViewDay, Anchor: testDay})

	assert.Equal(t, uint(2), aps[0].ID)
	assert.Equal(t, uint(1), aps[1].ID)
}

func TestProject_Idempotent(t *testing.T) {
	aps := []models.Appointment{
		calAp(1, 1, at(9, 0)),
		calAp(2, 2, at(10, 0)),
	}
	opts := ProjectOptions{View: ViewWeek, Anchor: testDay}

	first := Project(aps, opts)
	second := Project(aps, opts)
	assert.Equal(t, first, second)
}

func TestProject_PsychologistRoleSeesOnlyOwn(t *testing.T) {
	other := uint(2)
	aps := []models.Appointment{
		calAp(1, 1, at(9, 0)),
		calAp(2, 2, at(10, 0)),
	}

	// pede a agenda da psicóloga 2, mas está logado como psicólogo 1
	view := Project(aps, ProjectOptions{
		View:                    ViewDay,
		Anchor:                  testDay,
		PsychologistID:          &other,
		RequesterRole:           RolePsychologist,
		RequesterPsychologistID: 1,
	})

	var ids []uint
	for _, cell := range view.Days[0].Cells {
		for _, ap := range cell.Appointments {
			ids = append(ids, ap.ID)
		}
	}
	assert.Equal(t, []uint{1}, ids)
}

func TestProject_BranchFilter(t *testing.T) {
	branch := uint(9)
	aps := []models.Appointment{
		calAp(1, 1, at(9, 0)),
	}
	aps[0].BranchID = 1

	view := Project(aps, ProjectOptions{View: ViewDay, Anchor: testDay, BranchID: &branch})

	for _, cell := range view.Days[0].Cells {
		assert.Empty(t, cell.Appointments)
	}
}

func TestProject_MonthCapAndOverflow(t *testing.T) {
	var aps []models.Appointment
	for i := uint(1); i <= 5; i++ {
		aps = append(aps, calAp(i, 1, at(8+int(i), 0)))
	}

	view := Project(aps, ProjectOptions{View: ViewMonth, Anchor: testDay, DayCap: 3})

	var day *CalendarDay
	for i := range view.Days {
		if view.Days[i].Date.Equal(testDay) {
			day = &view.Days[i]
			break
		}
	}
	require.NotNil(t, day)
	assert.Len(t, day.Appointments, 3)
	assert.Equal(t, 2, day.Overflow)
	assert.False(t, day.OutsideMonth)
}

func TestProject_MonthMarksOutsideDays(t *testing.T) {
	view := Project(nil, ProjectOptions{View: ViewMonth, Anchor: testDay})

	outside := make(map[string]bool)
	for _, d := range view.Days {
		outside[d.Date.Format(DateLayout)] = d.OutsideMonth
	}

	assert.True(t, outside["2026-02-23"])
	assert.False(t, outside["2026-03-01"])
	assert.False(t, outside["2026-03-31"])
	assert.True(t, outside["2026-04-01"])
}

func TestProject_DayCellsClampOutOfHours(t *testing.T) {
	aps := []models.Appointment{
		calAp(1, 1, at(6, 0)),  // antes das 08:00
		calAp(2, 1, at(22, 0)), // depois das 20:00
	}

	view := Project(aps, ProjectOptions{View: ViewDay, Anchor: testDay})

	cells := view.Days[0].Cells
	require.NotEmpty(t, cells)
	assert.Equal(t, "08:00", cells[0].Label)
	assert.Equal(t, "19:30", cells[len(cells)-1].Label)

	require.Len(t, cells[0].Appointments, 1)
	assert.Equal(t, uint(1), cells[0].Appointments[0].ID)
	require.Len(t, cells[len(cells)-1].Appointments, 1)
	assert.Equal(t, uint(2), cells[len(cells)-1].Appointments[0].ID)
}

func TestProject_OversizedSlotMinutesSingleCell(t *testing.T) {
	// passo maior que o próprio dia (08:00–20:00 = 720min) não pode
	// derrubar a projeção; vira uma célula única
	aps := []models.Appointment{
		calAp(1, 1, at(9, 0)),
		calAp(2, 1, at(19, 0)),
	}

	view := Project(aps, ProjectOptions{View: ViewDay, Anchor: testDay, SlotMinutes: 780})

	require.Len(t, view.Days, 1)
	cells := view.Days[0].Cells
	require.Len(t, cells, 1)
	assert.Equal(t, "08:00", cells[0].Label)
	require.Len(t, cells[0].Appointments, 2)
}

func TestProject_WeekHasSevenDays(t *testing.T) {
	view := Project(nil, ProjectOptions{View: ViewWeek, Anchor: testDay})
	assert.Len(t, view.Days, 7)
}
