package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RodrigobSilva/PsicoCare-sub000/internal/httperr"
	"github.com/RodrigobSilva/PsicoCare-sub000/internal/models"
)

func businessCode(t *testing.T, err error) string {
	t.Helper()
	var be httperr.BusinessError
	require.ErrorAs(t, err, &be)
	return be.Code
}

func TestStatusTransitions(t *testing.T) {
	assert.True(t, CanTransition(StatusScheduled, StatusConfirmed))
	assert.True(t, CanTransition(StatusScheduled, StatusCancelled))
	assert.True(t, CanTransition(StatusConfirmed, StatusCompleted))
	assert.True(t, CanTransition(StatusConfirmed, StatusCancelled))

	// agendado não pula direto para concluído
	assert.False(t, CanTransition(StatusScheduled, StatusCompleted))
	assert.False(t, CanTransition(StatusCancelled, StatusScheduled))
	assert.False(t, CanTransition(StatusCompleted, StatusCancelled))
	assert.False(t, CanTransition(StatusCompleted, StatusConfirmed))
}

func TestStatusTerminal(t *testing.T) {
	assert.False(t, Status("scheduled").Terminal())
	assert.False(t, Status("confirmed").Terminal())
	assert.True(t, Status("cancelled").Terminal())
	assert.True(t, Status("completed").Terminal())
}

func TestConfirm(t *testing.T) {
	now := at(12, 0)
	ap := &models.Appointment{Status: "scheduled"}

	require.NoError(t, Confirm(ap, now))
	assert.Equal(t, "confirmed", ap.Status)
	require.NotNil(t, ap.ConfirmedAt)
	assert.Equal(t, now, *ap.ConfirmedAt)

	// reconfirmar é transição inválida
	err := Confirm(ap, now)
	assert.Equal(t, "invalid_transition", businessCode(t, err))
}

func TestCancelFromBothActiveStates(t *testing.T) {
	now := at(12, 0)

	scheduled := &models.Appointment{Status: "scheduled"}
	require.NoError(t, Cancel(scheduled, now))
	assert.Equal(t, "cancelled", scheduled.Status)

	confirmed := &models.Appointment{Status: "confirmed"}
	require.NoError(t, Cancel(confirmed, now))
	require.NotNil(t, confirmed.CancelledAt)

	err := Cancel(confirmed, now)
	assert.Equal(t, "invalid_transition", businessCode(t, err))
}

func TestCompleteRequiresVisit(t *testing.T) {
	now := at(12, 0)
	ap := &models.Appointment{Status: "confirmed"}

	err := Complete(ap, now, false)
	assert.Equal(t, "visit_required", businessCode(t, err))
	assert.Equal(t, "confirmed", ap.Status)

	require.NoError(t, Complete(ap, now, true))
	assert.Equal(t, "completed", ap.Status)
	require.NotNil(t, ap.CompletedAt)
}

func TestCompleteFromScheduledRejected(t *testing.T) {
	ap := &models.Appointment{Status: "scheduled"}
	err := Complete(ap, at(12, 0), true)
	assert.Equal(t, "invalid_transition", businessCode(t, err))
}

func TestSetRemoteClearsRoom(t *testing.T) {
	ap := &models.Appointment{}
	SetRoom(ap, 42)
	require.NotNil(t, ap.RoomID)
	assert.Equal(t, uint(42), *ap.RoomID)
	assert.False(t, ap.Remote)

	SetRemote(ap, true)
	assert.True(t, ap.Remote)
	assert.Nil(t, ap.RoomID)

	SetRoom(ap, 7)
	assert.False(t, ap.Remote)
	assert.Equal(t, uint(7), *ap.RoomID)
}

func TestCanEditSchedule(t *testing.T) {
	assert.True(t, CanEditSchedule(&models.Appointment{Status: "scheduled"}))
	assert.True(t, CanEditSchedule(&models.Appointment{Status: "confirmed"}))
	assert.False(t, CanEditSchedule(&models.Appointment{Status: "cancelled"}))
	assert.False(t, CanEditSchedule(&models.Appointment{Status: "completed"}))
}

func TestDefaultEnd(t *testing.T) {
	assert.Equal(t, at(9, 30), DefaultEnd(at(9, 0)))
}

func TestValidateTimes(t *testing.T) {
	assert.NoError(t, ValidateTimes(at(9, 0), at(9, 30)))

	err := ValidateTimes(at(9, 30), at(9, 0))
	assert.Equal(t, "invalid_time_range", businessCode(t, err))

	err = ValidateTimes(at(9, 0), at(9, 0))
	assert.Equal(t, "invalid_time_range", businessCode(t, err))
}

func TestValidateBilling(t *testing.T) {
	now := at(12, 0)
	valid := now.AddDate(1, 0, 0)
	expired := now.AddDate(-1, 0, 0)

	patient := &models.Patient{MembershipNumber: "ABC-123", MembershipValidUntil: &valid}

	t.Run("private pay", func(t *testing.T) {
		ap := &models.Appointment{PrivatePay: true}
		assert.NoError(t, ValidateBilling(ap, patient, now))
	})

	t.Run("private pay with plan", func(t *testing.T) {
		ap := &models.Appointment{PrivatePay: true, InsurancePlanID: uintPtr(1)}
		err := ValidateBilling(ap, patient, now)
		assert.Equal(t, "private_pay_with_plan", businessCode(t, err))
	})

	t.Run("insurance ok", func(t *testing.T) {
		ap := &models.Appointment{InsurancePlanID: uintPtr(1)}
		assert.NoError(t, ValidateBilling(ap, patient, now))
	})

	t.Run("plan missing", func(t *testing.T) {
		ap := &models.Appointment{}
		err := ValidateBilling(ap, patient, now)
		assert.Equal(t, "insurance_plan_required", businessCode(t, err))
	})

	t.Run("membership missing", func(t *testing.T) {
		ap := &models.Appointment{InsurancePlanID: uintPtr(1)}
		err := ValidateBilling(ap, &models.Patient{}, now)
		assert.Equal(t, "membership_missing", businessCode(t, err))
	})

	t.Run("membership expired", func(t *testing.T) {
		ap := &models.Appointment{InsurancePlanID: uintPtr(1)}
		p := &models.Patient{MembershipNumber: "ABC-123", MembershipValidUntil: &expired}
		err := ValidateBilling(ap, p, now)
		assert.Equal(t, "membership_expired", businessCode(t, err))
	})
}
