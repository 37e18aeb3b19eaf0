package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/RodrigobSilva/PsicoCare-sub000/internal/domain/schedule"
	"github.com/RodrigobSilva/PsicoCare-sub000/internal/httperr"
	"github.com/RodrigobSilva/PsicoCare-sub000/internal/models"
)

const (
	constraintPsychologistOverlap = "appointments_psychologist_no_overlap"
	constraintRoomOverlap         = "appointments_room_no_overlap"
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

// --------------------------------------------------
// Lookups
// --------------------------------------------------

func (r *ScheduleGormRepository) GetBranch(
	ctx context.Context,
	id uint,
) (*models.Branch, error) {

	var branch models.Branch
	if err := r.db.WithContext(ctx).First(&branch, id).Error; err != nil {
		return nil, err
	}
	return &branch, nil
}

func (r *ScheduleGormRepository) GetPatient(
	ctx context.Context,
	id uint,
) (*models.Patient, error) {

	var patient models.Patient
	if err := r.db.WithContext(ctx).First(&patient, id).Error; err != nil {
		return nil, err
	}
	return &patient, nil
}

func (r *ScheduleGormRepository) GetPsychologist(
	ctx context.Context,
	id uint,
) (*models.Psychologist, error) {

	var psy models.Psychologist
	if err := r.db.WithContext(ctx).First(&psy, id).Error; err != nil {
		return nil, err
	}
	return &psy, nil
}

func (r *ScheduleGormRepository) GetRoom(
	ctx context.Context,
	id uint,
) (*models.Room, error) {

	var room models.Room
	if err := r.db.WithContext(ctx).First(&room, id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

// --------------------------------------------------
// Appointment (read)
// --------------------------------------------------

func (r *ScheduleGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Psychologist").
		Preload("Room").
		First(&ap, id).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *ScheduleGormRepository) ListForPsychologist(
	ctx context.Context,
	psychologistID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"psychologist_id = ? AND start_time < ? AND end_time > ?",
			psychologistID, end, start,
		).
		Order("start_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

func (r *ScheduleGormRepository) ListForRoom(
	ctx context.Context,
	roomID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"room_id = ? AND start_time < ? AND end_time > ?",
			roomID, end, start,
		).
		Order("start_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

func (r *ScheduleGormRepository) ListForRange(
	ctx context.Context,
	branchID *uint,
	psychologistID *uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Psychologist").
		Preload("Room").
		Where("start_time >= ? AND start_time < ?", start, end)

	if branchID != nil {
		q = q.Where("branch_id = ?", *branchID)
	}
	if psychologistID != nil {
		q = q.Where("psychologist_id = ?", *psychologistID)
	}

	var aps []models.Appointment
	if err := q.Order("start_time ASC").Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

// --------------------------------------------------
// Appointment (write)
// --------------------------------------------------

// overlapUnderLock retesta o overlap dentro da transação, com lock das
// linhas concorrentes, e devolve o ConflictError exato.
func overlapUnderLock(
	tx *gorm.DB,
	ap *models.Appointment,
) error {

	var conflicts []models.Appointment
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"psychologist_id = ? AND id <> ? AND status IN ? AND start_time < ? AND end_time > ?",
			ap.PsychologistID, ap.ID, overlapStatuses(), ap.EndTime, ap.StartTime,
		).
		Limit(1).
		Find(&conflicts).Error; err != nil {
		return err
	}
	if len(conflicts) > 0 {
		return domain.ConflictError{Result: domain.ConflictResult{
			Kind:          domain.ConflictPsychologistOverlap,
			AppointmentID: conflicts[0].ID,
		}}
	}

	if ap.RoomID == nil {
		return nil
	}

	conflicts = conflicts[:0]
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"room_id = ? AND id <> ? AND status IN ? AND start_time < ? AND end_time > ?",
			*ap.RoomID, ap.ID, overlapStatuses(), ap.EndTime, ap.StartTime,
		).
		Limit(1).
		Find(&conflicts).Error; err != nil {
		return err
	}
	if len(conflicts) > 0 {
		return domain.ConflictError{Result: domain.ConflictResult{
			Kind:          domain.ConflictRoomOverlap,
			AppointmentID: conflicts[0].ID,
		}}
	}

	return nil
}

func overlapStatuses() []string {
	return []string{
		string(domain.StatusScheduled),
		string(domain.StatusConfirmed),
		string(domain.StatusCompleted),
	}
}

func (r *ScheduleGormRepository) CreateAppointmentChecked(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := overlapUnderLock(tx, ap); err != nil {
			return err
		}
		return tx.Create(ap).Error
	})

	return mapExclusion(err)
}

func (r *ScheduleGormRepository) UpdateAppointmentChecked(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := overlapUnderLock(tx, ap); err != nil {
			return err
		}
		return tx.Save(ap).Error
	})

	return mapExclusion(err)
}

func (r *ScheduleGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// mapExclusion traduz a violação da constraint EXCLUDE (perdemos a
// corrida mesmo com o lock) no mesmo ConflictError do caminho rápido.
func mapExclusion(err error) error {
	if err == nil || !httperr.IsExclusionConflict(err) {
		return err
	}

	kind := domain.ConflictPsychologistOverlap
	if httperr.ConstraintName(err) == constraintRoomOverlap {
		kind = domain.ConflictRoomOverlap
	}
	return domain.ConflictError{Result: domain.ConflictResult{Kind: kind}}
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *ScheduleGormRepository) ListWindows(
	ctx context.Context,
	psychologistID uint,
) ([]models.AvailabilityWindow, error) {

	var windows []models.AvailabilityWindow
	if err := r.db.WithContext(ctx).
		Where("psychologist_id = ?", psychologistID).
		Order("weekday ASC, start_time ASC").
		Find(&windows).Error; err != nil {
		return nil, err
	}
	return windows, nil
}

func (r *ScheduleGormRepository) ListBlocks(
	ctx context.Context,
	psychologistID uint,
	start time.Time,
	end time.Time,
) ([]models.ExceptionBlock, error) {

	var blocks []models.ExceptionBlock
	if err := r.db.WithContext(ctx).
		Where(
			"psychologist_id = ? AND start_date <= ? AND end_date >= ?",
			psychologistID, end, start,
		).
		Order("start_date ASC").
		Find(&blocks).Error; err != nil {
		return nil, err
	}
	return blocks, nil
}

// --------------------------------------------------
// Visit
// --------------------------------------------------

func (r *ScheduleGormRepository) HasVisit(
	ctx context.Context,
	appointmentID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Visit{}).
		Where("appointment_id = ?", appointmentID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Compile-time check
var _ domain.Repository = (*ScheduleGormRepository)(nil)
