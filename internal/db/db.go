package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/RodrigobSilva/PsicoCare-sub000/internal/config"
	"github.com/RodrigobSilva/PsicoCare-sub000/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Branch{},
		&models.Room{},
		&models.User{},
		&models.Psychologist{},
		&models.Patient{},
		&models.InsurancePlan{},
		&models.AvailabilityWindow{},
		&models.ExceptionBlock{},
		&models.Appointment{},
		&models.Visit{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	db.Exec(`
        UPDATE branches
        SET timezone = 'America/Sao_Paulo'
        WHERE timezone IS NULL OR timezone = ''
    `)

	// Guarda autoritativa contra double-booking: mesmo que duas
	// requisições passem pelo check em memória, o banco rejeita a
	// segunda (23P01). Linhas canceladas ficam de fora. Sem essas
	// constraints o serviço não pode subir.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		log.Fatalf("failed to create btree_gist extension: %v", err)
	}
	if err := db.Exec(psychologistOverlapConstraint).Error; err != nil {
		log.Fatalf("failed to create psychologist overlap constraint: %v", err)
	}
	if err := db.Exec(roomOverlapConstraint).Error; err != nil {
		log.Fatalf("failed to create room overlap constraint: %v", err)
	}

	return db
}

// As colunas start_time/end_time migram como timestamptz, então o range
// da constraint tem que ser tstzrange — tsrange não existe para
// timestamptz e o ALTER falharia na criação.
const psychologistOverlapConstraint = `
    DO $$ BEGIN
        ALTER TABLE appointments
        ADD CONSTRAINT appointments_psychologist_no_overlap
        EXCLUDE USING gist (
            psychologist_id WITH =,
            tstzrange(start_time, end_time) WITH &&
        )
        WHERE (status IN ('scheduled','confirmed','completed'));
    EXCEPTION
        WHEN duplicate_table THEN NULL;
        WHEN duplicate_object THEN NULL;
    END $$
`

const roomOverlapConstraint = `
    DO $$ BEGIN
        ALTER TABLE appointments
        ADD CONSTRAINT appointments_room_no_overlap
        EXCLUDE USING gist (
            room_id WITH =,
            tstzrange(start_time, end_time) WITH &&
        )
        WHERE (room_id IS NOT NULL AND status IN ('scheduled','confirmed','completed'));
    EXCEPTION
        WHEN duplicate_table THEN NULL;
        WHEN duplicate_object THEN NULL;
    END $$
`
