package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// start_time/end_time são timestamptz; tsrange(timestamptz, timestamptz)
// não existe e derrubaria o ALTER, deixando o banco sem a guarda de
// double-booking. O range correto é tstzrange.
func TestOverlapConstraintsUseTimestamptzRange(t *testing.T) {
	for _, ddl := range []string{psychologistOverlapConstraint, roomOverlapConstraint} {
		assert.Contains(t, ddl, "tstzrange(start_time, end_time)")
		assert.NotContains(t, ddl, "tsrange(start_time")
	}
}

func TestOverlapConstraintNamesMatchRepositoryMapping(t *testing.T) {
	// nomes que o repositório usa para traduzir 23P01 no tipo de conflito
	assert.Contains(t, psychologistOverlapConstraint, "appointments_psychologist_no_overlap")
	assert.Contains(t, roomOverlapConstraint, "appointments_room_no_overlap")
}

func TestOverlapConstraintsExcludeCancelledRows(t *testing.T) {
	for _, ddl := range []string{psychologistOverlapConstraint, roomOverlapConstraint} {
		assert.Contains(t, ddl, "status IN ('scheduled','confirmed','completed')")
		assert.NotContains(t, ddl, "'cancelled'")
	}
}
