package schedule

import (
	"fmt"
	"time"

	"github.com/RodrigobSilva/PsicoCare-sub000/internal/models"
)

// ===============================
// Conflict Detection
// ===============================

type ConflictKind string

const (
	ConflictNone                ConflictKind = "none"
	ConflictPsychologistOverlap ConflictKind = "psychologist_overlap"
	ConflictRoomOverlap         ConflictKind = "room_overlap"
	ConflictExceptionBlocked    ConflictKind = "exception_blocked"
	ConflictOutsideAvailability ConflictKind = "outside_availability"
)

type ConflictResult struct {
	Kind ConflictKind `json:"kind"`

	// id do agendamento em conflito (overlaps)
	AppointmentID uint `json:"appointment_id,omitempty"`
	// id do bloqueio (exception_blocked)
	BlockID uint `json:"block_id,omitempty"`
}

func (r ConflictResult) Ok() bool {
	return r.Kind == ConflictNone
}

// ConflictError carrega o resultado exato para a camada HTTP mostrar
// "conflita com o agendamento #X".
type ConflictError struct {
	Result ConflictResult
}

func (e ConflictError) Error() string {
	switch e.Result.Kind {
	case ConflictPsychologistOverlap, ConflictRoomOverlap:
		return fmt.Sprintf("scheduling_conflict: %s with appointment %d", e.Result.Kind, e.Result.AppointmentID)
	case ConflictExceptionBlocked:
		return fmt.Sprintf("scheduling_conflict: blocked by exception %d", e.Result.BlockID)
	}
	return "scheduling_conflict: " + string(e.Result.Kind)
}

// Candidate é o agendamento proposto. AppointmentID fica zero na
// criação; na remarcação exclui o próprio registro do teste de overlap.
type Candidate struct {
	AppointmentID  uint
	PsychologistID uint
	RoomID         *uint
	Remote         bool
	Start          time.Time
	End            time.Time
}

// Overlaps: intervalos meio-abertos [aStart,aEnd) e [bStart,bEnd).
// Sessão que termina às 09:30 não conflita com a que começa às 09:30.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// CheckConflict é puro: decide só sobre o que recebeu.
//
// Ordem fixa de avaliação — overlap de psicólogo, overlap de sala,
// bloqueio, disponibilidade — com curto-circuito no primeiro achado.
// A ordem faz parte do contrato: mensagens de erro determinísticas.
func CheckConflict(
	cand Candidate,
	existing []models.Appointment,
	blocks []models.ExceptionBlock,
	windows []models.AvailabilityWindow,
) ConflictResult {

	// 1. duplo agendamento do psicólogo (a pior falha, testada primeiro)
	for _, ap := range existing {
		if ap.ID != 0 && ap.ID == cand.AppointmentID {
			continue
		}
		if !Status(ap.Status).CountsForOverlap() {
			continue
		}
		if ap.PsychologistID != cand.PsychologistID {
			continue
		}
		if Overlaps(cand.Start, cand.End, ap.StartTime, ap.EndTime) {
			return ConflictResult{Kind: ConflictPsychologistOverlap, AppointmentID: ap.ID}
		}
	}

	// 2. sala ocupada (só quando há sala)
	if cand.RoomID != nil {
		for _, ap := range existing {
			if ap.ID != 0 && ap.ID == cand.AppointmentID {
				continue
			}
			if !Status(ap.Status).CountsForOverlap() {
				continue
			}
			if ap.RoomID == nil || *ap.RoomID != *cand.RoomID {
				continue
			}
			if Overlaps(cand.Start, cand.End, ap.StartTime, ap.EndTime) {
				return ConflictResult{Kind: ConflictRoomOverlap, AppointmentID: ap.ID}
			}
		}
	}

	// 3. bloqueio aprovado cobrindo a data
	for _, b := range blocks {
		if b.PsychologistID != cand.PsychologistID {
			continue
		}
		if blockCovers(b, cand.Start) {
			return ConflictResult{Kind: ConflictExceptionBlocked, BlockID: b.ID}
		}
	}

	// 4. fora das janelas declaradas
	if !WithinAvailability(windows, cand.Start, cand.End, cand.Remote) {
		return ConflictResult{Kind: ConflictOutsideAvailability}
	}

	return ConflictResult{Kind: ConflictNone}
}
