package handlers

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/RodrigobSilva/PsicoCare-sub000/internal/httperr"
	"github.com/RodrigobSilva/PsicoCare-sub000/internal/models"
)

// Gestão das janelas semanais e dos bloqueios pontuais do psicólogo.
// Janelas fora do payload são desativadas, nunca apagadas — o histórico
// de agenda precisa continuar explicável.
type AvailabilityHandler struct {
	db *gorm.DB
}

func NewAvailabilityHandler(db *gorm.DB) *AvailabilityHandler {
	return &AvailabilityHandler{db: db}
}

// ======================================================
// REQUESTS
// ======================================================

type AvailabilityWindowConfig struct {
	ID             uint   `json:"id"`
	Weekday        *int   `json:"weekday" binding:"required,min=0,max=6"`
	StartTime      string `json:"start_time" binding:"required"`
	EndTime        string `json:"end_time" binding:"required"`
	RemoteEligible bool   `json:"remote_eligible"`
	Active         bool   `json:"active"`
}

type AvailabilityUpdateRequest struct {
	Windows []AvailabilityWindowConfig `json:"windows" binding:"required,min=1"`
}

type ExceptionBlockRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Reason    string `json:"reason"`
}

// ======================================================
// WINDOWS
// ======================================================

func (h *AvailabilityHandler) GetWindows(c *gin.Context) {
	psyID, ok := paramUint(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var windows []models.AvailabilityWindow
	if err := h.db.
		Where("psychologist_id = ?", psyID).
		Order("weekday ASC, start_time ASC").
		Find(&windows).Error; err != nil {

		httperr.Internal(c, "failed_to_get_windows", "Erro ao buscar janelas.")
		return
	}

	c.JSON(http.StatusOK, windows)
}

func (h *AvailabilityHandler) UpdateWindows(c *gin.Context) {
	psyID, ok := paramUint(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var req AvailabilityUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if err := validateWindowSet(req.Windows); err != nil {
		writeScheduleError(c, err)
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		var existing []models.AvailabilityWindow
		if err := tx.
			Where("psychologist_id = ?", psyID).
			Find(&existing).Error; err != nil {
			return err
		}

		keep := make(map[uint]bool, len(req.Windows))

		for _, w := range req.Windows {
			window := models.AvailabilityWindow{
				ID:             w.ID,
				PsychologistID: psyID,
				Weekday:        *w.Weekday,
				StartTime:      w.StartTime,
				EndTime:        w.EndTime,
				RemoteEligible: w.RemoteEligible,
				Active:         w.Active,
			}
			if err := tx.Save(&window).Error; err != nil {
				return err
			}
			keep[window.ID] = true
		}

		// fora do payload → desativa, preservando o histórico
		for _, old := range existing {
			if keep[old.ID] || !old.Active {
				continue
			}
			old.Active = false
			if err := tx.Save(&old).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		httperr.Internal(c, "failed_to_save_windows", "Erro ao salvar janelas.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *AvailabilityHandler) DeleteWindow(c *gin.Context) {
	psyID, ok := paramUint(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}
	windowID, ok := paramUint(c, "wid")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var count int64
	h.db.Model(&models.AvailabilityWindow{}).
		Where("psychologist_id = ?", psyID).
		Count(&count)

	if !canRemoveWindow(count) {
		httperr.BadRequest(c, "last_window", "A última janela não pode ser removida.")
		return
	}

	if err := h.db.
		Where("id = ? AND psychologist_id = ?", windowID, psyID).
		Delete(&models.AvailabilityWindow{}).Error; err != nil {

		httperr.Internal(c, "failed_to_delete_window", "Erro ao remover janela.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// o psicólogo precisa manter ao menos uma janela cadastrada
func canRemoveWindow(total int64) bool {
	return total > 1
}

// validateWindowSet: início antes do fim e sem sobreposição no mesmo
// dia entre janelas ativas.
func validateWindowSet(windows []AvailabilityWindowConfig) error {
	type span struct {
		weekday    int
		start, end time.Time
	}

	var spans []span
	for _, w := range windows {
		start, err := time.Parse("15:04", w.StartTime)
		if err != nil {
			return httperr.ErrBusiness("invalid_time")
		}
		end, err := time.Parse("15:04", w.EndTime)
		if err != nil {
			return httperr.ErrBusiness("invalid_time")
		}
		if !start.Before(end) {
			return httperr.ErrBusiness("invalid_time_range")
		}
		if w.Active {
			spans = append(spans, span{weekday: *w.Weekday, start: start, end: end})
		}
	}

	sort.Slice(spans, func(i, j int) bool {
		if spans[i].weekday != spans[j].weekday {
			return spans[i].weekday < spans[j].weekday
		}
		return spans[i].start.Before(spans[j].start)
	})

	for i := 1; i < len(spans); i++ {
		if spans[i].weekday == spans[i-1].weekday &&
			spans[i].start.Before(spans[i-1].end) {
			return httperr.ErrBusiness("overlapping_windows")
		}
	}

	return nil
}

// ======================================================
// EXCEPTION BLOCKS
// ======================================================

func (h *AvailabilityHandler) ListBlocks(c *gin.Context) {
	psyID, ok := paramUint(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var blocks []models.ExceptionBlock
	if err := h.db.
		Where("psychologist_id = ?", psyID).
		Order("start_date ASC").
		Find(&blocks).Error; err != nil {

		httperr.Internal(c, "failed_to_get_blocks", "Erro ao buscar bloqueios.")
		return
	}

	c.JSON(http.StatusOK, blocks)
}

func (h *AvailabilityHandler) CreateBlock(c *gin.Context) {
	psyID, ok := paramUint(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var req ExceptionBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}
	if end.Before(start) {
		httperr.BadRequest(c, "invalid_date_range", "Período inválido.")
		return
	}

	block := models.ExceptionBlock{
		PsychologistID: psyID,
		StartDate:      start,
		EndDate:        end,
		Reason:         req.Reason,
		Approved:       false,
	}

	if err := h.db.Create(&block).Error; err != nil {
		httperr.Internal(c, "failed_to_create_block", "Erro ao criar bloqueio.")
		return
	}

	c.JSON(http.StatusCreated, block)
}

// Approve: só admin libera o bloqueio para valer na agenda.
func (h *AvailabilityHandler) ApproveBlock(c *gin.Context) {
	blockID, ok := paramUint(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var block models.ExceptionBlock
	if err := h.db.First(&block, blockID).Error; err != nil {
		httperr.NotFound(c, "block_not_found", "Bloqueio não encontrado.")
		return
	}

	block.Approved = true
	if err := h.db.Save(&block).Error; err != nil {
		httperr.Internal(c, "failed_to_approve_block", "Erro ao aprovar bloqueio.")
		return
	}

	c.JSON(http.StatusOK, block)
}
