package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/RodrigobSilva/PsicoCare-sub000/internal/httperr"
	"github.com/RodrigobSilva/PsicoCare-sub000/internal/httpresp"
	"github.com/RodrigobSilva/PsicoCare-sub000/internal/models"
)

// Consultas de apoio para os seletores da agenda (filial, sala,
// psicólogo). O CRUD completo dessas entidades vive em outro serviço.
type ClinicHandler struct {
	db *gorm.DB
}

func NewClinicHandler(db *gorm.DB) *ClinicHandler {
	return &ClinicHandler{db: db}
}

func (h *ClinicHandler) ListBranches(c *gin.Context) {
	var branches []models.Branch
	if err := h.db.
		Where("active = ?", true).
		Order("name ASC").
		Find(&branches).Error; err != nil {

		httperr.Internal(c, "failed_to_list_branches", "Erro ao listar filiais.")
		return
	}

	httpresp.List(c, branches)
}

func (h *ClinicHandler) ListRooms(c *gin.Context) {
	branchID, ok := paramUint(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var rooms []models.Room
	if err := h.db.
		Where("branch_id = ? AND active = ?", branchID, true).
		Order("name ASC").
		Find(&rooms).Error; err != nil {

		httperr.Internal(c, "failed_to_list_rooms", "Erro ao listar salas.")
		return
	}

	httpresp.List(c, rooms)
}

func (h *ClinicHandler) ListPsychologists(c *gin.Context) {
	var psychologists []models.Psychologist
	q := h.db.Where("active = ?", true)

	if branchID := queryUint(c, "branch_id"); branchID != nil {
		q = q.Where("branch_id = ?", *branchID)
	}

	if err := q.Order("name ASC").Find(&psychologists).Error; err != nil {
		httperr.Internal(c, "failed_to_list_psychologists", "Erro ao listar psicólogos.")
		return
	}

	httpresp.List(c, psychologists)
}
