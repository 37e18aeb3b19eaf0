package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/RodrigobSilva/PsicoCare-sub000/internal/domain/schedule"
	"github.com/RodrigobSilva/PsicoCare-sub000/internal/httperr"
	"github.com/RodrigobSilva/PsicoCare-sub000/internal/httpresp"
	"github.com/RodrigobSilva/PsicoCare-sub000/internal/middleware"
	ucSchedule "github.com/RodrigobSilva/PsicoCare-sub000/internal/usecase/schedule"
)

// fallback para parse de datas de filtro quando a filial ainda não
// entrou na conversa (o usecase resolve o timezone real da filial)
const defaultTimezone = "America/Sao_Paulo"

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC     *ucSchedule.CreateAppointment
	confirmUC    *ucSchedule.ConfirmAppointment
	cancelUC     *ucSchedule.CancelAppointment
	completeUC   *ucSchedule.CompleteAppointment
	rescheduleUC *ucSchedule.RescheduleAppointment
	listUC       *ucSchedule.ListAppointments
	calendarUC   *ucSchedule.ProjectCalendar
	slotsUC      *ucSchedule.GetSlots
}

func NewAppointmentHandler(
	createUC *ucSchedule.CreateAppointment,
	confirmUC *ucSchedule.ConfirmAppointment,
	cancelUC *ucSchedule.CancelAppointment,
	completeUC *ucSchedule.CompleteAppointment,
	rescheduleUC *ucSchedule.RescheduleAppointment,
	listUC *ucSchedule.ListAppointments,
	calendarUC *ucSchedule.ProjectCalendar,
	slotsUC *ucSchedule.GetSlots,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC:     createUC,
		confirmUC:    confirmUC,
		cancelUC:     cancelUC,
		completeUC:   completeUC,
		rescheduleUC: rescheduleUC,
		listUC:       listUC,
		calendarUC:   calendarUC,
		slotsUC:      slotsUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	PatientID      uint `json:"patient_id" binding:"required"`
	PsychologistID uint `json:"psychologist_id" binding:"required"`

	RoomID *uint `json:"room_id"`
	Remote bool  `json:"remote"`

	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time"`

	VisitType string `json:"visit_type"`
	Sublease  bool   `json:"sublease"`

	PrivatePay      bool     `json:"private_pay"`
	InsurancePlanID *uint    `json:"insurance_plan_id"`
	Price           *float64 `json:"price"`

	Notes string `json:"notes"`
}

type RescheduleAppointmentRequest struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`

	RoomID *uint   `json:"room_id"`
	Remote *bool   `json:"remote"`
	Notes  *string `json:"notes"`
}

// ======================================================
// HELPERS
// ======================================================

func requestContext(c *gin.Context) (userID uint, branchID uint, role string, psychologistID uint) {
	userID = c.MustGet(middleware.ContextUserID).(uint)
	branchID = c.MustGet(middleware.ContextBranchID).(uint)
	role, _ = c.MustGet(middleware.ContextUserRole).(string)
	if v, ok := c.Get(middleware.ContextPsychologistID); ok {
		psychologistID, _ = v.(uint)
	}
	return
}

func queryUint(c *gin.Context, name string) *uint {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil
	}
	v := uint(n)
	return &v
}

func paramUint(c *gin.Context, name string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(n), true
}

// writeScheduleError traduz os erros do core para a resposta HTTP.
// Conflitos saem com o detalhe exato ("conflita com o agendamento #X").
func writeScheduleError(c *gin.Context, err error) {
	var conflict domain.ConflictError
	if errors.As(err, &conflict) {
		status := http.StatusConflict
		code := "scheduling_conflict"
		if conflict.Result.Kind == domain.ConflictOutsideAvailability {
			// condição de aviso, distinta dos conflitos duros
			status = http.StatusUnprocessableEntity
			code = "outside_availability"
		}
		c.JSON(status, gin.H{
			"error":    code,
			"conflict": conflict.Result,
		})
		return
	}

	var be httperr.BusinessError
	if errors.As(err, &be) {
		switch be.Code {
		case "appointment_not_found", "patient_not_found",
			"psychologist_not_found", "room_not_found":
			httperr.NotFound(c, be.Code, "Registro não encontrado.")
		case "invalid_transition":
			httperr.BadRequest(c, be.Code, "Mudança de status não permitida.")
		case "visit_required":
			httperr.BadRequest(c, be.Code, "Registre o atendimento antes de concluir.")
		case "appointment_locked":
			httperr.BadRequest(c, be.Code, "Agendamento encerrado não pode ser alterado.")
		default:
			httperr.BadRequest(c, be.Code, "Dados inválidos.")
		}
		return
	}

	httperr.Internal(c, "internal_error", "Erro interno.")
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	userID, branchID, _, _ := requestContext(c)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), ucSchedule.CreateAppointmentInput{
		BranchID:        branchID,
		PatientID:       req.PatientID,
		PsychologistID:  req.PsychologistID,
		RoomID:          req.RoomID,
		Remote:          req.Remote,
		Date:            req.Date,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		VisitType:       req.VisitType,
		Sublease:        req.Sublease,
		PrivatePay:      req.PrivatePay,
		InsurancePlanID: req.InsurancePlanID,
		Price:           req.Price,
		Notes:           req.Notes,
		UserID:          &userID,
		RequestID:       middleware.RequestID(c),
	})
	if err != nil {
		writeScheduleError(c, err)
		return
	}

	httpresp.Created(c, result)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	_, branchID, role, psyID := requestContext(c)

	dateStr := c.Query("date")
	startStr := c.Query("start")
	endStr := c.Query("end")

	var start, end time.Time
	var err error

	loc, _ := time.LoadLocation(defaultTimezone)
	switch {
	case dateStr != "":
		start, err = time.ParseInLocation("2006-01-02", dateStr, loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Data inválida.")
			return
		}
		end = start.AddDate(0, 0, 1)
	case startStr != "" && endStr != "":
		start, err = time.ParseInLocation("2006-01-02", startStr, loc)
		if err == nil {
			end, err = time.ParseInLocation("2006-01-02", endStr, loc)
		}
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Data inválida.")
			return
		}
	default:
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	psyFilter := queryUint(c, "psychologist_id")
	branchFilter := queryUint(c, "branch_id")
	if branchFilter == nil {
		branchFilter = &branchID
	}

	// psicólogo só enxerga a própria agenda
	if role == domain.RolePsychologist {
		psyFilter = &psyID
	}

	items, err := h.listUC.Execute(c.Request.Context(), branchFilter, psyFilter, start, end)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	httpresp.List(c, items)
}

// ======================================================
// CALENDAR
// ======================================================

func (h *AppointmentHandler) Calendar(c *gin.Context) {
	_, branchID, role, psyID := requestContext(c)

	anchor := c.Query("anchor")
	if anchor == "" {
		httperr.BadRequest(c, "missing_anchor", "Data de referência obrigatória.")
		return
	}

	view := c.DefaultQuery("view", string(domain.ViewWeek))

	projected, err := h.calendarUC.Execute(c.Request.Context(), ucSchedule.ProjectCalendarInput{
		View:                    view,
		Anchor:                  anchor,
		BranchID:                branchID,
		PsychologistFilter:      queryUint(c, "psychologist_id"),
		BranchFilter:            queryUint(c, "branch_id"),
		RequesterRole:           role,
		RequesterPsychologistID: psyID,
	})
	if err != nil {
		writeScheduleError(c, err)
		return
	}

	httpresp.OK(c, projected)
}

// ======================================================
// SLOTS
// ======================================================

func (h *AppointmentHandler) Slots(c *gin.Context) {
	psyFilter := queryUint(c, "psychologist_id")
	if psyFilter == nil {
		httperr.BadRequest(c, "missing_psychologist", "Psicólogo obrigatório.")
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	granularity := 0
	if raw := c.Query("granularity"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			granularity = n
		}
	}

	slots, err := h.slotsUC.Execute(c.Request.Context(), ucSchedule.GetSlotsInput{
		PsychologistID: *psyFilter,
		Date:           dateStr,
		GranularityMin: granularity,
		Remote:         c.Query("remote") == "true",
	})
	if err != nil {
		writeScheduleError(c, err)
		return
	}

	httpresp.List(c, slots)
}

// ======================================================
// RESCHEDULE
// ======================================================

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	userID, branchID, _, _ := requestContext(c)

	id, ok := paramUint(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var req RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.rescheduleUC.Execute(c.Request.Context(), ucSchedule.RescheduleAppointmentInput{
		BranchID:      branchID,
		AppointmentID: id,
		Date:          req.Date,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		RoomID:        req.RoomID,
		Remote:        req.Remote,
		Notes:         req.Notes,
		UserID:        &userID,
		RequestID:     middleware.RequestID(c),
	})
	if err != nil {
		writeScheduleError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// STATUS TRANSITIONS
// ======================================================

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	h.transition(c, func(c *gin.Context, branchID, id, userID uint) (any, error) {
		return h.confirmUC.Execute(c.Request.Context(), branchID, id, &userID, middleware.RequestID(c))
	})
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.transition(c, func(c *gin.Context, branchID, id, userID uint) (any, error) {
		return h.cancelUC.Execute(c.Request.Context(), branchID, id, &userID, middleware.RequestID(c))
	})
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.transition(c, func(c *gin.Context, branchID, id, userID uint) (any, error) {
		return h.completeUC.Execute(c.Request.Context(), branchID, id, &userID, middleware.RequestID(c))
	})
}

func (h *AppointmentHandler) transition(
	c *gin.Context,
	run func(c *gin.Context, branchID, id, userID uint) (any, error),
) {
	userID, branchID, _, _ := requestContext(c)

	id, ok := paramUint(c, "id")
	if !ok {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	ap, err := run(c, branchID, id, userID)
	if err != nil {
		writeScheduleError(c, err)
		return
	}

	httpresp.OK(c, ap)
}
