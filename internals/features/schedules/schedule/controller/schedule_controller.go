package controller

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"nhatro_backend/internals/features/schedules/schedule/model"
	helper "nhatro_backend/internals/helpers"
)

type ScheduleController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewScheduleController(db *gorm.DB) *ScheduleController {
	return &ScheduleController{DB: db, Validate: validator.New()}
}

var scheduleFilterFields = map[string]string{
	"status":       "schedule_status",
	"room_id":      "room_id",
	"scheduled_at": "scheduled_at",
}

// POST /api/u/schedules
func (ctl *ScheduleController) Book(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var m model.ScheduleModel
	if err := c.BodyParser(&m); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request")
	}
	m.ScheduleID = uuid.Nil
	m.UserID = userID
	m.ScheduleStatus = model.SchedulePending
	if err := ctl.Validate.Struct(&m); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if !m.ScheduledAt.After(time.Now()) {
		return helper.JsonError(c, fiber.StatusBadRequest, "scheduled_at must be in the future")
	}

	var roomCount int64
	if err := ctl.DB.Table("rooms").Where("room_id = ? AND deleted_at IS NULL", m.RoomID).Count(&roomCount).Error; err != nil || roomCount == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Room not found")
	}

	if err := ctl.DB.Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to book appointment")
	}
	return helper.JsonCreated(c, "Appointment booked", m)
}

// GET /api/u/schedules
func (ctl *ScheduleController) ListMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var rows []model.ScheduleModel
	if err := ctl.DB.Where("user_id = ?", userID).
		Order("scheduled_at DESC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch appointments")
	}
	return helper.JsonOK(c, "OK", rows)
}

// POST /api/u/schedules/:id/cancel
// Renters may cancel while the appointment is still pending or approved.
func (ctl *ScheduleController) Cancel(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid schedule id")
	}

	var m model.ScheduleModel
	if err := ctl.DB.First(&m, "schedule_id = ? AND user_id = ?", id, userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Appointment not found")
	}
	if m.ScheduleStatus != model.SchedulePending && m.ScheduleStatus != model.ScheduleApproved {
		return helper.JsonError(c, fiber.StatusConflict, "Appointment can no longer be cancelled")
	}

	if err := ctl.DB.Model(&m).Update("schedule_status", model.ScheduleCancelled).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to cancel appointment")
	}
	m.ScheduleStatus = model.ScheduleCancelled
	return helper.JsonUpdated(c, "Appointment cancelled", m)
}

// GET /api/l/schedules
func (ctl *ScheduleController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	tx := ctl.DB.Model(&model.ScheduleModel{})
	tx, err := helper.ApplyFilter(tx, c.Query("filter"), scheduleFilterFields)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count appointments")
	}

	var rows []model.ScheduleModel
	if err := tx.Order("scheduled_at ASC").Limit(paging.Limit).Offset(paging.Offset).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch appointments")
	}

	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	pagination.Count = len(rows)
	return helper.JsonList(c, "OK", rows, pagination)
}

// POST /api/l/schedules/:id/approve
func (ctl *ScheduleController) Approve(c *fiber.Ctx) error {
	return ctl.decide(c, model.ScheduleApproved, "Appointment approved")
}

// POST /api/l/schedules/:id/reject
func (ctl *ScheduleController) Reject(c *fiber.Ctx) error {
	return ctl.decide(c, model.ScheduleRejected, "Appointment rejected")
}

func (ctl *ScheduleController) decide(c *fiber.Ctx, status, msg string) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid schedule id")
	}

	var body struct {
		ResponseNote string `json:"response_note"`
	}
	_ = c.BodyParser(&body)

	var m model.ScheduleModel
	if err := ctl.DB.First(&m, "schedule_id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Appointment not found")
	}
	if m.ScheduleStatus != model.SchedulePending {
		return helper.JsonError(c, fiber.StatusConflict, "Appointment has already been decided")
	}

	now := time.Now().UTC()
	if err := ctl.DB.Model(&m).Updates(map[string]any{
		"schedule_status": status,
		"response_note":   body.ResponseNote,
		"decided_at":      now,
	}).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update appointment")
	}
	m.ScheduleStatus = status
	m.ResponseNote = body.ResponseNote
	m.DecidedAt = &now
	return helper.JsonUpdated(c, msg, m)
}
