package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"nhatro_backend/internals/features/rooms/rooms/dto"
	"nhatro_backend/internals/features/rooms/rooms/model"
	helper "nhatro_backend/internals/helpers"
)

type RoomController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewRoomController(db *gorm.DB) *RoomController {
	return &RoomController{DB: db, Validate: validator.New()}
}

// filter DSL whitelist for room listing. DSL field → column.
var roomFilterFields = map[string]string{
	"room_number":   "room_number",
	"floor":         "room_floor",
	"area":          "room_area",
	"max_occupancy": "room_max_occupancy",
	"rent_price":    "room_rent_price",
	"status":        "room_status",
}

// GET /api/rooms — public listing with the filter DSL, e.g.
// ?filter=rent_price <= 3000000 and floor = 2 and status = AVAILABLE
func (ctl *RoomController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	tx := ctl.DB.Model(&model.RoomModel{})
	tx, err := helper.ApplyFilter(tx, c.Query("filter"), roomFilterFields)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count rooms")
	}

	var rows []model.RoomModel
	if err := tx.Order("room_floor ASC, room_number ASC").
		Limit(paging.Limit).Offset(paging.Offset).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch rooms")
	}

	out := make([]dto.RoomResponse, 0, len(rows))
	for _, m := range rows {
		out = append(out, dto.ToRoomResponse(m))
	}

	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	pagination.Count = len(out)
	return helper.JsonList(c, "OK", out, pagination)
}

// GET /api/rooms/:id
func (ctl *RoomController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid room id")
	}

	var m model.RoomModel
	if err := ctl.DB.First(&m, "room_id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Room not found")
	}
	return helper.JsonOK(c, "OK", dto.ToRoomResponse(m))
}

// POST /api/l/rooms
func (ctl *RoomController) Create(c *fiber.Ctx) error {
	var body dto.CreateRoomRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request")
	}
	if err := ctl.Validate.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	m := model.RoomModel{
		RoomNumber:       body.RoomNumber,
		RoomFloor:        body.RoomFloor,
		RoomArea:         body.RoomArea,
		RoomMaxOccupancy: body.RoomMaxOccupancy,
		RoomRentPrice:    body.RoomRentPrice,
		RoomStatus:       body.RoomStatus,
		RoomDescription:  body.RoomDescription,
	}
	if m.RoomStatus == "" {
		m.RoomStatus = model.RoomAvailable
	}
	if m.RoomMaxOccupancy == 0 {
		m.RoomMaxOccupancy = 1
	}

	if err := ctl.DB.Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusConflict, "Room number already exists on this floor")
	}
	return helper.JsonCreated(c, "Room created", dto.ToRoomResponse(m))
}

// PUT /api/l/rooms/:id
func (ctl *RoomController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid room id")
	}

	var body dto.UpdateRoomRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request")
	}
	if err := ctl.Validate.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var m model.RoomModel
	if err := ctl.DB.First(&m, "room_id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Room not found")
	}

	updates := map[string]any{}
	if body.RoomNumber != nil {
		updates["room_number"] = *body.RoomNumber
	}
	if body.RoomFloor != nil {
		updates["room_floor"] = *body.RoomFloor
	}
	if body.RoomArea != nil {
		updates["room_area"] = *body.RoomArea
	}
	if body.RoomMaxOccupancy != nil {
		updates["room_max_occupancy"] = *body.RoomMaxOccupancy
	}
	if body.RoomRentPrice != nil {
		updates["room_rent_price"] = *body.RoomRentPrice
	}
	if body.RoomStatus != nil {
		updates["room_status"] = *body.RoomStatus
	}
	if body.RoomDescription != nil {
		updates["room_description"] = *body.RoomDescription
	}
	if len(updates) == 0 {
		return helper.JsonOK(c, "Nothing to update", dto.ToRoomResponse(m))
	}

	if err := ctl.DB.Model(&m).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update room")
	}
	return helper.JsonUpdated(c, "Room updated", dto.ToRoomResponse(m))
}

// DELETE /api/l/rooms/:id — soft delete; blocked while an active contract
// references the room.
func (ctl *RoomController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid room id")
	}

	var activeContracts int64
	if err := ctl.DB.Table("contracts").
		Where("room_id = ? AND contract_status IN ('PENDING','ACTIVE') AND deleted_at IS NULL", id).
		Count(&activeContracts).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check contracts")
	}
	if activeContracts > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Room still has a pending or active contract")
	}

	res := ctl.DB.Delete(&model.RoomModel{}, "room_id = ?", id)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete room")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Room not found")
	}
	return helper.JsonDeleted(c, "Room deleted", nil)
}
