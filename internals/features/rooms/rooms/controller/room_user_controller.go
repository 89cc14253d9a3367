package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm/clause"

	"nhatro_backend/internals/features/rooms/rooms/dto"
	"nhatro_backend/internals/features/rooms/rooms/model"
	userModel "nhatro_backend/internals/features/users/user/model"
	helper "nhatro_backend/internals/helpers"
)

// POST /api/l/room-users/add-many — bulk-link renters to a room. Existing
// links are left untouched (upsert, not error).
func (ctl *RoomController) AddRoomUsers(c *fiber.Ctx) error {
	var body dto.AddRoomUsersRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request")
	}
	if err := ctl.Validate.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var room model.RoomModel
	if err := ctl.DB.First(&room, "room_id = ?", body.RoomID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Room not found")
	}

	var userCount int64
	if err := ctl.DB.Model(&userModel.UserModel{}).
		Where("id IN ?", body.UserIDs).Count(&userCount).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check users")
	}
	if userCount != int64(len(body.UserIDs)) {
		return helper.JsonError(c, fiber.StatusBadRequest, "One or more users do not exist")
	}

	now := time.Now()
	links := make([]model.RoomUserModel, 0, len(body.UserIDs))
	for _, uid := range body.UserIDs {
		links = append(links, model.RoomUserModel{
			RoomID:   body.RoomID,
			UserID:   uid,
			JoinedAt: now,
		})
	}

	if err := ctl.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to link renters")
	}

	return helper.JsonCreated(c, "Renters linked to room", fiber.Map{
		"room_id":  body.RoomID,
		"user_ids": body.UserIDs,
	})
}

// GET /api/l/room-users/:roomId — renters currently linked to a room.
func (ctl *RoomController) ListRoomUsers(c *fiber.Ctx) error {
	roomID, err := uuid.Parse(c.Params("roomId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid room id")
	}

	var renters []userModel.UserModel
	if err := ctl.DB.
		Joins("JOIN room_users ru ON ru.user_id = users.id AND ru.deleted_at IS NULL").
		Where("ru.room_id = ?", roomID).
		Find(&renters).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch renters")
	}

	out := make([]fiber.Map, 0, len(renters))
	for _, u := range renters {
		out = append(out, fiber.Map{
			"id":        u.ID,
			"user_name": u.UserName,
			"full_name": u.FullName,
			"email":     u.Email,
			"phone":     u.Phone,
		})
	}
	return helper.JsonOK(c, "OK", out)
}

// DELETE /api/l/room-users/:roomId/:userId
func (ctl *RoomController) RemoveRoomUser(c *fiber.Ctx) error {
	roomID, err := uuid.Parse(c.Params("roomId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid room id")
	}
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user id")
	}

	res := ctl.DB.Where("room_id = ? AND user_id = ?", roomID, userID).
		Delete(&model.RoomUserModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to unlink renter")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Link not found")
	}
	return helper.JsonDeleted(c, "Renter unlinked from room", nil)
}
