package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"nhatro_backend/internals/features/rooms/rooms/model"
)

type CreateRoomRequest struct {
	RoomNumber       string          `json:"room_number" validate:"required"`
	RoomFloor        int             `json:"room_floor" validate:"omitempty,gte=0"`
	RoomArea         float64         `json:"room_area" validate:"omitempty,gt=0"`
	RoomMaxOccupancy int             `json:"room_max_occupancy" validate:"omitempty,gt=0"`
	RoomRentPrice    decimal.Decimal `json:"room_rent_price" validate:"required"`
	RoomStatus       string          `json:"room_status" validate:"omitempty,oneof=AVAILABLE OCCUPIED MAINTENANCE"`
	RoomDescription  string          `json:"room_description"`
}

type UpdateRoomRequest struct {
	RoomNumber       *string          `json:"room_number"`
	RoomFloor        *int             `json:"room_floor"`
	RoomArea         *float64         `json:"room_area"`
	RoomMaxOccupancy *int             `json:"room_max_occupancy"`
	RoomRentPrice    *decimal.Decimal `json:"room_rent_price"`
	RoomStatus       *string          `json:"room_status" validate:"omitempty,oneof=AVAILABLE OCCUPIED MAINTENANCE"`
	RoomDescription  *string          `json:"room_description"`
}

type RoomResponse struct {
	RoomID           uuid.UUID       `json:"room_id"`
	RoomNumber       string          `json:"room_number"`
	RoomFloor        int             `json:"room_floor"`
	RoomArea         float64         `json:"room_area"`
	RoomMaxOccupancy int             `json:"room_max_occupancy"`
	RoomRentPrice    decimal.Decimal `json:"room_rent_price"`
	RoomStatus       string          `json:"room_status"`
	RoomDescription  string          `json:"room_description"`
	CreatedAt        time.Time       `json:"created_at"`
}

func ToRoomResponse(m model.RoomModel) RoomResponse {
	return RoomResponse{
		RoomID:           m.RoomID,
		RoomNumber:       m.RoomNumber,
		RoomFloor:        m.RoomFloor,
		RoomArea:         m.RoomArea,
		RoomMaxOccupancy: m.RoomMaxOccupancy,
		RoomRentPrice:    m.RoomRentPrice,
		RoomStatus:       m.RoomStatus,
		RoomDescription:  m.RoomDescription,
		CreatedAt:        m.CreatedAt,
	}
}

type AddRoomUsersRequest struct {
	RoomID  uuid.UUID   `json:"room_id" validate:"required"`
	UserIDs []uuid.UUID `json:"user_ids" validate:"required,min=1,dive,required"`
}
