package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"nhatro_backend/internals/features/rooms/services/model"
	helper "nhatro_backend/internals/helpers"
)

type ServiceController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewServiceController(db *gorm.DB) *ServiceController {
	return &ServiceController{DB: db, Validate: validator.New()}
}

var serviceFilterFields = map[string]string{
	"name":  "service_name",
	"price": "service_price",
	"type":  "service_type",
}

// GET /api/l/services
func (ctl *ServiceController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	tx := ctl.DB.Model(&model.ServiceModel{})
	tx, err := helper.ApplyFilter(tx, c.Query("filter"), serviceFilterFields)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count services")
	}

	var rows []model.ServiceModel
	if err := tx.Order("service_name ASC").Limit(paging.Limit).Offset(paging.Offset).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch services")
	}

	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	pagination.Count = len(rows)
	return helper.JsonList(c, "OK", rows, pagination)
}

// POST /api/l/services
func (ctl *ServiceController) Create(c *fiber.Ctx) error {
	var m model.ServiceModel
	if err := c.BodyParser(&m); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request")
	}
	m.ServiceID = uuid.Nil
	if m.ServiceType == "" {
		m.ServiceType = model.ServicePerRoom
	}
	if err := ctl.Validate.Struct(&m); err != nil {
		return helper.JsonValidationError(c, err)
	}

	if err := ctl.DB.Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusConflict, "Service name already exists")
	}
	return helper.JsonCreated(c, "Service created", m)
}

// PUT /api/l/services/:id
func (ctl *ServiceController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid service id")
	}

	var m model.ServiceModel
	if err := ctl.DB.First(&m, "service_id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Service not found")
	}

	var body model.ServiceModel
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request")
	}

	updates := map[string]any{}
	if body.ServiceName != "" {
		updates["service_name"] = body.ServiceName
	}
	if !body.ServicePrice.IsZero() {
		updates["service_price"] = body.ServicePrice
	}
	if body.ServiceUnit != "" {
		updates["service_unit"] = body.ServiceUnit
	}
	if body.ServiceType != "" {
		updates["service_type"] = body.ServiceType
	}
	if len(updates) == 0 {
		return helper.JsonOK(c, "Nothing to update", m)
	}

	if err := ctl.DB.Model(&m).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update service")
	}
	return helper.JsonUpdated(c, "Service updated", m)
}

// DELETE /api/l/services/:id
func (ctl *ServiceController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid service id")
	}

	res := ctl.DB.Delete(&model.ServiceModel{}, "service_id = ?", id)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete service")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Service not found")
	}
	return helper.JsonDeleted(c, "Service deleted", nil)
}
