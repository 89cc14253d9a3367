package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"nhatro_backend/internals/features/rooms/assets/model"
	helper "nhatro_backend/internals/helpers"
)

type AssetController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewAssetController(db *gorm.DB) *AssetController {
	return &AssetController{DB: db, Validate: validator.New()}
}

var assetFilterFields = map[string]string{
	"name":      "asset_name",
	"condition": "asset_condition",
	"quantity":  "asset_quantity",
}

// GET /api/l/assets?room_id=&filter=
func (ctl *AssetController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	tx := ctl.DB.Model(&model.AssetModel{})
	if roomIDStr := c.Query("room_id"); roomIDStr != "" {
		roomID, err := uuid.Parse(roomIDStr)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid room id")
		}
		tx = tx.Where("room_id = ?", roomID)
	}
	tx, err := helper.ApplyFilter(tx, c.Query("filter"), assetFilterFields)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count assets")
	}

	var rows []model.AssetModel
	if err := tx.Order("created_at DESC").Limit(paging.Limit).Offset(paging.Offset).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch assets")
	}

	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	pagination.Count = len(rows)
	return helper.JsonList(c, "OK", rows, pagination)
}

// POST /api/l/assets
func (ctl *AssetController) Create(c *fiber.Ctx) error {
	var m model.AssetModel
	if err := c.BodyParser(&m); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request")
	}
	m.AssetID = uuid.Nil
	if m.AssetQuantity == 0 {
		m.AssetQuantity = 1
	}
	if m.AssetCondition == "" {
		m.AssetCondition = model.AssetGood
	}
	if err := ctl.Validate.Struct(&m); err != nil {
		return helper.JsonValidationError(c, err)
	}

	if err := ctl.DB.Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create asset")
	}
	return helper.JsonCreated(c, "Asset created", m)
}

// PUT /api/l/assets/:id
func (ctl *AssetController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid asset id")
	}

	var m model.AssetModel
	if err := ctl.DB.First(&m, "asset_id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "Asset not found")
	}

	var body model.AssetModel
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request")
	}

	updates := map[string]any{}
	if body.AssetName != "" {
		updates["asset_name"] = body.AssetName
	}
	if body.AssetQuantity > 0 {
		updates["asset_quantity"] = body.AssetQuantity
	}
	if body.AssetCondition != "" {
		updates["asset_condition"] = body.AssetCondition
	}
	if !body.AssetPrice.IsZero() {
		updates["asset_price"] = body.AssetPrice
	}
	if len(updates) == 0 {
		return helper.JsonOK(c, "Nothing to update", m)
	}

	if err := ctl.DB.Model(&m).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update asset")
	}
	return helper.JsonUpdated(c, "Asset updated", m)
}

// DELETE /api/l/assets/:id
func (ctl *AssetController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid asset id")
	}

	res := ctl.DB.Delete(&model.AssetModel{}, "asset_id = ?", id)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete asset")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Asset not found")
	}
	return helper.JsonDeleted(c, "Asset deleted", nil)
}
