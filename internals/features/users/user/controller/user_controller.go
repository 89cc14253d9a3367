package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"nhatro_backend/internals/features/users/user/dto"
	"nhatro_backend/internals/features/users/user/model"
	helper "nhatro_backend/internals/helpers"
)

type UserController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db, Validate: validator.New()}
}

// filter DSL whitelist for GET /users
var userFilterFields = map[string]string{
	"user_name": "user_name",
	"email":     "email",
	"full_name": "full_name",
	"role":      "role",
	"is_active": "is_active",
}

// GET /api/a/users
func (ctl *UserController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	tx := ctl.DB.Model(&model.UserModel{})
	tx, err := helper.ApplyFilter(tx, c.Query("filter"), userFilterFields)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count users")
	}

	var rows []model.UserModel
	if err := tx.Order("created_at DESC").Limit(paging.Limit).Offset(paging.Offset).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch users")
	}

	out := make([]dto.UserResponse, 0, len(rows))
	for _, m := range rows {
		out = append(out, dto.ToUserResponse(m))
	}

	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	pagination.Count = len(out)
	return helper.JsonList(c, "OK", out, pagination)
}

// GET /api/l/renters
// Landlords browse renter accounts when drafting contracts. Same filter
// DSL as the admin list, pinned to active renters.
func (ctl *UserController) ListRenters(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	tx := ctl.DB.Model(&model.UserModel{}).
		Where("role = ? AND is_active = ?", "RENTER", true)
	tx, err := helper.ApplyFilter(tx, c.Query("filter"), userFilterFields)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count renters")
	}

	var rows []model.UserModel
	if err := tx.Order("full_name ASC").Limit(paging.Limit).Offset(paging.Offset).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch renters")
	}

	out := make([]dto.UserResponse, 0, len(rows))
	for _, m := range rows {
		out = append(out, dto.ToUserResponse(m))
	}
	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	pagination.Count = len(out)
	return helper.JsonList(c, "OK", out, pagination)
}

// GET /api/a/users/:id
func (ctl *UserController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user id")
	}

	var m model.UserModel
	if err := ctl.DB.First(&m, "id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "User not found")
	}
	return helper.JsonOK(c, "OK", dto.ToUserResponse(m))
}

// POST /api/a/users — admin creates accounts of any role.
func (ctl *UserController) Create(c *fiber.Ctx) error {
	var body dto.CreateUserRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request")
	}
	if err := ctl.Validate.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	m := model.UserModel{
		UserName: body.UserName,
		Email:    strings.ToLower(strings.TrimSpace(body.Email)),
		Password: string(hash),
		FullName: body.FullName,
		Phone:    body.Phone,
		Role:     body.Role,
	}
	if err := ctl.DB.Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusConflict, "Email or user name already in use")
	}

	return helper.JsonCreated(c, "User created", dto.ToUserResponse(m))
}

// PUT /api/a/users/:id
func (ctl *UserController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user id")
	}

	var body dto.UpdateUserRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request")
	}
	if err := ctl.Validate.Struct(&body); err != nil {
		return helper.JsonValidationError(c, err)
	}

	var m model.UserModel
	if err := ctl.DB.First(&m, "id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "User not found")
	}

	updates := map[string]any{}
	if body.FullName != nil {
		updates["full_name"] = *body.FullName
	}
	if body.Phone != nil {
		updates["phone"] = *body.Phone
	}
	if body.Role != nil {
		updates["role"] = *body.Role
	}
	if body.IsActive != nil {
		updates["is_active"] = *body.IsActive
	}
	if len(updates) == 0 {
		return helper.JsonOK(c, "Nothing to update", dto.ToUserResponse(m))
	}

	if err := ctl.DB.Model(&m).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update user")
	}
	return helper.JsonUpdated(c, "User updated", dto.ToUserResponse(m))
}

// DELETE /api/a/users/:id — deactivate, not destroy. Contracts and bills keep
// their references.
func (ctl *UserController) Deactivate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user id")
	}

	res := ctl.DB.Model(&model.UserModel{}).Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to deactivate user")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "User not found")
	}
	return helper.JsonDeleted(c, "User deactivated", nil)
}
