// file: internals/features/records/personals/controller/personal_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kyaungku_backend/internals/features/records/lifecycle"
	"kyaungku_backend/internals/features/records/personals/dto"
	pmodel "kyaungku_backend/internals/features/records/personals/model"
	helper "kyaungku_backend/internals/helpers"
)

// Read-only identity surface plus delete/restore. Identity edits never land
// here: they flow through role-record updates into personal_updates.
type PersonalController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewPersonalController(db *gorm.DB) *PersonalController {
	return &PersonalController{DB: db, Validate: validator.New()}
}

var personalListScope = helper.ListScope{
	SlugColumn: "personal_slug",
	IDColumn:   "personal_id",
	Searchable: map[string]string{
		"full_name":     "personal_full_name",
		"region_code":   "personal_region_code",
		"township_code": "personal_township_code",
		"citizenship":   "personal_citizenship",
		"serial_number": "personal_serial_number",
	},
	Orderable: map[string]string{
		"full_name":  "personal_full_name",
		"birth_date": "personal_birth_date",
		"created_at": "personal_created_at",
	},
}

type listPersonalRequest struct {
	helper.ListParams
}

type personalSlugRequest struct {
	Slug string `json:"personal_slug" validate:"required,len=36"`
}

type personalActionRequest struct {
	Slug   string `json:"personal_slug" validate:"required,len=36"`
	Action string `json:"action" validate:"required,oneof=delete restore"`
}

// POST /api/a/personals/list
func (h *PersonalController) List(c *fiber.Ctx) error {
	var req listPersonalRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request payload")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}
	if req.Status != "" {
		// Personals carry no status enum.
		return helper.JsonValidationError(c, map[string][]string{
			"status": {"not supported for personals"},
		})
	}

	q := h.DB.WithContext(c.UserContext()).Model(&pmodel.PersonalModel{})
	q, err := helper.ApplyListFilters(q, req.ListParams, personalListScope)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count personals")
	}

	order, err := helper.OrderClause(req.ListParams, personalListScope)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	skip, limit := req.Page()

	var rows []pmodel.PersonalModel
	if err := q.Order(order).Offset(skip).Limit(limit).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list personals")
	}

	items := make([]dto.PersonalDetailResponse, 0, len(rows))
	for i := range rows {
		items = append(items, dto.DetailFromPersonalModel(&rows[i]))
	}
	return helper.JsonList(c, "Personals fetched", total, items)
}

// POST /api/a/personals/detail
func (h *PersonalController) Detail(c *fiber.Ctx) error {
	var req personalSlugRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request payload")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	var p pmodel.PersonalModel
	err := h.DB.WithContext(c.UserContext()).
		Where("personal_slug = ?", req.Slug).
		First(&p).Error
	if helper.IsNotFound(err) {
		return helper.JsonError(c, fiber.StatusNotFound, "Personal not found")
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch personal")
	}
	return helper.JsonOK(c, "Personal fetched", dto.DetailFromPersonalModel(&p))
}

// POST /api/a/personals/action
// Personals have no status machine, only delete/restore on the soft-delete
// flag.
func (h *PersonalController) Action(c *fiber.Ctx) error {
	var req personalActionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request payload")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	var p pmodel.PersonalModel
	if err := h.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Unscoped().
			Where("personal_slug = ?", req.Slug).
			First(&p).Error
		if err != nil {
			return err
		}
		switch req.Action {
		case "delete":
			return tx.Delete(&p).Error
		case "restore":
			if !p.PersonalDeletedAt.Valid {
				return lifecycle.ErrNotDeleted
			}
			return tx.Unscoped().Model(&p).
				Update("personal_deleted_at", nil).Error
		}
		return nil
	}); err != nil {
		switch {
		case helper.IsNotFound(err):
			return helper.JsonError(c, fiber.StatusNotFound, "Personal not found")
		case errors.Is(err, lifecycle.ErrNotDeleted):
			return helper.JsonError(c, fiber.StatusBadRequest, "Personal is not deleted")
		default:
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to apply action")
		}
	}
	return helper.JsonUpdated(c, "Personal action applied", fiber.Map{
		"personal_slug": p.PersonalSlug,
		"action":        req.Action,
	})
}
