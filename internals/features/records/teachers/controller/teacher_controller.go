// file: internals/features/records/teachers/controller/teacher_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kyaungku_backend/internals/features/records/lifecycle"
	pmodel "kyaungku_backend/internals/features/records/personals/model"
	pservice "kyaungku_backend/internals/features/records/personals/service"
	"kyaungku_backend/internals/features/records/teachers/dto"
	tmodel "kyaungku_backend/internals/features/records/teachers/model"
	helper "kyaungku_backend/internals/helpers"
)

type TeacherController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewTeacherController(db *gorm.DB) *TeacherController {
	return &TeacherController{DB: db, Validate: validator.New()}
}

var teacherListScope = helper.ListScope{
	SlugColumn:   "teacher_slug",
	StatusColumn: "teacher_status",
	IDColumn:     "teacher_id",
	Searchable: map[string]string{
		"name":         "teacher_name",
		"teacher_code": "teacher_code",
		"department":   "teacher_department",
		"email":        "teacher_email",
		"phone":        "teacher_phone",
	},
	Orderable: map[string]string{
		"name":         "teacher_name",
		"teacher_code": "teacher_code",
		"hire_date":    "teacher_hire_date",
		"salary":       "teacher_salary",
		"created_at":   "teacher_created_at",
	},
}

// POST /api/a/teachers/create
func (h *TeacherController) Create(c *fiber.Ctx) error {
	var req dto.CreateTeacherRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request payload")
	}
	req.Normalize()
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	var resp dto.TeacherResponse
	if err := h.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		fields := req.Personal.ToFields()

		p, isNew, err := pservice.ResolveOrCreatePersonal(tx, fields)
		if err != nil {
			return err
		}
		if !isNew {
			if err := pservice.EnsureUnclaimed(tx, p.PersonalSlug); err != nil {
				return err
			}
		}

		m, err := req.ToModel(p.PersonalSlug, fields.FullName)
		if err != nil {
			return err
		}
		if err := tx.Create(&m).Error; err != nil {
			return err
		}

		target, err := pservice.NewUpdateTarget(pmodel.TargetTeacher, m.TeacherSlug)
		if err != nil {
			return err
		}
		if _, err := pservice.ApplyPersonalEdit(tx, p, target, fields); err != nil {
			return err
		}

		resp, err = h.buildResponse(tx, &m)
		return err
	}); err != nil {
		return h.writeError(c, err, "Failed to create teacher")
	}
	return helper.JsonCreated(c, "Teacher created", resp)
}

// POST /api/a/teachers/list
func (h *TeacherController) List(c *fiber.Ctx) error {
	var req dto.ListTeacherRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request payload")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}
	if req.Status != "" && !tmodel.IsValidTeacherStatus(tmodel.TeacherStatus(req.Status)) {
		return helper.JsonValidationError(c, map[string][]string{
			"status": {"must be one of active resigned on_leave terminated"},
		})
	}

	db := h.DB.WithContext(c.UserContext())
	q := db.Model(&tmodel.TeacherModel{})
	q, err := helper.ApplyListFilters(q, req.ListParams, teacherListScope)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count teachers")
	}

	order, err := helper.OrderClause(req.ListParams, teacherListScope)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	skip, limit := req.Page()

	var rows []tmodel.TeacherModel
	if err := q.Order(order).Offset(skip).Limit(limit).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list teachers")
	}

	items := make([]dto.TeacherResponse, 0, len(rows))
	for i := range rows {
		item, err := h.buildResponse(db, &rows[i])
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to resolve teacher identity")
		}
		items = append(items, item)
	}
	return helper.JsonList(c, "Teachers fetched", total, items)
}

// POST /api/a/teachers/detail
func (h *TeacherController) Detail(c *fiber.Ctx) error {
	var req dto.DetailTeacherRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request payload")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	db := h.DB.WithContext(c.UserContext())
	var m tmodel.TeacherModel
	err := db.Where("teacher_slug = ?", req.Slug).First(&m).Error
	if helper.IsNotFound(err) {
		return helper.JsonError(c, fiber.StatusNotFound, "Teacher not found")
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch teacher")
	}

	resp, err := h.buildResponse(db, &m)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to resolve teacher identity")
	}
	return helper.JsonOK(c, "Teacher fetched", resp)
}

// PUT /api/a/teachers/update
func (h *TeacherController) Update(c *fiber.Ctx) error {
	var req dto.UpdateTeacherRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request payload")
	}
	req.Normalize()
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	var resp dto.TeacherResponse
	if err := h.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var m tmodel.TeacherModel
		if err := tx.Where("teacher_slug = ?", req.Slug).First(&m).Error; err != nil {
			return err
		}

		if err := req.Apply(&m); err != nil {
			return err
		}
		if err := tx.Save(&m).Error; err != nil {
			return err
		}

		p, err := pservice.LoadPersonalBySlug(tx, m.TeacherPersonalSlug)
		if err != nil {
			return err
		}
		target, err := pservice.NewUpdateTarget(pmodel.TargetTeacher, m.TeacherSlug)
		if err != nil {
			return err
		}
		if _, err := pservice.ApplyPersonalEdit(tx, p, target, req.Personal.ToFields()); err != nil {
			return err
		}

		resp, err = h.buildResponse(tx, &m)
		return err
	}); err != nil {
		return h.writeError(c, err, "Failed to update teacher")
	}
	return helper.JsonUpdated(c, "Teacher updated", resp)
}

// POST /api/a/teachers/action
func (h *TeacherController) Action(c *fiber.Ctx) error {
	var req dto.ActionTeacherRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request payload")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	var m tmodel.TeacherModel
	if err := h.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("teacher_slug = ?", req.Slug).First(&m).Error; err != nil {
			return err
		}
		return lifecycle.HandleAction(tx, &m, tmodel.TeacherLifecycle, req.Action)
	}); err != nil {
		return h.writeError(c, err, "Failed to apply teacher action")
	}
	return helper.JsonUpdated(c, "Teacher action applied", fiber.Map{
		"teacher_slug":   m.TeacherSlug,
		"action":         req.Action,
		"teacher_status": m.RecordStatus(),
	})
}

func (h *TeacherController) buildResponse(tx *gorm.DB, m *tmodel.TeacherModel) (dto.TeacherResponse, error) {
	p, err := pservice.LoadPersonalBySlug(tx, m.TeacherPersonalSlug)
	if err != nil {
		return dto.TeacherResponse{}, err
	}
	target, err := pservice.NewUpdateTarget(pmodel.TargetTeacher, m.TeacherSlug)
	if err != nil {
		return dto.TeacherResponse{}, err
	}
	eff, err := pservice.ResolveEffective(tx, p, target)
	if err != nil {
		return dto.TeacherResponse{}, err
	}
	return dto.FromTeacherModel(m, eff), nil
}

func (h *TeacherController) writeError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case helper.IsNotFound(err):
		return helper.JsonError(c, fiber.StatusNotFound, "Teacher not found")
	case errors.Is(err, pservice.ErrIdentityClaimed):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	case helper.IsDuplicateKey(err):
		return helper.JsonError(c, fiber.StatusConflict, "A record with the same unique field already exists")
	case errors.Is(err, lifecycle.ErrNotDeleted):
		return helper.JsonError(c, fiber.StatusBadRequest, "Teacher is not deleted")
	case errors.Is(err, lifecycle.ErrInvalidAction):
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid action")
	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, fallback)
	}
}
