// file: internals/features/records/employees/controller/employee_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kyaungku_backend/internals/features/records/employees/dto"
	emodel "kyaungku_backend/internals/features/records/employees/model"
	"kyaungku_backend/internals/features/records/lifecycle"
	pmodel "kyaungku_backend/internals/features/records/personals/model"
	pservice "kyaungku_backend/internals/features/records/personals/service"
	helper "kyaungku_backend/internals/helpers"
)

type EmployeeController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewEmployeeController(db *gorm.DB) *EmployeeController {
	return &EmployeeController{DB: db, Validate: validator.New()}
}

var employeeListScope = helper.ListScope{
	SlugColumn:   "employee_slug",
	StatusColumn: "employee_status",
	IDColumn:     "employee_id",
	Searchable: map[string]string{
		"name":          "employee_name",
		"employee_code": "employee_code",
		"position":      "employee_position",
		"department":    "employee_department",
		"email":         "employee_email",
		"phone":         "employee_phone",
	},
	Orderable: map[string]string{
		"name":          "employee_name",
		"employee_code": "employee_code",
		"hire_date":     "employee_hire_date",
		"salary":        "employee_salary",
		"created_at":    "employee_created_at",
	},
}

// POST /api/a/employees/create
func (h *EmployeeController) Create(c *fiber.Ctx) error {
	var req dto.CreateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request payload")
	}
	req.Normalize()
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	var resp dto.EmployeeResponse
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

		target, err := pservice.NewUpdateTarget(pmodel.TargetEmployee, m.EmployeeSlug)
		if err != nil {
			return err
		}
		if _, err := pservice.ApplyPersonalEdit(tx, p, target, fields); err != nil {
			return err
		}

		resp, err = h.buildResponse(tx, &m)
		return err
	}); err != nil {
		return h.writeError(c, err, "Failed to create employee")
	}
	return helper.JsonCreated(c, "Employee created", resp)
}

// POST /api/a/employees/list
func (h *EmployeeController) List(c *fiber.Ctx) error {
	var req dto.ListEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request payload")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}
	if req.Status != "" && !emodel.IsValidEmployeeStatus(emodel.EmployeeStatus(req.Status)) {
		return helper.JsonValidationError(c, map[string][]string{
			"status": {"must be one of active resigned on_leave terminated"},
		})
	}

	db := h.DB.WithContext(c.UserContext())
	q := db.Model(&emodel.EmployeeModel{})
	q, err := helper.ApplyListFilters(q, req.ListParams, employeeListScope)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count employees")
	}

	order, err := helper.OrderClause(req.ListParams, employeeListScope)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	skip, limit := req.Page()

	var rows []emodel.EmployeeModel
	if err := q.Order(order).Offset(skip).Limit(limit).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list employees")
	}

	items := make([]dto.EmployeeResponse, 0, len(rows))
	for i := range rows {
		item, err := h.buildResponse(db, &rows[i])
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to resolve employee identity")
		}
		items = append(items, item)
	}
	return helper.JsonList(c, "Employees fetched", total, items)
}

// POST /api/a/employees/detail
func (h *EmployeeController) Detail(c *fiber.Ctx) error {
	var req dto.DetailEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request payload")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	db := h.DB.WithContext(c.UserContext())
	var m emodel.EmployeeModel
	err := db.Where("employee_slug = ?", req.Slug).First(&m).Error
	if helper.IsNotFound(err) {
		return helper.JsonError(c, fiber.StatusNotFound, "Employee not found")
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch employee")
	}

	resp, err := h.buildResponse(db, &m)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to resolve employee identity")
	}
	return helper.JsonOK(c, "Employee fetched", resp)
}

// PUT /api/a/employees/update
func (h *EmployeeController) Update(c *fiber.Ctx) error {
	var req dto.UpdateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request payload")
	}
	req.Normalize()
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	var resp dto.EmployeeResponse
	if err := h.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var m emodel.EmployeeModel
		if err := tx.Where("employee_slug = ?", req.Slug).First(&m).Error; err != nil {
			return err
		}

		if err := req.Apply(&m); err != nil {
			return err
		}
		if err := tx.Save(&m).Error; err != nil {
			return err
		}

		p, err := pservice.LoadPersonalBySlug(tx, m.EmployeePersonalSlug)
		if err != nil {
			return err
		}
		target, err := pservice.NewUpdateTarget(pmodel.TargetEmployee, m.EmployeeSlug)
		if err != nil {
			return err
		}
		if _, err := pservice.ApplyPersonalEdit(tx, p, target, req.Personal.ToFields()); err != nil {
			return err
		}

		resp, err = h.buildResponse(tx, &m)
		return err
	}); err != nil {
		return h.writeError(c, err, "Failed to update employee")
	}
	return helper.JsonUpdated(c, "Employee updated", resp)
}

// POST /api/a/employees/action
func (h *EmployeeController) Action(c *fiber.Ctx) error {
	var req dto.ActionEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request payload")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	var m emodel.EmployeeModel
	if err := h.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("employee_slug = ?", req.Slug).First(&m).Error; err != nil {
			return err
		}
		return lifecycle.HandleAction(tx, &m, emodel.EmployeeLifecycle, req.Action)
	}); err != nil {
		return h.writeError(c, err, "Failed to apply employee action")
	}
	return helper.JsonUpdated(c, "Employee action applied", fiber.Map{
		"employee_slug":   m.EmployeeSlug,
		"action":          req.Action,
		"employee_status": m.RecordStatus(),
	})
}

func (h *EmployeeController) buildResponse(tx *gorm.DB, m *emodel.EmployeeModel) (dto.EmployeeResponse, error) {
	p, err := pservice.LoadPersonalBySlug(tx, m.EmployeePersonalSlug)
	if err != nil {
		return dto.EmployeeResponse{}, err
	}
	target, err := pservice.NewUpdateTarget(pmodel.TargetEmployee, m.EmployeeSlug)
	if err != nil {
		return dto.EmployeeResponse{}, err
	}
	eff, err := pservice.ResolveEffective(tx, p, target)
	if err != nil {
		return dto.EmployeeResponse{}, err
	}
	return dto.FromEmployeeModel(m, eff), nil
}

func (h *EmployeeController) writeError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case helper.IsNotFound(err):
		return helper.JsonError(c, fiber.StatusNotFound, "Employee not found")
	case errors.Is(err, pservice.ErrIdentityClaimed):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	case helper.IsDuplicateKey(err):
		return helper.JsonError(c, fiber.StatusConflict, "A record with the same unique field already exists")
	case errors.Is(err, lifecycle.ErrNotDeleted):
		return helper.JsonError(c, fiber.StatusBadRequest, "Employee is not deleted")
	case errors.Is(err, lifecycle.ErrInvalidAction):
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid action")
	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, fallback)
	}
}
