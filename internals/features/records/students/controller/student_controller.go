// file: internals/features/records/students/controller/student_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kyaungku_backend/internals/features/records/lifecycle"
	pmodel "kyaungku_backend/internals/features/records/personals/model"
	pservice "kyaungku_backend/internals/features/records/personals/service"
	"kyaungku_backend/internals/features/records/students/dto"
	smodel "kyaungku_backend/internals/features/records/students/model"
	sservice "kyaungku_backend/internals/features/records/students/service"
	helper "kyaungku_backend/internals/helpers"
)

type StudentController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewStudentController(db *gorm.DB) *StudentController {
	return &StudentController{DB: db, Validate: validator.New()}
}

var studentListScope = helper.ListScope{
	SlugColumn:   "student_slug",
	StatusColumn: "student_status",
	IDColumn:     "student_id",
	Searchable: map[string]string{
		"name":                "student_name",
		"student_number":      "student_number",
		"registration_number": "student_registration_number",
		"school_name":         "student_school_name",
		"school_code":         "student_school_code",
		"email":               "student_email",
		"phone":               "student_phone",
	},
	Orderable: map[string]string{
		"name":           "student_name",
		"student_number": "student_number",
		"admission_date": "student_admission_date",
		"created_at":     "student_created_at",
	},
}

/* =========================================================
   CREATE
   POST /api/a/students/create
   ========================================================= */

func (h *StudentController) Create(c *fiber.Ctx) error {
	var req dto.CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request payload")
	}
	req.Normalize()
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	var resp dto.StudentResponse
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

		// Submitted fields may differ from a reused personal; record it
		// against the new student.
		target, err := pservice.NewUpdateTarget(pmodel.TargetStudent, m.StudentSlug)
		if err != nil {
			return err
		}
		if _, err := pservice.ApplyPersonalEdit(tx, p, target, fields); err != nil {
			return err
		}

		for _, gi := range req.Guardians {
			if _, err := sservice.CreateGuardian(tx, m.StudentSlug, gi.ToSpec()); err != nil {
				return err
			}
		}

		resp, err = h.buildResponse(tx, &m, true)
		return err
	}); err != nil {
		return h.writeError(c, err, "Failed to create student")
	}
	return helper.JsonCreated(c, "Student created", resp)
}

/* =========================================================
   LIST
   POST /api/a/students/list
   ========================================================= */

func (h *StudentController) List(c *fiber.Ctx) error {
	var req dto.ListStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request payload")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}
	if req.Status != "" && !smodel.IsValidStudentStatus(smodel.StudentStatus(req.Status)) {
		return helper.JsonValidationError(c, map[string][]string{
			"status": {"must be one of enrolled graduated suspended inactive"},
		})
	}

	db := h.DB.WithContext(c.UserContext())
	q := db.Model(&smodel.StudentModel{})
	q, err := helper.ApplyListFilters(q, req.ListParams, studentListScope)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count students")
	}

	order, err := helper.OrderClause(req.ListParams, studentListScope)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	skip, limit := req.Page()

	var rows []smodel.StudentModel
	if err := q.Order(order).Offset(skip).Limit(limit).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list students")
	}

	items := make([]dto.StudentResponse, 0, len(rows))
	for i := range rows {
		item, err := h.buildResponse(db, &rows[i], false)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to resolve student identity")
		}
		items = append(items, item)
	}
	return helper.JsonList(c, "Students fetched", total, items)
}

/* =========================================================
   DETAIL
   POST /api/a/students/detail
   ========================================================= */

func (h *StudentController) Detail(c *fiber.Ctx) error {
	var req dto.DetailStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request payload")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	db := h.DB.WithContext(c.UserContext())
	var m smodel.StudentModel
	err := db.Where("student_slug = ?", req.Slug).First(&m).Error
	if helper.IsNotFound(err) {
		return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
	}
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch student")
	}

	resp, err := h.buildResponse(db, &m, true)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to resolve student identity")
	}
	return helper.JsonOK(c, "Student fetched", resp)
}

/* =========================================================
   UPDATE
   PUT /api/a/students/update
   ========================================================= */

func (h *StudentController) Update(c *fiber.Ctx) error {
	var req dto.UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request payload")
	}
	req.Normalize()
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	var resp dto.StudentResponse
	if err := h.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var m smodel.StudentModel
		if err := tx.Where("student_slug = ?", req.Slug).First(&m).Error; err != nil {
			return err
		}

		if err := req.Apply(&m); err != nil {
			return err
		}
		if err := tx.Save(&m).Error; err != nil {
			return err
		}

		p, err := pservice.LoadPersonalBySlug(tx, m.StudentPersonalSlug)
		if err != nil {
			return err
		}
		target, err := pservice.NewUpdateTarget(pmodel.TargetStudent, m.StudentSlug)
		if err != nil {
			return err
		}
		if _, err := pservice.ApplyPersonalEdit(tx, p, target, req.Personal.ToFields()); err != nil {
			return err
		}

		specs := make([]sservice.GuardianSpec, 0, len(req.Guardians))
		for _, gi := range req.Guardians {
			specs = append(specs, gi.ToSpec())
		}
		if err := sservice.SyncGuardians(tx, m.StudentSlug, specs); err != nil {
			return err
		}

		resp, err = h.buildResponse(tx, &m, true)
		return err
	}); err != nil {
		return h.writeError(c, err, "Failed to update student")
	}
	return helper.JsonUpdated(c, "Student updated", resp)
}

/* =========================================================
   ACTION
   POST /api/a/students/action
   ========================================================= */

func (h *StudentController) Action(c *fiber.Ctx) error {
	var req dto.ActionStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request payload")
	}
	if err := h.Validate.Struct(req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationMap(err))
	}

	var m smodel.StudentModel
	if err := h.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("student_slug = ?", req.Slug).First(&m).Error; err != nil {
			return err
		}
		return lifecycle.HandleAction(tx, &m, smodel.StudentLifecycle, req.Action)
	}); err != nil {
		return h.writeError(c, err, "Failed to apply student action")
	}
	return helper.JsonUpdated(c, "Student action applied", fiber.Map{
		"student_slug":   m.StudentSlug,
		"action":         req.Action,
		"student_status": m.RecordStatus(),
	})
}

/* =========================================================
   internals
   ========================================================= */

func (h *StudentController) buildResponse(tx *gorm.DB, m *smodel.StudentModel, withGuardians bool) (dto.StudentResponse, error) {
	p, err := pservice.LoadPersonalBySlug(tx, m.StudentPersonalSlug)
	if err != nil {
		return dto.StudentResponse{}, err
	}
	target, err := pservice.NewUpdateTarget(pmodel.TargetStudent, m.StudentSlug)
	if err != nil {
		return dto.StudentResponse{}, err
	}
	eff, err := pservice.ResolveEffective(tx, p, target)
	if err != nil {
		return dto.StudentResponse{}, err
	}

	var guardians []dto.GuardianResponse
	if withGuardians {
		var rows []smodel.GuardianModel
		if err := tx.Where("guardian_student_slug = ?", m.StudentSlug).Find(&rows).Error; err != nil {
			return dto.StudentResponse{}, err
		}
		for i := range rows {
			g := &rows[i]
			gp, err := pservice.LoadPersonalBySlug(tx, g.GuardianPersonalSlug)
			if err != nil {
				return dto.StudentResponse{}, err
			}
			gt, err := pservice.NewUpdateTarget(pmodel.TargetGuardian, g.GuardianSlug)
			if err != nil {
				return dto.StudentResponse{}, err
			}
			geff, err := pservice.ResolveEffective(tx, gp, gt)
			if err != nil {
				return dto.StudentResponse{}, err
			}
			guardians = append(guardians, dto.FromGuardianModel(g, geff))
		}
	}
	return dto.FromStudentModel(m, eff, guardians), nil
}

func (h *StudentController) writeError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case helper.IsNotFound(err):
		return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
	case errors.Is(err, pservice.ErrIdentityClaimed):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	case helper.IsDuplicateKey(err):
		return helper.JsonError(c, fiber.StatusConflict, "A record with the same unique field already exists")
	case errors.Is(err, lifecycle.ErrNotDeleted):
		return helper.JsonError(c, fiber.StatusBadRequest, "Student is not deleted")
	case errors.Is(err, lifecycle.ErrInvalidAction):
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid action")
	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, fallback)
	}
}
