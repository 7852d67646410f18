// file: internals/features/records/teachers/dto/teacher_dto.go
package dto

import (
	"strings"

	pdto "kyaungku_backend/internals/features/records/personals/dto"
	pservice "kyaungku_backend/internals/features/records/personals/service"
	tmodel "kyaungku_backend/internals/features/records/teachers/model"
	helper "kyaungku_backend/internals/helpers"
)

/* =========================================================
   REQUESTS
   ========================================================= */

type CreateTeacherRequest struct {
	Personal pdto.PersonalInput `json:"personal" validate:"required"`

	TeacherCode    string   `json:"teacher_code" validate:"required,min=1,max=50"`
	Email          *string  `json:"email" validate:"omitempty,email,max=255"`
	Phone          string   `json:"phone" validate:"required,min=1,max=50"`
	Department     string   `json:"department" validate:"required,min=1,max=100"`
	Specialization *string  `json:"specialization" validate:"omitempty,max=100"`
	Designation    *string  `json:"designation" validate:"omitempty,max=100"`
	Salary         float64  `json:"salary" validate:"min=0"`
	HireDate       string   `json:"hire_date" validate:"required,datetime=2006-01-02"`
	EmploymentType string   `json:"employment_type" validate:"omitempty,oneof=full-time part-time contract"`
}

func (r *CreateTeacherRequest) Normalize() {
	r.Personal.Normalize()
	r.TeacherCode = strings.TrimSpace(r.TeacherCode)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Department = strings.TrimSpace(r.Department)
	r.HireDate = strings.TrimSpace(r.HireDate)
	r.EmploymentType = strings.ToLower(strings.TrimSpace(r.EmploymentType))
	trimPtr(&r.Email)
	trimPtr(&r.Specialization)
	trimPtr(&r.Designation)
}

func (r CreateTeacherRequest) ToModel(personalSlug, name string) (tmodel.TeacherModel, error) {
	hire, err := pservice.ParseDate(r.HireDate)
	if err != nil {
		return tmodel.TeacherModel{}, err
	}
	m := tmodel.TeacherModel{
		TeacherPersonalSlug:   personalSlug,
		TeacherName:           name,
		TeacherCode:           r.TeacherCode,
		TeacherEmail:          r.Email,
		TeacherPhone:          r.Phone,
		TeacherDepartment:     r.Department,
		TeacherSpecialization: r.Specialization,
		TeacherDesignation:    r.Designation,
		TeacherSalary:         r.Salary,
		TeacherHireDate:       hire,
	}
	if r.EmploymentType != "" {
		m.TeacherEmploymentType = tmodel.EmploymentType(r.EmploymentType)
	}
	return m, nil
}

type UpdateTeacherRequest struct {
	Slug string `json:"teacher_slug" validate:"required,len=36"`
	CreateTeacherRequest
}

func (r UpdateTeacherRequest) Apply(m *tmodel.TeacherModel) error {
	hire, err := pservice.ParseDate(r.HireDate)
	if err != nil {
		return err
	}
	m.TeacherCode = r.TeacherCode
	m.TeacherEmail = r.Email
	m.TeacherPhone = r.Phone
	m.TeacherDepartment = r.Department
	m.TeacherSpecialization = r.Specialization
	m.TeacherDesignation = r.Designation
	m.TeacherSalary = r.Salary
	m.TeacherHireDate = hire
	if r.EmploymentType != "" {
		m.TeacherEmploymentType = tmodel.EmploymentType(r.EmploymentType)
	}
	return nil
}

type ListTeacherRequest struct {
	helper.ListParams
}

type DetailTeacherRequest struct {
	Slug string `json:"teacher_slug" validate:"required,len=36"`
}

type ActionTeacherRequest struct {
	Slug   string `json:"teacher_slug" validate:"required,len=36"`
	Action string `json:"action" validate:"required,oneof=active resigned on_leave terminated delete restore"`
}

/* =========================================================
   RESPONSES
   ========================================================= */

type TeacherResponse struct {
	TeacherSlug string                `json:"teacher_slug"`
	Personal    pdto.PersonalResponse `json:"personal"`

	TeacherCode    string  `json:"teacher_code"`
	Email          *string `json:"email,omitempty"`
	Phone          string  `json:"phone"`
	Department     string  `json:"department"`
	Specialization *string `json:"specialization,omitempty"`
	Designation    *string `json:"designation,omitempty"`
	Salary         float64 `json:"salary"`
	HireDate       string  `json:"hire_date"`
	EmploymentType string  `json:"employment_type"`
	Status         string  `json:"status"`
}

func FromTeacherModel(m *tmodel.TeacherModel, eff pservice.EffectivePersonal) TeacherResponse {
	return TeacherResponse{
		TeacherSlug:    m.TeacherSlug,
		Personal:       pdto.FromEffective(eff),
		TeacherCode:    m.TeacherCode,
		Email:          m.TeacherEmail,
		Phone:          m.TeacherPhone,
		Department:     m.TeacherDepartment,
		Specialization: m.TeacherSpecialization,
		Designation:    m.TeacherDesignation,
		Salary:         m.TeacherSalary,
		HireDate:       pservice.DateString(m.TeacherHireDate),
		EmploymentType: string(m.TeacherEmploymentType),
		Status:         string(m.TeacherStatus),
	}
}

func trimPtr(pp **string) {
	if pp == nil || *pp == nil {
		return
	}
	v := strings.TrimSpace(**pp)
	if v == "" {
		*pp = nil
		return
	}
	*pp = &v
}
