// file: internals/features/records/employees/dto/employee_dto.go
package dto

import (
	"strings"

	"gorm.io/datatypes"

	emodel "kyaungku_backend/internals/features/records/employees/model"
	pdto "kyaungku_backend/internals/features/records/personals/dto"
	pservice "kyaungku_backend/internals/features/records/personals/service"
	helper "kyaungku_backend/internals/helpers"
)

/* =========================================================
   REQUESTS
   ========================================================= */

type CreateEmployeeRequest struct {
	Personal pdto.PersonalInput `json:"personal" validate:"required"`

	EmployeeCode    string  `json:"employee_code" validate:"required,min=1,max=50"`
	Email           *string `json:"email" validate:"omitempty,email,max=255"`
	Phone           *string `json:"phone" validate:"omitempty,max=50"`
	Address         *string `json:"address" validate:"omitempty,max=1000"`
	Position        *string `json:"position" validate:"omitempty,max=100"`
	Department      *string `json:"department" validate:"omitempty,max=100"`
	EmploymentType  string  `json:"employment_type" validate:"omitempty,oneof=full-time part-time contract"`
	HireDate        string  `json:"hire_date" validate:"required,datetime=2006-01-02"`
	ResignDate      *string `json:"resign_date" validate:"omitempty,datetime=2006-01-02"`
	ExperienceYears int     `json:"experience_years" validate:"min=0,max=80"`
	Salary          float64 `json:"salary" validate:"min=0"`
}

func (r *CreateEmployeeRequest) Normalize() {
	r.Personal.Normalize()
	r.EmployeeCode = strings.TrimSpace(r.EmployeeCode)
	r.HireDate = strings.TrimSpace(r.HireDate)
	r.EmploymentType = strings.ToLower(strings.TrimSpace(r.EmploymentType))
	trimPtr(&r.Email)
	trimPtr(&r.Phone)
	trimPtr(&r.Address)
	trimPtr(&r.Position)
	trimPtr(&r.Department)
	trimPtr(&r.ResignDate)
}

func (r CreateEmployeeRequest) ToModel(personalSlug, name string) (emodel.EmployeeModel, error) {
	hire, err := pservice.ParseDate(r.HireDate)
	if err != nil {
		return emodel.EmployeeModel{}, err
	}
	resign, err := optionalDate(r.ResignDate)
	if err != nil {
		return emodel.EmployeeModel{}, err
	}
	m := emodel.EmployeeModel{
		EmployeePersonalSlug:    personalSlug,
		EmployeeName:            name,
		EmployeeCode:            r.EmployeeCode,
		EmployeeEmail:           r.Email,
		EmployeePhone:           r.Phone,
		EmployeeAddress:         r.Address,
		EmployeePosition:        r.Position,
		EmployeeDepartment:      r.Department,
		EmployeeHireDate:        hire,
		EmployeeResignDate:      resign,
		EmployeeExperienceYears: r.ExperienceYears,
		EmployeeSalary:          r.Salary,
	}
	if r.EmploymentType != "" {
		m.EmployeeEmploymentType = emodel.EmploymentType(r.EmploymentType)
	}
	return m, nil
}

type UpdateEmployeeRequest struct {
	Slug string `json:"employee_slug" validate:"required,len=36"`
	CreateEmployeeRequest
}

func (r UpdateEmployeeRequest) Apply(m *emodel.EmployeeModel) error {
	hire, err := pservice.ParseDate(r.HireDate)
	if err != nil {
		return err
	}
	resign, err := optionalDate(r.ResignDate)
	if err != nil {
		return err
	}
	m.EmployeeCode = r.EmployeeCode
	m.EmployeeEmail = r.Email
	m.EmployeePhone = r.Phone
	m.EmployeeAddress = r.Address
	m.EmployeePosition = r.Position
	m.EmployeeDepartment = r.Department
	m.EmployeeHireDate = hire
	m.EmployeeResignDate = resign
	m.EmployeeExperienceYears = r.ExperienceYears
	m.EmployeeSalary = r.Salary
	if r.EmploymentType != "" {
		m.EmployeeEmploymentType = emodel.EmploymentType(r.EmploymentType)
	}
	return nil
}

type ListEmployeeRequest struct {
	helper.ListParams
}

type DetailEmployeeRequest struct {
	Slug string `json:"employee_slug" validate:"required,len=36"`
}

type ActionEmployeeRequest struct {
	Slug   string `json:"employee_slug" validate:"required,len=36"`
	Action string `json:"action" validate:"required,oneof=active resigned on_leave terminated delete restore"`
}

/* =========================================================
   RESPONSES
   ========================================================= */

type EmployeeResponse struct {
	EmployeeSlug string                `json:"employee_slug"`
	Personal     pdto.PersonalResponse `json:"personal"`

	EmployeeCode    string  `json:"employee_code"`
	Email           *string `json:"email,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	Address         *string `json:"address,omitempty"`
	Position        *string `json:"position,omitempty"`
	Department      *string `json:"department,omitempty"`
	EmploymentType  string  `json:"employment_type"`
	HireDate        string  `json:"hire_date"`
	ResignDate      *string `json:"resign_date,omitempty"`
	ExperienceYears int     `json:"experience_years"`
	Salary          float64 `json:"salary"`
	Status          string  `json:"status"`
}

func FromEmployeeModel(m *emodel.EmployeeModel, eff pservice.EffectivePersonal) EmployeeResponse {
	return EmployeeResponse{
		EmployeeSlug:    m.EmployeeSlug,
		Personal:        pdto.FromEffective(eff),
		EmployeeCode:    m.EmployeeCode,
		Email:           m.EmployeeEmail,
		Phone:           m.EmployeePhone,
		Address:         m.EmployeeAddress,
		Position:        m.EmployeePosition,
		Department:      m.EmployeeDepartment,
		EmploymentType:  string(m.EmployeeEmploymentType),
		HireDate:        pservice.DateString(m.EmployeeHireDate),
		ResignDate:      dateStringPtr(m.EmployeeResignDate),
		ExperienceYears: m.EmployeeExperienceYears,
		Salary:          m.EmployeeSalary,
		Status:          string(m.EmployeeStatus),
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

func optionalDate(s *string) (*datatypes.Date, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	d, err := pservice.ParseDate(strings.TrimSpace(*s))
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func dateStringPtr(d *datatypes.Date) *string {
	if d == nil {
		return nil
	}
	s := pservice.DateString(*d)
	return &s
}
