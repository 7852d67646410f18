// file: internals/features/records/students/dto/student_dto.go
package dto

import (
	"strings"

	"gorm.io/datatypes"

	pdto "kyaungku_backend/internals/features/records/personals/dto"
	pservice "kyaungku_backend/internals/features/records/personals/service"
	smodel "kyaungku_backend/internals/features/records/students/model"
	sservice "kyaungku_backend/internals/features/records/students/service"
	helper "kyaungku_backend/internals/helpers"
)

/* =========================================================
   REQUESTS
   ========================================================= */

type GuardianInput struct {
	Relation   string             `json:"relation" validate:"required,oneof=father mother guardian"`
	Personal   pdto.PersonalInput `json:"personal" validate:"required"`
	Occupation *string            `json:"occupation" validate:"omitempty,max=100"`
	Phone      *string            `json:"phone" validate:"omitempty,max=50"`
	Email      *string            `json:"email" validate:"omitempty,email,max=255"`
}

func (r *GuardianInput) Normalize() {
	r.Relation = strings.ToLower(strings.TrimSpace(r.Relation))
	r.Personal.Normalize()
	trimPtr(&r.Occupation)
	trimPtr(&r.Phone)
	trimPtr(&r.Email)
}

func (r GuardianInput) ToSpec() sservice.GuardianSpec {
	return sservice.GuardianSpec{
		Relation:   smodel.GuardianRelation(r.Relation),
		Fields:     r.Personal.ToFields(),
		Occupation: r.Occupation,
		Phone:      r.Phone,
		Email:      r.Email,
	}
}

type CreateStudentRequest struct {
	Personal pdto.PersonalInput `json:"personal" validate:"required"`

	StudentNumber      string  `json:"student_number" validate:"required,min=1,max=50"`
	RegistrationNumber *string `json:"registration_number" validate:"omitempty,max=50"`
	SchoolName         string  `json:"school_name" validate:"required,min=1,max=255"`
	SchoolCode         *string `json:"school_code" validate:"omitempty,max=50"`
	Email              *string `json:"email" validate:"omitempty,email,max=255"`
	Phone              *string `json:"phone" validate:"omitempty,max=50"`
	Address            *string `json:"address" validate:"omitempty,max=1000"`
	AdmissionDate      *string `json:"admission_date" validate:"omitempty,datetime=2006-01-02"`
	GraduationDate     *string `json:"graduation_date" validate:"omitempty,datetime=2006-01-02"`

	Guardians []GuardianInput `json:"guardians" validate:"omitempty,max=3,dive"`
}

func (r *CreateStudentRequest) Normalize() {
	r.Personal.Normalize()
	r.StudentNumber = strings.TrimSpace(r.StudentNumber)
	r.SchoolName = strings.TrimSpace(r.SchoolName)
	trimPtr(&r.RegistrationNumber)
	trimPtr(&r.SchoolCode)
	trimPtr(&r.Email)
	trimPtr(&r.Phone)
	trimPtr(&r.Address)
	for i := range r.Guardians {
		r.Guardians[i].Normalize()
	}
}

// ToModel builds the row; the personal slug and name cache come from the
// gate's resolved personal.
func (r CreateStudentRequest) ToModel(personalSlug, name string) (smodel.StudentModel, error) {
	admission, err := optionalDate(r.AdmissionDate)
	if err != nil {
		return smodel.StudentModel{}, err
	}
	graduation, err := optionalDate(r.GraduationDate)
	if err != nil {
		return smodel.StudentModel{}, err
	}
	return smodel.StudentModel{
		StudentPersonalSlug:       personalSlug,
		StudentName:               name,
		StudentNumber:             r.StudentNumber,
		StudentRegistrationNumber: r.RegistrationNumber,
		StudentSchoolName:         r.SchoolName,
		StudentSchoolCode:         r.SchoolCode,
		StudentEmail:              r.Email,
		StudentPhone:              r.Phone,
		StudentAddress:            r.Address,
		StudentAdmissionDate:      admission,
		StudentGraduationDate:     graduation,
	}, nil
}

type UpdateStudentRequest struct {
	Slug string `json:"student_slug" validate:"required,len=36"`
	CreateStudentRequest
}

// Apply copies the role fields onto the loaded row. Identity fields take
// the snapshot path, never this one.
func (r UpdateStudentRequest) Apply(m *smodel.StudentModel) error {
	admission, err := optionalDate(r.AdmissionDate)
	if err != nil {
		return err
	}
	graduation, err := optionalDate(r.GraduationDate)
	if err != nil {
		return err
	}
	m.StudentNumber = r.StudentNumber
	m.StudentRegistrationNumber = r.RegistrationNumber
	m.StudentSchoolName = r.SchoolName
	m.StudentSchoolCode = r.SchoolCode
	m.StudentEmail = r.Email
	m.StudentPhone = r.Phone
	m.StudentAddress = r.Address
	m.StudentAdmissionDate = admission
	m.StudentGraduationDate = graduation
	return nil
}

type ListStudentRequest struct {
	helper.ListParams
}

type DetailStudentRequest struct {
	Slug string `json:"student_slug" validate:"required,len=36"`
}

type ActionStudentRequest struct {
	Slug   string `json:"student_slug" validate:"required,len=36"`
	Action string `json:"action" validate:"required,oneof=enrolled graduated suspended inactive delete restore"`
}

/* =========================================================
   RESPONSES
   ========================================================= */

type GuardianResponse struct {
	GuardianSlug string                `json:"guardian_slug"`
	Relation     string                `json:"relation"`
	Personal     pdto.PersonalResponse `json:"personal"`
	Occupation   *string               `json:"occupation,omitempty"`
	Phone        *string               `json:"phone,omitempty"`
	Email        *string               `json:"email,omitempty"`
	Status       string                `json:"status"`
}

func FromGuardianModel(m *smodel.GuardianModel, eff pservice.EffectivePersonal) GuardianResponse {
	return GuardianResponse{
		GuardianSlug: m.GuardianSlug,
		Relation:     string(m.GuardianRelation),
		Personal:     pdto.FromEffective(eff),
		Occupation:   m.GuardianOccupation,
		Phone:        m.GuardianPhone,
		Email:        m.GuardianEmail,
		Status:       string(m.GuardianStatus),
	}
}

type StudentResponse struct {
	StudentSlug string                `json:"student_slug"`
	Personal    pdto.PersonalResponse `json:"personal"`

	StudentNumber      string  `json:"student_number"`
	RegistrationNumber *string `json:"registration_number,omitempty"`
	SchoolName         string  `json:"school_name"`
	SchoolCode         *string `json:"school_code,omitempty"`
	Email              *string `json:"email,omitempty"`
	Phone              *string `json:"phone,omitempty"`
	Address            *string `json:"address,omitempty"`
	AdmissionDate      *string `json:"admission_date,omitempty"`
	GraduationDate     *string `json:"graduation_date,omitempty"`
	Status             string  `json:"status"`

	Guardians []GuardianResponse `json:"guardians,omitempty"`
}

func FromStudentModel(m *smodel.StudentModel, eff pservice.EffectivePersonal, guardians []GuardianResponse) StudentResponse {
	return StudentResponse{
		StudentSlug:        m.StudentSlug,
		Personal:           pdto.FromEffective(eff),
		StudentNumber:      m.StudentNumber,
		RegistrationNumber: m.StudentRegistrationNumber,
		SchoolName:         m.StudentSchoolName,
		SchoolCode:         m.StudentSchoolCode,
		Email:              m.StudentEmail,
		Phone:              m.StudentPhone,
		Address:            m.StudentAddress,
		AdmissionDate:      dateStringPtr(m.StudentAdmissionDate),
		GraduationDate:     dateStringPtr(m.StudentGraduationDate),
		Status:             string(m.StudentStatus),
		Guardians:          guardians,
	}
}

/* =========================================================
   small shared conversions
   ========================================================= */

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
