// file: internals/seeds/seeds.go
package seeds

import (
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	emodel "kyaungku_backend/internals/features/records/employees/model"
	pmodel "kyaungku_backend/internals/features/records/personals/model"
	smodel "kyaungku_backend/internals/features/records/students/model"
	tmodel "kyaungku_backend/internals/features/records/teachers/model"
	umodel "kyaungku_backend/internals/features/users/auth/model"
	helper "kyaungku_backend/internals/helpers"
)

// RunAllSeeds migrates the schema and loads the fixture data set. Fixture
// rows use deterministic padded ids so reruns hit the unique indexes and
// skip cleanly.
func RunAllSeeds(db *gorm.DB) {
	log.Println("🌱 Running seeds...")

	if err := db.AutoMigrate(
		&umodel.UserModel{},
		&pmodel.PersonalModel{},
		&pmodel.PersonalUpdateModel{},
		&smodel.StudentModel{},
		&smodel.GuardianModel{},
		&tmodel.TeacherModel{},
		&emodel.EmployeeModel{},
	); err != nil {
		log.Printf("❌ AutoMigrate failed: %v", err)
		return
	}

	seedUsers(db)
	seedRecords(db)

	log.Println("✅ Seeds finished")
}

func seedUsers(db *gorm.DB) {
	hash, err := bcrypt.GenerateFromPassword([]byte("admin12345"), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("❌ bcrypt failed: %v", err)
		return
	}
	admin := umodel.UserModel{
		UserSlug:     helper.FixtureID(1),
		UserName:     "admin",
		UserEmail:    "admin@kyaungku.local",
		UserPassword: string(hash),
		UserRole:     "admin",
	}
	if err := db.Where("user_name = ?", admin.UserName).
		FirstOrCreate(&admin).Error; err != nil {
		log.Printf("❌ seed users: %v", err)
		return
	}
	log.Println("✅ seed users: admin ready")
}

func seedRecords(db *gorm.DB) {
	date := func(s string) datatypes.Date {
		t, _ := time.Parse("2006-01-02", s)
		return datatypes.Date(t)
	}

	personals := []pmodel.PersonalModel{
		{
			PersonalSlug:         helper.FixtureID(101),
			PersonalFullName:     "Aung Aung",
			PersonalBirthDate:    date("2008-05-14"),
			PersonalGender:       pmodel.GenderMale,
			PersonalRegionCode:   "12",
			PersonalTownshipCode: "MaYaKa",
			PersonalCitizenship:  "N",
			PersonalSerialNumber: "123456",
		},
		{
			PersonalSlug:         helper.FixtureID(102),
			PersonalFullName:     "Daw Khin May",
			PersonalBirthDate:    date("1975-01-30"),
			PersonalGender:       pmodel.GenderFemale,
			PersonalRegionCode:   "12",
			PersonalTownshipCode: "MaYaKa",
			PersonalCitizenship:  "N",
			PersonalSerialNumber: "654321",
		},
		{
			PersonalSlug:         helper.FixtureID(103),
			PersonalFullName:     "U Mya Thein",
			PersonalBirthDate:    date("1980-11-02"),
			PersonalGender:       pmodel.GenderMale,
			PersonalRegionCode:   "9",
			PersonalTownshipCode: "PaMaNa",
			PersonalCitizenship:  "N",
			PersonalSerialNumber: "222333",
		},
		{
			PersonalSlug:         helper.FixtureID(104),
			PersonalFullName:     "Ma Thandar",
			PersonalBirthDate:    date("1990-07-19"),
			PersonalGender:       pmodel.GenderFemale,
			PersonalRegionCode:   "7",
			PersonalTownshipCode: "ThaKaNa",
			PersonalCitizenship:  "N",
			PersonalSerialNumber: "445566",
		},
	}
	for i := range personals {
		p := &personals[i]
		if err := db.Where("personal_slug = ?", p.PersonalSlug).
			FirstOrCreate(p).Error; err != nil {
			log.Printf("❌ seed personals: %v", err)
			return
		}
	}

	student := smodel.StudentModel{
		StudentSlug:          helper.FixtureID(201),
		StudentPersonalSlug:  personals[0].PersonalSlug,
		StudentName:          personals[0].PersonalFullName,
		StudentNumber:        "STU-001",
		StudentSchoolName:    "No.1 Basic Education High School",
		StudentAdmissionDate: ptr(date("2020-06-01")),
	}
	if err := db.Where("student_slug = ?", student.StudentSlug).
		FirstOrCreate(&student).Error; err != nil {
		log.Printf("❌ seed students: %v", err)
		return
	}

	guardian := smodel.GuardianModel{
		GuardianSlug:         helper.FixtureID(301),
		GuardianPersonalSlug: personals[1].PersonalSlug,
		GuardianStudentSlug:  student.StudentSlug,
		GuardianRelation:     smodel.GuardianMother,
		GuardianName:         personals[1].PersonalFullName,
	}
	if err := db.Where("guardian_slug = ?", guardian.GuardianSlug).
		FirstOrCreate(&guardian).Error; err != nil {
		log.Printf("❌ seed guardians: %v", err)
		return
	}

	teacher := tmodel.TeacherModel{
		TeacherSlug:         helper.FixtureID(401),
		TeacherPersonalSlug: personals[2].PersonalSlug,
		TeacherName:         personals[2].PersonalFullName,
		TeacherCode:         "TCH-001",
		TeacherPhone:        "09-111222333",
		TeacherDepartment:   "Mathematics",
		TeacherSalary:       450000,
		TeacherHireDate:     date("2015-06-01"),
	}
	if err := db.Where("teacher_slug = ?", teacher.TeacherSlug).
		FirstOrCreate(&teacher).Error; err != nil {
		log.Printf("❌ seed teachers: %v", err)
		return
	}

	employee := emodel.EmployeeModel{
		EmployeeSlug:         helper.FixtureID(501),
		EmployeePersonalSlug: personals[3].PersonalSlug,
		EmployeeName:         personals[3].PersonalFullName,
		EmployeeCode:         "EMP-001",
		EmployeeHireDate:     date("2018-01-15"),
		EmployeeSalary:       300000,
	}
	if err := db.Where("employee_slug = ?", employee.EmployeeSlug).
		FirstOrCreate(&employee).Error; err != nil {
		log.Printf("❌ seed employees: %v", err)
		return
	}

	log.Println("✅ seed records: fixtures ready")
}

func ptr[T any](v T) *T { return &v }
