// file: internals/route/details/records_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	employeeController "kyaungku_backend/internals/features/records/employees/controller"
	personalController "kyaungku_backend/internals/features/records/personals/controller"
	studentController "kyaungku_backend/internals/features/records/students/controller"
	teacherController "kyaungku_backend/internals/features/records/teachers/controller"
)

// RecordsAdminRoutes wires the role-record surfaces under the admin group.
// Same verbs per kind: POST list/create/detail/action, PUT update.
// Personals are read-only plus delete/restore.
func RecordsAdminRoutes(r fiber.Router, db *gorm.DB) {
	students := studentController.NewStudentController(db)
	st := r.Group("/students")
	st.Post("/list", students.List)
	st.Post("/create", students.Create)
	st.Post("/detail", students.Detail)
	st.Put("/update", students.Update)
	st.Post("/action", students.Action)

	teachers := teacherController.NewTeacherController(db)
	tc := r.Group("/teachers")
	tc.Post("/list", teachers.List)
	tc.Post("/create", teachers.Create)
	tc.Post("/detail", teachers.Detail)
	tc.Put("/update", teachers.Update)
	tc.Post("/action", teachers.Action)

	employees := employeeController.NewEmployeeController(db)
	em := r.Group("/employees")
	em.Post("/list", employees.List)
	em.Post("/create", employees.Create)
	em.Post("/detail", employees.Detail)
	em.Put("/update", employees.Update)
	em.Post("/action", employees.Action)

	personals := personalController.NewPersonalController(db)
	ps := r.Group("/personals")
	ps.Post("/list", personals.List)
	ps.Post("/detail", personals.Detail)
	ps.Post("/action", personals.Action)
}
