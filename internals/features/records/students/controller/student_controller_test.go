// file: internals/features/records/students/controller/student_controller_test.go
package controller_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	emodel "kyaungku_backend/internals/features/records/employees/model"
	pmodel "kyaungku_backend/internals/features/records/personals/model"
	"kyaungku_backend/internals/features/records/students/controller"
	smodel "kyaungku_backend/internals/features/records/students/model"
	tmodel "kyaungku_backend/internals/features/records/teachers/model"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&pmodel.PersonalModel{},
		&pmodel.PersonalUpdateModel{},
		&smodel.StudentModel{},
		&smodel.GuardianModel{},
		&tmodel.TeacherModel{},
		&emodel.EmployeeModel{},
	))

	app := fiber.New()
	ctrl := controller.NewStudentController(db)
	app.Post("/students/list", ctrl.List)
	app.Post("/students/create", ctrl.Create)
	app.Post("/students/detail", ctrl.Detail)
	app.Put("/students/update", ctrl.Update)
	app.Post("/students/action", ctrl.Action)
	return app, db
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Total   int64           `json:"total"`
	Data    json.RawMessage `json:"data"`
}

func do(t *testing.T, app *fiber.App, method, path string, body any) (int, envelope) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.Unmarshal(out, &env), "body: %s", out)
	return resp.StatusCode, env
}

func personalPayload(fullName, serial string) map[string]any {
	return map[string]any{
		"full_name":     fullName,
		"birth_date":    "2008-05-14",
		"gender":        "male",
		"region_code":   "12",
		"township_code": "MaYaKa",
		"citizenship":   "N",
		"serial_number": serial,
	}
}

func createPayload() map[string]any {
	guardian := map[string]any{
		"relation": "mother",
		"personal": map[string]any{
			"full_name":     "Daw Khin May",
			"birth_date":    "1975-01-30",
			"gender":        "female",
			"region_code":   "12",
			"township_code": "MaYaKa",
			"citizenship":   "N",
			"serial_number": "654321",
		},
	}
	return map[string]any{
		"personal":       personalPayload("Aung Aung", "123456"),
		"student_number": "STU-001",
		"school_name":    "No.1 Basic Education High School",
		"guardians":      []any{guardian},
	}
}

type studentBody struct {
	StudentSlug string `json:"student_slug"`
	Personal    struct {
		PersonalSlug string `json:"personal_slug"`
		FullName     string `json:"full_name"`
		BirthDate    string `json:"birth_date"`
	} `json:"personal"`
	StudentNumber string `json:"student_number"`
	Status        string `json:"status"`
	Guardians     []struct {
		GuardianSlug string `json:"guardian_slug"`
		Relation     string `json:"relation"`
		Personal     struct {
			FullName string `json:"full_name"`
		} `json:"personal"`
	} `json:"guardians"`
}

func TestStudentLifecycleFlow(t *testing.T) {
	app, db := newTestApp(t)

	// Create.
	code, env := do(t, app, http.MethodPost, "/students/create", createPayload())
	require.Equal(t, http.StatusCreated, code, env.Message)
	require.True(t, env.Success)

	var created studentBody
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.Len(t, created.StudentSlug, 36)
	require.Equal(t, "Aung Aung", created.Personal.FullName)
	require.Equal(t, "enrolled", created.Status)
	require.Len(t, created.Guardians, 1)
	require.Equal(t, "mother", created.Guardians[0].Relation)
	require.Equal(t, "Daw Khin May", created.Guardians[0].Personal.FullName)

	// Update the name: the base personal stays put, one snapshot appears,
	// reads surface the new name.
	update := createPayload()
	update["student_slug"] = created.StudentSlug
	update["personal"] = personalPayload("Aung Aung Jr.", "123456")
	code, env = do(t, app, http.MethodPut, "/students/update", update)
	require.Equal(t, http.StatusOK, code, env.Message)

	var updated studentBody
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	require.Equal(t, "Aung Aung Jr.", updated.Personal.FullName)

	var base pmodel.PersonalModel
	require.NoError(t, db.Where("personal_slug = ?", created.Personal.PersonalSlug).First(&base).Error)
	require.Equal(t, "Aung Aung", base.PersonalFullName)

	var snapshots int64
	countSnapshots := func() int64 {
		require.NoError(t, db.Model(&pmodel.PersonalUpdateModel{}).
			Where("personal_update_target_kind = ?", pmodel.TargetStudent).
			Count(&snapshots).Error)
		return snapshots
	}
	require.EqualValues(t, 1, countSnapshots())

	// Same payload again: no new snapshot.
	code, _ = do(t, app, http.MethodPut, "/students/update", update)
	require.Equal(t, http.StatusOK, code)
	require.EqualValues(t, 1, countSnapshots())

	// Delete: status forced to inactive, row hidden from list.
	code, env = do(t, app, http.MethodPost, "/students/action", map[string]any{
		"student_slug": created.StudentSlug,
		"action":       "delete",
	})
	require.Equal(t, http.StatusOK, code, env.Message)

	code, env = do(t, app, http.MethodPost, "/students/list", map[string]any{})
	require.Equal(t, http.StatusOK, code)
	require.EqualValues(t, 0, env.Total)

	var trashed smodel.StudentModel
	require.NoError(t, db.Unscoped().Where("student_slug = ?", created.StudentSlug).First(&trashed).Error)
	require.Equal(t, smodel.StudentInactive, trashed.StudentStatus)
	require.True(t, trashed.StudentDeletedAt.Valid)

	// Restore: default status again, visible again, snapshot trail intact.
	code, env = do(t, app, http.MethodPost, "/students/action", map[string]any{
		"student_slug": created.StudentSlug,
		"action":       "restore",
	})
	require.Equal(t, http.StatusOK, code, env.Message)

	code, env = do(t, app, http.MethodPost, "/students/list", map[string]any{})
	require.Equal(t, http.StatusOK, code)
	require.EqualValues(t, 1, env.Total)

	var rows []studentBody
	require.NoError(t, json.Unmarshal(env.Data, &rows))
	require.Equal(t, "enrolled", rows[0].Status)
	require.Equal(t, "Aung Aung Jr.", rows[0].Personal.FullName)
}

func TestStudentCreate_ClaimedIdentityConflict(t *testing.T) {
	app, _ := newTestApp(t)

	code, _ := do(t, app, http.MethodPost, "/students/create", createPayload())
	require.Equal(t, http.StatusCreated, code)

	// Same NRC key, different business fields: the personal is claimed.
	again := createPayload()
	again["student_number"] = "STU-002"
	code, env := do(t, app, http.MethodPost, "/students/create", again)
	require.Equal(t, http.StatusConflict, code, env.Message)
	require.False(t, env.Success)
}

func TestStudentCreate_DuplicateStudentNumberConflict(t *testing.T) {
	app, _ := newTestApp(t)

	code, _ := do(t, app, http.MethodPost, "/students/create", createPayload())
	require.Equal(t, http.StatusCreated, code)

	// Different person, same student number.
	dup := createPayload()
	dup["personal"] = personalPayload("Kyaw Kyaw", "777777")
	delete(dup, "guardians")
	code, env := do(t, app, http.MethodPost, "/students/create", dup)
	require.Equal(t, http.StatusConflict, code, env.Message)
}

func TestStudentCreate_ValidationError(t *testing.T) {
	app, _ := newTestApp(t)

	bad := createPayload()
	p := bad["personal"].(map[string]any)
	p["gender"] = "other"
	p["birth_date"] = "14/05/2008"

	code, env := do(t, app, http.MethodPost, "/students/create", bad)
	require.Equal(t, http.StatusUnprocessableEntity, code)
	require.False(t, env.Success)
}

func TestStudentList_TotalIndependentOfPaging(t *testing.T) {
	app, _ := newTestApp(t)

	for i := 0; i < 5; i++ {
		payload := map[string]any{
			"personal":       personalPayload(fmt.Sprintf("Student %d", i), fmt.Sprintf("10%04d", i)),
			"student_number": fmt.Sprintf("STU-%03d", i),
			"school_name":    "No.1 BEHS",
		}
		code, env := do(t, app, http.MethodPost, "/students/create", payload)
		require.Equal(t, http.StatusCreated, code, env.Message)
	}

	code, env := do(t, app, http.MethodPost, "/students/list", map[string]any{
		"skip":  2,
		"limit": 2,
	})
	require.Equal(t, http.StatusOK, code)
	require.EqualValues(t, 5, env.Total)

	var rows []studentBody
	require.NoError(t, json.Unmarshal(env.Data, &rows))
	require.Len(t, rows, 2)
}

func TestStudentList_SearchPrefixAndOrder(t *testing.T) {
	app, _ := newTestApp(t)

	names := []string{"Aung Aung", "Aye Aye", "Kyaw Kyaw"}
	for i, n := range names {
		payload := map[string]any{
			"personal":       personalPayload(n, fmt.Sprintf("20%04d", i)),
			"student_number": fmt.Sprintf("STU-%03d", i),
			"school_name":    "No.1 BEHS",
		}
		code, _ := do(t, app, http.MethodPost, "/students/create", payload)
		require.Equal(t, http.StatusCreated, code)
	}

	code, env := do(t, app, http.MethodPost, "/students/list", map[string]any{
		"search":    map[string]string{"name": "a"},
		"order_by":  "name",
		"sorted_by": "asc",
	})
	require.Equal(t, http.StatusOK, code)
	require.EqualValues(t, 2, env.Total)

	var rows []studentBody
	require.NoError(t, json.Unmarshal(env.Data, &rows))
	require.Len(t, rows, 2)

	// Disallowed search field is rejected.
	code, _ = do(t, app, http.MethodPost, "/students/list", map[string]any{
		"search": map[string]string{"student_personal_slug": "x"},
	})
	require.Equal(t, http.StatusUnprocessableEntity, code)
}

func TestStudentAction_RestoreOnLiveRecordRejected(t *testing.T) {
	app, _ := newTestApp(t)

	code, env := do(t, app, http.MethodPost, "/students/create", createPayload())
	require.Equal(t, http.StatusCreated, code)

	var created studentBody
	require.NoError(t, json.Unmarshal(env.Data, &created))

	code, env = do(t, app, http.MethodPost, "/students/action", map[string]any{
		"student_slug": created.StudentSlug,
		"action":       "restore",
	})
	require.Equal(t, http.StatusBadRequest, code)
	require.False(t, env.Success)
}

func TestStudentUpdate_GuardianSyncSoftDeletesMissing(t *testing.T) {
	app, db := newTestApp(t)

	code, env := do(t, app, http.MethodPost, "/students/create", createPayload())
	require.Equal(t, http.StatusCreated, code)

	var created studentBody
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.Len(t, created.Guardians, 1)

	// Update with an empty guardian list: the mother is soft-deleted, not
	// hard-deleted, keeping her row and trail.
	update := createPayload()
	update["student_slug"] = created.StudentSlug
	update["guardians"] = []any{}
	code, env = do(t, app, http.MethodPut, "/students/update", update)
	require.Equal(t, http.StatusOK, code, env.Message)

	var updated studentBody
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	require.Empty(t, updated.Guardians)

	var trashed smodel.GuardianModel
	require.NoError(t, db.Unscoped().
		Where("guardian_student_slug = ?", created.StudentSlug).
		First(&trashed).Error)
	require.True(t, trashed.GuardianDeletedAt.Valid)
	require.Equal(t, smodel.GuardianInactive, trashed.GuardianStatus)

	// Re-submitting the relation revives the same row instead of creating
	// a second one.
	update = createPayload()
	update["student_slug"] = created.StudentSlug
	code, env = do(t, app, http.MethodPut, "/students/update", update)
	require.Equal(t, http.StatusOK, code, env.Message)

	var revived studentBody
	require.NoError(t, json.Unmarshal(env.Data, &revived))
	require.Len(t, revived.Guardians, 1)
	require.Equal(t, trashed.GuardianSlug, revived.Guardians[0].GuardianSlug)

	var total int64
	require.NoError(t, db.Unscoped().Model(&smodel.GuardianModel{}).
		Where("guardian_student_slug = ?", created.StudentSlug).
		Count(&total).Error)
	require.EqualValues(t, 1, total)
}
