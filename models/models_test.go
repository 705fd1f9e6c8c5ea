package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func ptr[T any](v T) *T {
	return &v
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-31")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), time.Time(d))

	d, err = ParseDate("2024-01-31T23:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), time.Time(d))

	_, err = ParseDate("31/01/2024")
	assert.EqualError(t, err, `date "31/01/2024" must be formatted as YYYY-MM-DD`)
}

func TestDateOf(t *testing.T) {
	sp := time.FixedZone("BRT", -3*60*60)
	d := DateOf(time.Date(2024, 3, 1, 22, 0, 0, 0, sp))
	assert.Equal(t, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), time.Time(d))
}

func TestDateJSON(t *testing.T) {
	info := DeveloperInfo{ID: 1, DeveloperSince: DateOf(time.Date(2020, 5, 1, 9, 0, 0, 0, time.UTC)), PreferredOS: OSLinux}
	raw, err := json.Marshal(info)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"developerSince":"2020-05-01","preferredOS":"Linux"}`, string(raw))

	var project Project
	require.NoError(t, json.Unmarshal([]byte(`{"startDate":"2024-01-31","endDate":null}`), &project))
	assert.Equal(t, "2024-01-31", project.StartDate.String())
	assert.Nil(t, project.EndDate)

	var d Date
	assert.Error(t, json.Unmarshal([]byte(`"31/01/2024"`), &d))
}

func TestOSValid(t *testing.T) {
	assert.True(t, OSLinux.Valid())
	assert.True(t, OS("MacOS").Valid())
	assert.False(t, OS("BeOS").Valid())
	assert.False(t, OS("linux").Valid())
}

func TestNewProjectToModel(t *testing.T) {
	project, err := NewProject{
		Name:        "P",
		StartDate:   "2024-01-01",
		EndDate:     ptr("2024-02-01"),
		DeveloperID: 3,
	}.ToModel()
	require.NoError(t, err)
	assert.Equal(t, int64(3), project.DeveloperID)
	require.NotNil(t, project.EndDate)
	assert.Equal(t, "2024-02-01", time.Time(*project.EndDate).Format(DateLayout))

	_, err = NewProject{StartDate: "2024-01-01", EndDate: ptr("later")}.ToModel()
	assert.Error(t, err)
}

func TestDeveloperPatchColumns(t *testing.T) {
	assert.Empty(t, DeveloperPatch{}.Columns())
	assert.Equal(t, map[string]any{"name": "Bia"}, DeveloperPatch{Name: ptr("Bia")}.Columns())
	assert.Equal(t,
		map[string]any{"name": "Bia", "email": "bia@x.com"},
		DeveloperPatch{Name: ptr("Bia"), Email: ptr("bia@x.com")}.Columns())
}

func TestDeveloperInfoPatchColumns(t *testing.T) {
	cols, err := DeveloperInfoPatch{PreferredOS: ptr(OSWindows)}.Columns()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"preferredOS": "Windows"}, cols)

	cols, err = DeveloperInfoPatch{DeveloperSince: ptr("2019-09-09")}.Columns()
	require.NoError(t, err)
	assert.Equal(t, Date(time.Date(2019, 9, 9, 0, 0, 0, 0, time.UTC)), cols["developerSince"])

	_, err = DeveloperInfoPatch{PreferredOS: ptr(OS("BeOS"))}.Columns()
	assert.Error(t, err)

	_, err = DeveloperInfoPatch{DeveloperSince: ptr("soon")}.Columns()
	assert.Error(t, err)
}

func TestProjectPatchColumns(t *testing.T) {
	cols, err := ProjectPatch{
		Repository:  ptr("github.com/x/y"),
		EndDate:     ptr("2024-12-31"),
		DeveloperID: ptr(int64(2)),
	}.Columns()
	require.NoError(t, err)
	assert.Len(t, cols, 3)
	assert.Equal(t, "github.com/x/y", cols["repository"])
	assert.Equal(t, int64(2), cols["developerId"])
	assert.Contains(t, cols, "endDate")

	for key := range cols {
		assert.Contains(t, ProjectKeys, key)
	}

	_, err = ProjectPatch{StartDate: ptr("tomorrow")}.Columns()
	assert.Error(t, err)

	cols, err = ProjectPatch{ClearEndDate: true}.Columns()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"endDate": nil}, cols)

	cols, err = ProjectPatch{EndDate: ptr("2025-01-01"), ClearEndDate: true}.Columns()
	require.NoError(t, err)
	assert.Equal(t, DateOf(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)), cols["endDate"])
}

func TestGetModelFields(t *testing.T) {
	assert.ElementsMatch(t,
		[]string{"id", "name", "email", "developerInfoId"},
		getModelFields(&Developer{}))
	assert.ElementsMatch(t,
		[]string{"projectId", "technologyId", "addedIn"},
		getModelFields(&ProjectTechnology{}))
	assert.ElementsMatch(t,
		[]string{"id", "name", "description", "estimatedTime", "repository", "startDate", "endDate", "developerId"},
		getModelFields(&Project{}))
}

func TestFindColumnMismatches(t *testing.T) {
	mismatches := findColumnMismatches(
		[]string{"id", "name", "email", "developerInfoId", "created_at"},
		getModelFields(&Developer{}),
	)
	assert.Equal(t, []string{"created_at"}, mismatches)
	assert.Empty(t, findColumnMismatches([]string{"id"}, []string{"id", "name"}))
}

func TestModelsCoverEveryTable(t *testing.T) {
	tables := Models()
	assert.Len(t, tables, 5)
	for _, name := range []string{"developers", "developer_infos", "projects", "technologies", "projects_technologies"} {
		assert.Contains(t, tables, name)
	}
}

func TestColumnDrift(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&DeveloperInfo{}, &Developer{}, &Project{}, &Technology{}))
	require.NoError(t, db.Exec(`ALTER TABLE "developers" ADD COLUMN "nickname" TEXT`).Error)

	drift, err := ColumnDrift(db)
	require.NoError(t, err)
	require.Len(t, drift, 5)

	byTable := map[string]TableDrift{}
	for _, d := range drift {
		byTable[d.Table] = d
	}
	assert.Equal(t, []string{"nickname"}, byTable["developers"].Unmapped)
	assert.Empty(t, byTable["projects"].Unmapped)
	assert.False(t, byTable["projects"].Missing)
	assert.True(t, byTable["projects_technologies"].Missing)

	var out strings.Builder
	assert.Equal(t, 1, WriteColumnReport(&out, drift))
	assert.Contains(t, out.String(), "  - nickname")
	assert.Contains(t, out.String(), "--- Table: projects_technologies ---\nTable does not exist")
}
