package models

import (
	"fmt"
	"io"
	"log"
	"os"
	"slices"
	"sort"
	"sync"

	"gorm.io/gen"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// Models lists every model backed by a table, keyed by table name.
func Models() map[string]interface{} {
	return map[string]interface{}{
		Developer{}.TableName():         Developer{},
		DeveloperInfo{}.TableName():     DeveloperInfo{},
		Project{}.TableName():           Project{},
		Technology{}.TableName():        Technology{},
		ProjectTechnology{}.TableName(): ProjectTechnology{},
	}
}

// GenerateModels writes typed query helpers for every model into outPath.
// The schema itself is owned outside the service and is never migrated here.
func GenerateModels(db *gorm.DB, outPath string) error {
	// First, ensure the database is ready
	if err := db.Exec("SELECT 1").Error; err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             0,
			LogLevel:                  logger.Info,
			IgnoreRecordNotFoundError: false,
			Colorful:                  true,
		},
	)
	db = db.Session(&gorm.Session{
		Logger:                 newLogger,
		SkipDefaultTransaction: true,
		PrepareStmt:            false,
	})

	g := gen.NewGenerator(gen.Config{
		OutPath:           outPath,
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface,
		FieldNullable:     true,
		FieldCoverable:    true,
		FieldWithIndexTag: true,
		FieldWithTypeTag:  true,
	})

	g.UseDB(db)

	g.ApplyBasic(
		Developer{},
		DeveloperInfo{},
		Project{},
		Technology{},
		ProjectTechnology{},
	)

	// Report drift between the live schema and the models before generating
	drift, err := ColumnDrift(db)
	if err != nil {
		return err
	}
	WriteColumnReport(os.Stdout, drift)

	g.Execute()
	fmt.Println("Model generation complete!")
	return nil
}

// TableDrift is the difference between one table and its model.
type TableDrift struct {
	Table    string
	Missing  bool
	Unmapped []string
}

// ColumnDrift compares every model with the live schema, in table order.
// It backs GENERATE_COLUMN_REPORT and never changes the schema.
func ColumnDrift(db *gorm.DB) ([]TableDrift, error) {
	byTable := Models()
	tables := make([]string, 0, len(byTable))
	for table := range byTable {
		tables = append(tables, table)
	}
	sort.Strings(tables)

	migrator := db.Migrator()
	drift := make([]TableDrift, 0, len(tables))
	for _, table := range tables {
		if !migrator.HasTable(table) {
			drift = append(drift, TableDrift{Table: table, Missing: true})
			continue
		}
		columnTypes, err := migrator.ColumnTypes(table)
		if err != nil {
			return nil, fmt.Errorf("reading columns of %s: %w", table, err)
		}
		columns := make([]string, 0, len(columnTypes))
		for _, c := range columnTypes {
			columns = append(columns, c.Name())
		}
		drift = append(drift, TableDrift{
			Table:    table,
			Unmapped: findColumnMismatches(columns, getModelFields(byTable[table])),
		})
	}
	return drift, nil
}

// WriteColumnReport prints drift and returns the number of unmapped columns.
func WriteColumnReport(w io.Writer, drift []TableDrift) int {
	total := 0
	fmt.Fprintln(w, "=== COLUMN MISMATCH REPORT ===")
	for _, d := range drift {
		fmt.Fprintf(w, "\n--- Table: %s ---\n", d.Table)
		switch {
		case d.Missing:
			fmt.Fprintln(w, "Table does not exist (see database/schema.sql)")
		case len(d.Unmapped) == 0:
			fmt.Fprintln(w, "All columns are accounted for in the model.")
		default:
			fmt.Fprintf(w, "Found %d columns not accounted for in model:\n", len(d.Unmapped))
			for _, col := range d.Unmapped {
				fmt.Fprintf(w, "  - %s\n", col)
			}
			total += len(d.Unmapped)
		}
	}
	fmt.Fprintf(w, "\nTotal mismatched columns across all tables: %d\n", total)
	return total
}

// getModelFields lists the column names gorm maps for a model struct
func getModelFields(model interface{}) []string {
	parsed, err := schema.Parse(model, &sync.Map{}, schema.NamingStrategy{})
	if err != nil {
		return nil
	}

	var fields []string
	for _, field := range parsed.Fields {
		if field.DBName != "" {
			fields = append(fields, field.DBName)
		}
	}
	return fields
}

// findColumnMismatches returns the columns of dbColumns missing from modelFields.
func findColumnMismatches(dbColumns, modelFields []string) []string {
	var unmapped []string
	for _, col := range dbColumns {
		if !slices.Contains(modelFields, col) {
			unmapped = append(unmapped, col)
		}
	}
	return unmapped
}
