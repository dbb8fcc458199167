package models

import (
	"fmt"
	"sort"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// TableReport lists the columns of one table that no model field maps to.
type TableReport struct {
	Table    string
	Exists   bool
	Unmapped []string
	Columns  int
}

// ColumnReport compares the live columns of every model table with the model fields.
// Tables are reported in name order.
func ColumnReport(db *gorm.DB) ([]TableReport, error) {
	tables := Tables()
	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}
	sort.Strings(names)

	cache := &sync.Map{}
	reports := make([]TableReport, 0, len(names))
	for _, name := range names {
		model := tables[name]
		report := TableReport{Table: name}

		if !db.Migrator().HasTable(model) {
			reports = append(reports, report)
			continue
		}
		report.Exists = true

		columnTypes, err := db.Migrator().ColumnTypes(model)
		if err != nil {
			return nil, fmt.Errorf("error querying columns for table %s: %w", name, err)
		}

		modelSchema, err := schema.Parse(model, cache, db.NamingStrategy)
		if err != nil {
			return nil, fmt.Errorf("error parsing model for table %s: %w", name, err)
		}

		columns := make([]string, 0, len(columnTypes))
		for _, columnType := range columnTypes {
			columns = append(columns, columnType.Name())
		}
		report.Columns = len(columns)
		report.Unmapped = unmappedColumns(columns, modelSchema.DBNames)

		reports = append(reports, report)
	}

	return reports, nil
}

// unmappedColumns returns the columns missing from fields, keeping column order.
func unmappedColumns(columns, fields []string) []string {
	known := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		known[field] = struct{}{}
	}

	var missing []string
	for _, column := range columns {
		if _, ok := known[column]; !ok {
			missing = append(missing, column)
		}
	}
	return missing
}
