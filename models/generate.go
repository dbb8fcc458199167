package models

import (
	"gorm.io/gen"
	"gorm.io/gorm"
)

// GenerateQueries writes type-safe query helpers for every model into outPath.
func GenerateQueries(db *gorm.DB, outPath string) {
	g := gen.NewGenerator(gen.Config{
		OutPath:           outPath,
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface | gen.WithoutContext,
		FieldNullable:     true,
		FieldCoverable:    true,
		FieldWithIndexTag: true,
		FieldWithTypeTag:  true,
	})

	g.UseDB(db)
	g.ApplyBasic(All()...)
	g.Execute()
}
