package models

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Decimal is a money column. PostgreSQL stores it as numeric with the
// field's precision and scale; SQLite stores the decimal text, since its
// NUMERIC affinity converts long values to a float.
type Decimal struct {
	decimal.Decimal
}

// NewDecimal wraps a domain amount for persistence
func NewDecimal(d decimal.Decimal) Decimal {
	return Decimal{Decimal: d}
}

// GormDBDataType implements migrator.GormDataTypeInterface
func (Decimal) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	if db.Dialector.Name() == "sqlite" {
		return "text"
	}
	return fmt.Sprintf("numeric(%d,%d)", field.Precision, field.Scale)
}
