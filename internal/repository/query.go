package repository

import (
	"errors"
	"fmt"

	"medcare-portal/internal/domain/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrUnknownOrderColumn is returned when a filter asks to sort by a column
// the repository does not expose.
var ErrUnknownOrderColumn = errors.New("unknown order column")

// applyOrder adds ORDER BY when the column is whitelisted. The zero Order
// leaves the query unsorted.
func applyOrder(db *gorm.DB, order entity.Order, allowed ...string) (*gorm.DB, error) {
	if order.Column == "" {
		return db, nil
	}
	for _, column := range allowed {
		if column == order.Column {
			return db.Order(clause.OrderByColumn{
				Column: clause.Column{Table: clause.CurrentTable, Name: column},
				Desc:   order.Desc,
			}), nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownOrderColumn, order.Column)
}

// profileSummary narrows an embedded profile to what the dashboards render.
func profileSummary(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "email", "phone", "role")
}
