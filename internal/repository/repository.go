// Package repository provides typed persistence for the catalog resources.
// Handlers depend on the interfaces here; the GORM implementations are the only
// code that touches the database handle.
package repository

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned when the requested record does not exist.
var ErrNotFound = errors.New("record not found")

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func orderByID(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}
