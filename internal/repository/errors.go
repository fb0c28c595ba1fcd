package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"turftrack/internal/model"
)

// translateErr maps store-level errors onto the domain error taxonomy so
// callers never see raw driver errors. Duplicate-key violations become
// validation errors (covers the race a uniqueness precheck would miss).
func translateErr(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.NotFoundErrorf("%s not found", what)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicateKey(err) {
		return model.ValidationErrorf("%s already exists", what)
	}
	return err
}

// isDuplicateKey catches unique violations from drivers that do not
// implement GORM's error translation.
func isDuplicateKey(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
