package sqlite

import (
	"strings"

	domainerrors "journal/internal/domain/errors"
	"journal/internal/errors"

	"gorm.io/gorm"
)

// Helper functions for SQLite error checking. TranslateError maps the driver's
// extended result codes to gorm sentinels; the message checks catch errors
// raised where the translator is not applied, such as raw Exec calls.
func isUniqueConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isForeignKeyConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}

	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// translateDeleteError maps a failed delete of a referenced catalog row.
func translateDeleteError(err error, details string) error {
	if isForeignKeyConstraintViolation(err) {
		return domainerrors.ErrReferenceInUse.WithDetails(details)
	}

	return domainerrors.NewDatabaseExecuteError(err, details)
}
