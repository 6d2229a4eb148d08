package gormrepo

import (
	"errors"
	"fmt"
	"strings"

	"lamf-backoffice/internal/domain/apperr"

	"gorm.io/gorm"
)

// translate maps gorm/driver errors onto the domain error kinds. It relies on
// gorm.Config.TranslateError so constraint violations arrive as gorm sentinels.
func translate(entity, id string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFound(entity, id)
	case errors.Is(err, gorm.ErrForeignKeyViolated), hasMessage(err, "foreign key constraint"):
		return fmt.Errorf("%s %s violates a reference: %w", entity, id, apperr.ErrInvalidState)
	case errors.Is(err, gorm.ErrDuplicatedKey), hasMessage(err, "unique constraint", "duplicate"):
		return fmt.Errorf("%s %s already exists: %w", entity, id, apperr.ErrInvalidState)
	default:
		return apperr.Persistence(entity+" "+id, err)
	}
}

// affected turns a zero-row write into NotFound.
func affected(entity, id string, res *gorm.DB) error {
	if res.Error != nil {
		return translate(entity, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound(entity, id)
	}
	return nil
}

// hasMessage catches driver errors the dialector does not translate.
func hasMessage(err error, fragments ...string) bool {
	msg := strings.ToLower(err.Error())
	for _, f := range fragments {
		if strings.Contains(msg, f) {
			return true
		}
	}
	return false
}
