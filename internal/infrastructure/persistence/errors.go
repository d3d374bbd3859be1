package persistence

import (
	"errors"

	"github.com/marketrent/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// notFound converts gorm.ErrRecordNotFound into a domain not-found error
func notFound(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.NewNotFoundError(entity)
	}
	return err
}

// deleteResult reports a not-found error when a delete touched no rows
func deleteResult(result *gorm.DB, entity string) error {
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError(entity)
	}
	return nil
}

// likePattern escapes LIKE wildcards in user input and wraps it in %...%
func likePattern(search string) string {
	r := make([]rune, 0, len(search)+2)
	r = append(r, '%')
	for _, c := range search {
		if c == '%' || c == '_' || c == '\\' {
			r = append(r, '\\')
		}
		r = append(r, c)
	}
	return string(append(r, '%'))
}
