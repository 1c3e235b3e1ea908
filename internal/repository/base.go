package repository

import (
	"errors"

	"dtwitter/internal/models"
)

// wrapTxError keeps AppErrors raised inside a transaction intact and folds
// everything else (including commit failures) into a ServerError, so the
// caller can assume no state changed.
func wrapTxError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return models.NewServerError(err)
}
