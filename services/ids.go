package services

import (
	"github.com/google/uuid"

	apperrors "wiredleaf-api/errors"
)

// checkID rejects ids that cannot exist so they read as not found instead
// of reaching Postgres as malformed uuids.
func checkID(id, what string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.NewNotFoundError(what + " not found")
	}
	return nil
}
