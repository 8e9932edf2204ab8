// Package service holds the application's business workflows: CRUD
// orchestration, the billing fan-out and the ledger summaries exposed to
// handlers. Services validate request payloads at the write boundary and
// translate store errors into typed API errors.
package service

import (
	"errors"

	"github.com/abuzarban/school-admin/internal/store"
	appErrors "github.com/abuzarban/school-admin/pkg/errors"
)

// storeError maps a repository failure to a typed error: missing
// documents become not-found, duplicate keys become conflicts, anything
// else is internal.
func storeError(err error, notFoundMsg, internalMsg string) error {
	switch {
	case errors.Is(err, store.ErrNoDocument):
		return appErrors.Clone(appErrors.ErrNotFound, notFoundMsg)
	case errors.Is(err, store.ErrDuplicateKey):
		return appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, internalMsg)
	default:
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, internalMsg)
	}
}

func validationError(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
}

func internalError(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}
