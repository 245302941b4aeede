// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"

	"github.com/MKhiriev/go-note-keeper/internal/adapter"
)

// mapStoreError translates the adapter's transport error into the client
// service failure taxonomy. Unknown errors pass through unchanged.
func mapStoreError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, adapter.ErrUnauthorized):
		return errors.Join(ErrUnauthenticated, err)
	case errors.Is(err, adapter.ErrNotFound):
		return errors.Join(ErrNoteNotFound, err)
	case errors.Is(err, adapter.ErrBadRequest):
		return errors.Join(ErrRejected, err)
	case errors.Is(err, adapter.ErrUnavailable):
		return errors.Join(ErrUnavailable, err)
	}

	return err
}
