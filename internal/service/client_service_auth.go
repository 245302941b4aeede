// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-note-keeper/internal/adapter"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/models"
)

type clientAuthService struct {
	store  adapter.NoteStore
	logger *logger.Logger
}

// NewClientAuthService constructs the [ClientAuthService] working through
// the note store transport.
func NewClientAuthService(store adapter.NoteStore, logger *logger.Logger) ClientAuthService {
	return &clientAuthService{store: store, logger: logger}
}

func (a *clientAuthService) Register(ctx context.Context, user models.User) (models.User, error) {
	registered, err := a.store.Register(ctx, user)
	if err != nil {
		return models.User{}, fmt.Errorf("register user: %w", mapStoreError(err))
	}

	a.logger.Info().Int64("user_id", registered.UserID).Msg("user registered")
	return registered, nil
}

func (a *clientAuthService) Login(ctx context.Context, user models.User) (int64, error) {
	token, err := a.store.Login(ctx, user)
	if err != nil {
		return 0, fmt.Errorf("login user: %w", mapStoreError(err))
	}

	a.logger.Info().Int64("user_id", token.UserID).Msg("user logged in")
	return token.UserID, nil
}
