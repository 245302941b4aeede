// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-note-keeper/internal/adapter"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/utils"
)

type summaryService struct {
	store  adapter.NoteStore
	logger *logger.Logger

	mu     sync.Mutex
	byHash map[string]string // content hash → summary
}

// NewSummaryService constructs the client-side [SummaryService] backed by
// the server's summarization endpoint, with a per-process content-hash
// cache in front of it.
func NewSummaryService(store adapter.NoteStore, logger *logger.Logger) SummaryService {
	return &summaryService{store: store, logger: logger, byHash: make(map[string]string)}
}

func (s *summaryService) Summarize(ctx context.Context, text string) (string, error) {
	if text == "" {
		return "", nil
	}

	key := utils.ContentHash(text)

	s.mu.Lock()
	if cached, ok := s.byHash[key]; ok {
		s.mu.Unlock()
		return cached, nil
	}
	s.mu.Unlock()

	summary, err := s.store.Summarize(ctx, text)
	if err != nil {
		return "", fmt.Errorf("summarize content: %w", mapStoreError(err))
	}

	s.mu.Lock()
	s.byHash[key] = summary
	s.mu.Unlock()

	return summary, nil
}
