// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

// checkMethodRouter builds a bare router mirroring the notes API surface,
// without Handler.Init so no service or logger setup is needed.
func checkMethodRouter() *chi.Mux {
	router := chi.NewRouter()

	router.Post("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Get("/api/notes", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`[]`))
	})
	router.Post("/api/notes", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	router.Post("/api/summarize", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

func TestCheckHTTPMethod(t *testing.T) {
	router := checkMethodRouter()

	tests := []struct {
		name   string
		method string
		path   string
		want   int
	}{
		{"registered method passes through", http.MethodGet, "/api/notes", http.StatusOK},
		{"second registered method passes through", http.MethodPost, "/api/notes", http.StatusCreated},
		{"unregistered method hidden as 404", http.MethodDelete, "/api/notes", http.StatusNotFound},
		{"PUT on collection hidden as 404", http.MethodPut, "/api/notes", http.StatusNotFound},
		{"GET on login route hidden as 404", http.MethodGet, "/api/auth/login", http.StatusNotFound},
		{"DELETE on summarize hidden as 404", http.MethodDelete, "/api/summarize", http.StatusNotFound},
		{"unknown path stays 404", http.MethodGet, "/api/ghost", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestCheckHTTPMethod_NoBodyLeakOnHiddenRoute(t *testing.T) {
	router := checkMethodRouter()

	req := httptest.NewRequest(http.MethodDelete, "/api/notes", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.String(), "hidden route must not reveal anything about itself")
}
