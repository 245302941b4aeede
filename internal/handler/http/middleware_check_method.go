// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// CheckHTTPMethod replaces chi's default MethodNotAllowed handler. Instead
// of answering 405 when a known path is hit with an unregistered method, it
// answers 404, so callers cannot discover the notes API surface by
// method-scanning paths.
//
// Registered as:
//
//	router.MethodNotAllowed(CheckHTTPMethod(router))
//
// Matching uses the route's registered pattern against the raw request
// path; parameterised segments are not expanded here.
func CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		if route, ok := matchRoute(router, r.URL.Path); ok {
			if _, handled := route.Handlers[r.Method]; handled {
				// chi invoked us spuriously, let the real handler run
				router.ServeHTTP(w, r)
				return
			}
		}

		w.WriteHeader(http.StatusNotFound)
	}
}

func matchRoute(router *chi.Mux, path string) (chi.Route, bool) {
	for _, route := range router.Routes() {
		if route.Pattern == path {
			return route, true
		}
	}
	return chi.Route{}, false
}
