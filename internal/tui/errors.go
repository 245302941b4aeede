// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import "strings"

// networkErrorMarkers are substrings of transport errors that mean the note
// server itself is unreachable rather than the request being wrong.
var networkErrorMarkers = []string{
	"connection refused",
	"dial tcp",
	"no such host",
	"network is unreachable",
	"i/o timeout",
	"context deadline exceeded",
}

// humanizeServerUnavailableError collapses transport-level failures into one
// user-facing message; everything else is shown as-is.
func humanizeServerUnavailableError(err error) string {
	if err == nil {
		return ""
	}

	s := strings.ToLower(err.Error())
	for _, marker := range networkErrorMarkers {
		if strings.Contains(s, marker) {
			return "Отсутствует сеть или Сервер недоступен"
		}
	}

	return err.Error()
}
