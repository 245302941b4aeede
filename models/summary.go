// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// SummarizeRequest is the body of POST /api/summarize.
type SummarizeRequest struct {
	// Text is the note content to be summarized. Required, non-empty.
	Text string `json:"text"`
}

// SummarizeResponse is the result of a summarization call. Exactly one of
// Summary and Error is set.
type SummarizeResponse struct {
	Summary string `json:"summary,omitempty"`
	Error   string `json:"error,omitempty"`
}
