// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

// Client is the lifecycle contract of the note keeper TUI. Run owns the
// whole interactive session, from the login screen to the note loop, and
// returns once the user quits.
type Client interface {
	Run() error
}
