// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

// errNoServersAreCreated is returned by NewServer when the config names no
// listen address for the notes API.
var errNoServersAreCreated = errors.New("no servers are created")
