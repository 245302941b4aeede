// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from environment variables via caarlos0/env, using the
// `env` and `envPrefix` tags declared on [StructuredConfig]. A value that
// cannot be converted (for example a bad duration in TRASH_GRACE_PERIOD)
// surfaces as a wrapped error.
func parseEnv(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}
