// Package config assembles the note keeper configuration from environment
// variables, command-line flags and an optional JSON file.
//
// Sources are merged in that order, and only zero fields are filled by
// later sources, so an environment variable beats a flag and a flag beats
// the JSON file for the same setting.
//
// [GetStructuredConfig] builds the server configuration, including the
// storage DSN and the token settings; [GetClientConfig] builds the client
// side with the adapter server URL, the trash grace period and the
// collection refresh interval.
package config
