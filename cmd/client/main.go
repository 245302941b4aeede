package main

import (
	"fmt"

	"github.com/MKhiriev/go-note-keeper/internal/client"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
)

// Заполняются через ldflags при сборке релиза.
var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	fmt.Printf("Build version: %s\nBuild date: %s\nBuild commit: %s\n",
		orNA(buildVersion), orNA(buildDate), orNA(buildCommit))

	// logs go to a file next to the binary, the terminal belongs to the TUI
	log := logger.NewClientLogger("go-note-client")

	app, err := client.NewApp()
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}

func orNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}
