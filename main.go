package main

import (
	"os"

	"headat/app"

	"github.com/rs/zerolog/log"
)

func main() {
	cmd := app.AllCommands()
	if err := cmd.Dispatch(os.Args[1:]); err != nil {
		log.Error().Err(err).Msg("headat failed")
		os.Exit(1)
	}
}
