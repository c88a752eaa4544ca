package main

import (
	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"fermenta.to/Fermenta/cmd"
)

func main() {
	// Missing .env just means configuration comes from real env vars.
	_ = godotenv.Load()

	ctx := kong.Parse(&cmd.CLI, kong.Name("Fermenta"), kong.Description("Fermenta.to is a directory of Italian craft beer pubs and breweries."))
	err := ctx.Run(&cmd.Context{Debug: cmd.CLI.Debug})
	ctx.FatalIfErrorf(err)
}
