package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Simulate SimulateCmd      `cmd:"" default:"withargs" help:"Run a batch of bot-vs-bot games and print statistics"`
	Deal     DealCmd          `cmd:"" help:"Shuffle and deal a game, then print every hand"`
	PlayOne  PlayOneCmd       `cmd:"play-one" help:"Play a single game with full logging and write its record"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("critterbluff"),
		kong.Description("Rules engine and bot simulator for a bluffing pass-the-card creature game"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
