// Command autoeq fits parametric equalizer filters that move a measured
// frequency response onto a target, and inspects existing profiles.
//
// Usage:
//
//	autoeq run [flags] <source.csv> [target.csv]
//	autoeq batch [flags] --target <target.csv> <source.csv> ...
//	autoeq gains [flags] <profile.txt>
//
// Examples:
//
//	autoeq run headphone.csv harman.csv
//	autoeq run -n 10 --format graphic headphone.csv harman.csv
//	autoeq run --wav ir.wav --sample-rate 44100 headphone.csv
//	autoeq batch --target harman.csv -o out/ a.csv b.csv c.csv
//	autoeq gains --curve headphone.csv profile.txt
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	log "github.com/sirupsen/logrus"
)

var version = "0.1.0"

// Globals are the flags shared by all commands.
type Globals struct {
	Verbose bool   `short:"v" help:"Log optimizer progress to stderr"`
	Config  string `short:"c" type:"path" help:"Path to TOML tuning file (optional)"`
}

// CLI defines the command-line interface.
type CLI struct {
	Globals

	Version kong.VersionFlag `help:"Show version information"`

	Run   RunCmd   `cmd:"" help:"Fit a filter set to one measurement"`
	Batch BatchCmd `cmd:"" help:"Fit filter sets to several measurements in parallel"`
	Gains GainsCmd `cmd:"" help:"Print the response of a ParametricEQ profile"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cli := &CLI{}
	kctx := kong.Parse(cli,
		kong.Name("autoeq"),
		kong.Description("Parametric equalizer fitting"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
		kong.BindTo(ctx, (*context.Context)(nil)),
	)

	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	if cli.Verbose {
		log.SetLevel(log.DebugLevel)
	}

	err := kctx.Run(&cli.Globals)
	kctx.FatalIfErrorf(err)
}
