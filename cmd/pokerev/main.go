package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/muesli/termenv"

	"github.com/lox/pokerev/internal/config"
	"github.com/lox/pokerev/internal/logging"
)

// version is set by ldflags during build
var version = "dev"

// Globals are the flags shared by every subcommand.
type Globals struct {
	Config   string `type:"path" default:"pokerev.hcl" env:"POKEREV_CONFIG" help:"HCL configuration file (defaults apply when missing)"`
	LogLevel string `env:"POKEREV_LOG_LEVEL" help:"Log level override: debug, info, warn, error"`
	NoColor  bool   `help:"Disable coloured output"`
}

type CLI struct {
	Globals

	Version kong.VersionFlag `short:"v" help:"Show version"`
	Eval    EvalCmd          `cmd:"" help:"Rank one or more 5 to 7 card hands"`
	Bench   BenchCmd         `cmd:"" help:"Evaluate every hand of a deck and check the category histogram"`
	EV      EVCmd            `cmd:"" name:"ev" help:"Expected value of Ultimate Texas Hold'em lines for a hand"`
	Chart   ChartCmd         `cmd:"" help:"Best line and EV for all 169 starting hands"`
}

func main() {
	// A missing .env is fine; anything else is worth knowing about.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn("Failed to load .env", "error", err)
	}

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pokerev"),
		kong.Description("Seven-card poker hand evaluator and Ultimate Texas Hold'em EV calculator"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
		kong.Bind(&cli.Globals),
	)
	cli.Globals.configureColor()
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

// configureColor drops styling when asked to, or when NO_COLOR is set.
func (g *Globals) configureColor() {
	if g.NoColor || termenv.EnvNoColor() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// load reads the configuration file and builds the logger, with the log
// level flag taking precedence over the file.
func (g *Globals) load() (*config.Config, *log.Logger, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, nil, err
	}
	level := cfg.LogLevel
	if g.LogLevel != "" {
		level = g.LogLevel
	}
	logger, err := logging.New(os.Stderr, level)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("Loaded configuration", "path", g.Config)
	return cfg, logger, nil
}
