package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/dedene/postfmt-cli/internal/api"
	"github.com/dedene/postfmt-cli/internal/config"
	"github.com/dedene/postfmt-cli/internal/outfmt"
	"github.com/dedene/postfmt-cli/internal/ui"
)

// RootFlags are global flags available to all commands.
type RootFlags struct {
	Color   string `help:"Color output: auto|always|never" default:"auto" enum:"auto,always,never"`
	JSON    bool   `help:"JSON output" default:"false"`
	Verbose bool   `help:"Verbose logging" default:"false"`
	NoInput bool   `help:"Never prompt; fail instead" name:"no-input" default:"false"`
}

// CLI is the top-level Kong command struct.
type CLI struct {
	RootFlags `embed:""`

	Version    kong.VersionFlag `help:"Print version and exit"`
	VersionCmd VersionCmd       `cmd:"" name:"version" help:"Print version info"`
	Format     FormatCmd        `cmd:"" name:"format" aliases:"fmt,f" default:"withargs" help:"Style text for social posts"`
	AI         AICmd            `cmd:"" name:"ai" help:"Structure a draft into styled blocks via the formatting service"`
	Shorten    ShortenCmd       `cmd:"" name:"shorten" help:"Shorten text to fit a platform limit via the formatting service"`
	Styles     StylesCmd        `cmd:"" name:"styles" aliases:"ls" help:"List or preview lettering styles"`
	Count      CountCmd         `cmd:"" name:"count" help:"Count characters and check platform limits"`
	Config     ConfigCmd        `cmd:"" name:"config" help:"Manage configuration"`
}

// Execute parses CLI args, sets up context, and runs the matched command.
func Execute(args []string) (err error) {
	cli := &CLI{}
	parser, err := kong.New(
		cli,
		kong.Name("postfmt"),
		kong.Description("Style social media posts with Unicode lettering"),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{"version": VersionString()},
		kong.Writers(os.Stdout, os.Stderr),
		kong.Exit(func(code int) { panic(exitPanic{code: code}) }),
	)
	if err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			if ep, ok := r.(exitPanic); ok {
				if ep.code == 0 {
					err = nil
					return
				}
				err = &ExitError{Code: ep.code, Err: errors.New("exited")}
				return
			}
			panic(r)
		}
	}()

	kctx, err := parser.Parse(args)
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		return &ExitError{Code: 2, Err: err}
	}

	// Verbose logging
	logLevel := slog.LevelWarn
	if cli.Verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))

	// Output mode
	mode := outfmt.Mode{JSON: cli.JSON}
	ctx := context.Background()
	ctx = outfmt.WithMode(ctx, mode)

	// UI printer -- force no color in JSON mode
	uiColor := cli.Color
	if outfmt.IsJSON(ctx) {
		uiColor = "never"
	}
	u, uiErr := ui.New(ui.Options{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Color:  uiColor,
	})
	if uiErr != nil {
		return uiErr
	}
	ctx = ui.WithUI(ctx, u)

	// Config
	cfgPath, _ := config.Path()
	cfg, cfgErr := config.Load(cfgPath)
	if cfgErr != nil {
		slog.Warn("loading config", "error", cfgErr)
		cfg = &config.Config{}
	}
	ctx = config.WithConfig(ctx, cfg)

	// API client
	client := api.NewClient(api.ClientOptions{
		BaseURL:   os.Getenv("POSTFMT_API_URL"),
		APIKey:    os.Getenv("POSTFMT_API_KEY"),
		Verbose:   cli.Verbose,
		UserAgent: "postfmt-cli/" + version,
	})
	ctx = api.WithClient(ctx, client)

	// Bind context + root flags to Kong
	kctx.BindTo(ctx, (*context.Context)(nil))
	kctx.Bind(&cli.RootFlags)

	return kctx.Run()
}
