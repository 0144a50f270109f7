// Command grapher plots, plays and shares single variable formulas.
//
// Usage:
//
//	grapher [-config path] [-v] command [flags] args...
//
// Commands:
//
//	plot [-n N] [-min A] [-max B] formula...   print sampled points
//	play [-for D] [-i] formula...              play formulas as tones
//	render -o file.wav [-for D] formula        write a tone to a WAV file
//	pitch [-n N] formula                       print the dominant frequency
//	link formula...                            print the share fragment
//	open fragment                              restore a share fragment
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/p6nj/bpptng-grapher/internal/config"
)

type app struct {
	cfg    config.Config
	log    *slog.Logger
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

var usages = map[string]string{
	"plot":   "[-n N] [-min A] [-max B] formula...",
	"play":   "[-for D] [-i] formula...",
	"render": "-o file.wav [-for D] formula",
	"pitch":  "[-n N] formula",
	"link":   "formula...",
	"open":   "fragment",
}

var commands = map[string]func(a *app, args []string) error{
	"plot":   (*app).plot,
	"play":   (*app).play,
	"render": (*app).render,
	"pitch":  (*app).pitch,
	"link":   (*app).link,
	"open":   (*app).open,
}

var errUsage = errors.New("usage")

func main() {
	err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	if errors.Is(err, errUsage) || errors.Is(err, flag.ErrHelp) {
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "grapher: %s\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("grapher", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", config.DefaultPath, "settings file")
	verbose := fs.Bool("v", false, "debug logging")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: grapher [-config path] [-v] command [flags] args...")
		for _, name := range []string{"plot", "play", "render", "pitch", "link", "open"} {
			fmt.Fprintf(stderr, "  %s %s\n", name, usages[name])
		}
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errUsage
	}
	cmd, ok := commands[fs.Arg(0)]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n", fs.Arg(0))
		fs.Usage()
		return errUsage
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	log.Debug("settings loaded", "path", *configPath, "resolution", cfg.Resolution,
		"domain", cfg.PlotDomain(), "sample_rate", cfg.SampleRate)

	a := &app{cfg: cfg, log: log, stdin: stdin, stdout: stdout, stderr: stderr}
	return cmd(a, fs.Args()[1:])
}

// flags returns the flag set of a command.
func (a *app) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	fs.Usage = func() {
		fmt.Fprintf(a.stderr, "usage: grapher %s %s\n", name, usages[name])
		fs.PrintDefaults()
	}
	return fs
}
