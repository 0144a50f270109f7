package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/p6nj/bpptng-grapher/audio"
	"github.com/p6nj/bpptng-grapher/formula"
	"github.com/p6nj/bpptng-grapher/meval"
	"github.com/p6nj/bpptng-grapher/plot"
	"github.com/p6nj/bpptng-grapher/tone"
)

// collect adds every formula to col and reports the rejected ones. It
// returns the number of rejected formulas.
func (a *app) collect(col *formula.Collection, texts []string) int {
	bad := 0
	for _, t := range texts {
		i, err := col.Add(t)
		if err != nil {
			bad++
			if i < 0 {
				fmt.Fprintf(a.stderr, "%s: %s\n", t, err)
			} else {
				fmt.Fprintf(a.stderr, "%d: %s: %s\n", i, t, err)
			}
		}
	}
	return bad
}

func (a *app) plot(args []string) error {
	fs := a.flags("plot")
	n := fs.Int("n", a.cfg.Resolution, "points per curve")
	lo := fs.Float64("min", a.cfg.Domain.Min, "domain lower bound")
	hi := fs.Float64("max", a.cfg.Domain.Max, "domain upper bound")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !(*lo < *hi) {
		return fmt.Errorf("invalid domain [%g, %g]", *lo, *hi)
	}
	col := formula.NewCollection(formula.WithLogger(a.log), formula.WithResolution(*n))
	bad := a.collect(col, fs.Args())

	d := plot.Domain{Min: *lo, Max: *hi}
	first := true
	for _, e := range col.Entries() {
		if e.State() != formula.Valid {
			continue
		}
		if !first {
			fmt.Fprintln(a.stdout)
		}
		first = false
		fmt.Fprintf(a.stdout, "# %s\n", e.Name())
		for _, p := range e.Points(d, col.Resolution()) {
			fmt.Fprintf(a.stdout, "%g\t%g\n", p.X, p.Y)
		}
	}
	if bad > 0 {
		return fmt.Errorf("%d formula(s) rejected", bad)
	}
	return nil
}

func (a *app) link(args []string) error {
	col := formula.NewCollection(formula.WithLogger(a.log))
	a.collect(col, args)
	fmt.Fprintln(a.stdout, col.Fragment())
	return nil
}

func (a *app) open(args []string) error {
	fs := a.flags("open")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errUsage
	}
	col := formula.NewCollection(formula.WithLogger(a.log))
	err := col.Restore(fs.Arg(0))
	printEntries(a.stdout, col)
	return err
}

// source compiles text into a tone.
func source(text string) (*tone.Source, error) {
	if text == "" {
		return nil, errors.New("empty formula")
	}
	e, err := meval.Compile32(text)
	if err != nil {
		return nil, err
	}
	if len(e.Variables()) > 1 {
		return nil, formula.ErrTooManyVariables
	}
	return tone.NewSource(e), nil
}

func (a *app) render(args []string) error {
	fs := a.flags("render")
	out := fs.String("o", "", "output WAV file")
	d := fs.Duration("for", 2*time.Second, "rendered duration")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *out == "" || fs.NArg() != 1 {
		fs.Usage()
		return errUsage
	}
	src, err := source(fs.Arg(0))
	if err != nil {
		return err
	}
	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	if err := tone.WriteWAV(f, src, *d); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	a.log.Info("rendered", "file", *out, "duration", *d)
	return nil
}

func (a *app) pitch(args []string) error {
	fs := a.flags("pitch")
	n := fs.Int("n", tone.SampleRate, "analysed samples")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return errUsage
	}
	if *n < 2 {
		return fmt.Errorf("need at least 2 samples, got %d", *n)
	}
	src, err := source(fs.Arg(0))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "%g Hz\n", tone.DominantFrequency(src, *n))
	return nil
}

func (a *app) play(args []string) error {
	fs := a.flags("play")
	d := fs.Duration("for", 0, "stop after this duration, 0 plays until interrupted")
	interactive := fs.Bool("i", false, "read commands from the standard input")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !*interactive && fs.NArg() == 0 {
		fs.Usage()
		return errUsage
	}

	opts := []formula.Option{formula.WithLogger(a.log), formula.WithResolution(a.cfg.Resolution)}
	dev, err := audio.Open(a.cfg.SampleRate)
	if err != nil {
		a.log.Warn("playing without audio", "backend", audio.Backend, "err", err)
	} else {
		a.log.Debug("audio opened", "backend", audio.Backend, "sample_rate", dev.SampleRate())
		defer dev.Close()
		opts = append(opts, formula.WithDevice(dev))
	}
	col := formula.NewCollection(opts...)
	defer func() {
		if err := col.Close(); err != nil {
			a.log.Warn("closing", "err", err)
		}
	}()
	a.collect(col, fs.Args())
	col.SetListening(a.cfg.Listen)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if *d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *d)
		defer cancel()
	}

	if *interactive {
		sh := &shell{col: col, out: a.stdout}
		return sh.run(ctx, a.stdin)
	}
	<-ctx.Done()
	return nil
}
