package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/shlex"

	"github.com/p6nj/bpptng-grapher/formula"
)

const shellHelp = `commands:
  (empty line)     toggle listening
  add FORMULA      append a formula
  edit N FORMULA   replace formula N
  rm N             remove formula N
  ls               list formulas
  res N            set the plot resolution
  link             print the share fragment
  open FRAGMENT    restore a share fragment
  q                quit
`

var errQuit = errors.New("quit")

// shell edits a Collection from text commands, one per line.
type shell struct {
	col *formula.Collection
	out io.Writer
}

func (sh *shell) run(ctx context.Context, in io.Reader) error {
	lines := make(chan string)
	done := make(chan struct{})
	defer close(done)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-done:
				return
			}
		}
	}()

	printEntries(sh.out, sh.col)
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			err := sh.exec(line)
			if errors.Is(err, errQuit) {
				return nil
			}
			if err != nil {
				fmt.Fprintf(sh.out, "error: %s\n", err)
			}
		}
	}
}

func (sh *shell) exec(line string) error {
	line = strings.TrimSpace(line)
	// '#' starts a comment for shlex
	if rest, ok := strings.CutPrefix(line, "open "); ok {
		err := sh.col.Restore(strings.TrimSpace(rest))
		printEntries(sh.out, sh.col)
		return err
	}

	words, err := shlex.Split(line)
	if err != nil {
		return err
	}
	if len(words) == 0 {
		sh.col.SetListening(!sh.col.Listening())
		fmt.Fprintf(sh.out, "listening: %t\n", sh.col.Listening())
		return nil
	}

	cmd, args := words[0], words[1:]
	switch cmd {
	case "add":
		if _, err := sh.col.Add(strings.Join(args, " ")); errors.Is(err, formula.ErrTooManyEntries) {
			return err
		}
	case "edit":
		i, err := index(args)
		if err != nil {
			return err
		}
		if sh.col.Entry(i) == nil {
			return fmt.Errorf("no formula %d", i)
		}
		sh.col.Edit(i, strings.Join(args[1:], " "))
	case "rm":
		i, err := index(args)
		if err != nil {
			return err
		}
		if err := sh.col.Remove(i); err != nil {
			return err
		}
	case "ls":
	case "res":
		n, err := index(args)
		if err != nil {
			return err
		}
		fmt.Fprintf(sh.out, "resolution: %d\n", sh.col.SetResolution(n))
		return nil
	case "link":
		fmt.Fprintln(sh.out, sh.col.Fragment())
		return nil
	case "q", "quit":
		return errQuit
	case "help":
		fmt.Fprint(sh.out, shellHelp)
		return nil
	default:
		return fmt.Errorf("unknown command %q, try help", cmd)
	}
	printEntries(sh.out, sh.col)
	return nil
}

func index(args []string) (int, error) {
	if len(args) == 0 {
		return 0, errors.New("missing number")
	}
	i, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", args[0])
	}
	return i, nil
}

func printEntries(w io.Writer, col *formula.Collection) {
	for i, e := range col.Entries() {
		if e.State() == formula.Invalid {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i, e.State(), e.Text(), e.Err())
			continue
		}
		fmt.Fprintf(w, "%d\t%s\t%s\n", i, e.State(), e.Text())
	}
}
