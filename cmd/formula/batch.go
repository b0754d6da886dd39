package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/formula"
)

// tolerance is the largest difference between a result and its expected value
// that still counts as a match.
const tolerance = 1e-9

// batch is a YAML file of formulas to evaluate.
type batch struct {
	// Seed, if set, makes random() deterministic for the whole batch.
	Seed  *uint64 `yaml:"seed"`
	Cases []batchCase `yaml:"cases"`
}

// batchCase is one formula in a batch. At most one of Want and Error may be
// set; if neither is, the case only has to evaluate without error.
type batchCase struct {
	Name    string    `yaml:"name"`
	Formula *string   `yaml:"formula"`
	Args    []float64 `yaml:"args"`
	Want    *float64  `yaml:"want"`
	Error   string    `yaml:"error"`

	kind formula.ErrorKind
}

func loadBatch(name string) (*batch, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decodeBatch(f)
}

func decodeBatch(r io.Reader) (*batch, error) {
	var b batch
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&b); err != nil {
		if errors.Is(err, io.EOF) {
			return &b, nil
		}
		return nil, fmt.Errorf("decoding batch: %w", err)
	}
	for i := range b.Cases {
		c := &b.Cases[i]
		if c.Name == "" {
			c.Name = fmt.Sprintf("case %d", i+1)
		}
		if c.Error == "" {
			continue
		}
		if c.Want != nil {
			return nil, fmt.Errorf("%s: want and error are mutually exclusive", c.Name)
		}
		k, ok := formula.ParseErrorKind(c.Error)
		if !ok {
			return nil, fmt.Errorf("%s: unknown error kind %q", c.Name, c.Error)
		}
		c.kind = k
	}
	return &b, nil
}

// run evaluates every case, writing one line per case to w, and returns the
// number of cases that failed their expectations.
func (b *batch) run(e *formula.Evaluator, w io.Writer, opts options, log *slog.Logger) int {
	failed := 0
	for _, c := range b.Cases {
		msg, ok := c.check(e, opts)
		status := "ok  "
		if !ok {
			status = "FAIL"
			failed++
		}
		fmt.Fprintf(w, "%s %s: %s\n", status, c.Name, msg)
		log.Debug("case evaluated", slog.String("name", c.Name), slog.Bool("ok", ok))
	}
	return failed
}

// check evaluates a case and describes the outcome.
func (c *batchCase) check(e *formula.Evaluator, opts options) (string, bool) {
	msg, ok := c.outcome(e, opts)
	if opts.echo && c.Formula != nil {
		if tree, err := e.Tree(*c.Formula, c.Args...); err == nil {
			msg = tree + " : " + msg
		}
	}
	return msg, ok
}

func (c *batchCase) outcome(e *formula.Evaluator, opts options) (string, bool) {
	var r float64
	var err error
	if c.Formula == nil {
		r, err = e.Eval(nil, c.Args...)
	} else {
		r, err = e.Calc(*c.Formula, c.Args...)
	}
	got := fmt.Sprintf(opts.verb, r)
	switch {
	case c.kind != 0:
		if err == nil {
			return fmt.Sprintf("want %v, got %s", c.kind, got), false
		}
		if !errors.Is(err, c.kind) {
			return fmt.Sprintf("want %v, got %v", c.kind, err), false
		}
		return err.Error(), true
	case err != nil:
		return err.Error(), false
	case c.Want != nil && math.Abs(r-*c.Want) > tolerance:
		return fmt.Sprintf("want "+opts.verb+", got %s", *c.Want, got), false
	default:
		return got, true
	}
}
