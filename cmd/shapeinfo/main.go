// Command shapeinfo tabulates shape tables used as envelopes and LFOs.
//
// Usage:
//
//	shapeinfo [flags] [shape-name ...]
//
// Without arguments it prints info for every shape kind.
//
// Examples:
//
//	shapeinfo hann
//	shapeinfo -low 0.1 -high 1 sinc
//	shapeinfo -plot 16 pluckout
//	shapeinfo -list
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/ossrs/go-oryx-lib/errors"
	"github.com/ossrs/go-oryx-lib/logger"

	"github.com/cwbudde/algo-grain/dsp/curve"
	"github.com/cwbudde/algo-grain/dsp/shape"
)

type options struct {
	size      int
	low, high float64
	seed      int64
	plot      int
	list      bool
}

func main() {
	ctx := logger.WithContext(context.Background())

	var opts options
	flag.IntVar(&opts.size, "size", shape.DefaultResolution, "table resolution")
	flag.Float64Var(&opts.low, "low", 0, "lower bound of the output range")
	flag.Float64Var(&opts.high, "high", 1, "upper bound of the output range")
	flag.Int64Var(&opts.seed, "seed", 1, "seed for random shapes")
	flag.IntVar(&opts.plot, "plot", 0, "print an ASCII profile with this many rows (0 disables)")
	flag.BoolVar(&opts.list, "list", false, "list available shape names")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: shapeinfo [flags] [shape-name ...]\n\n")
		fmt.Fprintf(os.Stderr, "Prints statistics of shape tables.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(os.Stdout, opts, flag.Args()); err != nil {
		logger.Ef(ctx, "shapeinfo err %+v", err)
		os.Exit(1)
	}
}

func run(w io.Writer, opts options, names []string) error {
	if opts.list {
		for _, k := range shape.Kinds() {
			if _, err := fmt.Fprintln(w, k); err != nil {
				return errors.Wrapf(err, "write list")
			}
		}
		return nil
	}

	kinds, err := resolveKinds(names)
	if err != nil {
		return errors.Wrapf(err, "resolve shapes")
	}

	tables := make([]*curve.Curve, len(kinds))
	for i, k := range kinds {
		c, err := shape.New(k,
			shape.WithRange(curve.Const(opts.low), curve.Const(opts.high)),
			shape.WithResolution(opts.size),
			shape.WithSeed(opts.seed),
		)
		if err != nil {
			return errors.Wrapf(err, "generate %v", k)
		}
		tables[i] = c
	}

	if err := printStats(w, kinds, tables); err != nil {
		return errors.Wrapf(err, "print stats")
	}
	if opts.plot > 0 {
		for i, c := range tables {
			if err := printPlot(w, kinds[i], c, opts.plot); err != nil {
				return errors.Wrapf(err, "plot %v", kinds[i])
			}
		}
	}
	return nil
}

func resolveKinds(names []string) ([]shape.Kind, error) {
	if len(names) == 0 {
		var kinds []shape.Kind
		for _, k := range shape.Kinds() {
			if k != shape.Table {
				kinds = append(kinds, k)
			}
		}
		return kinds, nil
	}

	kinds := make([]shape.Kind, 0, len(names))
	for _, name := range names {
		k, err := shape.ParseKind(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		if k == shape.Table {
			return nil, errors.Errorf("shape %q needs explicit points", name)
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

func printStats(w io.Writer, kinds []shape.Kind, tables []*curve.Curve) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Shape\tSize\tMin\tMax\tMean\tFirst\tMid\tLast\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tw, "-----\t----\t---\t---\t----\t-----\t---\t----\n"); err != nil {
		return err
	}
	for i, c := range tables {
		if _, err := fmt.Fprintf(tw, "%s\t%d\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\t%.4f\n",
			kinds[i], c.Len(), c.Min(), c.Max(), mean(c.Values()),
			c.Interp(0), c.Interp(0.5), c.Interp(1),
		); err != nil {
			return err
		}
	}
	return tw.Flush()
}

const plotWidth = 48

func printPlot(w io.Writer, k shape.Kind, c *curve.Curve, rows int) error {
	if _, err := fmt.Fprintf(w, "\n%s\n", k); err != nil {
		return err
	}
	lo, hi := c.Min(), c.Max()
	for r := range rows {
		phase := 0.0
		if rows > 1 {
			phase = float64(r) / float64(rows-1)
		}
		v := c.Interp(phase)
		bar := 0
		if hi > lo {
			bar = int((v - lo) / (hi - lo) * plotWidth)
		}
		if _, err := fmt.Fprintf(w, "%5.3f %9.4f |%s\n", phase, v, strings.Repeat("#", bar)); err != nil {
			return err
		}
	}
	return nil
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
