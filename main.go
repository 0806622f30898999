// gridview paints decoded terrain attribute grids over their base
// images so the data can be inspected by eye.
//
//	gridview [flags] <image> <container>
//	gridview --folders [flags] <image-dir> <container-dir>
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"gridview/grid"
)

type options struct {
	folders    bool
	blocks     bool
	blockScale int
	threads    int
	variant    grid.Variant
	out        string
	debug      bool
	logPath    string
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func parseOptions(args []string) (*options, []string, error) {
	opts := &options{}
	var variant string

	fs := pflag.NewFlagSet("gridview", pflag.ContinueOnError)
	fs.BoolVar(&opts.folders, "folders", false, "treat the arguments as an image directory and a container directory")
	fs.BoolVar(&opts.blocks, "blocks", false, "also write every decoded block as its own image")
	fs.IntVar(&opts.blockScale, "block-scale", 1, "upscale factor for block images")
	fs.IntVar(&opts.threads, "threads", 1, "number of workers in folder mode")
	fs.StringVar(&variant, "variant", grid.Segment.String(), "index encoding: segment or header")
	fs.StringVar(&opts.out, "out", "new", "output directory")
	fs.BoolVar(&opts.debug, "debug", false, "verbose/debug logging")
	fs.StringVar(&opts.logPath, "log-file", "", "also write log output to this file")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: gridview [flags] <image> <container>\n%s", fs.FlagUsages())
	}
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	v, err := grid.ParseVariant(variant)
	if err != nil {
		return nil, nil, err
	}
	opts.variant = v
	if opts.threads < 1 {
		return nil, nil, fmt.Errorf("--threads must be at least 1")
	}
	if opts.blockScale < 1 {
		return nil, nil, fmt.Errorf("--block-scale must be at least 1")
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return nil, nil, fmt.Errorf("expected 2 arguments, got %d", fs.NArg())
	}
	return opts, fs.Args(), nil
}

func run(args []string) error {
	opts, paths, err := parseOptions(args)
	if errors.Is(err, pflag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := setupLogging(opts.debug, opts.logPath); err != nil {
		return err
	}
	defer closeLogging()

	if !opts.folders {
		return runJob(job{image: paths[0], container: paths[1]}, opts)
	}
	jobs, err := findJobs(paths[0], paths[1])
	if err != nil {
		return err
	}
	return runBatch(jobs, opts)
}
