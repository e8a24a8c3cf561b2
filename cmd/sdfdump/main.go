// Command sdfdump prints the contents of SDF containers.
//
// Usage:
//
//	sdfdump [flags] <file | directory | s3://bucket/prefix | minio://host/bucket/prefix>
//
// A file is printed record by record. A directory or bucket prefix is printed
// one container at a time, or as a single combined dataset with -combine.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/juanjosegarciaripoll/tensor/blobstore"
	"github.com/juanjosegarciaripoll/tensor/blobstore/minio"
	"github.com/juanjosegarciaripoll/tensor/blobstore/s3"
	"github.com/juanjosegarciaripoll/tensor/sdf"
)

type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ",") }

func (l *stringList) Set(v string) error {
	for _, name := range strings.Split(v, ",") {
		if name != "" {
			*l = append(*l, name)
		}
	}
	return nil
}

type config struct {
	ignore   stringList
	combine  bool
	sortBy   string
	lenient  bool
	workers  int
	rate     int
	asJSON   bool
	verbose  bool
	insecure bool
	region   string
	endpoint string
}

func main() {
	var cfg config
	flag.Var(&cfg.ignore, "ignore", "comma separated fields to skip (repeatable)")
	flag.BoolVar(&cfg.combine, "combine", false, "combine the containers of a directory or prefix")
	flag.StringVar(&cfg.sortBy, "sort", "", "combine in ascending order of this scalar field")
	flag.BoolVar(&cfg.lenient, "lenient", false, "drop fields whose shapes differ instead of failing")
	flag.IntVar(&cfg.workers, "workers", 1, "containers decoded in parallel")
	flag.IntVar(&cfg.rate, "rate", 0, "read limit in bytes per second for remote stores (0 for none)")
	flag.BoolVar(&cfg.asJSON, "json", false, "print a JSON summary")
	flag.BoolVar(&cfg.verbose, "v", false, "log decoding progress to stderr")
	flag.BoolVar(&cfg.insecure, "insecure", false, "use plain HTTP for minio:// sources")
	flag.StringVar(&cfg.region, "region", "", "AWS region for s3:// sources")
	flag.StringVar(&cfg.endpoint, "endpoint", "", "S3-compatible endpoint for s3:// sources")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: sdfdump [flags] <file|dir|s3://bucket/prefix|minio://host/bucket/prefix>\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Stdout, flag.Arg(0), cfg); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, out io.Writer, source string, cfg config) error {
	opts := []sdf.Option{
		sdf.WithIgnore(cfg.ignore...),
		sdf.WithConcurrency(cfg.workers),
	}
	if cfg.lenient {
		opts = append(opts, sdf.WithLenientCombine())
	}
	if cfg.verbose {
		opts = append(opts, sdf.WithLogger(newLogger(cfg)))
	}

	store, prefix, err := openSource(ctx, source, cfg)
	if err != nil {
		return err
	}
	if store == nil {
		info, err := os.Stat(source)
		if err != nil {
			return err
		}
		if !info.IsDir() {
			ds, err := sdf.Load(source, opts...)
			if err != nil {
				return err
			}
			return printDatasets(out, cfg.asJSON, ds)
		}
		store, prefix = blobstore.NewLocalStore(source), ""
	}

	if cfg.combine || cfg.sortBy != "" {
		var c *sdf.CombinedDataset
		if cfg.sortBy != "" {
			c, err = sdf.LoadSortedStore(ctx, store, prefix, cfg.sortBy, opts...)
		} else {
			c, err = sdf.LoadStore(ctx, store, prefix, opts...)
		}
		if err != nil {
			return err
		}
		return printCombined(out, cfg.asJSON, c)
	}

	datasets, err := sdf.ReadStore(ctx, store, prefix, opts...)
	if err != nil {
		return err
	}
	return printDatasets(out, cfg.asJSON, datasets...)
}

// newLogger logs to stderr in the same format as the output.
func newLogger(cfg config) *sdf.Logger {
	if cfg.asJSON {
		return sdf.NewJSONLogger(slog.LevelDebug)
	}
	return sdf.NewTextLogger(slog.LevelDebug)
}

// openSource returns the store for a remote source, or a nil store for a
// local path.
func openSource(ctx context.Context, source string, cfg config) (blobstore.Store, string, error) {
	scheme, rest, ok := strings.Cut(source, "://")
	if !ok {
		return nil, "", nil
	}

	var store blobstore.Store
	var prefix string
	switch scheme {
	case "s3":
		bucket, p, _ := strings.Cut(rest, "/")
		var s3opts []s3.Option
		if cfg.region != "" {
			s3opts = append(s3opts, s3.WithRegion(cfg.region))
		}
		if cfg.endpoint != "" {
			s3opts = append(s3opts, s3.WithEndpoint(cfg.endpoint))
		}
		s, err := s3.New(ctx, bucket, s3opts...)
		if err != nil {
			return nil, "", fmt.Errorf("connecting to s3 bucket %q: %w", bucket, err)
		}
		store, prefix = s, p
	case "minio":
		parts := strings.SplitN(rest, "/", 3)
		if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
			return nil, "", fmt.Errorf("invalid source %q: want minio://host/bucket/prefix", source)
		}
		s, err := minio.Dial(parts[0], parts[1], "", !cfg.insecure)
		if err != nil {
			return nil, "", fmt.Errorf("connecting to %s: %w", parts[0], err)
		}
		store = s
		if len(parts) == 3 {
			prefix = parts[2]
		}
	default:
		return nil, "", fmt.Errorf("unsupported source scheme %q", scheme)
	}
	return blobstore.Throttled(store, cfg.rate), prefix, nil
}

func printDatasets(out io.Writer, asJSON bool, datasets ...*sdf.Dataset) error {
	if asJSON {
		summaries := make([]summary, len(datasets))
		for i, ds := range datasets {
			s, err := summarize(ds.Path, nil, ds.Walk)
			if err != nil {
				return err
			}
			summaries[i] = s
		}
		return writeJSON(out, summaries)
	}
	for _, ds := range datasets {
		fmt.Fprintf(out, "=== %s ===\n", ds.Path)
		if err := printTree(out, ds.Walk); err != nil {
			return err
		}
		fmt.Fprintln(out)
	}
	return nil
}

func printCombined(out io.Writer, asJSON bool, c *sdf.CombinedDataset) error {
	if asJSON {
		s, err := summarize("", c.Sources, c.Walk)
		if err != nil {
			return err
		}
		s.Dropped = c.Dropped
		return writeJSON(out, s)
	}
	fmt.Fprintf(out, "=== %d combined datasets ===\n", len(c.Sources))
	for i, src := range c.Sources {
		fmt.Fprintf(out, "  [%d] %s\n", i, src)
	}
	if len(c.Dropped) > 0 {
		fmt.Fprintf(out, "  dropped: %s\n", strings.Join(c.Dropped, ", "))
	}
	return printTree(out, c.Walk)
}

type walker func(sdf.WalkFunc) error

func printTree(out io.Writer, walk walker) error {
	return walk(func(path string, v sdf.Value) error {
		indent := strings.Repeat("  ", strings.Count(path, "["))
		switch v := v.(type) {
		case *sdf.Tensor:
			fmt.Fprintf(out, "%s%s: %s", indent, path, v.Array)
			if v.Len() == 1 {
				first, _ := v.First()
				if v.IsComplex() {
					fmt.Fprintf(out, " = %v", first)
				} else {
					fmt.Fprintf(out, " = %g", real(first))
				}
			}
			fmt.Fprintln(out)
		case sdf.List:
			fmt.Fprintf(out, "%s%s: list of %d\n", indent, path, len(v))
		}
		return nil
	})
}

type fieldSummary struct {
	Path    string `json:"path"`
	Kind    string `json:"kind"`
	Dims    []int  `json:"dims,omitempty"`
	Complex bool   `json:"complex,omitempty"`
	Len     int    `json:"len"`
}

type summary struct {
	Path    string         `json:"path,omitempty"`
	Sources []string       `json:"sources,omitempty"`
	Dropped []string       `json:"dropped,omitempty"`
	Fields  []fieldSummary `json:"fields"`
}

func summarize(path string, sources []string, walk walker) (summary, error) {
	s := summary{Path: path, Sources: sources, Fields: []fieldSummary{}}
	err := walk(func(p string, v sdf.Value) error {
		switch v := v.(type) {
		case *sdf.Tensor:
			s.Fields = append(s.Fields, fieldSummary{Path: p, Kind: "tensor", Dims: v.Dims(), Complex: v.IsComplex(), Len: v.Len()})
		case sdf.List:
			s.Fields = append(s.Fields, fieldSummary{Path: p, Kind: "list", Len: len(v)})
		default:
			return errors.New("unknown value")
		}
		return nil
	})
	return s, err
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
