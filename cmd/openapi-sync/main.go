// Package main provides the openapi-sync CLI that keeps a committed OpenAPI
// contract snapshot in sync with a live specification. It loads the live spec
// from a URL or file (JSON or YAML), canonicalizes it, and either accepts it
// as the new snapshot (-update) or classifies drift against the committed
// snapshot (-check).
//
// Modes:
//   - UPDATE : openapi-sync -update [flags]
//   - CHECK  : openapi-sync -check [flags]
//
// Key design goals:
//   - Deterministic comparison (canonical key order, format-agnostic input)
//   - Safe snapshot workflow (atomic writes, explicit operator-invoked update)
//   - Clear, minimal CLI flags with sensible defaults
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"openapi-sync/internal/canon"
	"openapi-sync/internal/config"
	"openapi-sync/internal/drift"
	"openapi-sync/internal/loader"
	"openapi-sync/internal/meta"
	"openapi-sync/internal/snapshot"
)

// errDrift marks a check run that found divergence; details are already
// printed when it is returned, so main only sets the exit code.
var errDrift = errors.New("specification drift detected")

// Config holds the parsed CLI flags.
type Config struct {
	update       bool
	check        bool
	version      bool
	specURL      string
	specFile     string
	snapshotPath string
	diffContext  int
	maxDiffBytes int
	noDiff       bool
	timeout      time.Duration
}

func parseFlags(args []string) (Config, error) {
	var cfg Config
	fs := flag.NewFlagSet("openapi-sync", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage:\n")
		fmt.Fprintf(fs.Output(), "  UPDATE : openapi-sync -update [flags]\n")
		fmt.Fprintf(fs.Output(), "  CHECK  : openapi-sync -check [flags]\n")
		fmt.Fprintln(fs.Output(), "\nFlags:")
		fs.PrintDefaults()
	}

	// Modes
	fs.BoolVar(&cfg.update, "update", false, "accept the live specification as the new snapshot (mutually exclusive with -check)")
	fs.BoolVar(&cfg.check, "check", false, "compare the live specification against the snapshot (mutually exclusive with -update)")
	fs.BoolVar(&cfg.version, "version", false, "print version and exit")

	// Source & snapshot
	fs.StringVar(&cfg.specURL, "spec-url", "", "URL of the live specification (overrides "+loader.EnvSpecURL+")")
	fs.StringVar(&cfg.specFile, "spec-file", "", "path of the live specification (overrides "+loader.EnvSpecFile+")")
	fs.StringVar(&cfg.snapshotPath, "snapshot", config.DefaultSnapshotPath, "path of the committed contract snapshot")
	fs.DurationVar(&cfg.timeout, "timeout", 30*time.Second, "HTTP timeout for fetching the live specification")

	// Drift reporting
	fs.IntVar(&cfg.diffContext, "diff-context", 4, "context lines in the drift patch")
	fs.IntVar(&cfg.maxDiffBytes, "max-diff-bytes", 2_000_000, "max bytes for the drift patch (0 = no limit)")
	fs.BoolVar(&cfg.noDiff, "no-diff", false, "suppress the drift patch, print digests only")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() != 0 {
		return Config{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return cfg, nil
}

// selectMode validates the mutually-exclusive mode flags.
func selectMode(cfg Config) (string, error) {
	switch {
	case cfg.version:
		return "version", nil
	case cfg.update && cfg.check:
		return "", errors.New("-update and -check are mutually exclusive")
	case cfg.update:
		return "update", nil
	case cfg.check:
		return "check", nil
	default:
		return "", errors.New("one of -update or -check is required")
	}
}

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "ERROR:", err)
		}
		os.Exit(2)
	}
	mode, err := selectMode(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(2)
	}

	if err := run(context.Background(), mode, cfg); err != nil {
		if !errors.Is(err, errDrift) {
			fmt.Fprintln(os.Stderr, "ERROR:", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, mode string, cfg Config) error {
	switch mode {
	case "version":
		fmt.Println("openapi-sync", meta.Version())
		return nil
	case "update":
		return runUpdate(ctx, cfg)
	default:
		return runCheck(ctx, cfg)
	}
}

// runUpdate loads the live specification and writes it as the accepted
// snapshot. This is the only path that mutates persisted state.
func runUpdate(ctx context.Context, cfg Config) error {
	cc := config.Resolve(cfg.specURL, cfg.specFile, cfg.snapshotPath)
	l := loader.New(&http.Client{Timeout: cfg.timeout})

	doc, err := l.Load(ctx, cc.Source)
	if err != nil {
		return err
	}
	if err := snapshot.Save(cc.SnapshotPath, doc); err != nil {
		return err
	}
	form, err := canon.Marshal(doc)
	if err != nil {
		return err
	}
	fmt.Printf("Wrote snapshot %s (sha256=%s)\n", cc.SnapshotPath, canon.Digest(form))
	return nil
}

// runCheck classifies drift between the committed snapshot and the live
// specification. The snapshot must exist; otherwise the operator is told to
// run -update before the live spec is ever loaded.
func runCheck(ctx context.Context, cfg Config) error {
	cc := config.Resolve(cfg.specURL, cfg.specFile, cfg.snapshotPath)

	if _, err := os.Stat(cc.SnapshotPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("no snapshot at %s; run openapi-sync -update to accept the current specification", cc.SnapshotPath)
		}
		return err
	}

	// Snapshot and live spec are independent inputs; load them concurrently
	// and stop at the first failure.
	l := loader.New(&http.Client{Timeout: cfg.timeout})
	var snapDoc, liveDoc canon.Document
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snapDoc, err = snapshot.Load(cc.SnapshotPath)
		return err
	})
	g.Go(func() error {
		var err error
		liveDoc, err = l.Load(gctx, cc.Source)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	res, err := drift.Check(snapDoc, liveDoc)
	if err != nil {
		return err
	}
	if res.InSync {
		fmt.Printf("in sync: %s matches %s\n", cc.SnapshotPath, cc.Source.Label())
		return nil
	}

	fmt.Printf("drift detected between %s and %s\n", cc.SnapshotPath, cc.Source.Label())
	fmt.Printf("  snapshot sha256: %s\n", res.SnapshotDigest)
	fmt.Printf("  live     sha256: %s\n", res.LiveDigest)
	if !cfg.noDiff {
		if body, oversize := renderDrift(snapDoc, liveDoc, cfg); body != "" {
			fmt.Print(body)
			if oversize {
				fmt.Println("(patch omitted: inputs exceed -max-diff-bytes)")
			}
		}
	}
	fmt.Println("Run openapi-sync -update to accept the live specification.")
	return errDrift
}

// renderDrift pretty-prints both documents and produces a unified patch.
// Rendering failures degrade to digests-only output rather than masking the
// drift result.
func renderDrift(snapDoc, liveDoc canon.Document, cfg Config) (string, bool) {
	a, err := canon.MarshalIndent(snapDoc)
	if err != nil {
		return "", false
	}
	b, err := canon.MarshalIndent(liveDoc)
	if err != nil {
		return "", false
	}
	return drift.Unified(a, b, drift.Options{
		Context:  cfg.diffContext,
		MaxBytes: cfg.maxDiffBytes,
	})
}
