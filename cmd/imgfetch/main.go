// imgfetch downloads a list of images concurrently through a worker pool.
//
// Usage:
//
//	imgfetch [flags] [url ...]
//
// URLs can be passed as arguments or listed in a YAML manifest file.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tarnlib/tarn"
	"github.com/tarnlib/tarn/internal/fetch"
)

var (
	workers      int
	outDir       string
	timeout      time.Duration
	manifestPath string
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:          "imgfetch [flags] [url ...]",
	Short:        "Download a list of images concurrently",
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().IntVarP(&workers, "workers", "w", 8, "number of concurrent downloads")
	rootCmd.Flags().StringVarP(&outDir, "out", "o", "images", "directory to write images to")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "per-request HTTP timeout")
	rootCmd.Flags().StringVarP(&manifestPath, "manifest", "m", "", "YAML file with a `urls` list")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// manifest is the YAML input format: a single `urls` list.
type manifest struct {
	URLs []string `yaml:"urls"`
}

func loadManifest(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %q: %w", path, err)
	}
	return m.URLs, nil
}

func run(cmd *cobra.Command, args []string) error {
	urls := args
	if manifestPath != "" {
		fromManifest, err := loadManifest(manifestPath)
		if err != nil {
			return err
		}
		urls = append(fromManifest, urls...)
	}
	if len(urls) == 0 {
		return fmt.Errorf("no URLs given: pass them as arguments or via --manifest")
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	fetcher := &fetch.Fetcher{
		Client: &http.Client{Timeout: timeout},
		Dir:    outDir,
	}

	start := time.Now()
	var failed int

	err := tarn.Run(workers, func(pool *tarn.Pool[string]) error {
		group := pool.Group()

		for _, url := range urls {
			url := url
			if err := group.Submit(func(ctx context.Context) (string, error) {
				return fetcher.Fetch(ctx, url)
			}); err != nil {
				return err
			}
		}

		// Report each download the moment it finishes
		for result := range tarn.AsCompleted(group.Futures()...) {
			if result.Err != nil {
				logger.Error("download failed", slog.String("url", urls[result.Index]), slog.Any("error", result.Err))
				failed++
				continue
			}
			logger.Info("downloaded", slog.String("file", result.Value))
		}

		return nil
	}, tarn.WithContext(cmd.Context()), tarn.WithLogger(logger))
	if err != nil {
		return err
	}

	logger.Info("finished",
		slog.Int("total", len(urls)),
		slog.Int("failed", failed),
		slog.Duration("elapsed", time.Since(start).Round(10*time.Millisecond)))

	if failed > 0 {
		return fmt.Errorf("%d of %d downloads failed", failed, len(urls))
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
