// Command spkmeans clusters a term-document matrix with spherical k-means
// and prints the top words of every partition.
//
// Usage:
//
//	spkmeans [flags] [data [k [workers]]]
//
// data names the matrix blob and defaults to "data". With -store local it is
// a file path; with -store minio or -store s3 it is an object key below
// -prefix in -bucket. Positional k and workers override -k and -workers.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hupe1980/spkmeans"
	"github.com/hupe1980/spkmeans/blobstore"
	minioblob "github.com/hupe1980/spkmeans/blobstore/minio"
	s3blob "github.com/hupe1980/spkmeans/blobstore/s3"
	"github.com/hupe1980/spkmeans/codec"
	"github.com/hupe1980/spkmeans/corpus"
	promspk "github.com/hupe1980/spkmeans/metrics/prometheus"
	"github.com/hupe1980/spkmeans/report"
	"github.com/hupe1980/spkmeans/resource"
)

const defaultMinioEndpoint = "localhost:9000"

type config struct {
	data      string
	vocab     string
	k         int
	workers   int
	top       int
	threshold float64
	maxIter   int
	strict    bool
	keepEmpty bool

	store     string
	bucket    string
	prefix    string
	endpoint  string
	region    string
	accessKey string
	secretKey string
	secure    bool

	memoryLimit int64
	ioLimit     int64

	json      bool
	codecName string
	logLevel  string
	logFormat string

	metricsAddr string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (*config, error) {
	cfg := &config{}

	fs := flag.NewFlagSet("spkmeans", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&cfg.k, "k", 2, "Number of partitions")
	fs.IntVar(&cfg.workers, "workers", 2, "Number of parallel workers")
	fs.StringVar(&cfg.vocab, "vocab", "", "Vocabulary blob, one word per line")
	fs.IntVar(&cfg.top, "top", report.DefaultTopWords, "Words listed per partition")
	fs.Float64Var(&cfg.threshold, "threshold", spkmeans.DefaultConvergenceThreshold, "Stop once the quality gain is at most this value")
	fs.IntVar(&cfg.maxIter, "max-iter", spkmeans.Unbounded, "Iteration limit (-1 for none)")
	fs.BoolVar(&cfg.strict, "strict", false, "Fail when the iteration limit is reached before convergence")
	fs.BoolVar(&cfg.keepEmpty, "keep-empty", false, "Keep the previous concept of a partition that becomes empty")

	fs.StringVar(&cfg.store, "store", "local", "Input store: local, minio or s3")
	fs.StringVar(&cfg.bucket, "bucket", "", "Bucket for minio and s3 stores")
	fs.StringVar(&cfg.prefix, "prefix", "", "Key prefix for minio and s3 stores")
	fs.StringVar(&cfg.endpoint, "endpoint", "", "MinIO endpoint (default localhost:9000) or custom s3 endpoint")
	fs.StringVar(&cfg.region, "region", "", "Object store region")
	fs.StringVar(&cfg.accessKey, "access-key", os.Getenv("MINIO_ACCESS_KEY"), "MinIO access key")
	fs.StringVar(&cfg.secretKey, "secret-key", os.Getenv("MINIO_SECRET_KEY"), "MinIO secret key")
	fs.BoolVar(&cfg.secure, "secure", false, "Use TLS for MinIO")

	fs.Int64Var(&cfg.memoryLimit, "memory-limit", 0, "Matrix memory limit in bytes (0 for none)")
	fs.Int64Var(&cfg.ioLimit, "io-limit", 0, "Input read limit in bytes per second (0 for none)")

	fs.BoolVar(&cfg.json, "json", false, "Print a JSON report instead of text")
	fs.StringVar(&cfg.codecName, "codec", codec.Default.Name(), "JSON codec: json or go-json")
	fs.StringVar(&cfg.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	fs.StringVar(&cfg.logFormat, "log-format", "text", "Log format: text or json")

	fs.StringVar(&cfg.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if fs.NArg() > 3 {
		return nil, fmt.Errorf("expected at most data, k and workers arguments, got %d", fs.NArg())
	}
	cfg.data = "data"
	if fs.NArg() > 0 {
		cfg.data = fs.Arg(0)
	}
	if fs.NArg() > 1 {
		k, err := strconv.Atoi(fs.Arg(1))
		if err != nil {
			return nil, fmt.Errorf("invalid k %q: %w", fs.Arg(1), err)
		}
		cfg.k = k
	}
	if fs.NArg() > 2 {
		w, err := strconv.Atoi(fs.Arg(2))
		if err != nil {
			return nil, fmt.Errorf("invalid workers %q: %w", fs.Arg(2), err)
		}
		cfg.workers = w
	}

	if cfg.top < 0 {
		return nil, fmt.Errorf("-top must not be negative, got %d", cfg.top)
	}
	if cfg.store != "local" && cfg.bucket == "" {
		return nil, fmt.Errorf("-bucket is required for store %q", cfg.store)
	}
	return cfg, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg, stderr)
	if err != nil {
		return err
	}

	c, ok := codec.ByName(cfg.codecName)
	if !ok {
		return fmt.Errorf("unknown codec %q", cfg.codecName)
	}

	store, matrixName, vocabName, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}

	rc := resource.NewController(resource.Config{
		MemoryLimitBytes:   cfg.memoryLimit,
		IOLimitBytesPerSec: cfg.ioLimit,
	})

	opts := []spkmeans.Option{
		spkmeans.WithLogger(logger),
		spkmeans.WithConvergenceThreshold(cfg.threshold),
		spkmeans.WithMaxIterations(cfg.maxIter),
		spkmeans.WithWorkers(cfg.workers),
	}
	if cfg.strict {
		opts = append(opts, spkmeans.WithStrictConvergence())
	}
	if cfg.keepEmpty {
		opts = append(opts, spkmeans.WithEmptyPolicy(spkmeans.KeepPreviousConcept))
	}

	if cfg.metricsAddr != "" {
		shutdown, err := serveMetrics(cfg.metricsAddr, logger, &opts)
		if err != nil {
			return err
		}
		defer shutdown()
	}

	cp, err := corpus.Load(ctx, store, corpus.Options{
		MatrixName: matrixName,
		VocabName:  vocabName,
		Controller: rc,
		Logger:     logger.Logger,
	})
	if err != nil {
		if errors.Is(err, blobstore.ErrNotFound) {
			return fmt.Errorf("file %q does not exist: %w", cfg.data, err)
		}
		return err
	}
	defer cp.Release()

	if !cfg.json {
		fmt.Fprintf(stdout, "Running spherical k-means on %q with k=%d (%d workers)\n", cfg.data, cfg.k, cfg.workers)
		fmt.Fprintf(stdout, "Loaded %d documents, %d words\n", cp.Header.Docs, cp.Header.Words)
	}

	res, err := spkmeans.Run(ctx, cp.Matrix, cfg.k, opts...)
	if err != nil {
		return err
	}

	var vocab report.Vocabulary
	if vocabName != "" {
		vocab = cp
	}

	if cfg.json {
		return report.WriteJSON(stdout, c, report.New(cp.Matrix, res, vocab, cfg.top))
	}

	fmt.Fprintf(stdout, "Quality: %.6f after %d iterations (converged=%t)\n", res.Quality, res.Iterations, res.Converged)
	fmt.Fprintf(stdout, "Done in %.3f seconds\n", res.Duration.Seconds())
	return report.WriteText(stdout, report.Summarize(cp.Matrix, res, vocab, cfg.top))
}

func newLogger(cfg *config, w io.Writer) (*spkmeans.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.logLevel)); err != nil {
		return nil, fmt.Errorf("invalid -log-level: %w", err)
	}

	hopts := &slog.HandlerOptions{Level: level}
	switch cfg.logFormat {
	case "text":
		return spkmeans.NewLogger(slog.NewTextHandler(w, hopts)), nil
	case "json":
		return spkmeans.NewLogger(slog.NewJSONHandler(w, hopts)), nil
	default:
		return nil, fmt.Errorf("invalid -log-format %q", cfg.logFormat)
	}
}

// openStore returns the store plus the matrix and vocabulary names within it.
func openStore(ctx context.Context, cfg *config) (blobstore.BlobStore, string, string, error) {
	switch cfg.store {
	case "local":
		return localStore(cfg.data, cfg.vocab)
	case "minio":
		endpoint := cfg.endpoint
		if endpoint == "" {
			endpoint = defaultMinioEndpoint
		}
		client, err := minio.New(endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.accessKey, cfg.secretKey, ""),
			Secure: cfg.secure,
			Region: cfg.region,
		})
		if err != nil {
			return nil, "", "", fmt.Errorf("create minio client: %w", err)
		}
		return minioblob.NewStore(client, cfg.bucket, cfg.prefix), cfg.data, cfg.vocab, nil
	case "s3":
		s3opts := []func(*s3blob.Options){s3blob.WithPrefix(cfg.prefix)}
		if cfg.region != "" {
			s3opts = append(s3opts, s3blob.WithRegion(cfg.region))
		}
		if cfg.endpoint != "" {
			s3opts = append(s3opts, s3blob.WithEndpoint(cfg.endpoint))
		}
		store, err := s3blob.New(ctx, cfg.bucket, s3opts...)
		if err != nil {
			return nil, "", "", err
		}
		return store, cfg.data, cfg.vocab, nil
	default:
		return nil, "", "", fmt.Errorf("unknown store %q", cfg.store)
	}
}

// localStore roots the store at the matrix directory so the vocabulary can
// live anywhere relative to it.
func localStore(data, vocab string) (blobstore.BlobStore, string, string, error) {
	abs, err := filepath.Abs(data)
	if err != nil {
		return nil, "", "", err
	}
	root := filepath.Dir(abs)

	vocabName := ""
	if vocab != "" {
		vabs, err := filepath.Abs(vocab)
		if err != nil {
			return nil, "", "", err
		}
		if vocabName, err = filepath.Rel(root, vabs); err != nil {
			return nil, "", "", err
		}
		vocabName = filepath.ToSlash(vocabName)
	}

	return blobstore.NewLocalStore(root), filepath.Base(abs), vocabName, nil
}

// serveMetrics starts a Prometheus endpoint and adds its collector to opts.
func serveMetrics(addr string, logger *spkmeans.Logger, opts *[]spkmeans.Option) (func(), error) {
	reg := prometheus.NewRegistry()
	*opts = append(*opts, spkmeans.WithMetricsCollector(promspk.NewCollector(reg)))

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", slog.String("error", err.Error()))
		}
	}()
	logger.Info("serving metrics", slog.String("addr", ln.Addr().String()))

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}
