package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/cycleprof"
	"github.com/cwbudde/cycleprof/internal/config"
	"github.com/cwbudde/cycleprof/internal/cpu"
	"github.com/cwbudde/cycleprof/promexport"
)

func newDemoCommand(root *rootOptions) *cobra.Command {
	var (
		configPath  string
		workers     int
		depth       int
		calibration time.Duration
		pprofPath   string
		metricsAddr string
		pin         bool
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Profile a built-in workload and print the report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Default()

			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return err
				}

				cfg = loaded
			}

			flags := cmd.Flags()
			if flags.Changed("workers") {
				cfg.Workers = workers
			}
			if flags.Changed("depth") {
				cfg.Depth = depth
			}
			if flags.Changed("calibration") {
				cfg.Calibration = calibration
			}
			if flags.Changed("pprof") {
				cfg.Output.Pprof = pprofPath
			}
			if flags.Changed("metrics-addr") {
				cfg.Output.MetricsAddr = metricsAddr
			}
			if flags.Changed("pin") {
				cfg.Pin = pin
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			return runDemo(cmd.Context(), cfg, root.logger, cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.StringVarP(&configPath, "config", "c", "", "YAML config file")
	f.IntVarP(&workers, "workers", "w", 1, "goroutines, each profiled independently")
	f.IntVar(&depth, "depth", 20, "fibonacci recursion depth")
	f.DurationVar(&calibration, "calibration", cycleprof.DefaultCalibration, "frequency calibration window")
	f.StringVar(&pprofPath, "pprof", "", "write a pprof profile per worker to <path>.<worker>")
	f.StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address until interrupted")
	f.BoolVar(&pin, "pin", false, "pin each worker to one CPU")

	return cmd
}

func runDemo(ctx context.Context, cfg config.Config, logger *zap.Logger, out io.Writer) error {
	reports := make([]*cycleprof.Report, cfg.Workers)

	g, _ := errgroup.WithContext(ctx)

	for w := 0; w < cfg.Workers; w++ {
		w := w
		g.Go(func() error {
			rep, err := profileWorker(cfg, w, logger.With(zap.Int("worker", w)))
			if err != nil {
				return fmt.Errorf("worker %d: %w", w, err)
			}

			reports[w] = rep

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	for w, rep := range reports {
		fmt.Fprintf(out, "worker %d", w)

		if _, err := rep.WriteTo(out); err != nil {
			return err
		}

		if cfg.Output.Pprof != "" {
			if err := writeProfile(rep, cfg.Output.Pprof+"."+strconv.Itoa(w)); err != nil {
				return err
			}
		}
	}

	if cfg.Output.MetricsAddr != "" {
		return serveMetrics(ctx, cfg.Output.MetricsAddr, reports, logger)
	}

	return nil
}

func profileWorker(cfg config.Config, worker int, logger *zap.Logger) (*cycleprof.Report, error) {
	if cfg.Pin {
		err := cpu.PinCurrentThread(worker % runtime.NumCPU())
		switch {
		case errors.Is(err, cpu.ErrAffinityUnsupported):
			logger.Warn("cpu pinning unsupported on this platform")
		case err != nil:
			return nil, err
		default:
			defer runtime.UnlockOSThread()
		}
	}

	opts := []cycleprof.Option{
		cycleprof.WithCalibration(cfg.Calibration),
		cycleprof.WithLogger(logger),
	}
	if cfg.Capacity > 0 {
		opts = append(opts, cycleprof.WithCapacity(cfg.Capacity))
	}

	p, err := cycleprof.New(demoRegions, opts...)
	if err != nil {
		return nil, err
	}

	p.Start()
	sum := runWorkload(p, cfg.Depth)
	p.End()

	logger.Debug("workload finished", zap.Uint64("checksum", sum))

	return p.Report()
}

func writeProfile(rep *cycleprof.Report, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}

	if err := rep.WriteProfile(f); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

func serveMetrics(ctx context.Context, addr string, reports []*cycleprof.Report, logger *zap.Logger) error {
	registry := prometheus.NewRegistry()

	for w, rep := range reports {
		c := promexport.NewCollector("cycleprof", prometheus.Labels{"worker": strconv.Itoa(w)})
		c.Publish(rep)

		if err := registry.Register(c); err != nil {
			return err
		}
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	logger.Info("serving metrics", zap.String("addr", addr))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
