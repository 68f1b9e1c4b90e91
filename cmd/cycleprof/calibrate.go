package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cwbudde/cycleprof"
	"github.com/cwbudde/cycleprof/internal/cpu"
)

func newCalibrateCommand(root *rootOptions) *cobra.Command {
	var (
		duration time.Duration
		samples  int
	)

	cmd := &cobra.Command{
		Use:   "calibrate",
		Short: "Estimate the cycle counter frequency and read overhead",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if duration <= 0 || samples < 1 {
				return errors.New("duration and samples must be positive")
			}

			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "cpu:        %s\n", cpu.DetectFeatures())

			if hz := cpu.CounterFrequencyHz(); hz > 0 {
				fmt.Fprintf(out, "counter hz: %d (architectural)\n", hz)
			}

			fmt.Fprintf(out, "overhead:   %d cycles per read\n", cpu.ReadOverhead(10_000))
			fmt.Fprintf(out, "%8s  %16s  %14s\n", "sample", "cycles", "hz")

			var lo, hi, sum uint64

			for i := 0; i < samples; i++ {
				delta := cpu.EstimateFrequency(duration)
				hz := cpu.CyclesPerSecond(delta, duration)

				root.logger.Debug("calibration sample", zap.Int("sample", i), zap.Uint64("hz", hz))
				fmt.Fprintf(out, "%8d  %16d  %14d\n", i, delta, hz)

				if i == 0 || hz < lo {
					lo = hz
				}
				if hz > hi {
					hi = hz
				}
				sum += hz
			}

			mean := sum / uint64(samples)
			fmt.Fprintf(out, "mean %d Hz, spread %.3f%%\n", mean, float64(hi-lo)/float64(max(mean, 1))*100)

			return nil
		},
	}

	cmd.Flags().DurationVarP(&duration, "duration", "d", cycleprof.DefaultCalibration, "busy-wait window per sample")
	cmd.Flags().IntVarP(&samples, "samples", "n", 5, "number of estimates")

	return cmd
}
