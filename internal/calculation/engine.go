package calculation

import (
	"context"
	"fmt"
	"runtime"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/underwriting/capacity-calculator/internal/domain"
	"github.com/underwriting/capacity-calculator/pkg/decimal"
)

// CalculationEngine runs layering calculations for single inputs and batches.
type CalculationEngine struct {
	Workers int // Maximum concurrent calculations in RunBatch; <= 0 means GOMAXPROCS
	Logger  Logger
}

// NewCalculationEngine creates a new calculation engine
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{
		Workers: runtime.GOMAXPROCS(0),
		Logger:  NopLogger{},
	}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

func (ce *CalculationEngine) logger() Logger {
	if ce.Logger == nil {
		return NopLogger{}
	}
	return ce.Logger
}

// Calculate computes a single layering and logs soft outcomes.
func (ce *CalculationEngine) Calculate(input domain.LayeringInput) domain.LayeringResult {
	result := ComputeLayering(input)
	log := ce.logger()
	switch {
	case result.OverLine:
		log.Warnf("TIV %s exceeds max capacity %s for %s/%s",
			input.TotalInsuredValue.Format(), result.MaxCapacity.Format(), input.TreatyType, input.HazardLevel)
	case result.Group3.ExceedsThreshold:
		log.Warnf("group 3 share %s exceeds %s threshold %s",
			result.Group3.Percent.Percent(), input.TreatyType, input.TreatyType.Group3Threshold().Percent())
	default:
		log.Debugf("layered TIV %s for %s/%s: g1=%s g2=%s g3=%s",
			input.TotalInsuredValue.Format(), input.TreatyType, input.HazardLevel,
			result.Group1.Percent, result.Group2.Percent, result.Group3.Percent)
	}
	return result
}

// RunBatch layers every submission in cfg, preserving input order. Each run
// gets a fresh RunID for correlating logs and reports.
func (ce *CalculationEngine) RunBatch(ctx context.Context, cfg *domain.Configuration) (*domain.BatchResult, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil configuration")
	}
	results := make([]domain.SubmissionResult, len(cfg.Submissions))

	g, gctx := errgroup.WithContext(ctx)
	workers := ce.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g.SetLimit(workers)

	for i, sub := range cfg.Submissions {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return fmt.Errorf("submission %q: %w", sub.Name, err)
			}
			input := sub.Input()
			if _, err := decimal.ParseMoney(sub.TotalInsuredValue); err != nil {
				ce.logger().Warnf("submission %q: %v, treated as zero", sub.Name, err)
			}
			results[i] = domain.SubmissionResult{
				Submission: sub,
				Input:      input,
				Result:     ce.Calculate(input),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	batch := &domain.BatchResult{
		RunID:             uuid.NewString(),
		Title:             cfg.Title,
		Results:           results,
		TotalPlacedAmount: decimal.Zero(),
	}
	for _, r := range results {
		switch {
		case r.Result.OverLine:
			batch.OverLineCount++
		case !r.Result.Placed():
			batch.EmptyInputCount++
		default:
			batch.TotalPlacedAmount = batch.TotalPlacedAmount.Add(r.Result.TotalAmount())
		}
		if r.Result.Group3.ExceedsThreshold {
			batch.ThresholdCount++
		}
	}
	ce.logger().Infof("run %s: layered %d submissions: %d over line, %d above group 3 threshold",
		batch.RunID, len(results), batch.OverLineCount, batch.ThresholdCount)
	return batch, nil
}
