package app

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jsamuelsen11/riverplay/internal/domain"
	"github.com/jsamuelsen11/riverplay/internal/ports"
)

// Input is one named expression for FormatAll.
type Input struct {
	Name string
	Text string
}

// FormatResult is the outcome of formatting one Input. Err is set for engine
// faults and cancellation; rejected text is an Invalid Result with a nil Err.
type FormatResult struct {
	Name   string
	Result domain.TransformResult
	Err    error
}

// FormatAll transforms every input with at most workers engine calls in
// flight and returns the results in input order. A panic while formatting
// one input is contained to that input's result. Inputs not yet started when
// ctx is canceled get ctx.Err().
func FormatAll(ctx context.Context, svc ports.TransformService, inputs []Input, workers int) []FormatResult {
	results := make([]FormatResult, len(inputs))
	if len(inputs) == 0 {
		return results
	}

	var g errgroup.Group
	g.SetLimit(max(workers, 1))

	for i, in := range inputs {
		results[i].Name = in.Name
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Result, results[i].Err = guard("transform", func() (domain.TransformResult, error) {
				return svc.Transform(ctx, in.Text)
			})
			return nil
		})
	}

	_ = g.Wait()
	return results
}
