package batch

import (
	"fmt"

	"Ampere/internal/calc/electrical"
)

type BatchInput struct {
	Items []electrical.Project `json:"items"`
}

type BatchResult struct {
	Results []electrical.CalculationResults `json:"results"`
}

// ItemError reports which project of a batch failed.
type ItemError struct {
	Index int
	Err   error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("item %d: %v", e.Index, e.Err)
}

func (e *ItemError) Unwrap() error { return e.Err }

// Calculate runs every project in order and stops at the first failure.
func Calculate(in BatchInput) (BatchResult, error) {
	if len(in.Items) == 0 {
		return BatchResult{}, fmt.Errorf("no items")
	}
	out := BatchResult{Results: make([]electrical.CalculationResults, 0, len(in.Items))}
	for i, item := range in.Items {
		res, err := electrical.Run(item)
		if err != nil {
			return BatchResult{}, &ItemError{Index: i, Err: err}
		}
		out.Results = append(out.Results, res)
	}
	return out, nil
}
