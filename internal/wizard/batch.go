package wizard

import (
	"errors"

	"Cabina/internal/calc/calcerr"
)

// MaxBatch bounds the number of projects designed in one call.
const MaxBatch = 50

type BatchRequest struct {
	Items []Request `json:"items"`
}

// BatchItem carries either the designed project or the reason it failed.
type BatchItem struct {
	Index   int    `json:"index"`
	Project *State `json:"project,omitempty"`
	Error   string `json:"error,omitempty"`
	Field   string `json:"field,omitempty"`
}

type BatchResult struct {
	Results   []BatchItem `json:"results"`
	Succeeded int         `json:"succeeded"`
	Failed    int         `json:"failed"`
}

// RunBatch designs every project independently. Invalid input in one item
// is reported on that item; anything else aborts the batch.
func (p *Pipeline) RunBatch(in BatchRequest) (BatchResult, error) {
	if len(in.Items) == 0 {
		return BatchResult{}, calcerr.Invalid("items", "at least one project is required")
	}
	if len(in.Items) > MaxBatch {
		return BatchResult{}, calcerr.Invalid("items", "at most %d projects per batch, got %d", MaxBatch, len(in.Items))
	}
	out := BatchResult{Results: make([]BatchItem, 0, len(in.Items))}
	for i, req := range in.Items {
		s, err := p.Run(req)
		if err != nil {
			var ie *calcerr.InvalidInputError
			if !errors.As(err, &ie) {
				return BatchResult{}, err
			}
			out.Results = append(out.Results, BatchItem{Index: i, Error: err.Error(), Field: ie.Field})
			out.Failed++
			continue
		}
		out.Results = append(out.Results, BatchItem{Index: i, Project: &s})
		out.Succeeded++
	}
	return out, nil
}
