package predictor

import (
	"errors"
	"fmt"

	"housing/server/internal/models"
	"housing/server/internal/pipeline"
	"housing/server/internal/store"
)

var (
	ErrInvalidMode      = errors.New("mode must be 'sale' or 'rent'")
	ErrModelUnavailable = errors.New("model not loaded")
)

// InferenceError reports a failure inside the pipeline itself
type InferenceError struct {
	Mode string
	Err  error
}

func (e *InferenceError) Error() string {
	return e.Err.Error()
}

func (e *InferenceError) Unwrap() error {
	return e.Err
}

// ModelStore is the read-only lookup the dispatcher selects pipelines from
type ModelStore interface {
	Lookup(mode string) (pipeline.Pipeline, bool)
}

// Dispatcher routes a validated record to the pipeline for its mode
type Dispatcher struct {
	store ModelStore
}

func NewDispatcher(store ModelStore) *Dispatcher {
	return &Dispatcher{store: store}
}

// ValidMode reports whether mode is one of the supported modes
func ValidMode(mode string) bool {
	return mode == store.ModeSale || mode == store.ModeRent
}

// Predict returns the price the mode's pipeline assigns to record. The
// pipeline is called exactly once with a single row.
func (d *Dispatcher) Predict(mode string, record models.PropertyRecord) (models.PredictionResponse, error) {
	if !ValidMode(mode) {
		return models.PredictionResponse{}, ErrInvalidMode
	}

	p, ok := d.store.Lookup(mode)
	if !ok {
		return models.PredictionResponse{}, fmt.Errorf("%w: %s", ErrModelUnavailable, mode)
	}

	price, err := invoke(p, ToRow(record))
	if err != nil {
		return models.PredictionResponse{}, &InferenceError{Mode: mode, Err: err}
	}

	return models.PredictionResponse{
		Mode:           mode,
		PredictedPrice: price,
	}, nil
}

// ToRow projects a record onto the column names the pipelines were trained on
func ToRow(record models.PropertyRecord) pipeline.Row {
	return pipeline.Row{
		Numeric:     record.Numeric(),
		Categorical: record.Categorical(),
	}
}

func invoke(p pipeline.Pipeline, row pipeline.Row) (price float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pipeline panicked: %v", r)
		}
	}()

	out, err := p.Predict([]pipeline.Row{row})
	if err != nil {
		return 0, err
	}
	if len(out) == 0 {
		return 0, errors.New("pipeline returned no prediction")
	}
	return out[0], nil
}
