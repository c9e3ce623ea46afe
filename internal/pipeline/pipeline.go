// Package pipeline serves the trained price models: a preprocessing step
// (standard scaling of numeric columns, one-hot encoding of categorical
// columns) followed by a random forest regressor, restored from a JSON
// artifact produced by the training job.
package pipeline

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrMissingColumns  = errors.New("columns are missing")
	ErrNonFiniteInput  = errors.New("input contains NaN or infinity")
	ErrNoImportances   = errors.New("artifact carries no impurity statistics")
	ErrInvalidArtifact = errors.New("invalid pipeline artifact")
)

// Row is one input record split into numeric and categorical columns, keyed
// by the column names used during training.
type Row struct {
	Numeric     map[string]float64
	Categorical map[string]string
}

// Pipeline is the inference capability the API depends on
type Pipeline interface {
	Predict(rows []Row) ([]float64, error)
}

// Info describes a loaded pipeline
type Info struct {
	Format    string   `json:"format"`
	Mode      string   `json:"mode"`
	TrainedAt string   `json:"trained_at,omitempty"`
	Metrics   *Metrics `json:"metrics,omitempty"`
	Trees     int      `json:"trees"`
	Features  int      `json:"features"`
}

// FeatureImportance is the mean decrease in impurity attributed to one
// transformed feature
type FeatureImportance struct {
	Feature    string  `json:"feature"`
	Importance float64 `json:"importance"`
}

// ForestPipeline is a Pipeline restored from a forest-pipeline artifact.
// It is immutable after construction and safe for concurrent use.
type ForestPipeline struct {
	info         Info
	preprocessor *Preprocessor
	forest       *Forest
}

// NewForestPipeline builds a pipeline from an already validated artifact
func NewForestPipeline(a *Artifact) (*ForestPipeline, error) {
	if err := a.Check(); err != nil {
		return nil, err
	}

	preprocessor := newPreprocessor(a.Preprocessor)
	forest := newForest(a.Regressor)

	return &ForestPipeline{
		info: Info{
			Format:    a.Format,
			Mode:      a.Mode,
			TrainedAt: a.TrainedAt,
			Metrics:   a.Metrics,
			Trees:     len(forest.trees),
			Features:  forest.nFeatures,
		},
		preprocessor: preprocessor,
		forest:       forest,
	}, nil
}

// Predict transforms every row and returns one forest output per row
func (p *ForestPipeline) Predict(rows []Row) ([]float64, error) {
	out := make([]float64, 0, len(rows))
	for i, row := range rows {
		x, err := p.preprocessor.Transform(row)
		if err != nil {
			return nil, fmt.Errorf("failed to transform row %d: %w", i, err)
		}
		out = append(out, p.forest.Predict(x))
	}
	return out, nil
}

// Info returns the pipeline metadata
func (p *ForestPipeline) Info() Info {
	return p.info
}

// FeatureNames returns the names of the transformed features in the order
// the regressor sees them
func (p *ForestPipeline) FeatureNames() []string {
	return p.preprocessor.FeatureNames()
}

// FeatureImportances returns the impurity based importance of every
// transformed feature, sorted in the order of FeatureNames
func (p *ForestPipeline) FeatureImportances() ([]FeatureImportance, error) {
	scores, err := p.forest.Importances()
	if err != nil {
		return nil, err
	}

	names := p.preprocessor.FeatureNames()
	importances := make([]FeatureImportance, len(names))
	for i, name := range names {
		importances[i] = FeatureImportance{Feature: name, Importance: scores[i]}
	}
	return importances, nil
}

// TopFeatures sorts importances in descending order and keeps the first n.
// A negative n keeps all of them.
func TopFeatures(importances []FeatureImportance, n int) []FeatureImportance {
	sorted := append([]FeatureImportance(nil), importances...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Importance > sorted[j].Importance
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
