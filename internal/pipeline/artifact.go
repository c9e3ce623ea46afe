package pipeline

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// FormatV1 identifies the artifact layout understood by this package
const FormatV1 = "forest-pipeline/v1"

// leaf marks a node without children in children_left/children_right
const leaf = -1

//go:embed artifact.schema.json
var artifactSchemaSource string

var artifactSchema = jsonschema.MustCompileString("artifact.schema.json", artifactSchemaSource)

// Artifact is the serialized form of a trained pipeline
type Artifact struct {
	Format       string           `json:"format"`
	Mode         string           `json:"mode"`
	TrainedAt    string           `json:"trained_at,omitempty"`
	Metrics      *Metrics         `json:"metrics,omitempty"`
	Preprocessor PreprocessorSpec `json:"preprocessor"`
	Regressor    ForestSpec       `json:"regressor"`
}

// Metrics are the hold-out scores recorded by the training job
type Metrics struct {
	MAE  float64 `json:"mae"`
	RMSE float64 `json:"rmse"`
	R2   float64 `json:"r2"`
}

type PreprocessorSpec struct {
	Numeric     NumericSpec     `json:"numeric"`
	Categorical CategoricalSpec `json:"categorical"`
}

// NumericSpec holds the fitted StandardScaler statistics
type NumericSpec struct {
	Columns []string  `json:"columns"`
	Mean    []float64 `json:"mean"`
	Scale   []float64 `json:"scale"`
}

// CategoricalSpec holds the categories learned by the one-hot encoder, one
// list per column
type CategoricalSpec struct {
	Columns    []string   `json:"columns"`
	Categories [][]string `json:"categories"`
}

type ForestSpec struct {
	NFeatures int        `json:"n_features"`
	Trees     []TreeSpec `json:"trees"`
}

// TreeSpec is a fitted regression tree in flat array form. Node i is a leaf
// when ChildrenLeft[i] is -1.
type TreeSpec struct {
	ChildrenLeft         []int     `json:"children_left"`
	ChildrenRight        []int     `json:"children_right"`
	Feature              []int     `json:"feature"`
	Threshold            []float64 `json:"threshold"`
	Value                []float64 `json:"value"`
	Impurity             []float64 `json:"impurity,omitempty"`
	WeightedNNodeSamples []float64 `json:"weighted_n_node_samples,omitempty"`
}

// LoadFile reads, validates and restores the pipeline stored at path
func LoadFile(path string) (*ForestPipeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact: %w", err)
	}
	return Load(data)
}

// Load validates data against the artifact schema and restores the pipeline
func Load(data []byte) (*ForestPipeline, error) {
	artifact, err := ParseArtifact(data)
	if err != nil {
		return nil, err
	}
	return NewForestPipeline(artifact)
}

// ParseArtifact decodes and schema-validates an artifact document
func ParseArtifact(data []byte) (*Artifact, error) {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: not valid JSON: %v", ErrInvalidArtifact, err)
	}
	if err := artifactSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArtifact, err)
	}

	var artifact Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArtifact, err)
	}
	return &artifact, nil
}

// Check verifies the structural consistency the schema cannot express:
// matching array lengths, feature count, and tree topology.
func (a *Artifact) Check() error {
	if a.Format != FormatV1 {
		return fmt.Errorf("%w: unsupported format %q", ErrInvalidArtifact, a.Format)
	}

	width, err := a.Preprocessor.check()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArtifact, err)
	}
	if a.Regressor.NFeatures != width {
		return fmt.Errorf("%w: regressor expects %d features, preprocessor produces %d",
			ErrInvalidArtifact, a.Regressor.NFeatures, width)
	}

	for i, tree := range a.Regressor.Trees {
		if err := tree.check(a.Regressor.NFeatures); err != nil {
			return fmt.Errorf("%w: tree %d: %v", ErrInvalidArtifact, i, err)
		}
	}
	return nil
}

func (s PreprocessorSpec) check() (int, error) {
	num := s.Numeric
	if len(num.Mean) != len(num.Columns) || len(num.Scale) != len(num.Columns) {
		return 0, fmt.Errorf("numeric: %d columns, %d means, %d scales",
			len(num.Columns), len(num.Mean), len(num.Scale))
	}
	for i, scale := range num.Scale {
		if !(scale > 0) || math.IsInf(scale, 0) {
			return 0, fmt.Errorf("numeric: column %q has scale %v", num.Columns[i], scale)
		}
	}

	cat := s.Categorical
	if len(cat.Categories) != len(cat.Columns) {
		return 0, fmt.Errorf("categorical: %d columns, %d category lists",
			len(cat.Columns), len(cat.Categories))
	}

	seen := make(map[string]bool)
	for _, column := range append(append([]string(nil), num.Columns...), cat.Columns...) {
		if seen[column] {
			return 0, fmt.Errorf("column %q is declared twice", column)
		}
		seen[column] = true
	}

	width := len(num.Columns)
	for i, categories := range cat.Categories {
		distinct := make(map[string]bool, len(categories))
		for _, category := range categories {
			if distinct[category] {
				return 0, fmt.Errorf("categorical: column %q repeats category %q", cat.Columns[i], category)
			}
			distinct[category] = true
		}
		width += len(categories)
	}
	return width, nil
}

func (t TreeSpec) check(nFeatures int) error {
	n := len(t.ChildrenLeft)
	if len(t.ChildrenRight) != n || len(t.Feature) != n || len(t.Threshold) != n || len(t.Value) != n {
		return fmt.Errorf("node arrays differ in length")
	}
	if t.Impurity != nil && len(t.Impurity) != n {
		return fmt.Errorf("impurity has %d entries for %d nodes", len(t.Impurity), n)
	}
	if t.WeightedNNodeSamples != nil && len(t.WeightedNNodeSamples) != n {
		return fmt.Errorf("weighted_n_node_samples has %d entries for %d nodes", len(t.WeightedNNodeSamples), n)
	}

	for node := 0; node < n; node++ {
		left, right := t.ChildrenLeft[node], t.ChildrenRight[node]
		if left == leaf {
			if right != leaf {
				return fmt.Errorf("node %d has only a right child", node)
			}
			if math.IsNaN(t.Value[node]) || math.IsInf(t.Value[node], 0) {
				return fmt.Errorf("leaf %d has value %v", node, t.Value[node])
			}
			continue
		}
		// children always follow their parent, which also rules out cycles
		if left <= node || left >= n || right <= node || right >= n {
			return fmt.Errorf("node %d has children %d and %d out of range", node, left, right)
		}
		if t.Feature[node] < 0 || t.Feature[node] >= nFeatures {
			return fmt.Errorf("node %d splits on feature %d of %d", node, t.Feature[node], nFeatures)
		}
	}
	return nil
}
