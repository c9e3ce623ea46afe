package pipeline

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

type numericColumn struct {
	name  string
	mean  float64
	scale float64
}

type categoricalColumn struct {
	name       string
	offset     int
	categories []string
	index      map[string]int
}

// Preprocessor turns a Row into the feature vector the regressor was
// trained on: scaled numeric columns first, then one block of indicator
// columns per categorical column.
type Preprocessor struct {
	numeric     []numericColumn
	categorical []categoricalColumn
	width       int
}

func newPreprocessor(spec PreprocessorSpec) *Preprocessor {
	p := &Preprocessor{}

	for i, name := range spec.Numeric.Columns {
		p.numeric = append(p.numeric, numericColumn{
			name:  name,
			mean:  spec.Numeric.Mean[i],
			scale: spec.Numeric.Scale[i],
		})
	}

	offset := len(p.numeric)
	for i, name := range spec.Categorical.Columns {
		categories := spec.Categorical.Categories[i]
		index := make(map[string]int, len(categories))
		for j, category := range categories {
			index[category] = j
		}
		p.categorical = append(p.categorical, categoricalColumn{
			name:       name,
			offset:     offset,
			categories: categories,
			index:      index,
		})
		offset += len(categories)
	}
	p.width = offset

	return p
}

// Transform encodes a single row. Unknown categories encode as all zeros.
func (p *Preprocessor) Transform(row Row) ([]float64, error) {
	if missing := p.missingColumns(row); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	x := make([]float64, p.width)
	for i, column := range p.numeric {
		v := row.Numeric[column.name]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: column %s", ErrNonFiniteInput, column.name)
		}
		x[i] = (v - column.mean) / column.scale
	}

	for _, column := range p.categorical {
		if j, ok := column.index[row.Categorical[column.name]]; ok {
			x[column.offset+j] = 1
		}
	}
	return x, nil
}

// FeatureNames returns the numeric column names followed by the one-hot
// names "<column>_<category>"
func (p *Preprocessor) FeatureNames() []string {
	names := make([]string, 0, p.width)
	for _, column := range p.numeric {
		names = append(names, column.name)
	}
	for _, column := range p.categorical {
		for _, category := range column.categories {
			names = append(names, column.name+"_"+category)
		}
	}
	return names
}

func (p *Preprocessor) missingColumns(row Row) []string {
	var missing []string
	for _, column := range p.numeric {
		if _, ok := row.Numeric[column.name]; !ok {
			missing = append(missing, column.name)
		}
	}
	for _, column := range p.categorical {
		if _, ok := row.Categorical[column.name]; !ok {
			missing = append(missing, column.name)
		}
	}
	sort.Strings(missing)
	return missing
}
