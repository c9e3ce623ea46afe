package pipeline

type tree struct {
	left      []int
	right     []int
	feature   []int
	threshold []float64
	value     []float64
	impurity  []float64
	weight    []float64
}

// Forest is an averaging ensemble of regression trees
type Forest struct {
	nFeatures int
	trees     []tree
}

func newForest(spec ForestSpec) *Forest {
	f := &Forest{nFeatures: spec.NFeatures}
	for _, t := range spec.Trees {
		f.trees = append(f.trees, tree{
			left:      t.ChildrenLeft,
			right:     t.ChildrenRight,
			feature:   t.Feature,
			threshold: t.Threshold,
			value:     t.Value,
			impurity:  t.Impurity,
			weight:    t.WeightedNNodeSamples,
		})
	}
	return f
}

// Predict returns the mean of the tree outputs for the feature vector x
func (f *Forest) Predict(x []float64) float64 {
	var sum float64
	for i := range f.trees {
		sum += f.trees[i].predict(x)
	}
	return sum / float64(len(f.trees))
}

// predict walks from the root to a leaf. Features are compared at float32
// precision, the precision the trees were fitted with.
func (t *tree) predict(x []float64) float64 {
	node := 0
	for t.left[node] != leaf {
		if float64(float32(x[t.feature[node]])) <= t.threshold[node] {
			node = t.left[node]
		} else {
			node = t.right[node]
		}
	}
	return t.value[node]
}

// Importances computes the normalized mean decrease in impurity per feature,
// averaged over the trees that have at least one split.
func (f *Forest) Importances() ([]float64, error) {
	total := make([]float64, f.nFeatures)
	counted := 0

	for i := range f.trees {
		t := &f.trees[i]
		if t.impurity == nil || t.weight == nil {
			return nil, ErrNoImportances
		}
		if len(t.left) <= 1 {
			continue
		}
		for j, v := range t.importances(f.nFeatures) {
			total[j] += v
		}
		counted++
	}

	if counted == 0 {
		return total, nil
	}
	for j := range total {
		total[j] /= float64(counted)
	}
	return normalize(total), nil
}

func (t *tree) importances(nFeatures int) []float64 {
	out := make([]float64, nFeatures)
	for node := range t.left {
		left, right := t.left[node], t.right[node]
		if left == leaf {
			continue
		}
		out[t.feature[node]] += t.weight[node]*t.impurity[node] -
			t.weight[left]*t.impurity[left] -
			t.weight[right]*t.impurity[right]
	}
	if t.weight[0] > 0 {
		for j := range out {
			out[j] /= t.weight[0]
		}
	}
	return normalize(out)
}

func normalize(values []float64) []float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	if sum > 0 {
		for i := range values {
			values[i] /= sum
		}
	}
	return values
}
