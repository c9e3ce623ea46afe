package store

import (
	"fmt"
	"os"
	"testing"

	"housing/server/internal/pipeline"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// single leaf forest that always predicts value
const artifactTemplate = `{
	"format": "forest-pipeline/v1",
	"mode": %q,
	"preprocessor": {
		"numeric": {"columns": ["squareMeters"], "mean": [0], "scale": [1]},
		"categorical": {"columns": [], "categories": []}
	},
	"regressor": {
		"n_features": 1,
		"trees": [{
			"children_left": [-1], "children_right": [-1],
			"feature": [-2], "threshold": [-2], "value": [%v]
		}]
	}
}`

func writeArtifact(t *testing.T, dir, mode string, value float64) {
	t.Helper()
	data := fmt.Sprintf(artifactTemplate, mode, value)
	require.NoError(t, os.WriteFile(ArtifactPath(dir, mode), []byte(data), 0644))
}

func predict(t *testing.T, p pipeline.Pipeline) float64 {
	t.Helper()
	out, err := p.Predict([]pipeline.Row{{Numeric: map[string]float64{"squareMeters": 42}}})
	require.NoError(t, err)
	require.Len(t, out, 1)
	return out[0]
}

func TestLoadBothModes(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, ModeSale, 500000)
	writeArtifact(t, dir, ModeRent, 2500)

	logger, _ := logtest.NewNullLogger()
	s := Load(dir, logger)

	assert.Equal(t, []string{"rent", "sale"}, s.Loaded())

	sale, ok := s.Lookup(ModeSale)
	require.True(t, ok)
	assert.Equal(t, 500000.0, predict(t, sale))

	rent, ok := s.Lookup(ModeRent)
	require.True(t, ok)
	assert.Equal(t, 2500.0, predict(t, rent))
}

func TestLoadMissingModeDoesNotBlockOther(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, ModeSale, 500000)

	logger, hook := logtest.NewNullLogger()
	s := Load(dir, logger)

	assert.Equal(t, []string{"sale"}, s.Loaded())
	_, ok := s.Lookup(ModeRent)
	assert.False(t, ok)

	var warned bool
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel && entry.Data["mode"] == ModeRent {
			warned = true
		}
	}
	assert.True(t, warned, "missing rent artifact should be logged")
}

func TestLoadBrokenArtifactDoesNotBlockOther(t *testing.T) {
	dir := t.TempDir()
	writeArtifact(t, dir, ModeRent, 2500)
	require.NoError(t, os.WriteFile(ArtifactPath(dir, ModeSale), []byte("not a model"), 0644))

	logger, hook := logtest.NewNullLogger()
	s := Load(dir, logger)

	assert.Equal(t, []string{"rent"}, s.Loaded())
	require.NotNil(t, hook.LastEntry())

	var failed bool
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.ErrorLevel && entry.Data["mode"] == ModeSale {
			failed = true
		}
	}
	assert.True(t, failed)
}

func TestLoadEmptyDirectory(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	s := Load(t.TempDir(), logger)

	assert.Empty(t, s.Loaded())
	for _, mode := range Modes {
		_, ok := s.Lookup(mode)
		assert.False(t, ok)
	}
}

func TestNewSkipsNilPipelines(t *testing.T) {
	s := New(map[string]pipeline.Pipeline{ModeSale: nil})

	_, ok := s.Lookup(ModeSale)
	assert.False(t, ok)
	assert.Empty(t, s.Loaded())
}

func TestArtifactPath(t *testing.T) {
	assert.Equal(t, "models/model_sale.json", ArtifactPath("models", ModeSale))
	assert.Equal(t, "/srv/m/model_rent.json", ArtifactPath("/srv/m", ModeRent))
}
