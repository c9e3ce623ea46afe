package store

import (
	"errors"
	"io/fs"
	"path/filepath"
	"sort"

	"housing/server/internal/pipeline"

	"github.com/sirupsen/logrus"
)

// Supported modes
const (
	ModeSale = "sale"
	ModeRent = "rent"
)

// Modes lists every mode the service knows about, loaded or not
var Modes = []string{ModeSale, ModeRent}

// Store maps a mode to its trained pipeline. It is filled once and never
// modified afterwards, so lookups need no locking.
type Store struct {
	pipelines map[string]pipeline.Pipeline
}

// New builds a store from an explicit mode to pipeline mapping
func New(pipelines map[string]pipeline.Pipeline) *Store {
	copied := make(map[string]pipeline.Pipeline, len(pipelines))
	for mode, p := range pipelines {
		if p != nil {
			copied[mode] = p
		}
	}
	return &Store{pipelines: copied}
}

// ArtifactPath returns the file a mode's pipeline is loaded from
func ArtifactPath(dir, mode string) string {
	return filepath.Join(dir, "model_"+mode+".json")
}

// Load tries to restore a pipeline for every supported mode from dir. A mode
// whose artifact is missing or broken is logged and left out; it never stops
// the other modes from loading.
func Load(dir string, logger *logrus.Logger) *Store {
	pipelines := make(map[string]pipeline.Pipeline, len(Modes))

	for _, mode := range Modes {
		path := ArtifactPath(dir, mode)
		entry := logger.WithFields(logrus.Fields{
			"mode": mode,
			"path": path,
		})

		p, err := pipeline.LoadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			entry.Warn("Model artifact not found, mode disabled")
			continue
		case err != nil:
			entry.WithError(err).Error("Failed to load model artifact, mode disabled")
			continue
		}

		if p.Info().Mode != mode {
			entry.WithField("artifact_mode", p.Info().Mode).Warn("Artifact was trained for a different mode")
		}
		pipelines[mode] = p
		entry.WithField("trees", p.Info().Trees).Info("Model loaded")
	}

	return New(pipelines)
}

// Lookup returns the pipeline for mode, if one is loaded
func (s *Store) Lookup(mode string) (pipeline.Pipeline, bool) {
	p, ok := s.pipelines[mode]
	return p, ok
}

// Loaded returns the sorted list of modes that have a pipeline
func (s *Store) Loaded() []string {
	modes := make([]string, 0, len(s.pipelines))
	for mode := range s.pipelines {
		modes = append(modes, mode)
	}
	sort.Strings(modes)
	return modes
}
