// Command inspect prints the metadata and the most important features of a
// trained pipeline artifact.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"housing/server/internal/pipeline"
	"housing/server/internal/store"

	"github.com/sirupsen/logrus"
)

func main() {
	mode := flag.String("mode", store.ModeSale, "mode whose artifact to inspect (sale or rent)")
	dir := flag.String("dir", "models", "directory holding the model artifacts")
	top := flag.Int("top", 20, "number of features to list, negative for all")
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logger.SetOutput(os.Stderr)

	path := store.ArtifactPath(*dir, *mode)
	p, err := pipeline.LoadFile(path)
	if err != nil {
		logger.WithError(err).WithField("path", path).Fatal("Failed to load model artifact")
	}

	if err := report(os.Stdout, p, *top); err != nil {
		logger.WithError(err).Fatal("Failed to inspect model")
	}
}

func report(out io.Writer, p *pipeline.ForestPipeline, top int) error {
	info := p.Info()
	fmt.Fprintf(out, "Format:     %s\n", info.Format)
	fmt.Fprintf(out, "Mode:       %s\n", info.Mode)
	if info.TrainedAt != "" {
		fmt.Fprintf(out, "Trained at: %s\n", info.TrainedAt)
	}
	fmt.Fprintf(out, "Trees:      %d\n", info.Trees)
	fmt.Fprintf(out, "Features:   %d\n", info.Features)
	if info.Metrics != nil {
		fmt.Fprintf(out, "MAE: %.2f  RMSE: %.2f  R2: %.4f\n", info.Metrics.MAE, info.Metrics.RMSE, info.Metrics.R2)
	}

	importances, err := p.FeatureImportances()
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FEATURE\tIMPORTANCE")
	for _, fi := range pipeline.TopFeatures(importances, top) {
		fmt.Fprintf(w, "%s\t%.6f\n", fi.Feature, fi.Importance)
	}
	return w.Flush()
}
