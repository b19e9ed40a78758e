package cmd

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/coreset-bench/coreset-eval/eval"
	"github.com/coreset-bench/coreset-eval/eval/dataset"
)

var (
	// CLI flags for descriptor generation
	iterStart           int    // First iteration index
	iterEnd             int    // Last iteration index (defaults to iter-start)
	coresetSizeMultiple int    // m = multiple * k
	algorithmsFlag      string // Comma-separated algorithms, or "all"
	datasetsFlag        string // Comma-separated datasets, or "all"
	outputDir           string // Directory receiving descriptor files
	sweepConfigPath     string // Optional YAML overriding the k ranges
	genSeedPath         string // External random-seed generator program
	force               bool   // Rewrite descriptors that already exist
)

// genCmd writes the experiment descriptor files of a parameter sweep.
var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate experiment descriptor files",
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging()

		algorithms, err := parseAlgorithms(algorithmsFlag)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		datasets, err := parseDatasets(datasetsFlag)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		kRanges, err := loadKRanges(sweepConfigPath)
		if err != nil {
			logrus.Fatalf("Failed to load sweep config: %v", err)
		}

		written, err := eval.WriteSweep(eval.SweepConfig{
			IterStart:           iterStart,
			IterEnd:             iterEnd,
			CoresetSizeMultiple: coresetSizeMultiple,
			Algorithms:          algorithms,
			Datasets:            datasets,
			KRanges:             kRanges,
			OutputDir:           outputDir,
			Force:               force,
		}, eval.NewOracleSeedSource(genSeedPath))
		if err != nil {
			logrus.Fatalf("Sweep generation failed: %v", err)
		}
		logrus.Infof("Wrote %d descriptor file(s) to %s", len(written), outputDir)
	},
}

// parseAlgorithms expands the --algorithms flag, accepting the short
// aliases the suite has always used.
func parseAlgorithms(value string) ([]eval.Algorithm, error) {
	if value == "" || value == "all" {
		return []eval.Algorithm{eval.SensitivitySampling, eval.GroupSampling, eval.UniformSampling}, nil
	}
	var out []eval.Algorithm
	for _, s := range strings.Split(value, ",") {
		switch s {
		case "ss", "sensitivity", "sensitivity-sampling":
			out = append(out, eval.SensitivitySampling)
		case "gs", "group", "group-sampling":
			out = append(out, eval.GroupSampling)
		case "us", "uniform", "uniform-sampling":
			out = append(out, eval.UniformSampling)
		default:
			return nil, fmt.Errorf("unknown algorithm: %s", s)
		}
	}
	return out, nil
}

// parseDatasets expands the --datasets flag.
func parseDatasets(value string) ([]dataset.Name, error) {
	if value == "" || value == "all" {
		return []dataset.Name{dataset.Covertype, dataset.Census, dataset.Tower}, nil
	}
	var out []dataset.Name
	for _, s := range strings.Split(value, ",") {
		switch s {
		case "cov", "covertype":
			out = append(out, dataset.Covertype)
		case "cen", "census":
			out = append(out, dataset.Census)
		case "t", "to", "tower":
			out = append(out, dataset.Tower)
		default:
			return nil, fmt.Errorf("unknown dataset: %s", s)
		}
	}
	return out, nil
}

func init() {
	genCmd.Flags().IntVarP(&iterStart, "iter-start", "s", 0, "First iteration index (required)")
	genCmd.Flags().IntVarP(&iterEnd, "iter-end", "e", -1, "Last iteration index (defaults to --iter-start)")
	genCmd.Flags().IntVarP(&coresetSizeMultiple, "coreset-size-multiple", "c", 0, "Coreset size as a multiple of k (required)")
	genCmd.Flags().StringVarP(&algorithmsFlag, "algorithms", "a", "all", "Comma-separated algorithms (ss, gs, us) or \"all\"")
	genCmd.Flags().StringVarP(&datasetsFlag, "datasets", "d", "all", "Comma-separated datasets (cov, cen, tower) or \"all\"")
	genCmd.Flags().StringVar(&outputDir, "output-dir", "data/queue/ready", "Directory receiving descriptor files")
	genCmd.Flags().StringVar(&sweepConfigPath, "sweep-config", "", "YAML file overriding per-dataset k ranges")
	genCmd.Flags().StringVar(&genSeedPath, "seed-gen-path", "mt/bin/mt.exe", "Path to the external random-seed generator")
	genCmd.Flags().BoolVarP(&force, "force", "f", false, "Recreate files")
	for _, name := range []string{"iter-start", "coreset-size-multiple"} {
		if err := genCmd.MarkFlagRequired(name); err != nil {
			panic(err)
		}
	}

	rootCmd.AddCommand(genCmd)
}
