package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/coreset-bench/coreset-eval/eval"
	"github.com/coreset-bench/coreset-eval/eval/dataset"
)

var (
	// CLI flags for the costs pipeline
	resultsDir  string // Root directory scanned for experiment results
	kmeansPath  string // External center-computation program
	seedGenPath string // External random-seed generator program
	dataDir     string // Directory holding the full benchmark datasets
	retries     int    // Oracle retry budget per coreset
	strict      bool   // Abort the batch on the first per-directory failure
)

// costsCmd runs the cost-evaluation pipeline over a results tree.
var costsCmd = &cobra.Command{
	Use:   "costs",
	Short: "Compute coreset and real costs for unprocessed experiment results",
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging()

		pipeline := &eval.Pipeline{
			Recovery: &eval.CenterRecovery{
				Oracle:  eval.NewKMeansOracle(kmeansPath),
				Seeds:   eval.NewOracleSeedSource(seedGenPath),
				Retries: retries,
			},
			Datasets: dataset.NewCache(),
			DataRoot: dataDir,
			Strict:   strict,
		}

		failures, err := pipeline.Run(resultsDir)
		if err != nil {
			logrus.Fatalf("Pipeline aborted: %v", err)
		}
		for _, f := range failures {
			logrus.Warnf("Failed: %s: %v", f.ResultPath, f.Err)
		}
		if len(failures) > 0 {
			logrus.Warnf("%d experiment(s) failed; see warnings above.", len(failures))
		}
	},
}

func init() {
	costsCmd.Flags().StringVarP(&resultsDir, "results-dir", "r", "", "Root directory scanned for experiment results (required)")
	costsCmd.Flags().StringVar(&kmeansPath, "kmeans-path", "kmeans/bin/kmeans.exe", "Path to the external k-means++ program")
	costsCmd.Flags().StringVar(&seedGenPath, "seed-gen-path", "mt/bin/mt.exe", "Path to the external random-seed generator")
	costsCmd.Flags().StringVar(&dataDir, "data-dir", "data/input", "Directory holding the full benchmark datasets")
	costsCmd.Flags().IntVar(&retries, "retries", eval.DefaultRetryBudget, "Center recovery attempts before giving up on an experiment")
	costsCmd.Flags().BoolVar(&strict, "strict", false, "Abort the whole batch on the first per-directory failure")
	if err := costsCmd.MarkFlagRequired("results-dir"); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(costsCmd)
}
