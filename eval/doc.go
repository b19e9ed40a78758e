// Package eval implements the coreset cost-evaluation pipeline.
//
// # Reading Guide
//
// Start with these three files to understand the pipeline:
//   - scanner.go: discovery of experiment directories with unprocessed results
//   - centers.go: recovery of a candidate solution from a coreset via the
//     external k-means oracle, with bounded retry on numerical failure
//   - pipeline.go: the per-directory orchestration and idempotent artifact caching
//
// # Architecture
//
// Every expensive artifact (decompressed result file, centers file, the two
// cost files, the distortion file) is cached on disk inside the experiment's
// own directory; presence of the file is sufficient proof that the
// computation need not be repeated. A resumed run therefore picks up exactly
// where the previous one stopped.
//
// External collaborators are modeled as small interfaces:
//   - CentersOracle: the non-deterministic center-computation program
//   - SeedSource: the random-seed generator program
//
// Dataset loading and caching live in the eval/dataset sub-package.
package eval
