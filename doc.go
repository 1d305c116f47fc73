// Package spkmeans clusters document vectors with the spherical k-means
// algorithm.
//
// Documents are rows of a document-term matrix. Each row is normalized to unit
// length, the collection is split into k contiguous partitions, and the
// partitions are refined by moving every document to the cluster whose concept
// vector (the normalized sum of its members) is most cosine-similar. The loop
// stops once the total quality, the sum of every partition's member sum dotted
// with its concept vector, improves by no more than a threshold.
//
// # Quick Start
//
//	m, _ := matrix.Decode(file)
//	res, err := spkmeans.Run(ctx, m, 4)
//	if err != nil { ... }
//	for i, docs := range res.Partitions {
//	    fmt.Println(i, docs)
//	}
//
// # Options
//
//	res, err := spkmeans.Run(ctx, m, 4,
//	    spkmeans.WithConvergenceThreshold(1e-4),
//	    spkmeans.WithMaxIterations(50),
//	    spkmeans.WithWorkers(8),
//	    spkmeans.WithLogger(spkmeans.NewJSONLogger(slog.LevelInfo)),
//	)
//
// # Stop Policy
//
// The loop stops when the quality delta is at or below the threshold. A
// negative delta also satisfies that test, so under the default
// StopOnNonImprovement policy a run that regressed ends like a converged run;
// Result.Regressed tells them apart. FailOnRegression turns a regression into
// a *QualityRegressionError instead.
//
// # Empty Partitions
//
// A partition that loses all its members has no concept vector. By default
// the run aborts with a *DegenerateClusterError. WithEmptyPolicy(KeepPreviousConcept)
// keeps the partition's previous concept vector so it can regain members.
//
// # Input Mutation
//
// Run normalizes the rows of the matrix in place and otherwise only reads it.
//
// # Concurrency
//
// Assignment and concept computation run on up to Workers goroutines per
// stage. Results do not depend on the worker count. Cancellation is checked
// at iteration boundaries.
package spkmeans
