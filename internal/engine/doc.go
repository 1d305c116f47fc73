// Package engine runs the spherical k-means refinement loop.
//
// An Engine validates its configuration, normalizes the document vectors,
// builds the contiguous initial partitioning and then alternates
// reassignment, concept recomputation and quality scoring until the quality
// improvement drops to the configured threshold.
//
// # Phases
//
//	Initializing → Partitioned → ConceptsComputed → QualityScored
//	  → (Reassigned → ConceptsComputed → QualityScored → ConvergenceCheck)*
//	  → Converged
//
// Stages are barrier synchronized: a stage starts only after the previous
// stage produced its complete output. Each iteration yields a fresh State.
// Cancellation is observed at iteration boundaries only.
package engine
