package lexgraph

import "errors"

var (
	// ErrFileRead is returned when a document cannot be read or yields
	// less text than the minimum usable length.
	ErrFileRead = errors.New("lexgraph: document unreadable or too short")

	// ErrSchemaParse is returned when generative output does not fit the
	// contract record schema.
	ErrSchemaParse = errors.New("lexgraph: generative output failed schema parse")

	// ErrPersistence is returned when a graph store write fails.
	ErrPersistence = errors.New("lexgraph: graph store write failed")

	// ErrQueryGeneration is returned when a generated graph query is
	// malformed beyond repair.
	ErrQueryGeneration = errors.New("lexgraph: generated query malformed")

	// ErrQueryExecution is returned when the graph store rejects a query.
	ErrQueryExecution = errors.New("lexgraph: query execution failed")

	// ErrStatsTimeout is returned when the store statistics call exceeds
	// its time bound.
	ErrStatsTimeout = errors.New("lexgraph: store statistics timed out")
)
