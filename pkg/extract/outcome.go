package extract

import "lexgraph/pkg/contract"

// OutcomeKind discriminates how a generative extraction ended.
type OutcomeKind int

const (
	// OutcomeOk means the model returned a record that fit the schema.
	OutcomeOk OutcomeKind = iota
	// OutcomeSchemaError means the model responded but its output could
	// not be parsed into the record schema.
	OutcomeSchemaError
	// OutcomeCallError means the model call itself failed.
	OutcomeCallError
)

// Outcome is the result of a generative extraction attempt. Exactly one of
// Record (for OutcomeOk) or Err (for the error kinds) is set. Callers switch
// on Kind rather than inspecting errors.
type Outcome struct {
	Kind   OutcomeKind
	Record *contract.Record
	Err    error
}

// Ok wraps a successfully extracted record.
func Ok(rec *contract.Record) Outcome {
	return Outcome{Kind: OutcomeOk, Record: rec}
}

// SchemaError marks a response that failed schema parsing.
func SchemaError(err error) Outcome {
	return Outcome{Kind: OutcomeSchemaError, Err: err}
}

// CallError marks a failed model call.
func CallError(err error) Outcome {
	return Outcome{Kind: OutcomeCallError, Err: err}
}
