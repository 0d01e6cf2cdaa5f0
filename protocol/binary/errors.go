package binary

import "fmt"

// Stage names the layer of the decode in which an error occurred
// (spec.md §4.2 "Error surface").
type Stage string

const (
	stageMessage Stage = "message"
	stageStruct  Stage = "struct"
	stageFields  Stage = "fields"
	stageMap     Stage = "map"
	stageSet     Stage = "set"
	stageList    Stage = "list"
	stageBinary  Stage = "binary"
	stageBool    Stage = "bool"
)

// DecodeError is returned by Decode when the input cannot be a valid
// Thrift Binary Protocol stream. It is sticky: once returned, the Cont
// that produced it must be discarded (spec.md §4.2 invariant 3).
type DecodeError struct {
	Stage     Stage
	Subkind   string
	Offending interface{}

	// Depth is the frame-stack depth at the point of failure, a cheap
	// stand-in for spec.md's "decoder state snapshot" that's useful for
	// diagnosing adversarial or truncated input without retaining the
	// full (and potentially huge) partial value tree.
	Depth int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("thrift binary decode: %s/%s: offending value %v (depth %d)",
		e.Stage, e.Subkind, e.Offending, e.Depth)
}

func newMalformed(stage Stage, subkind string, offending interface{}) error {
	return &DecodeError{Stage: stage, Subkind: subkind, Offending: offending}
}

func withDepth(err error, depth int) error {
	if de, ok := err.(*DecodeError); ok {
		de.Depth = depth
	}
	return err
}
