package binary

import "github.com/hibari/ubfthrift/wire"

// Cont is the opaque suspension the resumable decoder returns when it
// runs out of input mid-construct (spec.md §4.2, §4.6). It owns the
// unconsumed tail of the input and the stack of in-progress parent
// constructs (struct field lists, map/list/set element runs).
//
// A Cont must not be resumed concurrently from two goroutines (spec.md
// §5): it is single-owner, like a cursor. Discard it after any error.
//
// Design note on why no byte-level sub-state is needed within a frame:
// every read in primitives.go either consumes its full requirement or
// consumes nothing at all. A frame's step() always starts a fresh
// attempt to make progress using only the frame's already-committed
// state (pending field id/type, entries collected so far, remaining
// count) plus whatever is in the buffer; if the attempt falls short, the
// buffer is left untouched, so retrying on the next Decode call with a
// longer buffer is always correct. This is the "explicit frame plus
// re-attempt" trampoline spec.md §9 asks for, without the resume-the-
// wrong-width-decoder class of bug the source exhibited (each read
// helper names the exact width it resumes; there is no sibling function
// to confuse it with).
type Cont struct {
	buf   []byte
	stack []*frame

	headerDone bool
	name       string
	msgType    wire.MsgType
	seqID      int32

	limits limits
}

type limits struct {
	maxDepth         int
	maxContainerSize int32
}

// frameKind discriminates the parent-frame kinds of spec.md §4.6's state
// machine: WantStructFields, WantMapEntries, WantListElems/WantSetElems.
// WantMessageHeader and WantFieldPayload(type) don't need their own
// frame: the former is handled before any frame exists (see decoder.go's
// run), and the latter is a few bytes of state (pendingFieldID/Type)
// carried on the struct frame that is waiting for a child to complete.
type frameKind int8

const (
	frameStruct frameKind = iota
	frameMap
	frameListSet
)

type frame struct {
	kind frameKind

	// frameStruct
	fields           []wire.Field
	havePendingField bool
	pendingFieldID   int16
	pendingFieldType wire.FieldType

	// frameMap
	headerRead     bool
	keyType        wire.FieldType
	valType        wire.FieldType
	remaining      int32
	entries        []wire.MapEntry
	havePendingKey bool
	pendingKey     wire.Value
	// awaitingSlot is set just before pushing a compound key or value
	// frame, so attach() knows which half of the entry the completed
	// child belongs to: 1 = key, 2 = value, 0 = not awaiting a child.
	awaitingSlot int8

	// frameListSet
	isSet    bool
	elemType wire.FieldType
	values   []wire.Value
}

func newStructFrame() *frame {
	return &frame{kind: frameStruct}
}

// depth reports the current frame-stack depth, used both for the
// MaxDepth resource bound and for DecodeError's state snapshot.
func (c *Cont) depth() int { return len(c.stack) }
