// Package wire defines the Thrift Binary Protocol's value tree: the
// untyped, wire-level representation of messages, structs, fields and
// containers that the protocol codec produces and consumes.
//
// Nothing in this package knows how to read or write bytes; see
// github.com/hibari/ubfthrift/protocol/binary for that. wire only describes
// the shape of a decoded value.
package wire

import "fmt"

// FieldType identifies the wire representation of a field's payload, a
// map/set/list element, or the scalar carried by a Value.
type FieldType int8

// Wire tag values, fixed by the Thrift Binary Protocol.
const (
	TSTOP   FieldType = 0
	TVOID   FieldType = 1
	TBOOL   FieldType = 2
	TBYTE   FieldType = 3
	TDOUBLE FieldType = 4
	TI08    FieldType = 5
	TI16    FieldType = 6
	TI32    FieldType = 8
	TU64    FieldType = 9
	TI64    FieldType = 10
	TBINARY FieldType = 11
	TSTRUCT FieldType = 12
	TMAP    FieldType = 13
	TSET    FieldType = 14
	TLIST   FieldType = 15
)

func (t FieldType) String() string {
	switch t {
	case TSTOP:
		return "stop"
	case TVOID:
		return "void"
	case TBOOL:
		return "bool"
	case TBYTE:
		return "byte"
	case TDOUBLE:
		return "double"
	case TI08:
		return "i08"
	case TI16:
		return "i16"
	case TI32:
		return "i32"
	case TU64:
		return "u64"
	case TI64:
		return "i64"
	case TBINARY:
		return "binary"
	case TSTRUCT:
		return "struct"
	case TMAP:
		return "map"
	case TSET:
		return "set"
	case TLIST:
		return "list"
	default:
		return fmt.Sprintf("FieldType(%d)", int8(t))
	}
}

// MsgType classifies a top-level Message.
type MsgType int8

const (
	Call      MsgType = 1
	Reply     MsgType = 2
	Exception MsgType = 3
	Oneway    MsgType = 4
)

func (t MsgType) String() string {
	switch t {
	case Call:
		return "Call"
	case Reply:
		return "Reply"
	case Exception:
		return "Exception"
	case Oneway:
		return "Oneway"
	default:
		return fmt.Sprintf("MsgType(%d)", int8(t))
	}
}

// ValidMsgType reports whether b is one of the four recognized message
// type tags.
func ValidMsgType(b int8) bool {
	switch MsgType(b) {
	case Call, Reply, Exception, Oneway:
		return true
	default:
		return false
	}
}
