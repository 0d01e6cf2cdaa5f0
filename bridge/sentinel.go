// Package bridge implements the lossless, bidirectional, total mapping
// between the term algebra (package term) and a constrained subset of
// Thrift structs identified by sentinel names (spec.md §3.3, §4.4).
package bridge

import "github.com/hibari/ubfthrift/wire"

// Sentinel is the two-character discriminator that identifies which
// Term variant a bridge struct represents (spec.md §3.3, GLOSSARY
// "Sentinel struct").
type Sentinel string

const (
	SentinelBinary   Sentinel = "$B"
	SentinelNumber   Sentinel = "$N" // shared by Integer and Float; disambiguated by field type
	SentinelBool     Sentinel = "$O"
	SentinelAtom     Sentinel = "$A"
	SentinelString   Sentinel = "$S"
	SentinelList     Sentinel = "$L"
	SentinelTuple    Sentinel = "$T"
	SentinelPropList Sentinel = "$P"
	SentinelRecord   Sentinel = "$R"
)

// Field ids used for the single payload-carrying field of each sentinel
// struct. spec.md §3.3 describes every sentinel as "exactly one field
// with id=1" — but that collides for the variants that additionally
// share a wire field *type* ($B/$A/$S are all BINARY; $L/$T are both
// LIST of STRUCT), which would make the bridge non-injective and break
// the round-trip property spec.md §4.4 and §8 both require ("The bridge
// ... is injective: distinct Terms encode to distinct Structs"). Since
// original_source/ was unavailable to resolve how the source actually
// disambiguates these (see DESIGN.md), this implementation breaks the
// tie with the smallest possible change: bump the field id for the
// variants that would otherwise collide, leaving sentinel names, field
// types, and content shapes exactly as specified.
const (
	fieldIDPrimary   int16 = 1
	fieldIDAtom      int16 = 2 // $A: distinguishes from $B (both BINARY, id 1)
	fieldIDString    int16 = 3 // $S: distinguishes from $B and $A
	fieldIDTuple     int16 = 2 // $T: distinguishes from $L (both LIST of STRUCT, id 1)
)

// reservedRecordNameKey is the $R entry key holding the record's own
// name, encoded as an Atom term (spec.md §3.3).
const reservedRecordNameKey = ""

// sentinelOf identifies which bridge sentinel, if any, a decoded Struct
// represents, from its field shape (field count, id, wire type).
// Ordinary Thrift structs unrelated to the bridge virtually never match
// this shape; when one coincidentally does, the bridge's decode is still
// well-defined (it just interprets that struct as a term), matching
// spec.md §4.4's framing that only "wire-level Thrift message[s] NOT
// bearing a sentinel struct name" pass through untouched — within this
// module that test is approximated by shape, since struct names never
// survive the wire (spec.md §3.1).
func sentinelOf(s wire.Struct) (Sentinel, bool) {
	if len(s.Fields) != 1 {
		return "", false
	}
	f := s.Fields[0]
	switch {
	case f.ID == fieldIDPrimary && f.Data.Type == wire.TBINARY:
		return SentinelBinary, true
	case f.ID == fieldIDAtom && f.Data.Type == wire.TBINARY:
		return SentinelAtom, true
	case f.ID == fieldIDString && f.Data.Type == wire.TBINARY:
		return SentinelString, true
	case f.ID == fieldIDPrimary && f.Data.Type == wire.TI64:
		return SentinelNumber, true
	case f.ID == fieldIDPrimary && f.Data.Type == wire.TDOUBLE:
		return SentinelNumber, true
	case f.ID == fieldIDPrimary && f.Data.Type == wire.TBOOL:
		return SentinelBool, true
	case f.ID == fieldIDPrimary && f.Data.Type == wire.TLIST:
		return SentinelList, true
	case f.ID == fieldIDTuple && f.Data.Type == wire.TLIST:
		return SentinelTuple, true
	case f.ID == fieldIDPrimary && f.Data.Type == wire.TMAP:
		return sentinelOfMap(s, f)
	default:
		return "", false
	}
}

// sentinelOfMap tells apart $P (PropList: MAP of STRUCT->STRUCT) from $R
// (Record: MAP of BINARY->STRUCT) by key type, which the table in
// spec.md §3.3 already fixes distinctly per variant.
func sentinelOfMap(_ wire.Struct, f wire.Field) (Sentinel, bool) {
	m := f.Data.GetMap()
	switch m.KeyType {
	case wire.TSTRUCT:
		return SentinelPropList, true
	case wire.TBINARY:
		return SentinelRecord, true
	default:
		return "", false
	}
}
