package binary

import "github.com/hibari/ubfthrift/wire"

const versionMask = 0xFFFF0000
const versionMagic = 0x80010000 // top 16 bits 0x8001, reserved byte 0x00

// DecodeInit starts a resumable decode. initial may be empty.
func DecodeInit(initial []byte, maxDepth int, maxContainerSize int32) *Cont {
	c := &Cont{
		buf:    append([]byte(nil), initial...),
		limits: limits{maxDepth: maxDepth, maxContainerSize: maxContainerSize},
	}
	return c
}

// Status is the outcome of a single Decode call.
type Status int

const (
	StatusDone Status = iota
	StatusNeedMore
	StatusError
)

// Result is what Decode returns: exactly one of Message (StatusDone),
// a continuation (StatusNeedMore), or Err (StatusError), per spec.md
// §6.2's Done|Error|Cont.
type Result struct {
	Status    Status
	Message   wire.Message
	Remainder []byte
	Cont      *Cont
	Err       error
}

// Decode feeds more bytes into cont (which may be nil to start a fresh
// decode with default resource limits) and runs the state machine as far
// as it can go without further input.
//
// Concatenating all input chunks supplied across a sequence of Decode
// calls yields the same result as a single-call Decode on the
// concatenated input (spec.md §4.2 invariant 1): every branch below
// depends only on the accumulated buffer and frame stack, never on how
// the bytes were chunked.
func Decode(more []byte, cont *Cont) Result {
	if cont == nil {
		cont = DecodeInit(nil, DefaultMaxDepth, DefaultMaxContainerSize)
	}
	if len(more) > 0 {
		cont.buf = append(cont.buf, more...)
	}
	return cont.run()
}

// Default resource bounds (spec.md §5: "Implementations MAY impose a
// maximum depth or container size to bound adversarial inputs").
const (
	DefaultMaxDepth         = 64
	DefaultMaxContainerSize = 1 << 20
)

func (c *Cont) run() Result {
	for {
		if !c.headerDone {
			name, mtype, seqid, rest, ok, err := parseMessageHeader(c.buf)
			if err != nil {
				return Result{Status: StatusError, Err: withDepth(err, 0)}
			}
			if !ok {
				return Result{Status: StatusNeedMore, Cont: c}
			}
			c.buf = rest
			c.name, c.msgType, c.seqID = name, mtype, seqid
			c.headerDone = true
			c.stack = append(c.stack, newStructFrame())
			continue
		}

		if len(c.stack) == 0 {
			// Unreachable: headerDone implies a root frame was pushed
			// and is only ever popped once, at which point run returns.
			panic("binary: decoder stack empty after header")
		}

		top := c.stack[len(c.stack)-1]
		result, value, err := stepFrame(c, top)
		if err != nil {
			return Result{Status: StatusError, Err: withDepth(err, c.depth())}
		}
		switch result {
		case stepNeedMore:
			return Result{Status: StatusNeedMore, Cont: c}
		case stepProgress:
			continue
		case stepDone:
			c.stack = c.stack[:len(c.stack)-1]
			if len(c.stack) == 0 {
				msg := wire.Message{
					Name:    c.name,
					Type:    c.msgType,
					SeqID:   c.seqID,
					Payload: value.GetStruct(),
				}
				return Result{Status: StatusDone, Message: msg, Remainder: c.buf}
			}
			if err := attach(c.stack[len(c.stack)-1], value); err != nil {
				return Result{Status: StatusError, Err: withDepth(err, c.depth())}
			}
			continue
		}
	}
}

// parseMessageHeader recognizes the versioned and legacy forms (spec.md
// §4.2, §6.1) and is decided strictly on the top 16 bits of the first
// 32-bit word, per spec.md §9's resolution of the versioned/legacy
// disambiguation open question: a legacy name length of 0 followed by a
// payload byte of 0x80 is not mistaken for a version marker, because the
// top 16 bits of the first 32-bit word (not just its first byte) are
// compared against 0x8001.
func parseMessageHeader(buf []byte) (name string, mtype wire.MsgType, seqid int32, rest []byte, ok bool, err error) {
	word, after, ok := readU32(buf)
	if !ok {
		return "", 0, 0, buf, false, nil
	}

	if word&versionMask == versionMagic {
		tt := int8(word & 0xFF)
		if !wire.ValidMsgType(tt) {
			return "", 0, 0, buf, true, newMalformed(stageMessage, "message-type", tt)
		}
		nameBytes, after2, ok, err := readBinary(after, 0, "method-name")
		if err != nil {
			return "", 0, 0, buf, true, err
		}
		if !ok {
			return "", 0, 0, buf, false, nil
		}
		seq, after3, ok := readI32(after2)
		if !ok {
			return "", 0, 0, buf, false, nil
		}
		return string(nameBytes), wire.MsgType(tt), seq, after3, true, nil
	}

	// Legacy: the word we just read *is* the name length.
	nameLen := int32(word)
	if nameLen < 0 {
		return "", 0, 0, buf, true, newMalformed(stageMessage, "method-name", nameLen)
	}
	if int64(len(after)) < int64(nameLen) {
		return "", 0, 0, buf, false, nil
	}
	nameBytes := after[:nameLen]
	after2 := after[nameLen:]

	tt, after3, ok := readI8(after2)
	if !ok {
		return "", 0, 0, buf, false, nil
	}
	if !wire.ValidMsgType(tt) {
		return "", 0, 0, buf, true, newMalformed(stageMessage, "message-type", tt)
	}
	seq, after4, ok := readI32(after3)
	if !ok {
		return "", 0, 0, buf, false, nil
	}
	return string(nameBytes), wire.MsgType(tt), seq, after4, true, nil
}

type stepResult int8

const (
	stepNeedMore stepResult = iota
	stepProgress
	stepDone
)

// stepFrame attempts to make one unit of progress on the top frame of
// c's stack, possibly pushing a new child frame (for a nested
// struct/map/set/list field or element) or popping the current frame
// when it completes.
func stepFrame(c *Cont, f *frame) (stepResult, wire.Value, error) {
	switch f.kind {
	case frameStruct:
		return stepStruct(c, f)
	case frameMap:
		return stepMap(c, f)
	case frameListSet:
		return stepListSet(c, f)
	default:
		panic("binary: unknown frame kind")
	}
}

func stepStruct(c *Cont, f *frame) (stepResult, wire.Value, error) {
	cur := c.buf

	tag, cur, ok := readI8(cur)
	if !ok {
		return stepNeedMore, wire.Value{}, nil
	}
	if wire.FieldType(tag) == wire.TSTOP {
		c.buf = cur
		return stepDone, wire.NewValueStruct(wire.Struct{Fields: f.fields}), nil
	}

	ft := wire.FieldType(tag)
	if !validFieldType(ft) {
		return 0, wire.Value{}, newMalformed(stageFields, "field-type", tag)
	}

	id, cur2, ok := readI16(cur)
	if !ok {
		return stepNeedMore, wire.Value{}, nil
	}

	if isCompound(ft) {
		c.buf = cur2
		f.pendingFieldID = id
		f.pendingFieldType = ft
		f.havePendingField = true
		if err := pushCompound(c, ft); err != nil {
			return 0, wire.Value{}, err
		}
		return stepProgress, wire.Value{}, nil
	}

	value, cur3, ok, err := readScalar(cur2, ft, c.limits.maxContainerSize)
	if err != nil {
		return 0, wire.Value{}, err
	}
	if !ok {
		return stepNeedMore, wire.Value{}, nil
	}
	c.buf = cur3
	f.fields = append(f.fields, wire.Field{ID: id, Data: value})
	return stepProgress, wire.Value{}, nil
}

func stepMap(c *Cont, f *frame) (stepResult, wire.Value, error) {
	if !f.headerRead {
		cur := c.buf
		kt, cur, ok := readI8(cur)
		if !ok {
			return stepNeedMore, wire.Value{}, nil
		}
		vt, cur, ok := readI8(cur)
		if !ok {
			return stepNeedMore, wire.Value{}, nil
		}
		size, cur, ok := readI32(cur)
		if !ok {
			return stepNeedMore, wire.Value{}, nil
		}
		if size < 0 {
			return 0, wire.Value{}, newMalformed(stageMap, "size", size)
		}
		if c.limits.maxContainerSize > 0 && size > c.limits.maxContainerSize {
			return 0, wire.Value{}, newMalformed(stageMap, "size-too-large", size)
		}
		if !validFieldType(wire.FieldType(kt)) {
			return 0, wire.Value{}, newMalformed(stageMap, "map-key-type", kt)
		}
		if !validFieldType(wire.FieldType(vt)) {
			return 0, wire.Value{}, newMalformed(stageMap, "map-value-type", vt)
		}
		c.buf = cur
		f.keyType = wire.FieldType(kt)
		f.valType = wire.FieldType(vt)
		f.remaining = size
		f.headerRead = true
		if f.remaining == 0 {
			return stepDone, wire.NewValueMap(wire.Map{KeyType: f.keyType, ValueType: f.valType, Entries: f.entries}), nil
		}
		return stepProgress, wire.Value{}, nil
	}

	if f.remaining == 0 {
		return stepDone, wire.NewValueMap(wire.Map{KeyType: f.keyType, ValueType: f.valType, Entries: f.entries}), nil
	}

	if !f.havePendingKey {
		if isCompound(f.keyType) {
			f.awaitingSlot = 1
			if err := pushCompound(c, f.keyType); err != nil {
				return 0, wire.Value{}, err
			}
			return stepProgress, wire.Value{}, nil
		}
		key, rest, ok, err := readScalar(c.buf, f.keyType, c.limits.maxContainerSize)
		if err != nil {
			return 0, wire.Value{}, err
		}
		if !ok {
			return stepNeedMore, wire.Value{}, nil
		}
		c.buf = rest
		f.pendingKey = key
		f.havePendingKey = true
		return stepProgress, wire.Value{}, nil
	}

	// Have a key; need the value.
	if isCompound(f.valType) {
		f.awaitingSlot = 2
		if err := pushCompound(c, f.valType); err != nil {
			return 0, wire.Value{}, err
		}
		return stepProgress, wire.Value{}, nil
	}
	val, rest, ok, err := readScalar(c.buf, f.valType, c.limits.maxContainerSize)
	if err != nil {
		return 0, wire.Value{}, err
	}
	if !ok {
		return stepNeedMore, wire.Value{}, nil
	}
	c.buf = rest
	f.entries = append(f.entries, wire.MapEntry{Key: f.pendingKey, Value: val})
	f.havePendingKey = false
	f.pendingKey = wire.Value{}
	f.remaining--
	if f.remaining == 0 {
		return stepDone, wire.NewValueMap(wire.Map{KeyType: f.keyType, ValueType: f.valType, Entries: f.entries}), nil
	}
	return stepProgress, wire.Value{}, nil
}

func stepListSet(c *Cont, f *frame) (stepResult, wire.Value, error) {
	stage := stageList
	if f.isSet {
		stage = stageSet
	}

	if !f.headerRead {
		cur := c.buf
		et, cur, ok := readI8(cur)
		if !ok {
			return stepNeedMore, wire.Value{}, nil
		}
		size, cur, ok := readI32(cur)
		if !ok {
			return stepNeedMore, wire.Value{}, nil
		}
		if size < 0 {
			return 0, wire.Value{}, newMalformed(stage, "size", size)
		}
		if c.limits.maxContainerSize > 0 && size > c.limits.maxContainerSize {
			return 0, wire.Value{}, newMalformed(stage, "size-too-large", size)
		}
		if !validFieldType(wire.FieldType(et)) {
			return 0, wire.Value{}, newMalformed(stage, "elem-type", et)
		}
		c.buf = cur
		f.elemType = wire.FieldType(et)
		f.remaining = size
		f.headerRead = true
		if f.remaining == 0 {
			return stepDone, finishListSet(f), nil
		}
		return stepProgress, wire.Value{}, nil
	}

	if f.remaining == 0 {
		return stepDone, finishListSet(f), nil
	}

	if isCompound(f.elemType) {
		if err := pushCompound(c, f.elemType); err != nil {
			return 0, wire.Value{}, err
		}
		return stepProgress, wire.Value{}, nil
	}
	val, rest, ok, err := readScalar(c.buf, f.elemType, c.limits.maxContainerSize)
	if err != nil {
		return 0, wire.Value{}, err
	}
	if !ok {
		return stepNeedMore, wire.Value{}, nil
	}
	c.buf = rest
	f.values = append(f.values, val)
	f.remaining--
	if f.remaining == 0 {
		return stepDone, finishListSet(f), nil
	}
	return stepProgress, wire.Value{}, nil
}

func finishListSet(f *frame) wire.Value {
	if f.isSet {
		return wire.NewValueSet(wire.Set{ValueType: f.elemType, Values: f.values})
	}
	return wire.NewValueList(wire.List{ValueType: f.elemType, Values: f.values})
}

// attach delivers a completed child value into the frame that was
// waiting for it: a struct's pending field, or a map/list/set's next
// slot.
func attach(parent *frame, value wire.Value) error {
	switch parent.kind {
	case frameStruct:
		if !parent.havePendingField {
			panic("binary: attach onto struct frame with no pending field")
		}
		parent.fields = append(parent.fields, wire.Field{ID: parent.pendingFieldID, Data: value})
		parent.havePendingField = false
		return nil
	case frameMap:
		switch parent.awaitingSlot {
		case 1:
			parent.pendingKey = value
			parent.havePendingKey = true
			parent.awaitingSlot = 0
			return nil
		case 2:
			parent.entries = append(parent.entries, wire.MapEntry{Key: parent.pendingKey, Value: value})
			parent.havePendingKey = false
			parent.pendingKey = wire.Value{}
			parent.remaining--
			parent.awaitingSlot = 0
			return nil
		default:
			panic("binary: attach onto map frame with no pending slot")
		}
	case frameListSet:
		parent.values = append(parent.values, value)
		parent.remaining--
		return nil
	default:
		panic("binary: attach onto unknown frame kind")
	}
}

func pushCompound(c *Cont, ft wire.FieldType) error {
	if c.limits.maxDepth > 0 && c.depth() >= c.limits.maxDepth {
		return newMalformed(stageStruct, "max-depth", c.depth())
	}
	switch ft {
	case wire.TSTRUCT:
		c.stack = append(c.stack, newStructFrame())
	case wire.TMAP:
		c.stack = append(c.stack, &frame{kind: frameMap})
	case wire.TLIST:
		c.stack = append(c.stack, &frame{kind: frameListSet, isSet: false})
	case wire.TSET:
		c.stack = append(c.stack, &frame{kind: frameListSet, isSet: true})
	default:
		panic("binary: pushCompound on non-compound type")
	}
	return nil
}

func isCompound(ft wire.FieldType) bool {
	switch ft {
	case wire.TSTRUCT, wire.TMAP, wire.TSET, wire.TLIST:
		return true
	default:
		return false
	}
}

func validFieldType(ft wire.FieldType) bool {
	switch ft {
	case wire.TBOOL, wire.TBYTE, wire.TDOUBLE, wire.TI08, wire.TI16, wire.TI32,
		wire.TU64, wire.TI64, wire.TBINARY, wire.TSTRUCT, wire.TMAP, wire.TSET, wire.TLIST:
		return true
	default:
		return false
	}
}

// readScalar reads the payload for a non-compound field type. Note BYTE
// and I08 share a wire representation (a single signed byte) but are
// surfaced differently: BYTE as a length-1 byte string, I08 as a signed
// integer (spec.md §4.2 "tie-breaks").
func readScalar(buf []byte, ft wire.FieldType, maxBinary int32) (wire.Value, []byte, bool, error) {
	switch ft {
	case wire.TBOOL:
		b, rest, ok, err := readBool(buf)
		if err != nil || !ok {
			return wire.Value{}, buf, ok, err
		}
		return wire.NewValueBool(b), rest, true, nil
	case wire.TBYTE:
		n, rest, ok := readI8(buf)
		if !ok {
			return wire.Value{}, buf, false, nil
		}
		return wire.NewValueByte(byte(n)), rest, true, nil
	case wire.TI08:
		n, rest, ok := readI8(buf)
		if !ok {
			return wire.Value{}, buf, false, nil
		}
		return wire.NewValueI08(n), rest, true, nil
	case wire.TI16:
		n, rest, ok := readI16(buf)
		if !ok {
			return wire.Value{}, buf, false, nil
		}
		return wire.NewValueI16(n), rest, true, nil
	case wire.TI32:
		n, rest, ok := readI32(buf)
		if !ok {
			return wire.Value{}, buf, false, nil
		}
		return wire.NewValueI32(n), rest, true, nil
	case wire.TU64:
		n, rest, ok := readU64(buf)
		if !ok {
			return wire.Value{}, buf, false, nil
		}
		return wire.NewValueU64(n), rest, true, nil
	case wire.TI64:
		n, rest, ok := readI64(buf)
		if !ok {
			return wire.Value{}, buf, false, nil
		}
		return wire.NewValueI64(n), rest, true, nil
	case wire.TDOUBLE:
		f, rest, ok := readDouble(buf)
		if !ok {
			return wire.Value{}, buf, false, nil
		}
		return wire.NewValueDouble(f), rest, true, nil
	case wire.TBINARY:
		b, rest, ok, err := readBinary(buf, maxBinary, "binary")
		if err != nil || !ok {
			return wire.Value{}, buf, ok, err
		}
		return wire.NewValueBinary(append([]byte(nil), b...)), rest, true, nil
	default:
		panic("binary: readScalar on compound type")
	}
}
