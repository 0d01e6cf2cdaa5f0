package wire

// Message is a complete top-level Thrift message (spec.md §3.1): a method
// name, a message type, a sequence id and a payload Struct.
type Message struct {
	Name    string
	Type    MsgType
	SeqID   int32
	Payload Struct
}

// EnvelopeType is an alias of MsgType, used by Envelope to name "the
// kind of thing wrapping a payload" rather than "the wire tag of a
// decoded message"; the two are the same type.
type EnvelopeType = MsgType

// Envelope is a view of a Message whose payload is held as a Value
// (holding a Struct) next to the identifying metadata that otherwise
// lives in a Message's header.
type Envelope struct {
	Name  string
	Type  EnvelopeType
	SeqID int32
	Value Value
}

// ToMessage folds an Envelope whose Value is a Struct back into a
// Message. If the Envelope's Value does not hold TSTRUCT, the resulting
// Payload is an empty Struct.
func (e Envelope) ToMessage() Message {
	return Message{
		Name:    e.Name,
		Type:    e.Type,
		SeqID:   e.SeqID,
		Payload: e.Value.GetStruct(),
	}
}

// Envelope extracts the Envelope view of a Message.
func (m Message) Envelope() Envelope {
	return Envelope{
		Name:  m.Name,
		Type:  m.Type,
		SeqID: m.SeqID,
		Value: NewValueStruct(m.Payload),
	}
}
