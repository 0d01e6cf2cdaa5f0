package session

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/hibari/ubfthrift/bridge"
	"github.com/hibari/ubfthrift/contract"
	"github.com/hibari/ubfthrift/term"
	"github.com/hibari/ubfthrift/wire"
)

// envelopeName is the reserved message name the wrapper recognizes on
// both wrap and unwrap (spec.md §4.5).
const envelopeName = "$UBF"

// EventKind distinguishes the plain-value wrap/unwrap path from the
// event_in/event_out marker path (spec.md §4.5).
type EventKind int8

const (
	EventNone EventKind = iota
	EventIn
	EventOut
)

func (k EventKind) String() string {
	switch k {
	case EventIn:
		return "event_in"
	case EventOut:
		return "event_out"
	default:
		return "none"
	}
}

// Wrap builds the outbound $UBF envelope for a term value (spec.md §4.5
// rule 1). A plain value is wrapped as CALL (client) or REPLY (server);
// an event marker is always wrapped as ONEWAY regardless of Side.
func Wrap(logger *zap.Logger, v term.Term, role Role, event EventKind, registry contract.Registry) wire.Message {
	var msgType wire.MsgType
	switch {
	case event != EventNone:
		msgType = wire.Oneway
	case role.Side == Server:
		msgType = wire.Reply
	default:
		msgType = wire.Call
	}

	payload := bridge.Encode(v, registry)
	if logger != nil {
		logger.Debug("wrapping outbound term",
			zap.String("role", role.Side.String()),
			zap.String("framing", role.Framing.String()),
			zap.String("event", event.String()),
			zap.String("msgType", msgType.String()),
		)
	}
	return wire.Message{
		Name:    envelopeName,
		Type:    msgType,
		SeqID:   0,
		Payload: payload,
	}
}

// Unwrapped is the result of Unwrap: exactly one of Value or Message is
// meaningful, selected by Passthrough/Event.
type Unwrapped struct {
	// Passthrough is true when msg.Name was not the envelope name; the
	// original Message is returned untouched (spec.md §4.4 "For every
	// wire-level Thrift message NOT bearing a sentinel struct name, the
	// bridge is the identity").
	Passthrough bool
	Message     wire.Message

	// Event is EventNone for a plain CALL/REPLY envelope, or
	// EventIn/EventOut for a ONEWAY-wrapped marker; Value is the decoded
	// payload in both non-passthrough cases.
	Event EventKind
	Value term.Term
}

// Unwrap inspects an inbound Message against the envelope convention
// (spec.md §4.5 rule 2). When the message carries the envelope name, its
// type selects whether the payload is a plain value or an event marker;
// ONEWAY's event_in/event_out split isn't determined by the message
// itself (both directions wrap as ONEWAY on the way out), so it is
// resolved from the session's own Side: a server sees an inbound ONEWAY
// as event_in (data flowing into it), a client sees it as event_out.
func Unwrap(logger *zap.Logger, msg wire.Message, role Role, registry contract.Registry, atoms *term.AtomTable, safe bool) (Unwrapped, error) {
	if msg.Name != envelopeName {
		return Unwrapped{Passthrough: true, Message: msg}, nil
	}

	value, err := bridge.Decode(msg.Payload, registry, atoms, safe)
	if err != nil {
		return Unwrapped{}, fmt.Errorf("session: unwrap %s: %w", envelopeName, err)
	}

	var event EventKind
	switch msg.Type {
	case wire.Call, wire.Reply:
		event = EventNone
	case wire.Oneway:
		if role.Side == Server {
			event = EventIn
		} else {
			event = EventOut
		}
	default:
		return Unwrapped{}, fmt.Errorf("session: unwrap %s: unexpected message type %s", envelopeName, msg.Type)
	}

	if logger != nil {
		logger.Debug("unwrapped inbound envelope",
			zap.String("role", role.Side.String()),
			zap.String("event", event.String()),
			zap.String("msgType", msg.Type.String()),
		)
	}
	return Unwrapped{Event: event, Value: value}, nil
}
