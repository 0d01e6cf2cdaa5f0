// Package protocol exposes the Thrift encoding in use as a small,
// swappable interface, the way go.uber.org/thriftrw/protocol.Protocol
// lets yarpc's thrift encoding choose Binary without its callers naming
// the concrete codec (see encoding/thrift/outbound.go in the teacher
// repo: "Protocol protocol.Protocol // Defaults to Binary if nil").
// Only one implementation exists here, Binary, because spec.md's
// Non-goals exclude alternate Thrift encodings (compact, JSON). Its one
// caller in this module is cmd/ubfthriftcat.
package protocol

import (
	"github.com/hibari/ubfthrift/protocol/binary"
	"github.com/hibari/ubfthrift/wire"
)

// Protocol encodes and incrementally decodes wire.Message values.
type Protocol interface {
	// EncodeMessage serializes m. versioned selects the v1 header over
	// the legacy one (spec.md §4.3, §6.1).
	EncodeMessage(m wire.Message, versioned bool) ([]byte, error)

	// DecodeInit begins a resumable decode.
	DecodeInit(initial []byte) *binary.Cont

	// Decode resumes cont (nil starts a fresh decode) with more input.
	Decode(more []byte, cont *binary.Cont) binary.Result
}

// Binary is the Thrift Binary Protocol (spec.md §6.1).
type Binary struct {
	// MaxDepth bounds the decoder's frame-stack depth (spec.md §5). Zero
	// selects binary.DefaultMaxDepth.
	MaxDepth int

	// MaxContainerSize bounds map/set/list sizes and binary field
	// lengths (spec.md §4.2 "Container size policy"). Zero selects
	// binary.DefaultMaxContainerSize.
	MaxContainerSize int32
}

// DefaultBinary is a Binary protocol with the default resource bounds.
var DefaultBinary = Binary{}

func (b Binary) maxDepth() int {
	if b.MaxDepth > 0 {
		return b.MaxDepth
	}
	return binary.DefaultMaxDepth
}

func (b Binary) maxContainerSize() int32 {
	if b.MaxContainerSize > 0 {
		return b.MaxContainerSize
	}
	return binary.DefaultMaxContainerSize
}

func (b Binary) EncodeMessage(m wire.Message, versioned bool) ([]byte, error) {
	return binary.EncodeMessage(m, versioned)
}

func (b Binary) DecodeInit(initial []byte) *binary.Cont {
	return binary.DecodeInit(initial, b.maxDepth(), b.maxContainerSize())
}

func (b Binary) Decode(more []byte, cont *binary.Cont) binary.Result {
	if cont == nil {
		cont = b.DecodeInit(nil)
	}
	return binary.Decode(more, cont)
}

// DecodeOneShot decodes buf in a single call, equivalent to
// DecodeInit(nil) followed by Decode(buf, cont) (spec.md §6.2's
// single-shot decode(bytes, contract_ref) form, at the wire-value
// layer).
func (b Binary) DecodeOneShot(buf []byte) binary.Result {
	return b.Decode(buf, b.DecodeInit(nil))
}
