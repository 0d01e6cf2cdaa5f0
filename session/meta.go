package session

// Metadata answers the three identification queries spec.md §6.2 lists
// as public API ("metadata queried by the session layer to route
// traffic to this codec") but doesn't assign a home module to; bundled
// here since the session package is what a driver collaborator consults
// to decide whether this codec applies to a connection at all.
type Metadata struct{}

// ProtoVersion identifies the wire protocol this codec implements.
func (Metadata) ProtoVersion() string { return "ubf-thrift-1" }

// ProtoDriver names the transport driver family this codec expects to
// be paired with.
func (Metadata) ProtoDriver() string { return "thrift-binary" }

// ProtoPacketType is always 0 for this codec (spec.md §6.2:
// "proto_packet_type() → 0").
func (Metadata) ProtoPacketType() int { return 0 }
