package binary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hibari/ubfthrift/wire"
)

func TestEncodeDecodeRoundTripLegacy(t *testing.T) {
	msg := wire.Message{
		Name:  "echo",
		Type:  wire.Call,
		SeqID: 7,
		Payload: wire.Struct{Fields: []wire.Field{
			{ID: 1, Data: wire.NewValueBinary([]byte("hello"))},
			{ID: 2, Data: wire.NewValueI32(42)},
		}},
	}

	buf, err := EncodeMessage(msg, false)
	require.NoError(t, err)

	result := Decode(buf, nil)
	require.Equal(t, StatusDone, result.Status)
	assert.Empty(t, result.Remainder)
	assert.Equal(t, msg.Name, result.Message.Name)
	assert.Equal(t, msg.Type, result.Message.Type)
	assert.Equal(t, msg.SeqID, result.Message.SeqID)
	assert.Equal(t, msg.Payload, result.Message.Payload)
}

func TestEncodeDecodeRoundTripVersioned(t *testing.T) {
	msg := wire.Message{
		Name:  "getValue",
		Type:  wire.Reply,
		SeqID: 99,
		Payload: wire.Struct{Fields: []wire.Field{
			{ID: 1, Data: wire.NewValueDouble(2.5)},
		}},
	}

	buf, err := EncodeMessage(msg, true)
	require.NoError(t, err)
	require.True(t, buf[0] == 0x80 && buf[1] == 0x01)

	result := Decode(buf, nil)
	require.Equal(t, StatusDone, result.Status)
	assert.Equal(t, msg, result.Message)
}

func TestEncodeDecodeRoundTripNestedContainers(t *testing.T) {
	msg := wire.Message{
		Name:  "",
		Type:  wire.Oneway,
		SeqID: 0,
		Payload: wire.Struct{Fields: []wire.Field{
			{ID: 1, Data: wire.NewValueList(wire.List{
				ValueType: wire.TI32,
				Values:    []wire.Value{wire.NewValueI32(1), wire.NewValueI32(2), wire.NewValueI32(3)},
			})},
			{ID: 2, Data: wire.NewValueMap(wire.Map{
				KeyType:   wire.TBINARY,
				ValueType: wire.TSTRUCT,
				Entries: []wire.MapEntry{
					{
						Key: wire.NewValueBinary([]byte("k")),
						Value: wire.NewValueStruct(wire.Struct{Fields: []wire.Field{
							{ID: 1, Data: wire.NewValueBool(true)},
						}}),
					},
				},
			})},
			{ID: 3, Data: wire.NewValueSet(wire.Set{
				ValueType: wire.TBYTE,
				Values:    []wire.Value{wire.NewValueByte(0xAA)},
			})},
		}},
	}

	buf, err := EncodeMessage(msg, false)
	require.NoError(t, err)

	result := Decode(buf, nil)
	require.Equal(t, StatusDone, result.Status)
	assert.Equal(t, msg, result.Message)
	assert.Empty(t, result.Remainder)
}

func TestEncodeUnknownFieldTypeFails(t *testing.T) {
	msg := wire.Message{
		Type: wire.Call,
		Payload: wire.Struct{Fields: []wire.Field{
			{ID: 1, Data: wire.Value{Type: wire.FieldType(99)}},
		}},
	}
	_, err := EncodeMessage(msg, false)
	require.Error(t, err)

	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, stageFields, de.Stage)
}

func TestEncodeRejectsInvalidMsgType(t *testing.T) {
	msg := wire.Message{Type: wire.MsgType(0)}
	_, err := EncodeMessage(msg, false)
	require.Error(t, err)

	_, err = EncodeMessage(msg, true)
	require.Error(t, err)
}

func TestDecodePrefixClosureAfterEncode(t *testing.T) {
	msg := wire.Message{Name: "m", Type: wire.Call, SeqID: 1}
	buf, err := EncodeMessage(msg, false)
	require.NoError(t, err)

	trailer := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	result := Decode(append(append([]byte(nil), buf...), trailer...), nil)
	require.Equal(t, StatusDone, result.Status)
	assert.Equal(t, trailer, result.Remainder)
}
