package binary

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hibari/ubfthrift/wire"
)

func hexBytes(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(strings.ReplaceAll(s, " ", ""))
	require.NoError(t, err)
	return b
}

func TestDecodeEmptyLegacyCall(t *testing.T) {
	buf := hexBytes(t, "00 00 00 00 01 00 00 00 01 00")

	result := Decode(buf, nil)
	require.Equal(t, StatusDone, result.Status)
	assert.Equal(t, wire.Message{
		Name:  "",
		Type:  wire.Call,
		SeqID: 1,
	}, result.Message)
	assert.Empty(t, result.Remainder)
}

func TestDecodeVersionedReplyWithI32Field(t *testing.T) {
	buf := hexBytes(t, "80 01 00 02 00 00 00 00 00 00 00 07 08 00 01 00 00 00 2A 00")

	result := Decode(buf, nil)
	require.Equal(t, StatusDone, result.Status)
	require.Equal(t, wire.Reply, result.Message.Type)
	assert.Equal(t, int32(7), result.Message.SeqID)
	require.Len(t, result.Message.Payload.Fields, 1)
	f := result.Message.Payload.Fields[0]
	assert.Equal(t, int16(1), f.ID)
	assert.Equal(t, wire.TI32, f.Data.Type)
	assert.Equal(t, int32(42), f.Data.GetI32())
	assert.Empty(t, result.Remainder)
}

func TestDecodeStreamingFragmentationMatchesSingleShot(t *testing.T) {
	buf := hexBytes(t, "80 01 00 02 00 00 00 00 00 00 00 07 08 00 01 00 00 00 2A 00")

	whole := Decode(buf, nil)
	require.Equal(t, StatusDone, whole.Status)

	chunks := [][]byte{buf[:3], buf[3:11], buf[11:]}
	var cont *Cont
	var result Result
	for _, chunk := range chunks {
		result = Decode(chunk, cont)
		if result.Status == StatusNeedMore {
			cont = result.Cont
		}
	}
	require.Equal(t, StatusDone, result.Status)
	assert.Equal(t, whole.Message, result.Message)
	assert.Equal(t, whole.Remainder, result.Remainder)
}

func TestDecodeArbitraryChunkPartitionsAgree(t *testing.T) {
	buf := hexBytes(t, "80 01 00 02 00 00 00 00 00 00 00 07 08 00 01 00 00 00 2A 00")
	want := Decode(buf, nil)
	require.Equal(t, StatusDone, want.Status)

	for chunkSize := 1; chunkSize <= len(buf); chunkSize++ {
		var cont *Cont
		var result Result
		for i := 0; i < len(buf); i += chunkSize {
			end := i + chunkSize
			if end > len(buf) {
				end = len(buf)
			}
			result = Decode(buf[i:end], cont)
			cont = result.Cont
		}
		require.Equal(t, StatusDone, result.Status, "chunk size %d", chunkSize)
		assert.Equal(t, want.Message, result.Message, "chunk size %d", chunkSize)
	}
}

func TestDecodeBoolInvalidByte(t *testing.T) {
	// Legacy empty-name CALL, seqid=1, one struct field of type BOOL id=1
	// whose payload byte is 0x02 (neither 0 nor 1).
	buf := hexBytes(t, "00 00 00 00 01 00 00 00 01 02 00 01 02")

	result := Decode(buf, nil)
	require.Equal(t, StatusError, result.Status)

	var de *DecodeError
	require.ErrorAs(t, result.Err, &de)
	assert.Equal(t, stageBool, de.Stage)
	assert.Equal(t, byte(2), de.Offending)
}

func TestDecodeNegativeLengthIsFatal(t *testing.T) {
	buf := hexBytes(t, "FF FF FF FF")
	result := Decode(buf, nil)
	require.Equal(t, StatusError, result.Status)

	var de *DecodeError
	require.ErrorAs(t, result.Err, &de)
	assert.Equal(t, stageMessage, de.Stage)
}

func TestDecodeUnknownFieldTypeNeverPanics(t *testing.T) {
	// Legacy empty-name CALL, seqid=1, a field tag of 0x7F (not a valid
	// FieldType).
	buf := hexBytes(t, "00 00 00 00 01 00 00 00 01 7F 00 01")

	require.NotPanics(t, func() {
		result := Decode(buf, nil)
		require.Equal(t, StatusError, result.Status)
		var de *DecodeError
		require.ErrorAs(t, result.Err, &de)
		assert.Equal(t, stageFields, de.Stage)
	})
}

func TestDecodePrefixClosure(t *testing.T) {
	buf := hexBytes(t, "00 00 00 00 01 00 00 00 01 00")
	trailer := []byte{0xAA, 0xBB}
	result := Decode(append(append([]byte(nil), buf...), trailer...), nil)
	require.Equal(t, StatusDone, result.Status)
	assert.Equal(t, trailer, result.Remainder)
}

func TestDecodeRespectsMaxDepth(t *testing.T) {
	c := DecodeInit(nil, 2, DefaultMaxContainerSize)
	// Legacy empty-name CALL, seqid=0, then a field of type STRUCT id=1
	// (depth 2), whose nested struct also opens a STRUCT field (depth 3,
	// exceeding the configured max of 2).
	buf := hexBytes(t, "00 00 00 00 01 00 00 00 00 0C 00 01 0C 00 01")
	result := Decode(buf, c)
	require.Equal(t, StatusError, result.Status)
	var de *DecodeError
	require.ErrorAs(t, result.Err, &de)
	assert.Equal(t, "max-depth", de.Subkind)
}
