package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueAccessors(t *testing.T) {
	tests := []struct {
		name string
		val  Value
		want interface{}
	}{
		{"bool", NewValueBool(true), true},
		{"i08", NewValueI08(-7), int8(-7)},
		{"i16", NewValueI16(300), int16(300)},
		{"i32", NewValueI32(70000), int32(70000)},
		{"i64", NewValueI64(1 << 40), int64(1 << 40)},
		{"u64", NewValueU64(1 << 63), uint64(1 << 63)},
		{"double", NewValueDouble(3.25), 3.25},
		{"binary", NewValueBinary([]byte("hi")), []byte("hi")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			switch tt.name {
			case "bool":
				assert.Equal(t, tt.want, tt.val.GetBool())
			case "i08":
				assert.Equal(t, tt.want, tt.val.GetI08())
			case "i16":
				assert.Equal(t, tt.want, tt.val.GetI16())
			case "i32":
				assert.Equal(t, tt.want, tt.val.GetI32())
			case "i64":
				assert.Equal(t, tt.want, tt.val.GetI64())
			case "u64":
				assert.Equal(t, tt.want, tt.val.GetU64())
			case "double":
				assert.Equal(t, tt.want, tt.val.GetDouble())
			case "binary":
				assert.Equal(t, tt.want, tt.val.GetBinary())
			}
		})
	}
}

func TestValueByte(t *testing.T) {
	v := NewValueByte(0xAB)
	assert.Equal(t, byte(0xAB), v.GetByte())
}

func TestStructFieldByID(t *testing.T) {
	s := Struct{Fields: []Field{
		{ID: 1, Data: NewValueI32(1)},
		{ID: 2, Data: NewValueI32(2)},
	}}

	f, ok := s.FieldByID(2)
	assert.True(t, ok)
	assert.Equal(t, int32(2), f.Data.GetI32())

	_, ok = s.FieldByID(99)
	assert.False(t, ok)
}

func TestEnvelopeRoundTrip(t *testing.T) {
	msg := Message{
		Name:  "echo",
		Type:  Call,
		SeqID: 42,
		Payload: Struct{Fields: []Field{
			{ID: 1, Data: NewValueBinary([]byte("hello"))},
		}},
	}

	env := msg.Envelope()
	assert.Equal(t, msg.Name, env.Name)
	assert.Equal(t, EnvelopeType(msg.Type), env.Type)

	back := env.ToMessage()
	assert.Equal(t, msg, back)
}

func TestValidMsgType(t *testing.T) {
	assert.True(t, ValidMsgType(int8(Call)))
	assert.True(t, ValidMsgType(int8(Oneway)))
	assert.False(t, ValidMsgType(int8(99)))
}

func TestFieldTypeString(t *testing.T) {
	assert.Equal(t, "struct", TSTRUCT.String())
	assert.Contains(t, FieldType(120).String(), "FieldType")
}
