package binary

import "github.com/hibari/ubfthrift/wire"

// EncodeMessage serializes m to the Thrift Binary Protocol wire format
// (spec.md §4.3, §6.1). When versioned is true the v1 header is emitted;
// otherwise the legacy header is used. Encoding is not resumable: it
// either produces a complete byte sequence or fails outright (spec.md
// §4.3).
func EncodeMessage(m wire.Message, versioned bool) ([]byte, error) {
	if !wire.ValidMsgType(int8(m.Type)) {
		return nil, newMalformed(stageMessage, "message-type", m.Type)
	}

	var out []byte
	if versioned {
		word := uint32(versionMagic) | uint32(byte(m.Type))
		out = appendU32(out, word)
		out = appendBinary(out, []byte(m.Name))
		out = appendI32(out, m.SeqID)
	} else {
		out = appendBinary(out, []byte(m.Name))
		out = append(out, encodeI8(int8(m.Type)))
		out = appendI32(out, m.SeqID)
	}
	var err error
	out, err = encodeStruct(out, m.Payload)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func encodeStruct(dst []byte, s wire.Struct) ([]byte, error) {
	for _, f := range s.Fields {
		if !validFieldType(f.Data.Type) {
			return nil, newMalformed(stageFields, "field-type", f.Data.Type)
		}
		dst = append(dst, byte(f.Data.Type))
		dst = appendI16(dst, f.ID)
		var err error
		dst, err = encodeValue(dst, f.Data)
		if err != nil {
			return nil, err
		}
	}
	dst = append(dst, byte(wire.TSTOP))
	return dst, nil
}

func encodeValue(dst []byte, v wire.Value) ([]byte, error) {
	switch v.Type {
	case wire.TBOOL:
		return append(dst, encodeBool(v.GetBool())), nil
	case wire.TBYTE:
		return append(dst, v.GetByte()), nil
	case wire.TI08:
		return append(dst, encodeI8(v.GetI08())), nil
	case wire.TI16:
		return appendI16(dst, v.GetI16()), nil
	case wire.TI32:
		return appendI32(dst, v.GetI32()), nil
	case wire.TU64:
		return appendU64(dst, v.GetU64()), nil
	case wire.TI64:
		return appendI64(dst, v.GetI64()), nil
	case wire.TDOUBLE:
		return appendDouble(dst, v.GetDouble()), nil
	case wire.TBINARY:
		return appendBinary(dst, v.GetBinary()), nil
	case wire.TSTRUCT:
		return encodeStruct(dst, v.GetStruct())
	case wire.TMAP:
		return encodeMap(dst, v.GetMap())
	case wire.TSET:
		return encodeListLike(dst, v.GetSet().ValueType, v.GetSet().Values)
	case wire.TLIST:
		return encodeListLike(dst, v.GetList().ValueType, v.GetList().Values)
	default:
		return nil, newMalformed(stageFields, "field-type", v.Type)
	}
}

func encodeMap(dst []byte, m wire.Map) ([]byte, error) {
	if !validFieldType(m.KeyType) {
		return nil, newMalformed(stageMap, "map-key-type", m.KeyType)
	}
	if !validFieldType(m.ValueType) {
		return nil, newMalformed(stageMap, "map-value-type", m.ValueType)
	}
	dst = append(dst, byte(m.KeyType), byte(m.ValueType))
	dst = appendI32(dst, int32(len(m.Entries)))
	var err error
	for _, e := range m.Entries {
		dst, err = encodeValue(dst, e.Key)
		if err != nil {
			return nil, err
		}
		dst, err = encodeValue(dst, e.Value)
		if err != nil {
			return nil, err
		}
	}
	return dst, nil
}

func encodeListLike(dst []byte, elemType wire.FieldType, values []wire.Value) ([]byte, error) {
	if !validFieldType(elemType) {
		return nil, newMalformed(stageList, "elem-type", elemType)
	}
	dst = append(dst, byte(elemType))
	dst = appendI32(dst, int32(len(values)))
	var err error
	for _, v := range values {
		dst, err = encodeValue(dst, v)
		if err != nil {
			return nil, err
		}
	}
	return dst, nil
}
