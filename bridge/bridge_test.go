package bridge

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hibari/ubfthrift/contract"
	"github.com/hibari/ubfthrift/contract/contracttest"
	"github.com/hibari/ubfthrift/term"
)

func roundTrip(t *testing.T, v term.Term, registry contract.Registry, atoms *term.AtomTable, safe bool) term.Term {
	t.Helper()
	s := Encode(v, registry)
	got, err := Decode(s, registry, atoms, safe)
	require.NoError(t, err)
	return got
}

func TestRoundTripScalars(t *testing.T) {
	atoms := term.NewAtomTable("ok", "error")
	cases := []term.Term{
		term.Binary("hello"),
		term.Integer(-42),
		term.Integer(0),
		term.Float(3.14159),
		term.Bool(true),
		term.Bool(false),
		term.Atom("ok"),
		term.String("héllo wörld"),
	}
	for _, v := range cases {
		got := roundTrip(t, v, nil, atoms, true)
		assert.True(t, term.Equal(v, got), "round trip of %#v produced %#v", v, got)
	}
}

func TestRoundTripNestedCollections(t *testing.T) {
	atoms := term.NewAtomTable("ok")
	v := term.List{
		term.Tuple{term.Integer(1), term.Atom("ok")},
		term.PropList{
			{Key: term.Binary("k"), Value: term.String("v")},
		},
		term.List{},
	}
	got := roundTrip(t, v, nil, atoms, true)
	assert.True(t, term.Equal(v, got))
}

func TestSentinelsDoNotCollide(t *testing.T) {
	// $B, $A and $S all carry a BINARY-typed field; $L and $T both carry a
	// LIST-of-STRUCT field. Encoding one must never decode back as another.
	atoms := term.NewAtomTable("ok")
	b := Encode(term.Binary("ok"), nil)
	a := Encode(term.Atom("ok"), nil)
	s := Encode(term.String("ok"), nil)

	decodedB, err := Decode(b, nil, atoms, true)
	require.NoError(t, err)
	decodedA, err := Decode(a, nil, atoms, true)
	require.NoError(t, err)
	decodedS, err := Decode(s, nil, atoms, true)
	require.NoError(t, err)

	assert.IsType(t, term.Binary(nil), decodedB)
	assert.IsType(t, term.Atom(""), decodedA)
	assert.IsType(t, term.String(""), decodedS)

	l := Encode(term.List{term.Integer(1)}, nil)
	tup := Encode(term.Tuple{term.Integer(1)}, nil)
	decodedL, err := Decode(l, nil, atoms, true)
	require.NoError(t, err)
	decodedT, err := Decode(tup, nil, atoms, true)
	require.NoError(t, err)
	assert.IsType(t, term.List(nil), decodedL)
	assert.IsType(t, term.Tuple(nil), decodedT)
}

func TestAtomSafeModeRejectsUnknownName(t *testing.T) {
	atoms := term.NewAtomTable() // "ok" is not known
	encoded := Encode(term.Atom("ok"), nil)

	_, err := Decode(encoded, nil, atoms, true)
	require.Error(t, err)

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, SentinelAtom, schemaErr.Sentinel)
}

func TestAtomUnsafeModeInternsUnknownName(t *testing.T) {
	atoms := term.NewAtomTable()
	encoded := Encode(term.Atom("freshly_seen"), nil)

	got, err := Decode(encoded, nil, atoms, false)
	require.NoError(t, err)
	assert.Equal(t, term.Atom("freshly_seen"), got)
	assert.True(t, atoms.Known("freshly_seen"))
}

func TestRecordRoundTripWithRegistry(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	registry := contracttest.NewMockRegistry(ctrl)
	registry.EXPECT().RecordFields("point", 2).Return([]string{"x", "y"}, true).AnyTimes()

	atoms := term.NewAtomTable()
	rec := term.Record{Name: "point", Fields: []term.Term{term.Integer(3), term.Integer(4)}}

	got := roundTrip(t, rec, registry, atoms, false)
	assert.True(t, term.Equal(rec, got))
}

func TestRecordFallsBackToTupleWithoutSchema(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	registry := contracttest.NewMockRegistry(ctrl)
	registry.EXPECT().RecordFields("unknown", 2).Return(nil, false).AnyTimes()

	rec := term.Record{Name: "unknown", Fields: []term.Term{term.Integer(1), term.Integer(2)}}
	s := Encode(rec, registry)

	got, err := Decode(s, registry, term.NewAtomTable(), false)
	require.NoError(t, err)
	assert.Equal(t, term.Tuple{term.Integer(1), term.Integer(2)}, got)
}

func TestRecordDecodeFailsOnMissingField(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	registry := contracttest.NewMockRegistry(ctrl)
	registry.EXPECT().RecordFields("point", 1).Return([]string{"x", "y"}, true).AnyTimes()

	// Encode with the wrong registry view on purpose: byName will only
	// ever have one entry ("x"), but the schema claims arity 2 ("x","y").
	rec := term.Record{Name: "point", Fields: []term.Term{term.Integer(3)}}
	oneFieldRegistry := contracttest.NewMockRegistry(ctrl)
	oneFieldRegistry.EXPECT().RecordFields("point", 1).Return([]string{"x"}, true).AnyTimes()
	s := Encode(rec, oneFieldRegistry)

	_, err := Decode(s, registry, term.NewAtomTable(), false)
	require.Error(t, err)
}

func TestDecodeNonSentinelStructFails(t *testing.T) {
	s := Encode(term.Integer(1), nil)
	s.Fields = append(s.Fields, s.Fields[0]) // now two fields, matches no sentinel

	_, err := Decode(s, nil, term.NewAtomTable(), true)
	require.Error(t, err)

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, Sentinel(""), schemaErr.Sentinel)
}
