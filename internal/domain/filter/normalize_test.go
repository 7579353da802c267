package filter_test

import (
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/examprep/backend/internal/domain/filter"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		value filter.Value
		want  []string
	}{
		{"absent", filter.Absent(), []string{}},
		{"empty string", filter.String(""), []string{}},
		{"whitespace string", filter.String("   "), []string{}},
		{"empty list", filter.List(), []string{}},
		{"plain string", filter.String("  Português "), []string{"Português"}},
		{"json array string", filter.String(`["a","b"]`), []string{"a", "b"}},
		{"json array string with padding", filter.String(`  [" a ", "", "b"]  `), []string{"a", "b"}},
		{"json scalar string", filter.String(`"x"`), []string{"x"}},
		{"json number string", filter.String("5"), []string{"5"}},
		{"json null string", filter.String("null"), []string{}},
		{"malformed json", filter.String("not json ["), []string{"not json ["}},
		{"trailing garbage", filter.String(`["a"] x`), []string{`["a"] x`}},
		{"nested json array string", filter.String(`[["a","b"],"c"]`), []string{"a", "b", "c"}},
		{
			"one level flattening",
			filter.List(filter.Strings("a", "b"), filter.String("c")),
			[]string{"a", "b", "c"},
		},
		{
			"strings keep position between lists",
			filter.List(filter.String("x"), filter.Strings("a"), filter.String("y")),
			[]string{"x", "a", "y"},
		},
		{
			"empty and blank elements dropped",
			filter.Strings("a", "", "  ", "b"),
			[]string{"a", "b"},
		},
		{
			"list elements are not json-parsed",
			filter.Strings(`["a"]`),
			[]string{`["a"]`},
		},
		{
			"second level is coerced not flattened",
			filter.List(filter.List(filter.Strings("a", "b"), filter.String("c"))),
			[]string{"a,b", "c"},
		},
		{"duplicates kept", filter.Strings("a", "a"), []string{"a", "a"}},
		{"number literal", filter.Literal("42"), []string{"42"}},
		{"bool literal", filter.Literal("true"), []string{"true"}},
		{"absent inside list", filter.List(filter.Absent(), filter.String("a")), []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, filter.Normalize(tt.value))
		})
	}
}

func TestNormalize_IdempotentOnNormalizedInput(t *testing.T) {
	sets := [][]string{
		{},
		{"a"},
		{"Gramática", "Redação", "Gramática"},
		{"with inner space", "[not json"},
	}

	for _, s := range sets {
		once := filter.Normalize(filter.Strings(s...))
		assert.Equal(t, s, once)
		assert.Equal(t, once, filter.Normalize(filter.Strings(once...)))
	}
}

func TestNormalizeAll(t *testing.T) {
	got := filter.NormalizeAll([]filter.Value{
		filter.Strings("Gramática"),
		filter.Absent(),
		filter.String(`["Redação","Literatura"]`),
	})
	assert.Equal(t, []string{"Gramática", "Redação", "Literatura"}, got)
}

func TestValue_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"null", `null`, []string{}},
		{"string", `"Cespe"`, []string{"Cespe"}},
		{"encoded array", `"[\"FGV\",\"Cespe\"]"`, []string{"FGV", "Cespe"}},
		{"nested arrays", `[["a","b"],"c"]`, []string{"a", "b", "c"}},
		{"mixed scalars", `[1, true, " z "]`, []string{"1", "true", "z"}},
		{"large number", `12345678901234567890`, []string{"12345678901234567890"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v filter.Value
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &v))
			assert.Equal(t, tt.want, filter.Normalize(v))
		})
	}
}

func TestValue_JSONRoundTripKeepsShape(t *testing.T) {
	v := filter.List(filter.Strings("a", "b"), filter.String("c"), filter.Literal("3"))

	b, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `[["a","b"],"c",3]`, string(b))

	var back filter.Value
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, filter.Normalize(v), filter.Normalize(back))
}

func TestColumn(t *testing.T) {
	assert.True(t, filter.FromColumn(sql.NullString{}).IsAbsent())

	col := filter.Strings("a", "b").Column()
	require.True(t, col.Valid)
	assert.Equal(t, []string{"a", "b"}, filter.Normalize(filter.FromColumn(col)))

	col = filter.String("Português").Column()
	assert.Equal(t, "Português", col.String)
	assert.False(t, filter.Absent().Column().Valid)
}

func TestFromAny(t *testing.T) {
	v := filter.FromAny([]any{"a", []any{"b", 2.5}, nil, int64(7)})
	assert.Equal(t, filter.KindList, v.Kind())
	assert.Equal(t, []string{"a", "b", "2.5", "7"}, filter.Normalize(v))

	assert.Equal(t, []string{`{"k":"v"}`}, filter.Normalize(filter.FromAny(map[string]any{"k": "v"})))
}
