package records

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/ambidb/internal/types"
)

func TestSerialize(t *testing.T) {
	rec := types.Record{ID: 7, Name: "Asha Rao", Age: 21, Department: "CS", Email: "asha@example.com"}
	assert.Equal(t, "7|Asha Rao|21|CS|asha@example.com", Serialize(rec))
}

func TestSerializeEscapesDelimiterAndBackslash(t *testing.T) {
	rec := types.Record{ID: 1, Name: `A|B\C`, Age: 30, Department: `R\D`, Email: "x|y@z.com"}
	line := Serialize(rec)
	assert.Equal(t, `1|A\|B\\C|30|R\\D|x\|y@z.com`, line)

	got, err := Parse(line)
	require.NoError(t, err)
	assert.Equal(t, rec, got)
}

func TestParseRoundTrip(t *testing.T) {
	recs := []types.Record{
		{ID: 1, Name: "", Age: 16, Department: "", Email: ""},
		{ID: 2, Name: `\`, Age: 80, Department: `|`, Email: `\\||`},
		{ID: 1000000, Name: "Zoë Ñúñez", Age: 45, Department: "Física", Email: "zoe@example.es"},
		{ID: 3, Name: "trailing\\", Age: 20, Department: "a|", Email: "|b"},
	}
	for _, rec := range recs {
		got, err := Parse(Serialize(rec))
		require.NoError(t, err, "record %+v", rec)
		assert.Equal(t, rec, got)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"too few fields", "1|A|20|CS"},
		{"too many fields", "1|A|20|CS|a@x.com|extra"},
		{"single field", "garbage"},
		{"non-numeric id", "x|A|20|CS|a@x.com"},
		{"non-numeric age", "1|A|old|CS|a@x.com"},
		{"empty id", "|A|20|CS|a@x.com"},
		{"trailing escape", `1|A|20|CS|a@x.com\`},
		{"escaped delimiter hides field", `1|A|20|CS\|a@x.com`},
		{"id wider than 32 bits", "9223372036854775807|A|20|CS|a@x.com"},
		{"id one past 32 bits", "2147483648|A|20|CS|a@x.com"},
		{"age wider than 32 bits", "1|A|99999999999|CS|a@x.com"},
		{"zero id", "0|A|20|CS|a@x.com"},
		{"negative id", "-3|A|20|CS|a@x.com"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.line)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrCorrupted)
		})
	}
}

func TestSplitFieldsKeepsEscapedCharacterLiteral(t *testing.T) {
	fields, err := splitFields(`a\b|c\\|\|`)
	require.NoError(t, err)
	assert.Equal(t, []string{"ab", `c\`, "|"}, fields)
}

func TestParseLargestID(t *testing.T) {
	rec, err := Parse("2147483647|A|20|CS|a@x.com")
	require.NoError(t, err)
	assert.Equal(t, MaxID, rec.ID)
}
