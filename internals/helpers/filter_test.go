package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var roomFields = map[string]string{
	"rent_price":  "room_rent_price",
	"floor":       "room_floor",
	"room_number": "room_number",
	"status":      "room_status",
}

func TestParseFilterSingleClause(t *testing.T) {
	clauses, err := ParseFilter("rent_price >= 500000", roomFields)
	require.NoError(t, err)
	require.Len(t, clauses, 1)
	assert.Equal(t, FilterClause{Field: "rent_price", Op: ">=", Value: "500000"}, clauses[0])
}

func TestParseFilterChainsWithAnd(t *testing.T) {
	clauses, err := ParseFilter("rent_price >= 500000 and floor = 2 and room_number ~ A1", roomFields)
	require.NoError(t, err)
	require.Len(t, clauses, 3)
	assert.Equal(t, "~", clauses[2].Op)
	assert.Equal(t, "A1", clauses[2].Value)
}

func TestParseFilterAndIsCaseInsensitive(t *testing.T) {
	clauses, err := ParseFilter("floor = 2 AND status != OCCUPIED", roomFields)
	require.NoError(t, err)
	require.Len(t, clauses, 2)
	assert.Equal(t, "!=", clauses[1].Op)
}

func TestParseFilterKeepsAndInsideValues(t *testing.T) {
	// "Standard" contains the letters a-n-d but is a single value
	clauses, err := ParseFilter("room_number ~ Standard", roomFields)
	require.NoError(t, err)
	require.Len(t, clauses, 1)
	assert.Equal(t, "Standard", clauses[0].Value)
}

func TestParseFilterTwoCharOpsWinOverOneChar(t *testing.T) {
	clauses, err := ParseFilter("floor <= 3", roomFields)
	require.NoError(t, err)
	require.Len(t, clauses, 1)
	assert.Equal(t, "<=", clauses[0].Op)
	assert.Equal(t, "3", clauses[0].Value)
}

func TestParseFilterRejectsUnknownField(t *testing.T) {
	_, err := ParseFilter("password = x", roomFields)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown filter field")
}

func TestParseFilterRejectsMalformedClause(t *testing.T) {
	_, err := ParseFilter("floor =", roomFields)
	assert.Error(t, err)

	_, err = ParseFilter("just words", roomFields)
	assert.Error(t, err)
}

func TestParseFilterEmptyIsNoop(t *testing.T) {
	clauses, err := ParseFilter("   ", roomFields)
	require.NoError(t, err)
	assert.Empty(t, clauses)
}
