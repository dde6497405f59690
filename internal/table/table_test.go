package table

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_MarshalJSONPreservesOrder(t *testing.T) {
	tbl := New("col 1", "col 2")
	require.NoError(t, tbl.AppendRow("a", "b"))
	require.NoError(t, tbl.AppendRow("x", "v"))

	out, err := json.Marshal(tbl)
	require.NoError(t, err)
	assert.Equal(t, `[{"col 1":"a","col 2":"b"},{"col 1":"x","col 2":"v"}]`, string(out))
}

func TestTable_MarshalJSONColumnOrderIsNotAlphabetical(t *testing.T) {
	tbl := New("z", "a")
	require.NoError(t, tbl.AppendRow(1, 2))

	out, err := tbl.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `[{"z":1,"a":2}]`, string(out))
}

func TestTable_MarshalJSONEmpty(t *testing.T) {
	var nilTable *Table
	out, err := nilTable.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "[]", string(out))

	out, err = New("a").MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "[]", string(out))
}

func TestTable_MarshalJSONUnsupportedValue(t *testing.T) {
	tbl := New("a")
	require.NoError(t, tbl.AppendRow(make(chan int)))

	_, err := tbl.MarshalJSON()
	assert.Error(t, err)
}

func TestTable_AppendRow(t *testing.T) {
	tbl := New("a", "b")

	assert.ErrorIs(t, tbl.AppendRow(1), ErrRowWidth)
	assert.ErrorIs(t, New().AppendRow(1), ErrNoColumns)

	require.NoError(t, tbl.AppendRow(1, 2))
	assert.Equal(t, 1, tbl.NumRows())
	assert.Equal(t, []any{1, 2}, tbl.Row(0))
	assert.Nil(t, tbl.Row(1))
}

func TestTable_AddColumn(t *testing.T) {
	tbl := New()
	require.NoError(t, tbl.AddColumn("a", []any{1, 2}))
	assert.Equal(t, 2, tbl.NumRows())

	assert.ErrorIs(t, tbl.AddColumn("a", []any{3, 4}), ErrDuplicateColumn)
	assert.ErrorIs(t, tbl.AddColumn("b", []any{3}), ErrColumnLength)

	require.NoError(t, tbl.AddColumn("b", []any{3, 4}))
	assert.Equal(t, []string{"a", "b"}, tbl.Columns())
	assert.Equal(t, [][]any{{1, 3}, {2, 4}}, tbl.Rows())
}

func TestTable_SetConstant(t *testing.T) {
	tbl := New("a")
	require.NoError(t, tbl.AppendRow(1))
	require.NoError(t, tbl.AppendRow(2))

	tbl.SetConstant("Source", "From Model")
	values, ok := tbl.Column("Source")
	require.True(t, ok)
	assert.Equal(t, []any{"From Model", "From Model"}, values)

	// Overwrite keeps the column position.
	tbl.SetConstant("a", 0)
	assert.Equal(t, []string{"a", "Source"}, tbl.Columns())
	v, ok := tbl.Value(1, "a")
	require.True(t, ok)
	assert.Equal(t, 0, v)

	_, ok = tbl.Value(5, "a")
	assert.False(t, ok)
}

func TestNew_DuplicateColumns(t *testing.T) {
	tbl := New("a", "a", "b")
	assert.Equal(t, []string{"a", "b"}, tbl.Columns())
}
