package psqlbuilder

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect_UsesDollarPlaceholders(t *testing.T) {
	query, args, err := Select("id", "name").
		From("partners").
		Where(squirrel.Eq{"id": 7}).
		Where(squirrel.Eq{"name": "x"}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "SELECT id, name FROM partners WHERE id = $1 AND name = $2", query)
	assert.Equal(t, []interface{}{7, "x"}, args)
}

func TestUpdate_UsesDollarPlaceholders(t *testing.T) {
	query, _, err := Update("schedules").
		Set("status", "booked").
		Where(squirrel.Eq{"id": 1}).
		ToSql()

	require.NoError(t, err)
	assert.Equal(t, "UPDATE schedules SET status = $1 WHERE id = $2", query)
}
