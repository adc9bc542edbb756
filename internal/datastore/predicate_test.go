package datastore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sales-crm/internal/models"
)

func TestPredicateMatch(t *testing.T) {
	row := Row{"id": "u1", "role": "sales_manager", "is_active": int64(1)}

	assert.True(t, Eq("id", "u1").Match(row))
	assert.False(t, Eq("id", "u2").Match(row))
	assert.True(t, Eq("is_active", true).Match(row), "booleans compare as sqlite integers")
	assert.True(t, Or(Eq("id", "x"), Eq("role", "sales_manager")).Match(row))
	assert.False(t, And(Eq("id", "u1"), Eq("is_active", false)).Match(row))
}

func TestWhereClause(t *testing.T) {
	var args []any
	where, err := whereClause(models.CollectionTasks, DialectPostgres, Or(
		Eq("assigned_to_user_id", "u1"),
		Eq("created_by_user_id", "u1"),
	), &args)
	require.NoError(t, err)
	assert.Equal(t, " WHERE (assigned_to_user_id = $1) OR (created_by_user_id = $2)", where)
	assert.Equal(t, []any{"u1", "u1"}, args)

	args = nil
	where, err = whereClause(models.CollectionUsers, DialectSQLite, Eq("username", "mona"), &args)
	require.NoError(t, err)
	assert.Equal(t, " WHERE username = ?", where)

	_, err = whereClause(models.CollectionUsers, DialectSQLite, Eq("password", "x"), &args)
	assert.ErrorIs(t, err, ErrUnknownColumn)

	where, err = whereClause(models.CollectionUsers, DialectSQLite, nil, &args)
	require.NoError(t, err)
	assert.Empty(t, where)
}
