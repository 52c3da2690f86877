package repository

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitStatements(t *testing.T) {
	script := `-- header
CREATE TABLE a (id INT);

-- second
CREATE INDEX i ON a (id);
`
	stmts := SplitStatements(script)
	assert.Equal(t, []string{"CREATE TABLE a (id INT)", "CREATE INDEX i ON a (id)"}, stmts)
}

func TestSplitStatements_SchemaFile(t *testing.T) {
	raw, err := os.ReadFile("../../migrations/001_initial_schema.sql")
	require.NoError(t, err)

	stmts := SplitStatements(string(raw))
	require.Len(t, stmts, 3)
	assert.Contains(t, stmts[0], "car_batches")
	assert.Contains(t, stmts[1], "CREATE TABLE IF NOT EXISTS cars")
}
