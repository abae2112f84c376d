package infra

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationTables(t *testing.T) {
	tables, err := MigrationTables()
	require.NoError(t, err)
	assert.Equal(t, []string{"trip_runs", "plan_quota"}, tables)
}

func TestRunMigrations_RejectsScheme(t *testing.T) {
	assert.Error(t, RunMigrations("mysql://root@localhost/voyage"))
}
