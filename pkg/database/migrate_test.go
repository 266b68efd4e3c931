package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsAreEmbeddedInOrder(t *testing.T) {
	migrations, err := Migrations()
	require.NoError(t, err)
	require.NotEmpty(t, migrations)

	assert.Equal(t, "0001_init", migrations[0].Version)
	for i := 1; i < len(migrations); i++ {
		assert.Less(t, migrations[i-1].Version, migrations[i].Version)
	}
}

func TestInitialSchemaDeclaresPairConstraints(t *testing.T) {
	migrations, err := Migrations()
	require.NoError(t, err)

	schema := migrations[0].SQL
	assert.Contains(t, schema, "CONSTRAINT applications_user_job_key UNIQUE (user_id, job_id)")
	assert.Contains(t, schema, "CONSTRAINT favourites_user_job_key UNIQUE (user_id, job_id)")
	assert.Contains(t, schema, "REFERENCES jobs (id) ON DELETE CASCADE")
}

func TestEmailUniquenessIgnoresCase(t *testing.T) {
	migrations, err := Migrations()
	require.NoError(t, err)

	var found bool
	for _, m := range migrations {
		if m.Version == "0002_users_email_lower" {
			found = true
			assert.Contains(t, m.SQL, "CREATE UNIQUE INDEX IF NOT EXISTS users_email_lower_key ON users (lower(email))")
		}
	}
	assert.True(t, found)
}
