package schema

import (
	"testing"

	"github.com/jackyeh168/loyalty_crm/src/internal/infrastructure/persistence/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := testdb.New(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db), "migration must be idempotent")

	for _, table := range []string{
		"tiers",
		"customers",
		"ledger_transactions",
		"membership_cards",
		"rewards",
		"customer_rewards",
	} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}
