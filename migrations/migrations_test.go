package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedPairs(t *testing.T) {
	ups, err := fs.Glob(FS, "*.up.sql")
	require.NoError(t, err)
	require.NotEmpty(t, ups)

	for _, up := range ups {
		down := strings.TrimSuffix(up, ".up.sql") + ".down.sql"
		_, err := fs.Stat(FS, down)
		assert.NoError(t, err, "missing %s", down)
	}
}

func TestSchemaCoversEveryTable(t *testing.T) {
	content, err := fs.ReadFile(FS, "0001_init.up.sql")
	require.NoError(t, err)

	for _, table := range []string{
		"harvest_years", "cultures", "systems", "cycles", "properties",
		"planted_areas", "productivities", "commodity_prices", "exchange_rates",
		"production_costs", "other_expenses", "debt_instruments", "balance_items",
	} {
		assert.Contains(t, string(content), "create table if not exists "+table+" (")
	}
}

func TestDown_RejectsNonPositiveSteps(t *testing.T) {
	_, err := Down("postgres://unused", 0)
	assert.Error(t, err)
}
