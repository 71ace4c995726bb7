package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/teccodex/chronicler/pkg/internal/models"
)

func writeDataFile(t *testing.T, name, payload string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(payload), 0644))
	return path
}

func TestLoadFactionsFromDataFile(t *testing.T) {
	viper.Set("datasource.strict", false)
	viper.Set("datasource.factions_path", writeDataFile(t, "factions.json", `{
		"factions": [
			{
				"name": "Archivists",
				"description": "Keepers of the codex",
				"ethos": "Remember everything",
				"colors": ["#112233", "#445566"],
				"alignment": "neutral",
				"associated_tokens": ["TEC"],
				"perks": ["archive access"],
				"forbidden": false
			},
			{"name": "Nullwalkers"},
			{"description": "a record with no name is dropped"}
		]
	}`))

	items, err := loadFactionsFromSource()
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "Archivists", items[0].Name)
	assert.Equal(t, "archivists", items[0].Slug)
	assert.Equal(t, []string{"#112233", "#445566"}, items[0].Colors)
	assert.Equal(t, []string{"TEC"}, items[0].AssociatedTokens)

	// missing colors fall back to the documented defaults
	assert.Equal(t, "nullwalkers", items[1].Slug)
	assert.Equal(t, []string{models.FactionDefaultPrimaryColor, models.FactionDefaultSecondaryColor}, items[1].Colors)
}

func TestLoadFactionsBareArrayForm(t *testing.T) {
	viper.Set("datasource.strict", false)
	viper.Set("datasource.factions_path", writeDataFile(t, "factions.json", `[{"name": "Quorum"}]`))

	items, err := loadFactionsFromSource()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "quorum", items[0].Slug)
}

func TestFactionSlugDeterministic(t *testing.T) {
	first := normalizeFaction(models.Faction{Name: "The Machine Goddess"})
	second := normalizeFaction(models.Faction{Name: "The Machine Goddess"})
	assert.Equal(t, first.Slug, second.Slug)
	assert.Equal(t, "the-machine-goddess", first.Slug)
}

func TestLoadFactionsMalformedLenient(t *testing.T) {
	useTestDatabase(t)
	viper.Set("datasource.strict", false)
	viper.Set("datasource.factions_path", writeDataFile(t, "factions.json", `{"factions": [`))

	// a malformed document behaves like an absent one: database fallback,
	// which is empty here
	items, err := loadFactionsFromSource()
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestLoadFactionsMalformedStrict(t *testing.T) {
	viper.Set("datasource.strict", true)
	viper.Set("datasource.factions_path", writeDataFile(t, "factions.json", `{"factions": [`))
	defer viper.Set("datasource.strict", false)

	_, err := loadFactionsFromSource()
	assert.Error(t, err)
}

func TestLoadFactionsDatabaseFallback(t *testing.T) {
	useTestDatabase(t)
	viper.Set("datasource.strict", false)
	viper.Set("datasource.factions_path", filepath.Join(t.TempDir(), "absent.json"))

	published, err := NewContent(models.Content{
		Type:    models.ContentTypeFaction,
		Title:   "Cipher Court",
		Excerpt: "The quiet ones",
		Status:  models.ContentStatusPublish,
		Meta: datatypes.JSONMap{
			"faction_ethos": "Silence is consent",
			"faction_color": "#0F0F0F",
		},
	})
	require.NoError(t, err)
	require.NotZero(t, published.ID)

	// drafts stay invisible to the read path
	_, err = NewContent(models.Content{
		Type:  models.ContentTypeFaction,
		Title: "Hidden Cell",
	})
	require.NoError(t, err)

	items, err := loadFactionsFromSource()
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, "Cipher Court", items[0].Name)
	assert.Equal(t, "cipher-court", items[0].Slug)
	assert.Equal(t, "The quiet ones", items[0].Description)
	assert.Equal(t, "Silence is consent", items[0].Ethos)
	assert.Equal(t, []string{"#0F0F0F", models.FactionDefaultSecondaryColor}, items[0].Colors)
}

func TestListFactionsCached(t *testing.T) {
	useTestCache(t)
	viper.Set("datasource.strict", false)
	viper.Set("datasource.factions_path", writeDataFile(t, "factions.json", `{"factions": [{"name": "Archivists"}]}`))

	items, err := ListFactions()
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "archivists", items[0].Slug)
}

func TestLoadTokensFromDataFile(t *testing.T) {
	viper.Set("datasource.strict", false)
	viper.Set("datasource.wallets_path", writeDataFile(t, "wallets.json", `{
		"wallets": [
			{"name": "Elidoras Coin", "symbol": "TEC", "network": "ethereum", "price": "1.25"},
			{"symbol": "XRP", "chain": "xrp"},
			{"price": "4.00"}
		]
	}`))

	items, err := loadTokensFromSource()
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "elidoras-coin", items[0].Slug)
	assert.Equal(t, "ethereum", items[0].Network)
	require.NotNil(t, items[0].Price)
	assert.True(t, items[0].Price.Equal(decimal.RequireFromString("1.25")))

	// chain is accepted as an alias for network; price stays the
	// not-available sentinel
	assert.Equal(t, "xrp", items[1].Network)
	assert.Equal(t, "xrp", items[1].Slug)
	assert.Nil(t, items[1].Price)
}

func TestFilterTokensWithNetwork(t *testing.T) {
	items := []models.Token{
		{Symbol: "TEC", Network: "ethereum"},
		{Symbol: "ADA", Network: "cardano"},
	}

	filtered := FilterTokensWithNetwork(items, "cardano")
	require.Len(t, filtered, 1)
	assert.Equal(t, "ADA", filtered[0].Symbol)
}

func TestLoadTokensDatabaseFallback(t *testing.T) {
	useTestDatabase(t)
	viper.Set("datasource.strict", false)
	viper.Set("datasource.wallets_path", filepath.Join(t.TempDir(), "absent.json"))

	_, err := NewContent(models.Content{
		Type:   models.ContentTypeToken,
		Title:  "Elidoras Coin",
		Status: models.ContentStatusPublish,
		Meta: datatypes.JSONMap{
			"token_symbol":  "TEC",
			"token_network": "ethereum",
			"token_price":   "1.25",
		},
	})
	require.NoError(t, err)

	items, err := loadTokensFromSource()
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, "TEC", items[0].Symbol)
	assert.Equal(t, "ethereum", items[0].Network)
	require.NotNil(t, items[0].Price)
	assert.True(t, items[0].Price.Equal(decimal.RequireFromString("1.25")))
}

func TestListFactionsAbsentEverything(t *testing.T) {
	useTestDatabase(t)
	viper.Set("datasource.strict", false)
	viper.Set("datasource.factions_path", filepath.Join(t.TempDir(), "absent.json"))

	items, err := loadFactionsFromSource()
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}
