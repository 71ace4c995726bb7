package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	localCache "github.com/teccodex/chronicler/pkg/internal/cache"
	"github.com/teccodex/chronicler/pkg/internal/database"
)

func useTestDatabase(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.RunMigration(db))

	database.C = db
}

func useTestCache(t *testing.T) {
	t.Helper()

	if localCache.S == nil {
		require.NoError(t, localCache.NewStore())
	}
	FlushDataSourceCache()
}
