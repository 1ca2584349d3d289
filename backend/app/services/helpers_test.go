package services

import (
	"fmt"
	"testing"

	"wine-cellar/backend/app/db"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// --- helpers ---

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := db.Connect(db.Config{Driver: "sqlite", DSN: fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.Migrate(gdb))
	t.Cleanup(func() { _ = db.Close(gdb) })
	return gdb
}
