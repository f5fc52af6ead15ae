package app_test

import (
	"testing"

	"go-hris-leave/internal/app"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func TestMigrate_RefusesMySQL(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gdb, err := gorm.Open(mysql.New(mysql.Config{Conn: db, SkipInitializeWithVersion: true}), &gorm.Config{})
	require.NoError(t, err)

	err = app.Migrate(gdb)

	assert.ErrorIs(t, err, app.ErrAutoMigrateUnsupported)
	assert.NoError(t, mock.ExpectationsWereMet())
}
