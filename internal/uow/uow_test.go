package uow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ndmitriev/online-store/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf(
		"file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)",
		name,
	)
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&models.Category{}))
	return gdb
}

func countCategories(t *testing.T, gdb *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, gdb.Model(&models.Category{}).Count(&n).Error)
	return n
}

func TestRun_CommitPersists(t *testing.T) {
	gdb := newTestDB(t)
	u := New(gdb)

	err := u.Run(context.Background(), func(tx *gorm.DB) error {
		return tx.Create(&models.Category{Name: "committed"}).Error
	})
	require.NoError(t, err)
	require.EqualValues(t, 1, countCategories(t, gdb))
}

func TestRun_ErrorRollsBack(t *testing.T) {
	gdb := newTestDB(t)
	u := New(gdb)
	boom := errors.New("work failed")

	err := u.Run(context.Background(), func(tx *gorm.DB) error {
		if err := tx.Create(&models.Category{Name: "doomed"}).Error; err != nil {
			return err
		}
		return boom
	})
	require.Error(t, err)

	var pe *PersistenceError
	require.ErrorAs(t, err, &pe)
	require.ErrorIs(t, err, boom)

	// The insert that happened before the failure is gone.
	require.Zero(t, countCategories(t, gdb))
}

func TestRun_PanicRollsBackAndRethrows(t *testing.T) {
	gdb := newTestDB(t)
	u := New(gdb)

	require.PanicsWithValue(t, "boom", func() {
		_ = u.Run(context.Background(), func(tx *gorm.DB) error {
			if err := tx.Create(&models.Category{Name: "doomed"}).Error; err != nil {
				return err
			}
			panic("boom")
		})
	})
	require.Zero(t, countCategories(t, gdb))
}

func TestRun_ConnectionError(t *testing.T) {
	gdb := newTestDB(t)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	u := New(gdb)
	err = u.Run(context.Background(), func(tx *gorm.DB) error {
		t.Fatal("work must not run when no transaction could be opened")
		return nil
	})
	require.Error(t, err)

	var ce *ConnectionError
	require.ErrorAs(t, err, &ce)
}

func TestRunValue(t *testing.T) {
	gdb := newTestDB(t)
	u := New(gdb)

	created, err := RunValue(context.Background(), u, func(tx *gorm.DB) (*models.Category, error) {
		category := &models.Category{Name: "valued"}
		if err := tx.Create(category).Error; err != nil {
			return nil, err
		}
		return category, nil
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	require.Equal(t, "valued", created.Name)

	boom := errors.New("no value")
	missing, err := RunValue(context.Background(), u, func(tx *gorm.DB) (*models.Category, error) {
		return &models.Category{Name: "discarded"}, boom
	})
	require.ErrorIs(t, err, boom)
	require.Nil(t, missing)
	require.EqualValues(t, 1, countCategories(t, gdb))
}
