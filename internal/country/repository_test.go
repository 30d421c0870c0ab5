package country

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/smallbiznis/tripquote/internal/country/domain"
)

func newTestDB(t *testing.T) (*gorm.DB, *snowflake.Node) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Country{}, &domain.DefaultRate{}))
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return db, node
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFindActiveCountry_ValidityWindow(t *testing.T) {
	db, node := newTestDB(t)
	repo := NewRepository(db)

	from := day(2026, 3, 1)
	to := day(2026, 9, 30)
	require.NoError(t, db.Create(&domain.Country{
		ID:              node.Generate(),
		Code:            "ES",
		Name:            "Spain",
		RiskCoefficient: decimal.RequireFromString("1.0"),
		ValidFrom:       from,
		ValidTo:         &to,
	}).Error)

	ctx := context.Background()

	got, err := repo.FindActiveCountry(ctx, "ES", from)
	require.NoError(t, err)
	require.NotNil(t, got)

	got, err = repo.FindActiveCountry(ctx, "ES", to)
	require.NoError(t, err)
	require.NotNil(t, got)

	got, err = repo.FindActiveCountry(ctx, "ES", from.AddDate(0, 0, -1))
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = repo.FindActiveCountry(ctx, "ES", to.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFindActiveCountry_PrefersLatestWindow(t *testing.T) {
	db, node := newTestDB(t)
	repo := NewRepository(db)

	require.NoError(t, db.Create(&domain.Country{
		ID:              node.Generate(),
		Code:            "TH",
		Name:            "Thailand",
		RiskCoefficient: decimal.RequireFromString("1.7"),
		ValidFrom:       day(2025, 1, 1),
	}).Error)
	require.NoError(t, db.Create(&domain.Country{
		ID:              node.Generate(),
		Code:            "TH",
		Name:            "Thailand",
		RiskCoefficient: decimal.RequireFromString("1.9"),
		ValidFrom:       day(2026, 1, 1),
	}).Error)

	got, err := repo.FindActiveCountry(context.Background(), "th", day(2026, 6, 1))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.RiskCoefficient.Equal(decimal.RequireFromString("1.9")))
}

func TestFindActiveDefaultRate_MissingIsNilNotError(t *testing.T) {
	db, _ := newTestDB(t)
	repo := NewRepository(db)

	got, err := repo.FindActiveDefaultRate(context.Background(), "ES", day(2026, 6, 1))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCachedRepository_ServesFromCache(t *testing.T) {
	db, node := newTestDB(t)
	repo := NewCachedRepository(NewRepository(db))

	require.NoError(t, db.Create(&domain.Country{
		ID:              node.Generate(),
		Code:            "FR",
		Name:            "France",
		RiskCoefficient: decimal.RequireFromString("1.0"),
		ValidFrom:       day(2026, 1, 1),
	}).Error)

	ctx := context.Background()
	at := day(2026, 6, 1)

	first, err := repo.FindActiveCountry(ctx, "FR", at)
	require.NoError(t, err)
	require.NotNil(t, first)

	// the row is gone from the database but still cached
	require.NoError(t, db.Where("code = ?", "FR").Delete(&domain.Country{}).Error)

	second, err := repo.FindActiveCountry(ctx, "FR", at)
	require.NoError(t, err)
	require.NotNil(t, second)
	assert.Equal(t, first.ID, second.ID)
}
