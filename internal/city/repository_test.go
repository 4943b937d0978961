package city

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cityCols = []string{"id", "name", "slug", "thumbnail_url", "created_at", "updated_at", "gym_count"}

func setupCityMock(t *testing.T) (Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func TestRepository_ListWithThumbnail(t *testing.T) {
	repo, mock := setupCityMock(t)
	now := time.Now()

	mock.ExpectQuery(`WHERE c.thumbnail_url IS NOT NULL ORDER BY c.name ASC`).
		WillReturnRows(sqlmock.NewRows(cityCols).
			AddRow("c-1", "Bandung", "bandung", "https://img/bdg.png", now, now, 2).
			AddRow("c-2", "Jakarta", "jakarta", "https://img/jkt.png", now, now, 5))

	cities, err := repo.ListWithThumbnail(context.Background())
	require.NoError(t, err)
	require.Len(t, cities, 2)
	assert.Equal(t, 5, cities[1].GymCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create(t *testing.T) {
	repo, mock := setupCityMock(t)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO cities`).
		WithArgs(sqlmock.AnyArg(), "Jakarta", "jakarta", "https://img/jkt.png").
		WillReturnRows(sqlmock.NewRows(cityCols).
			AddRow("c-1", "Jakarta", "jakarta", "https://img/jkt.png", now, now, 0))

	c, err := repo.Create(context.Background(), "Jakarta", "jakarta", "https://img/jkt.png")
	require.NoError(t, err)
	assert.Equal(t, "jakarta", c.Slug)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_SlugExists(t *testing.T) {
	repo, mock := setupCityMock(t)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("jakarta", "c-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	taken, err := repo.SlugExists(context.Background(), "jakarta", "c-1")
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestRepository_Delete_NotFound(t *testing.T) {
	repo, mock := setupCityMock(t)

	mock.ExpectExec(`DELETE FROM cities`).
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "ghost")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
