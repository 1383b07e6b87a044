package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/ims/backend/internal/domain/shared"
)

func newMockAlertRepository(t *testing.T) (*GormAlertRepository, sqlmock.Sqlmock, *sql.DB) {
	gormDB, mock, mockDB := newMockGormDB(t)
	return NewGormAlertRepository(gormDB), mock, mockDB
}

func TestGormAlertRepository_FindActiveByProduct(t *testing.T) {
	t.Run("finds the non-resolved alert", func(t *testing.T) {
		repo, mock, mockDB := newMockAlertRepository(t)
		defer mockDB.Close()

		alertID := uuid.New()
		productID := uuid.New()
		now := time.Now()

		rows := sqlmock.NewRows([]string{"id", "product_id", "current_stock", "threshold_used", "status", "first_raised_at", "last_evaluated"}).
			AddRow(alertID, productID, int64(3), int64(10), "pending", now, now)

		mock.ExpectQuery(`SELECT \* FROM "low_stock_alerts" WHERE product_id = \$1 AND status <> \$2 ORDER BY .* LIMIT .*`).
			WithArgs(productID, "resolved", 1).
			WillReturnRows(rows)

		alert, err := repo.FindActiveByProduct(context.Background(), productID)

		assert.NoError(t, err)
		assert.Equal(t, alertID, alert.ID)
		assert.Equal(t, productID, alert.ProductID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound when every alert is resolved", func(t *testing.T) {
		repo, mock, mockDB := newMockAlertRepository(t)
		defer mockDB.Close()

		productID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "low_stock_alerts" WHERE product_id = \$1 AND status <> \$2 ORDER BY .* LIMIT .*`).
			WithArgs(productID, "resolved", 1).
			WillReturnError(gorm.ErrRecordNotFound)

		alert, err := repo.FindActiveByProduct(context.Background(), productID)

		assert.Nil(t, alert)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormAlertRepository_CountActive(t *testing.T) {
	t.Run("counts non-resolved alerts", func(t *testing.T) {
		repo, mock, mockDB := newMockAlertRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"count"}).AddRow(int64(4))

		mock.ExpectQuery(`SELECT count\(\*\) FROM "low_stock_alerts" WHERE status <> \$1`).
			WithArgs("resolved").
			WillReturnRows(rows)

		count, err := repo.CountActive(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, int64(4), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
