package services

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/thalisfel/sistema-de-gerenciamento-de-pedidos/models"
	"github.com/thalisfel/sistema-de-gerenciamento-de-pedidos/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	os.Exit(m.Run())
}

func setupRollupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.OrderHistory{}, &models.DailyProfit{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func addDelivery(t *testing.T, db *gorm.DB, deliveredAt time.Time, total float64) {
	h := models.OrderHistory{
		OrderID:     1,
		Items:       models.LineItems{{Name: "Pizza", Price: total, Quantity: 1}},
		Total:       total,
		Status:      models.StatusDelivered,
		OrderedAt:   deliveredAt.Add(-time.Hour),
		DeliveredAt: deliveredAt,
	}
	assert.NoError(t, db.Create(&h).Error)
}

func TestRunOnceGroupsByDay(t *testing.T) {
	db := setupRollupTestDB(t)
	pr := NewProfitRollup(db)

	day1 := time.Date(2026, 8, 29, 12, 0, 0, 0, time.Local)
	day2 := time.Date(2026, 8, 30, 20, 30, 0, 0, time.Local)
	addDelivery(t, db, day1, 30)
	addDelivery(t, db, day1.Add(2*time.Hour), 20)
	addDelivery(t, db, day2, 15)

	assert.NoError(t, pr.RunOnce())

	var profits []models.DailyProfit
	assert.NoError(t, db.Order("date ASC").Find(&profits).Error)
	assert.Len(t, profits, 2)
	assert.Equal(t, "2026-08-29", profits[0].Date)
	assert.InDelta(t, 50, profits[0].Profit, 0.001)
	assert.Equal(t, "2026-08-30", profits[1].Date)
	assert.InDelta(t, 15, profits[1].Profit, 0.001)
}

func TestRunOnceUpsertsExistingDay(t *testing.T) {
	db := setupRollupTestDB(t)
	pr := NewProfitRollup(db)

	day := time.Date(2026, 8, 30, 10, 0, 0, 0, time.Local)
	addDelivery(t, db, day, 40)
	assert.NoError(t, pr.RunOnce())

	// nova entrega no mesmo dia: a linha e atualizada, nao duplicada
	addDelivery(t, db, day.Add(time.Hour), 10)
	assert.NoError(t, pr.RunOnce())

	var profits []models.DailyProfit
	assert.NoError(t, db.Find(&profits).Error)
	assert.Len(t, profits, 1)
	assert.InDelta(t, 50, profits[0].Profit, 0.001)
}

func TestRunOnceEmptyHistory(t *testing.T) {
	db := setupRollupTestDB(t)
	pr := NewProfitRollup(db)

	assert.NoError(t, pr.RunOnce())

	var count int64
	db.Model(&models.DailyProfit{}).Count(&count)
	assert.Equal(t, int64(0), count)
}
