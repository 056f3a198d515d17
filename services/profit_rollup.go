package services

import (
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/thalisfel/sistema-de-gerenciamento-de-pedidos/models"
	"github.com/thalisfel/sistema-de-gerenciamento-de-pedidos/utils"
)

// ProfitRollup agrega o historico de pedidos em linhas de lucro diario.
// E o "processo externo" que alimenta a tabela daily_profits: o store
// nunca escreve nela.
type ProfitRollup struct {
	DB   *gorm.DB
	cron *cron.Cron
}

func NewProfitRollup(db *gorm.DB) *ProfitRollup {
	return &ProfitRollup{
		DB:   db,
		cron: cron.New(),
	}
}

// Start agenda o rollup logo depois da virada do dia e roda uma vez na
// subida para cobrir entregas feitas com o servico parado.
func (pr *ProfitRollup) Start() {
	if _, err := pr.cron.AddFunc("10 0 * * *", func() {
		if err := pr.RunOnce(); err != nil {
			utils.ErrorLogger.Printf("profit rollup failed: %v", err)
		}
	}); err != nil {
		utils.ErrorLogger.Printf("failed to schedule profit rollup: %v", err)
		return
	}
	pr.cron.Start()

	if err := pr.RunOnce(); err != nil {
		utils.ErrorLogger.Printf("initial profit rollup failed: %v", err)
	}
}

func (pr *ProfitRollup) Stop() {
	pr.cron.Stop()
}

// RunOnce soma o total entregue por dia-calendario local e faz upsert em
// daily_profits. A agregacao acontece em Go para nao depender das funcoes
// de data de cada dialeto.
func (pr *ProfitRollup) RunOnce() error {
	var history []models.OrderHistory
	if err := pr.DB.Find(&history).Error; err != nil {
		return err
	}

	totals := make(map[string]float64)
	for _, h := range history {
		day := h.DeliveredAt.Local().Format("2006-01-02")
		totals[day] += h.Total
	}

	for day, profit := range totals {
		row := models.DailyProfit{Date: day, Profit: profit}
		err := pr.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "date"}},
			DoUpdates: clause.AssignmentColumns([]string{"profit"}),
		}).Create(&row).Error
		if err != nil {
			return err
		}
	}

	if len(totals) > 0 {
		utils.InfoLogger.Printf("Profit rollup updated %d day(s)", len(totals))
	}
	return nil
}
