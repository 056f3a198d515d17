package store

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/thalisfel/sistema-de-gerenciamento-de-pedidos/models"
)

// OrderStore e o dono dos pedidos ativos e do historico. Construido
// explicitamente e injetado nos controllers; nada de singleton global.
type OrderStore struct {
	DB *gorm.DB
}

func NewOrderStore(db *gorm.DB) *OrderStore {
	return &OrderStore{DB: db}
}

// GeneralStats agrega numeros sobre o historico (somente pedidos entregues).
type GeneralStats struct {
	TotalOrders   int64   `json:"total_orders"`
	TotalRevenue  float64 `json:"total_revenue"`
	AverageTicket float64 `json:"average_ticket"`
	OrdersToday   int64   `json:"orders_today"`
	RevenueToday  float64 `json:"revenue_today"`
}

// Create -> cria pedido com status Pending e timestamp atual.
// Falha com ValidationError quando items esta vazio ou total e invalido.
func (s *OrderStore) Create(items models.LineItems, total float64) (*models.Order, error) {
	if len(items) == 0 {
		return nil, newValidationError("items", "at least one item is required")
	}
	if math.IsNaN(total) || math.IsInf(total, 0) || total < 0 {
		return nil, newValidationError("total", "must be a non-negative number")
	}

	order := models.Order{
		Items:     items,
		Total:     total,
		Status:    models.StatusPending,
		CreatedAt: time.Now(),
	}
	if err := s.DB.Create(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// List -> pedidos por data de criacao desc. Com includeDelivered=false,
// esconde Delivered e Cancelled (somente pedidos ativos).
func (s *OrderStore) List(includeDelivered bool) ([]models.Order, error) {
	var orders []models.Order
	query := s.DB.Order("created_at DESC")
	if !includeDelivered {
		query = query.Where("status NOT IN ?", []string{models.StatusDelivered, models.StatusCancelled})
	}
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateStatus muda o status de um pedido. Na transicao para Delivered,
// grava delivered_at e insere o snapshot no historico dentro da MESMA
// transacao: ou os dois efeitos sao visiveis, ou nenhum.
func (s *OrderStore) UpdateStatus(id uint, status string) (*models.Order, error) {
	// validacao vem antes da busca: status desconhecido falha mesmo
	// quando o pedido nao existe
	if !models.IsValidStatus(status) {
		return nil, newValidationError("status", fmt.Sprintf("unknown status %q", status))
	}

	var order models.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		// estado terminal nao tem transicao de saida; sem esse guard uma
		// segunda entrega duplicaria o registro no historico
		if order.Status == models.StatusDelivered || order.Status == models.StatusCancelled {
			return newValidationError("status", "order is already "+order.Status)
		}

		order.Status = status
		if status == models.StatusDelivered {
			now := time.Now()
			order.DeliveredAt = &now
		}
		if err := tx.Save(&order).Error; err != nil {
			return err
		}

		if status == models.StatusDelivered {
			snapshot := models.OrderHistory{
				OrderID:     order.ID,
				Items:       order.Items,
				Total:       order.Total,
				Status:      order.Status,
				OrderedAt:   order.CreatedAt,
				DeliveredAt: *order.DeliveredAt,
			}
			if err := tx.Create(&snapshot).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Delete -> remove o pedido e devolve se alguma linha saiu. Quando a
// tabela fica vazia o contador de ids volta para 1, entao o proximo
// pedido criado recebe id 1.
func (s *OrderStore) Delete(id uint) (bool, error) {
	var removed bool
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.Order{}, id)
		if result.Error != nil {
			return result.Error
		}
		removed = result.RowsAffected > 0

		var count int64
		if err := tx.Model(&models.Order{}).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			ResetSequence(tx, "orders")
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}

// GeneralStatistics computa os agregados sobre o historico. Pedidos ativos
// nao contam; "hoje" e igualdade de dia-calendario local com delivered_at.
func (s *OrderStore) GeneralStatistics() (*GeneralStats, error) {
	var stats GeneralStats

	row := s.DB.Model(&models.OrderHistory{}).
		Select("COUNT(*), COALESCE(SUM(total), 0)").Row()
	if err := row.Scan(&stats.TotalOrders, &stats.TotalRevenue); err != nil {
		return nil, err
	}

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	row = s.DB.Model(&models.OrderHistory{}).
		Select("COUNT(*), COALESCE(SUM(total), 0)").
		Where("delivered_at >= ? AND delivered_at < ?", dayStart, dayEnd).Row()
	if err := row.Scan(&stats.OrdersToday, &stats.RevenueToday); err != nil {
		return nil, err
	}

	if stats.TotalOrders > 0 {
		stats.AverageTicket = stats.TotalRevenue / float64(stats.TotalOrders)
	}
	return &stats, nil
}

// ListHistory -> snapshots por data de entrega desc.
func (s *OrderStore) ListHistory() ([]models.OrderHistory, error) {
	var history []models.OrderHistory
	if err := s.DB.Order("delivered_at DESC").Find(&history).Error; err != nil {
		return nil, err
	}
	return history, nil
}

// ClearHistory -> apaga todo o historico, devolve quantas linhas sairam e
// reinicia o contador de ids do historico.
func (s *OrderStore) ClearHistory() (int64, error) {
	var count int64
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Exec("DELETE FROM order_histories")
		if result.Error != nil {
			return result.Error
		}
		count = result.RowsAffected
		ResetSequence(tx, "order_histories")
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// ResetCounters apaga TODOS os pedidos, historico, produtos e lucros
// diarios e reinicia os contadores de id. Apesar do nome, e um wipe
// destrutivo e irreversivel, nao um ajuste de contador. Usuarios ficam.
// Idempotente: rodar duas vezes seguidas termina no mesmo estado vazio.
func (s *OrderStore) ResetCounters() error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		for _, table := range []string{"orders", "order_histories", "products", "daily_profits"} {
			if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
				return err
			}
		}
		for _, table := range []string{"orders", "order_histories", "products"} {
			ResetSequence(tx, table)
		}
		return nil
	})
}

// ProfitForPeriod le os lucros diarios. Com as duas datas (YYYY-MM-DD),
// intervalo inclusivo em ordem desc; sem elas, as 30 linhas mais recentes.
// Somente leitura: quem escreve essas linhas e o rollup service.
func (s *OrderStore) ProfitForPeriod(startDate, endDate string) ([]models.DailyProfit, error) {
	var profits []models.DailyProfit
	query := s.DB.Order("date DESC")
	if startDate != "" && endDate != "" {
		query = query.Where("date BETWEEN ? AND ?", startDate, endDate)
	} else {
		query = query.Limit(30)
	}
	if err := query.Find(&profits).Error; err != nil {
		return nil, err
	}
	return profits, nil
}

// ResetSequence reinicia o auto-increment da tabela. Best effort: em
// sqlite a tabela sqlite_sequence so existe depois do primeiro insert.
func ResetSequence(tx *gorm.DB, table string) {
	switch tx.Dialector.Name() {
	case "sqlite":
		tx.Exec("DELETE FROM sqlite_sequence WHERE name = ?", table)
	case "mysql":
		tx.Exec(fmt.Sprintf("ALTER TABLE %s AUTO_INCREMENT = 1", table))
	}
}
