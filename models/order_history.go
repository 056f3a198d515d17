package models

import "time"

// OrderHistory e um snapshot imutavel de um pedido entregue.
// Criado somente pela transicao para Delivered, na mesma transacao que
// atualiza o status do pedido.
type OrderHistory struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OrderID     uint      `gorm:"not null;index" json:"order_id"`
	Items       LineItems `gorm:"type:text;not null" json:"items"`
	Total       float64   `gorm:"type:decimal(10,2);not null" json:"total"`
	Status      string    `gorm:"type:varchar(20);not null" json:"status"`
	OrderedAt   time.Time `gorm:"not null" json:"ordered_at"`
	DeliveredAt time.Time `gorm:"not null;index" json:"delivered_at"`
}

func (OrderHistory) TableName() string {
	return "order_histories"
}
