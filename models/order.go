package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Order statuses. An order starts at Pending and ends at Delivered
// (archived) or Cancelled (not archived).
const (
	StatusPending   = "Pending"
	StatusPreparing = "Preparing"
	StatusReady     = "Ready"
	StatusDelivered = "Delivered"
	StatusCancelled = "Cancelled"
)

var orderStatuses = map[string]bool{
	StatusPending:   true,
	StatusPreparing: true,
	StatusReady:     true,
	StatusDelivered: true,
	StatusCancelled: true,
}

// IsValidStatus -> verifica se o status pertence a enumeracao
func IsValidStatus(status string) bool {
	return orderStatuses[status]
}

type LineItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// LineItems e persistido como coluna JSON text
type LineItems []LineItem

func (li LineItems) Value() (driver.Value, error) {
	return json.Marshal(li)
}

func (li *LineItems) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, li)
	case string:
		return json.Unmarshal([]byte(v), li)
	case nil:
		*li = nil
		return nil
	}
	return errors.New("unsupported type for LineItems")
}

type Order struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Items       LineItems  `gorm:"type:text;not null" json:"items"`
	Total       float64    `gorm:"type:decimal(10,2);not null" json:"total"`
	Status      string     `gorm:"type:varchar(20);not null;default:'Pending'" json:"status"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`
}
