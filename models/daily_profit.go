package models

// DailyProfit e o lucro agregado por dia. As linhas sao escritas pelo
// rollup service (e pelo restore de backup); o store apenas le.
type DailyProfit struct {
	ID     uint    `gorm:"primaryKey" json:"id"`
	Date   string  `gorm:"type:varchar(10);uniqueIndex;not null" json:"date"` // YYYY-MM-DD
	Profit float64 `gorm:"type:decimal(10,2);not null" json:"profit"`
}
