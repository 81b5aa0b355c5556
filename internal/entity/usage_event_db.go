package entity

import "time"

// DbUsageEvent stores one usage event mirrored into the local database.
type DbUsageEvent struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	CustomerID string  `gorm:"column:customer_id;type:varchar(255);index" json:"customer_id"`
	Type       string  `gorm:"column:type;type:varchar(32);index" json:"type"`
	Cost       float64 `gorm:"column:cost" json:"cost"`
	CostKey    string  `gorm:"column:cost_key;type:varchar(64)" json:"cost_key"`
}

// TableName 指定表名
func (DbUsageEvent) TableName() string {
	return "usage_events"
}

// ToItem converts the database row into its API view.
func (e DbUsageEvent) ToItem() UsageEventItem {
	return UsageEventItem{
		ID:         e.ID,
		CustomerID: e.CustomerID,
		Type:       e.Type,
		Cost:       e.Cost,
		CostKey:    e.CostKey,
		CreatedAt:  e.CreatedAt,
	}
}
