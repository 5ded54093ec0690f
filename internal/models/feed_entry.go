package models

import "time"

type FeedEntry struct {
	ID         string  `gorm:"primaryKey" json:"id"`
	FoodTypeID string  `gorm:"not null;index" json:"foodTypeId"`
	Amount     float64 `gorm:"not null" json:"amount"`
	Timestamp  int64   `gorm:"not null;index" json:"timestamp"`
}

func (entry FeedEntry) Time() time.Time {
	return time.UnixMilli(entry.Timestamp)
}
