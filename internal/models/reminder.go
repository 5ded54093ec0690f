package models

type ReminderRepeat string

const (
	RepeatDaily    ReminderRepeat = "daily"
	RepeatWeekdays ReminderRepeat = "weekdays"
)

type Reminder struct {
	ID             string         `gorm:"primaryKey" json:"id"`
	Title          string         `gorm:"not null" json:"title"`
	Time           string         `gorm:"not null" json:"time"`
	Enabled        bool           `gorm:"not null;default:false" json:"enabled"`
	Repeat         ReminderRepeat `gorm:"not null;default:''" json:"repeat,omitempty"`
	NotificationID string         `gorm:"not null;default:''" json:"notificationId,omitempty"`
	Position       int            `gorm:"not null;default:0" json:"-"`
}
