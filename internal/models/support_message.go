package models

import "time"

type SupportMessage struct {
	ID         uint       `gorm:"primaryKey"`
	UserEmail  string     `gorm:"not null;index"`
	Message    string     `gorm:"not null"`
	Response   *string    `gorm:"column:response"`
	CreatedAt  time.Time  `gorm:"not null"`
	AnsweredAt *time.Time `gorm:"column:answered_at"`
}

func (message SupportMessage) Answered() bool {
	return message.Response != nil
}
