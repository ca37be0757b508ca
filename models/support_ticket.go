package models

import "time"

type SupportTicket struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userId" gorm:"index"`
	User      *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message" gorm:"type:text"`
	Status    string    `json:"status" gorm:"default:open"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}
