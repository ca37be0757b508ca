package models

import (
	"time"
)

type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Email       string    `gorm:"unique" json:"email"`
	Password    string    `json:"-"`
	PhoneNumber string    `gorm:"type:varchar(10)" json:"phoneNumber"`
	UserType    string    `gorm:"default:customer" json:"userType"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
