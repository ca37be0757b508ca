package models

import (
	"time"

	"github.com/lib/pq"
)

type Hotel struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"type:varchar(100)"`
	Description string         `json:"description" gorm:"type:text"`
	Location    string         `json:"location" gorm:"type:varchar(100)"`
	PhoneNumber string         `json:"phoneNumber" gorm:"type:varchar(20)"`
	Email       string         `json:"email" gorm:"type:varchar(100)"`
	ManagerID   uint           `json:"managerId" gorm:"index"`
	Manager     *User          `json:"manager,omitempty" gorm:"foreignKey:ManagerID"`
	IsApproved  bool           `json:"isApproved" gorm:"default:false"`
	ImageURL    string         `json:"imageUrl"`
	Gallery     pq.StringArray `json:"gallery" gorm:"type:text[]"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	Rooms       []Room         `json:"rooms,omitempty" gorm:"foreignKey:HotelID;constraint:OnDelete:CASCADE"`
}
