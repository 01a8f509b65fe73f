package models

import "time"

const SettingsCollection = "settings"

// Settings is a singleton row.
type Settings struct {
	ID             string    `json:"id" gorm:"primaryKey" bson:"id"`
	WhatsAppNumber string    `json:"whatsapp_number" gorm:"column:whatsapp_number" bson:"whatsapp_number"`
	UpdatedAt      time.Time `json:"updated_at" bson:"updated_at"`
}

func (Settings) TableName() string { return SettingsCollection }
