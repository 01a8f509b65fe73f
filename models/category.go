package models

import "time"

const CategoriesCollection = "categories"

type Category struct {
	ID        string    `json:"id" gorm:"primaryKey" bson:"id"`
	NamePT    string    `json:"name_pt" gorm:"column:name_pt;not null" bson:"name_pt"`
	NameEN    string    `json:"name_en" gorm:"column:name_en;not null" bson:"name_en"`
	NameES    string    `json:"name_es" gorm:"column:name_es;not null" bson:"name_es"`
	ImageURL  *string   `json:"image_url" gorm:"column:image_url" bson:"image_url"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

func (Category) TableName() string { return CategoriesCollection }

// Names returns the three localized names in pt, en, es order.
func (c *Category) Names() []string {
	return []string{c.NamePT, c.NameEN, c.NameES}
}
