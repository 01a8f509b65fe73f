package models

import "time"

const ProductsCollection = "products"

// ProductType separates physical goods from services (laundry, tours...)
type ProductType string

const (
	ProductTypeProduct ProductType = "product"
	ProductTypeService ProductType = "service"
)

const DefaultCurrency = "BRL"

// Product is a catalog entry. Category holds the name_pt of a Category,
// not its id, and is not kept in sync when the category is renamed.
type Product struct {
	ID        string      `json:"id" gorm:"primaryKey" bson:"id"`
	Active    bool        `json:"active" bson:"active"`
	Featured  bool        `json:"featured" bson:"featured"`
	Type      ProductType `json:"type" gorm:"not null" bson:"type"`
	Category  string      `json:"category" gorm:"index" bson:"category"`
	Price     float64     `json:"price" bson:"price"`
	Currency  string      `json:"currency" bson:"currency"`
	ImageURL  *string     `json:"image_url" gorm:"column:image_url" bson:"image_url"`
	NamePT    string      `json:"name_pt" gorm:"column:name_pt" bson:"name_pt"`
	NameEN    string      `json:"name_en" gorm:"column:name_en" bson:"name_en"`
	NameES    string      `json:"name_es" gorm:"column:name_es" bson:"name_es"`
	DescPT    string      `json:"desc_pt" gorm:"column:desc_pt" bson:"desc_pt"`
	DescEN    string      `json:"desc_en" gorm:"column:desc_en" bson:"desc_en"`
	DescES    string      `json:"desc_es" gorm:"column:desc_es" bson:"desc_es"`
	CreatedAt time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time   `json:"updated_at" bson:"updated_at"`
}

func (Product) TableName() string { return ProductsCollection }

func (t ProductType) Valid() bool {
	return t == ProductTypeProduct || t == ProductTypeService
}
