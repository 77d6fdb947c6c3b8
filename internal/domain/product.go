package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Brand       string             `bson:"brand" json:"brand"`
	Description string             `bson:"description" json:"description"`
	Price       decimal.Decimal    `bson:"price" json:"price"`
	Image       string             `bson:"image" json:"image"`
	Images      []string           `bson:"images,omitempty" json:"images,omitempty"`
	Stock       int                `bson:"stock" json:"stock"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}

// ProductUpdate carries only the fields an admin supplied; nil means unchanged.
type ProductUpdate struct {
	Name        *string
	Brand       *string
	Description *string
	Price       *decimal.Decimal
	Image       *string
	Images      []string
	Stock       *int
	UpdatedAt   time.Time
}

func (u ProductUpdate) Apply(p *Product) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Brand != nil {
		p.Brand = *u.Brand
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	if u.Image != nil {
		p.Image = *u.Image
	}
	if u.Images != nil {
		p.Images = u.Images
	}
	if u.Stock != nil {
		p.Stock = *u.Stock
	}
	p.UpdatedAt = u.UpdatedAt
}
