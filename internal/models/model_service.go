package models

import "time"

// Service is a catalog listing offered on the marketplace.
type Service struct {
	ID          string    `gorm:"column:id;primary_key;type:uuid" json:"id"`
	Name        string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Category    string    `gorm:"column:category;type:varchar(128)" json:"category,omitempty"`
	Description string    `gorm:"column:description;type:text" json:"description,omitempty"`
	Cost        float64   `gorm:"column:cost;type:numeric(12,2);not null" json:"cost"`
	Rating      float64   `gorm:"column:rating;type:numeric(3,1);index:idx_service_rating,sort:desc" json:"rating"`
	ImageURL    string    `gorm:"column:image_url;type:varchar(512)" json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Service) TableName() string {
	return "service"
}
