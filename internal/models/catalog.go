package models

// Remote-owned catalog entities. Field names mirror the store's JSON.

type Product struct {
	IDKey       int64   `json:"id_key,omitempty"`
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price" validate:"gte=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	CategoryID  int64   `json:"category_id,omitempty"`
}

type Category struct {
	IDKey       int64  `json:"id_key,omitempty"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
}

type Client struct {
	IDKey     int64  `json:"id_key,omitempty"`
	Name      string `json:"name" validate:"required"`
	Lastname  string `json:"lastname" validate:"required"`
	Email     string `json:"email" validate:"omitempty,email"`
	Telephone string `json:"telephone,omitempty"`
}

type Address struct {
	IDKey    int64  `json:"id_key,omitempty"`
	ClientID int64  `json:"client_id" validate:"required"`
	Street   string `json:"street" validate:"required"`
	Number   string `json:"number"`
	City     string `json:"city" validate:"required"`
}

type Review struct {
	IDKey     int64  `json:"id_key,omitempty"`
	ProductID int64  `json:"product_id" validate:"required"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment,omitempty"`
}
