package models

// The remote store encodes these enums as integers. Values are part of its
// wire contract and must not be renumbered.
type OrderStatus int

const (
	OrderStatusPending    OrderStatus = 1
	OrderStatusInProgress OrderStatus = 2
	OrderStatusDelivered  OrderStatus = 3
	OrderStatusCanceled   OrderStatus = 4
)

type PaymentType int

const (
	PaymentTypeCash         PaymentType = 1
	PaymentTypeCard         PaymentType = 2
	PaymentTypeDebit        PaymentType = 3
	PaymentTypeCredit       PaymentType = 4
	PaymentTypeBankTransfer PaymentType = 5
)

type DeliveryMethod int

const (
	DeliveryMethodDriveThru    DeliveryMethod = 1
	DeliveryMethodOnHand       DeliveryMethod = 2
	DeliveryMethodHomeDelivery DeliveryMethod = 3
)

// Bill is a remote-owned record; IDKey is assigned by the store and is zero
// on creation requests.
type Bill struct {
	IDKey       int64       `json:"id_key,omitempty"`
	ClientID    int64       `json:"client_id"`
	Date        string      `json:"date"`
	Total       float64     `json:"total"`
	PaymentType PaymentType `json:"payment_type"`
	BillNumber  string      `json:"bill_number"`
	Discount    float64     `json:"discount"`
}

type Order struct {
	IDKey          int64          `json:"id_key,omitempty"`
	ClientID       int64          `json:"client_id"`
	Date           string         `json:"date"`
	Status         OrderStatus    `json:"status"`
	Total          float64        `json:"total"`
	DeliveryMethod DeliveryMethod `json:"delivery_method"`
	BillID         int64          `json:"bill_id"`
}

type OrderLine struct {
	IDKey     int64   `json:"id_key,omitempty"`
	OrderID   int64   `json:"order_id"`
	ProductID int64   `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type CheckoutRequest struct {
	ClientID int64 `json:"client_id" validate:"required"`
}

// CheckoutResult reports the identifiers assigned by the store once the
// whole sequence has succeeded.
type CheckoutResult struct {
	OrderID int64   `json:"order_id"`
	BillID  int64   `json:"bill_id"`
	Total   float64 `json:"total"`
	Lines   int     `json:"lines"`
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required,min=1,max=4"`
}
