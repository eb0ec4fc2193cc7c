package models

// Product is one row of the replaceable catalog. Products are created in
// bulk (admin import or seed set) and are never edited individually; the
// only mutation is a full catalog replacement.
type Product struct {
	ID       int64   `json:"id"`
	Code     string  `json:"code"`
	Name     string  `json:"name"`
	Model    string  `json:"model"`
	Price    float64 `json:"price"`
	Discount string  `json:"discount,omitempty"`
	Image    string  `json:"image"`
}

// CartItem is a product with a quantity. The cart holds at most one item
// per product id.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

type Customer struct {
	RIF     string `json:"rif"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Order is an immutable snapshot of the cart at checkout time.
type Order struct {
	ID       string     `json:"id"`
	Date     string     `json:"date"`
	Total    float64    `json:"total"`
	Items    []CartItem `json:"items"`
	Customer *Customer  `json:"customer,omitempty"`
}

// Snapshot is one persisted key/value blob. The stores write their full
// state here after every mutation.
type Snapshot struct {
	Key       string `gorm:"primaryKey;size:64" json:"key"`
	Value     []byte `gorm:"not null"           json:"value"`
	UpdatedAt int64  `gorm:"autoUpdateTime"     json:"updated_at"`
}
