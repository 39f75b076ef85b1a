package domain

// InquiryStatus is the closed status enumeration for inquiries.
// Any admin may set any status; there is no enforced transition order.
type InquiryStatus = string

const (
	StatusOpen        InquiryStatus = "open"
	StatusResponded   InquiryStatus = "responded"
	StatusNegotiation InquiryStatus = "negotiation"
	StatusClosed      InquiryStatus = "closed"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusOpen, StatusResponded, StatusNegotiation, StatusClosed:
		return true
	}
	return false
}

type Product struct {
	ID          string `db:"id" json:"id"`
	SKU         string `db:"sku" json:"sku"`
	Title       string `db:"title" json:"title"`
	Slug        string `db:"slug" json:"slug"`
	MetalType   string `db:"metal_type" json:"metalType"`
	Category    string `db:"category" json:"category"`
	Grade       string `db:"grade" json:"grade"`
	SpecsJSON   string `db:"specs_json" json:"specs"`   // open key/value map, stored as JSON text
	ImagesJSON  string `db:"images_json" json:"images"` // ordered list of image paths
	StockQty    int    `db:"stock_qty" json:"stockQty"`
	MinOrderQty int    `db:"min_order_qty" json:"minOrderQty"`
	Active      bool   `db:"active" json:"active"`
	CreatedAt   string `db:"created_at" json:"createdAt"`
	UpdatedAt   string `db:"updated_at" json:"updatedAt"`
}

type Inquiry struct {
	ID              string `db:"id" json:"id"`
	Number          string `db:"number" json:"number"`
	BuyerID         string `db:"buyer_id" json:"buyerId"`
	CompanyID       string `db:"company_id" json:"companyId,omitempty"`
	DeliveryAddress string `db:"delivery_address" json:"deliveryAddress"`
	DeliveryCity    string `db:"delivery_city" json:"deliveryCity"`
	DeliveryState   string `db:"delivery_state" json:"deliveryState"`
	DeliveryPin     string `db:"delivery_pin" json:"deliveryPin"`
	Notes           string `db:"notes" json:"notes"`
	Status          string `db:"status" json:"status"`
	CreatedAt       string `db:"created_at" json:"createdAt"`
	UpdatedAt       string `db:"updated_at" json:"updatedAt"`
}

type InquiryItem struct {
	ID        string `db:"id" json:"id"`
	InquiryID string `db:"inquiry_id" json:"inquiryId"`
	ProductID string `db:"product_id" json:"productId"`
	Qty       int    `db:"qty" json:"qty"`
	UOM       string `db:"uom" json:"uom"`
	Note      string `db:"note" json:"note,omitempty"`
}

type InquiryReply struct {
	ID        string `db:"id" json:"id"`
	InquiryID string `db:"inquiry_id" json:"inquiryId"`
	Message   string `db:"message" json:"message"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}

type Company struct {
	ID    string `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	GST   string `db:"gst" json:"gst,omitempty"`
	City  string `db:"city" json:"city,omitempty"`
	State string `db:"state" json:"state,omitempty"`
}

type Profile struct {
	UserID    string `db:"user_id" json:"userId"`
	Name      string `db:"name" json:"name"`
	Phone     string `db:"phone" json:"phone,omitempty"`
	CompanyID string `db:"company_id" json:"companyId,omitempty"`
}

// PricePoint is one reference price in the market price index.
type PricePoint struct {
	ID           string `db:"id" json:"id"`
	Metal        string `db:"metal" json:"metal"`
	PricePerUnit string `db:"price_per_unit" json:"pricePerUnit"` // decimal, stored as text
	Unit         string `db:"unit" json:"unit"`
	Currency     string `db:"currency" json:"currency"`
	Source       string `db:"source" json:"source,omitempty"`
	Timestamp    string `db:"timestamp" json:"timestamp"`
}

// Availability is a buyer-facing stock status derived from stock_qty.
type Availability struct {
	Status string `json:"status"` // IN_STOCK | LOW_STOCK | OUT_OF_STOCK
	Qty    int    `json:"qty,omitempty"`
}
