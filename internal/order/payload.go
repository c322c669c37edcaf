package order

import "github.com/shopspring/decimal"

type PaymentMethod string

const (
	PaymentCOD     PaymentMethod = "COD"
	PaymentPrepaid PaymentMethod = "Prepaid"
)

// Payload is the decoded order document. It is either *B2CPayload or
// *B2BPayload; callers type-switch on it.
type Payload interface {
	OrderType() Type
	Billing() Customer
	isPayload()
}

type Customer struct {
	Name     string `json:"billing_customer_name" validate:"required,personname"`
	LastName string `json:"billing_last_name" validate:"omitempty,personname"`
	Address  string `json:"billing_address" validate:"required,addressline"`
	Address2 string `json:"billing_address_2" validate:"omitempty,addressline"`
	City     string `json:"billing_city" validate:"required"`
	Pincode  string `json:"billing_pincode" validate:"required,pincode"`
	State    string `json:"billing_state" validate:"required"`
	Country  string `json:"billing_country" validate:"required"`
	Email    string `json:"billing_email" validate:"omitempty,email"`
	Phone    string `json:"billing_phone" validate:"required,phone"`
}

type LineItem struct {
	Name         string  `json:"name" validate:"required"`
	SKU          string  `json:"sku" validate:"required,alphanumdash"`
	Units        Measure `json:"units" validate:"gt=0"`
	SellingPrice Measure `json:"selling_price" validate:"gt=0"`
	HSN          string  `json:"hsn" validate:"omitempty,numeric"`
}

// B2CPayload is an itemised single-package shipment.
type B2CPayload struct {
	Customer
	PaymentMethod PaymentMethod `json:"payment_method" validate:"required,oneof=COD Prepaid"`
	OrderItems    []LineItem    `json:"order_items" validate:"required,min=1,dive"`
	SubTotal      Measure       `json:"sub_total" validate:"gt=0"`
	Length        Measure       `json:"length" validate:"gt=0"`
	Breadth       Measure       `json:"breadth" validate:"gt=0"`
	Height        Measure       `json:"height" validate:"gt=0"`
	Weight        Measure       `json:"weight" validate:"gt=0"`
}

func (*B2CPayload) OrderType() Type     { return TypeB2C }
func (p *B2CPayload) Billing() Customer { return p.Customer }
func (*B2CPayload) isPayload()          {}

type Box struct {
	Length  Measure `json:"length" validate:"gt=0"`
	Breadth Measure `json:"breadth" validate:"gt=0"`
	Height  Measure `json:"height" validate:"gt=0"`
	Weight  Measure `json:"weight" validate:"gt=0"`
	Count   Measure `json:"count" validate:"gt=0"`
}

// B2BPayload is a bulk multi-box shipment. TotalWeight and TotalCount are
// derived from Boxes when the order is built and stored alongside them.
type B2BPayload struct {
	Customer
	PaymentMethod   PaymentMethod `json:"payment_method" validate:"required,oneof=COD Prepaid"`
	ProductDesc     string        `json:"product_desc" validate:"required"`
	ProductCategory string        `json:"product_category" validate:"required"`
	InvoiceValue    Measure       `json:"invoice_value" validate:"gt=0"`
	Boxes           []Box         `json:"boxes" validate:"required,min=1,dive"`
	TotalWeight     Measure       `json:"totalWeight"`
	TotalCount      Measure       `json:"totalCount"`
}

func (*B2BPayload) OrderType() Type     { return TypeB2B }
func (p *B2BPayload) Billing() Customer { return p.Customer }
func (*B2BPayload) isPayload()          {}

// ComputeTotals sets TotalWeight to the count-weighted sum of box weights
// and TotalCount to the number of boxes.
func (p *B2BPayload) ComputeTotals() {
	weight := decimal.Zero
	count := decimal.Zero
	for _, b := range p.Boxes {
		weight = weight.Add(b.Weight.Mul(b.Count.Decimal))
		count = count.Add(b.Count.Decimal)
	}
	p.TotalWeight = Measure{Decimal: weight}
	p.TotalCount = Measure{Decimal: count}
}
