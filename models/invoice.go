package models

import "time"

// InvoiceItem is one billed line on an invoice.
type InvoiceItem struct {
	Description string  `bson:"description" json:"description"`
	Quantity    int     `bson:"quantity" json:"quantity"`
	Rate        float64 `bson:"rate" json:"rate"`
	Amount      float64 `bson:"amount" json:"amount"`
}

// Invoice is generated from a completed appointment. The invoice number is
// unique and scoped to the fiscal year (e.g. "Inv-24-25/KTS-007").
type Invoice struct {
	ID            string        `bson:"id" json:"id"`
	InvoiceNumber string        `bson:"invoice_number" json:"invoice_number"`
	AppointmentID string        `bson:"appointment_id" json:"appointment_id"`
	CustomerName  string        `bson:"customer_name" json:"customer_name"`
	CustomerEmail string        `bson:"customer_email" json:"customer_email"`
	CustomerPhone string        `bson:"customer_phone" json:"customer_phone"`
	Items         []InvoiceItem `bson:"items" json:"items"`
	Subtotal      float64       `bson:"subtotal" json:"subtotal"`
	DiscountPct   float64       `bson:"discount_percent" json:"discount_percent"`
	Discount      float64       `bson:"discount" json:"discount"`
	TaxPct        float64       `bson:"tax_percent" json:"tax_percent"`
	Tax           float64       `bson:"tax" json:"tax"`
	Total         float64       `bson:"total" json:"total"`
	Status        string        `bson:"status" json:"status"`
	CreatedAt     time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `bson:"updated_at" json:"updated_at"`
}
