package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"gitlab.com/umaxship/console/internal/order"
	"gitlab.com/umaxship/console/internal/projection"
)

const SheetName = "Orders"

var Headers = []string{
	"Order ID", "Type", "Status", "Created", "AWB",
	"Customer", "Phone", "City", "Pincode", "Payment",
	"Amount", "Weight (kg)", "Courier Charges",
}

// WriteOrders renders orders as an xlsx workbook with one row per order.
// Orders whose document cannot be decoded keep their identifying columns and
// leave the customer columns blank. Pending orders show "pending".
func WriteOrders(w io.Writer, orders []order.Order) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(Headers))
	for i, h := range Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, o := range orders {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := orderRow(o)
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("write order %s: %w", o.ID, err)
		}
	}

	if err := f.SetColWidth(SheetName, "A", "A", 20); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetName, "F", "F", 24); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func orderRow(o order.Order) []any {
	created := "pending"
	if !o.Pending() {
		created = o.Timestamp.UTC().Format(time.RFC3339)
	}
	charges := ""
	if o.CourierCharges.Valid {
		charges = o.CourierCharges.Decimal.StringFixed(2)
	}

	row := []any{o.ID, string(o.Type.Normalize()), string(o.CurrentStatus), created, o.AWB,
		"", "", "", "", "", "", "", charges}

	p, err := o.Decode()
	if err != nil {
		return row
	}
	c := p.Billing()
	row[5] = c.Name
	if c.LastName != "" {
		row[5] = c.Name + " " + c.LastName
	}
	row[6] = c.Phone
	row[7] = c.City
	row[8] = c.Pincode
	row[11] = projection.ShipmentWeight(p).String()

	switch p := p.(type) {
	case *order.B2CPayload:
		row[9] = string(p.PaymentMethod)
		row[10] = p.SubTotal.String()
	case *order.B2BPayload:
		row[9] = string(p.PaymentMethod)
		row[10] = p.InvoiceValue.String()
	}
	return row
}
