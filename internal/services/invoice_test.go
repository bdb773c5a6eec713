package services

import (
	"bytes"
	"testing"
	"time"
)

func TestGenerateInvoicePDF(t *testing.T) {
	data := InvoiceData{
		Reference:    "a1b2c3d4",
		CustomerName: "Jane Smith",
		CarName:      "Toyota Land Cruiser",
		TotalDays:    3,
		Amount:       150,
		Currency:     "$",
		PickupDate:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		ReturnDate:   time.Date(2025, 1, 4, 0, 0, 0, 0, time.UTC),
		SiteName:     "Elite Car Rentals",
		SupportEmail: "support@elitecars.example",
	}

	pdfBytes, filename, err := GenerateInvoicePDF(data)
	if err != nil {
		t.Fatalf("GenerateInvoicePDF returned error: %v", err)
	}
	if len(pdfBytes) == 0 {
		t.Fatal("expected non-empty PDF output")
	}
	if !bytes.HasPrefix(pdfBytes, []byte("%PDF")) {
		t.Errorf("output does not look like a PDF, starts with %q", pdfBytes[:4])
	}
	if filename != "INVOICE_a1b2c3d4.pdf" {
		t.Errorf("unexpected filename %q", filename)
	}
}

func TestGenerateInvoicePDFDefaults(t *testing.T) {
	pdfBytes, filename, err := GenerateInvoicePDF(InvoiceData{
		Reference:  "x/y z",
		TotalDays:  1,
		Amount:     50,
		PickupDate: time.Now(),
		ReturnDate: time.Now().AddDate(0, 0, 1),
	})
	if err != nil {
		t.Fatalf("GenerateInvoicePDF returned error: %v", err)
	}
	if len(pdfBytes) == 0 {
		t.Fatal("expected non-empty PDF output")
	}
	if filename != "INVOICE_x_y_z.pdf" {
		t.Errorf("unexpected filename %q", filename)
	}
}
