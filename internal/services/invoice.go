package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"
)

// InvoiceData carries everything the invoice PDF needs
type InvoiceData struct {
	Reference    string
	CustomerName string
	CarName      string
	TotalDays    int
	Amount       float64
	Currency     string
	PickupDate   time.Time
	ReturnDate   time.Time
	SiteName     string
	SupportEmail string
}

// GenerateInvoicePDF renders a paid booking's invoice and returns the
// PDF bytes along with a download filename.
func GenerateInvoicePDF(d InvoiceData) ([]byte, string, error) {
	site := strings.TrimSpace(d.SiteName)
	if site == "" {
		site = "Elite Car Rentals"
	}
	currency := strings.TrimSpace(d.Currency)
	if currency == "" {
		currency = "$"
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice "+d.Reference, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.Cell(0, 10, strings.ToUpper(site))
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, "Booking Invoice")
	pdf.Ln(10)

	pdf.SetDrawColor(180, 180, 180)
	pdf.Line(10, pdf.GetY(), 200, pdf.GetY())
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, "Invoice No : INV-"+safeRef(d.Reference))
	pdf.Ln(6)
	pdf.Cell(0, 6, "Issued     : "+time.Now().Format("2006-01-02"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "BILL TO")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, safeField(d.CustomerName, "-"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "DETAILS")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	desc := fmt.Sprintf("Car rental: %s, %s to %s (%d day(s))",
		safeField(d.CarName, "-"),
		d.PickupDate.Format("2006-01-02"),
		d.ReturnDate.Format("2006-01-02"),
		d.TotalDays,
	)
	pdf.MultiCell(0, 6, desc, "", "", false)
	pdf.Ln(2)

	perDay := 0.0
	if d.TotalDays > 0 {
		perDay = d.Amount / float64(d.TotalDays)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Rate per day : %s%.2f", currency, perDay))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Days         : %d", d.TotalDays))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, fmt.Sprintf("Total Paid: %s%.2f", currency, d.Amount))
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "I", 9)
	footer := "Thank you for choosing " + site + "."
	if strings.TrimSpace(d.SupportEmail) != "" {
		footer += " Questions? Contact " + d.SupportEmail + "."
	}
	pdf.MultiCell(0, 5, footer, "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("INVOICE_%s.pdf", safeRef(d.Reference))
	return buf.Bytes(), filename, nil
}

func safeField(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeRef(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
