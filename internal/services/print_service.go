package services

import (
	"bytes"
	"fmt"

	"jobcard-backend/internal/models"
	"jobcard-backend/internal/timeutil"

	"github.com/jung-kurt/gofpdf"
)

// ShopInfo is printed in the header of every layout
type ShopInfo struct {
	Name    string
	Address string
	Phone   string
}

// PrintService renders the two fixed jobcard layouts as PDFs
type PrintService struct {
	Shop ShopInfo
}

func NewPrintService(shop ShopInfo) *PrintService {
	return &PrintService{Shop: shop}
}

// Worksheet renders the mechanic's copy: vehicle details and every line item
func (s *PrintService) Worksheet(j *models.Jobcard) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	s.header(pdf, tr, "Job Card")

	pdf.SetFont("Arial", "", 10)
	for _, row := range worksheetDetails(j) {
		pair(pdf, tr, row[0], row[1], row[2], row[3])
	}
	pdf.Ln(4)

	itemTable(pdf, tr, "Service Detail", j.Services)
	itemTable(pdf, tr, "Parts", j.Parts)
	itemTable(pdf, tr, "Labour Charge", j.Labour)

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(63, 8, fmt.Sprintf("Service: Rs. %.2f", models.LineTotal(j.Services)), "1", 0, "C", true, 0, "")
	pdf.CellFormat(63, 8, fmt.Sprintf("Parts: Rs. %.2f", models.LineTotal(j.Parts)), "1", 0, "C", true, 0, "")
	pdf.CellFormat(64, 8, fmt.Sprintf("Labour: Rs. %.2f", models.LineTotal(j.Labour)), "1", 1, "C", true, 0, "")
	pdf.CellFormat(190, 9, fmt.Sprintf("Final Total (Parts + Labour) Rs. %.2f", j.Amount), "1", 1, "R", false, 0, "")

	if j.Remarks != "" {
		pdf.Ln(3)
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(190, 6, tr("Remarks: "+j.Remarks), "1", "L", false)
	}

	pdf.Ln(14)
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(95, 6, "Print Service Detail : Good / Warranty", "", 0, "L", false, 0, "")
	pdf.CellFormat(95, 6, "Signature", "", 1, "R", false, 0, "")

	return output(pdf)
}

// worksheetDetails lists the label/value pairs of the worksheet header block
func worksheetDetails(j *models.Jobcard) [][4]string {
	return [][4]string{
		{"Jobcard No", j.JobcardNo, "Date", j.Date.In(timeutil.Location()).Format(timeutil.PrintLayout)},
		{"Reg No", j.RegNo, "Model", j.ModelName},
		{"Customer", j.CustomerName, "Phone No", j.Phone},
		{"Address", j.Address, "City / Village", j.City},
		{"Chassis No", j.ChassisNo, "Engine No", j.EngineNo},
		{"Odometer (KM)", j.Km, "Petrol", j.Petrol},
		{"Key No", j.KeyNo, "Vehicle Type", j.VehicleType},
		{"Mechanic Name", j.MechanicName, "Helper Name", j.HelperName},
	}
}

// Receipt renders the customer's copy: parts and labour with the payment summary
func (s *PrintService) Receipt(j *models.Jobcard) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	s.header(pdf, tr, "Receipt")

	pdf.SetFont("Arial", "", 10)
	pair(pdf, tr, "Jobcard No.", j.JobcardNo, "Date", j.Date.In(timeutil.Location()).Format(timeutil.PrintLayout))
	pair(pdf, tr, "Reg No.", j.RegNo, "Model", j.ModelName)
	pair(pdf, tr, "Customer Name", j.CustomerName, "Phone No.", j.Phone)
	pair(pdf, tr, "Address", joinNonEmpty(j.Address, j.City), "Km", j.Km)
	pair(pdf, tr, "Chassis No.", j.ChassisNo, "Engine No.", j.EngineNo)
	pair(pdf, tr, "Mechanic Name", j.MechanicName, "Key No.", j.KeyNo)
	pdf.Ln(4)

	items := append(append([]models.LineItem{}, j.Services...), j.Parts...)
	itemTable(pdf, tr, "Parts Detail", items)
	itemTable(pdf, tr, "Labour Detail", j.Labour)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 9, fmt.Sprintf("Final Total (Parts + Labour) Rs. : %.2f", j.Amount), "1", 1, "R", false, 0, "")

	// Balance: light red when outstanding, light green when settled
	if j.Remaining > 0 {
		pdf.SetFillColor(255, 200, 200)
	} else {
		pdf.SetFillColor(200, 255, 200)
	}
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(63, 8, fmt.Sprintf("Paid: Rs. %.2f", j.Paid), "1", 0, "C", true, 0, "")
	pdf.CellFormat(63, 8, fmt.Sprintf("Remaining: Rs. %.2f", j.Remaining), "1", 0, "C", true, 0, "")
	pdf.CellFormat(64, 8, fmt.Sprintf("Status: %s", j.Status), "1", 1, "C", true, 0, "")

	pdf.Ln(14)
	pdf.CellFormat(190, 6, "Signature :", "", 1, "R", false, 0, "")

	return output(pdf)
}

func (s *PrintService) header(pdf *gofpdf.Fpdf, tr func(string) string, title string) {
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 9, tr(s.Shop.Name), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	if s.Shop.Address != "" {
		pdf.CellFormat(190, 5, tr(s.Shop.Address), "", 1, "C", false, 0, "")
	}
	if s.Shop.Phone != "" {
		pdf.CellFormat(190, 5, tr("Phone: "+s.Shop.Phone), "", 1, "C", false, 0, "")
	}
	pdf.Ln(2)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, title, "1", 1, "C", true, 0, "")
	pdf.Ln(2)
}

func pair(pdf *gofpdf.Fpdf, tr func(string) string, k1, v1, k2, v2 string) {
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(35, 7, k1, "1", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(60, 7, tr(v1), "1", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(35, 7, k2, "1", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(60, 7, tr(v2), "1", 1, "L", false, 0, "")
}

func itemTable(pdf *gofpdf.Fpdf, tr func(string) string, title string, items []models.LineItem) {
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(15, 7, "No.", "1", 0, "C", true, 0, "")
	pdf.CellFormat(135, 7, title, "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, 7, "Amount", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for i, it := range items {
		pdf.CellFormat(15, 6, fmt.Sprintf("%d", i+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(135, 6, tr(it.Name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("%.2f", it.Amount), "1", 1, "R", false, 0, "")
	}
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(150, 6, "Total (Rs) :", "1", 0, "R", false, 0, "")
	pdf.CellFormat(40, 6, fmt.Sprintf("%.2f", models.LineTotal(items)), "1", 1, "R", false, 0, "")
	pdf.Ln(3)
}

func joinNonEmpty(parts ...string) string {
	var out string
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += ", "
		}
		out += p
	}
	return out
}

func output(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
