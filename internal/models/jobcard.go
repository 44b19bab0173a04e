package models

import (
	"fmt"
	"strings"
	"time"
)

// JobcardCounter is the counter name used to number jobcards
const JobcardCounter = "jobcard_id"

type PaymentStatus string

const (
	StatusPaid    PaymentStatus = "Paid"
	StatusPartial PaymentStatus = "Partial"
	StatusUnpaid  PaymentStatus = "Unpaid"
)

// DeriveStatus computes the payment status from the running figures.
// Overpayment (negative remaining) counts as Paid.
func DeriveStatus(paid, remaining float64) PaymentStatus {
	switch {
	case remaining <= 0:
		return StatusPaid
	case paid > 0:
		return StatusPartial
	default:
		return StatusUnpaid
	}
}

// FormatJobcardNo renders a sequence number as its display number, e.g. 7 -> JC-00007
func FormatJobcardNo(seq int64) string {
	return fmt.Sprintf("JC-%05d", seq)
}

// LineItem is a named charge on a jobcard (service, part or labour)
type LineItem struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

type Jobcard struct {
	ID        string    `json:"id"`
	SeqID     int64     `json:"seq_id"`
	JobcardNo string    `json:"jobcard_no"`
	Date      time.Time `json:"date"`

	// Customer
	CustomerName string `json:"customer_name" validate:"required"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	City         string `json:"city"`

	// Vehicle
	RegNo        string `json:"reg_no" validate:"required"`
	ModelName    string `json:"model_name"`
	ChassisNo    string `json:"chassis_no"`
	EngineNo     string `json:"engine_no"`
	Km           string `json:"km"`
	Petrol       string `json:"petrol"`
	KeyNo        string `json:"key_no"`
	VehicleType  string `json:"vehicle_type"`
	MechanicName string `json:"mechanic_name"`
	HelperName   string `json:"helper_name"`
	Remarks      string `json:"remarks"`

	Services []LineItem `json:"services"`
	Parts    []LineItem `json:"parts"`
	Labour   []LineItem `json:"labour"`

	Amount    float64       `json:"amount"`
	Paid      float64       `json:"paid"`
	Remaining float64       `json:"remaining"`
	Status    PaymentStatus `json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RefreshStatus re-derives Status from Paid and Remaining
func (j *Jobcard) RefreshStatus() {
	j.Status = DeriveStatus(j.Paid, j.Remaining)
}

// Normalize trims every text field and upper-cases the identifying ones.
// Nil line item lists become empty lists.
func (j *Jobcard) Normalize() {
	upper := func(s string) string { return strings.ToUpper(strings.TrimSpace(s)) }
	trim := strings.TrimSpace

	j.CustomerName = upper(j.CustomerName)
	j.Address = upper(j.Address)
	j.City = upper(j.City)
	j.RegNo = upper(j.RegNo)
	j.ModelName = upper(j.ModelName)
	j.ChassisNo = upper(j.ChassisNo)
	j.EngineNo = upper(j.EngineNo)

	j.Phone = trim(j.Phone)
	j.Km = trim(j.Km)
	j.Petrol = trim(j.Petrol)
	j.KeyNo = trim(j.KeyNo)
	j.VehicleType = trim(j.VehicleType)
	j.MechanicName = trim(j.MechanicName)
	j.HelperName = trim(j.HelperName)
	j.Remarks = trim(j.Remarks)

	j.Services = normalizeItems(j.Services)
	j.Parts = normalizeItems(j.Parts)
	j.Labour = normalizeItems(j.Labour)
}

func normalizeItems(items []LineItem) []LineItem {
	out := make([]LineItem, 0, len(items))
	for _, it := range items {
		it.Name = strings.TrimSpace(it.Name)
		out = append(out, it)
	}
	return out
}

// LineTotal sums a list of line items
func LineTotal(items []LineItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Amount
	}
	return total
}

// CreateJobcardRequest is the body of POST /api/jobcards.
// Paid and Remaining are pointers so omitted values can be defaulted.
type CreateJobcardRequest struct {
	Date         string     `json:"date"`
	CustomerName string     `json:"customer_name"`
	Phone        string     `json:"phone"`
	Address      string     `json:"address"`
	City         string     `json:"city"`
	RegNo        string     `json:"reg_no"`
	ModelName    string     `json:"model_name"`
	ChassisNo    string     `json:"chassis_no"`
	EngineNo     string     `json:"engine_no"`
	Km           string     `json:"km"`
	Petrol       string     `json:"petrol"`
	KeyNo        string     `json:"key_no"`
	VehicleType  string     `json:"vehicle_type"`
	MechanicName string     `json:"mechanic_name"`
	HelperName   string     `json:"helper_name"`
	Remarks      string     `json:"remarks"`
	Services     []LineItem `json:"services"`
	Parts        []LineItem `json:"parts"`
	Labour       []LineItem `json:"labour"`
	Amount       float64    `json:"amount"`
	Paid         *float64   `json:"paid"`
	Remaining    *float64   `json:"remaining"`
}

// UpdateJobcardRequest is a partial update; nil fields are left unchanged
type UpdateJobcardRequest struct {
	Date         *string     `json:"date"`
	CustomerName *string     `json:"customer_name"`
	Phone        *string     `json:"phone"`
	Address      *string     `json:"address"`
	City         *string     `json:"city"`
	RegNo        *string     `json:"reg_no"`
	ModelName    *string     `json:"model_name"`
	ChassisNo    *string     `json:"chassis_no"`
	EngineNo     *string     `json:"engine_no"`
	Km           *string     `json:"km"`
	Petrol       *string     `json:"petrol"`
	KeyNo        *string     `json:"key_no"`
	VehicleType  *string     `json:"vehicle_type"`
	MechanicName *string     `json:"mechanic_name"`
	HelperName   *string     `json:"helper_name"`
	Remarks      *string     `json:"remarks"`
	Services     *[]LineItem `json:"services"`
	Parts        *[]LineItem `json:"parts"`
	Labour       *[]LineItem `json:"labour"`
	Amount       *float64    `json:"amount"`
	Paid         *float64    `json:"paid"`
	Remaining    *float64    `json:"remaining"`
}

// PaymentRequest is the body of POST /api/jobcards/{id}/pay
type PaymentRequest struct {
	Amount float64 `json:"amount"`
	Method string  `json:"method"`
}

// DailyStats is the response of GET /api/stats/daily
type DailyStats struct {
	Date  string  `json:"date"`
	Total float64 `json:"total"`
}
