package models

import (
	"strings"
	"time"
)

type RefKind int

const (
	RefByID RefKind = iota
	RefBySequence
	RefByDisplayNumber
)

func (k RefKind) String() string {
	switch k {
	case RefByID:
		return "id"
	case RefBySequence:
		return "seq_id"
	default:
		return "jobcard_no"
	}
}

// JobcardRef identifies a jobcard by exactly one of its three representations
type JobcardRef struct {
	Kind      RefKind
	ID        string
	Seq       int64
	DisplayNo string
}

// SearchRequest is the body of POST /api/jobcards/search
type SearchRequest struct {
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	JobcardNo    string `json:"jobcardNo"`
	CustomerName string `json:"customerName"`
	RegNo        string `json:"regNo"`
	Phone        string `json:"phone"`
	City         string `json:"city"`
	ChassisNo    string `json:"chassisNo"`
	ModelName    string `json:"modelName"`
	MechanicName string `json:"mechanicName"`
	HelperName   string `json:"helperName"`
	Status       string `json:"status"`
}

// JobcardFilter is the parsed form of a list or search query.
// Zero values mean "no constraint".
type JobcardFilter struct {
	From *time.Time
	To   *time.Time

	JobcardNo    string
	CustomerName string
	RegNo        string
	Phone        string
	City         string
	ChassisNo    string
	ModelName    string
	MechanicName string
	HelperName   string
	Status       string
}

// TextCriteria pairs each non-empty substring criterion with the column it
// applies to. Status is compared exactly and is not included.
func (f JobcardFilter) TextCriteria() []TextCriterion {
	all := []TextCriterion{
		{Column: "jobcard_no", Value: f.JobcardNo},
		{Column: "customer_name", Value: f.CustomerName},
		{Column: "reg_no", Value: f.RegNo},
		{Column: "phone", Value: f.Phone},
		{Column: "city", Value: f.City},
		{Column: "chassis_no", Value: f.ChassisNo},
		{Column: "model_name", Value: f.ModelName},
		{Column: "mechanic_name", Value: f.MechanicName},
		{Column: "helper_name", Value: f.HelperName},
	}
	out := all[:0]
	for _, c := range all {
		if strings.TrimSpace(c.Value) != "" {
			c.Value = strings.TrimSpace(c.Value)
			out = append(out, c)
		}
	}
	return out
}

type TextCriterion struct {
	Column string
	Value  string
}

// Matches reports whether j satisfies every criterion of f
func (f JobcardFilter) Matches(j *Jobcard) bool {
	if f.From != nil && j.Date.Before(*f.From) {
		return false
	}
	if f.To != nil && j.Date.After(*f.To) {
		return false
	}
	if status := strings.TrimSpace(f.Status); status != "" && !strings.EqualFold(string(j.Status), status) {
		return false
	}
	for _, c := range f.TextCriteria() {
		if !containsFold(j.field(c.Column), c.Value) {
			return false
		}
	}
	return true
}

func (j *Jobcard) field(column string) string {
	switch column {
	case "jobcard_no":
		return j.JobcardNo
	case "customer_name":
		return j.CustomerName
	case "reg_no":
		return j.RegNo
	case "phone":
		return j.Phone
	case "city":
		return j.City
	case "chassis_no":
		return j.ChassisNo
	case "model_name":
		return j.ModelName
	case "mechanic_name":
		return j.MechanicName
	case "helper_name":
		return j.HelperName
	}
	return ""
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

// NewestFirst orders jobcards by date descending, then sequence descending
func NewestFirst(a, b *Jobcard) int {
	if !a.Date.Equal(b.Date) {
		if a.Date.After(b.Date) {
			return -1
		}
		return 1
	}
	switch {
	case a.SeqID > b.SeqID:
		return -1
	case a.SeqID < b.SeqID:
		return 1
	}
	return 0
}
