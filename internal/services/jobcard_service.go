package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"jobcard-backend/internal/apperr"
	"jobcard-backend/internal/cache"
	"jobcard-backend/internal/logger"
	"jobcard-backend/internal/metrics"
	"jobcard-backend/internal/models"
	"jobcard-backend/internal/realtime"
	"jobcard-backend/internal/timeutil"
)

type JobcardService struct {
	Repo     JobcardStore
	Counters SequenceStore
	Events   Publisher
	log      *logger.Logger
}

func NewJobcardService(repo JobcardStore, counters SequenceStore, events Publisher, log *logger.Logger) *JobcardService {
	if events == nil {
		events = nopPublisher{}
	}
	return &JobcardService{Repo: repo, Counters: counters, Events: events, log: log}
}

// Create validates the payload, takes the next sequence number and persists
// the jobcard. Nothing is stored if any step fails.
func (s *JobcardService) Create(ctx context.Context, req *models.CreateJobcardRequest) (*models.Jobcard, error) {
	j := &models.Jobcard{
		CustomerName: req.CustomerName,
		Phone:        req.Phone,
		Address:      req.Address,
		City:         req.City,
		RegNo:        req.RegNo,
		ModelName:    req.ModelName,
		ChassisNo:    req.ChassisNo,
		EngineNo:     req.EngineNo,
		Km:           req.Km,
		Petrol:       req.Petrol,
		KeyNo:        req.KeyNo,
		VehicleType:  req.VehicleType,
		MechanicName: req.MechanicName,
		HelperName:   req.HelperName,
		Remarks:      req.Remarks,
		Services:     req.Services,
		Parts:        req.Parts,
		Labour:       req.Labour,
		Amount:       req.Amount,
	}
	j.Normalize()
	if err := validateStruct(j); err != nil {
		return nil, err
	}

	date, err := parseJobcardDate(req.Date)
	if err != nil {
		return nil, err
	}
	j.Date = date

	if req.Paid != nil {
		j.Paid = *req.Paid
	}
	if req.Remaining != nil {
		j.Remaining = *req.Remaining
	} else {
		j.Remaining = j.Amount - j.Paid
	}
	if err := checkFigures(j); err != nil {
		return nil, err
	}
	j.RefreshStatus()

	seq, err := s.Counters.Next(ctx, models.JobcardCounter)
	if err != nil {
		return nil, fmt.Errorf("allocate jobcard number: %w", err)
	}
	j.SeqID = seq
	j.JobcardNo = models.FormatJobcardNo(seq)

	if err := s.Repo.Create(ctx, j); err != nil {
		return nil, err
	}

	metrics.JobcardsCreated.Inc()
	s.log.Info("jobcard created", "jobcard_no", j.JobcardNo, "id", j.ID, "status", j.Status)
	s.changed(ctx, realtime.JobcardCreated, j.ID, j)
	return j, nil
}

// Update merges the supplied fields over the stored record and re-derives the status
func (s *JobcardService) Update(ctx context.Context, id string, req *models.UpdateJobcardRequest) (*models.Jobcard, error) {
	j, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Date != nil {
		date, err := parseJobcardDate(*req.Date)
		if err != nil {
			return nil, err
		}
		j.Date = date
	}
	setString(&j.CustomerName, req.CustomerName)
	setString(&j.Phone, req.Phone)
	setString(&j.Address, req.Address)
	setString(&j.City, req.City)
	setString(&j.RegNo, req.RegNo)
	setString(&j.ModelName, req.ModelName)
	setString(&j.ChassisNo, req.ChassisNo)
	setString(&j.EngineNo, req.EngineNo)
	setString(&j.Km, req.Km)
	setString(&j.Petrol, req.Petrol)
	setString(&j.KeyNo, req.KeyNo)
	setString(&j.VehicleType, req.VehicleType)
	setString(&j.MechanicName, req.MechanicName)
	setString(&j.HelperName, req.HelperName)
	setString(&j.Remarks, req.Remarks)
	if req.Services != nil {
		j.Services = *req.Services
	}
	if req.Parts != nil {
		j.Parts = *req.Parts
	}
	if req.Labour != nil {
		j.Labour = *req.Labour
	}
	if req.Amount != nil {
		j.Amount = *req.Amount
	}
	if req.Paid != nil {
		j.Paid = *req.Paid
	}
	if req.Remaining != nil {
		j.Remaining = *req.Remaining
	}

	j.Normalize()
	if err := validateStruct(j); err != nil {
		return nil, err
	}
	if err := checkFigures(j); err != nil {
		return nil, err
	}
	j.RefreshStatus()

	if err := s.Repo.Update(ctx, j); err != nil {
		return nil, err
	}

	s.log.Info("jobcard updated", "jobcard_no", j.JobcardNo, "status", j.Status)
	s.changed(ctx, realtime.JobcardUpdated, j.ID, j)
	return j, nil
}

// Delete removes the jobcard. Its sequence number is never reissued.
func (s *JobcardService) Delete(ctx context.Context, id string) error {
	key, ok := parseID(id)
	if !ok {
		return apperr.NotFound("Jobcard not found")
	}
	if err := s.Repo.Delete(ctx, key); err != nil {
		return err
	}

	metrics.JobcardsDeleted.Inc()
	s.log.Info("jobcard deleted", "id", key)
	s.changed(ctx, realtime.JobcardDeleted, key, nil)
	return nil
}

// Lookup resolves an internal id, a raw sequence number or a display number
func (s *JobcardService) Lookup(ctx context.Context, identifier string) (*models.Jobcard, error) {
	if strings.TrimSpace(identifier) == "" {
		return nil, apperr.NotFound("Jobcard not found")
	}
	return s.Repo.Find(ctx, ClassifyIdentifier(identifier))
}

// List returns jobcards newest first. With both bounds the window is
// inclusive; with only a start it covers that calendar day; with only an end
// it covers everything up to the end.
func (s *JobcardService) List(ctx context.Context, start, end string) ([]*models.Jobcard, error) {
	var f models.JobcardFilter
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)

	switch {
	case start != "" && end != "":
		from, err := parseBound(start, false)
		if err != nil {
			return nil, err
		}
		to, err := parseBound(end, true)
		if err != nil {
			return nil, err
		}
		f.From, f.To = &from, &to
	case start != "":
		day, err := parseBound(start, false)
		if err != nil {
			return nil, err
		}
		from, to := timeutil.StartOfDay(day), timeutil.EndOfDay(day)
		f.From, f.To = &from, &to
	case end != "":
		to, err := parseBound(end, true)
		if err != nil {
			return nil, err
		}
		f.To = &to
	}

	return s.Repo.List(ctx, f)
}

// Search returns the jobcards matching every non-empty criterion
func (s *JobcardService) Search(ctx context.Context, req *models.SearchRequest) ([]*models.Jobcard, error) {
	f := models.JobcardFilter{
		JobcardNo:    req.JobcardNo,
		CustomerName: req.CustomerName,
		RegNo:        req.RegNo,
		Phone:        req.Phone,
		City:         req.City,
		ChassisNo:    req.ChassisNo,
		ModelName:    req.ModelName,
		MechanicName: req.MechanicName,
		HelperName:   req.HelperName,
		Status:       req.Status,
	}
	if v := strings.TrimSpace(req.StartDate); v != "" {
		from, err := parseBound(v, false)
		if err != nil {
			return nil, err
		}
		f.From = &from
	}
	if v := strings.TrimSpace(req.EndDate); v != "" {
		to, err := parseBound(v, true)
		if err != nil {
			return nil, err
		}
		f.To = &to
	}
	return s.Repo.List(ctx, f)
}

// ApplyPayment records a payment against the outstanding balance.
//
// The read and the write are separate store calls, so two concurrent payments
// on the same jobcard can both pass the balance check and the later write wins.
func (s *JobcardService) ApplyPayment(ctx context.Context, id string, amount float64, method string) (*models.Jobcard, error) {
	j, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return nil, apperr.Validation("Invalid amount")
	}
	if toPaise(amount) > toPaise(j.Remaining) {
		return nil, apperr.Validation("Payment exceeds remaining amount")
	}

	j.Paid = roundPaise(j.Paid + amount)
	j.Remaining = roundPaise(j.Remaining - amount)
	j.RefreshStatus()

	if err := s.Repo.Update(ctx, j); err != nil {
		return nil, err
	}

	method = strings.TrimSpace(method)
	if method == "" {
		method = "Cash"
	}
	metrics.PaymentsApplied.WithLabelValues(method).Inc()
	metrics.PaymentAmount.Add(amount)
	s.log.Info("payment applied",
		"jobcard_no", j.JobcardNo, "amount", amount, "method", method,
		"paid", j.Paid, "remaining", j.Remaining, "status", j.Status)
	s.changed(ctx, realtime.JobcardPaid, j.ID, j)
	return j, nil
}

func (s *JobcardService) findByID(ctx context.Context, id string) (*models.Jobcard, error) {
	key, ok := parseID(id)
	if !ok {
		return nil, apperr.NotFound("Jobcard not found")
	}
	return s.Repo.Find(ctx, models.JobcardRef{Kind: models.RefByID, ID: key})
}

func (s *JobcardService) changed(ctx context.Context, typ realtime.EventType, id string, j *models.Jobcard) {
	cache.InvalidateDailyStats(ctx)
	e := realtime.Event{Type: typ, ID: id}
	if j != nil {
		e.Data = j
	}
	s.Events.Publish(e)
}

// toPaise converts rupees to whole paise so balances compare without float drift
func toPaise(v float64) int64 {
	return int64(math.Round(v * 100))
}

func roundPaise(v float64) float64 {
	return float64(toPaise(v)) / 100
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func checkFigures(j *models.Jobcard) error {
	for _, v := range []float64{j.Amount, j.Paid, j.Remaining} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return apperr.Validation("amounts must be finite numbers")
		}
	}
	return nil
}

func parseJobcardDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return timeutil.Now(), nil
	}
	t, err := timeutil.ParseDate(value)
	if err != nil {
		return time.Time{}, apperr.Validation("invalid date %q", value)
	}
	return t, nil
}

// parseBound parses a list or search bound. A bare YYYY-MM-DD end bound
// covers the whole of that day.
func parseBound(value string, end bool) (time.Time, error) {
	t, err := timeutil.ParseDate(value)
	if err != nil {
		return time.Time{}, apperr.Validation("invalid date %q", value)
	}
	if end && len(value) == len(timeutil.DateLayout) {
		return timeutil.EndOfDay(t), nil
	}
	return t, nil
}
