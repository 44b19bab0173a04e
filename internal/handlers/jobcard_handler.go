package handlers

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"jobcard-backend/internal/models"
	"jobcard-backend/internal/services"
	"jobcard-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type JobcardHandler struct {
	Service *services.JobcardService
	Printer *services.PrintService
}

func NewJobcardHandler(service *services.JobcardService, printer *services.PrintService) *JobcardHandler {
	return &JobcardHandler{Service: service, Printer: printer}
}

// ListJobcards handles GET /api/jobcards?start_date=&end_date=
func (h *JobcardHandler) ListJobcards(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	jobcards, err := h.Service.List(r.Context(), q.Get("start_date"), q.Get("end_date"))
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, jobcards)
}

// GetJobcard resolves an id, sequence number or display number
func (h *JobcardHandler) GetJobcard(w http.ResponseWriter, r *http.Request) {
	j, err := h.Service.Lookup(r.Context(), mux.Vars(r)["identifier"])
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, j)
}

func (h *JobcardHandler) CreateJobcard(w http.ResponseWriter, r *http.Request) {
	var req models.CreateJobcardRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, err)
		return
	}

	j, err := h.Service.Create(r.Context(), &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusCreated, j)
}

func (h *JobcardHandler) UpdateJobcard(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateJobcardRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, err)
		return
	}

	j, err := h.Service.Update(r.Context(), mux.Vars(r)["id"], &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, j)
}

func (h *JobcardHandler) DeleteJobcard(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		utils.Error(w, err)
		return
	}
	utils.Message(w, http.StatusOK, "Jobcard deleted")
}

func (h *JobcardHandler) SearchJobcards(w http.ResponseWriter, r *http.Request) {
	var req models.SearchRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.Error(w, err)
		return
	}

	jobcards, err := h.Service.Search(r.Context(), &req)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, jobcards)
}

// paymentBody accepts the amount as a JSON number or a numeric string
type paymentBody struct {
	Amount json.RawMessage `json:"amount"`
	Method string          `json:"method"`
}

// PayJobcard handles POST /api/jobcards/{id}/pay
func (h *JobcardHandler) PayJobcard(w http.ResponseWriter, r *http.Request) {
	var body paymentBody
	if err := utils.DecodeJSON(r, &body); err != nil {
		utils.Error(w, err)
		return
	}
	req := models.PaymentRequest{Amount: parseAmount(body.Amount), Method: body.Method}

	j, err := h.Service.ApplyPayment(r.Context(), mux.Vars(r)["id"], req.Amount, req.Method)
	if err != nil {
		utils.Error(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, j)
}

// parseAmount returns NaN for anything that is not a number, which the service rejects
func parseAmount(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return math.NaN()
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return v
		}
	}
	return math.NaN()
}

func (h *JobcardHandler) PrintWorksheet(w http.ResponseWriter, r *http.Request) {
	h.print(w, r, "worksheet", h.Printer.Worksheet)
}

func (h *JobcardHandler) PrintReceipt(w http.ResponseWriter, r *http.Request) {
	h.print(w, r, "receipt", h.Printer.Receipt)
}

func (h *JobcardHandler) print(w http.ResponseWriter, r *http.Request, kind string, render func(*models.Jobcard) ([]byte, error)) {
	j, err := h.Service.Lookup(r.Context(), mux.Vars(r)["identifier"])
	if err != nil {
		utils.Error(w, err)
		return
	}

	pdf, err := render(j)
	if err != nil {
		utils.Error(w, fmt.Errorf("failed to render %s: %w", kind, err))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="%s_%s.pdf"`, j.JobcardNo, kind))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
