package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/ledger"
)

// transactionBody is the JSON request shape for create/update. Field names
// match the persisted record shape. Amount accepts either a JSON number or
// a decimal string ("12.34", "12,34").
type transactionBody struct {
	Type     string          `json:"type"`
	Title    string          `json:"title"`
	Amount   json.RawMessage `json:"amount"`
	Category string          `json:"category"`
	Date     string          `json:"date,omitempty"`
}

// transactionResponse is the JSON shape returned for a single record.
type transactionResponse struct {
	ID       string  `json:"id"`
	Type     string  `json:"type"`
	Title    string  `json:"title"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	Date     string  `json:"date"`
}

func toResponse(t core.Transaction) transactionResponse {
	return transactionResponse{
		ID:       t.ID,
		Type:     string(t.Kind),
		Title:    t.Title,
		Amount:   t.Amount.Float(),
		Category: t.Category,
		Date:     t.OccurredAt.Format(time.RFC3339Nano),
	}
}

func (b transactionBody) toInput() (core.TransactionInput, error) {
	in := core.TransactionInput{
		Kind:     core.Kind(b.Type),
		Title:    strings.TrimSpace(b.Title),
		Category: strings.TrimSpace(b.Category),
	}
	cents, err := parseAmount(b.Amount)
	if err != nil {
		return in, err
	}
	in.Amount = core.Money{Cents: cents}
	if b.Date != "" {
		occurred, err := parseDate(b.Date)
		if err != nil {
			return in, err
		}
		in.OccurredAt = occurred
	}
	return in, in.Validate()
}

// parseAmount converts the raw amount field to cents. Numbers go through
// float conversion; strings go through decimal parsing so clients may send
// amounts verbatim without float round-tripping.
func parseAmount(raw json.RawMessage) (int64, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, core.ErrInvalidAmount
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return core.CentsFromFloat(f)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return core.ParseDecimalToCents(s)
	}
	return 0, core.ErrInvalidAmount
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Time{}, errors.New("invalid date, expected ISO-8601 or YYYY-MM-DD")
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var body transactionBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	in, err := body.toInput()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	t, err := s.ledger.Add(r.Context(), in)
	if err != nil {
		s.writeStoreError(w, r, "create transaction", err)
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(t))
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	items, err := s.ledger.List(r.Context())
	if err != nil {
		s.writeStoreError(w, r, "list transactions", err)
		return
	}

	criteria, err := criteriaFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	items = core.Filter(items, criteria)

	out := make([]transactionResponse, len(items))
	for i, t := range items {
		out[i] = toResponse(t)
	}
	writeJSON(w, http.StatusOK, out)
}

func criteriaFromQuery(r *http.Request) (core.Criteria, error) {
	q := r.URL.Query()
	c := core.Criteria{
		Search:     q.Get("search"),
		Categories: q["category"],
	}
	if kind := q.Get("kind"); kind != "" {
		k := core.Kind(kind)
		if err := k.Validate(); err != nil {
			return c, errors.New("invalid kind, expected expense or income")
		}
		c.Kind = k
	}
	if from := q.Get("from"); from != "" {
		t, err := parseDate(from)
		if err != nil {
			return c, errors.New("invalid from date")
		}
		c.DateFrom = t
	}
	if to := q.Get("to"); to != "" {
		t, err := parseDate(to)
		if err != nil {
			return c, errors.New("invalid to date")
		}
		c.DateTo = t
	}
	return c, nil
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var body transactionBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	in, err := body.toInput()
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	t, err := s.ledger.Update(r.Context(), id, in)
	if err != nil {
		s.writeStoreError(w, r, "update transaction", err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(t))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	// Deletion is idempotent: removing an absent id is still a success.
	if err := s.ledger.Remove(r.Context(), r.PathValue("id")); err != nil {
		s.writeStoreError(w, r, "delete transaction", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	ref := s.now()
	if v := r.URL.Query().Get("date"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date")
			return
		}
		ref = t
	}

	items, err := s.ledger.List(r.Context())
	if err != nil {
		s.writeStoreError(w, r, "summarize ledger", err)
		return
	}

	digest := core.BuildDigest(items, ref)
	if digest.SkippedInvalid > 0 {
		slog.WarnContext(r.Context(), "Digest skipped invalid records", "skipped", digest.SkippedInvalid)
	}
	writeJSON(w, http.StatusOK, digest)
}

// categoryAnalysis is one row of the analysis view: totals per category
// plus the category's share of overall expense.
type categoryAnalysis struct {
	Name             string  `json:"name"`
	Expense          string  `json:"expense"`
	Income           string  `json:"income"`
	PercentOfExpense float64 `json:"percent_of_expense"`
}

type analysisResponse struct {
	Categories   []categoryAnalysis `json:"categories"`
	TotalExpense string             `json:"total_expense"`
	TotalIncome  string             `json:"total_income"`
	Net          string             `json:"net"`
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	items, err := s.ledger.List(r.Context())
	if err != nil {
		s.writeStoreError(w, r, "analyze ledger", err)
		return
	}

	criteria, err := criteriaFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	items = core.Filter(items, criteria)

	breakdown := core.CategoryBreakdown(items)
	percents := core.PercentageOfExpense(items)

	categories := make([]categoryAnalysis, 0, len(breakdown))
	for name, ct := range breakdown {
		categories = append(categories, categoryAnalysis{
			Name:             name,
			Expense:          ct.Expense.Format(),
			Income:           ct.Income.Format(),
			PercentOfExpense: percents[name],
		})
	}
	// Biggest spenders first, names as tie-breaker
	sort.Slice(categories, func(i, j int) bool {
		ei := breakdown[categories[i].Name].Expense.Cents
		ej := breakdown[categories[j].Name].Expense.Cents
		if ei != ej {
			return ei > ej
		}
		return categories[i].Name < categories[j].Name
	})

	totals := core.TotalsIn(items, nil)
	writeJSON(w, http.StatusOK, analysisResponse{
		Categories:   categories,
		TotalExpense: totals.Expense.Format(),
		TotalIncome:  totals.Income.Format(),
		Net:          totals.Net.Format(),
	})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if s.gateway == nil {
		writeError(w, http.StatusServiceUnavailable, "assistant not configured")
		return
	}

	var body struct {
		Question string `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	question := strings.TrimSpace(body.Question)
	if question == "" {
		writeError(w, http.StatusUnprocessableEntity, "empty question")
		return
	}

	items, err := s.ledger.List(r.Context())
	if err != nil {
		s.writeStoreError(w, r, "read ledger for chat", err)
		return
	}

	digest := core.BuildDigest(items, s.now())
	answer, err := s.gateway.Answer(r.Context(), digest, items, question)
	if err != nil {
		slog.ErrorContext(r.Context(), "Assistant gateway error", "error", err)
		writeError(w, http.StatusBadGateway, "assistant unavailable")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"answer": answer})
}

func (s *Server) writeStoreError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		writeError(w, http.StatusNotFound, "transaction not found")
	case errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrInvalidKind),
		errors.Is(err, core.ErrEmptyTitle),
		errors.Is(err, core.ErrEmptyCategory):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		slog.ErrorContext(r.Context(), "Store operation failed", "op", op, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
