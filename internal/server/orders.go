package server

import (
	"bytes"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"gitlab.com/umaxship/console/internal/apperrors"
	"gitlab.com/umaxship/console/internal/export"
	"gitlab.com/umaxship/console/internal/order"
	"gitlab.com/umaxship/console/internal/projection"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
	maxPageSize     = 100
	dateLayout      = "2006-01-02"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var draft order.Draft
	if err := decodeBody(r, &draft); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := s.storage.CreateOrder(r.Context(), currentSession(r).UID, draft)
	if err != nil {
		s.respondStorageError(w, r, err)
		return
	}
	if created.Pending() {
		created.Timestamp = s.timeNow().UTC()
	}

	respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := r.PathValue("id")
	if orderID == "" {
		respondError(w, http.StatusBadRequest, "Missing order ID")
		return
	}

	o, err := s.storage.GetOrder(r.Context(), currentSession(r).UID, orderID)
	if err != nil {
		s.respondStorageError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, o)
}

func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, size := defaultPage, defaultPageSize
	if pageStr := q.Get("page"); pageStr != "" {
		var err error
		page, err = strconv.Atoi(pageStr)
		if err != nil || page <= 0 {
			respondError(w, http.StatusBadRequest, "Invalid value for 'page' parameter")
			return
		}
	}
	if sizeStr := q.Get("size"); sizeStr != "" {
		var err error
		size, err = strconv.Atoi(sizeStr)
		if err != nil || size <= 0 || size > maxPageSize {
			respondError(w, http.StatusBadRequest, "Invalid value for 'size' parameter")
			return
		}
	}

	f, err := parseFilter(q)
	if err != nil {
		s.respondStorageError(w, r, err)
		return
	}

	result, err := s.storage.ListOrders(r.Context(), currentSession(r).UID, f, page, size)
	if err != nil {
		s.respondStorageError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleExportOrders(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r.URL.Query())
	if err != nil {
		s.respondStorageError(w, r, err)
		return
	}

	orders, errs, err := s.storage.ExportOrders(r.Context(), currentSession(r).UID, f)
	if err != nil {
		s.respondStorageError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteOrders(&buf, orders); err != nil {
		s.logger.Error("failed to render order export", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="orders.xlsx"`)
	w.Header().Set("X-Skipped-Records", strconv.Itoa(len(errs)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		s.logger.Warn("failed to write order export", zap.Error(err))
	}
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	var now time.Time
	if nowStr := r.URL.Query().Get("now"); nowStr != "" {
		var err error
		now, err = parseTime(nowStr, false)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, fieldsError{Error: "Validation failed", Fields: []string{"now"}})
			return
		}
	}

	d, err := s.storage.Dashboard(r.Context(), currentSession(r).UID, now)
	if err != nil {
		s.respondStorageError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, d)
}

// parseFilter reads the list filter. Dates are RFC3339 or YYYY-MM-DD; a bare
// "to" date covers the whole day. The mode defaults to first-match.
func parseFilter(q url.Values) (projection.Filter, error) {
	f := projection.Filter{
		ID:    q.Get("id"),
		AWB:   q.Get("awb"),
		Phone: q.Get("phone"),
		Mode:  projection.ModeFirstMatch,
	}

	var invalid []string
	if v := q.Get("from"); v != "" {
		t, err := parseTime(v, false)
		if err != nil {
			invalid = append(invalid, "from")
		}
		f.From = t
	}
	if v := q.Get("to"); v != "" {
		t, err := parseTime(v, true)
		if err != nil {
			invalid = append(invalid, "to")
		}
		f.To = t
	}
	switch mode := projection.Mode(q.Get("mode")); mode {
	case "", projection.ModeFirstMatch:
	case projection.ModeAllOf:
		f.Mode = mode
	default:
		invalid = append(invalid, "mode")
	}

	if len(invalid) > 0 {
		return projection.Filter{}, apperrors.NewValidationError(invalid...)
	}
	return f, nil
}

func parseTime(v string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return t, nil
}
