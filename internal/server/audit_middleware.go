package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"gitlab.com/umaxship/console/internal/metrics"
	"gitlab.com/umaxship/console/internal/session"
)

const maxAuditBody = 4 << 10

func (s *Server) auditLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := s.timeNow()
		entry := AuditLogEntry{
			Timestamp: start,
			Method:    r.Method,
			Path:      r.URL.Path,
			Handler:   getHandlerName(r.URL.Path, r.Method),
			EntityID:  entityID(r.URL.Path),
		}

		if sess, err := s.loadSession(r); err == nil {
			r = r.WithContext(session.WithSession(r.Context(), sess))
			entry.UserID = sess.UID
		}

		var requestBody []byte
		if isJSON(r.Header.Get("Content-Type")) && r.Body != nil {
			requestBody, _ = io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewBuffer(requestBody))
			entry.Request = truncate(requestBody)

			if entry.UserID != "" && entry.EntityID != "" && r.Method == http.MethodPut &&
				strings.HasPrefix(r.URL.Path, "/complaints/") && strings.HasSuffix(r.URL.Path, "/status") {
				var statusRequest struct {
					Status string `json:"status"`
				}
				if err := json.Unmarshal(requestBody, &statusRequest); err == nil {
					if c, err := s.storage.GetComplaint(r.Context(), entry.UserID, entry.EntityID); err == nil {
						entry.OldStatus = c.Status.Display()
						entry.NewStatus = strings.ToUpper(strings.TrimSpace(statusRequest.Status))
					}
				}
			}
		}

		wrw := newResponseWriterWrapper(w)

		next.ServeHTTP(wrw, r)

		if entry.UserID == "" {
			entry.UserID = wrw.userID
		}
		entry.StatusCode = wrw.GetStatusCode()
		entry.Response = truncate(wrw.GetBody())
		entry.Duration = s.timeNow().Sub(start)
		if entry.Handler == "handleLogin" {
			entry.Response = ""
		}

		metrics.HTTPRequestsTotal.WithLabelValues(entry.Handler, strconv.Itoa(entry.StatusCode)).Inc()
		s.AuditManager.LogEntry(r.Context(), entry)
	})
}

func isJSON(contentType string) bool {
	return strings.Contains(contentType, "application/json")
}

func truncate(b []byte) string {
	if len(b) > maxAuditBody {
		return string(b[:maxAuditBody]) + "..."
	}
	return string(b)
}

// entityID returns the path segment after a collection name, skipping the
// export pseudo-resource.
func entityID(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 2 {
		return ""
	}
	switch parts[0] {
	case "orders", "warehouses", "complaints":
		if parts[1] == "export" {
			return ""
		}
		return parts[1]
	}
	return ""
}

func getHandlerName(path string, method string) string {
	switch {
	case path == "/login":
		return "handleLogin"
	case path == "/logout":
		return "handleLogout"
	case path == "/metrics":
		return "metrics"
	case path == "/dashboard":
		return "handleDashboard"
	case path == "/orders/export":
		return "handleExportOrders"
	case strings.HasPrefix(path, "/orders"):
		if method == http.MethodPost {
			return "handleCreateOrder"
		} else if path == "/orders" {
			return "handleListOrders"
		}
		return "handleGetOrder"
	case strings.HasPrefix(path, "/warehouses"):
		if method == http.MethodPost {
			return "handleCreateWarehouse"
		} else if method == http.MethodDelete {
			return "handleDeleteWarehouse"
		}
		return "handleListWarehouses"
	case strings.HasPrefix(path, "/complaints"):
		if strings.HasSuffix(path, "/replies") {
			return "handleAddReply"
		} else if strings.HasSuffix(path, "/status") {
			return "handleSetComplaintStatus"
		} else if method == http.MethodPost {
			return "handleCreateComplaint"
		} else if path == "/complaints" {
			return "handleListComplaints"
		}
		return "handleGetComplaint"
	case path == "/wallet/recharge":
		return "handleRechargeWallet"
	case path == "/wallet":
		return "handleGetWallet"
	}

	return "unknown"
}
