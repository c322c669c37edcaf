//go:generate mockgen -source ./server.go -destination=./mocks/server.go -package=mock_server
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"gitlab.com/umaxship/console/internal/apperrors"
	"gitlab.com/umaxship/console/internal/complaint"
	"gitlab.com/umaxship/console/internal/order"
	"gitlab.com/umaxship/console/internal/payment"
	"gitlab.com/umaxship/console/internal/postal"
	"gitlab.com/umaxship/console/internal/projection"
	"gitlab.com/umaxship/console/internal/repository"
	"gitlab.com/umaxship/console/internal/repository/postgresql"
	"gitlab.com/umaxship/console/internal/session"
	"gitlab.com/umaxship/console/internal/warehouse"
)

type Storage interface {
	CreateOrder(ctx context.Context, userID string, draft order.Draft) (order.Order, error)
	GetOrder(ctx context.Context, userID, id string) (order.Order, error)
	ListOrders(ctx context.Context, userID string, f projection.Filter, page, size int) (projection.Page, error)
	Dashboard(ctx context.Context, userID string, now time.Time) (projection.Dashboard, error)
	ExportOrders(ctx context.Context, userID string, f projection.Filter) ([]order.Order, []projection.RecordError, error)

	CreateWarehouse(ctx context.Context, userID string, form warehouse.Form) (warehouse.Warehouse, error)
	ListWarehouses(ctx context.Context, userID string) ([]warehouse.Warehouse, error)
	DeleteWarehouse(ctx context.Context, userID, key string) error

	CreateComplaint(ctx context.Context, userID, awb, issue string) (complaint.Complaint, error)
	GetComplaint(ctx context.Context, userID, id string) (complaint.Complaint, error)
	ListComplaints(ctx context.Context, userID string) ([]complaint.Complaint, error)
	AddReply(ctx context.Context, userID, id, text, author string) (complaint.Reply, error)
	SetComplaintStatus(ctx context.Context, userID, id string, to complaint.Status) (complaint.Complaint, error)

	GetWallet(ctx context.Context, userID string) (payment.Wallet, error)
	RechargeWallet(ctx context.Context, sess session.Session, req payment.RechargeRequest) (payment.Session, error)
}

type UserRepo interface {
	ValidateUser(ctx context.Context, email, password string) (*repository.User, error)
}

type Config struct {
	SessionTTL   time.Duration
	AuditWorkers int
	AuditBatch   int
	AuditTimeout time.Duration
}

type Server struct {
	storage      Storage
	userRepo     UserRepo
	sessions     session.Store
	config       Config
	logger       *zap.Logger
	server       *http.Server
	timeNow      func() time.Time
	AuditManager *AuditManager
}

func New(storage Storage, userRepo UserRepo, sessions session.Store, config Config, logger *zap.Logger) *Server {
	if config.SessionTTL <= 0 {
		config.SessionTTL = 24 * time.Hour
	}
	if config.AuditWorkers <= 0 {
		config.AuditWorkers = 2
	}
	if config.AuditBatch <= 0 {
		config.AuditBatch = 5
	}
	if config.AuditTimeout <= 0 {
		config.AuditTimeout = 500 * time.Millisecond
	}
	return &Server{
		storage:      storage,
		userRepo:     userRepo,
		sessions:     sessions,
		config:       config,
		logger:       logger,
		timeNow:      time.Now,
		AuditManager: NewAuditManager(config.AuditWorkers, config.AuditBatch, config.AuditTimeout, logger.Named("audit")),
	}
}

// Run serves until Shutdown is called. It returns nil on a clean shutdown.
func (s *Server) Run(ctx context.Context, port string) error {
	s.server = &http.Server{
		Addr:         ":" + port,
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	s.AuditManager.Start(ctx)

	s.logger.Info("server starting", zap.String("port", port))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server")

	if s.server != nil {
		if err := s.server.Shutdown(ctx); err != nil {
			return err
		}
	}
	s.logger.Info("http server shutdown completed")

	s.AuditManager.Shutdown(ctx)
	s.logger.Info("server shutdown completed successfully")

	return nil
}

// Handler returns the routed API. Everything except login and metrics
// requires a session.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()

	api.HandleFunc("POST /logout", s.handleLogout)

	api.HandleFunc("GET /orders", s.handleListOrders)
	api.HandleFunc("POST /orders", s.handleCreateOrder)
	api.HandleFunc("GET /orders/export", s.handleExportOrders)
	api.HandleFunc("GET /orders/{id}", s.handleGetOrder)
	api.HandleFunc("GET /dashboard", s.handleDashboard)

	api.HandleFunc("GET /warehouses", s.handleListWarehouses)
	api.HandleFunc("POST /warehouses", s.handleCreateWarehouse)
	api.HandleFunc("DELETE /warehouses/{id}", s.handleDeleteWarehouse)

	api.HandleFunc("GET /complaints", s.handleListComplaints)
	api.HandleFunc("POST /complaints", s.handleCreateComplaint)
	api.HandleFunc("GET /complaints/{id}", s.handleGetComplaint)
	api.HandleFunc("POST /complaints/{id}/replies", s.handleAddReply)
	api.HandleFunc("PUT /complaints/{id}/status", s.handleSetComplaintStatus)

	api.HandleFunc("GET /wallet", s.handleGetWallet)
	api.HandleFunc("POST /wallet/recharge", s.handleRechargeWallet)

	root := http.NewServeMux()
	root.HandleFunc("POST /login", s.handleLogin)
	root.Handle("GET /metrics", promhttp.Handler())
	root.Handle("/", s.sessionMiddleware(api))

	return s.auditLogMiddleware(root)
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

type fieldsError struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields"`
}

// respondStorageError maps the error taxonomy to a status code. Anything
// unrecognised is logged and reported as a 500 without detail.
func (s *Server) respondStorageError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *apperrors.ValidationError
	switch {
	case errors.As(err, &verr):
		respondJSON(w, http.StatusBadRequest, fieldsError{Error: "Validation failed", Fields: verr.Fields})
	case errors.Is(err, postal.ErrPincodeNotFound):
		respondJSON(w, http.StatusBadRequest, fieldsError{Error: "Pin code not found", Fields: []string{"pin_code"}})
	case errors.Is(err, apperrors.ErrNotFound):
		respondError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, complaint.ErrInvalidTransition):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, apperrors.ErrInvalidPayload):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, apperrors.ErrExternalService):
		s.logger.Warn("external service failed", zap.String("path", r.URL.Path), zap.Error(err))
		respondError(w, http.StatusBadGateway, "External service unavailable")
	case errors.Is(err, postgresql.ErrInvalidCredentials), errors.Is(err, session.ErrNoSession):
		respondError(w, http.StatusUnauthorized, "Unauthorized")
	default:
		s.logger.Error("request failed", zap.String("method", r.Method), zap.String("path", r.URL.Path), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func decodeBody(r *http.Request, dest any) error {
	if r.Body == nil {
		return errors.New("empty body")
	}
	return json.NewDecoder(r.Body).Decode(dest)
}

// currentSession is only called behind sessionMiddleware.
func currentSession(r *http.Request) session.Session {
	sess, _ := session.FromContext(r.Context())
	return sess
}
