package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"gitlab.com/umaxship/console/internal/apperrors"
	"gitlab.com/umaxship/console/internal/complaint"
	"gitlab.com/umaxship/console/internal/order"
	"gitlab.com/umaxship/console/internal/payment"
	"gitlab.com/umaxship/console/internal/postal"
	"gitlab.com/umaxship/console/internal/projection"
	"gitlab.com/umaxship/console/internal/repository"
	"gitlab.com/umaxship/console/internal/repository/postgresql"
	mock_server "gitlab.com/umaxship/console/internal/server/mocks"
	"gitlab.com/umaxship/console/internal/session"
	"gitlab.com/umaxship/console/internal/warehouse"
)

const (
	testToken = "tok-1"
	testUID   = "user-1"
)

var fixedNow = time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)

type testServer struct {
	*Server
	storage *mock_server.MockStorage
	users   *mock_server.MockUserRepo
	store   *session.MemoryStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockStorage := mock_server.NewMockStorage(ctrl)
	mockUsers := mock_server.NewMockUserRepo(ctrl)
	store := session.NewMemoryStore()

	srv := New(mockStorage, mockUsers, store, Config{SessionTTL: time.Hour}, zap.NewNop())
	srv.timeNow = func() time.Time { return fixedNow }

	ctx, cancel := context.WithCancel(context.Background())
	srv.AuditManager.Start(ctx)
	t.Cleanup(func() {
		srv.AuditManager.Shutdown(context.Background())
		cancel()
	})

	require.NoError(t, store.Save(context.Background(), session.Session{
		Token:       testToken,
		UID:         testUID,
		Email:       "ops@umaxship.in",
		DisplayName: "Ops Desk",
	}, time.Hour))

	return &testServer{Server: srv, storage: mockStorage, users: mockUsers, store: store}
}

func (ts *testServer) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+testToken)

	rr := httptest.NewRecorder()
	ts.Handler().ServeHTTP(rr, req)
	return rr
}

func TestHandleLogin(t *testing.T) {
	tests := []struct {
		name           string
		basicAuth      bool
		setupMocks     func(ts *testServer)
		expectedStatus int
	}{
		{
			name:      "valid credentials",
			basicAuth: true,
			setupMocks: func(ts *testServer) {
				ts.users.EXPECT().
					ValidateUser(gomock.Any(), "admin@umaxship.in", "secret").
					Return(&repository.User{ID: "u-42", Email: "admin@umaxship.in", DisplayName: "Admin"}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:      "wrong password",
			basicAuth: true,
			setupMocks: func(ts *testServer) {
				ts.users.EXPECT().
					ValidateUser(gomock.Any(), "admin@umaxship.in", "secret").
					Return(nil, postgresql.ErrInvalidCredentials)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "no credentials",
			setupMocks:     func(*testServer) {},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ts := newTestServer(t)
			tc.setupMocks(ts)

			req := httptest.NewRequest(http.MethodPost, "/login", nil)
			if tc.basicAuth {
				req.SetBasicAuth("admin@umaxship.in", "secret")
			}
			rr := httptest.NewRecorder()
			ts.Handler().ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			if tc.expectedStatus != http.StatusOK {
				assert.JSONEq(t, `{"error":"Unauthorized"}`, rr.Body.String())
				return
			}

			var resp loginResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, "u-42", resp.UID)
			assert.Equal(t, "Admin", resp.DisplayName)

			sess, err := ts.store.Load(context.Background(), resp.Token)
			require.NoError(t, err)
			assert.Equal(t, "admin@umaxship.in", sess.Email)
		})
	}
}

func TestHandleLogout(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.do(t, http.MethodPost, "/logout", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	_, err := ts.store.Load(context.Background(), testToken)
	assert.ErrorIs(t, err, session.ErrNoSession)

	rr = ts.do(t, http.MethodGet, "/orders", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestSessionMiddleware(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "unknown token", header: "Bearer nope"},
		{name: "basic scheme", header: "Basic YWRtaW46c2VjcmV0"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/wallet", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()
			ts.Handler().ServeHTTP(rr, req)

			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			assert.JSONEq(t, `{"error":"Unauthorized"}`, rr.Body.String())
		})
	}
}

func b2cDraft() order.Draft {
	return order.Draft{
		Type:           order.TypeB2C,
		PickupLocation: "wr_1736942400000",
		B2C: &order.B2CPayload{
			Customer: order.Customer{
				Name: "Asha", Address: "12 MG Road", City: "Delhi", Pincode: "110001",
				State: "Delhi", Country: "India", Phone: "9876543210",
			},
			PaymentMethod: order.PaymentCOD,
			OrderItems: []order.LineItem{{
				Name: "Mug", SKU: "MUG-1", Units: order.MustMeasure("1"), SellingPrice: order.MustMeasure("499"),
			}},
			SubTotal: order.MustMeasure("499"),
			Length:   order.MustMeasure("10"),
			Breadth:  order.MustMeasure("10"),
			Height:   order.MustMeasure("10"),
			Weight:   order.MustMeasure("0.5"),
		},
	}
}

func TestHandleCreateOrder(t *testing.T) {
	tests := []struct {
		name           string
		body           any
		setupMocks     func(ts *testServer)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "successful order creation",
			body: b2cDraft(),
			setupMocks: func(ts *testServer) {
				ts.storage.EXPECT().
					CreateOrder(gomock.Any(), testUID, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, d order.Draft) (order.Order, error) {
						assert.Equal(t, "wr_1736942400000", d.PickupLocation)
						require.NotNil(t, d.B2C)
						assert.Equal(t, "9876543210", d.B2C.Phone)
						return order.Order{ID: "17369424000001234", UserID: testUID, Type: order.TypeB2C, CurrentStatus: order.StatusUnshipped}, nil
					})
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"timestamp":"2025-01-15T12:00:00Z"`,
		},
		{
			name: "validation failure lists fields",
			body: b2cDraft(),
			setupMocks: func(ts *testServer) {
				ts.storage.EXPECT().
					CreateOrder(gomock.Any(), testUID, gomock.Any()).
					Return(order.Order{}, apperrors.NewValidationError("billing_phone", "weight"))
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Validation failed","fields":["billing_phone","weight"]}`,
		},
		{
			name:           "invalid request body",
			body:           "not an object",
			setupMocks:     func(*testServer) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Invalid request body"}`,
		},
		{
			name: "storage error",
			body: b2cDraft(),
			setupMocks: func(ts *testServer) {
				ts.storage.EXPECT().
					CreateOrder(gomock.Any(), testUID, gomock.Any()).
					Return(order.Order{}, errors.New("failed to add order: connection refused"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"Internal server error"}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ts := newTestServer(t)
			tc.setupMocks(ts)

			rr := ts.do(t, http.MethodPost, "/orders", tc.body)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			if tc.expectedStatus == http.StatusCreated {
				assert.Contains(t, rr.Body.String(), tc.expectedBody)
			} else {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String())
			}
		})
	}
}

func TestHandleGetOrder(t *testing.T) {
	tests := []struct {
		name           string
		orderID        string
		setupMocks     func(ts *testServer)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:    "order found",
			orderID: "17369424000001234",
			setupMocks: func(ts *testServer) {
				ts.storage.EXPECT().
					GetOrder(gomock.Any(), testUID, "17369424000001234").
					Return(order.Order{ID: "17369424000001234", CurrentStatus: order.StatusShipped, Timestamp: fixedNow}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"id":"17369424000001234"`,
		},
		{
			name:    "order not found",
			orderID: "nonexistent",
			setupMocks: func(ts *testServer) {
				ts.storage.EXPECT().
					GetOrder(gomock.Any(), testUID, "nonexistent").
					Return(order.Order{}, fmt.Errorf("order nonexistent: %w", apperrors.ErrNotFound))
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"Not found"}`,
		},
		{
			name:    "unreadable record",
			orderID: "broken",
			setupMocks: func(ts *testServer) {
				ts.storage.EXPECT().
					GetOrder(gomock.Any(), testUID, "broken").
					Return(order.Order{}, &apperrors.InvalidPayloadError{RecordID: "broken", Field: "data", Err: errors.New("empty document")})
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `{"error":"record broken: invalid data: empty document"}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ts := newTestServer(t)
			tc.setupMocks(ts)

			rr := ts.do(t, http.MethodGet, "/orders/"+tc.orderID, nil)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			if tc.expectedStatus == http.StatusOK {
				assert.Contains(t, rr.Body.String(), tc.expectedBody)
			} else {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String())
			}
		})
	}
}

func TestHandleListOrders(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		setupMocks     func(ts *testServer)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:  "defaults",
			query: "",
			setupMocks: func(ts *testServer) {
				ts.storage.EXPECT().
					ListOrders(gomock.Any(), testUID, projection.Filter{Mode: projection.ModeFirstMatch}, 1, 10).
					Return(projection.Page{Orders: []order.Order{}, Page: 1, Size: 10}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"page":1`,
		},
		{
			name:  "filters and range",
			query: "?page=2&size=5&awb=AWB77&from=2025-01-01&to=2025-01-10&mode=all",
			setupMocks: func(ts *testServer) {
				want := projection.Filter{
					AWB:  "AWB77",
					From: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
					To:   time.Date(2025, 1, 11, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond),
					Mode: projection.ModeAllOf,
				}
				ts.storage.EXPECT().
					ListOrders(gomock.Any(), testUID, want, 2, 5).
					Return(projection.Page{Orders: []order.Order{}, Page: 2, Size: 5, Total: 6, Pages: 2}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"pages":2`,
		},
		{
			name:           "invalid page",
			query:          "?page=0",
			setupMocks:     func(*testServer) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Invalid value for 'page' parameter"}`,
		},
		{
			name:           "invalid mode and date",
			query:          "?mode=any&from=yesterday",
			setupMocks:     func(*testServer) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Validation failed","fields":["from","mode"]}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ts := newTestServer(t)
			tc.setupMocks(ts)

			rr := ts.do(t, http.MethodGet, "/orders"+tc.query, nil)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			if tc.expectedStatus == http.StatusOK {
				assert.Contains(t, rr.Body.String(), tc.expectedBody)
			} else {
				assert.JSONEq(t, tc.expectedBody, rr.Body.String())
			}
		})
	}
}

func TestHandleExportOrders(t *testing.T) {
	ts := newTestServer(t)
	ts.storage.EXPECT().
		ExportOrders(gomock.Any(), testUID, projection.Filter{Phone: "98765", Mode: projection.ModeFirstMatch}).
		Return([]order.Order{{ID: "17369424000001234", CurrentStatus: order.StatusShipped, Timestamp: fixedNow}},
			[]projection.RecordError{projection.NewRecordError("broken", errors.New("bad"))}, nil)

	rr := ts.do(t, http.MethodGet, "/orders/export?phone=98765", nil)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, xlsxContentType, rr.Header().Get("Content-Type"))
	assert.Equal(t, "1", rr.Header().Get("X-Skipped-Records"))

	f, err := excelize.OpenReader(bytes.NewReader(rr.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Orders")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "17369424000001234", rows[1][0])
}

func TestHandleDashboard(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		setupMocks     func(ts *testServer)
		expectedStatus int
	}{
		{
			name:  "explicit now",
			query: "?now=2025-02-01T00:00:00Z",
			setupMocks: func(ts *testServer) {
				ts.storage.EXPECT().
					Dashboard(gomock.Any(), testUID, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)).
					Return(projection.Dashboard{Total: 3, Counts: map[order.Status]int{order.StatusShipped: 3}, TotalWeight: decimal.RequireFromString("4.5")}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:  "server clock",
			query: "",
			setupMocks: func(ts *testServer) {
				ts.storage.EXPECT().
					Dashboard(gomock.Any(), testUID, time.Time{}).
					Return(projection.Dashboard{Counts: map[order.Status]int{}}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "bad now",
			query:          "?now=soon",
			setupMocks:     func(*testServer) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ts := newTestServer(t)
			tc.setupMocks(ts)

			rr := ts.do(t, http.MethodGet, "/dashboard"+tc.query, nil)
			assert.Equal(t, tc.expectedStatus, rr.Code)
		})
	}
}

func TestHandleWarehouses(t *testing.T) {
	form := warehouse.Form{Name: "Main", Email: "wh@umaxship.in", Phone: "9876543210", Address: "Plot 4", PinCode: "999999"}

	t.Run("unknown pin code", func(t *testing.T) {
		ts := newTestServer(t)
		ts.storage.EXPECT().
			CreateWarehouse(gomock.Any(), testUID, form).
			Return(warehouse.Warehouse{}, fmt.Errorf("resolve pin code 999999: %w", postal.ErrPincodeNotFound))

		rr := ts.do(t, http.MethodPost, "/warehouses", form)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.JSONEq(t, `{"error":"Pin code not found","fields":["pin_code"]}`, rr.Body.String())
	})

	t.Run("postal service down", func(t *testing.T) {
		ts := newTestServer(t)
		ts.storage.EXPECT().
			CreateWarehouse(gomock.Any(), testUID, form).
			Return(warehouse.Warehouse{}, fmt.Errorf("%w: postal lookup: HTTP 503", apperrors.ErrExternalService))

		rr := ts.do(t, http.MethodPost, "/warehouses", form)
		assert.Equal(t, http.StatusBadGateway, rr.Code)
	})

	t.Run("created", func(t *testing.T) {
		ts := newTestServer(t)
		ts.storage.EXPECT().
			CreateWarehouse(gomock.Any(), testUID, form).
			Return(warehouse.Warehouse{PickupLocation: "wr_1736942400000", City: "Delhi", UserID: testUID}, nil)

		rr := ts.do(t, http.MethodPost, "/warehouses", form)
		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Contains(t, rr.Body.String(), `"pickup_location":"wr_1736942400000"`)
	})

	t.Run("empty list is an array", func(t *testing.T) {
		ts := newTestServer(t)
		ts.storage.EXPECT().ListWarehouses(gomock.Any(), testUID).Return(nil, nil)

		rr := ts.do(t, http.MethodGet, "/warehouses", nil)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[]`, rr.Body.String())
	})

	t.Run("delete rejects non key", func(t *testing.T) {
		ts := newTestServer(t)

		rr := ts.do(t, http.MethodDelete, "/warehouses/12345", nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("delete missing", func(t *testing.T) {
		ts := newTestServer(t)
		ts.storage.EXPECT().
			DeleteWarehouse(gomock.Any(), testUID, "wr_1").
			Return(apperrors.ErrNotFound)

		rr := ts.do(t, http.MethodDelete, "/warehouses/wr_1", nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestHandleComplaints(t *testing.T) {
	t.Run("create", func(t *testing.T) {
		ts := newTestServer(t)
		ts.storage.EXPECT().
			CreateComplaint(gomock.Any(), testUID, "AWB7788", "Parcel damaged").
			Return(complaint.Complaint{ID: "c-1", AWBNumber: "AWB7788", Issue: "Parcel damaged", Replies: []complaint.Reply{}}, nil)

		rr := ts.do(t, http.MethodPost, "/complaints", map[string]string{"awbNumber": "AWB7788", "issue": "Parcel damaged"})
		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Contains(t, rr.Body.String(), `"statusLabel":"new"`)
	})

	t.Run("reply is signed with display name", func(t *testing.T) {
		ts := newTestServer(t)
		ts.storage.EXPECT().
			AddReply(gomock.Any(), testUID, "c-1", "Looking into it", "Ops Desk").
			Return(complaint.Reply{ReplyText: "Looking into it", User: "Ops Desk", Timestamp: fixedNow}, nil)

		rr := ts.do(t, http.MethodPost, "/complaints/c-1/replies", map[string]string{"replyText": "Looking into it"})
		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Contains(t, rr.Body.String(), `"user":"Ops Desk"`)
	})

	t.Run("empty reply", func(t *testing.T) {
		ts := newTestServer(t)
		ts.storage.EXPECT().
			AddReply(gomock.Any(), testUID, "c-1", "", "Ops Desk").
			Return(complaint.Reply{}, apperrors.NewValidationError("replyText"))

		rr := ts.do(t, http.MethodPost, "/complaints/c-1/replies", map[string]string{"replyText": ""})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.JSONEq(t, `{"error":"Validation failed","fields":["replyText"]}`, rr.Body.String())
	})

	t.Run("resolved complaint cannot reopen", func(t *testing.T) {
		ts := newTestServer(t)
		ts.storage.EXPECT().
			GetComplaint(gomock.Any(), testUID, "c-1").
			Return(complaint.Complaint{ID: "c-1", Status: complaint.StatusResolved}, nil)
		ts.storage.EXPECT().
			SetComplaintStatus(gomock.Any(), testUID, "c-1", complaint.StatusOpen).
			Return(complaint.Complaint{}, complaint.CanTransition(complaint.StatusResolved, complaint.StatusOpen))

		rr := ts.do(t, http.MethodPut, "/complaints/c-1/status", map[string]string{"status": "open"})
		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("unknown status", func(t *testing.T) {
		ts := newTestServer(t)
		ts.storage.EXPECT().
			GetComplaint(gomock.Any(), testUID, "c-1").
			Return(complaint.Complaint{ID: "c-1"}, nil)

		rr := ts.do(t, http.MethodPut, "/complaints/c-1/status", map[string]string{"status": "closed"})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.JSONEq(t, `{"error":"Validation failed","fields":["status"]}`, rr.Body.String())
	})

	t.Run("list", func(t *testing.T) {
		ts := newTestServer(t)
		ts.storage.EXPECT().
			ListComplaints(gomock.Any(), testUID).
			Return([]complaint.Complaint{{ID: "c-1", Status: complaint.StatusOpen, Replies: []complaint.Reply{}}}, nil)

		rr := ts.do(t, http.MethodGet, "/complaints", nil)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"statusLabel":"OPEN"`)
	})
}

func TestHandleWallet(t *testing.T) {
	t.Run("get", func(t *testing.T) {
		ts := newTestServer(t)
		ts.storage.EXPECT().
			GetWallet(gomock.Any(), testUID).
			Return(payment.Wallet{UserID: testUID, Balance: decimal.RequireFromString("250.5"), Plan: payment.PlanEarlyCOD}, nil)

		rr := ts.do(t, http.MethodGet, "/wallet", nil)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"plan":"Early COD"`)
	})

	t.Run("recharge passes the session", func(t *testing.T) {
		ts := newTestServer(t)
		ts.storage.EXPECT().
			RechargeWallet(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, sess session.Session, req payment.RechargeRequest) (payment.Session, error) {
				assert.Equal(t, testUID, sess.UID)
				assert.Equal(t, "ops@umaxship.in", sess.Email)
				assert.True(t, req.Amount.Equal(decimal.NewFromInt(500)))
				return payment.Session{OrderID: "r-1", PaymentSessionID: "session_abc"}, nil
			})

		rr := ts.do(t, http.MethodPost, "/wallet/recharge", map[string]any{"amount": "500", "phone": "9876543210"})
		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.JSONEq(t, `{"order_id":"r-1","payment_session_id":"session_abc"}`, rr.Body.String())
	})

	t.Run("provider failure", func(t *testing.T) {
		ts := newTestServer(t)
		ts.storage.EXPECT().
			RechargeWallet(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(payment.Session{}, fmt.Errorf("%w: payment: HTTP 500", apperrors.ErrExternalService))

		rr := ts.do(t, http.MethodPost, "/wallet/recharge", map[string]any{"amount": "500", "phone": "9876543210"})
		assert.Equal(t, http.StatusBadGateway, rr.Code)
	})
}

func TestGetHandlerName(t *testing.T) {
	tests := []struct {
		method, path, want string
	}{
		{http.MethodPost, "/login", "handleLogin"},
		{http.MethodGet, "/orders", "handleListOrders"},
		{http.MethodPost, "/orders", "handleCreateOrder"},
		{http.MethodGet, "/orders/export", "handleExportOrders"},
		{http.MethodGet, "/orders/123", "handleGetOrder"},
		{http.MethodDelete, "/warehouses/wr_1", "handleDeleteWarehouse"},
		{http.MethodPost, "/complaints/c-1/replies", "handleAddReply"},
		{http.MethodPut, "/complaints/c-1/status", "handleSetComplaintStatus"},
		{http.MethodGet, "/complaints/c-1", "handleGetComplaint"},
		{http.MethodPost, "/wallet/recharge", "handleRechargeWallet"},
		{http.MethodGet, "/nowhere", "unknown"},
	}
	for _, tc := range tests {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			assert.Equal(t, tc.want, getHandlerName(tc.path, tc.method))
		})
	}
}

func TestEntityID(t *testing.T) {
	assert.Equal(t, "123", entityID("/orders/123"))
	assert.Equal(t, "", entityID("/orders/export"))
	assert.Equal(t, "c-1", entityID("/complaints/c-1/status"))
	assert.Equal(t, "", entityID("/wallet/recharge"))
	assert.Equal(t, "", entityID("/orders"))
}

func TestAuditResponseWriterSkipsBinary(t *testing.T) {
	rr := httptest.NewRecorder()
	w := newResponseWriterWrapper(rr)
	w.Header().Set("Content-Type", xlsxContentType)
	_, err := w.Write([]byte("PK\x03\x04"))
	require.NoError(t, err)
	assert.Empty(t, w.GetBody())
	assert.True(t, strings.HasPrefix(rr.Body.String(), "PK"))
}
