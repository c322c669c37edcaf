package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "umaxship_orders_created_total",
		Help: "Total number of orders successfully created.",
	},
		[]string{"order_type"},
	)

	WarehousesCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "umaxship_warehouses_created_total",
		Help: "Total number of pickup locations created.",
	})

	ComplaintRepliesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "umaxship_complaint_replies_total",
		Help: "Total number of replies appended to complaint threads.",
	})

	WalletRechargesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "umaxship_wallet_recharges_total",
		Help: "Total number of wallet recharge payment sessions opened.",
	})

	InvalidRecordsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "umaxship_invalid_records_total",
		Help: "Total number of order records skipped because their documents could not be decoded.",
	})

	OperationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "umaxship_operation_errors_total",
		Help: "Total number of errors encountered during specific operations.",
	},
		[]string{"operation"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "umaxship_http_requests_total",
		Help: "Total number of API requests by handler and status code.",
	},
		[]string{"handler", "code"},
	)

	OrderCacheItems = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "umaxship_order_cache_items",
		Help: "Current number of in-flight orders in the order cache.",
	})
)
