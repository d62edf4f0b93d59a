// Package metrics provides Prometheus metrics for observability.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "wasfeines"

var (
	// StorageOperationsTotal tracks object store calls.
	// Labels:
	//   - operation: list, get, put, delete, exists, copy,
	//     presign_get, presign_put, presign_delete
	//   - status: success, error
	StorageOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "storage_operations_total",
			Help:      "Total number of object store operations",
		},
		[]string{"operation", "status"},
	)

	// CacheOperationsTotal tracks recipe list cache operations.
	// Labels:
	//   - operation: get, set, delete
	//   - status: hit, miss, success, error
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_operations_total",
			Help:      "Total number of cache operations",
		},
		[]string{"operation", "status"},
	)

	// SingleflightRequestsTotal tracks singleflight behavior on ListRecipes.
	// Labels:
	//   - result: initiated (new execution), shared (reused result)
	SingleflightRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "singleflight_requests_total",
			Help:      "Total number of singleflight requests",
		},
		[]string{"result"},
	)

	// PublishTasksTotal tracks publish tasks across their lifecycle.
	// Labels:
	//   - status: enqueued, enqueue_failed, success, retry, dropped
	PublishTasksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publish_tasks_total",
			Help:      "Total number of recipe publish tasks processed",
		},
		[]string{"status"},
	)

	// MalformedSummariesTotal counts recipe JSON sidecars that failed to
	// parse and were degraded to an absent summary.
	MalformedSummariesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "malformed_summaries_total",
			Help:      "Total number of recipe summary sidecars that failed to parse",
		},
	)
)

// Storage operation status constants.
const (
	StorageStatusSuccess = "success"
	StorageStatusError   = "error"
)

// Cache operation status constants.
const (
	CacheStatusHit     = "hit"
	CacheStatusMiss    = "miss"
	CacheStatusSuccess = "success"
	CacheStatusError   = "error"
)

// Cache operation type constants.
const (
	CacheOpGet    = "get"
	CacheOpSet    = "set"
	CacheOpDelete = "delete"
)

// Singleflight result constants.
const (
	SingleflightInitiated = "initiated"
	SingleflightShared    = "shared"
)

// Publish task status constants.
const (
	PublishStatusEnqueued      = "enqueued"
	PublishStatusEnqueueFailed = "enqueue_failed"
	PublishStatusSuccess       = "success"
	PublishStatusRetry         = "retry"
	PublishStatusDropped       = "dropped"
)
