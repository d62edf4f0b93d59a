package storage

import (
	"context"
	"time"

	"github.com/wasfeines/wasfeines/internal/domain/repository"
	"github.com/wasfeines/wasfeines/internal/infrastructure/metrics"
)

// Instrumented wraps an ObjectStore and counts every call in the
// storage_operations_total metric. Expected-missing reads still count as
// errors; the NotFound share of the error rate is visible in logs instead.
type Instrumented struct {
	inner repository.ObjectStore
}

// Compile-time verification that Instrumented implements repository.ObjectStore.
var _ repository.ObjectStore = (*Instrumented)(nil)

// NewInstrumented wraps inner with operation counters.
func NewInstrumented(inner repository.ObjectStore) *Instrumented {
	return &Instrumented{inner: inner}
}

func record(operation string, err error) {
	status := metrics.StorageStatusSuccess
	if err != nil {
		status = metrics.StorageStatusError
	}
	metrics.StorageOperationsTotal.WithLabelValues(operation, status).Inc()
}

func (s *Instrumented) List(ctx context.Context, prefix string) ([]repository.ObjectInfo, error) {
	objects, err := s.inner.List(ctx, prefix)
	record("list", err)
	return objects, err
}

func (s *Instrumented) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.inner.Get(ctx, key)
	record("get", err)
	return data, err
}

func (s *Instrumented) Put(ctx context.Context, key string, data []byte, contentType string) error {
	err := s.inner.Put(ctx, key, data, contentType)
	record("put", err)
	return err
}

func (s *Instrumented) Delete(ctx context.Context, key string) error {
	err := s.inner.Delete(ctx, key)
	record("delete", err)
	return err
}

func (s *Instrumented) Exists(ctx context.Context, key string) (bool, error) {
	ok, err := s.inner.Exists(ctx, key)
	record("exists", err)
	return ok, err
}

func (s *Instrumented) Copy(ctx context.Context, srcKey, dstKey string) error {
	err := s.inner.Copy(ctx, srcKey, dstKey)
	record("copy", err)
	return err
}

func (s *Instrumented) PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error) {
	url, err := s.inner.PresignGet(ctx, key, expiry)
	record("presign_get", err)
	return url, err
}

func (s *Instrumented) PresignPut(ctx context.Context, key string, expiry time.Duration) (string, error) {
	url, err := s.inner.PresignPut(ctx, key, expiry)
	record("presign_put", err)
	return url, err
}

func (s *Instrumented) PresignDelete(ctx context.Context, key string, expiry time.Duration) (string, error) {
	url, err := s.inner.PresignDelete(ctx, key, expiry)
	record("presign_delete", err)
	return url, err
}
