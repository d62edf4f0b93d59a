package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/wasfeines/wasfeines/internal/domain/repository"
)

type memoryObject struct {
	data         []byte
	contentType  string
	lastModified time.Time
}

// Memory is an in-memory ObjectStore used by repository tests. Presigned
// URLs are deterministic memory:// URLs so tests can assert on them; they
// grant nothing.
type Memory struct {
	mu      sync.Mutex
	objects map[string]memoryObject

	// Now is the clock used for LastModified stamps. Overridable in tests.
	Now func() time.Time
}

// Compile-time verification that Memory implements repository.ObjectStore.
var _ repository.ObjectStore = (*Memory)(nil)

// NewMemory creates an empty in-memory object store.
func NewMemory() *Memory {
	return &Memory{
		objects: make(map[string]memoryObject),
		Now:     time.Now,
	}
}

// List returns a snapshot of every object under prefix, sorted by key.
func (m *Memory) List(_ context.Context, prefix string) ([]repository.ObjectInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var objects []repository.ObjectInfo
	for key, obj := range m.objects {
		if strings.HasPrefix(key, prefix) {
			objects = append(objects, repository.ObjectInfo{
				Key:          key,
				LastModified: obj.lastModified,
			})
		}
	}
	sort.Slice(objects, func(i, j int) bool { return objects[i].Key < objects[j].Key })
	return objects, nil
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	obj, ok := m.objects[key]
	if !ok {
		return nil, repository.ErrObjectNotFound
	}
	data := make([]byte, len(obj.data))
	copy(data, obj.data)
	return data, nil
}

func (m *Memory) Put(_ context.Context, key string, data []byte, contentType string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]byte, len(data))
	copy(stored, data)
	m.objects[key] = memoryObject{
		data:         stored,
		contentType:  contentType,
		lastModified: m.Now(),
	}
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.objects, key)
	return nil
}

func (m *Memory) Exists(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.objects[key]
	return ok, nil
}

func (m *Memory) Copy(_ context.Context, srcKey, dstKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	src, ok := m.objects[srcKey]
	if !ok {
		return repository.ErrObjectNotFound
	}
	data := make([]byte, len(src.data))
	copy(data, src.data)
	m.objects[dstKey] = memoryObject{
		data:         data,
		contentType:  src.contentType,
		lastModified: m.Now(),
	}
	return nil
}

func (m *Memory) PresignGet(_ context.Context, key string, expiry time.Duration) (string, error) {
	return memoryURL("get", key, expiry), nil
}

func (m *Memory) PresignPut(_ context.Context, key string, expiry time.Duration) (string, error) {
	return memoryURL("put", key, expiry), nil
}

func (m *Memory) PresignDelete(_ context.Context, key string, expiry time.Duration) (string, error) {
	return memoryURL("delete", key, expiry), nil
}

func memoryURL(action, key string, expiry time.Duration) string {
	return fmt.Sprintf("memory://%s/%s?expires=%d", action, key, int(expiry.Seconds()))
}

// Len returns the number of stored objects.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}
