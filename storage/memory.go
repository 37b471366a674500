package storage

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"
)

// MemoryGateway is an in-process Gateway for tests. Signed URLs are opaque
// memory:// URLs carrying the expiry, good enough for asserting that a URL
// was (re-)issued.
type MemoryGateway struct {
	mu       sync.RWMutex
	objects  map[string][]byte
	policies map[string]BucketPolicy
}

func NewMemoryGateway(buckets []BucketPolicy) *MemoryGateway {
	policies := make(map[string]BucketPolicy, len(buckets))
	for _, policy := range buckets {
		policies[policy.Name] = policy
	}
	return &MemoryGateway{
		objects:  make(map[string][]byte),
		policies: policies,
	}
}

func (g *MemoryGateway) EnsureBuckets(ctx context.Context) {}

func (g *MemoryGateway) Upload(ctx context.Context, bucket, key string, r io.Reader, contentType string, size int64) error {
	policy, ok := g.policies[bucket]
	if !ok {
		return fmt.Errorf("%w: %s", ErrBucketUnknown, bucket)
	}
	if err := policy.Allows(contentType, size); err != nil {
		return err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	g.mu.Lock()
	g.objects[bucket+"/"+key] = data
	g.mu.Unlock()
	return nil
}

func (g *MemoryGateway) SignedURL(ctx context.Context, bucket, key string, ttl time.Duration) (string, error) {
	g.mu.RLock()
	_, ok := g.objects[bucket+"/"+key]
	g.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("%w: %s/%s", ErrObjectNotFound, bucket, key)
	}
	return fmt.Sprintf("memory://%s/%s?expires=%d", bucket, key, time.Now().Add(ttl).Unix()), nil
}

func (g *MemoryGateway) Remove(ctx context.Context, bucket, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.objects[bucket+"/"+key]; !ok {
		return fmt.Errorf("%w: %s/%s", ErrObjectNotFound, bucket, key)
	}
	delete(g.objects, bucket+"/"+key)
	return nil
}

// Has reports whether an object is stored, for test assertions.
func (g *MemoryGateway) Has(bucket, key string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.objects[bucket+"/"+key]
	return ok
}
