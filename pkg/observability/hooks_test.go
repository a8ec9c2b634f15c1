package observability

import (
	"context"
	"testing"
	"time"
)

// testPipelineHooks counts received events.
type testPipelineHooks struct {
	NoopPipelineHooks
	decyclifyStarts int
}

func (h *testPipelineHooks) OnDecyclifyStart(ctx context.Context, nodeCount, edgeCount int) {
	h.decyclifyStarts++
}

// testCacheHooks counts received events.
type testCacheHooks struct {
	NoopCacheHooks
	hits int
}

func (h *testCacheHooks) OnCacheHit(ctx context.Context, keyType string) {
	h.hits++
}

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnDecyclifyStart(ctx, 5, 6)
	p.OnDecyclifyComplete(ctx, 1, time.Second, nil)
	p.OnScheduleStart(ctx, "tasks", 2)
	p.OnScheduleComplete(ctx, "tasks", 5, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "schedule")
	c.OnCacheMiss(ctx, "schedule")
	c.OnCacheSet(ctx, "schedule", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	// Defaults are noop
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	// Custom hooks are returned after registration
	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	Pipeline().OnDecyclifyStart(context.Background(), 1, 1)
	Cache().OnCacheHit(context.Background(), "schedule")
	if customPipeline.decyclifyStarts != 1 {
		t.Errorf("decyclifyStarts = %d, want 1", customPipeline.decyclifyStarts)
	}
	if customCache.hits != 1 {
		t.Errorf("hits = %d, want 1", customCache.hits)
	}
}

func TestSetHooks_Nil(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	SetPipelineHooks(nil)
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("SetPipelineHooks(nil) should restore the noop hooks")
	}
	SetCacheHooks(nil)
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("SetCacheHooks(nil) should restore the noop hooks")
	}
}
