package indexer

import (
	"context"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/zuhaus/house-search/pkg/messaging"
)

type stubReconciler struct {
	reindexErr  error
	unindexErr  error
	reindexed   []int64
	unindexed   []int64
	reindexSeen int
}

func (s *stubReconciler) Reindex(_ context.Context, houseId int64) error {
	s.reindexSeen++
	if s.reindexErr != nil {
		return s.reindexErr
	}
	s.reindexed = append(s.reindexed, houseId)
	return nil
}

func (s *stubReconciler) Unindex(_ context.Context, houseId int64) error {
	if s.unindexErr != nil {
		return s.unindexErr
	}
	s.unindexed = append(s.unindexed, houseId)
	return nil
}

func mustEncode(t *testing.T, msg messaging.ChangeMessage) []byte {
	t.Helper()
	raw, err := sonic.Marshal(msg)
	if err != nil {
		t.Fatal(err)
	}
	return raw
}

func TestHandleRoutesIndexOperation(t *testing.T) {
	rec := &stubReconciler{}
	var published []messaging.ChangeMessage
	d := NewDispatcher(rec, func(msg messaging.ChangeMessage) error {
		published = append(published, msg)
		return nil
	})

	d.Handle(mustEncode(t, messaging.ChangeMessage{HouseId: 16, Operation: messaging.OperationIndex}))

	assert.Equal(t, []int64{16}, rec.reindexed)
	assert.Empty(t, published, "success must not re-publish")
}

func TestHandleRoutesRemoveOperation(t *testing.T) {
	rec := &stubReconciler{}
	d := NewDispatcher(rec, func(messaging.ChangeMessage) error { return nil })

	d.Handle(mustEncode(t, messaging.ChangeMessage{HouseId: 16, Operation: messaging.OperationRemove}))

	assert.Equal(t, []int64{16}, rec.unindexed)
}

func TestHandleDropsMalformedMessage(t *testing.T) {
	rec := &stubReconciler{}
	var published []messaging.ChangeMessage
	d := NewDispatcher(rec, func(msg messaging.ChangeMessage) error {
		published = append(published, msg)
		return nil
	})

	d.Handle([]byte("{not json"))

	assert.Zero(t, rec.reindexSeen, "malformed messages must not reach the reconciler")
	assert.Empty(t, published, "malformed messages cannot self-correct, no retry")
}

func TestHandleRepublishesWithIncrementedRetry(t *testing.T) {
	rec := &stubReconciler{reindexErr: errDownstream}
	var published []messaging.ChangeMessage
	d := NewDispatcher(rec, func(msg messaging.ChangeMessage) error {
		published = append(published, msg)
		return nil
	})

	d.Handle(mustEncode(t, messaging.ChangeMessage{HouseId: 16, Operation: messaging.OperationIndex, Retry: 1}))

	if assert.Len(t, published, 1) {
		assert.Equal(t, messaging.ChangeMessage{HouseId: 16, Operation: messaging.OperationIndex, Retry: 2}, published[0])
	}
}

// A reindex that always fails is retried exactly MaxRetry additional times:
// the bus sees the initial message plus MaxRetry re-publishes, then the change
// is dropped.
func TestRetryBound(t *testing.T) {
	rec := &stubReconciler{reindexErr: errDownstream}
	queue := []messaging.ChangeMessage{{HouseId: 16, Operation: messaging.OperationIndex}}
	d := NewDispatcher(rec, func(msg messaging.ChangeMessage) error {
		queue = append(queue, msg)
		return nil
	})

	seen := 0
	for len(queue) > 0 {
		msg := queue[0]
		queue = queue[1:]
		seen++
		d.Handle(mustEncode(t, msg))
	}

	assert.Equal(t, messaging.MaxRetry+1, seen, "bus must carry MaxRetry+1 messages for the house")
	assert.Equal(t, messaging.MaxRetry+1, rec.reindexSeen)
}

func TestRemoveRetryBound(t *testing.T) {
	rec := &stubReconciler{unindexErr: errDownstream}
	queue := []messaging.ChangeMessage{{HouseId: 7, Operation: messaging.OperationRemove}}
	d := NewDispatcher(rec, func(msg messaging.ChangeMessage) error {
		queue = append(queue, msg)
		return nil
	})

	seen := 0
	for len(queue) > 0 {
		msg := queue[0]
		queue = queue[1:]
		seen++
		d.Handle(mustEncode(t, msg))
	}

	assert.Equal(t, messaging.MaxRetry+1, seen)
}

func TestHandleIgnoresUnknownOperation(t *testing.T) {
	rec := &stubReconciler{}
	var published []messaging.ChangeMessage
	d := NewDispatcher(rec, func(msg messaging.ChangeMessage) error {
		published = append(published, msg)
		return nil
	})

	d.Handle(mustEncode(t, messaging.ChangeMessage{HouseId: 16, Operation: "UPSERT"}))

	assert.Zero(t, rec.reindexSeen)
	assert.Empty(t, published)
}

func TestDirectEntryPointsSwallowFailures(t *testing.T) {
	rec := &stubReconciler{reindexErr: errDownstream, unindexErr: errDownstream}
	var published []messaging.ChangeMessage
	d := NewDispatcher(rec, func(msg messaging.ChangeMessage) error {
		published = append(published, msg)
		return nil
	})

	d.Index(16)
	d.Remove(16)

	assert.Empty(t, published, "direct path never retries by design")
}

func TestEnqueuePublishesFreshMessage(t *testing.T) {
	var published []messaging.ChangeMessage
	d := NewDispatcher(&stubReconciler{}, func(msg messaging.ChangeMessage) error {
		published = append(published, msg)
		return nil
	})

	assert.NoError(t, d.EnqueueIndex(21))
	assert.NoError(t, d.EnqueueRemove(22))

	assert.Equal(t, []messaging.ChangeMessage{
		{HouseId: 21, Operation: messaging.OperationIndex, Retry: 0},
		{HouseId: 22, Operation: messaging.OperationRemove, Retry: 0},
	}, published)
}
