package indexer

import (
	"context"
	"log"
	"time"

	"github.com/bytedance/sonic"
	"github.com/zuhaus/house-search/pkg/messaging"
)

// reconciler is what the dispatcher routes to. Satisfied by *Reconciler.
type reconciler interface {
	Reindex(ctx context.Context, houseId int64) error
	Unindex(ctx context.Context, houseId int64) error
}

// PublishFunc re-publishes a change message on the bus.
type PublishFunc func(msg messaging.ChangeMessage) error

// Dispatcher consumes change messages, routes them to the reconciler and
// expresses retry as re-publish with an incremented count. No failure escapes
// Handle, one bad message never stops a consumer worker.
type Dispatcher struct {
	reconciler reconciler
	publish    PublishFunc
	opTimeout  time.Duration
}

func NewDispatcher(rec reconciler, publish PublishFunc) *Dispatcher {
	return &Dispatcher{
		reconciler: rec,
		publish:    publish,
		opTimeout:  30 * time.Second,
	}
}

// Handle processes one raw change message. Malformed messages are dropped,
// they cannot self-correct, so retrying them is pointless.
func (d *Dispatcher) Handle(raw []byte) {
	var msg messaging.ChangeMessage
	if err := sonic.Unmarshal(raw, &msg); err != nil {
		malformedMessages.Inc()
		log.Printf("cannot decode change message %q: %v", raw, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), d.opTimeout)
	defer cancel()

	switch msg.Operation {
	case messaging.OperationIndex:
		if err := d.reconciler.Reindex(ctx, msg.HouseId); err != nil {
			log.Printf("reindex house %d failed (retry %d): %v", msg.HouseId, msg.Retry, err)
			d.retry(msg.HouseId, messaging.OperationIndex, msg.Retry+1)
			return
		}
		housesIndexed.Inc()
	case messaging.OperationRemove:
		if err := d.reconciler.Unindex(ctx, msg.HouseId); err != nil {
			log.Printf("unindex house %d failed (retry %d): %v", msg.HouseId, msg.Retry, err)
			d.retry(msg.HouseId, messaging.OperationRemove, msg.Retry+1)
			return
		}
		housesRemoved.Inc()
	default:
		log.Printf("unsupported change operation %q for house %d", msg.Operation, msg.HouseId)
	}
}

func (d *Dispatcher) retry(houseId int64, operation string, retry int) {
	if retry > messaging.MaxRetry {
		retriesExhausted.Inc()
		log.Printf("giving up on house %d after %d retries, please check it", houseId, messaging.MaxRetry)
		return
	}
	changeRetries.Inc()
	if err := d.publish(messaging.ChangeMessage{
		HouseId:   houseId,
		Operation: operation,
		Retry:     retry,
	}); err != nil {
		log.Printf("cannot re-publish change for house %d: %v", houseId, err)
	}
}

// EnqueueIndex publishes a fresh index change on the bus. This is the path
// writers of the system of record use.
func (d *Dispatcher) EnqueueIndex(houseId int64) error {
	return d.publish(messaging.ChangeMessage{HouseId: houseId, Operation: messaging.OperationIndex})
}

// EnqueueRemove publishes a fresh remove change on the bus.
func (d *Dispatcher) EnqueueRemove(houseId int64) error {
	return d.publish(messaging.ChangeMessage{HouseId: houseId, Operation: messaging.OperationRemove})
}

// Index reconciles the house inline, bypassing the bus. Failures are logged
// and swallowed, callers that need guarantees use the bus path.
func (d *Dispatcher) Index(houseId int64) {
	ctx, cancel := context.WithTimeout(context.Background(), d.opTimeout)
	defer cancel()
	if err := d.reconciler.Reindex(ctx, houseId); err != nil {
		log.Printf("direct reindex of house %d failed: %v", houseId, err)
		return
	}
	housesIndexed.Inc()
}

// Remove unindexes the house inline, bypassing the bus. Failures are logged
// and swallowed.
func (d *Dispatcher) Remove(houseId int64) {
	ctx, cancel := context.WithTimeout(context.Background(), d.opTimeout)
	defer cancel()
	if err := d.reconciler.Unindex(ctx, houseId); err != nil {
		log.Printf("direct unindex of house %d failed: %v", houseId, err)
		return
	}
	housesRemoved.Inc()
}
