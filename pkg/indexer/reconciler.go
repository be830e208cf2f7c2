package indexer

import (
	"context"
	"errors"
	"fmt"
)

// ErrDeleteMismatch means duplicate cleanup removed a different number of
// documents than the search reported, some other writer raced us. The whole
// reindex is retried so the next pass sees the converged state.
var ErrDeleteMismatch = errors.New("deleted count does not match duplicate count")

// Reconciler restores the at-most-one-document invariant for a house. It holds
// no in-process state, every decision starts from a fresh read of the index,
// which is what lets concurrent reindex calls converge.
type Reconciler struct {
	index     SearchIndex
	builder   *DocumentBuilder
	suggester *SuggestionBuilder
	resolver  AddressResolver
}

func NewReconciler(index SearchIndex, builder *DocumentBuilder, suggester *SuggestionBuilder, resolver AddressResolver) *Reconciler {
	return &Reconciler{
		index:     index,
		builder:   builder,
		suggester: suggester,
		resolver:  resolver,
	}
}

type actionKind int

const (
	actionCreate actionKind = iota
	actionUpdate
	actionRecreate
)

// reconcileAction is the three-way decision computed once from the current
// index state and then dispatched.
type reconcileAction struct {
	kind     actionKind
	esId     string
	expected int64
}

func decideAction(esIds []string) reconcileAction {
	switch len(esIds) {
	case 0:
		return reconcileAction{kind: actionCreate}
	case 1:
		return reconcileAction{kind: actionUpdate, esId: esIds[0]}
	default:
		return reconcileAction{kind: actionRecreate, expected: int64(len(esIds))}
	}
}

// Reindex rebuilds the document for the house and writes it into the search
// index, repairing duplicates by delete-then-recreate so the surviving
// document always reflects the freshest store read. The secondary location
// index must also be updated before the operation counts as complete; any
// failure is returned for the dispatcher to retry.
func (r *Reconciler) Reindex(ctx context.Context, houseId int64) error {
	doc, err := r.builder.Build(ctx, houseId)
	if err != nil {
		return err
	}
	if err := r.suggester.Attach(ctx, doc); err != nil {
		return err
	}

	esIds, err := r.index.FindByHouseId(ctx, houseId)
	if err != nil {
		return err
	}

	action := decideAction(esIds)
	switch action.kind {
	case actionCreate:
		err = r.index.Create(ctx, doc)
	case actionUpdate:
		err = r.index.Update(ctx, action.esId, doc)
	case actionRecreate:
		var deleted int64
		deleted, err = r.index.DeleteByHouseId(ctx, houseId)
		if err == nil && deleted != action.expected {
			err = fmt.Errorf("house %d: %w: expected %d, deleted %d",
				houseId, ErrDeleteMismatch, action.expected, deleted)
		}
		if err == nil {
			err = r.index.Create(ctx, doc)
		}
	}
	if err != nil {
		return err
	}

	return r.resolver.UpsertLocation(ctx, houseId, doc.Location, doc.Title, doc.Address, doc.Price, doc.Area)
}

// Unindex removes every document for the house plus its location mapping. A
// delete that affected nothing when a document was expected is a failure, the
// message may have overtaken the index write.
func (r *Reconciler) Unindex(ctx context.Context, houseId int64) error {
	deleted, err := r.index.DeleteByHouseId(ctx, houseId)
	if err != nil {
		return err
	}
	if err := r.resolver.RemoveLocation(ctx, houseId); err != nil {
		return err
	}
	if deleted <= 0 {
		return fmt.Errorf("no indexed documents removed for house %d", houseId)
	}
	return nil
}
