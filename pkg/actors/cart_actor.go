package actors

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/example/aseertime/pkg/cart"
	"github.com/example/aseertime/pkg/models"
	"go.uber.org/zap"
)

var ErrZoneMismatch = errors.New("zone does not belong to branch")

// SessionStore persists cart snapshots between requests and restarts.
type SessionStore interface {
	Load(ctx context.Context, session string) (cart.Snapshot, bool, error)
	Save(ctx context.Context, session string, snap cart.Snapshot) error
	Delete(ctx context.Context, session string) error
}

// Catalog is what a cart needs from the catalog store.
type Catalog interface {
	Product(ctx context.Context, id string) (models.Product, error)
	Zone(ctx context.Context, id string) (models.DeliveryZone, error)
	CartDefaults(ctx context.Context) cart.Defaults
}

// CartActor owns one session's cart; the mailbox serializes every change.
type CartActor struct {
	session string
	catalog Catalog
	store   SessionStore
	timeout time.Duration
	logger  *zap.Logger

	cart *cart.Cart
}

func (a *CartActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		a.restore()

	case *AddItem:
		a.respond(ctx, a.add(msg))

	case *UpdateQuantity:
		item, ok := a.cart.UpdateQuantity(msg.ItemID, msg.Quantity)
		reply := &CartReply{Found: ok}
		if ok {
			reply.Item = &item
			reply.Err = a.save()
		}
		a.respond(ctx, reply)

	case *RemoveItem:
		reply := &CartReply{Found: a.cart.Remove(msg.ItemID)}
		if reply.Found {
			reply.Err = a.save()
		}
		a.respond(ctx, reply)

	case *ClearCart:
		a.cart.Clear()
		a.respond(ctx, &CartReply{Found: true, Err: a.save()})

	case *SelectZone:
		a.respond(ctx, a.selectZone(msg))

	case *GetCart:
		a.respond(ctx, &CartReply{Found: true})

	case *actor.Stopped:
		a.logger.Debug("Cart actor stopped", zap.String("session", a.session))
	}
}

func (a *CartActor) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), a.timeout)
}

func (a *CartActor) restore() {
	ctx, cancel := a.ctx()
	defer cancel()

	snap, ok, err := a.store.Load(ctx, a.session)
	switch {
	case err != nil:
		a.logger.Warn("Failed to load cart, starting empty", zap.String("session", a.session), zap.Error(err))
		a.cart = cart.New()
	case ok:
		a.cart = cart.Restore(snap)
	default:
		a.cart = cart.New()
	}
}

func (a *CartActor) save() error {
	ctx, cancel := a.ctx()
	defer cancel()

	var err error
	if a.cart.Len() == 0 && a.cart.ZoneID() == "" {
		err = a.store.Delete(ctx, a.session)
	} else {
		err = a.store.Save(ctx, a.session, a.cart.Snapshot())
	}
	if err != nil {
		a.logger.Error("Failed to save cart", zap.String("session", a.session), zap.Error(err))
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

func (a *CartActor) add(msg *AddItem) *CartReply {
	ctx, cancel := a.ctx()
	defer cancel()

	p, err := a.catalog.Product(ctx, msg.ProductID)
	if err != nil {
		return &CartReply{Err: err}
	}
	item, err := cart.Configure(p, msg.Selection)
	if err != nil {
		return &CartReply{Err: err}
	}
	line := a.cart.Add(item)
	return &CartReply{Item: &line, Found: true, Err: a.save()}
}

func (a *CartActor) selectZone(msg *SelectZone) *CartReply {
	ctx, cancel := a.ctx()
	defer cancel()

	if msg.ZoneID == "" {
		a.cart.SelectZone("", "")
		return &CartReply{Found: true, Err: a.save()}
	}
	z, err := a.catalog.Zone(ctx, msg.ZoneID)
	if err != nil {
		return &CartReply{Err: err}
	}
	if msg.BranchID != "" && z.BranchID != msg.BranchID {
		return &CartReply{Err: fmt.Errorf("%w: %s", ErrZoneMismatch, msg.ZoneID)}
	}
	a.cart.SelectZone(z.BranchID, z.ID)
	return &CartReply{Found: true, Err: a.save()}
}

// respond fills in the snapshot and quote and answers the sender.
func (a *CartActor) respond(ctx actor.Context, reply *CartReply) {
	reply.Snapshot = a.cart.Snapshot()
	reply.Quote = a.quote()
	if ctx.Sender() != nil {
		ctx.Respond(reply)
	}
}

func (a *CartActor) quote() cart.Quote {
	ctx, cancel := a.ctx()
	defer cancel()

	var zone *models.DeliveryZone
	if id := a.cart.ZoneID(); id != "" {
		z, err := a.catalog.Zone(ctx, id)
		if err == nil {
			zone = &z
		} else {
			a.logger.Warn("Selected zone is gone, quoting with defaults", zap.String("zone_id", id), zap.Error(err))
		}
	}
	return a.cart.Quote(zone, a.catalog.CartDefaults(ctx))
}
