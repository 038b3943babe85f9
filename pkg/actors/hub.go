// Package actors runs carts and notifications on protoactor: one actor per
// cart session, so each cart has a single writer.
package actors

import (
	"errors"
	"fmt"
	"regexp"
	"sync"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/example/aseertime/pkg/cart"
	"go.uber.org/zap"
)

var (
	ErrInvalidSession  = errors.New("invalid cart session id")
	ErrUnexpectedReply = errors.New("unexpected reply from cart actor")
)

var sessionPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// CartHub routes cart requests to per-session actors, spawning them on first use.
type CartHub struct {
	system  *actor.ActorSystem
	catalog Catalog
	store   SessionStore
	timeout time.Duration
	logger  *zap.Logger

	mu sync.Mutex
	// TODO: stop cart actors that have been idle longer than shop.cart_ttl.
	carts map[string]*actor.PID
}

func NewCartHub(system *actor.ActorSystem, catalog Catalog, store SessionStore, timeout time.Duration, logger *zap.Logger) *CartHub {
	return &CartHub{
		system:  system,
		catalog: catalog,
		store:   store,
		timeout: timeout,
		logger:  logger.Named("cart-hub"),
		carts:   make(map[string]*actor.PID),
	}
}

func (h *CartHub) pid(session string) (*actor.PID, error) {
	if !sessionPattern.MatchString(session) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSession, session)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if pid, ok := h.carts[session]; ok {
		return pid, nil
	}

	props := actor.PropsFromProducer(func() actor.Actor {
		return &CartActor{
			session: session,
			catalog: h.catalog,
			store:   h.store,
			timeout: h.timeout,
			logger:  h.logger.Named("cart"),
		}
	})
	pid, err := h.system.Root.SpawnNamed(props, "cart-"+session)
	if err != nil && !errors.Is(err, actor.ErrNameExists) {
		return nil, fmt.Errorf("failed to spawn cart actor: %w", err)
	}
	h.carts[session] = pid
	return pid, nil
}

func (h *CartHub) request(session string, msg any) (*CartReply, error) {
	pid, err := h.pid(session)
	if err != nil {
		return nil, err
	}
	res, err := h.system.Root.RequestFuture(pid, msg, h.timeout).Result()
	if err != nil {
		return nil, fmt.Errorf("cart request failed: %w", err)
	}
	reply, ok := res.(*CartReply)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnexpectedReply, res)
	}
	return reply, reply.Err
}

func (h *CartHub) Add(session, productID string, sel cart.Selection) (*CartReply, error) {
	return h.request(session, &AddItem{ProductID: productID, Selection: sel})
}

func (h *CartHub) UpdateQuantity(session, itemID string, quantity int) (*CartReply, error) {
	return h.request(session, &UpdateQuantity{ItemID: itemID, Quantity: quantity})
}

func (h *CartHub) Remove(session, itemID string) (*CartReply, error) {
	return h.request(session, &RemoveItem{ItemID: itemID})
}

func (h *CartHub) Clear(session string) (*CartReply, error) {
	return h.request(session, &ClearCart{})
}

// SelectZone picks the delivery zone. An empty zoneID clears the choice.
func (h *CartHub) SelectZone(session, branchID, zoneID string) (*CartReply, error) {
	return h.request(session, &SelectZone{BranchID: branchID, ZoneID: zoneID})
}

func (h *CartHub) Get(session string) (*CartReply, error) {
	return h.request(session, &GetCart{})
}

// Stop stops every cart actor and waits for them to finish.
func (h *CartHub) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for session, pid := range h.carts {
		if err := h.system.Root.StopFuture(pid).Wait(); err != nil {
			h.logger.Warn("Failed to stop cart actor", zap.String("session", session), zap.Error(err))
		}
		delete(h.carts, session)
	}
}
