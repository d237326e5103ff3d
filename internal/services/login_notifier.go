package services

import (
	"context"
	"fmt"
	"time"

	redisclient "github.com/utavu/auth-backend/internal/clients/redis"
	"github.com/utavu/auth-backend/internal/platform/logger"
)

// publishTimeout caps a single background publish so a slow broker cannot
// pile up goroutine-years of work.
const publishTimeout = 5 * time.Second

const loginEventType = "User.Login"

// LoginNotifier emits best-effort "a login happened" telemetry. Notify never
// blocks the request and never fails it: the event is enqueued onto a buffered
// channel that a background worker drains, and publish errors are logged and
// swallowed. A full queue drops the event.
type LoginNotifier interface {
	Notify(email string)
	Start(ctx context.Context)
}

type loginNotifier struct {
	log   *logger.Logger
	bus   redisclient.LoginEventBus
	queue chan string
}

func NewLoginNotifier(log *logger.Logger, bus redisclient.LoginEventBus, queueSize int) LoginNotifier {
	if queueSize <= 0 {
		queueSize = 256
	}
	return &loginNotifier{
		log:   log.With("service", "LoginNotifier"),
		bus:   bus,
		queue: make(chan string, queueSize),
	}
}

func (n *loginNotifier) Notify(email string) {
	select {
	case n.queue <- email:
	default:
		n.log.Warn("login event queue full, dropping event", "email", email)
	}
}

func (n *loginNotifier) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case email := <-n.queue:
				n.publish(email)
			}
		}
	}()
}

func (n *loginNotifier) publish(email string) {
	if n.bus == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	ev := redisclient.LoginEvent{
		EventType:   loginEventType,
		Subject:     fmt.Sprintf("User %s logged in", email),
		DataVersion: "1.0",
		Data:        redisclient.LoginEventData{Email: email},
	}
	if err := n.bus.Publish(ctx, ev); err != nil {
		n.log.Warn("failed to publish login event", "email", email, "error", err)
	}
}
