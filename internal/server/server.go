package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/wenzhi0209/webrtc-lan-server/internal/config"
	"github.com/wenzhi0209/webrtc-lan-server/internal/discovery"
	"github.com/wenzhi0209/webrtc-lan-server/internal/document"
	"github.com/wenzhi0209/webrtc-lan-server/internal/events"
	"github.com/wenzhi0209/webrtc-lan-server/internal/identity"
	"github.com/wenzhi0209/webrtc-lan-server/internal/logging"
	"github.com/wenzhi0209/webrtc-lan-server/internal/netinfo"
	"go.uber.org/zap"
)

// keepAlivePeriod is applied to accepted sockets so half-dead peers are
// eventually detected by the kernel.
const keepAlivePeriod = 30 * time.Second

// Controller owns the listener lifecycle. It is the single writer of the
// server State; everything else observes snapshots and events.
type Controller struct {
	cfg      *config.Config
	hub      *events.Hub
	doc      *document.Document
	resolver *netinfo.Resolver

	counter atomic.Uint64 // connection identifiers, pre-incremented
	sem     chan struct{} // bounds concurrently handled connections

	mu         sync.Mutex
	state      State
	url        string
	reason     string
	port       int
	listener   net.Listener
	stopping   bool
	conns      map[uint64]net.Conn
	advertiser *discovery.Advertiser
	response   []byte // precomputed fixed HTTP response
	observers  []func(Snapshot)
	notify     chan Snapshot
	wg         sync.WaitGroup
}

// New wires a controller. The document is loaded once by the caller and
// shared read-only across all connections.
func New(cfg *config.Config, hub *events.Hub, doc *document.Document) *Controller {
	maxConns := cfg.MaxConns
	if maxConns <= 0 {
		maxConns = config.Default().MaxConns
	}
	c := &Controller{
		cfg:      cfg,
		hub:      hub,
		doc:      doc,
		resolver: &netinfo.Resolver{InterfaceName: cfg.InterfaceName},
		sem:      make(chan struct{}, maxConns),
		conns:    make(map[uint64]net.Conn),
		response: buildResponse(doc),
		notify:   make(chan Snapshot, 64),
	}
	go c.dispatchSnapshots()
	return c
}

// dispatchSnapshots delivers state transitions to observers in order, off
// the controller's lock so an observer cannot deadlock back into it.
func (c *Controller) dispatchSnapshots() {
	for snap := range c.notify {
		c.mu.Lock()
		observers := make([]func(Snapshot), len(c.observers))
		copy(observers, c.observers)
		c.mu.Unlock()
		for _, fn := range observers {
			fn(snap)
		}
	}
}

// OnState registers an observer invoked with a snapshot after every state
// transition. Registration is not removable; observers live as long as the
// controller.
func (c *Controller) OnState(fn func(Snapshot)) {
	c.mu.Lock()
	c.observers = append(c.observers, fn)
	c.mu.Unlock()
}

// Snapshot returns the current state view.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{State: c.state, URL: c.url, Reason: c.reason, ActiveConns: len(c.conns)}
}

// Port returns the bound listen port, or 0 when no listener is up. It
// differs from the configured port only when that is 0 (ephemeral bind).
func (c *Controller) Port() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.port
}

// Start loads the identity, binds the TLS listener and begins accepting.
// Calling Start while the server is already starting or running is a no-op
// beyond a warning event; a second listener is never created.
func (c *Controller) Start() {
	c.mu.Lock()
	if c.state == StateRunning || c.state == StateStarting {
		c.mu.Unlock()
		c.hub.Publish(events.KindWarning, "Server already running")
		return
	}
	c.stopping = false
	c.setStateLocked(StateStarting, "", "")
	c.mu.Unlock()

	c.hub.Publish(events.KindInfo, "Starting server...")

	id, err := identity.Load(c.cfg.BundlePath, c.cfg.Passphrase)
	if err != nil {
		c.fail(fmt.Sprintf("identity: %v", err))
		return
	}

	lc := net.ListenConfig{
		Control:   reuseAddr,
		KeepAlive: keepAlivePeriod,
	}
	inner, err := lc.Listen(context.Background(), "tcp", fmt.Sprintf(":%d", c.cfg.Port))
	if err != nil {
		c.fail(fmt.Sprintf("bind port %d: %v", c.cfg.Port, err))
		return
	}
	ln := tls.NewListener(inner, id.TLSConfig())
	boundPort := inner.Addr().(*net.TCPAddr).Port

	// Listener is ready: compute the advertised URL before flipping state so
	// the Running snapshot already carries it.
	host := "localhost"
	if ip, ok := c.resolver.Resolve(); ok {
		host = ip
	} else {
		c.hub.Publish(events.KindWarning, "Could not determine WiFi address, advertising localhost")
	}
	url := fmt.Sprintf("https://%s:%d/", host, boundPort)

	c.mu.Lock()
	if c.stopping {
		// Stop arrived between Starting and the bind completing.
		c.stopping = false
		c.setStateLocked(StateStopped, "", "")
		c.mu.Unlock()
		_ = ln.Close()
		c.hub.Publish(events.KindInfo, "Server stopped")
		return
	}
	c.listener = ln
	c.port = boundPort
	c.setStateLocked(StateRunning, url, "")
	c.mu.Unlock()

	c.hub.Publish(events.KindSuccess, "Server running")
	c.hub.Publish(events.KindInfo, fmt.Sprintf("Open %s on both devices", url))
	logging.Info("Server running", zap.String("url", url), zap.Int("port", boundPort))

	if c.cfg.Advertise {
		c.advertise(boundPort)
	}

	go c.acceptLoop(ln)
}

// Stop requests cancellation of the listener and closes every in-flight
// connection. Completion is confirmed asynchronously: the accept loop
// observes the closed listener and performs the transition to Stopped.
func (c *Controller) Stop() {
	c.mu.Lock()
	if c.state != StateRunning && c.state != StateStarting {
		c.mu.Unlock()
		c.hub.Publish(events.KindWarning, "Server already stopped")
		return
	}
	c.stopping = true
	c.url = ""
	ln := c.listener
	c.listener = nil
	adv := c.advertiser
	c.advertiser = nil
	open := make([]net.Conn, 0, len(c.conns))
	for _, conn := range c.conns {
		open = append(open, conn)
	}
	c.mu.Unlock()

	adv.Shutdown()
	for _, conn := range open {
		_ = conn.Close()
	}
	if ln != nil {
		_ = ln.Close()
	}
}

func (c *Controller) acceptLoop(ln net.Listener) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			if c.isStopping() || errors.Is(err, net.ErrClosed) {
				c.finishStop()
				return
			}
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				// Transient listener condition; keep accepting.
				c.hub.Publish(events.KindWarning, fmt.Sprintf("Listener waiting: %v", err))
				continue
			}
			_ = ln.Close()
			c.fail(fmt.Sprintf("accept: %v", err))
			return
		}

		select {
		case c.sem <- struct{}{}:
		default:
			// At the concurrency cap: shed the connection rather than stall
			// the accept path behind slow handlers.
			_ = conn.Close()
			c.hub.Publish(events.KindWarning, "Connection limit reached, rejecting connection")
			continue
		}

		id := c.counter.Add(1)

		c.mu.Lock()
		if c.stopping {
			c.mu.Unlock()
			<-c.sem
			_ = conn.Close()
			continue
		}
		c.conns[id] = conn
		c.wg.Add(1)
		c.mu.Unlock()

		go func() {
			defer func() {
				c.mu.Lock()
				delete(c.conns, id)
				c.mu.Unlock()
				<-c.sem
				c.wg.Done()
			}()
			c.handleConn(id, conn)
		}()
	}
}

// finishStop runs on the accept goroutine once the listener is gone. It
// waits for in-flight handlers (Stop already closed their sockets), resets
// the per-run connection counter and confirms the Stopped state.
func (c *Controller) finishStop() {
	c.wg.Wait()
	c.counter.Store(0)

	c.mu.Lock()
	c.port = 0
	c.setStateLocked(StateStopped, "", "")
	c.mu.Unlock()

	c.hub.Publish(events.KindInfo, "Server stopped")
	logging.Info("Server stopped")
}

func (c *Controller) fail(reason string) {
	c.mu.Lock()
	c.listener = nil
	c.port = 0
	c.setStateLocked(StateFailed, "", reason)
	c.mu.Unlock()

	c.hub.Publish(events.KindError, fmt.Sprintf("Server failed: %s", reason))
	logging.Error("Server failed", zap.String("reason", reason))
}

func (c *Controller) isStopping() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stopping
}

// setStateLocked mutates state and queues observer notification. Callers
// hold c.mu. A snapshot is dropped only if the dispatcher is 64 transitions
// behind; observers also poll Snapshot() so a drop cannot strand them on a
// stale state.
func (c *Controller) setStateLocked(s State, url, reason string) {
	c.state = s
	c.url = url
	c.reason = reason
	snap := Snapshot{State: s, URL: url, Reason: reason, ActiveConns: len(c.conns)}
	select {
	case c.notify <- snap:
	default:
	}
}

func (c *Controller) advertise(port int) {
	adv, err := discovery.Advertise("webrtc-lan-server", port)
	if err != nil {
		c.hub.Publish(events.KindWarning, fmt.Sprintf("mDNS advertisement failed: %v", err))
		return
	}
	c.mu.Lock()
	c.advertiser = adv
	c.mu.Unlock()
}
