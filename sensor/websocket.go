package sensor

import (
	"context"
	"errors"
	"io"
	"log"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"mercury-maze/protocol"
)

const (
	readLimit    = 1 << 16
	pongWait     = 60 * time.Second
	pingInterval = 25 * time.Second
	writeWait    = 10 * time.Second

	// DefaultStaleAfter levels the board when the controller goes quiet.
	DefaultStaleAfter = 500 * time.Millisecond
)

type WebsocketOption func(*Websocket)

// WithLogger sets the logger. Defaults to discarding output.
func WithLogger(l *log.Logger) WebsocketOption {
	return func(w *Websocket) { w.logger = l }
}

// WithStaleAfter sets how long a sample stays valid.
func WithStaleAfter(d time.Duration) WebsocketOption {
	return func(w *Websocket) { w.staleAfter = d }
}

// WithGain sets the raw counts for a full-scale (±1) phone reading.
func WithGain(g float64) WebsocketOption {
	return func(w *Websocket) { w.gain = g }
}

// Websocket takes tilt from a phone that streams protocol.Input envelopes.
// The most recent sample from any connected controller wins.
type Websocket struct {
	upgrader   websocket.Upgrader
	logger     *log.Logger
	staleAfter time.Duration
	gain       float64
	now        func() time.Time

	mu       sync.Mutex
	tilt     [2]float64
	received time.Time
	conns    map[*websocket.Conn]struct{}
}

func NewWebsocket(opts ...WebsocketOption) *Websocket {
	w := &Websocket{
		upgrader: websocket.Upgrader{
			// Controllers are phones on the local network; any origin is accepted.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		staleAfter: DefaultStaleAfter,
		gain:       OneG,
		now:        time.Now,
		conns:      make(map[*websocket.Conn]struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = log.New(io.Discard, "", 0)
	}
	return w
}

// ReadTilt returns the latest sample, or level if it is older than the stale window.
func (w *Websocket) ReadTilt() (float64, float64) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.received.IsZero() || w.now().Sub(w.received) > w.staleAfter {
		return 0, 0
	}
	return w.tilt[0], w.tilt[1]
}

// Clients returns the number of connected controllers.
func (w *Websocket) Clients() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.conns)
}

// CloseAll drops every connected controller. Hijacked connections outlive
// http.Server.Shutdown, so the server calls this when it stops.
func (w *Websocket) CloseAll() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for conn := range w.conns {
		_ = conn.Close()
	}
}

func (w *Websocket) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", w.serveWS)
	return mux
}

// ListenAndServe serves controllers on addr until ctx is done.
func (w *Websocket) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: w.Handler()}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), writeWait)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		w.CloseAll()
	}()

	w.logger.Printf("[INFO] listening on %s (ws endpoint: /ws)", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (w *Websocket) serveWS(rw http.ResponseWriter, r *http.Request) {
	conn, err := w.upgrader.Upgrade(rw, r, nil)
	if err != nil {
		w.logger.Printf("[ERROR] upgrade: %v", err)
		return
	}
	defer conn.Close()

	id := uuid.New().String()
	w.track(conn)
	defer w.untrack(conn)
	w.logger.Printf("[INFO] controller %s connected from %s", id, r.RemoteAddr)

	conn.SetReadLimit(readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// All writes after this point go through writes so pings and replies never interleave.
	writes := make(chan []byte, 4)
	done := make(chan struct{})
	defer close(done)
	go w.writeLoop(conn, writes, done)

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				w.logger.Printf("[ERROR] controller %s read: %v", id, err)
			}
			w.logger.Printf("[INFO] controller %s disconnected", id)
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))

		env, err := protocol.DecodeEnvelope(msg)
		if err != nil {
			w.logger.Printf("[ERROR] controller %s sent a bad envelope: %v", id, err)
			continue
		}

		switch env.T {
		case protocol.MsgHello:
			hello, err := protocol.DecodePayload[protocol.Hello](env)
			if err != nil {
				w.logger.Printf("[ERROR] controller %s hello: %v", id, err)
				continue
			}
			w.logger.Printf("[INFO] controller %s says hello (v%d %q)", id, hello.V, hello.Name)
			reply, err := protocol.Encode(protocol.MsgWelcome, protocol.Welcome{ControllerID: id, InputHz: protocol.ClientInputHz})
			if err != nil {
				w.logger.Printf("[ERROR] encode welcome: %v", err)
				continue
			}
			select {
			case writes <- reply:
			default:
			}
		case protocol.MsgInput:
			in, err := protocol.DecodePayload[protocol.Input](env)
			if err != nil {
				w.logger.Printf("[ERROR] controller %s input: %v", id, err)
				continue
			}
			w.store(in)
		default:
			w.logger.Printf("[INFO] controller %s sent unknown message type %q", id, env.T)
		}
	}
}

func (w *Websocket) writeLoop(conn *websocket.Conn, writes <-chan []byte, done <-chan struct{}) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case msg := <-writes:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// store keeps a sample if it is finite, clamping it to full scale.
func (w *Websocket) store(in protocol.Input) {
	if !Finite(in.Ax, in.Ay) {
		return
	}
	tiltX, tiltY := FromScreen(clampUnit(in.Ax)*w.gain, clampUnit(in.Ay)*w.gain)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.tilt = [2]float64{tiltX, tiltY}
	w.received = w.now()
}

func (w *Websocket) track(conn *websocket.Conn) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.conns[conn] = struct{}{}
}

func (w *Websocket) untrack(conn *websocket.Conn) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.conns, conn)
}

func clampUnit(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}
