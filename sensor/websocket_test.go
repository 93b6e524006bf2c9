package sensor

import (
	"math"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mercury-maze/protocol"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func dial(t *testing.T, w *Websocket) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(w.Handler())
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, typ string, payload any) {
	t.Helper()
	b, err := protocol.Encode(typ, payload)
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, b))
}

func TestWebsocketHelloWelcome(t *testing.T) {
	w := NewWebsocket()
	conn := dial(t, w)

	send(t, conn, protocol.MsgHello, protocol.Hello{V: protocol.Version, Name: "phone"})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	env, err := protocol.DecodeEnvelope(msg)
	require.NoError(t, err)
	assert.Equal(t, protocol.MsgWelcome, env.T)

	welcome, err := protocol.DecodePayload[protocol.Welcome](env)
	require.NoError(t, err)
	assert.NotEmpty(t, welcome.ControllerID)
	assert.Equal(t, protocol.ClientInputHz, welcome.InputHz)
	assert.Equal(t, 1, w.Clients())
}

func TestWebsocketInput(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	w := NewWebsocket(WithGain(1000), WithStaleAfter(time.Second))
	w.now = clock.Now
	conn := dial(t, w)

	x, y := w.ReadTilt()
	assert.Zero(t, x)
	assert.Zero(t, y)

	// Screen right half scale, screen down full scale past the limit.
	send(t, conn, protocol.MsgInput, protocol.Input{Ax: 0.5, Ay: 3})

	assert.Eventually(t, func() bool {
		x, y := w.ReadTilt()
		return x == -1000 && y == 500
	}, 2*time.Second, 5*time.Millisecond)

	clock.Advance(2 * time.Second)
	x, y = w.ReadTilt()
	assert.Zero(t, x, "stale samples read as level")
	assert.Zero(t, y)
}

func TestWebsocketIgnoresGarbage(t *testing.T) {
	w := NewWebsocket(WithGain(1000))
	conn := dial(t, w)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	send(t, conn, "shake", protocol.Input{Ax: 1})
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"t":"input","p":{"ax":"left"}}`)))
	send(t, conn, protocol.MsgInput, protocol.Input{Ax: -0.25})

	assert.Eventually(t, func() bool {
		_, y := w.ReadTilt()
		return y == -250
	}, 2*time.Second, 5*time.Millisecond)
}

func TestWebsocketStoreDropsNonFinite(t *testing.T) {
	w := NewWebsocket(WithGain(1000))
	w.store(protocol.Input{Ax: 0.1, Ay: 0})
	w.store(protocol.Input{Ax: math.Inf(1), Ay: 0})

	_, y := w.ReadTilt()
	assert.InDelta(t, 100, y, 1e-9)
}

func TestWebsocketCloseAllDropsControllers(t *testing.T) {
	w := NewWebsocket()
	conn := dial(t, w)

	send(t, conn, protocol.MsgHello, protocol.Hello{V: protocol.Version, Name: "phone"})
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	require.NoError(t, err)
	require.Equal(t, 1, w.Clients())

	w.CloseAll()

	_, _, err = conn.ReadMessage()
	assert.Error(t, err)
	assert.Eventually(t, func() bool { return w.Clients() == 0 }, 2*time.Second, 10*time.Millisecond)
}
