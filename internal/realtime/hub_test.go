package realtime

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T, consume TokenConsumer) (*Hub, string) {
	t.Helper()

	hub := NewHub(consume)
	go hub.Run()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.ServeWS(w, r)
	}))
	t.Cleanup(server.Close)

	return hub, "ws" + strings.TrimPrefix(server.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) Event {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var event Event
	require.NoError(t, json.Unmarshal(raw, &event))
	return event
}

func TestBroadcastReachesAllClients(t *testing.T) {
	hub, url := startHub(t, nil)

	first := dial(t, url)
	second := dial(t, url)
	time.Sleep(50 * time.Millisecond)

	hub.Broadcast("userLoggedIn", map[string]string{
		"userId":      "user-1",
		"phoneNumber": "+15550001234",
	})

	for _, conn := range []*websocket.Conn{first, second} {
		event := readEvent(t, conn)
		assert.Equal(t, "userLoggedIn", event.Event)

		var data map[string]string
		require.NoError(t, json.Unmarshal(event.Data, &data))
		assert.Equal(t, "+15550001234", data["phoneNumber"])
	}
}

func TestSendNotificationIsBroadcast(t *testing.T) {
	_, url := startHub(t, nil)

	sender := dial(t, url)
	listener := dial(t, url)
	time.Sleep(50 * time.Millisecond)

	payload := []byte(`{"event":"sendNotification","data":{"text":"hello"}}`)
	require.NoError(t, sender.WriteMessage(websocket.TextMessage, payload))

	event := readEvent(t, listener)
	assert.Equal(t, "notification", event.Event)
	assert.Contains(t, string(event.Data), "New notification received")
}

func TestTokenEventRepliesToSenderOnly(t *testing.T) {
	consumed := []string{}
	_, url := startHub(t, func(token string) (bool, string) {
		consumed = append(consumed, token)
		return token == "good-token", "checked"
	})

	sender := dial(t, url)
	other := dial(t, url)
	time.Sleep(50 * time.Millisecond)

	payload := []byte(`{"event":"Token","data":{"token":"good-token"}}`)
	require.NoError(t, sender.WriteMessage(websocket.TextMessage, payload))

	event := readEvent(t, sender)
	assert.Equal(t, "TokenResponse", event.Event)

	var resp TokenResponse
	require.NoError(t, json.Unmarshal(event.Data, &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, []string{"good-token"}, consumed)

	require.NoError(t, other.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err := other.ReadMessage()
	assert.Error(t, err, "non-sending client must not receive the point reply")
}

func TestTokenReplyAfterHubDroppedClient(t *testing.T) {
	hub := NewHub(func(token string) (bool, string) {
		return true, "Token is valid"
	})

	// The state the hub leaves behind when it drops a slow client: send is
	// closed while the read side may still deliver events.
	client := &Client{hub: hub, send: make(chan []byte, 16)}
	client.closeSend()

	assert.NotPanics(t, func() {
		client.handleToken([]byte(`{"token":"cafebabe"}`))
	})
}

func TestCloseSendIsIdempotent(t *testing.T) {
	client := &Client{send: make(chan []byte, 1)}

	assert.NotPanics(t, func() {
		client.closeSend()
		client.closeSend()
	})
}

func TestTrySendAfterDropAndFullBuffer(t *testing.T) {
	dropped := &Client{send: make(chan []byte, 1)}
	dropped.closeSend()
	assert.False(t, dropped.trySend([]byte("x")))

	full := &Client{send: make(chan []byte, 1)}
	require.True(t, full.trySend([]byte("first")))
	assert.False(t, full.trySend([]byte("second")))
}

func TestTokenEventInvalidToken(t *testing.T) {
	_, url := startHub(t, func(token string) (bool, string) {
		return false, "Invalid token"
	})

	sender := dial(t, url)
	time.Sleep(50 * time.Millisecond)

	payload := []byte(`{"event":"Token","data":{"token":"missing"}}`)
	require.NoError(t, sender.WriteMessage(websocket.TextMessage, payload))

	event := readEvent(t, sender)
	var resp TokenResponse
	require.NoError(t, json.Unmarshal(event.Data, &resp))
	assert.False(t, resp.Success)
}
