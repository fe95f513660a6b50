package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/websocket"
)

// dialClients connects n websocket clients to the hub under one game ID and
// returns them. The server side registers each connection before the dial
// call returns to the caller.
func dialClients(t *testing.T, hub *Hub, gameID uint, n int) []*websocket.Conn {
	t.Helper()

	upgrader := websocket.Upgrader{}
	registered := make(chan struct{}, n)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.AddConnection(gameID, conn)
		registered <- struct{}{}
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conns := make([]*websocket.Conn, 0, n)
	for i := 0; i < n; i++ {
		conn, _, err := websocket.DefaultDialer.Dial(url, nil)
		if err != nil {
			t.Fatalf("dial: %v", err)
		}
		conns = append(conns, conn)
		<-registered
	}
	return conns
}

// Concurrent broadcasts to one game must not panic or corrupt the hub, even
// while failing connections are being evicted mid-broadcast.
func TestBroadcastConcurrent(t *testing.T) {
	hub := NewHub()
	conns := dialClients(t, hub, 1, 8)

	// Closed client sockets make the server-side writes fail, driving the
	// eviction path from several goroutines at once.
	for _, conn := range conns {
		conn.Close()
	}

	message := WSMessage{Type: "play_created", Data: strings.Repeat("x", 4096)}
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				hub.Broadcast(1, message)
			}
		}()
	}
	wg.Wait()

	// The hub must still be usable after the churn.
	hub.Broadcast(1, message)
}

func TestRemoveConnectionTwice(t *testing.T) {
	hub := NewHub()
	conns := dialClients(t, hub, 1, 1)

	hub.RemoveConnection(1, conns[0])
	hub.RemoveConnection(1, conns[0])

	hub.mu.RLock()
	defer hub.mu.RUnlock()
	if len(hub.games) != 0 {
		t.Errorf("hub still tracks %d games after removal", len(hub.games))
	}
}
