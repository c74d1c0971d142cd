package activity

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func dialHub(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()
	server := httptest.NewServer(hub)
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Expected WebSocket dial to succeed but got: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	// Wait for the hub to register the client
	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("Expected the client to register")
		}
		time.Sleep(time.Millisecond)
	}
	return conn
}

func TestHub_BroadcastReachesClient(t *testing.T) {
	hub := NewHub()
	defer hub.Close()
	conn := dialHub(t, hub)

	hub.Broadcast(Entry{ID: "e1", Module: "campaigns", Kind: "create", Message: "hello"})

	var got Entry
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("Expected to receive the entry but got: %v", err)
	}
	if got.ID != "e1" || got.Message != "hello" {
		t.Errorf("Unexpected entry: %+v", got)
	}
}

func TestHub_ConcurrentBroadcasts(t *testing.T) {
	hub := NewHub()
	defer hub.Close()
	conn := dialHub(t, hub)

	const writers = 4
	const perWriter = 250
	done := make(chan struct{})

	// Every received frame must decode cleanly; interleaved writes from
	// overlapping mutations would corrupt frames or panic.
	go func() {
		defer close(done)
		for {
			var got Entry
			conn.SetReadDeadline(time.Now().Add(5 * time.Second))
			if err := conn.ReadJSON(&got); err != nil {
				return
			}
			if got.Module != "campaigns" {
				t.Errorf("Received a corrupted entry: %+v", got)
				return
			}
		}
	}()

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				hub.Broadcast(Entry{
					ID:      fmt.Sprintf("%d-%d", w, i),
					Module:  "campaigns",
					Kind:    "create",
					Message: "update",
				})
			}
		}(w)
	}
	wg.Wait()

	hub.Close()
	<-done
}
