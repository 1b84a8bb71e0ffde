package tracking

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"ride-request-service/internal/events"
)

func TestHubBroadcastsToSubscribers(t *testing.T) {
	hub := NewHub()
	srv := httptest.NewServer(hub.Routes())
	defer srv.Close()

	conn := dialFeed(t, hub, srv)
	defer conn.Close()

	ev := events.RideRequestedEvent{RideID: "r1", CustomerID: "c1", Status: "requested"}
	if err := hub.Notify(context.Background(), ev); err != nil {
		t.Fatal(err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got events.RideRequestedEvent
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatal(err)
	}
	if got != ev {
		t.Fatalf("got %+v, want %+v", got, ev)
	}
}

func dialFeed(t *testing.T, hub *Hub, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ride-requests"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for hub.Subscribers() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("subscriber never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}
	return conn
}

func TestHubDropsClientThatStopsReading(t *testing.T) {
	hub := NewHub()
	hub.writeWait = 200 * time.Millisecond
	srv := httptest.NewServer(hub.Routes())
	defer srv.Close()

	conn := dialFeed(t, hub, srv)
	defer conn.Close()

	// The client never reads, so socket buffers eventually fill.
	ev := events.RideRequestedEvent{RideID: "r1", CustomerID: strings.Repeat("c", 64<<10)}
	giveUp := time.Now().Add(30 * time.Second)
	for hub.Subscribers() > 0 {
		if time.Now().After(giveUp) {
			t.Fatal("stalled client was never dropped")
		}
		start := time.Now()
		if err := hub.Notify(context.Background(), ev); err != nil {
			t.Fatal(err)
		}
		if took := time.Since(start); took > 2*time.Second {
			t.Fatalf("Notify blocked for %v on a stalled client", took)
		}
	}

	start := time.Now()
	if err := hub.Notify(context.Background(), ev); err != nil {
		t.Fatal(err)
	}
	if took := time.Since(start); took > 100*time.Millisecond {
		t.Fatalf("Notify after drop took %v", took)
	}
}

func TestHubNotifyWithoutSubscribers(t *testing.T) {
	if err := NewHub().Notify(context.Background(), events.RideRequestedEvent{RideID: "r1"}); err != nil {
		t.Fatal(err)
	}
}
