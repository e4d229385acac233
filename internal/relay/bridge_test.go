package relay

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// wsPair returns a connected server-side and client-side websocket.
func wsPair(t *testing.T) (*websocket.Conn, *websocket.Conn) {
	t.Helper()

	serverConns := make(chan *websocket.Conn, 1)
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		serverConns <- conn
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	server := <-serverConns
	t.Cleanup(func() { server.Close() })
	return server, client
}

func TestSendAudioBuffersUntilReady(t *testing.T) {
	server, client := wsPair(t)
	b := &bridge{ws: server, log: zerolog.Nop(), connectedAt: time.Now()}

	if err := b.sendAudio([]byte("chunk-1")); err != nil {
		t.Fatalf("sendAudio: %v", err)
	}
	if err := b.sendAudio([]byte("chunk-2")); err != nil {
		t.Fatalf("sendAudio: %v", err)
	}
	if len(b.audioBuffer) != 2 {
		t.Fatalf("expected 2 buffered chunks, got %d", len(b.audioBuffer))
	}

	b.markReady()

	for _, want := range []string{"chunk-1", "chunk-2"} {
		client.SetReadDeadline(time.Now().Add(2 * time.Second))
		mt, data, err := client.ReadMessage()
		if err != nil {
			t.Fatalf("reading flushed chunk: %v", err)
		}
		if mt != websocket.BinaryMessage {
			t.Errorf("expected binary frame, got %d", mt)
		}
		if string(data) != want {
			t.Errorf("expected %q, got %q", want, data)
		}
	}

	// After readiness, chunks pass straight through.
	if err := b.sendAudio([]byte("chunk-3")); err != nil {
		t.Fatalf("sendAudio after ready: %v", err)
	}
	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := client.ReadMessage()
	if err != nil {
		t.Fatalf("reading direct chunk: %v", err)
	}
	if string(data) != "chunk-3" {
		t.Errorf("expected chunk-3, got %q", data)
	}
}

func TestSendAudioReadyTimeout(t *testing.T) {
	server, client := wsPair(t)
	b := &bridge{ws: server, log: zerolog.Nop(), connectedAt: time.Now().Add(-2 * readyTimeout)}
	b.audioBuffer = [][]byte{[]byte("buffered")}

	if err := b.sendAudio([]byte("fresh")); err != nil {
		t.Fatalf("sendAudio: %v", err)
	}
	if !b.ready {
		t.Error("expected bridge to mark itself ready after timeout")
	}

	for _, want := range []string{"buffered", "fresh"} {
		client.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, data, err := client.ReadMessage()
		if err != nil {
			t.Fatalf("reading chunk: %v", err)
		}
		if string(data) != want {
			t.Errorf("expected %q, got %q", want, data)
		}
	}
}

func TestSendAudioBufferCap(t *testing.T) {
	server, _ := wsPair(t)
	b := &bridge{ws: server, log: zerolog.Nop(), connectedAt: time.Now()}

	for i := 0; i < maxBufferedChunks+5; i++ {
		if err := b.sendAudio([]byte{byte(i)}); err != nil {
			t.Fatalf("sendAudio: %v", err)
		}
	}
	if len(b.audioBuffer) != maxBufferedChunks {
		t.Errorf("expected buffer capped at %d, got %d", maxBufferedChunks, len(b.audioBuffer))
	}
	// Oldest chunks are dropped first.
	if b.audioBuffer[0][0] != 5 {
		t.Errorf("expected oldest surviving chunk 5, got %d", b.audioBuffer[0][0])
	}
}

func TestSendTranscript(t *testing.T) {
	server, client := wsPair(t)
	b := &bridge{ws: server, log: zerolog.Nop(), connectedAt: time.Now()}

	if err := b.sendTranscript("utt-1", "hello there", "model", true); err != nil {
		t.Fatalf("sendTranscript: %v", err)
	}

	client.SetReadDeadline(time.Now().Add(2 * time.Second))
	mt, data, err := client.ReadMessage()
	if err != nil {
		t.Fatalf("reading transcript frame: %v", err)
	}
	if mt != websocket.TextMessage {
		t.Errorf("expected text frame, got %d", mt)
	}

	var payload transcriptPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload.Type != "model_response_update" {
		t.Errorf("expected model_response_update, got %s", payload.Type)
	}
	if !payload.IsFinal || payload.Text != "hello there" || payload.ID != "utt-1" {
		t.Errorf("unexpected payload: %+v", payload)
	}
}
