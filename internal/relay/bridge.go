package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/kkrishnan90/mmt-live-api/internal/tools"
)

// readyTimeout is how long model audio is buffered while waiting for the
// client's CLIENT_AUDIO_READY signal before it is flushed anyway.
const readyTimeout = 3 * time.Second

// maxBufferedChunks caps the pre-ready audio buffer, roughly ten seconds.
const maxBufferedChunks = 200

// transcriptPayload is the JSON frame sent to the client for live
// transcription updates.
type transcriptPayload struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Sender  string `json:"sender"`
	Type    string `json:"type"`
	IsFinal bool   `json:"is_final"`
}

// bridge pumps messages between one websocket client and one Live session.
type bridge struct {
	ws         *websocket.Conn
	session    *genai.Session
	dispatcher *tools.Dispatcher
	log        zerolog.Logger

	writeMu sync.Mutex

	ready       bool
	audioBuffer [][]byte
	connectedAt time.Time

	sessionHandle string

	userUtteranceID  string
	userText         string
	modelUtteranceID string
	modelText        string
}

func newBridge(ws *websocket.Conn, session *genai.Session, dispatcher *tools.Dispatcher, log zerolog.Logger) *bridge {
	return &bridge{
		ws:          ws,
		session:     session,
		dispatcher:  dispatcher,
		log:         log,
		connectedAt: time.Now(),
	}
}

// run blocks until either side of the bridge closes.
func (b *bridge) run(ctx context.Context) {
	done := make(chan struct{}, 2)

	go func() {
		b.pumpClient(ctx)
		done <- struct{}{}
	}()
	go func() {
		b.pumpModel(ctx)
		done <- struct{}{}
	}()

	select {
	case <-done:
	case <-ctx.Done():
	}
	// Closing both ends unblocks whichever pump is still running.
	_ = b.ws.Close()
	_ = b.session.Close()
}

// pumpClient forwards browser input to the Live session. Text frames are
// control signals or typed prompts, binary frames are raw PCM microphone
// audio.
func (b *bridge) pumpClient(ctx context.Context) {
	for {
		messageType, data, err := b.ws.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				b.log.Info().Msg("Client closed the connection")
			} else {
				b.log.Warn().Err(err).Msg("Reading from client websocket")
			}
			return
		}

		switch messageType {
		case websocket.TextMessage:
			text := string(data)
			if text == "CLIENT_AUDIO_READY" {
				b.log.Info().Msg("Client audio ready")
				b.markReady()
				continue
			}
			if text == "SEND_TEST_AUDIO_PLEASE" {
				text = "Hello Gemini, please say 'testing one two three'."
			}
			err = b.session.SendClientContent(genai.LiveClientContentInput{
				Turns: []*genai.Content{
					{Role: "user", Parts: []*genai.Part{{Text: text}}},
				},
				TurnComplete: genai.Ptr(true),
			})
			if err != nil {
				b.log.Error().Err(err).Msg("Sending text prompt to Live session")
				return
			}

		case websocket.BinaryMessage:
			if len(data) == 0 {
				continue
			}
			err = b.session.SendRealtimeInput(genai.LiveRealtimeInput{
				Media: &genai.Blob{
					MIMEType: fmt.Sprintf("audio/pcm;rate=%d", inputSampleRate),
					Data:     data,
				},
			})
			if err != nil {
				b.log.Error().Err(err).Msg("Sending audio to Live session")
				return
			}
		}
	}
}

// pumpModel forwards Live session output to the browser and services tool
// calls in between.
func (b *bridge) pumpModel(ctx context.Context) {
	for {
		msg, err := b.session.Receive()
		if err != nil {
			b.log.Info().Err(err).Msg("Live session receive ended")
			return
		}

		if update := msg.SessionResumptionUpdate; update != nil {
			if update.Resumable && update.NewHandle != "" {
				b.sessionHandle = update.NewHandle
			}
		}

		if msg.GoAway != nil {
			b.log.Warn().Str("session_handle", b.sessionHandle).Msg("Live session sent GoAway")
		}

		if sc := msg.ServerContent; sc != nil {
			if !b.handleServerContent(sc) {
				return
			}
		}

		if tc := msg.ToolCall; tc != nil {
			if !b.handleToolCall(ctx, tc) {
				return
			}
		}
	}
}

func (b *bridge) handleServerContent(sc *genai.LiveServerContent) bool {
	if sc.ModelTurn != nil {
		for _, part := range sc.ModelTurn.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				if err := b.sendAudio(part.InlineData.Data); err != nil {
					b.log.Error().Err(err).Msg("Sending audio to client")
					return false
				}
			}
		}
	}

	if sc.Interrupted {
		b.log.Info().Msg("Model playback interrupted by user speech")
		if err := b.sendJSON(map[string]string{"type": "interrupt_playback"}); err != nil {
			return false
		}
	}

	if t := sc.InputTranscription; t != nil && t.Text != "" {
		if b.userUtteranceID == "" {
			b.userUtteranceID = uuid.NewString()
			b.userText = ""
		}
		b.userText += t.Text
		if err := b.sendTranscript(b.userUtteranceID, b.userText, "user", false); err != nil {
			return false
		}
	}

	if t := sc.OutputTranscription; t != nil && t.Text != "" {
		if b.modelUtteranceID == "" {
			b.modelUtteranceID = uuid.NewString()
			b.modelText = ""
		}
		b.modelText += t.Text
		if err := b.sendTranscript(b.modelUtteranceID, b.modelText, "model", false); err != nil {
			return false
		}
	}

	if sc.GenerationComplete {
		if b.modelUtteranceID != "" && b.modelText != "" {
			if err := b.sendTranscript(b.modelUtteranceID, b.modelText, "model", true); err != nil {
				return false
			}
		}
		b.modelUtteranceID = ""
		b.modelText = ""
	}

	if sc.TurnComplete {
		if b.userUtteranceID != "" && b.userText != "" {
			if err := b.sendTranscript(b.userUtteranceID, b.userText, "user", true); err != nil {
				return false
			}
			b.log.Info().Str("text", b.userText).Msg("User utterance complete")
		}
		b.userUtteranceID = ""
		b.userText = ""
		b.modelUtteranceID = ""
		b.modelText = ""
	}

	return true
}

func (b *bridge) handleToolCall(ctx context.Context, tc *genai.LiveServerToolCall) bool {
	var responses []*genai.FunctionResponse
	for _, fc := range tc.FunctionCalls {
		responses = append(responses, b.dispatcher.Dispatch(ctx, fc))
	}
	if len(responses) == 0 {
		return true
	}

	err := b.session.SendToolResponse(genai.LiveToolResponseInput{FunctionResponses: responses})
	if err != nil {
		b.log.Error().Err(err).Msg("Sending tool responses to Live session")
		return false
	}
	b.log.Info().Int("count", len(responses)).Msg("Sent tool responses")
	return true
}

// sendAudio writes one synthesized audio chunk to the client, buffering until
// the client signals readiness or the ready timeout passes.
func (b *bridge) sendAudio(chunk []byte) error {
	b.writeMu.Lock()
	defer b.writeMu.Unlock()

	if !b.ready && time.Since(b.connectedAt) > readyTimeout {
		b.log.Info().Msg("Client readiness timeout, flushing buffered audio")
		b.ready = true
		if err := b.flushLocked(); err != nil {
			return err
		}
	}

	if !b.ready {
		if len(b.audioBuffer) >= maxBufferedChunks {
			b.audioBuffer = b.audioBuffer[1:]
		}
		b.audioBuffer = append(b.audioBuffer, chunk)
		return nil
	}

	return b.ws.WriteMessage(websocket.BinaryMessage, chunk)
}

func (b *bridge) markReady() {
	b.writeMu.Lock()
	defer b.writeMu.Unlock()
	b.ready = true
	if err := b.flushLocked(); err != nil {
		b.log.Warn().Err(err).Msg("Flushing buffered audio")
	}
}

func (b *bridge) flushLocked() error {
	for _, chunk := range b.audioBuffer {
		if err := b.ws.WriteMessage(websocket.BinaryMessage, chunk); err != nil {
			return err
		}
	}
	b.audioBuffer = nil
	return nil
}

func (b *bridge) sendTranscript(id, text, sender string, isFinal bool) error {
	kind := "user_transcription_update"
	if sender == "model" {
		kind = "model_response_update"
	}
	return b.sendJSON(transcriptPayload{
		ID:      id,
		Text:    text,
		Sender:  sender,
		Type:    kind,
		IsFinal: isFinal,
	})
}

func (b *bridge) sendJSON(v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	b.writeMu.Lock()
	defer b.writeMu.Unlock()
	return b.ws.WriteMessage(websocket.TextMessage, raw)
}
