// Package relay bridges a browser websocket to a Gemini Live API session.
// Microphone audio flows from the client to the model, synthesized audio and
// transcriptions flow back, and tool calls from the model are executed locally
// through the tools dispatcher.
package relay

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"github.com/kkrishnan90/mmt-live-api/internal/tools"
)

const inputSampleRate = 16000

// Options control the Live session opened for each websocket connection.
type Options struct {
	Model      string
	Locale     string
	VoiceName  string
	DisableVAD bool
}

// Handler upgrades /listen requests and runs one Live session per connection.
type Handler struct {
	client     *genai.Client
	dispatcher *tools.Dispatcher
	opts       Options
	log        zerolog.Logger
	upgrader   websocket.Upgrader
}

// NewHandler creates the websocket handler.
func NewHandler(client *genai.Client, dispatcher *tools.Dispatcher, opts Options, log zerolog.Logger) *Handler {
	if opts.VoiceName == "" {
		opts.VoiceName = "Zephyr"
	}
	return &Handler{
		client:     client,
		dispatcher: dispatcher,
		opts:       opts,
		log:        log.With().Str("component", "relay").Logger(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1 << 16,
			WriteBufferSize: 1 << 16,
			// The browser client is served from a different origin.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ServeHTTP handles GET /listen.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("Websocket upgrade failed")
		return
	}
	defer ws.Close()

	h.log.Info().Str("remote_addr", r.RemoteAddr).Msg("Websocket connection accepted")

	ctx := r.Context()
	session, err := h.client.Live.Connect(ctx, h.opts.Model, h.liveConfig(""))
	if err != nil {
		h.log.Error().Err(err).Str("model", h.opts.Model).Msg("Failed to connect to Live API")
		_ = ws.WriteMessage(websocket.TextMessage, []byte("[ERROR_FROM_GEMINI]: failed to start session"))
		return
	}
	defer session.Close()

	h.log.Info().Str("model", h.opts.Model).Msg("Connected to Gemini Live API")

	b := newBridge(ws, session, h.dispatcher, h.log)
	b.run(ctx)
}

// liveConfig builds the per-connection session configuration. A non-empty
// handle resumes a previous session.
func (h *Handler) liveConfig(handle string) *genai.LiveConnectConfig {
	cfg := &genai.LiveConnectConfig{
		ResponseModalities: []genai.Modality{genai.ModalityAudio},
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemInstruction}},
		},
		SpeechConfig: &genai.SpeechConfig{
			LanguageCode: h.opts.Locale,
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{VoiceName: h.opts.VoiceName},
			},
		},
		InputAudioTranscription:  &genai.AudioTranscriptionConfig{},
		OutputAudioTranscription: &genai.AudioTranscriptionConfig{},
		SessionResumption:        &genai.SessionResumptionConfig{Handle: handle},
		ContextWindowCompression: &genai.ContextWindowCompressionConfig{
			SlidingWindow: &genai.SlidingWindow{},
		},
		Tools: h.dispatcher.Declarations(),
	}
	if h.opts.DisableVAD {
		cfg.RealtimeInputConfig = &genai.RealtimeInputConfig{
			AutomaticActivityDetection: &genai.AutomaticActivityDetection{Disabled: true},
		}
	}
	return cfg
}

const systemInstruction = `You are Myra, a warm and professional voice assistant for a retail bank's
customer support line. You help customers with their accounts, transfers,
bill payments, registered billers, and their travel bookings.

Conversation rules:
- Detect the user's language (Hindi or English) and respond only in that
  language. Hinglish is acceptable when the user mixes both.
- Speak all numbers, amounts, booking IDs and account numbers in English
  digits.
- Use the provided tools silently. Never reveal tool names, internal IDs, or
  the fact that you are calling tools. Never ask permission to use a tool.
- Before moving money, always check the transfer with initiateFundTransfer
  and confirm the amount and accounts with the user, then execute it.
- When an account description is vague, resolve it with
  findAccountByNaturalLanguage and, if ambiguous, read the options back to
  the user.
- For travel queries, a booking ID like BK001 should immediately be looked
  up with getBookingDetails before asking anything else.
- If a tool reports an error, apologize briefly and retry once. If it still
  fails, offer to connect the user to a human agent.`
