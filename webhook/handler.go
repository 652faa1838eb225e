package webhook

import (
	"encoding/json"
	"net/http"

	"github.com/twilio/twilio-go/twiml"

	"realestate-bot/bot"
	"realestate-bot/metrics"
	"realestate-bot/models"
	"realestate-bot/utils"
)

// bodyField is the form field the messaging provider puts the message text in.
const bodyField = "Body"

// Handler serves the messaging webhook plus health and stats endpoints.
type Handler struct {
	responder *bot.Responder
	report    *models.DatasetReport
	metrics   *metrics.Metrics
	logger    *utils.Logger
}

// New creates a Handler. m may be nil when metrics are disabled.
func New(responder *bot.Responder, report *models.DatasetReport, m *metrics.Metrics, logger *utils.Logger) *Handler {
	return &Handler{
		responder: responder,
		report:    report,
		metrics:   m,
		logger:    logger,
	}
}

// Routes wires every endpoint onto a mux and wraps it in middleware.
func (h *Handler) Routes(webhookPath string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST "+webhookPath, h.Message)
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /stats", h.Stats)
	if h.metrics != nil {
		mux.Handle("GET /metrics", h.metrics.Handler())
	}

	var chain http.Handler = mux
	chain = Metrics(h.metrics, webhookPath, "/health", "/stats", "/metrics")(chain)
	chain = RequestID(chain)
	return chain
}

// Message answers one inbound message with a TwiML reply document.
func (h *Handler) Message(w http.ResponseWriter, r *http.Request) {
	reqID := GetRequestID(r.Context())

	if err := r.ParseForm(); err != nil {
		h.logger.Warn("[webhook] %s malformed form body: %v", reqID, err)
		http.Error(w, "malformed form body", http.StatusBadRequest)
		return
	}

	incoming := r.FormValue(bodyField)
	reply := h.responder.Reply(incoming)
	h.record(reply)

	h.logger.Info("[webhook] %s %q → %s (%d matches, predicates %v)",
		reqID, incoming, reply.Outcome, reply.Matches, reply.Applied)

	doc, err := twiml.Messages([]twiml.Element{&twiml.MessagingMessage{Body: reply.Text}})
	if err != nil {
		h.logger.Error("[webhook] %s build reply: %v", reqID, err)
		http.Error(w, "failed to build reply", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(doc))
}

func (h *Handler) record(reply bot.Reply) {
	if h.metrics == nil {
		return
	}
	h.metrics.MessagesTotal.WithLabelValues(string(reply.Outcome)).Inc()
	if reply.Outcome == bot.OutcomeGreeting {
		return
	}
	h.metrics.ResultsCount.Observe(float64(reply.Matches))
	for _, name := range reply.Applied {
		h.metrics.PredicatesApplied.WithLabelValues(name).Inc()
	}
}

// Health reports liveness and the number of loaded listings.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "up",
		"listings": h.responder.Table().Len(),
	})
}

// Stats returns the dataset report computed at startup.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.report)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("[webhook] encode response: %v", err)
	}
}
