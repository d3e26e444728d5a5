package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/go-pkgz/routegroup"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/argus-sec/argus-portal/internal/app"
	"github.com/argus-sec/argus-portal/internal/app/api/v0/model"
	"github.com/argus-sec/argus-portal/internal/config"
	"github.com/argus-sec/argus-portal/internal/domain"
)

type WebsocketEventBus interface {
	Subscribe(topic string, fn any) error
	Unsubscribe(topic string, fn any) error
}

// WebsocketMetrics tracks the number of connected frontend clients.
type WebsocketMetrics interface {
	WebsocketClientConnected()
	WebsocketClientDisconnected()
}

type WebsocketEndpoint struct {
	bus     WebsocketEventBus
	metrics WebsocketMetrics

	upgrader websocket.Upgrader
}

func NewWebsocketEndpoint(cfg *config.Config, bus WebsocketEventBus, metrics WebsocketMetrics) *WebsocketEndpoint {
	return &WebsocketEndpoint{
		bus:     bus,
		metrics: metrics,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return strings.HasPrefix(origin, cfg.Web.ExternalUrl)
			},
		},
	}
}

func (e WebsocketEndpoint) GetName() string {
	return "WebsocketEndpoint"
}

func (e WebsocketEndpoint) RegisterRoutes(g *routegroup.Bundle) {
	g.HandleFunc("GET /ws", e.handleWebsocket())
}

// wsMessage represents a message sent over websocket to the frontend
type wsMessage struct {
	Type    string `json:"type"` // the message bus topic the payload came from
	Payload any    `json:"payload"`
}

func (e WebsocketEndpoint) handleWebsocket() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := e.upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		clientId := uuid.New().String()
		slog.Debug("websocket client connected", "client", clientId, "remote", r.RemoteAddr)
		defer slog.Debug("websocket client disconnected", "client", clientId)

		e.metrics.WebsocketClientConnected()
		defer e.metrics.WebsocketClientDisconnected()

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		writeMutex := sync.Mutex{}
		writeJSON := func(msg wsMessage) error {
			writeMutex.Lock()
			defer writeMutex.Unlock()
			return conn.WriteJSON(msg)
		}

		activityHandler := func(entry domain.ActivityEntry) {
			_ = writeJSON(wsMessage{Type: app.TopicActivityLogged, Payload: model.NewActivityEntry(entry)})
		}
		newAuditHandler := func(topic string) func(domain.EventWrapper[domain.Audit]) {
			return func(evt domain.EventWrapper[domain.Audit]) {
				_ = writeJSON(wsMessage{Type: topic, Payload: model.NewAudit(&evt.Event)})
			}
		}
		newReportHandler := func(topic string) func(domain.EventWrapper[domain.Report]) {
			return func(evt domain.EventWrapper[domain.Report]) {
				_ = writeJSON(wsMessage{Type: topic, Payload: model.NewReport(&evt.Event)})
			}
		}

		_ = e.bus.Subscribe(app.TopicActivityLogged, activityHandler)
		defer e.bus.Unsubscribe(app.TopicActivityLogged, activityHandler)

		auditTopics := []string{
			app.TopicAuditCreated, app.TopicAuditUpdated, app.TopicAuditDeleted,
			app.TopicAuditStarted, app.TopicAuditCompleted,
		}
		for _, topic := range auditTopics {
			handler := newAuditHandler(topic)
			_ = e.bus.Subscribe(topic, handler)
			defer e.bus.Unsubscribe(topic, handler)
		}

		reportTopics := []string{app.TopicReportCreated, app.TopicReportGenerated, app.TopicReportDeleted}
		for _, topic := range reportTopics {
			handler := newReportHandler(topic)
			_ = e.bus.Subscribe(topic, handler)
			defer e.bus.Unsubscribe(topic, handler)
		}

		// Keep connection open until client disconnects or context is cancelled
		go func() {
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					cancel()
					return
				}
			}
		}()

		<-ctx.Done()
	}
}
