package http

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
	"trivia-service/internal/app"
	"trivia-service/internal/domain"
)

// WSHandler streams scoring requests over a websocket. Every message is
// answered on its own; nothing is remembered between messages.
type WSHandler struct {
	service  *app.GradingService
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.GradingService) *WSHandler {
	return &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type colorPayload struct {
	Seed string `json:"seed"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades HTTP requests to websockets and answers aggregate, color and grade messages.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxBodyBytes)

	send := make(chan outboundMessage[any], 16)
	writerDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				// keep draining so the reader never blocks on a dead writer
				for range send {
				}
				return
			}
		}
	}()

	for {
		_, reader, err := conn.NextReader()
		if err != nil {
			break
		}
		var inbound inboundMessage
		if err := decodeStrict(reader, &inbound); err != nil {
			// oversized or malformed frames end the stream
			break
		}
		send <- h.handle(r, inbound)
	}

	close(send)
	<-writerDone
}

func (h *WSHandler) handle(r *http.Request, inbound inboundMessage) outboundMessage[any] {
	switch inbound.Type {
	case "aggregate":
		var inputs []domain.SectionScoreInput
		if err := decodePayload(inbound.Payload, &inputs); err != nil {
			return errorMessage("invalid aggregate payload")
		}
		return outboundMessage[any]{Type: "score", Payload: h.service.Aggregate(inputs)}
	case "color":
		var payload colorPayload
		if err := decodePayload(inbound.Payload, &payload); err != nil {
			return errorMessage("invalid color payload")
		}
		return outboundMessage[any]{Type: "color", Payload: colorResponse{Seed: payload.Seed, Color: h.service.Color(payload.Seed)}}
	case "grade":
		var payload gradeRequest
		if err := decodePayload(inbound.Payload, &payload); err != nil {
			return errorMessage("invalid grade payload")
		}
		report, err := h.service.Grade(r.Context(), payload.Seed, payload.Sections)
		if err != nil {
			return errorMessage(err.Error())
		}
		return outboundMessage[any]{Type: "report", Payload: report}
	default:
		return errorMessage("unsupported message type")
	}
}

func decodePayload(raw json.RawMessage, v any) error {
	return decodeStrict(bytes.NewReader(raw), v)
}

func errorMessage(msg string) outboundMessage[any] {
	return outboundMessage[any]{Type: "error", Payload: errorPayload{Message: msg}}
}
