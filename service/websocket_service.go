package service

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/docmindhq/docmind-be/types"
)

// WebSocketService streams completion fragments to connected clients.
type WebSocketService struct {
	ai       CompletionService
	upgrader websocket.Upgrader
}

func NewWebSocketService(ai CompletionService) *WebSocketService {
	return &WebSocketService{
		ai: ai,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins (adjust for production)
			},
		},
	}
}

// HandleChat upgrades the connection and answers each chat request with a
// stream of fragment messages followed by a done marker.
func (s *WebSocketService) HandleChat(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("Upgrade error:", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(512 * 1024)
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		var req types.WebsocketRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))

		switch req.Type {
		case types.TypeWebsocketPing:
			s.write(conn, types.WebSocketResponse{Type: types.TypeWebsocketPong})
		case types.TypeWebsocketChat:
			err := s.ai.GenerateStream(r.Context(), req.Payload, func(chunk string) {
				if chunk == "" {
					return
				}
				s.write(conn, types.WebSocketResponse{
					Type:    types.TypeWebsocketChat,
					Payload: types.WebSocketChatResponse{Message: chunk},
				})
			})
			if err != nil {
				s.write(conn, types.WebSocketResponse{
					Type:    types.TypeWebsocketError,
					Payload: err.Error(),
				})
				continue
			}
			s.write(conn, types.WebSocketResponse{Type: types.TypeWebsocketDone})
		default:
			s.write(conn, types.WebSocketResponse{
				Type:    types.TypeWebsocketError,
				Payload: "unknown message type: " + req.Type,
			})
		}
	}
}

func (s *WebSocketService) write(conn *websocket.Conn, resp types.WebSocketResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		log.Printf("WebSocket write error: %v", err)
	}
}
