package socket

import (
	"log"

	socketio "github.com/googollee/go-socket.io"
)

// NewSocketServer initializes the Socket.IO server. Clients join a room
// per deck id and receive `deckState` snapshot broadcasts on every deck
// transition.
func NewSocketServer() *socketio.Server {
	server := socketio.NewServer(nil)

	server.OnConnect("/", func(c socketio.Conn) error {
		log.Println("✅ Socket connected:", c.ID())
		return nil
	})

	server.OnEvent("/", "join", func(c socketio.Conn, deckID string) {
		if deckID == "" {
			log.Println("❌ Invalid deckId in join request")
			return
		}
		log.Printf("👥 Client %s joined deck %s\n", c.ID(), deckID)
		c.Join(deckID)
	})

	server.OnEvent("/", "leave", func(c socketio.Conn, deckID string) {
		c.Leave(deckID)
	})

	server.OnError("/", func(c socketio.Conn, err error) {
		log.Println("❌ Socket error:", err)
	})

	server.OnDisconnect("/", func(c socketio.Conn, reason string) {
		log.Println("❌ Socket disconnected:", reason)
	})

	return server
}
