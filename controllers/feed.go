// controllers/feed.go
package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"salonbook-backend/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser clients connect cross-origin; auth rides on the token
	CheckOrigin: func(r *http.Request) bool { return true },
}

// AppointmentFeedSocket streams full appointment snapshots to the
// authenticated client over a WebSocket: one message on connect, then one on
// every change to the client's appointments. Closing the socket tears the
// subscription down.
func AppointmentFeedSocket(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	clientID := user.ID.String()

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[FEED] websocket upgrade failed for client %s: %v", clientID, err)
		return
	}
	defer conn.Close()

	// Snapshots are delivered synchronously inside Publish; the channel
	// decouples that from the socket write.
	snapshots := make(chan []services.AppointmentView, 8)
	unsubscribe := appointmentFeed.Subscribe(clientID, func(views []services.AppointmentView) {
		select {
		case snapshots <- views:
		default:
			// Slow consumer; drop the snapshot, the next publish re-sends everything
			log.Printf("[FEED] dropping snapshot for slow client %s", clientID)
		}
	})
	defer unsubscribe()

	// Reader goroutine: we never expect client messages, but reading is what
	// detects the peer closing
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case views := <-snapshots:
			if err := conn.WriteJSON(views); err != nil {
				log.Printf("[FEED] write failed for client %s: %v", clientID, err)
				return
			}
		case <-done:
			return
		}
	}
}
