package live

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // dashboards connect from the shop-floor LAN
	},
}

// WSHandler subscribes the client to a push-only topic. Incoming frames are
// read and discarded to keep the connection alive; there is no backfill, a
// client that joins between events waits for the next one.
func WSHandler(hub *Hub, topic string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}

		hub.Join(topic, ws)

		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				break
			}
		}

		hub.Leave(topic, ws)
	}
}

type controlFrame struct {
	Start bool `json:"start"`
	Stop  bool `json:"stop"`
}

// StartStopHandler relays operator start/stop frames. Any subscriber may
// publish; a frame with start or stop set is rebroadcast verbatim to every
// subscriber of the topic, the server keeps no running/stopped state.
func StartStopHandler(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}

		hub.Join(TopicStartStop, ws)

		for {
			_, payload, err := ws.ReadMessage()
			if err != nil {
				break
			}

			var frame controlFrame
			if err := json.Unmarshal(payload, &frame); err != nil {
				continue
			}
			if !frame.Start && !frame.Stop {
				continue
			}

			hub.BroadcastRaw(TopicStartStop, payload)
		}

		hub.Leave(TopicStartStop, ws)
	}
}
