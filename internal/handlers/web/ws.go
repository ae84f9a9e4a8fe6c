package web

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog"

	"github.com/KirkDiggler/diceroom/internal/models"
	roomService "github.com/KirkDiggler/diceroom/internal/services/room"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second

	maxCommandSize = 4 << 10
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// command is an inbound WebSocket message from the room page
type command struct {
	Action           string `json:"action"`
	Faces            int    `json:"faces,omitempty"`
	Count            int    `json:"count,omitempty"`
	Mode             string `json:"mode,omitempty"`
	StatisticsTarget int    `json:"statistics_target,omitempty"`
	RollID           string `json:"roll_id,omitempty"`
}

// stateFrame pushes the full room projection to the page
type stateFrame struct {
	Type string `json:"type"`
	*roomService.Snapshot
}

// errorFrame reports a failed user action; the projection is unchanged
type errorFrame struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

// serveRoom joins the caller into a room session and bridges it over a
// WebSocket: snapshots out on every change, commands in.
func (h *Handler) serveRoom(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	code := p.ByName("code")
	name := r.URL.Query().Get("name")

	// Without a display name the room is not entered; the page sends
	// the user back to the entry screen.
	if name == "" {
		writeError(w, http.StatusBadRequest, "display name is required")
		return
	}

	if !models.ValidRoomCode(code) {
		writeError(w, http.StatusBadRequest, "invalid room code")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	log := h.log.With().Str("room_id", code).Str("user", name).Logger()

	sess, err := h.rooms.JoinRoom(r.Context(), &roomService.JoinRoomInput{
		RoomID:   code,
		UserName: name,
	})
	if err != nil {
		log.Warn().Err(err).Msg("room join failed")

		// Surface the terminal error status, then drop the connection
		status := models.StatusError
		if sess != nil {
			status = sess.Status()
		}
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		_ = conn.WriteJSON(&stateFrame{Type: "state", Snapshot: &roomService.Snapshot{
			Status: status,
			RoomID: code,
		}})
		_ = conn.Close()
		return
	}

	log.Info().Msg("joined room")

	c := &client{
		ctx:  r.Context(),
		conn: conn,
		sess: sess,
		send: make(chan any, 16),
		log:  log,
	}

	// Initial state before any change lands
	c.send <- &stateFrame{Type: "state", Snapshot: sess.Snapshot()}

	go c.writePump()
	c.readPump()
}

// client bridges one WebSocket connection to one room session
type client struct {
	ctx  context.Context
	conn *websocket.Conn
	sess *roomService.Session
	send chan any
	log  zerolog.Logger
}

func (c *client) readPump() {
	defer func() {
		c.sess.Close()
		_ = c.conn.Close()
		c.log.Info().Msg("left room")
	}()

	c.conn.SetReadLimit(maxCommandSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var cmd command
		if err := json.Unmarshal(data, &cmd); err != nil {
			c.reportError("malformed command")
			continue
		}

		c.dispatch(&cmd)
	}
}

// dispatch runs one user action against the session. Failures are
// reported to this user only; the shared view never changes on error.
func (c *client) dispatch(cmd *command) {
	switch cmd.Action {
	case "roll":
		_, err := c.sess.SubmitRoll(c.ctx, &roomService.SubmitRollInput{
			Faces:            cmd.Faces,
			Count:            cmd.Count,
			Mode:             models.DisplayMode(cmd.Mode),
			StatisticsTarget: cmd.StatisticsTarget,
		})
		if err != nil {
			c.reportError(err.Error())
		}
	case "reroll":
		if _, err := c.sess.RerollAsNew(c.ctx, &roomService.RerollInput{RollID: cmd.RollID}); err != nil {
			c.reportError(err.Error())
		}
	case "reroll_in_place":
		if _, err := c.sess.RerollInPlace(c.ctx, &roomService.RerollInput{RollID: cmd.RollID}); err != nil {
			c.reportError(err.Error())
		}
	case "delete":
		if err := c.sess.DeleteRoll(c.ctx, &roomService.DeleteRollInput{RollID: cmd.RollID}); err != nil {
			c.reportError(err.Error())
		}
	default:
		c.reportError("unknown action")
	}
}

func (c *client) reportError(msg string) {
	select {
	case c.send <- &errorFrame{Type: "error", Error: msg}:
	default:
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(frame); err != nil {
				return
			}
		case <-c.sess.Changed():
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(&stateFrame{Type: "state", Snapshot: c.sess.Snapshot()}); err != nil {
				return
			}
		case <-c.sess.Done():
			return
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
