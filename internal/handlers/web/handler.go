package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog"
	"github.com/skip2/go-qrcode"

	"github.com/KirkDiggler/diceroom/internal/models"
	"github.com/KirkDiggler/diceroom/internal/roomcode"
	roomService "github.com/KirkDiggler/diceroom/internal/services/room"
)

const qrSize = 256

// Config holds configuration for the web handler
type Config struct {
	// RoomService creates live room sessions
	RoomService roomService.Service

	// CodeGenerator produces room codes
	CodeGenerator *roomcode.Generator

	// BaseURL is the externally visible URL, used for QR join links
	BaseURL string

	// Logger for request logging
	Logger zerolog.Logger
}

// Handler serves the HTTP and WebSocket surface of the dice room
type Handler struct {
	rooms   roomService.Service
	codes   *roomcode.Generator
	baseURL string
	log     zerolog.Logger
}

// New creates a new web handler
func New(cfg *Config) (*Handler, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RoomService == nil {
		return nil, errors.New("room service cannot be nil")
	}

	if cfg.CodeGenerator == nil {
		return nil, errors.New("code generator cannot be nil")
	}

	return &Handler{
		rooms:   cfg.RoomService,
		codes:   cfg.CodeGenerator,
		baseURL: cfg.BaseURL,
		log:     cfg.Logger,
	}, nil
}

// Router builds the route table
func (h *Handler) Router() *httprouter.Router {
	router := httprouter.New()

	router.POST("/api/rooms", h.createRoom)
	router.GET("/api/rooms/:code/qr", h.roomQR)
	router.GET("/ws/rooms/:code", h.serveRoom)

	return router
}

// createRoom hands out a fresh room code. The room record itself is
// created lazily on first join.
func (h *Handler) createRoom(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	code := h.codes.Generate()

	h.log.Info().Str("room_id", code).Msg("room code issued")

	writeJSON(w, http.StatusCreated, map[string]string{
		"room_id": code,
	})
}

// roomQR renders a PNG QR code for the room's join URL
func (h *Handler) roomQR(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	code := p.ByName("code")
	if !models.ValidRoomCode(code) {
		writeError(w, http.StatusBadRequest, "invalid room code")
		return
	}

	url := fmt.Sprintf("%s/room/%s", h.baseURL, code)

	png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
	if err != nil {
		h.log.Error().Err(err).Str("room_id", code).Msg("qr encoding failed")
		writeError(w, http.StatusInternalServerError, "failed to generate qr code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
