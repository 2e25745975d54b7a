package httpserver

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"cubechess/internal/cubechess"
	"cubechess/internal/server/game"
)

const maxJSONBodyBytes int64 = 1 << 20

// Handler 实现 http.Handler，用于 /api/* 路由
type Handler struct {
	games *game.Manager
}

func NewHandler(games *game.Manager) *Handler {
	return &Handler{games: games}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)

	switch r.URL.Path {
	case "/api/new_game":
		h.handleNewGame(w, r)
	case "/api/state":
		h.handleState(w, r)
	case "/api/click":
		h.handleClick(w, r)
	case "/api/promote":
		h.handlePromote(w, r)
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

func (h *Handler) handleNewGame(w http.ResponseWriter, r *http.Request) {
	snap := h.games.NewGame()
	log.Printf("new game %s", snap.ID)
	writeJSON(w, stateResponse(snap, cubechess.Effects{Winner: cubechess.NoSide}))
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	var req StateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	snap, err := h.games.Get(req.GameID)
	if err != nil {
		writeGameError(w, err)
		return
	}
	writeJSON(w, stateResponse(snap, cubechess.Effects{Winner: cubechess.NoSide}))
}

func (h *Handler) handleClick(w http.ResponseWriter, r *http.Request) {
	var req ClickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	snap, eff, err := h.games.Click(req.GameID, req.At.coord())
	if err != nil {
		writeGameError(w, err)
		return
	}
	if eff.Winner != cubechess.NoSide {
		log.Printf("game %s: %s", snap.ID, snap.Session.StatusText())
	}
	writeJSON(w, stateResponse(snap, eff))
}

func (h *Handler) handlePromote(w http.ResponseWriter, r *http.Request) {
	var req PromoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	role, ok := parseRole(req.Role)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown role")
		return
	}
	snap, eff, err := h.games.Promote(req.GameID, role)
	if err != nil {
		writeGameError(w, err)
		return
	}
	if eff.Winner != cubechess.NoSide {
		log.Printf("game %s: %s", snap.ID, snap.Session.StatusText())
	}
	writeJSON(w, stateResponse(snap, eff))
}

func writeGameError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrGameNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, game.ErrGameOver),
		errors.Is(err, game.ErrPromotionPending),
		errors.Is(err, game.ErrNoPromotionPending):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, cubechess.ErrOutOfBounds),
		errors.Is(err, cubechess.ErrIllegalMove),
		errors.Is(err, cubechess.ErrInvalidPromotionRole):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("api error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("writeJSON error:", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": msg}); err != nil {
		log.Println("writeError error:", err)
	}
}
