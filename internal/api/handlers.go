package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/calvinwijaya/solitaire-be/internal/game"
	"github.com/calvinwijaya/solitaire-be/internal/store"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

var (
	errBadRequest = errors.New("bad request")
	errRejected   = errors.New("rejected")
)

// Handlers contains all the API handlers
type Handlers struct {
	store    store.Store
	hub      *Hub
	log      logrus.FieldLogger
	validate bool
}

// NewHandlers creates a new instance of Handlers. With validate set, every action is
// followed by a full invariant check of the table. hub may be nil.
func NewHandlers(s store.Store, hub *Hub, log logrus.FieldLogger, validate bool) *Handlers {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	h := &Handlers{
		store:    s,
		hub:      hub,
		log:      log.WithField("component", "api"),
		validate: validate,
	}
	if hub != nil {
		hub.OnMessage(h.handleSocketMessage)
	}
	return h
}

// RegisterRoutes registers all API routes
func (h *Handlers) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.Health).Methods("GET")
	r.HandleFunc("/api/layout", h.Layout).Methods("GET")

	// Game endpoints
	r.HandleFunc("/api/game/new", h.NewGame).Methods("POST")
	r.HandleFunc("/api/game/list", h.ListGames).Methods("GET")
	r.HandleFunc("/api/game/{id}", h.GetGame).Methods("GET")
	r.HandleFunc("/api/game/{id}", h.DeleteGame).Methods("DELETE")
	r.HandleFunc("/api/game/{id}/newgame", h.Redeal).Methods("POST")
	r.HandleFunc("/api/game/{id}/draw", h.Draw).Methods("POST")
	r.HandleFunc("/api/game/{id}/foundation", h.MoveToFoundation).Methods("POST")

	// Drag endpoints
	r.HandleFunc("/api/game/{id}/drag/start", h.StartDrag).Methods("POST")
	r.HandleFunc("/api/game/{id}/drag/move", h.MoveDrag).Methods("POST")
	r.HandleFunc("/api/game/{id}/drag/drop", h.Drop).Methods("POST")
	r.HandleFunc("/api/game/{id}/drag/cancel", h.CancelDrag).Methods("POST")

	// WebSocket endpoint
	if h.hub != nil {
		r.HandleFunc("/ws", h.ServeWS)
	}
}

// response helper function to send JSON responses
func response(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// error response helper function
func errorResponse(w http.ResponseWriter, status int, message string) {
	response(w, status, map[string]string{"error": message})
}

// fail maps an action error to a status code.
func (h *Handlers) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrGameNotFound):
		errorResponse(w, http.StatusNotFound, "Game not found")
	case errors.Is(err, errBadRequest):
		errorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, errRejected):
		errorResponse(w, http.StatusConflict, err.Error())
	default:
		h.log.WithError(err).Error("request failed")
		errorResponse(w, http.StatusInternalServerError, "Internal error")
	}
}

// decode reads an optional JSON body into v. An empty body leaves v untouched.
func decode(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: invalid request body", errBadRequest)
	}
	return nil
}

// pointRequest is a pointer position. With a viewport, X and Y are client coordinates
// and are mapped onto the table first.
type pointRequest struct {
	X        float64    `json:"x"`
	Y        float64    `json:"y"`
	Viewport *game.Rect `json:"viewport,omitempty"`
}

func (p pointRequest) table() (game.Point, error) {
	if p.Viewport == nil {
		return game.Point{X: p.X, Y: p.Y}, nil
	}
	pt, ok := game.ClientToTable(p.X, p.Y, *p.Viewport)
	if !ok {
		return game.Point{}, fmt.Errorf("%w: empty viewport", errBadRequest)
	}
	return pt, nil
}

// cardRequest names a card and, optionally, where it is dragged from.
type cardRequest struct {
	CardID string          `json:"cardId"`
	Source json.RawMessage `json:"source,omitempty"`
}

// resolve finds the card on the table. A missing source is taken from the card's
// current position.
func (c cardRequest) resolve(g *game.Game) (game.Card, game.DragSource, error) {
	if c.CardID == "" {
		return game.Card{}, nil, fmt.Errorf("%w: cardId is required", errBadRequest)
	}
	var source game.DragSource
	if len(c.Source) > 0 && string(c.Source) != "null" {
		src, err := game.ParseDragSource(c.Source)
		if err != nil {
			return game.Card{}, nil, fmt.Errorf("%w: %v", errBadRequest, err)
		}
		source = src
	}

	card, found, ok := g.FindCard(c.CardID)
	if !ok {
		return game.Card{ID: c.CardID}, source, nil
	}
	if source == nil {
		source = found
	}
	return card, source, nil
}

// respond shapes an action's answer around the game view. A nil respond answers with
// the view alone.
type respond func(v GameView) interface{}

// act runs fn against a stored game, then answers with the game view. The view is
// broadcast to the game's watchers before the lock is released so updates reach them
// in order.
func (h *Handlers) act(w http.ResponseWriter, r *http.Request, action string, fn func(g *game.Game) (respond, error)) {
	id := mux.Vars(r)["id"]
	var out interface{}

	err := h.store.UpdateGame(id, func(g *game.Game) error {
		shape, err := fn(g)
		if err != nil {
			return err
		}
		if err := h.check(g, action); err != nil {
			return err
		}
		view := newGameView(g)
		if h.hub != nil {
			h.hub.BroadcastGameUpdate(view)
		}
		out = view
		if shape != nil {
			out = shape(view)
		}
		return nil
	})
	if err != nil {
		h.fail(w, err)
		return
	}
	response(w, http.StatusOK, out)
}

func (h *Handlers) check(g *game.Game, action string) error {
	if !h.validate {
		return nil
	}
	if err := game.Validate(g.Snapshot()); err != nil {
		h.log.WithFields(logrus.Fields{"game_id": g.ID, "action": action}).WithError(err).Error("table invariant broken")
		return fmt.Errorf("%s: %w", action, err)
	}
	return nil
}

// Health reports that the server is up.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	response(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Layout returns the table geometry.
func (h *Handlers) Layout(w http.ResponseWriter, r *http.Request) {
	response(w, http.StatusOK, newLayoutView())
}

// NewGame deals a new game. The body may carry a seed for a reproducible deal.
func (h *Handlers) NewGame(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Seed int64 `json:"seed"`
	}
	if err := decode(r, &req); err != nil {
		h.fail(w, err)
		return
	}

	g := game.New(game.WithSeed(req.Seed), game.WithLogger(h.log))
	if err := h.store.SaveGame(g); err != nil {
		h.fail(w, fmt.Errorf("save game: %w", err))
		return
	}
	h.log.WithFields(logrus.Fields{"game_id": g.ID, "seed": g.Seed}).Info("game created")

	var view GameView
	if err := h.store.ViewGame(g.ID, func(g *game.Game) { view = newGameView(g) }); err != nil {
		h.fail(w, err)
		return
	}
	response(w, http.StatusCreated, view)
}

// GetGame returns the current view of a game.
func (h *Handlers) GetGame(w http.ResponseWriter, r *http.Request) {
	var view GameView
	err := h.store.ViewGame(mux.Vars(r)["id"], func(g *game.Game) { view = newGameView(g) })
	if err != nil {
		h.fail(w, err)
		return
	}
	response(w, http.StatusOK, view)
}

// DeleteGame removes a game.
func (h *Handlers) DeleteGame(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.store.DeleteGame(id); err != nil {
		h.fail(w, err)
		return
	}
	if h.hub != nil {
		h.hub.BroadcastToGame(id, Message{Type: "gameDeleted", GameID: id})
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListGames returns a summary of every game.
func (h *Handlers) ListGames(w http.ResponseWriter, r *http.Request) {
	games, err := h.store.ListGames()
	if err != nil {
		h.fail(w, err)
		return
	}
	response(w, http.StatusOK, games)
}

// Redeal replaces a game's table with a fresh deal.
func (h *Handlers) Redeal(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, "newgame", func(g *game.Game) (respond, error) {
		g.NewGame()
		return nil, nil
	})
}

// Draw turns a stock card or recycles the waste.
func (h *Handlers) Draw(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, "draw", func(g *game.Game) (respond, error) {
		g.Draw()
		return nil, nil
	})
}

// StartDrag picks up a card. A drag the rules do not allow answers 409 and leaves the
// table as it was.
func (h *Handlers) StartDrag(w http.ResponseWriter, r *http.Request) {
	var req struct {
		cardRequest
		pointRequest
	}
	if err := decode(r, &req); err != nil {
		h.fail(w, err)
		return
	}
	pt, err := req.pointRequest.table()
	if err != nil {
		h.fail(w, err)
		return
	}

	h.act(w, r, "drag_start", func(g *game.Game) (respond, error) {
		card, source, err := req.cardRequest.resolve(g)
		if err != nil {
			return nil, err
		}
		g.SetDragPosition(pt.X, pt.Y)
		if !g.StartDrag(card, source) {
			return nil, fmt.Errorf("%w: card %s cannot be dragged from %v", errRejected, req.CardID, source)
		}
		return nil, nil
	})
}

// MoveDrag updates the pointer position of the current drag.
func (h *Handlers) MoveDrag(w http.ResponseWriter, r *http.Request) {
	var req pointRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, err)
		return
	}
	pt, err := req.table()
	if err != nil {
		h.fail(w, err)
		return
	}

	h.act(w, r, "drag_move", func(g *game.Game) (respond, error) {
		g.SetDragPosition(pt.X, pt.Y)
		return nil, nil
	})
}

// Drop releases the current drag at a point. An illegal drop is not an error: the
// response carries the table with the cards back at their source.
func (h *Handlers) Drop(w http.ResponseWriter, r *http.Request) {
	var req pointRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, err)
		return
	}
	pt, err := req.table()
	if err != nil {
		h.fail(w, err)
		return
	}

	h.act(w, r, "drag_drop", func(g *game.Game) (respond, error) {
		g.SetDragPosition(pt.X, pt.Y)
		result := g.DropAt(pt.X, pt.Y)
		return func(v GameView) interface{} {
			return struct {
				Result game.DropResult `json:"result"`
				Game   GameView        `json:"game"`
			}{result, v}
		}, nil
	})
}

// CancelDrag abandons the current drag.
func (h *Handlers) CancelDrag(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, "drag_cancel", func(g *game.Game) (respond, error) {
		g.CancelDrag()
		return nil, nil
	})
}

// MoveToFoundation sends a card straight to its foundation, as a double-click does.
func (h *Handlers) MoveToFoundation(w http.ResponseWriter, r *http.Request) {
	var req cardRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, err)
		return
	}

	h.act(w, r, "foundation", func(g *game.Game) (respond, error) {
		card, source, err := req.resolve(g)
		if err != nil {
			return nil, err
		}
		ok := source != nil && g.MoveCardToFoundation(card, source)
		return func(v GameView) interface{} {
			return struct {
				Success bool     `json:"success"`
				Game    GameView `json:"game"`
			}{ok, v}
		}, nil
	})
}

// ServeWS upgrades a connection that watches one game. The client first receives a
// welcome and the current game view.
func (h *Handlers) ServeWS(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("gameId")
	var view GameView
	if err := h.store.ViewGame(id, func(g *game.Game) { view = newGameView(g) }); err != nil {
		h.fail(w, err)
		return
	}

	welcome := Message{Type: "welcome", GameID: id}
	update := Message{Type: "gameUpdate", GameID: id, Data: view}
	if err := h.hub.Attach(w, r, id, welcome, update); err != nil {
		h.log.WithError(err).Warn("websocket attach")
	}
}

// handleSocketMessage applies a client message to the client's game. dragMove is the
// hot path: it only moves the drag and echoes the position to the game's watchers.
func (h *Handlers) handleSocketMessage(c *Client, msg ClientMessage) {
	log := h.log.WithFields(logrus.Fields{"game_id": c.GameID(), "action": msg.Type})

	var err error
	switch msg.Type {
	case "dragMove":
		err = h.store.UpdateGame(c.GameID(), func(g *game.Game) error {
			g.SetDragPosition(msg.X, msg.Y)
			h.hub.BroadcastToGame(g.ID, Message{Type: "dragMove", GameID: g.ID, Data: game.Point{X: msg.X, Y: msg.Y}})
			return nil
		})
	case "dragCancel":
		err = h.store.UpdateGame(c.GameID(), func(g *game.Game) error {
			g.CancelDrag()
			h.hub.BroadcastGameUpdate(newGameView(g))
			return nil
		})
	default:
		log.Debug("unknown client message")
		return
	}
	if err != nil {
		log.WithError(err).Warn("client message failed")
	}
}
