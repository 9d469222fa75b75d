package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"kitchen-rush/internal/api/ws"
	resultdb "kitchen-rush/internal/database/result/database"
	"kitchen-rush/internal/database/result/model"
	"kitchen-rush/internal/logging"
	"kitchen-rush/internal/room"
)

const (
	defaultResultLimit = 20
	maxResultLimit     = 100
)

// RoomLister is the read side of the room manager.
type RoomLister interface {
	Rooms() []room.Summary
	Get(code string) (*room.Room, bool)
}

// ResultReader is the read side of the result store.
type ResultReader interface {
	FetchRecent(limit int) ([]model.Result, error)
	FetchByID(id uuid.UUID) (model.Result, error)
}

// ConnectionCounter reports live websocket connections.
type ConnectionCounter interface {
	Connections() int
}

// @Summary Health check
// @Description Reports liveness together with open rooms and connections
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func HealthHandler(rooms RoomLister, conns ConnectionCounter) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, HealthResponse{
			Status:      "ok",
			Rooms:       len(rooms.Rooms()),
			Connections: conns.Connections(),
		})
	}
}

// @Summary List rooms
// @Description Returns every open room with its players, host and phase
// @Tags Room
// @Produce json
// @Success 200 {object} RoomsResponse
// @Router /api/rooms [get]
func ListRoomsHandler(rooms RoomLister) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, RoomsResponse{Rooms: rooms.Rooms()})
	}
}

// @Summary Get room
// @Description Returns one room, including the round state while a game is running
// @Tags Room
// @Produce json
// @Param code path string true "Room Code"
// @Success 200 {object} RoomResponse
// @Failure 404 {object} map[string]interface{}
// @Router /api/rooms/{code} [get]
func GetRoomHandler(rooms RoomLister) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := ws.NormalizeCode(c.Param("code"))
		rx, ok := rooms.Get(code)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
			return
		}

		var resp RoomResponse
		for _, s := range rooms.Rooms() {
			if s.Code == rx.Code {
				resp.Room = s
				break
			}
		}
		if snap, ok := rx.Snapshot(); ok {
			resp.State = &snap
		}
		c.JSON(http.StatusOK, resp)
	}
}

// @Summary Recent results
// @Description Returns the most recently finished games, newest first
// @Tags Results
// @Produce json
// @Param limit query int false "Maximum number of results (1-100, default 20)"
// @Success 200 {object} ResultsResponse
// @Failure 400 {object} map[string]interface{}
// @Router /api/results [get]
func ListResultsHandler(results ResultReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := defaultResultLimit
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
				return
			}
			limit = n
		}
		if limit > maxResultLimit {
			limit = maxResultLimit
		}

		out, err := results.FetchRecent(limit)
		if err != nil {
			logging.FromContext(c.Request.Context()).Errorf("fetch recent results: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load results"})
			return
		}
		c.JSON(http.StatusOK, ResultsResponse{Results: out})
	}
}

// @Summary Get result
// @Description Returns one finished game by id
// @Tags Results
// @Produce json
// @Param id path string true "Result ID"
// @Success 200 {object} model.Result
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/results/{id} [get]
func GetResultHandler(results ResultReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid result id"})
			return
		}

		res, err := results.FetchByID(id)
		switch {
		case errors.Is(err, resultdb.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "result not found"})
			return
		case err != nil:
			logging.FromContext(c.Request.Context()).Errorf("fetch result %s: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load result"})
			return
		}
		c.JSON(http.StatusOK, res)
	}
}
