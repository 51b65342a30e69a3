package controllers

import (
	"net/http"
	"strings"
	"time"

	"lodge-backend/middleware"
	"lodge-backend/services"
	"lodge-backend/utils"

	"github.com/gin-gonic/gin"
)

type RoomController struct {
	Rooms    *services.RoomService
	Currency *services.CurrencyResolver
}

func NewRoomController(rooms *services.RoomService, currency *services.CurrencyResolver) *RoomController {
	return &RoomController{Rooms: rooms, Currency: currency}
}

// GET /api/rooms
func (rc *RoomController) List(c *gin.Context) {
	rooms, err := rc.Rooms.Catalog(c.Request.Context())
	if err != nil {
		respondError(c, "rooms.list", err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// GET /api/rooms/:id
func (rc *RoomController) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	room, err := rc.Rooms.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, "rooms.get", err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// GET /api/rooms/:id/quote?check_in=&check_out=
func (rc *RoomController) Quote(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var checkIn, checkOut time.Time
	for _, p := range []struct {
		key string
		dst *time.Time
	}{{"check_in", &checkIn}, {"check_out", &checkOut}} {
		raw := strings.TrimSpace(c.Query(p.key))
		if raw == "" {
			continue
		}
		t, err := services.ParseStayDate(raw)
		if err != nil {
			badRequest(c, err)
			return
		}
		*p.dst = t
	}

	room, quote, err := rc.Rooms.Quote(c.Request.Context(), id, checkIn, checkOut)
	if err != nil {
		respondError(c, "rooms.quote", err)
		return
	}

	resp := gin.H{
		"room_id":  room.ID,
		"nights":   quote.Nights,
		"total":    quote.Total,
		"complete": quote.Complete,
	}
	if quote.Complete {
		cur := rc.Currency.Resolve(c.Request.Context(), middleware.ClientKey(c), c.ClientIP())
		price := cur.Convert(quote.Total)
		resp["display"] = gin.H{"amount": price.Amount, "code": price.Code, "symbol": price.Symbol, "formatted": services.FormatPrice(price)}
	}
	c.JSON(http.StatusOK, resp)
}

// GET /api/admin/rooms
func (rc *RoomController) AdminList(c *gin.Context) {
	rooms, err := rc.Rooms.List(c.Request.Context())
	if err != nil {
		respondError(c, "admin.rooms.list", err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// POST /api/admin/rooms
func (rc *RoomController) Create(c *gin.Context) {
	var in services.RoomInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	room, err := rc.Rooms.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, "admin.rooms.create", err)
		return
	}
	c.JSON(http.StatusCreated, room)
}

// PUT /api/admin/rooms/:id
func (rc *RoomController) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var in services.RoomInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	room, err := rc.Rooms.Update(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, "admin.rooms.update", err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// DELETE /api/admin/rooms/:id
func (rc *RoomController) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := rc.Rooms.Delete(c.Request.Context(), id); err != nil {
		respondError(c, "admin.rooms.delete", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"message": "Room deleted"})
}
