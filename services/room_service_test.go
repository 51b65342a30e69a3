package services

import (
	"context"
	"testing"

	"lodge-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomCreateDefaultsAndDisabled(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	rooms := newTestRoomService(db, fixedClock("2024-06-01T10:00:00Z"))
	rooms.Images = NewLocalStore(t.TempDir())

	closed := false
	zero := 0
	r, err := rooms.Create(ctx, RoomInput{Name: " Annex ", Price: 120, Quantity: &zero, Available: &closed, Images: []string{pngDataURL(), "https://cdn.example.com/annex.jpg"}})
	require.NoError(t, err)
	assert.Equal(t, "Annex", r.Name)
	assert.Equal(t, 2, r.MaxGuests)

	got, err := rooms.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.False(t, got.Available)
	assert.Zero(t, got.Quantity)
	require.Len(t, got.Images, 2)
	assert.Equal(t, got.Images[0], got.ImageURL)
	assert.Equal(t, "https://cdn.example.com/annex.jpg", got.Images[1])
}

func TestRoomCatalogInvalidatedOnUpdate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	rooms := newTestRoomService(db, fixedClock("2024-06-01T10:00:00Z"))
	room := seedRoom(t, db, "Standard", 200, 2, 4)

	list, err := rooms.Catalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, 200.0, list[0].Price)

	_, err = rooms.Update(ctx, room.ID, RoomInput{Name: "Standard", Price: 250})
	require.NoError(t, err)

	list, err = rooms.Catalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, 250.0, list[0].Price)
	assert.Equal(t, 4, list[0].Quantity, "omitted quantity is left unchanged")
}

func TestRoomQuoteAndDelete(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	rooms := newTestRoomService(db, fixedClock("2024-06-01T10:00:00Z"))
	room := seedRoom(t, db, "Standard", 200, 2, 1)

	_, q, err := rooms.Quote(ctx, room.ID, mustDate(t, "2024-01-01"), mustDate(t, "2024-01-03"))
	require.NoError(t, err)
	assert.Equal(t, 400.0, q.Total)
	_, _, err = rooms.Quote(ctx, 999, mustDate(t, "2024-01-01"), mustDate(t, "2024-01-03"))
	assert.ErrorIs(t, err, ErrRoomNotFound)

	guest := models.Guest{RoomID: room.ID, Name: "Kwame", CheckIn: mustDate(t, "2024-06-01"), CheckOut: mustDate(t, "2024-06-02"), Status: models.GuestActive}
	require.NoError(t, db.Create(&guest).Error)
	assert.ErrorIs(t, rooms.Delete(ctx, room.ID), ErrRoomInUse)

	require.NoError(t, db.Model(&guest).Update("status", models.GuestCheckedOut).Error)
	require.NoError(t, rooms.Delete(ctx, room.ID))
	assert.ErrorIs(t, rooms.Delete(ctx, room.ID), ErrRoomNotFound)
}

func TestRoomDeleteFailsWhenGuardQueryFails(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	rooms := newTestRoomService(db, fixedClock("2024-06-01T10:00:00Z"))
	room := seedRoom(t, db, "Standard", 200, 2, 1)
	require.NoError(t, db.Create(&models.Guest{RoomID: room.ID, Name: "Kwame", CheckIn: mustDate(t, "2024-06-01"), CheckOut: mustDate(t, "2024-06-02"), Status: models.GuestActive}).Error)

	require.NoError(t, db.Migrator().RenameTable("guests", "guests_moved"))
	err := rooms.Delete(ctx, room.ID)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrRoomInUse)
	assert.ErrorContains(t, err, "count active guests")

	var n int64
	require.NoError(t, db.Model(&models.Room{}).Count(&n).Error)
	assert.Equal(t, int64(1), n, "room is kept when the guard cannot run")
}
