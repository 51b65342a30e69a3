package services

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lodge-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 13}

func pngDataURL() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngHeader)
}

func TestDecodeDataURL(t *testing.T) {
	data, err := DecodeDataURL(pngDataURL())
	require.NoError(t, err)
	assert.Equal(t, pngHeader, data)

	_, err = DecodeDataURL("data:text/plain;base64,aGk=")
	assert.ErrorIs(t, err, ErrInvalidImage)
	_, err = DecodeDataURL("data:image/png;base64,@@@")
	assert.ErrorIs(t, err, ErrInvalidImage)
	_, err = DecodeDataURL("")
	assert.ErrorIs(t, err, ErrInvalidImage)
}

func TestDecodeDataURLRejectsOversizedImages(t *testing.T) {
	big := strings.Repeat("A", base64.StdEncoding.EncodedLen(MaxImageBytes+1024))
	_, err := DecodeDataURL("data:image/jpeg;base64," + big)
	assert.ErrorIs(t, err, ErrImageTooLarge)
}

func TestLocalStoreSaveAndRemove(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(dir)

	img, err := store.Save(context.Background(), pngHeader, "rooms")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(img.URL, "/uploads/rooms/"))
	assert.True(t, strings.HasSuffix(img.URL, ".png"))

	path := filepath.Join(dir, filepath.FromSlash(img.PublicID))
	_, err = os.Stat(path)
	require.NoError(t, err)

	require.NoError(t, store.Remove(context.Background(), img.PublicID))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
	assert.NoError(t, store.Remove(context.Background(), img.PublicID))
}

func TestGalleryCreateAndDelete(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := NewGalleryService(db, NewLocalStore(t.TempDir()))

	_, err := svc.Create(ctx, GalleryInput{Title: "Pool", ImageData: "https://example.com/pool.jpg"})
	assert.ErrorIs(t, err, ErrInvalidImage)

	img, err := svc.Create(ctx, GalleryInput{Title: " Pool ", ImageData: pngDataURL()})
	require.NoError(t, err)
	assert.Equal(t, "Pool", img.Title)
	assert.Equal(t, "general", img.Category)
	assert.NotEmpty(t, img.ImageURL)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, img.ID))
	assert.ErrorIs(t, svc.Delete(ctx, img.ID), ErrImageNotFound)
	var count int64
	db.Model(&models.GalleryImage{}).Count(&count)
	assert.Zero(t, count)
}
