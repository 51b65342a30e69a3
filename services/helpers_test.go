package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"lodge-backend/models"
	"lodge-backend/utils"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&models.AdminUser{},
		&models.LodgeSetting{},
		&models.Room{},
		&models.Booking{},
		&models.Guest{},
		&models.RemovalReason{},
		&models.GalleryImage{},
	))
	return db
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseStayDate(s)
	require.NoError(t, err)
	return d
}

func seedRoom(t *testing.T, db *gorm.DB, name string, price float64, maxGuests, quantity int) models.Room {
	t.Helper()
	room := models.Room{Name: name, Price: price, MaxGuests: maxGuests, Quantity: quantity, Available: true}
	require.NoError(t, db.Create(&room).Error)
	return room
}

func fixedClock(s string) func() time.Time {
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return ts }
}

func newTestRoomService(db *gorm.DB, now func() time.Time) *RoomService {
	rooms := NewRoomService(db, NewAvailabilityService(db), NewLocalStore("testdata-unused"), NewMemoryCache())
	rooms.Now = now
	return rooms
}

type fakeGateway struct {
	mu          sync.Mutex
	initErr     error
	status      string
	amount      int64
	initialized []PaymentInit
	verified    []string
}

func (g *fakeGateway) Initialize(_ context.Context, in PaymentInit) (PaymentSession, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.initialized = append(g.initialized, in)
	if g.initErr != nil {
		return PaymentSession{}, g.initErr
	}
	return PaymentSession{AuthorizationURL: "https://pay.test/" + in.Reference, Reference: in.Reference}, nil
}

func (g *fakeGateway) Verify(_ context.Context, reference string) (PaymentVerification, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.verified = append(g.verified, reference)
	return PaymentVerification{Reference: reference, Status: g.status, AmountMinor: g.amount}, nil
}

type mailRecorder struct {
	mu   sync.Mutex
	sent []utils.Mail
}

func (m *mailRecorder) send(mail utils.Mail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, mail)
	return nil
}

func (m *mailRecorder) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}
