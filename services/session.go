package services

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"sort"
	"time"

	"lodge-backend/models"
)

type Permission string

const (
	PermBookingsView   Permission = "bookings.view"
	PermBookingsEdit   Permission = "bookings.edit"
	PermGuestsView     Permission = "guests.view"
	PermGuestsManage   Permission = "guests.manage"
	PermGuestsDelete   Permission = "guests.delete"
	PermRoomsView      Permission = "rooms.view"
	PermRoomsManage    Permission = "rooms.manage"
	PermGalleryManage  Permission = "gallery.manage"
	PermAnalyticsView  Permission = "analytics.view"
	PermRemovalsView   Permission = "removals.view"
	PermUsersManage    Permission = "users.manage"
	PermSettingsManage Permission = "settings.manage"
)

var adminPermissions = []Permission{
	PermBookingsView, PermBookingsEdit,
	PermGuestsView, PermGuestsManage,
	PermRoomsView, PermGalleryManage,
}

var managerOnlyPermissions = []Permission{
	PermGuestsDelete, PermRoomsManage, PermAnalyticsView,
	PermRemovalsView, PermUsersManage, PermSettingsManage,
}

// PermissionsForRole is the single place roles turn into capabilities.
func PermissionsForRole(role string) []Permission {
	var perms []Permission
	switch role {
	case models.RoleManager:
		perms = append(append(perms, adminPermissions...), managerOnlyPermissions...)
	case models.RoleAdmin:
		perms = append(perms, adminPermissions...)
	default:
		return []Permission{}
	}
	sort.Slice(perms, func(i, j int) bool { return perms[i] < perms[j] })
	return perms
}

// Session is resolved once per admin request and carried on the request context.
type Session struct {
	AdminID     uint         `json:"admin_id"`
	Username    string       `json:"username"`
	Role        string       `json:"role"`
	Permissions []Permission `json:"permissions"`
	Generation  int64        `json:"generation"`
}

func (s Session) Can(p Permission) bool {
	for _, have := range s.Permissions {
		if have == p {
			return true
		}
	}
	return false
}

const (
	sessionTTL       = 5 * time.Minute
	sessionKeyPrefix = "session:cred:"
	sessionGenPrefix = "session:gen:"
)

// SessionStore caches authenticated credential pairs so bcrypt runs once per TTL rather than
// on every request. Updating or deleting a user bumps its generation, which invalidates
// every cached session of that user.
type SessionStore struct {
	Cache  Cache
	Users  *AdminService
	TTL    time.Duration
	secret []byte
}

// NewSessionStore keys cached sessions with an HMAC under secret. An empty secret is
// replaced by a random one, so cached sessions do not outlive the process.
func NewSessionStore(cache Cache, users *AdminService, secret []byte) *SessionStore {
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			panic(fmt.Sprintf("session: generate secret: %v", err))
		}
		log.Println("⚠️  SESSION_SECRET not set; using a per-process session key")
	}
	return &SessionStore{Cache: cache, Users: users, TTL: sessionTTL, secret: secret}
}

func (st *SessionStore) credentialKey(username, password string) string {
	mac := hmac.New(sha256.New, st.secret)
	mac.Write([]byte(username + "\x00" + password))
	return sessionKeyPrefix + hex.EncodeToString(mac.Sum(nil))
}

// Resolve loads the session for a credential pair, authenticating on a cache miss.
func (st *SessionStore) Resolve(ctx context.Context, username, password string) (Session, error) {
	key := st.credentialKey(username, password)

	var cached Session
	if found, err := st.Cache.Get(ctx, key, &cached); err != nil {
		log.Printf("session: cache read failed: %v", err)
	} else if found {
		gen, err := st.generation(ctx, cached.AdminID)
		if err == nil && gen == cached.Generation {
			return cached, nil
		}
	}

	user, err := st.Users.Authenticate(ctx, username, password)
	if err != nil {
		return Session{}, err
	}
	gen, err := st.generation(ctx, user.ID)
	if err != nil {
		log.Printf("session: generation read failed: %v", err)
	}
	session := Session{
		AdminID:     user.ID,
		Username:    user.Username,
		Role:        user.Role,
		Permissions: PermissionsForRole(user.Role),
		Generation:  gen,
	}
	if err := st.Cache.Set(ctx, key, session, st.TTL); err != nil {
		log.Printf("session: cache write failed: %v", err)
	}
	return session, nil
}

// Revoke drops every cached session for the user.
func (st *SessionStore) Revoke(ctx context.Context, adminID uint) error {
	gen, err := st.generation(ctx, adminID)
	if err != nil {
		return err
	}
	return st.Cache.Set(ctx, fmt.Sprintf("%s%d", sessionGenPrefix, adminID), gen+1, 0)
}

func (st *SessionStore) generation(ctx context.Context, adminID uint) (int64, error) {
	var gen int64
	if _, err := st.Cache.Get(ctx, fmt.Sprintf("%s%d", sessionGenPrefix, adminID), &gen); err != nil {
		return 0, err
	}
	return gen, nil
}
