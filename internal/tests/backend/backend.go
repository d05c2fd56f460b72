// Package backend is an in-process rendition of the property-management
// API used by the end-to-end tests. It implements the same contract the
// client speaks in production: JWT bearer tokens, an httpOnly refresh
// cookie backed by Redis, bcrypt credentials and casbin role enforcement.
package backend

import (
	"context"
	"fmt"
	"time"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/Rahuly1606/Property-management-System-sub000/domain"
)

// Backend holds the stores and the router.
type Backend struct {
	tokens      *TokenService
	users       *UserStore
	sessions    *SessionStore
	properties  *PropertyStore
	maintenance *MaintenanceStore
	enforcer    *casbin.Enforcer
	engine      *gin.Engine
	sessionTTL  time.Duration
}

// New builds a backend on the given Redis client. secret signs access
// tokens; accessTTL bounds their natural lifetime.
func New(redisClient *redis.Client, secret string, accessTTL time.Duration) (*Backend, error) {
	enforcer, err := newEnforcer()
	if err != nil {
		return nil, fmt.Errorf("failed to build enforcer: %w", err)
	}

	b := &Backend{
		tokens:      NewTokenService(secret, "pms-test-backend", accessTTL),
		users:       NewUserStore(),
		sessions:    NewSessionStore(redisClient, 24*time.Hour),
		properties:  NewPropertyStore(),
		maintenance: NewMaintenanceStore(),
		enforcer:    enforcer,
		sessionTTL:  24 * time.Hour,
	}
	b.engine = b.buildRouter()
	return b, nil
}

func (b *Backend) buildRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	auth := r.Group("/auth")
	{
		auth.POST("/login", b.handleLogin)
		auth.POST("/register", b.handleRegister)
		auth.POST("/refresh-token", b.handleRefresh)
		auth.POST("/logout", b.handleLogout)
	}

	// Public browsing endpoints.
	r.GET("/properties", b.handleListProperties)
	r.GET("/properties/available", b.handleAvailableProperties)
	r.GET("/properties/:id", b.handleGetProperty)

	authed := r.Group("/", b.authRequired())
	{
		authed.GET("/users/me", b.handleMe)
		authed.POST("/users/:id/profile", b.handleUpdateProfile)
		authed.PUT("/users/:id/password", b.handleChangePassword)

		authed.GET("/maintenance-requests/:id", b.handleGetMaintenance)
		authed.PUT("/maintenance-requests/:id", b.handleUpdateMaintenance)
	}

	landlord := r.Group("/landlord", b.authRequired(), b.enforceRole())
	{
		landlord.GET("/properties", b.handleLandlordProperties)
		landlord.POST("/properties", b.handleCreateProperty)
		landlord.PUT("/properties/:id", b.handleUpdateProperty)
		landlord.DELETE("/properties/:id", b.handleDeleteProperty)
		landlord.GET("/maintenance-requests", b.handleLandlordMaintenance)
	}

	tenant := r.Group("/tenant", b.authRequired(), b.enforceRole())
	{
		tenant.GET("/maintenance-requests", b.handleTenantMaintenance)
		tenant.POST("/maintenance-requests", b.handleCreateMaintenance)
	}

	return r
}

// Router exposes the gin engine for httptest.
func (b *Backend) Router() *gin.Engine { return b.engine }

// SeedUser registers an account directly, bypassing the HTTP surface.
func (b *Backend) SeedUser(reg *domain.Registration) (string, error) {
	acc, err := b.users.Create(reg)
	if err != nil {
		return "", err
	}
	return acc.ID, nil
}

// SeedProperty inserts a listing owned by the given landlord.
func (b *Backend) SeedProperty(landlordID string, p *domain.Property) *domain.Property {
	return b.properties.Create(landlordID, p)
}

// RevokeAccessTokens invalidates every outstanding access token for the
// user while leaving the refresh session alive, so the next authenticated
// request gets a 401 and must refresh.
func (b *Backend) RevokeAccessTokens(userID string) error {
	return b.users.BumpEpoch(userID)
}

// DropRefreshSessions removes every refresh session so the next refresh
// attempt fails terminally.
func (b *Backend) DropRefreshSessions(ctx context.Context) error {
	keys, err := b.sessions.client.Keys(ctx, b.sessions.prefix+"*").Result()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return b.sessions.client.Del(ctx, keys...).Err()
}
