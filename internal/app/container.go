// Package app wires the session core together: configuration, the
// credential store, the refreshing transport, the typed API clients, the
// session manager and the route guard all come out of one container so
// every caller shares the same state.
package app

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"

	"github.com/Rahuly1606/Property-management-System-sub000/domain"
	"github.com/Rahuly1606/Property-management-System-sub000/internal/api"
	"github.com/Rahuly1606/Property-management-System-sub000/internal/config"
	"github.com/Rahuly1606/Property-management-System-sub000/internal/infrastructure/credstore"
	"github.com/Rahuly1606/Property-management-System-sub000/internal/infrastructure/transport"
	"github.com/Rahuly1606/Property-management-System-sub000/internal/services"
)

// Container holds every constructed dependency.
type Container struct {
	Config *config.Config
	Store  domain.CredentialStore

	// HTTPClient carries the auth transport and the session cookie jar;
	// all API clients are built on it.
	HTTPClient *http.Client

	Session domain.SessionManager
	Guard   *services.RouteGuard

	Auth        domain.AuthAPI
	Users       domain.UserAPI
	Properties  *api.PropertyAPI
	Maintenance *api.MaintenanceAPI
	Leases      *api.LeaseAPI
	Payments    *api.PaymentAPI
	Purchases   *api.PurchaseAPI
}

// New builds the full dependency graph from configuration.
func New(cfg *config.Config) (*Container, error) {
	store := credstore.NewFileStore(cfg.CredentialsPath)

	// One jar is shared between the API client and the refresh client so
	// the httpOnly refresh cookie set at login is available to the refresh
	// endpoint.
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	refreshClient := &http.Client{Jar: jar, Timeout: cfg.HTTPTimeout}
	authTransport := transport.New(cfg.BaseURL, store, nil, refreshClient)
	httpClient := &http.Client{
		Jar:       jar,
		Transport: authTransport,
		Timeout:   cfg.HTTPTimeout,
	}

	client := api.NewClient(cfg.BaseURL, httpClient)
	authAPI := api.NewAuthAPI(client)
	userAPI := api.NewUserAPI(client)

	session := services.NewSessionService(store, authAPI, userAPI)
	authTransport.SetInvalidator(session)

	return &Container{
		Config:      cfg,
		Store:       store,
		HTTPClient:  httpClient,
		Session:     session,
		Guard:       services.NewRouteGuard(session, cfg.LoginPath, cfg.UnauthorizedPath),
		Auth:        authAPI,
		Users:       userAPI,
		Properties:  api.NewPropertyAPI(client),
		Maintenance: api.NewMaintenanceAPI(client),
		Leases:      api.NewLeaseAPI(client),
		Payments:    api.NewPaymentAPI(client),
		Purchases:   api.NewPurchaseAPI(client),
	}, nil
}

// Close releases pooled connections. The credential store needs no
// teardown; every write is already flushed.
func (c *Container) Close() {
	c.HTTPClient.CloseIdleConnections()
}
