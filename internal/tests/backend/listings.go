package backend

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Rahuly1606/Property-management-System-sub000/domain"
)

var (
	ErrPropertyNotFound = errors.New("property not found")
	ErrRequestNotFound  = errors.New("maintenance request not found")
)

// PropertyStore is an in-memory property repository.
type PropertyStore struct {
	mu   sync.RWMutex
	byID map[string]*domain.Property
}

func NewPropertyStore() *PropertyStore {
	return &PropertyStore{byID: make(map[string]*domain.Property)}
}

func (s *PropertyStore) Create(landlordID string, p *domain.Property) *domain.Property {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *p
	stored.ID = uuid.New().String()
	stored.LandlordID = landlordID
	stored.CreatedAt = time.Now()
	s.byID[stored.ID] = &stored

	out := stored
	return &out
}

func (s *PropertyStore) Get(id string) (*domain.Property, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.byID[id]
	if !ok {
		return nil, ErrPropertyNotFound
	}
	out := *p
	return &out, nil
}

func (s *PropertyStore) List() []domain.Property {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Property, 0, len(s.byID))
	for _, p := range s.byID {
		out = append(out, *p)
	}
	return out
}

func (s *PropertyStore) Available() []domain.Property {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Property, 0, len(s.byID))
	for _, p := range s.byID {
		if p.Available {
			out = append(out, *p)
		}
	}
	return out
}

func (s *PropertyStore) ByLandlord(landlordID string) []domain.Property {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Property, 0)
	for _, p := range s.byID {
		if p.LandlordID == landlordID {
			out = append(out, *p)
		}
	}
	return out
}

// Update replaces the mutable fields; ownership is checked by the caller.
func (s *PropertyStore) Update(id string, p *domain.Property) (*domain.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.byID[id]
	if !ok {
		return nil, ErrPropertyNotFound
	}
	updated := *p
	updated.ID = existing.ID
	updated.LandlordID = existing.LandlordID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now()
	s.byID[id] = &updated

	out := updated
	return &out, nil
}

func (s *PropertyStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return ErrPropertyNotFound
	}
	delete(s.byID, id)
	return nil
}

// MaintenanceStore is an in-memory maintenance ticket repository.
type MaintenanceStore struct {
	mu   sync.RWMutex
	byID map[string]*domain.MaintenanceRequest
}

func NewMaintenanceStore() *MaintenanceStore {
	return &MaintenanceStore{byID: make(map[string]*domain.MaintenanceRequest)}
}

func (s *MaintenanceStore) Create(tenantID string, req *domain.MaintenanceRequest) *domain.MaintenanceRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *req
	stored.ID = uuid.New().String()
	stored.TenantID = tenantID
	stored.Status = "PENDING"
	stored.CreatedAt = time.Now()
	s.byID[stored.ID] = &stored

	out := stored
	return &out
}

func (s *MaintenanceStore) Get(id string) (*domain.MaintenanceRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	req, ok := s.byID[id]
	if !ok {
		return nil, ErrRequestNotFound
	}
	out := *req
	return &out, nil
}

func (s *MaintenanceStore) ByTenant(tenantID string) []domain.MaintenanceRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.MaintenanceRequest, 0)
	for _, req := range s.byID {
		if req.TenantID == tenantID {
			out = append(out, *req)
		}
	}
	return out
}

func (s *MaintenanceStore) All() []domain.MaintenanceRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.MaintenanceRequest, 0, len(s.byID))
	for _, req := range s.byID {
		out = append(out, *req)
	}
	return out
}

// SetStatus applies a status transition with an optional resolution note.
func (s *MaintenanceStore) SetStatus(id, status, resolution string) (*domain.MaintenanceRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	req, ok := s.byID[id]
	if !ok {
		return nil, ErrRequestNotFound
	}
	req.Status = status
	if resolution != "" {
		req.Resolution = resolution
	}
	if status == "RESOLVED" {
		now := time.Now()
		req.ResolvedAt = &now
	}
	out := *req
	return &out, nil
}
