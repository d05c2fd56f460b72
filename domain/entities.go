package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Role is the closed set of capabilities a user can hold. There is no
// hierarchy between roles; authorization checks are membership tests
// against explicit allow-lists.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleLandlord Role = "LANDLORD"
	RoleTenant   Role = "TENANT"
)

// ParseRole converts a wire string into a Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleLandlord, RoleTenant:
		return Role(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

// Valid reports whether the role is one of the closed set.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleLandlord, RoleTenant:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

// UnmarshalJSON rejects roles outside the closed set.
func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// UserProfile is the denormalized snapshot of the authenticated identity.
type UserProfile struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Role         Role   `json:"role"`
	PhoneNumber  string `json:"phoneNumber,omitempty"`
	ProfileImage string `json:"profileImage,omitempty"`
	Address      string `json:"address,omitempty"`
}

// Clone returns a copy of the profile.
func (u *UserProfile) Clone() *UserProfile {
	if u == nil {
		return nil
	}
	cp := *u
	return &cp
}

// Credentials is the single persisted record holding the bearer token and
// the profile it belongs to. Persisting both in one record means a reader
// can never observe a token without its profile.
type Credentials struct {
	Token   string       `json:"token"`
	User    *UserProfile `json:"user"`
	SavedAt time.Time    `json:"savedAt"`
}

// Session is the process-wide authentication state. It is always read as a
// value snapshot; only the session manager mutates the backing state.
type Session struct {
	Token   string
	User    *UserProfile
	Loading bool
	Err     string
}

// Authenticated reports whether the snapshot carries a settled identity.
// While Loading is true the state is unknown and this is false.
func (s Session) Authenticated() bool {
	return !s.Loading && s.User != nil && s.Token != ""
}

// AuthorizationDecision is the outcome of evaluating a session snapshot
// against a required capability set.
type AuthorizationDecision int

const (
	DecisionPending AuthorizationDecision = iota
	DecisionNotAuthenticated
	DecisionWrongRole
	DecisionGranted
)

func (d AuthorizationDecision) String() string {
	switch d {
	case DecisionPending:
		return "pending"
	case DecisionNotAuthenticated:
		return "not_authenticated"
	case DecisionWrongRole:
		return "wrong_role"
	case DecisionGranted:
		return "granted"
	}
	return fmt.Sprintf("decision(%d)", int(d))
}

// Registration carries the fields sent to the registration endpoint.
type Registration struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Role        Role   `json:"role"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Address     string `json:"address,omitempty"`
}

// Property is a rentable or purchasable listing.
type Property struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	Address           string    `json:"address"`
	City              string    `json:"city"`
	State             string    `json:"state"`
	PropertyType      string    `json:"propertyType"`
	TotalArea         float64   `json:"totalArea,omitempty"`
	NumberOfBedrooms  int       `json:"numberOfBedrooms,omitempty"`
	NumberOfBathrooms int       `json:"numberOfBathrooms,omitempty"`
	MonthlyRent       float64   `json:"monthlyRent"`
	SecurityDeposit   float64   `json:"securityDeposit,omitempty"`
	AvailableFrom     string    `json:"availableFrom,omitempty"`
	Available         bool      `json:"available"`
	Featured          bool      `json:"featured,omitempty"`
	Amenities         []string  `json:"amenities,omitempty"`
	Images            []string  `json:"images,omitempty"`
	LandlordID        string    `json:"landlordId"`
	CreatedAt         time.Time `json:"createdAt,omitempty"`
	UpdatedAt         time.Time `json:"updatedAt,omitempty"`
}

// MaintenanceRequest is a tenant-filed maintenance ticket.
type MaintenanceRequest struct {
	ID            string     `json:"id"`
	PropertyID    string     `json:"propertyId"`
	TenantID      string     `json:"tenantId"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Category      string     `json:"category,omitempty"`
	Priority      string     `json:"priority,omitempty"`
	Status        string     `json:"status"`
	Images        []string   `json:"images,omitempty"`
	ContactPhone  string     `json:"contactPhone,omitempty"`
	Emergency     bool       `json:"emergencyRequest,omitempty"`
	Resolution    string     `json:"resolution,omitempty"`
	CreatedAt     time.Time  `json:"createdAt,omitempty"`
	ResolvedAt    *time.Time `json:"resolvedAt,omitempty"`
	ScheduledDate *time.Time `json:"scheduledDate,omitempty"`
}

// Lease binds a tenant to a property for a term.
type Lease struct {
	ID           string   `json:"id"`
	PropertyID   string   `json:"propertyId"`
	TenantID     string   `json:"tenantId"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
	MonthlyRent  float64  `json:"monthlyRent"`
	Status       string   `json:"status"`
	DocumentURLs []string `json:"documentUrls,omitempty"`
}

// Payment is a settled or pending rent payment record.
type Payment struct {
	ID            string    `json:"id"`
	LeaseID       string    `json:"leaseId,omitempty"`
	PropertyID    string    `json:"propertyId,omitempty"`
	TenantID      string    `json:"tenantId,omitempty"`
	Amount        float64   `json:"amount"`
	Description   string    `json:"description,omitempty"`
	TransactionID string    `json:"transactionId,omitempty"`
	PaymentMethod string    `json:"paymentMethod,omitempty"`
	Status        string    `json:"status"`
	PaymentDate   string    `json:"paymentDate,omitempty"`
	ReceiptURL    string    `json:"receiptUrl,omitempty"`
	CreatedAt     time.Time `json:"createdAt,omitempty"`
}

// PurchaseRequest tracks a tenant's offer to buy a property and the
// gateway order state attached to it. Signature verification happens
// server-side; the client treats the gateway fields as opaque.
type PurchaseRequest struct {
	ID              string     `json:"id"`
	PropertyID      string     `json:"propertyId"`
	TenantID        string     `json:"tenantId"`
	LandlordID      string     `json:"landlordId"`
	Status          string     `json:"status"`
	PurchasePrice   float64    `json:"purchasePrice,omitempty"`
	ResponseNotes   string     `json:"responseNotes,omitempty"`
	RazorpayOrderID string     `json:"razorpayOrderId,omitempty"`
	PaymentStatus   string     `json:"paymentStatus,omitempty"`
	InvoiceURL      string     `json:"invoiceUrl,omitempty"`
	RequestDate     *time.Time `json:"requestDate,omitempty"`
	ResponseDate    *time.Time `json:"responseDate,omitempty"`
}

// CheckoutOrder is the handle returned when a purchase payment is
// initiated; it is handed to the hosted checkout as-is.
type CheckoutOrder struct {
	OrderID  string  `json:"orderId"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	KeyID    string  `json:"keyId,omitempty"`
}
