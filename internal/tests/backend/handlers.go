package backend

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Rahuly1606/Property-management-System-sub000/domain"
)

const refreshCookie = "refresh_session"

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (b *Backend) authResponse(acc *Account, token string) gin.H {
	p := acc.Profile()
	return gin.H{
		"token":        token,
		"id":           p.ID,
		"email":        p.Email,
		"firstName":    p.FirstName,
		"lastName":     p.LastName,
		"role":         p.Role,
		"phoneNumber":  p.PhoneNumber,
		"profileImage": p.ProfileImage,
		"address":      p.Address,
	}
}

// openSession mints an access token and sets the httpOnly refresh cookie.
func (b *Backend) openSession(c *gin.Context, acc *Account) (string, error) {
	sessionID := uuid.New().String()
	if err := b.sessions.Create(c.Request.Context(), sessionID, acc.ID); err != nil {
		return "", err
	}
	token, err := b.tokens.Mint(acc.ID, string(acc.Role), acc.TokenEpoch)
	if err != nil {
		return "", err
	}
	c.SetCookie(refreshCookie, sessionID, int(b.sessionTTL/time.Second), "/", "", false, true)
	return token, nil
}

func (b *Backend) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required"})
		return
	}

	acc, err := b.users.Authenticate(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
		return
	}

	token, err := b.openSession(c, acc)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create session"})
		return
	}

	log.Printf("USER_LOGIN: user_id=%s role=%s timestamp=%s", acc.ID, acc.Role, time.Now().UTC().Format(time.RFC3339))
	c.JSON(http.StatusOK, b.authResponse(acc, token))
}

func (b *Backend) handleRegister(c *gin.Context) {
	var reg domain.Registration
	if err := c.ShouldBindJSON(&reg); err != nil || reg.Email == "" || reg.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid registration payload"})
		return
	}
	if !reg.Role.Valid() || reg.Role == domain.RoleAdmin {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Role must be LANDLORD or TENANT"})
		return
	}

	acc, err := b.users.Create(&reg)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"message": "Email already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Registration failed"})
		return
	}

	token, err := b.openSession(c, acc)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create session"})
		return
	}

	log.Printf("USER_REGISTERED: user_id=%s role=%s timestamp=%s", acc.ID, acc.Role, time.Now().UTC().Format(time.RFC3339))
	c.JSON(http.StatusCreated, b.authResponse(acc, token))
}

func (b *Backend) handleRefresh(c *gin.Context) {
	sessionID, err := c.Cookie(refreshCookie)
	if err != nil || sessionID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "No refresh session"})
		return
	}

	userID, err := b.sessions.Find(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Session invalid or expired"})
		return
	}

	acc, err := b.users.Get(userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Session invalid or expired"})
		return
	}

	token, err := b.tokens.Mint(acc.ID, string(acc.Role), acc.TokenEpoch)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to mint token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (b *Backend) handleLogout(c *gin.Context) {
	if sessionID, err := c.Cookie(refreshCookie); err == nil && sessionID != "" {
		if err := b.sessions.Delete(c.Request.Context(), sessionID); err != nil {
			log.Printf("USER_LOGOUT: session delete failed: %v", err)
		}
	}
	c.SetCookie(refreshCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (b *Backend) handleMe(c *gin.Context) {
	acc, err := b.users.Get(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "User not found"})
		return
	}
	c.JSON(http.StatusOK, acc.Profile())
}

func (b *Backend) handleUpdateProfile(c *gin.Context) {
	// A user may only edit their own profile.
	if c.Param("id") != c.GetString("user_id") {
		c.JSON(http.StatusForbidden, gin.H{"message": "Access denied"})
		return
	}

	var patch map[string]any
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid profile payload"})
		return
	}

	echoed, err := b.users.UpdateProfile(c.Param("id"), patch)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	c.JSON(http.StatusOK, echoed)
}

func (b *Backend) handleChangePassword(c *gin.Context) {
	if c.Param("id") != c.GetString("user_id") {
		c.JSON(http.StatusForbidden, gin.H{"message": "Access denied"})
		return
	}

	current := c.Query("currentPassword")
	next := c.Query("newPassword")
	if current == "" || next == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Both passwords are required"})
		return
	}

	if err := b.users.ChangePassword(c.Param("id"), current, next); err != nil {
		if errors.Is(err, ErrWrongOldPassword) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Current password is incorrect"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}

func (b *Backend) handleListProperties(c *gin.Context) {
	c.JSON(http.StatusOK, b.properties.List())
}

func (b *Backend) handleAvailableProperties(c *gin.Context) {
	c.JSON(http.StatusOK, b.properties.Available())
}

func (b *Backend) handleGetProperty(c *gin.Context) {
	p, err := b.properties.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Property not found"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (b *Backend) handleLandlordProperties(c *gin.Context) {
	c.JSON(http.StatusOK, b.properties.ByLandlord(c.GetString("user_id")))
}

func (b *Backend) handleCreateProperty(c *gin.Context) {
	var p domain.Property
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid property payload"})
		return
	}
	c.JSON(http.StatusCreated, b.properties.Create(c.GetString("user_id"), &p))
}

func (b *Backend) handleUpdateProperty(c *gin.Context) {
	existing, err := b.properties.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Property not found"})
		return
	}
	if existing.LandlordID != c.GetString("user_id") {
		c.JSON(http.StatusForbidden, gin.H{"message": "Access denied"})
		return
	}

	var p domain.Property
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid property payload"})
		return
	}
	updated, err := b.properties.Update(c.Param("id"), &p)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Property not found"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (b *Backend) handleDeleteProperty(c *gin.Context) {
	existing, err := b.properties.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Property not found"})
		return
	}
	if existing.LandlordID != c.GetString("user_id") {
		c.JSON(http.StatusForbidden, gin.H{"message": "Access denied"})
		return
	}
	if err := b.properties.Delete(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Property not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Property deleted"})
}

func (b *Backend) handleTenantMaintenance(c *gin.Context) {
	c.JSON(http.StatusOK, b.maintenance.ByTenant(c.GetString("user_id")))
}

func (b *Backend) handleLandlordMaintenance(c *gin.Context) {
	c.JSON(http.StatusOK, b.maintenance.All())
}

func (b *Backend) handleCreateMaintenance(c *gin.Context) {
	var req domain.MaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid maintenance payload"})
		return
	}
	c.JSON(http.StatusCreated, b.maintenance.Create(c.GetString("user_id"), &req))
}

func (b *Backend) handleGetMaintenance(c *gin.Context) {
	req, err := b.maintenance.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Maintenance request not found"})
		return
	}
	c.JSON(http.StatusOK, req)
}

func (b *Backend) handleUpdateMaintenance(c *gin.Context) {
	var patch struct {
		Status     string `json:"status"`
		Resolution string `json:"resolution"`
	}
	if err := c.ShouldBindJSON(&patch); err != nil || patch.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Status is required"})
		return
	}
	updated, err := b.maintenance.SetStatus(c.Param("id"), patch.Status, patch.Resolution)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Maintenance request not found"})
		return
	}
	c.JSON(http.StatusOK, updated)
}
