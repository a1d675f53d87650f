package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/ccmercan/littlelemon-api/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&models.User{}, &models.Group{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func signToken(t *testing.T, secret string, userID uint) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestValidateToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	r := gin.New()
	r.GET("/whoami", ValidateToken, func(c *gin.Context) {
		id, _ := CurrentUserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": id})
	})

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"valid token", "Bearer " + signToken(t, "test-secret", 42), http.StatusOK},
		{"valid token without scheme", signToken(t, "test-secret", 42), http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + signToken(t, "other-secret", 42), http.StatusUnauthorized},
		{"garbage", "Bearer not-a-token", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != tt.want {
			t.Errorf("%s: status = %d, want %d", tt.name, w.Code, tt.want)
		}
	}
}

func TestResolveRole(t *testing.T) {
	db := newTestDB(t)

	managerGroup := models.Group{Name: models.GroupManager}
	deliveryGroup := models.Group{Name: models.GroupDeliveryCrew}
	db.Create(&managerGroup)
	db.Create(&deliveryGroup)

	customer := models.User{Username: "alice"}
	crew := models.User{Username: "carol", Groups: []models.Group{deliveryGroup}}
	boss := models.User{Username: "mallory", Groups: []models.Group{managerGroup, deliveryGroup}}
	for _, u := range []*models.User{&customer, &crew, &boss} {
		if err := db.Create(u).Error; err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}

	roleFor := func(userID uint) (models.Role, int) {
		r := gin.New()
		var got models.Role
		r.GET("/role", func(c *gin.Context) {
			c.Set(ctxUserID, userID)
		}, ResolveRole(db), func(c *gin.Context) {
			got = CurrentRole(c)
			c.Status(http.StatusOK)
		})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/role", nil))
		return got, w.Code
	}

	if role, code := roleFor(customer.ID); code != http.StatusOK || role != models.RoleCustomer {
		t.Errorf("customer: role %q code %d", role, code)
	}
	if role, code := roleFor(crew.ID); code != http.StatusOK || role != models.RoleDelivery {
		t.Errorf("crew: role %q code %d", role, code)
	}
	if role, code := roleFor(boss.ID); code != http.StatusOK || role != models.RoleManager {
		t.Errorf("manager: role %q code %d (manager group must win)", role, code)
	}
	if _, code := roleFor(999); code != http.StatusUnauthorized {
		t.Errorf("unknown user: code %d, want 401", code)
	}
}

func TestRequireRole(t *testing.T) {
	r := gin.New()
	r.GET("/admin", func(c *gin.Context) {
		c.Set(ctxRole, models.RoleDelivery)
	}, RequireRole(models.RoleManager), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	if w.Code != http.StatusForbidden {
		t.Errorf("delivery on manager route: status = %d, want 403", w.Code)
	}

	r2 := gin.New()
	r2.GET("/admin", func(c *gin.Context) {
		c.Set(ctxRole, models.RoleManager)
	}, RequireRole(models.RoleManager), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	w = httptest.NewRecorder()
	r2.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	if w.Code != http.StatusOK {
		t.Errorf("manager on manager route: status = %d, want 200", w.Code)
	}

	// No resolved role at all fails closed.
	r3 := gin.New()
	r3.GET("/admin", RequireRole(models.RoleManager), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	w = httptest.NewRecorder()
	r3.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	if w.Code != http.StatusForbidden {
		t.Errorf("missing role: status = %d, want 403", w.Code)
	}
}
