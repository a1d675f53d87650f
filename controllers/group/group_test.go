package groupControllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
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

func groupRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.GET("/groups/delivery-crew/users", ListGroupUsers(db, models.GroupDeliveryCrew))
	r.POST("/groups/delivery-crew/users", AddGroupUser(db, models.GroupDeliveryCrew))
	r.DELETE("/groups/delivery-crew/users/:user_id", RemoveGroupUser(db, models.GroupDeliveryCrew))
	return r
}

func doJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGroupMembershipLifecycle(t *testing.T) {
	db := newTestDB(t)
	user := models.User{Username: "carol"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	r := groupRouter(db)

	// The group is created lazily on first use; an empty one lists no users.
	w := doJSON(r, http.MethodGet, "/groups/delivery-crew/users", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	var users []models.User
	if err := json.Unmarshal(w.Body.Bytes(), &users); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(users) != 0 {
		t.Errorf("fresh group users = %d, want 0", len(users))
	}

	if w := doJSON(r, http.MethodPost, "/groups/delivery-crew/users", gin.H{"user_id": user.ID}); w.Code != http.StatusCreated {
		t.Fatalf("add status = %d: %s", w.Code, w.Body)
	}

	var loaded models.User
	if err := db.Preload("Groups").First(&loaded, user.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.Role() != models.RoleDelivery {
		t.Errorf("role after add = %q, want delivery", loaded.Role())
	}

	w = doJSON(r, http.MethodGet, "/groups/delivery-crew/users", nil)
	if err := json.Unmarshal(w.Body.Bytes(), &users); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(users) != 1 || users[0].Username != "carol" {
		t.Errorf("group users = %+v, want carol", users)
	}

	if w := doJSON(r, http.MethodDelete, "/groups/delivery-crew/users/1", nil); w.Code != http.StatusOK {
		t.Fatalf("remove status = %d", w.Code)
	}
	if err := db.Preload("Groups").First(&loaded, user.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.Role() != models.RoleCustomer {
		t.Errorf("role after remove = %q, want customer", loaded.Role())
	}
}

func TestAddUnknownUserToGroup(t *testing.T) {
	db := newTestDB(t)
	r := groupRouter(db)
	if w := doJSON(r, http.MethodPost, "/groups/delivery-crew/users", gin.H{"user_id": 42}); w.Code != http.StatusNotFound {
		t.Errorf("add unknown user status = %d, want 404", w.Code)
	}
}
