package handlers_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"foodshare-api/config"
	"foodshare-api/handlers"
	"foodshare-api/models"
	"foodshare-api/notify"
	"foodshare-api/routes"
)

// setup wires the router against a fresh in-memory database.
func setup(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	config.DB = db
	handlers.Fanout = notify.NewStoreNotifier(db)

	r := gin.New()
	routes.SetupRoutes(r)
	return r
}

func do(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func itoa(v uint) string { return strconv.FormatUint(uint64(v), 10) }

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return out
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var out []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return out
}

func seedUser(t *testing.T, role models.UserRole, status models.VerificationStatus, email string) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user := models.User{
		Name:               "Test " + string(role),
		Email:              email,
		PasswordHash:       string(hash),
		Role:               role,
		VerificationStatus: status,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func seedRestaurant(t *testing.T, email, name string, lat, lng float64) (models.User, models.RestaurantProfile) {
	t.Helper()
	user := seedUser(t, models.RoleRestaurant, models.VerificationVerified, email)
	profile := models.RestaurantProfile{
		OwnerUserID: user.ID,
		Name:        name,
		Lat:         lat,
		Lng:         lng,
	}
	if err := config.DB.Create(&profile).Error; err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	return user, profile
}

func seedOffer(t *testing.T, restaurantID uint, typ models.OfferType, quantity int) models.Offer {
	t.Helper()
	rate := 0
	if typ == models.OfferDiscount {
		rate = 50
	}
	offer := models.Offer{
		RestaurantID:     restaurantID,
		Title:            "Leftover Special",
		Description:      "End of day surplus",
		Type:             typ,
		DiscountRate:     rate,
		OriginalQuantity: quantity,
		Quantity:         quantity,
		Status:           models.OfferActive,
	}
	if err := config.DB.Create(&offer).Error; err != nil {
		t.Fatalf("seed offer: %v", err)
	}
	return offer
}
