package handlers_test

import (
	"net/http"
	"testing"

	"foodshare-api/config"
	"foodshare-api/models"
)

func TestRegisterDuplicateEmail(t *testing.T) {
	r := setup(t)

	body := `{"name":"Ada","email":"ada@example.com","password":"secret123","role":"student"}`
	w := do(t, r, http.MethodPost, "/api/auth/register", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	if decode(t, w)["user_id"] == nil {
		t.Fatal("missing user_id in register response")
	}

	w = do(t, r, http.MethodPost, "/api/auth/register", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
	if kind := decode(t, w)["error"]; kind != "duplicate_email" {
		t.Fatalf("expected duplicate_email kind got %v", kind)
	}
}

func TestRegisterRestaurantApprovalFlow(t *testing.T) {
	r := setup(t)

	body := `{"name":"Bela","email":"bela@bistro.com","password":"secret123","role":"restaurant","business_name":"Bela Bistro"}`
	w := do(t, r, http.MethodPost, "/api/auth/register", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	userID := uint(decode(t, w)["user_id"].(float64))

	// profile is created alongside the account
	var profile models.RestaurantProfile
	if err := config.DB.Where("owner_user_id = ?", userID).First(&profile).Error; err != nil {
		t.Fatalf("restaurant profile not created: %v", err)
	}
	if profile.Name != "Bela Bistro" {
		t.Fatalf("expected business name on profile got %q", profile.Name)
	}

	// login is gated until approval
	login := `{"email":"bela@bistro.com","password":"secret123"}`
	w = do(t, r, http.MethodPost, "/api/auth/login", login)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 before approval got %d", w.Code)
	}
	if kind := decode(t, w)["error"]; kind != "account_pending" {
		t.Fatalf("expected account_pending kind got %v", kind)
	}

	w = do(t, r, http.MethodPost, "/api/admin/approve", `{"user_id":`+itoa(userID)+`}`)
	if w.Code != http.StatusOK {
		t.Fatalf("approve failed: %d %s", w.Code, w.Body.String())
	}

	w = do(t, r, http.MethodPost, "/api/auth/login", login)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 after approval got %d body=%s", w.Code, w.Body.String())
	}
	user := decode(t, w)["user"].(map[string]any)
	if user["restaurant_name"] != "Bela Bistro" {
		t.Fatalf("expected restaurant_name in profile view got %v", user["restaurant_name"])
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	r := setup(t)
	seedUser(t, models.RoleStudent, models.VerificationUnverified, "cleo@example.com")

	w := do(t, r, http.MethodPost, "/api/auth/login", `{"email":"cleo@example.com","password":"wrongpass"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password got %d", w.Code)
	}

	w = do(t, r, http.MethodPost, "/api/auth/login", `{"email":"nobody@example.com","password":"secret123"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown email got %d", w.Code)
	}
}

func TestUpdateProfile(t *testing.T) {
	r := setup(t)
	user := seedUser(t, models.RoleStudent, models.VerificationUnverified, "dina@example.com")
	other := seedUser(t, models.RoleStudent, models.VerificationUnverified, "taken@example.com")

	w := do(t, r, http.MethodPut, "/api/auth/update", `{"user_id":999999,"name":"Ghost"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown user got %d", w.Code)
	}

	w = do(t, r, http.MethodPut, "/api/auth/update", `{"user_id":`+itoa(user.ID)+`,"name":"Dina Z","email":"dina.z@example.com"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	view := decode(t, w)["user"].(map[string]any)
	if view["name"] != "Dina Z" || view["email"] != "dina.z@example.com" {
		t.Fatalf("unexpected user view: %v", view)
	}

	// cannot steal another account's email
	w = do(t, r, http.MethodPut, "/api/auth/update", `{"user_id":`+itoa(user.ID)+`,"email":"`+other.Email+`"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate email got %d", w.Code)
	}
	if kind := decode(t, w)["error"]; kind != "duplicate_email" {
		t.Fatalf("expected duplicate_email kind got %v", kind)
	}
}
