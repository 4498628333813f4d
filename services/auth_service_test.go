package services

import (
	"net/http"
	"testing"

	"github.com/alessandrolsdev/clutch/models"
	"github.com/alessandrolsdev/clutch/testhelpers"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func newAuthApp(db *gorm.DB) *fiber.App {
	app := fiber.New()
	svc := NewAuthService(db)
	app.Post("/users", svc.Register)
	app.Post("/login", svc.Login)
	return app
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	app := newAuthApp(db)

	body := map[string]string{"username": "FakerGod", "email": "faker@t1.gg", "password": "123456"}
	resp := doRequest(t, app, jsonRequest(t, "POST", "/users", body))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("first register status = %d, want 201", resp.StatusCode)
	}

	body["username"] = "FakerGod2"
	resp = doRequest(t, app, jsonRequest(t, "POST", "/users", body))
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("second register status = %d, want 409", resp.StatusCode)
	}

	var count int64
	db.Model(&models.User{}).Where("email = ?", "faker@t1.gg").Count(&count)
	if count != 1 {
		t.Errorf("user count = %d, want exactly 1", count)
	}
}

func TestRegisterCreatesProfileAndStats(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	app := newAuthApp(db)

	body := map[string]string{"username": "GeraltOfRivia", "email": "geralt@witcher.com", "password": "roach1"}
	resp := doRequest(t, app, jsonRequest(t, "POST", "/users", body))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register status = %d, want 201", resp.StatusCode)
	}

	var created struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	}
	decodeBody(t, resp, &created)
	if created.Username != "GeraltOfRivia" || created.ID == "" {
		t.Fatalf("unexpected register response: %+v", created)
	}

	var profile models.Profile
	if err := db.Where("user_id = ?", created.ID).First(&profile).Error; err != nil {
		t.Fatalf("profile row missing: %v", err)
	}
	if profile.DisplayName != "GeraltOfRivia" {
		t.Errorf("displayName = %q, want username default", profile.DisplayName)
	}

	var stats models.UserStats
	if err := db.Where("user_id = ?", created.ID).First(&stats).Error; err != nil {
		t.Fatalf("stats row missing: %v", err)
	}
	if stats.Level != 1 || stats.CurrentXP != 0 || stats.SocialEnergy != 100 {
		t.Errorf("stats = %+v, want level=1 xp=0 energy=100", stats)
	}

	var user models.User
	if err := db.First(&user, "id = ?", created.ID).Error; err != nil {
		t.Fatalf("user row missing: %v", err)
	}
	if user.PasswordHash == "roach1" {
		t.Error("password stored in plaintext")
	}
}

func TestLogin(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	app := newAuthApp(db)

	register := map[string]string{"username": "JinxChaos", "email": "jinx@zaun.net", "password": "powpow"}
	resp := doRequest(t, app, jsonRequest(t, "POST", "/users", register))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register status = %d, want 201", resp.StatusCode)
	}

	resp = doRequest(t, app, jsonRequest(t, "POST", "/login", map[string]string{
		"email": "jinx@zaun.net", "password": "powpow",
	}))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d, want 200", resp.StatusCode)
	}
	var result struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	}
	decodeBody(t, resp, &result)
	if result.Username != "JinxChaos" {
		t.Errorf("login username = %q, want JinxChaos", result.Username)
	}

	resp = doRequest(t, app, jsonRequest(t, "POST", "/login", map[string]string{
		"email": "jinx@zaun.net", "password": "wrong",
	}))
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("bad password status = %d, want 401", resp.StatusCode)
	}

	resp = doRequest(t, app, jsonRequest(t, "POST", "/login", map[string]string{
		"email": "nobody@zaun.net", "password": "powpow",
	}))
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("unknown email status = %d, want 401", resp.StatusCode)
	}
}
