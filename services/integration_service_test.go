package services

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/alessandrolsdev/clutch/models"
	"github.com/alessandrolsdev/clutch/testhelpers"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func newIntegrationApp(db *gorm.DB) *fiber.App {
	app := fiber.New()
	svc := NewIntegrationService(db)
	app.Post("/integrations", svc.LinkPlatform)
	return app
}

func TestLinkPlatformGrantsXPOnce(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	user := testhelpers.CreateTestUser(t, db, "linker", "linker@clutch.gg", 0)
	app := newIntegrationApp(db)

	resp := doRequest(t, app, jsonRequest(t, "POST", "/integrations", map[string]string{
		"userId": user.ID, "provider": "STEAM", "externalId": "76561198000000001",
	}))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("first link status = %d, want 201", resp.StatusCode)
	}

	var stats models.UserStats
	db.Where("user_id = ?", user.ID).First(&stats)
	if stats.CurrentXP != 20 {
		t.Errorf("CurrentXP after first link = %d, want 20", stats.CurrentXP)
	}

	// Re-link with a different id: refresh, no second grant.
	resp = doRequest(t, app, jsonRequest(t, "POST", "/integrations", map[string]string{
		"userId": user.ID, "provider": "STEAM", "externalId": "76561198000000002",
	}))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("re-link status = %d, want 201", resp.StatusCode)
	}

	db.Where("user_id = ?", user.ID).First(&stats)
	if stats.CurrentXP != 20 {
		t.Errorf("CurrentXP after re-link = %d, want still 20", stats.CurrentXP)
	}

	var integrations []models.PlatformIntegration
	db.Where("user_id = ?", user.ID).Find(&integrations)
	if len(integrations) != 1 {
		t.Fatalf("integration rows = %d, want 1", len(integrations))
	}
	if integrations[0].ExternalID != "76561198000000002" {
		t.Errorf("externalId = %q, want refreshed value", integrations[0].ExternalID)
	}
}

func TestLinkPlatformRefreshesSyncStamp(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	user := testhelpers.CreateTestUser(t, db, "linker", "linker@clutch.gg", 0)
	app := newIntegrationApp(db)

	stale := time.Now().Add(-48 * time.Hour)
	if err := db.Create(&models.PlatformIntegration{
		ID: "b2e1f8f4-0000-4000-8000-000000000001", UserID: user.ID,
		Provider: "STEAM", ExternalID: "76561198000000001", LastSyncedAt: stale,
	}).Error; err != nil {
		t.Fatalf("failed to seed integration: %v", err)
	}

	resp := doRequest(t, app, jsonRequest(t, "POST", "/integrations", map[string]string{
		"userId": user.ID, "provider": "STEAM", "externalId": "76561198000000001",
	}))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("re-link status = %d, want 201", resp.StatusCode)
	}

	var integration models.PlatformIntegration
	db.Where("user_id = ? AND provider = ?", user.ID, "STEAM").First(&integration)
	if !integration.LastSyncedAt.After(stale.Add(time.Hour)) {
		t.Errorf("lastSyncedAt = %v, want refreshed past %v", integration.LastSyncedAt, stale)
	}
}

func TestLinkPlatformAntiSmurf(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	owner := testhelpers.CreateTestUser(t, db, "owner", "owner@clutch.gg", 0)
	smurf := testhelpers.CreateTestUser(t, db, "smurf", "smurf@clutch.gg", 0)
	app := newIntegrationApp(db)

	resp := doRequest(t, app, jsonRequest(t, "POST", "/integrations", map[string]string{
		"userId": owner.ID, "provider": "RIOT", "externalId": "Faker#KR1",
	}))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("owner link status = %d, want 201", resp.StatusCode)
	}

	resp = doRequest(t, app, jsonRequest(t, "POST", "/integrations", map[string]string{
		"userId": smurf.ID, "provider": "RIOT", "externalId": "Faker#KR1",
	}))
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("smurf link status = %d, want 409", resp.StatusCode)
	}
	var body struct {
		Message string `json:"message"`
	}
	decodeBody(t, resp, &body)
	if !strings.Contains(body.Message, "RIOT") {
		t.Errorf("conflict message %q should name the provider", body.Message)
	}

	var stats models.UserStats
	db.Where("user_id = ?", smurf.ID).First(&stats)
	if stats.CurrentXP != 0 {
		t.Errorf("smurf XP = %d, want 0", stats.CurrentXP)
	}
}

func TestLinkPlatformValidation(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	user := testhelpers.CreateTestUser(t, db, "linker", "linker@clutch.gg", 0)
	app := newIntegrationApp(db)

	cases := []map[string]string{
		{"userId": user.ID, "provider": "ORIGIN", "externalId": "abc123"},
		{"userId": user.ID, "provider": "STEAM", "externalId": "ab"},
		{"userId": "not-a-uuid", "provider": "STEAM", "externalId": "abc123"},
	}
	for i, body := range cases {
		resp := doRequest(t, app, jsonRequest(t, "POST", "/integrations", body))
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("case %d status = %d, want 400", i, resp.StatusCode)
		}
	}
}
