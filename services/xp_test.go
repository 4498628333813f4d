package services

import (
	"testing"

	"github.com/alessandrolsdev/clutch/models"
	"github.com/alessandrolsdev/clutch/testhelpers"
)

func TestLevelForXP(t *testing.T) {
	cases := []struct {
		xp    int64
		level int
	}{
		{0, 1},
		{50, 1},
		{100, 1},
		{150, 1},
		{200, 2},
		{500, 5},
		{1500, 15},
		{5000, 50},
	}
	for _, tc := range cases {
		if got := LevelForXP(tc.xp); got != tc.level {
			t.Errorf("LevelForXP(%d) = %d, want %d", tc.xp, got, tc.level)
		}
	}
}

func TestGrantXPUpdatesStatsAndAuditTrail(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	user := testhelpers.CreateTestUser(t, db, "player", "player@clutch.gg", 190)

	if err := GrantXP(db, user.ID, ActionPostCreated, XPPostCreated); err != nil {
		t.Fatalf("GrantXP error: %v", err)
	}

	var stats models.UserStats
	if err := db.Where("user_id = ?", user.ID).First(&stats).Error; err != nil {
		t.Fatalf("failed to load stats: %v", err)
	}
	if stats.CurrentXP != 200 {
		t.Errorf("CurrentXP = %d, want 200", stats.CurrentXP)
	}
	if stats.Level != 2 {
		t.Errorf("Level = %d, want 2 (recomputed on grant)", stats.Level)
	}

	var logs []models.XpLog
	if err := db.Where("user_id = ?", user.ID).Find(&logs).Error; err != nil {
		t.Fatalf("failed to load xp logs: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("xp log count = %d, want 1", len(logs))
	}
	if logs[0].ActionType != ActionPostCreated || logs[0].XpAmount != 10 {
		t.Errorf("xp log = %s/%d, want POST_CREATED/10", logs[0].ActionType, logs[0].XpAmount)
	}
}

func TestGrantXPFailsWithoutStatsRow(t *testing.T) {
	db := testhelpers.SetupTestDB(t)

	if err := GrantXP(db, "no-such-user", ActionPostCreated, XPPostCreated); err == nil {
		t.Fatal("expected error for missing stats row")
	}
}
