package handlers

import (
	"testing"

	"greenspark/models"
)

func TestCompleteChallenge(t *testing.T) {
	app := setupApp(t)
	user := createUser(t, "Alice", "a@x.com", "pw1234", models.RoleStudent)
	token := tokenFor(t, user)

	challenge := models.Challenge{Title: "Plant a tree", Points: 60, Icon: "🌳"}
	mustCreate(t, &challenge)

	status, body := doJSON(t, app, "POST", "/api/challenges/complete", token, map[string]uint{
		"challengeId": challenge.ID,
	})
	wantStatus(t, status, 200, body)

	if got := body["ecoPoints"]; got != float64(60) {
		t.Errorf("ecoPoints = %v, want 60", got)
	}
	badges, _ := body["badges"].([]interface{})
	if len(badges) != 1 || badges[0] != "Eco Starter" {
		t.Errorf("badges = %v, want [Eco Starter]", badges)
	}
	unlocked, _ := body["unlocked"].([]interface{})
	if len(unlocked) != 1 || unlocked[0] != "Eco Starter" {
		t.Errorf("unlocked = %v, want [Eco Starter]", unlocked)
	}

	updated := reloadUser(t, user.ID)
	if updated.EcoPoints != 60 {
		t.Errorf("stored ecoPoints = %d, want 60", updated.EcoPoints)
	}
	if !updated.Completed.Contains(challenge.ID) {
		t.Error("challenge id missing from completed list")
	}
}

func TestCompleteChallengeTwiceFails(t *testing.T) {
	app := setupApp(t)
	user := createUser(t, "Alice", "a@x.com", "pw1234", models.RoleStudent)
	token := tokenFor(t, user)

	challenge := models.Challenge{Title: "Recycle", Points: 30}
	mustCreate(t, &challenge)

	status, body := doJSON(t, app, "POST", "/api/challenges/complete", token, map[string]uint{
		"challengeId": challenge.ID,
	})
	wantStatus(t, status, 200, body)

	status, body = doJSON(t, app, "POST", "/api/challenges/complete", token, map[string]uint{
		"challengeId": challenge.ID,
	})
	wantStatus(t, status, 400, body)
	if body["message"] != "Challenge already completed" {
		t.Errorf("message = %v", body["message"])
	}

	// state unchanged
	updated := reloadUser(t, user.ID)
	if updated.EcoPoints != 30 {
		t.Errorf("ecoPoints = %d, want 30", updated.EcoPoints)
	}
	if len(updated.Completed) != 1 {
		t.Errorf("completed = %v, want one entry", updated.Completed)
	}
}

func TestCompleteChallengeUnknownChallenge(t *testing.T) {
	app := setupApp(t)
	user := createUser(t, "Alice", "a@x.com", "pw1234", models.RoleStudent)
	token := tokenFor(t, user)

	status, body := doJSON(t, app, "POST", "/api/challenges/complete", token, map[string]uint{
		"challengeId": 9999,
	})
	wantStatus(t, status, 400, body)
	if body["message"] != "Invalid challenge" {
		t.Errorf("message = %v", body["message"])
	}
}

func TestBadgeUnlocksAreMonotonicAndCanStack(t *testing.T) {
	app := setupApp(t)
	user := createUser(t, "Alice", "a@x.com", "pw1234", models.RoleStudent)
	token := tokenFor(t, user)

	// one big completion jumps past three thresholds at once
	big := models.Challenge{Title: "Organize a cleanup drive", Points: 250}
	mustCreate(t, &big)

	status, body := doJSON(t, app, "POST", "/api/challenges/complete", token, map[string]uint{
		"challengeId": big.ID,
	})
	wantStatus(t, status, 200, body)

	unlocked, _ := body["unlocked"].([]interface{})
	if len(unlocked) != 3 {
		t.Fatalf("unlocked = %v, want all three badges", unlocked)
	}
	want := []string{"Eco Starter", "Eco Hero", "Eco Champion"}
	for i, name := range want {
		if unlocked[i] != name {
			t.Errorf("unlocked[%d] = %v, want %s", i, unlocked[i], name)
		}
	}

	// another completion must not duplicate any badge
	small := models.Challenge{Title: "Refill bottle", Points: 5}
	mustCreate(t, &small)

	status, body = doJSON(t, app, "POST", "/api/challenges/complete", token, map[string]uint{
		"challengeId": small.ID,
	})
	wantStatus(t, status, 200, body)

	badges, _ := body["badges"].([]interface{})
	if len(badges) != 3 {
		t.Errorf("badges = %v, want exactly three", badges)
	}
	unlocked, _ = body["unlocked"].([]interface{})
	if len(unlocked) != 0 {
		t.Errorf("unlocked = %v, want none", unlocked)
	}
}

func TestGetChallengesIsPublic(t *testing.T) {
	app := setupApp(t)
	mustCreate(t, &models.Challenge{Title: "Compost", Points: 20})

	status, list := doJSONList(t, app, "GET", "/api/challenges", "")
	if status != 200 {
		t.Fatalf("status = %d, want 200", status)
	}
	if len(list) != 1 {
		t.Errorf("challenges = %v, want one", list)
	}
}
