package handlers

import (
	"fmt"
	"testing"

	"greenspark/models"
)

func seedChallenge(t *testing.T, title string, points int) models.Challenge {
	t.Helper()

	challenge := models.Challenge{
		Title:       title,
		Description: "desc",
		Points:      points,
		Icon:        "🌍",
	}
	mustCreate(t, &challenge)
	return challenge
}

func assign(t *testing.T, challenge models.Challenge, student, teacher models.User) models.Assignment {
	t.Helper()

	assignment := models.Assignment{
		ChallengeID:  challenge.ID,
		StudentID:    student.ID,
		AssignedByID: teacher.ID,
		Status:       models.AssignmentAssigned,
	}
	mustCreate(t, &assignment)
	return assignment
}

func TestTeacherRoutesRequireTeacherRole(t *testing.T) {
	app := setupApp(t)
	student := createUser(t, "Stu", "s@x.com", "pw1234", models.RoleStudent)

	status, body := doJSON(t, app, "GET", "/api/teacher/students", tokenFor(t, student), nil)
	wantStatus(t, status, 403, body)

	status, body = doJSON(t, app, "GET", "/api/teacher/students", "", nil)
	wantStatus(t, status, 401, body)
}

func TestGetStudentsListsOnlyStudents(t *testing.T) {
	app := setupApp(t)
	teacher := createUser(t, "Tea", "t@x.com", "pw1234", models.RoleTeacher)
	createUser(t, "Adm", "a@x.com", "pw1234", models.RoleAdmin)
	createUser(t, "Stu1", "s1@x.com", "pw1234", models.RoleStudent)
	createUser(t, "Stu2", "s2@x.com", "pw1234", models.RoleStudent)

	status, list := doJSONList(t, app, "GET", "/api/teacher/students", tokenFor(t, teacher))
	if status != 200 {
		t.Fatalf("status = %d", status)
	}
	if len(list) != 2 {
		t.Fatalf("students = %d, want 2", len(list))
	}
	for _, entry := range list {
		if _, leaked := entry["password"]; leaked {
			t.Error("password field leaked in student listing")
		}
	}
}

func TestCreateAssignment(t *testing.T) {
	app := setupApp(t)
	teacher := createUser(t, "Tea", "t@x.com", "pw1234", models.RoleTeacher)
	student := createUser(t, "Stu", "s@x.com", "pw1234", models.RoleStudent)
	challenge := seedChallenge(t, "Plant a tree", 50)
	token := tokenFor(t, teacher)

	payload := map[string]uint{"challengeId": challenge.ID, "studentId": student.ID}

	status, body := doJSON(t, app, "POST", "/api/teacher/assignments", token, payload)
	wantStatus(t, status, 201, body)
	if body["message"] != "Challenge assigned successfully." {
		t.Errorf("message = %v", body["message"])
	}

	// the (challenge, student) pair is unique
	status, body = doJSON(t, app, "POST", "/api/teacher/assignments", token, payload)
	wantStatus(t, status, 400, body)
	if body["message"] != "This challenge has already been assigned to this student." {
		t.Errorf("message = %v", body["message"])
	}

	status, body = doJSON(t, app, "POST", "/api/teacher/assignments", token,
		map[string]uint{"challengeId": 9999, "studentId": student.ID})
	wantStatus(t, status, 404, body)

	// teachers cannot be assigned challenges
	status, body = doJSON(t, app, "POST", "/api/teacher/assignments", token,
		map[string]uint{"challengeId": challenge.ID, "studentId": teacher.ID})
	wantStatus(t, status, 404, body)
}

func TestAssignmentLifecycle(t *testing.T) {
	app := setupApp(t)
	teacher := createUser(t, "Tea", "t@x.com", "pw1234", models.RoleTeacher)
	other := createUser(t, "Other", "o@x.com", "pw1234", models.RoleTeacher)
	student := createUser(t, "Stu", "s@x.com", "pw1234", models.RoleStudent)
	intruder := createUser(t, "Intruder", "i@x.com", "pw1234", models.RoleStudent)
	challenge := seedChallenge(t, "Recycle drive", 30)
	assignment := assign(t, challenge, student, teacher)

	completePath := fmt.Sprintf("/api/assignments/%d/complete", assignment.ID)
	verifyPath := fmt.Sprintf("/api/teacher/assignments/%d/verify", assignment.ID)

	// open assignments show up for the student
	status, list := doJSONList(t, app, "GET", "/api/assignments/my-assignments", tokenFor(t, student))
	if status != 200 || len(list) != 1 {
		t.Fatalf("my-assignments status=%d len=%d", status, len(list))
	}

	// cannot verify before the student completes
	status, body := doJSON(t, app, "PUT", verifyPath, tokenFor(t, teacher), nil)
	wantStatus(t, status, 400, body)

	// only the assigned student may complete
	status, body = doJSON(t, app, "PUT", completePath, tokenFor(t, intruder), nil)
	wantStatus(t, status, 403, body)

	status, body = doJSON(t, app, "PUT", completePath, tokenFor(t, student), nil)
	wantStatus(t, status, 200, body)

	// completing twice is rejected
	status, body = doJSON(t, app, "PUT", completePath, tokenFor(t, student), nil)
	wantStatus(t, status, 400, body)

	// completed assignments drop off the open list
	status, list = doJSONList(t, app, "GET", "/api/assignments/my-assignments", tokenFor(t, student))
	if status != 200 || len(list) != 0 {
		t.Fatalf("my-assignments after complete status=%d len=%d", status, len(list))
	}

	// only the assigning teacher may verify
	status, body = doJSON(t, app, "PUT", verifyPath, tokenFor(t, other), nil)
	wantStatus(t, status, 403, body)

	status, body = doJSON(t, app, "PUT", verifyPath, tokenFor(t, teacher), nil)
	wantStatus(t, status, 200, body)

	// verified is terminal
	status, body = doJSON(t, app, "PUT", verifyPath, tokenFor(t, teacher), nil)
	wantStatus(t, status, 400, body)
}

func TestGetAssignedStudentsIsDistinct(t *testing.T) {
	app := setupApp(t)
	teacher := createUser(t, "Tea", "t@x.com", "pw1234", models.RoleTeacher)
	other := createUser(t, "Other", "o@x.com", "pw1234", models.RoleTeacher)
	stu1 := createUser(t, "Stu1", "s1@x.com", "pw1234", models.RoleStudent)
	stu2 := createUser(t, "Stu2", "s2@x.com", "pw1234", models.RoleStudent)
	ch1 := seedChallenge(t, "Compost", 20)
	ch2 := seedChallenge(t, "Bike to school", 40)

	// two assignments for stu1, one for stu2, one by another teacher
	assign(t, ch1, stu1, teacher)
	assign(t, ch2, stu1, teacher)
	assign(t, ch1, stu2, other)

	status, list := doJSONList(t, app, "GET", "/api/teacher/assigned-students", tokenFor(t, teacher))
	if status != 200 {
		t.Fatalf("status = %d", status)
	}
	if len(list) != 1 {
		t.Fatalf("assigned students = %d, want 1", len(list))
	}
	if list[0]["name"] != "Stu1" {
		t.Errorf("name = %v, want Stu1", list[0]["name"])
	}

	status, list = doJSONList(t, app, "GET",
		fmt.Sprintf("/api/teacher/students/%d/assignments", stu1.ID), tokenFor(t, teacher))
	if status != 200 || len(list) != 2 {
		t.Fatalf("student assignments status=%d len=%d", status, len(list))
	}
}
