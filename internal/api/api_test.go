package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/veridian-dev/veridian/internal/account"
	"github.com/veridian-dev/veridian/pkg/normalize"
	"github.com/veridian-dev/veridian/pkg/validate"
)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	emails := validate.NewEmailValidator(validate.DefaultEmailLimits())
	h := &Handler{
		Emails:    emails,
		Passwords: validate.DefaultPasswordPolicy(),
		Records:   normalize.New(),
		Accounts:  account.NewService(account.NewRegistry(), emails, account.DefaultLimits()),
	}
	return NewRouter(h, nil)
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}

	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("Response was not JSON: %v (body %q)", err, w.Body.String())
	}
	return w, env
}

func TestHome(t *testing.T) {
	r := setupTestRouter()
	w, env := doJSON(t, r, "GET", "/", "")

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if env["success"] != true {
		t.Errorf("Expected success=true, got %v", env["success"])
	}
	data := env["data"].(map[string]any)
	if data["message"] != "Hello World from Veridian" {
		t.Errorf("Unexpected message: %v", data["message"])
	}
}

func TestHealth(t *testing.T) {
	r := setupTestRouter()
	w, env := doJSON(t, r, "GET", "/healthz", "")

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	data := env["data"].(map[string]any)
	if data["status"] != "ok" {
		t.Errorf("Expected status ok, got %v", data["status"])
	}
}

func TestGetItem(t *testing.T) {
	r := setupTestRouter()

	w, env := doJSON(t, r, "GET", "/api/items/42", "")
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	data := env["data"].(map[string]any)
	if data["item_id"] != float64(42) {
		t.Errorf("Expected item_id 42, got %v", data["item_id"])
	}

	w, env = doJSON(t, r, "GET", "/api/items/notanumber", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
	if env["success"] != false {
		t.Errorf("Expected success=false, got %v", env["success"])
	}
	if env["error"] == nil {
		t.Error("Expected error block on 400 response")
	}
}

func TestValidateEmailEndpoint(t *testing.T) {
	r := setupTestRouter()

	w, env := doJSON(t, r, "POST", "/api/validate/email", `{"email":"user@example.com"}`)
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	data := env["data"].(map[string]any)
	if data["valid"] != true {
		t.Errorf("Expected valid=true, got %v", data["valid"])
	}

	_, env = doJSON(t, r, "POST", "/api/validate/email", `{"email":"not-an-email"}`)
	data = env["data"].(map[string]any)
	if data["valid"] != false {
		t.Errorf("Expected valid=false, got %v", data["valid"])
	}
}

func TestValidatePasswordEndpoint(t *testing.T) {
	r := setupTestRouter()

	w, env := doJSON(t, r, "POST", "/api/validate/password", `{"password":"StrongPassword123!"}`)
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	data := env["data"].(map[string]any)
	if data["valid"] != true || data["strength"] != "strong" {
		t.Errorf("Unexpected assessment: %v", data)
	}
	if len(data["errors"].([]any)) != 0 {
		t.Errorf("Expected no errors, got %v", data["errors"])
	}

	_, env = doJSON(t, r, "POST", "/api/validate/password", `{"password":""}`)
	data = env["data"].(map[string]any)
	if data["valid"] != false {
		t.Errorf("Expected valid=false for empty password")
	}
	errs := data["errors"].([]any)
	if len(errs) != 1 || errs[0] != "Password is required" {
		t.Errorf("Unexpected errors: %v", errs)
	}
}

func TestNormalizeEndpoint(t *testing.T) {
	r := setupTestRouter()

	body := `[{"id":"1","name":"test item","description":"a b c","category":"CAT","tags":["  X  "]},{"id":"2"}]`
	w, env := doJSON(t, r, "POST", "/api/records/normalize", body)
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	data := env["data"].([]any)
	if len(data) != 1 {
		t.Fatalf("Expected 1 normalized record, got %d", len(data))
	}
	record := data[0].(map[string]any)
	if record["name"] != "Test Item" || record["category"] != "cat" {
		t.Errorf("Unexpected record: %v", record)
	}
	if record["word_count"] != float64(3) {
		t.Errorf("Expected word_count 3, got %v", record["word_count"])
	}

	meta := env["metadata"].(map[string]any)
	if meta["count"] != float64(1) || meta["has_more"] != false || meta["page"] != float64(1) {
		t.Errorf("Unexpected pagination metadata: %v", meta)
	}
}

func TestNormalizeEndpoint_NonArrayBody(t *testing.T) {
	r := setupTestRouter()

	w, _ := doJSON(t, r, "POST", "/api/records/normalize", `{"not":"an array"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestCreateAndFetchUser(t *testing.T) {
	r := setupTestRouter()

	w, env := doJSON(t, r, "POST", "/api/users", `{"name":"Alice","email":"alice@example.com","age":30}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d (body %v)", w.Code, env)
	}
	user := env["data"].(map[string]any)
	id, _ := user["id"].(string)
	if id == "" {
		t.Fatal("Expected a user id")
	}
	if user["role"] != "user" || user["active"] != true {
		t.Errorf("Unexpected user defaults: %v", user)
	}

	w, env = doJSON(t, r, "GET", "/api/users/"+id, "")
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	fetched := env["data"].(map[string]any)
	if fetched["email"] != "alice@example.com" {
		t.Errorf("Unexpected email: %v", fetched["email"])
	}

	w, env = doJSON(t, r, "GET", "/api/users", "")
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if list := env["data"].([]any); len(list) != 1 {
		t.Errorf("Expected 1 user, got %d", len(list))
	}

	w, _ = doJSON(t, r, "DELETE", "/api/users/"+id, "")
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	w, _ = doJSON(t, r, "GET", "/api/users/"+id, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 after delete, got %d", w.Code)
	}
}

func TestCreateUser_ValidationError(t *testing.T) {
	r := setupTestRouter()

	w, env := doJSON(t, r, "POST", "/api/users", `{"name":"Alice","email":"bad-email","age":30}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", w.Code)
	}

	errBlock := env["error"].(map[string]any)
	details := errBlock["details"].(map[string]any)
	if details["field"] != "email" {
		t.Errorf("Expected field=email in error details, got %v", details)
	}
}

func TestCreateUser_MissingFields(t *testing.T) {
	r := setupTestRouter()

	w, _ := doJSON(t, r, "POST", "/api/users", `{"age":30}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestUnknownRoute(t *testing.T) {
	r := setupTestRouter()

	w, env := doJSON(t, r, "GET", "/api/missing", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
	if env["success"] != false {
		t.Errorf("Expected success=false, got %v", env["success"])
	}
}

func TestEnvelopeShape(t *testing.T) {
	r := setupTestRouter()

	_, env := doJSON(t, r, "GET", "/healthz", "")

	for _, key := range []string{"success", "status_code", "message", "timestamp", "data", "metadata"} {
		if _, ok := env[key]; !ok {
			t.Errorf("Envelope missing %q", key)
		}
	}
	meta := env["metadata"].(map[string]any)
	if meta["version"] != "1.0" || meta["api_version"] != "v1" {
		t.Errorf("Unexpected metadata: %v", meta)
	}
	reqID, _ := meta["request_id"].(string)
	if !strings.HasPrefix(reqID, "req_") {
		t.Errorf("Unexpected request id: %q", reqID)
	}
	if meta["response_time"] == nil {
		t.Error("Expected response_time to be set by middleware")
	}
}
