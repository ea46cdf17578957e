package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ems-dash/apiserver/types"
)

func reportRows() []types.Report {
	return []types.Report{
		{"meter_no": "5", "machine_name": "Compressor A", "kwh": "12.5"},
		{"meter_no": "7", "machine_name": "Boiler", "kwh": "40.0"},
		{"meter_no": nil, "machine_name": nil, "kwh": "1.0"},
	}
}

func loginCookie(t *testing.T, router http.Handler) *http.Cookie {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/login", jsonBody(`{"user_name":"alice","password":"pw123"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	cookie := authCookie(rec.Result())
	if cookie == nil {
		t.Fatalf("login did not set a cookie")
	}
	return cookie
}

func TestDashboardRequiresSession(t *testing.T) {
	router := newTestRouter(stubUserRepo{user: testUser()}, stubReportRepo{rows: reportRows()})

	req := httptest.NewRequest(http.MethodGet, "/api/ems-dashboard/data", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	var body MessageResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Message != "Not authenticated" {
		t.Fatalf("message = %q", body.Message)
	}
}

func TestDashboardRejectsInvalidToken(t *testing.T) {
	router := newTestRouter(stubUserRepo{user: testUser()}, stubReportRepo{rows: reportRows()})

	cases := map[string]string{}
	cases["tampered"] = "tampered.token.value"
	expired, err := issueToken(testUser(), testSecret, -time.Minute)
	if err != nil {
		t.Fatalf("issueToken() error: %v", err)
	}
	cases["expired"] = expired

	for name, value := range cases {
		req := httptest.NewRequest(http.MethodGet, "/api/ems-dashboard/data", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: value})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: status = %d, want 401", name, rec.Code)
		}
		var body MessageResponse
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("%s: decode response: %v", name, err)
		}
		if body.Message != "Invalid or expired token" {
			t.Fatalf("%s: message = %q", name, body.Message)
		}
	}
}

func TestDashboardWithSession(t *testing.T) {
	router := newTestRouter(stubUserRepo{user: testUser()}, stubReportRepo{rows: reportRows()})

	req := httptest.NewRequest(http.MethodGet, "/api/ems-dashboard/data", nil)
	req.AddCookie(loginCookie(t, router))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body DashboardResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !body.Success || body.Count != 3 || len(body.Data) != 3 {
		t.Fatalf("unexpected body: success=%v count=%d len=%d", body.Success, body.Count, len(body.Data))
	}
}

func TestDashboardStoreFailure(t *testing.T) {
	router := newTestRouter(stubUserRepo{user: testUser()}, stubReportRepo{err: errTest})

	req := httptest.NewRequest(http.MethodGet, "/api/ems-dashboard/data", nil)
	req.AddCookie(loginCookie(t, router))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["success"] != false || body["message"] != "Database query error" || body["error"] != errTest.Error() {
		t.Fatalf("unexpected error body: %v", body)
	}
}

func TestMeterWiseFiltered(t *testing.T) {
	router := newTestRouter(stubUserRepo{user: testUser()}, stubReportRepo{rows: reportRows()})

	req := httptest.NewRequest(http.MethodGet, "/api/get-data-meter-wise?meter_no=5", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["Success"] != true {
		t.Fatalf("Success = %v", body["Success"])
	}
	if body["meter_no"] != 5.0 {
		t.Fatalf("meter_no = %v, want 5", body["meter_no"])
	}
	if body["machineName"] != "Compressor A" {
		t.Fatalf("machineName = %v", body["machineName"])
	}
	if body["length"] != 1.0 {
		t.Fatalf("length = %v, want 1", body["length"])
	}
	data, ok := body["data"].([]any)
	if !ok || len(data) != 1 {
		t.Fatalf("data = %v", body["data"])
	}
}

func TestMeterWiseGrouped(t *testing.T) {
	router := newTestRouter(stubUserRepo{user: testUser()}, stubReportRepo{rows: reportRows()})

	req := httptest.NewRequest(http.MethodGet, "/api/get-data-meter-wise", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body GroupedResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !body.Success || len(body.Machines) != 3 {
		t.Fatalf("unexpected grouped body: %+v", body)
	}
	total := 0
	for _, m := range body.Machines {
		if !m.Success {
			t.Fatalf("group entry not marked successful: %+v", m)
		}
		total += m.Length
	}
	if total != len(reportRows()) {
		t.Fatalf("summed group lengths = %d, want %d", total, len(reportRows()))
	}
	if body.Machines[2].MachineName != "Unknown" {
		t.Fatalf("last group = %v, want Unknown", body.Machines[2].MachineName)
	}
}

func TestMeterWiseStoreFailure(t *testing.T) {
	router := newTestRouter(stubUserRepo{user: testUser()}, stubReportRepo{err: errTest})

	req := httptest.NewRequest(http.MethodGet, "/api/get-data-meter-wise", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["Success"] != false || body["message"] != "Database query error" {
		t.Fatalf("unexpected error body: %v", body)
	}
}

func TestPingOK(t *testing.T) {
	router := newTestRouter(stubUserRepo{}, stubReportRepo{pingRows: []types.Report{{"ok": int64(1)}}})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	rows, ok := body["ok"].([]any)
	if !ok || len(rows) != 1 {
		t.Fatalf("unexpected ping body: %v", body)
	}
}

func TestPingStoreFailure(t *testing.T) {
	router := newTestRouter(stubUserRepo{}, stubReportRepo{err: errTest})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["error"] != errTest.Error() {
		t.Fatalf("error = %q", body["error"])
	}
}
