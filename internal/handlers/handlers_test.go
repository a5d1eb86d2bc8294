package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/alexdev/portfolio-api/internal/content"
	"github.com/alexdev/portfolio-api/internal/editor"
	"github.com/alexdev/portfolio-api/internal/enquiry"
	"github.com/alexdev/portfolio-api/internal/handlers"
	"github.com/alexdev/portfolio-api/internal/mailer"
	"github.com/alexdev/portfolio-api/internal/middleware"
	"github.com/alexdev/portfolio-api/internal/models"
	"github.com/alexdev/portfolio-api/internal/notify"
	"github.com/alexdev/portfolio-api/internal/utils"
)

var dbSeq int64

const (
	testSecret   = "test-secret"
	testPassword = "correct horse"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:handlers_test_%d?mode=memory&cache=shared", atomic.AddInt64(&dbSeq, 1))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := gdb.AutoMigrate(&models.User{}, &models.SiteContent{}, &models.Enquiry{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	hashed, err := utils.HashPassword(testPassword)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	admin := models.User{
		Name:     "Admin",
		Email:    "admin@example.com",
		Password: hashed,
		Role:     models.RoleAdmin,
		IsActive: true,
	}
	if err := gdb.Create(&admin).Error; err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	broker := notify.NewMemoryBroker()
	store := content.NewStore(gdb, broker)
	t.Cleanup(store.Close)

	editorSvc := editor.NewService(store)
	enquirySvc := enquiry.NewService(gdb, &mailer.MailtoMailer{})

	authH := &handlers.AuthHandler{DB: gdb, JWTSecret: testSecret, Expires: 60}
	contentH := handlers.NewContentHandler(store)
	editorH := handlers.NewEditorHandler(editorSvc)
	enquiryH := handlers.NewEnquiryHandler(enquirySvc, store)

	app := fiber.New()
	api := app.Group("/api")

	api.Get("/content", contentH.Get)
	api.Post("/enquiries", enquiryH.Submit)
	api.Post("/auth/login", authH.Login)
	api.Post("/auth/logout", authH.Logout)

	protected := api.Group("/",
		middleware.JWTFromCookie(testSecret),
		middleware.AttachJWTLocals(),
	)
	protected.Get("/auth/me", authH.Me)

	adm := protected.Group("/admin", middleware.RequireRoles("admin"))
	adm.Get("/draft", editorH.Draft)
	adm.Post("/draft/save", editorH.Save)
	adm.Get("/enquiries", enquiryH.List)

	return app, gdb
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}, cookie string) *http.Response {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func decodeEnvelope(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func TestPublicContentServesSeed(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, "GET", "/api/content", nil, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	body := decodeEnvelope(t, resp)
	data, _ := body["data"].(map[string]interface{})
	profile, _ := data["profile"].(map[string]interface{})
	if profile["name"] != "Alex Dev" {
		t.Errorf("profile name = %v, want Alex Dev", profile["name"])
	}
}

func TestEnquirySubmitValidationBlocksWrite(t *testing.T) {
	app, gdb := newTestApp(t)

	resp := doJSON(t, app, "POST", "/api/enquiries", map[string]string{
		"name":  "Visitor",
		"email": "visitor@example.com",
	}, "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	resp.Body.Close()

	var count int64
	if err := gdb.Model(&models.Enquiry{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Errorf("blocked submission wrote %d rows", count)
	}

	resp = doJSON(t, app, "POST", "/api/enquiries", map[string]string{
		"name":    "Visitor",
		"email":   "visitor@example.com",
		"message": "Hello!",
	}, "")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestAdminRoutesRequireSession(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, "GET", "/api/admin/draft", nil, "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("no-cookie status = %d, want 401", resp.StatusCode)
	}
	resp.Body.Close()

	resp = doJSON(t, app, "GET", "/api/admin/draft", nil, "pf_token=garbage")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("bad-cookie status = %d, want 401", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestLoginFlow(t *testing.T) {
	app, _ := newTestApp(t)

	// wrong password and unknown account answer identically
	for _, creds := range []map[string]string{
		{"email": "admin@example.com", "password": "wrong"},
		{"email": "nobody@example.com", "password": testPassword},
	} {
		resp := doJSON(t, app, "POST", "/api/auth/login", creds, "")
		body := decodeEnvelope(t, resp)
		if body["success"] != false {
			t.Errorf("login %v should fail", creds)
		}
		if body["message"] != "Invalid email or password" {
			t.Errorf("message = %v, want the generic one", body["message"])
		}
	}

	resp := doJSON(t, app, "POST", "/api/auth/login", map[string]string{
		"email":    "Admin@Example.com",
		"password": testPassword,
	}, "")

	var cookie string
	for _, c := range resp.Cookies() {
		if c.Name == "pf_token" && c.Value != "" {
			cookie = "pf_token=" + c.Value
		}
	}
	body := decodeEnvelope(t, resp)
	if body["success"] != true {
		t.Fatalf("login failed: %v", body)
	}
	if cookie == "" {
		t.Fatal("no session cookie set on login")
	}

	// session observer sees the admin
	resp = doJSON(t, app, "GET", "/api/auth/me", nil, cookie)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("me status = %d", resp.StatusCode)
	}
	me := decodeEnvelope(t, resp)
	data, _ := me["data"].(map[string]interface{})
	if data["email"] != "admin@example.com" {
		t.Errorf("me email = %v", data["email"])
	}

	// and the admin area opens
	resp = doJSON(t, app, "GET", "/api/admin/draft", nil, cookie)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("draft status = %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestForeignIssuedTokenRejected(t *testing.T) {
	app, gdb := newTestApp(t)

	var admin models.User
	if err := gdb.First(&admin, "email = ?", "admin@example.com").Error; err != nil {
		t.Fatalf("load admin: %v", err)
	}

	// right secret, right claims shape, wrong issuer
	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, utils.Claims{
		UserID: admin.ID.String(),
		Role:   string(models.RoleAdmin),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	tok, err := foreign.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	resp := doJSON(t, app, "GET", "/api/admin/draft", nil, "pf_token="+tok)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("foreign-issuer status = %d, want 401", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestLogoutIsIdempotent(t *testing.T) {
	app, _ := newTestApp(t)

	for i := 0; i < 2; i++ {
		resp := doJSON(t, app, "POST", "/api/auth/logout", nil, "")
		body := decodeEnvelope(t, resp)
		if body["success"] != true {
			t.Errorf("logout %d failed: %v", i+1, body)
		}
	}
}

func TestSaveThenPublicRead(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, "POST", "/api/auth/login", map[string]string{
		"email":    "admin@example.com",
		"password": testPassword,
	}, "")
	var cookie string
	for _, c := range resp.Cookies() {
		if c.Name == "pf_token" {
			cookie = "pf_token=" + c.Value
		}
	}
	resp.Body.Close()
	if cookie == "" {
		t.Fatal("no session cookie")
	}

	resp = doJSON(t, app, "POST", "/api/admin/draft/save", nil, cookie)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("save status = %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = doJSON(t, app, "GET", "/api/content", nil, "")
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(raw), "Alex Dev") {
		t.Error("public content missing saved document")
	}
}
