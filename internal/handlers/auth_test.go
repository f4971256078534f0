package handlers_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
	"yatube/internal/db"
	"yatube/internal/models"
	"yatube/internal/utils"
)

func TestSignupCreatesUserAndLogsIn(t *testing.T) {
	r, _ := setupServer(t)

	form := url.Values{
		"username":  {"leo"},
		"email":     {"leo@example.com"},
		"password":  {"secret123"},
		"password2": {"secret123"},
	}
	w := doPost(r, "/auth/signup", form, nil)

	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/" {
		t.Errorf("Location = %s, want /", loc)
	}

	var user models.User
	if err := db.DB.Where("username = ?", "leo").First(&user).Error; err != nil {
		t.Fatalf("user not created: %v", err)
	}
	// 密码存哈希，不存明文
	if user.Password == "secret123" || !utils.CheckPasswordHash("secret123", user.Password) {
		t.Errorf("password not hashed properly")
	}

	// 注册即登录，带着 cookie 能进受保护页面
	cookies := w.Result().Cookies()
	created := doGet(r, "/create", cookies)
	if created.Code != http.StatusOK {
		t.Errorf("GET /create after signup: status = %d, want 200", created.Code)
	}
}

func TestSignupPasswordMismatchRedisplays(t *testing.T) {
	r, _ := setupServer(t)

	form := url.Values{
		"username":  {"leo"},
		"email":     {"leo@example.com"},
		"password":  {"secret123"},
		"password2": {"secret456"},
	}
	w := doPost(r, "/auth/signup", form, nil)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "(Password2)") {
		t.Errorf("body = %s, want Password2 error marker", w.Body.String())
	}

	var count int64
	db.DB.Model(&models.User{}).Count(&count)
	if count != 0 {
		t.Errorf("user count = %d, want 0", count)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	r, _ := setupServer(t)
	createUser(t, "leo")

	form := url.Values{"username": {"leo"}, "password": {"wrong"}}
	w := doPost(r, "/auth/login", form, nil)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if !strings.Contains(w.Body.String(), "用户名或密码错误") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestLoginRedirectsToNext(t *testing.T) {
	r, _ := setupServer(t)
	createUser(t, "leo")

	form := url.Values{
		"username": {"leo"},
		"password": {testPassword},
		"next":     {"/create"},
	}
	w := doPost(r, "/auth/login", form, nil)

	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/create" {
		t.Errorf("Location = %s, want /create", loc)
	}
}

func TestLoginRejectsExternalNext(t *testing.T) {
	r, _ := setupServer(t)
	createUser(t, "leo")

	form := url.Values{
		"username": {"leo"},
		"password": {testPassword},
		"next":     {"https://evil.example.com/"},
	}
	w := doPost(r, "/auth/login", form, nil)

	if loc := w.Header().Get("Location"); loc != "/" {
		t.Errorf("Location = %s, want /", loc)
	}
}

func TestShowLoginCarriesNextParam(t *testing.T) {
	r, _ := setupServer(t)

	w := doGet(r, "/auth/login?next=%2Ffollow", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "next:/follow") {
		t.Errorf("body = %s, want next:/follow", w.Body.String())
	}
}

func TestLogoutClearsSession(t *testing.T) {
	r, _ := setupServer(t)
	createUser(t, "leo")
	cookies := login(t, r, "leo")

	w := doGet(r, "/auth/logout", cookies)
	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", w.Code)
	}

	// 退出后的 cookie 不再能进受保护页面
	after := w.Result().Cookies()
	guarded := doGet(r, "/create", after)
	if guarded.Code != http.StatusFound {
		t.Errorf("GET /create after logout: status = %d, want 302 to login", guarded.Code)
	}
}

func TestEditProfileByOwner(t *testing.T) {
	r, _ := setupServer(t)
	user := createUser(t, "leo")
	cookies := login(t, r, "leo")

	form := url.Values{
		"username":   {"leo"},
		"email":      {"leo@example.com"},
		"first_name": {"Лев"},
		"last_name":  {"Толстой"},
		"birth_date": {"1828-09-09"},
	}
	w := doPost(r, "/profile/leo/edit", form, cookies)

	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", w.Code)
	}

	var saved models.User
	db.DB.First(&saved, user.ID)
	if saved.FirstName != "Лев" || saved.LastName != "Толстой" {
		t.Errorf("unexpected user: %+v", saved)
	}
	if saved.BirthDate == nil || saved.BirthDate.Format("2006-01-02") != "1828-09-09" {
		t.Errorf("BirthDate = %v", saved.BirthDate)
	}
}

func TestEditProfileByOtherUserRedirects(t *testing.T) {
	r, _ := setupServer(t)
	target := createUser(t, "leo")
	createUser(t, "anna")
	cookies := login(t, r, "anna")

	form := url.Values{"username": {"hacked"}, "email": {"h@example.com"}}
	w := doPost(r, "/profile/leo/edit", form, cookies)

	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/profile/leo" {
		t.Errorf("Location = %s, want /profile/leo", loc)
	}

	var saved models.User
	db.DB.First(&saved, target.ID)
	if saved.Username != "leo" {
		t.Errorf("Username = %s, want unchanged", saved.Username)
	}
}

func TestAboutPages(t *testing.T) {
	r, _ := setupServer(t)

	if w := doGet(r, "/about/author", nil); w.Code != http.StatusOK {
		t.Errorf("/about/author status = %d, want 200", w.Code)
	}
	if w := doGet(r, "/about/tech", nil); w.Code != http.StatusOK {
		t.Errorf("/about/tech status = %d, want 200", w.Code)
	}
}

func TestNoRouteRenders404Page(t *testing.T) {
	r, _ := setupServer(t)

	w := doGet(r, "/no/such/page", nil)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
	if !strings.Contains(w.Body.String(), "error:") {
		t.Errorf("body = %s, want error page", w.Body.String())
	}
}
