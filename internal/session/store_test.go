package session

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/goleak"

	"github.com/cepdnaclk/e22-co2060-Syncro/internal/api"
	"github.com/cepdnaclk/e22-co2060-Syncro/internal/storage"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeGateway lets each test script the auth gateway.
type fakeGateway struct {
	loginFn    func(email, password string) (*api.AuthResponse, error)
	registerFn func(req api.RegisterRequest) (*api.AuthResponse, error)
	toggleFn   func(token string) (*api.AuthResponse, error)
}

func (f *fakeGateway) Login(_ context.Context, email, password string) (*api.AuthResponse, error) {
	return f.loginFn(email, password)
}

func (f *fakeGateway) Register(_ context.Context, req api.RegisterRequest) (*api.AuthResponse, error) {
	return f.registerFn(req)
}

func (f *fakeGateway) ToggleRole(_ context.Context, token string) (*api.AuthResponse, error) {
	return f.toggleFn(token)
}

func sellerLogin(token string) *fakeGateway {
	return &fakeGateway{
		loginFn: func(email, _ string) (*api.AuthResponse, error) {
			return &api.AuthResponse{AccessToken: token, TokenType: "bearer", UserID: 7, Role: "seller", FirstName: "Maya"}, nil
		},
	}
}

func TestLoginDerivesRoleFromServer(t *testing.T) {
	cases := []struct {
		serverRole string
		want       Role
	}{
		{"seller", RoleSeller},
		{"buyer", RoleBuyer},
		{"admin", RoleBuyer},
		{"", RoleBuyer},
	}
	for _, tc := range cases {
		t.Run(tc.serverRole, func(t *testing.T) {
			gw := &fakeGateway{loginFn: func(email, _ string) (*api.AuthResponse, error) {
				return &api.AuthResponse{AccessToken: "tok", UserID: 1, Role: tc.serverRole, FirstName: "A"}, nil
			}}
			s := New(storage.NewMemStore(), gw)
			if err := s.Login(context.Background(), "a@b.c", "pw"); err != nil {
				t.Fatalf("login: %v", err)
			}
			if got := s.Role(); got != tc.want {
				t.Errorf("role = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestLoginRoundTripSurvivesRestart(t *testing.T) {
	kv := storage.NewMemStore()
	s := New(kv, sellerLogin("tok-1"))
	if err := s.Login(context.Background(), "maya@syncro.app", "pw"); err != nil {
		t.Fatalf("login: %v", err)
	}

	restarted := New(kv, nil)
	u := restarted.AuthUser()
	if u == nil {
		t.Fatal("restarted store is logged out")
	}
	if u.UserID != 7 || u.Email != "maya@syncro.app" || u.FirstName != "Maya" || u.Token != "tok-1" {
		t.Errorf("unexpected auth user %+v", u)
	}
	if restarted.Role() != RoleSeller {
		t.Errorf("role = %s, want seller", restarted.Role())
	}
	if got := restarted.UserProfile(); got.FirstName != "Maya" || got.Email != "maya@syncro.app" {
		t.Errorf("user profile not seeded: %+v", got)
	}
}

func TestLoadFallsBackOnMalformedState(t *testing.T) {
	kv := storage.NewMemStore()
	kv.Set(keyAuth, "true")
	kv.Set(keyToken, "tok")
	kv.Set(keyUser, "{not json")
	kv.Set(keyRole, "superadmin")
	kv.Set(keyUserProfile, "[]")
	kv.Set(keyBusinessProfile, "nope")

	s := New(kv, nil)
	if s.IsLoggedIn() {
		t.Error("malformed auth user should load as logged out")
	}
	if s.Role() != RoleBuyer {
		t.Errorf("unknown role coerced to %s, want buyer", s.Role())
	}
	if got := s.UserProfile(); got.FirstName != "Alex" {
		t.Errorf("user profile should fall back to default, got %+v", got)
	}
	if s.HasSellerProfile() {
		t.Error("malformed business profile should load as absent")
	}
}

func TestMalformedUserClearsStaleCredentials(t *testing.T) {
	kv := storage.NewMemStore()
	kv.Set(keyAuth, "true")
	kv.Set(keyToken, "tok")
	kv.Set(keyUser, "{not json")

	s := New(kv, nil)
	if s.IsLoggedIn() {
		t.Fatal("malformed auth user should load as logged out")
	}
	// A token without a restorable user is an orphan; it must not survive
	// to the next startup.
	for _, key := range []string{keyAuth, keyToken, keyUser} {
		if _, err := kv.Get(key); err == nil {
			t.Errorf("stale %s left behind after discarding the auth user", key)
		}
	}

	// Same when the record is missing outright rather than malformed.
	kv = storage.NewMemStore()
	kv.Set(keyAuth, "true")
	kv.Set(keyToken, "tok")
	New(kv, nil)
	if _, err := kv.Get(keyToken); err == nil {
		t.Error("orphaned token left behind when no auth user exists")
	}
}

func TestRegisterAlwaysStartsAsBuyer(t *testing.T) {
	gw := &fakeGateway{registerFn: func(req api.RegisterRequest) (*api.AuthResponse, error) {
		// Even a misbehaving backend asserting seller must not stick.
		return &api.AuthResponse{AccessToken: "tok", UserID: 3, Role: "seller", FirstName: req.FirstName}, nil
	}}
	s := New(storage.NewMemStore(), gw)
	if err := s.Register(context.Background(), "new@syncro.app", "pw", "Nia", "Perera"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if s.Role() != RoleBuyer {
		t.Errorf("role = %s, want buyer", s.Role())
	}
	got := s.UserProfile()
	want := UserProfile{FirstName: "Nia", LastName: "Perera", Email: "new@syncro.app"}
	if got != want {
		t.Errorf("user profile = %+v, want %+v", got, want)
	}
}

func TestAuthErrorLeavesStateUntouched(t *testing.T) {
	gw := &fakeGateway{loginFn: func(_, _ string) (*api.AuthResponse, error) {
		return nil, &api.Error{StatusCode: 401, Detail: "Invalid credentials"}
	}}
	kv := storage.NewMemStore()
	s := New(kv, gw)

	err := s.Login(context.Background(), "a@b.c", "bad")
	if err == nil || err.Error() != "Invalid credentials" {
		t.Fatalf("want gateway message verbatim, got %v", err)
	}
	if s.IsLoggedIn() {
		t.Error("failed login must not authenticate")
	}
	if _, err := kv.Get(keyToken); !errors.Is(err, storage.ErrNotFound) {
		t.Error("failed login must not persist a token")
	}
}

func TestLogoutPostconditions(t *testing.T) {
	kv := storage.NewMemStore()
	s := New(kv, sellerLogin("tok"))
	if err := s.Login(context.Background(), "maya@syncro.app", "pw"); err != nil {
		t.Fatalf("login: %v", err)
	}
	s.SetBusinessProfile(BusinessProfile{Name: "Design Studio Pro"})

	for i := 0; i < 2; i++ { // second pass checks idempotence
		if err := s.Logout(); err != nil {
			t.Fatalf("logout #%d: %v", i+1, err)
		}
		if s.AuthUser() != nil || s.Role() != RoleBuyer || s.HasSellerProfile() {
			t.Fatalf("logout #%d postconditions violated", i+1)
		}
	}
	for _, key := range []string{keyAuth, keyToken, keyUser, keyBusinessProfile} {
		if _, err := kv.Get(key); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("key %s still persisted after logout", key)
		}
	}
}

func TestToggleRoleFlipsRoleAndToken(t *testing.T) {
	kv := storage.NewMemStore()
	gw := sellerLogin("tok-1")
	gw.toggleFn = func(token string) (*api.AuthResponse, error) {
		if token != "tok-1" {
			t.Errorf("toggle sent token %q, want tok-1", token)
		}
		return &api.AuthResponse{AccessToken: "tok-2", UserID: 7, Role: "seller", ActiveRole: "buyer", FirstName: "Maya"}, nil
	}
	s := New(kv, gw)
	if err := s.Login(context.Background(), "maya@syncro.app", "pw"); err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := s.ToggleRole(context.Background()); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if s.Role() != RoleBuyer {
		t.Errorf("role = %s, want buyer", s.Role())
	}
	if s.Token() != "tok-2" {
		t.Errorf("token = %s, want tok-2", s.Token())
	}
	if raw, err := kv.Get(keyToken); err != nil || raw != "tok-2" {
		t.Errorf("persisted token = %q (%v), want tok-2", raw, err)
	}
	if raw, _ := kv.Get(keyRole); raw != "buyer" {
		t.Errorf("persisted role = %q, want buyer", raw)
	}
}

func TestToggleRoleFailureLeavesStateUnchanged(t *testing.T) {
	gw := sellerLogin("tok-1")
	gw.toggleFn = func(string) (*api.AuthResponse, error) {
		return nil, &api.Error{StatusCode: 401, Detail: "Token expired"}
	}
	s := New(storage.NewMemStore(), gw)
	if err := s.Login(context.Background(), "maya@syncro.app", "pw"); err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := s.ToggleRole(context.Background()); err == nil {
		t.Fatal("want toggle error")
	}
	if s.Role() != RoleSeller || s.Token() != "tok-1" {
		t.Errorf("failed toggle mutated state: role=%s token=%s", s.Role(), s.Token())
	}
}

func TestToggleRoleWhileLoggedOutIsNoop(t *testing.T) {
	s := New(storage.NewMemStore(), &fakeGateway{toggleFn: func(string) (*api.AuthResponse, error) {
		t.Fatal("gateway must not be called while logged out")
		return nil, nil
	}})
	if err := s.ToggleRole(context.Background()); err != nil {
		t.Fatalf("toggle: %v", err)
	}
}

func TestToggleRoleRefusesToDoubleFire(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	gw := sellerLogin("tok-1")
	gw.toggleFn = func(string) (*api.AuthResponse, error) {
		close(started)
		<-release
		return &api.AuthResponse{AccessToken: "tok-2", Role: "seller", ActiveRole: "buyer"}, nil
	}
	s := New(storage.NewMemStore(), gw)
	if err := s.Login(context.Background(), "maya@syncro.app", "pw"); err != nil {
		t.Fatalf("login: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- s.ToggleRole(context.Background()) }()
	<-started

	if err := s.ToggleRole(context.Background()); !errors.Is(err, ErrToggleInFlight) {
		t.Errorf("second toggle = %v, want ErrToggleInFlight", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if s.Role() != RoleBuyer {
		t.Errorf("exactly one toggle should apply, role = %s", s.Role())
	}
}

func TestAddReviewRecomputesMeanRating(t *testing.T) {
	s := New(storage.NewMemStore(), nil)
	s.SetBusinessProfile(BusinessProfile{
		Name: "Design Studio Pro",
		Reviews: []Review{
			{ID: "r1", Rating: 4},
			{ID: "r2", Rating: 5},
		},
		ReviewCount: 2,
		Rating:      4.5,
	})

	review, err := s.AddReview(3, "Decent work", "Jordan Smith", "ORD-003")
	if err != nil {
		t.Fatalf("add review: %v", err)
	}
	if review.ID == "" || review.BuyerInitials != "JS" {
		t.Errorf("unexpected review %+v", review)
	}

	p := s.BusinessProfile()
	if p.ReviewCount != 3 {
		t.Errorf("review count = %d, want 3", p.ReviewCount)
	}
	if p.Rating != 4.0 {
		t.Errorf("rating = %v, want 4.0", p.Rating)
	}
}

func TestAddReviewWithoutProfile(t *testing.T) {
	s := New(storage.NewMemStore(), nil)
	if _, err := s.AddReview(5, "great", "A B", "ORD-001"); !errors.Is(err, ErrNoSellerProfile) {
		t.Fatalf("err = %v, want ErrNoSellerProfile", err)
	}
}

func TestSetThemeIsIdempotent(t *testing.T) {
	kv := storage.NewMemStore()
	s := New(kv, nil)
	for i := 0; i < 2; i++ {
		if err := s.SetTheme("dark"); err != nil {
			t.Fatalf("set theme #%d: %v", i+1, err)
		}
	}
	if raw, err := kv.Get(keyTheme); err != nil || raw != "dark" {
		t.Errorf("persisted theme = %q (%v), want dark", raw, err)
	}
	if New(kv, nil).Theme() != "dark" {
		t.Error("theme not restored after restart")
	}
}

func TestNewSellerProfileGetsSeededRating(t *testing.T) {
	s := New(storage.NewMemStore(), nil)
	if err := s.SetBusinessProfile(BusinessProfile{Name: "Design Studio Pro"}); err != nil {
		t.Fatalf("set profile: %v", err)
	}
	p := s.BusinessProfile()
	if p.Rating != DefaultSellerRating {
		t.Errorf("rating = %v, want seeded %v", p.Rating, DefaultSellerRating)
	}
	if p.Initials != "DS" {
		t.Errorf("initials = %q, want DS", p.Initials)
	}
}
