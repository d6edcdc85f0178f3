// Package session is the single source of truth for who is acting, as what
// role, with what cached profile data. It owns the persisted session keys;
// no other component writes them.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cepdnaclk/e22-co2060-Syncro/internal/api"
	"github.com/cepdnaclk/e22-co2060-Syncro/internal/logging"
	"github.com/cepdnaclk/e22-co2060-Syncro/internal/storage"
)

// Role is the active acting side for the session.
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
)

// parseRole coerces anything that isn't a known role to buyer.
func parseRole(s string) Role {
	if Role(s) == RoleSeller {
		return RoleSeller
	}
	return RoleBuyer
}

// Persisted key names. These are a compatibility contract with earlier
// clients; do not rename.
const (
	keyAuth            = "syncro_auth"
	keyToken           = "syncro_token"
	keyUser            = "syncro_user"
	keyRole            = "syncro_role"
	keyUserProfile     = "syncro_userProfile"
	keyBusinessProfile = "syncro_businessProfile"
	keyTheme           = "theme"
)

// AuthUser is the authenticated identity. Present iff logged in.
type AuthUser struct {
	UserID    int    `json:"userId"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	Role      Role   `json:"role"`
	Token     string `json:"token"`
}

// UserProfile is the locally editable personal-info cache. Saves replace it
// wholesale; nothing is merged field by field.
type UserProfile struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Bio       string `json:"bio,omitempty"`
}

// Review is one buyer review on a business profile.
type Review struct {
	ID            string `json:"id"`
	Rating        int    `json:"rating"`
	Comment       string `json:"comment"`
	BuyerName     string `json:"buyerName"`
	BuyerInitials string `json:"buyerInitials"`
	Date          string `json:"date"`
	OrderID       string `json:"orderId"`
}

// BusinessProfile exists once the user completes seller onboarding.
type BusinessProfile struct {
	Name        string   `json:"name"`
	Initials    string   `json:"initials"`
	Rating      float64  `json:"rating"`
	ReviewCount int      `json:"reviewCount"`
	Email       string   `json:"email,omitempty"`
	Phone       string   `json:"phone,omitempty"`
	Description string   `json:"description,omitempty"`
	Website     string   `json:"website,omitempty"`
	Address     string   `json:"address,omitempty"`
	Category    string   `json:"category,omitempty"`
	Logo        string   `json:"logo,omitempty"`
	CoverImage  string   `json:"coverImage,omitempty"`
	Gallery     []string `json:"gallery,omitempty"`
	Categories  []string `json:"categories,omitempty"`
	ServiceTags []string `json:"serviceTags,omitempty"`
	Reviews     []Review `json:"reviews,omitempty"`
}

// DefaultSellerRating seeds a new business profile until real reviews exist.
const DefaultSellerRating = 4.5

func defaultUserProfile() UserProfile {
	return UserProfile{
		FirstName: "Alex",
		LastName:  "Rivera",
		Email:     "alex.rivera@example.com",
		Phone:     "+1 (555) 123-4567",
		Bio:       "Passionate about connecting buyers and sellers on Syncro.",
	}
}

// Gateway is the slice of the API client the session store needs.
// *api.Client satisfies it.
type Gateway interface {
	Login(ctx context.Context, email, password string) (*api.AuthResponse, error)
	Register(ctx context.Context, req api.RegisterRequest) (*api.AuthResponse, error)
	ToggleRole(ctx context.Context, token string) (*api.AuthResponse, error)
}

// ErrToggleInFlight is returned when a role toggle is requested while a
// previous one has not resolved. Toggles are not idempotent, so callers must
// not double-fire.
var ErrToggleInFlight = errors.New("role toggle already in progress")

// ErrNoSellerProfile is returned when a review is added before seller
// onboarding.
var ErrNoSellerProfile = errors.New("no business profile")

// Store holds session state and keeps it durable across restarts.
type Store struct {
	mu sync.Mutex
	kv storage.Store
	gw Gateway

	busy   bool // a toggle is in flight
	closed bool

	authUser        *AuthUser
	role            Role
	theme           string
	userProfile     UserProfile
	businessProfile *BusinessProfile
}

// New loads persisted session state. Malformed persisted values are logged
// and fall back to defaults; they never fail construction.
func New(kv storage.Store, gw Gateway) *Store {
	s := &Store{
		kv:          kv,
		gw:          gw,
		role:        RoleBuyer,
		theme:       "light",
		userProfile: defaultUserProfile(),
	}
	s.load()
	return s
}

func (s *Store) load() {
	if raw, err := s.kv.Get(keyRole); err == nil {
		s.role = parseRole(raw)
	}
	if raw, err := s.kv.Get(keyTheme); err == nil && raw != "" {
		s.theme = raw
	}
	if raw, err := s.kv.Get(keyUserProfile); err == nil {
		var p UserProfile
		if err := json.Unmarshal([]byte(raw), &p); err == nil {
			s.userProfile = p
		} else {
			logging.SessionWarn("discarding malformed user profile: %v", err)
		}
	}
	if raw, err := s.kv.Get(keyBusinessProfile); err == nil {
		var p BusinessProfile
		if err := json.Unmarshal([]byte(raw), &p); err == nil {
			s.businessProfile = &p
		} else {
			logging.SessionWarn("discarding malformed business profile: %v", err)
		}
	}

	// Logged in only when both the token and the auth-user record survive.
	token, err := s.kv.Get(keyToken)
	if err != nil || token == "" {
		return
	}
	raw, err := s.kv.Get(keyUser)
	if err != nil {
		s.dropStaleCredentials()
		return
	}
	var u AuthUser
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		logging.SessionWarn("discarding malformed auth user: %v", err)
		s.dropStaleCredentials()
		return
	}
	u.Token = token
	u.Role = parseRole(string(u.Role))
	s.authUser = &u
	logging.Session("restored session for user %d as %s", u.UserID, s.role)
}

// dropStaleCredentials removes an orphaned bearer token so storage never
// claims a session the store will not restore.
func (s *Store) dropStaleCredentials() {
	for _, key := range []string{keyAuth, keyToken, keyUser} {
		if err := s.kv.Remove(key); err != nil {
			logging.SessionWarn("failed to clear stale %s: %v", key, err)
		}
	}
}

// Close marks the store torn down. In-flight operation results are dropped
// instead of mutating dead state.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

// --- accessors ---

// IsLoggedIn reports whether an authenticated identity is present.
func (s *Store) IsLoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authUser != nil
}

// AuthUser returns a copy of the authenticated identity, or nil.
func (s *Store) AuthUser() *AuthUser {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.authUser == nil {
		return nil
	}
	u := *s.authUser
	return &u
}

// Token returns the current bearer token, or "" when logged out.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.authUser == nil {
		return ""
	}
	return s.authUser.Token
}

// Role returns the active acting role.
func (s *Store) Role() Role {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.role
}

// Theme returns the persisted theme preference.
func (s *Store) Theme() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// UserProfile returns the cached personal profile.
func (s *Store) UserProfile() UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userProfile
}

// BusinessProfile returns a deep-enough copy of the seller profile, or nil.
func (s *Store) BusinessProfile() *BusinessProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.businessProfile == nil {
		return nil
	}
	p := *s.businessProfile
	p.Reviews = append([]Review(nil), s.businessProfile.Reviews...)
	p.Gallery = append([]string(nil), s.businessProfile.Gallery...)
	p.Categories = append([]string(nil), s.businessProfile.Categories...)
	p.ServiceTags = append([]string(nil), s.businessProfile.ServiceTags...)
	return &p
}

// HasSellerProfile reports whether seller onboarding has been completed.
func (s *Store) HasSellerProfile() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.businessProfile != nil
}

// --- mutations ---

// Login authenticates against the auth gateway. The active role comes from
// the server's asserted role; anything other than "seller" acts as buyer.
func (s *Store) Login(ctx context.Context, email, password string) error {
	resp, err := s.gw.Login(ctx, email, password)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	return s.applyAuth(resp, email, parseRole(resp.Role), nil)
}

// Register creates an account. New accounts always start as buyers no matter
// what the server returns, and the user profile is replaced wholesale with
// the submitted names.
func (s *Store) Register(ctx context.Context, email, password, firstName, lastName string) error {
	resp, err := s.gw.Register(ctx, api.RegisterRequest{
		Email:     email,
		Password:  password,
		FirstName: firstName,
		LastName:  lastName,
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	profile := UserProfile{FirstName: firstName, LastName: lastName, Email: email}
	return s.applyAuth(resp, email, RoleBuyer, &profile)
}

// applyAuth installs a fresh identity from a gateway token response.
// Callers hold the lock.
func (s *Store) applyAuth(resp *api.AuthResponse, email string, role Role, profile *UserProfile) error {
	s.authUser = &AuthUser{
		UserID:    resp.UserID,
		Email:     email,
		FirstName: resp.FirstName,
		Role:      role,
		Token:     resp.AccessToken,
	}
	s.role = role
	if profile != nil {
		s.userProfile = *profile
	} else {
		s.userProfile.FirstName = resp.FirstName
		s.userProfile.Email = email
	}

	if err := s.persistAuth(); err != nil {
		return err
	}
	logging.Session("user %d logged in as %s", resp.UserID, role)
	return nil
}

func (s *Store) persistAuth() error {
	user, err := json.Marshal(s.authUser)
	if err != nil {
		return err
	}
	profile, err := json.Marshal(s.userProfile)
	if err != nil {
		return err
	}
	if err := s.kv.Set(keyAuth, "true"); err != nil {
		return err
	}
	if err := s.kv.Set(keyToken, s.authUser.Token); err != nil {
		return err
	}
	if err := s.kv.Set(keyUser, string(user)); err != nil {
		return err
	}
	if err := s.kv.Set(keyRole, string(s.role)); err != nil {
		return err
	}
	return s.kv.Set(keyUserProfile, string(profile))
}

// Logout clears the identity and local caches. It does not touch the account
// server-side, and calling it while logged out is a no-op.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.authUser = nil
	s.role = RoleBuyer
	s.businessProfile = nil
	s.userProfile = defaultUserProfile()

	for _, key := range []string{keyAuth, keyToken, keyUser, keyUserProfile, keyBusinessProfile} {
		if err := s.kv.Remove(key); err != nil {
			return err
		}
	}
	if err := s.kv.Set(keyRole, string(RoleBuyer)); err != nil {
		return err
	}
	logging.Session("logged out")
	return nil
}

// ToggleRole flips the acting role through the auth gateway, which reissues
// the bearer token. The server is authoritative for role claims; the client
// never derives a role token itself. A no-op when logged out. Returns
// ErrToggleInFlight instead of double-firing: toggling is not idempotent.
func (s *Store) ToggleRole(ctx context.Context) error {
	s.mu.Lock()
	if s.authUser == nil {
		s.mu.Unlock()
		return nil
	}
	if s.busy {
		s.mu.Unlock()
		return ErrToggleInFlight
	}
	s.busy = true
	token := s.authUser.Token
	s.mu.Unlock()

	resp, err := s.gw.ToggleRole(ctx, token)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
	if err != nil {
		return err
	}
	if s.closed || s.authUser == nil {
		// Resolved after teardown or logout; drop the result.
		return nil
	}

	newRole := resp.ActiveRole
	if newRole == "" {
		newRole = resp.Role
	}
	s.role = parseRole(newRole)
	s.authUser.Role = s.role
	s.authUser.Token = resp.AccessToken

	user, merr := json.Marshal(s.authUser)
	if merr != nil {
		return merr
	}
	if err := s.kv.Set(keyToken, s.authUser.Token); err != nil {
		return err
	}
	if err := s.kv.Set(keyUser, string(user)); err != nil {
		return err
	}
	if err := s.kv.Set(keyRole, string(s.role)); err != nil {
		return err
	}
	logging.Session("role toggled to %s", s.role)
	return nil
}

// SetUserProfile replaces the personal profile wholesale and persists it.
func (s *Store) SetUserProfile(p UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userProfile = p
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return s.kv.Set(keyUserProfile, string(raw))
}

// SetBusinessProfile replaces the seller profile wholesale and persists it.
// A zero review count gets the seeded default rating.
func (s *Store) SetBusinessProfile(p BusinessProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.Initials == "" {
		p.Initials = initials(p.Name)
	}
	if len(p.Reviews) == 0 && p.Rating == 0 {
		p.Rating = DefaultSellerRating
	}
	s.businessProfile = &p
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return s.kv.Set(keyBusinessProfile, string(raw))
}

// AddReview appends a buyer review and recomputes the profile rating as the
// arithmetic mean of all review ratings.
func (s *Store) AddReview(rating int, comment, buyerName, orderID string) (*Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.businessProfile == nil {
		return nil, ErrNoSellerProfile
	}

	review := Review{
		ID:            uuid.NewString(),
		Rating:        rating,
		Comment:       comment,
		BuyerName:     buyerName,
		BuyerInitials: initials(buyerName),
		Date:          time.Now().Format("Jan 2, 2006"),
		OrderID:       orderID,
	}
	s.businessProfile.Reviews = append(s.businessProfile.Reviews, review)
	s.businessProfile.ReviewCount = len(s.businessProfile.Reviews)

	sum := 0
	for _, r := range s.businessProfile.Reviews {
		sum += r.Rating
	}
	s.businessProfile.Rating = float64(sum) / float64(len(s.businessProfile.Reviews))

	raw, err := json.Marshal(s.businessProfile)
	if err != nil {
		return nil, err
	}
	if err := s.kv.Set(keyBusinessProfile, string(raw)); err != nil {
		return nil, err
	}
	return &review, nil
}

// SetTheme persists the theme preference. Applying it to the render surface
// is the view layer's job.
func (s *Store) SetTheme(theme string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = theme
	return s.kv.Set(keyTheme, theme)
}

// initials builds up to two uppercase initials from a display name.
func initials(name string) string {
	var out []rune
	for _, word := range strings.Fields(name) {
		out = append(out, []rune(strings.ToUpper(word))[0])
		if len(out) == 2 {
			break
		}
	}
	return string(out)
}
