package models

import "time"

type Platform string

const (
	Facebook  Platform = "facebook"
	Instagram Platform = "instagram"
	Twitter   Platform = "twitter"
	YouTube   Platform = "youtube"
	WhatsApp  Platform = "whatsapp"
	LinkedIn  Platform = "linkedin"
)

// AllPlatforms lists every platform a user can link, in display order.
var AllPlatforms = []Platform{Facebook, Instagram, Twitter, YouTube, WhatsApp, LinkedIn}

func ValidPlatform(p Platform) bool {
	for _, known := range AllPlatforms {
		if p == known {
			return true
		}
	}
	return false
}

type PostStatus string

const (
	StatusDraft     PostStatus = "draft"
	StatusScheduled PostStatus = "scheduled"
	StatusPublished PostStatus = "published"
)

func ValidStatus(s PostStatus) bool {
	return s == StatusDraft || s == StatusScheduled || s == StatusPublished
}

type Visibility string

const (
	VisibilityPublic  Visibility = "Public"
	VisibilityPrivate Visibility = "Private"
	VisibilityFriends Visibility = "Friends"
)

func ValidVisibility(v Visibility) bool {
	return v == VisibilityPublic || v == VisibilityPrivate || v == VisibilityFriends
}

type AuthProvider string

const (
	ProviderLocal  AuthProvider = "local"
	ProviderGoogle AuthProvider = "google"
)

type User struct {
	ID        string       `json:"id"`
	Username  string       `json:"username"`
	Email     string       `json:"email"`
	Password  string       `json:"-"`
	Name      string       `json:"name,omitempty"`
	Phone     string       `json:"phone,omitempty"`
	Timezone  string       `json:"timezone,omitempty"`
	PhotoURL  string       `json:"photo_url,omitempty"`
	Provider  AuthProvider `json:"provider"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

type Post struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	Content       string     `json:"content"`
	ImageURL      string     `json:"image_url,omitempty"`
	Tags          []string   `json:"tags"`
	Visibility    Visibility `json:"visibility"`
	Status        PostStatus `json:"status"`
	ScheduledDate *time.Time `json:"scheduled_date,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// PlatformConnection is one user's link to one external social network.
// Tokens are stored encrypted at rest and never serialized.
type PlatformConnection struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	Platform     Platform   `json:"platform"`
	IsConnected  bool       `json:"is_connected"`
	AccessToken  string     `json:"-"`
	RefreshToken string     `json:"-"`
	TokenExpires *time.Time `json:"token_expires,omitempty"`
	ProfileID    string     `json:"profile_id,omitempty"`
	ProfileName  string     `json:"profile_name,omitempty"`
	Scopes       []string   `json:"scopes,omitempty"`
	LastSynced   *time.Time `json:"last_synced,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type Preference struct {
	UserID          string    `json:"user_id"`
	Language        string    `json:"language"`
	Theme           string    `json:"theme"`
	Notifications   bool      `json:"notifications"`
	Autosave        bool      `json:"autosave"`
	DashboardLayout string    `json:"dashboard_layout"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// DefaultPreferences mirrors the values served when a user has never saved any.
func DefaultPreferences(userID string) *Preference {
	return &Preference{
		UserID:          userID,
		Language:        "English",
		Theme:           "Light",
		Notifications:   true,
		Autosave:        false,
		DashboardLayout: "Grid",
	}
}

type ShareResult struct {
	Platform Platform `json:"platform"`
	Success  bool     `json:"success"`
	Message  string   `json:"message"`
	PostID   string   `json:"post_id,omitempty"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type GoogleAuthRequest struct {
	Credential string `json:"credential"`
	Username   string `json:"username,omitempty"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type LinkAccountRequest struct {
	Platform     Platform   `json:"platform"`
	AccessToken  string     `json:"accessToken"`
	RefreshToken string     `json:"refreshToken,omitempty"`
	ProfileID    string     `json:"profileId"`
	ProfileName  string     `json:"profileName,omitempty"`
	Scopes       []string   `json:"scopes,omitempty"`
	TokenExpires *time.Time `json:"tokenExpires,omitempty"`
}

type DisconnectAccountRequest struct {
	Platform Platform `json:"platform"`
}

type ShareRequest struct {
	PostID    string     `json:"postId"`
	Platforms []Platform `json:"platforms"`
}

type QuickStat struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type WelcomeData struct {
	UserName       string `json:"userName"`
	ScheduledPosts int    `json:"scheduledPosts"`
}
