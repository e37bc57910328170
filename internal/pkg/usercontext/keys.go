package usercontext

// Shared Locals/session keys used across controllers and middlewares
const (
	AuthKey          = "authenticated"
	KeyUserID        = "user_id"
	KeyUsername      = "username"
	KeyIsAdmin       = "isAdmin"
	KeyIsPremium     = "isPremium"
	KeyFromProtected = "from_protected"

	// KeyAPIKey holds the authenticated models.APIKey for tracking requests;
	// the owning developer is reachable through its DeveloperID field
	KeyAPIKey = "API_KEY"
)
