package middleware

// ContextKey is a private key type to avoid context collisions.
type ContextKey string

const (
	// UserIDCtxKey holds the authenticated user's id after JWTAuth ran.
	UserIDCtxKey = ContextKey("user_id")
)
