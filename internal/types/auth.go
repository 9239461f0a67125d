package types

// Role is the authorization role carried by an access token
type Role string

const (
	// RoleAdmin is the only role issued today
	RoleAdmin Role = "admin"
)

const (
	HeaderAuthorization = "Authorization"
	HeaderRequestID     = "X-Request-ID"
)
