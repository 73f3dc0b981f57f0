package common

const (
	// AuthorizationHeaderName carries "Bearer <token>" on protected calls.
	AuthorizationHeaderName = "Authorization"

	// APIKeyHeaderName carries the raw shared secret when the server runs
	// with the api-key access policy.
	APIKeyHeaderName = "X-API-Key"

	// BearerScheme is the authorization scheme accepted by the bearer policy.
	BearerScheme = "Bearer"
)
