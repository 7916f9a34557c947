// Package auth provides authentication middleware for the REST API.
//
// APIKeyMiddleware(mode, header, key, next) validates the API key from the
// named HTTP header. When mode != "apikey" or key == "", all requests pass
// through (useful for local development with auth disabled).
package auth
