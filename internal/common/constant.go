package common

// SessionTokenHeaderName is the HTTP header used to carry the admin session
// token on requests to protected endpoints.
const SessionTokenHeaderName = "Authorization"

// SessionTokenScheme is the auth scheme expected in the session token header.
const SessionTokenScheme = "Bearer"
