package common

// RequestIDHeaderName is the HTTP header carrying the request correlation id.
const RequestIDHeaderName = "X-Request-ID"

// LandingRoute is where the client navigates after a successful login.
const LandingRoute = "/HomePaciente"
