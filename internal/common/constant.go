package common

// AuthorizationHeaderName is the HTTP header carrying the access token on
// authenticated requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix is the expected scheme prefix inside the Authorization header.
const BearerPrefix = "Bearer "

// OtpLength is the number of digits in a one-time code.
const OtpLength = 6
