package common

// AuthorizationHeader is the HTTP header used to carry the bearer credential
// on outbound requests.
const AuthorizationHeader = "Authorization"

// BearerPrefix precedes the credential in the Authorization header.
const BearerPrefix = "Bearer "

// CredentialKey is the well-known key under which the single bearer
// credential is persisted in the local store.
const CredentialKey = "token"
