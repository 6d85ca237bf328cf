package model

// TokenManager generates and validates session tokens.
type TokenManager interface {
	GenerateSessionToken(username string) (string, error)
	ParseSessionToken(token string) (username string, err error)
}
