package domain

// TokenPair is what register and login return: a short-lived access token
// and a longer-lived refresh token, independently signed.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
