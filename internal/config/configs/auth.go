package configs

import "time"

// DefaultJWTSecret is the development signing secret. Deployments must
// override it through AUTH_JWT_SECRET.
const DefaultJWTSecret = "secret"

// Auth configures token signing and password hashing.
type Auth struct {
	// JWTSecret is the HMAC key used to sign bearer tokens.
	JWTSecret string `env:"JWT_SECRET" envDefault:"secret"`
	// JWTTTL is how long an issued token stays valid.
	JWTTTL time.Duration `env:"JWT_TTL" envDefault:"168h"`
	// BcryptCost is the bcrypt work factor used for new password hashes.
	BcryptCost int `env:"BCRYPT_COST" envDefault:"10"`
}

// UsesDefaultSecret reports whether the signing secret was left unset.
func (c Auth) UsesDefaultSecret() bool {
	return c.JWTSecret == DefaultJWTSecret
}
