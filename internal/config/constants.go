package config

const (
	// DefaultStorePath is where the sqlite and bolt drivers keep client state
	DefaultStorePath = "./lexiclient.db"

	// DefaultAPIBaseURL is the public lexeme service
	DefaultAPIBaseURL = "https://lexeme-api.example.org/api/v1"
)
