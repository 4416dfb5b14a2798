package common

const (
	// AuthHeaderName carries the bearer token on outbound API requests.
	AuthHeaderName = "Authorization"

	// Metadata keys for locally stored credentials.
	MetaKeyAPIToken = "api_token"
	MetaKeyBaseURL  = "base_url"
	MetaKeyAccount  = "account_email"
)
