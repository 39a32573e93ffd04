package social

// AccessTokenCredential authenticates requests with an OAuth 2.0 access token sent as a bearer
// token.
type AccessTokenCredential struct {
	AccessToken string
}

func (c *AccessTokenCredential) isCredential() {}

// NewAccessTokenCredential creates a new AccessTokenCredential with the specified token.
func NewAccessTokenCredential(accessToken string) *AccessTokenCredential {
	return &AccessTokenCredential{
		AccessToken: accessToken,
	}
}

// DynamicAccessTokenCredential provides a way to authenticate using an access token that is
// fetched for every request, for example from a token source that refreshes it.
type DynamicAccessTokenCredential struct {
	Provider func() string
}

func (c *DynamicAccessTokenCredential) isCredential() {}

// Token returns the current access token.
func (c *DynamicAccessTokenCredential) Token() string {
	return c.Provider()
}

// NewDynamicAccessTokenCredential creates a new DynamicAccessTokenCredential with the specified provider function.
func NewDynamicAccessTokenCredential(provider func() string) *DynamicAccessTokenCredential {
	return &DynamicAccessTokenCredential{
		Provider: provider,
	}
}

// APIKeyCredential authenticates requests with an API key sent as the "key" query parameter.
// It only grants access to public data.
type APIKeyCredential struct {
	Key string
}

func (c *APIKeyCredential) isCredential() {}

// NewAPIKeyCredential creates a new APIKeyCredential with the specified key.
func NewAPIKeyCredential(key string) *APIKeyCredential {
	return &APIKeyCredential{
		Key: key,
	}
}

// Credential provides a way to authenticate with the server.
type Credential interface {
	isCredential()
}
