package sessions

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
)

// refreshMargin is how long before expiry a cached token is replaced.
const refreshMargin = 5 * time.Minute

type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken always returns the same bearer token.
type StaticToken string

func (t StaticToken) Token(context.Context) (string, error) {
	return string(t), nil
}

type AzureTokenProvider struct {
	credential azcore.TokenCredential
	scope      string
	now        func() time.Time

	mu     sync.Mutex
	cached azcore.AccessToken
}

func NewAzureTokenProvider(credential azcore.TokenCredential) *AzureTokenProvider {
	return &AzureTokenProvider{
		credential: credential,
		scope:      TokenScope,
		now:        time.Now,
	}
}

// NewDefaultAzureTokenProvider resolves credentials the usual Azure way
// (environment, workload identity, managed identity, az CLI).
func NewDefaultAzureTokenProvider() (*AzureTokenProvider, error) {
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("azure credential: %w", err)
	}
	return NewAzureTokenProvider(cred), nil
}

func (p *AzureTokenProvider) Token(ctx context.Context) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cached.Token != "" && p.cached.ExpiresOn.After(p.now().Add(refreshMargin)) {
		return p.cached.Token, nil
	}

	tok, err := p.credential.GetToken(ctx, policy.TokenRequestOptions{Scopes: []string{p.scope}})
	if err != nil {
		return "", fmt.Errorf("get pool access token: %w", err)
	}
	p.cached = tok
	return tok.Token, nil
}
