package management

import (
	"context"
	"errors"
	"fmt"

	"github.com/chrissnell/seasonswap/internal/store"
	"github.com/google/uuid"
)

// metaAuthToken is the store key of a generated token.
const metaAuthToken = "management_auth_token"

// generateAuthToken returns a standard UUID string with hyphens.
func generateAuthToken() string {
	return uuid.New().String()
}

// resolveAuthToken returns the configured token, or the one generated on an earlier start, or a
// new one. generated is set when the caller has to announce the token.
func resolveAuthToken(ctx context.Context, st *store.Store, configured string) (token string, generated bool, err error) {
	if configured != "" {
		return configured, false, nil
	}
	if st == nil {
		return generateAuthToken(), true, nil
	}

	token, err = st.Meta(ctx, metaAuthToken)
	switch {
	case err == nil && token != "":
		return token, false, nil
	case err != nil && !errors.Is(err, store.ErrNotFound):
		return "", false, fmt.Errorf("reading management token: %w", err)
	}

	token = generateAuthToken()
	if err := st.SetMeta(ctx, metaAuthToken, token); err != nil {
		return "", false, fmt.Errorf("saving management token: %w", err)
	}
	return token, true, nil
}
