package firestore

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"

	"github.com/custodia-labs/firetap-cli/internal/logger"
)

// scopes required for Firestore reads.
var scopes = []string{
	"https://www.googleapis.com/auth/cloud-platform",
	"https://www.googleapis.com/auth/datastore",
}

// Credentials selects one of the supported service-account credential forms.
// At most one field should be set; when all are empty, application-default
// credentials are used.
type Credentials struct {
	// Path is a service-account key file on disk.
	Path string
	// JSON is the key as an inline JSON string.
	JSON string
	// Base64 is the key as a base64-encoded JSON string.
	Base64 string
}

// Options converts the credentials into client options for the Firestore
// client. Returns nil options for application-default credentials.
func (c Credentials) Options(ctx context.Context) ([]option.ClientOption, error) {
	switch {
	case c.Base64 != "":
		logger.Info("using base64-encoded credentials")
		data, err := base64.StdEncoding.DecodeString(c.Base64)
		if err != nil {
			return nil, fmt.Errorf("decode base64 credentials: %w", err)
		}
		return tokenSourceOption(ctx, data)

	case c.JSON != "":
		logger.Info("using inline JSON credentials")
		return tokenSourceOption(ctx, []byte(c.JSON))

	case c.Path != "":
		logger.Info("using credentials from file: %s", c.Path)
		return []option.ClientOption{option.WithCredentialsFile(c.Path)}, nil

	default:
		logger.Info("using application-default credentials")
		return nil, nil
	}
}

// tokenSourceOption parses key JSON into a token source option.
func tokenSourceOption(ctx context.Context, data []byte) ([]option.ClientOption, error) {
	creds, err := google.CredentialsFromJSON(ctx, normalizeKeyJSON(data), scopes...)
	if err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	return []option.ClientOption{option.WithTokenSource(creds.TokenSource)}, nil
}

// normalizeKeyJSON fixes literal "\n" sequences in the private key, a common
// artefact of passing key JSON through environment variables. Unparseable
// input is returned unchanged and left for the credentials parser to reject.
func normalizeKeyJSON(data []byte) []byte {
	var key map[string]any
	if err := json.Unmarshal(data, &key); err != nil {
		return data
	}
	pk, ok := key["private_key"].(string)
	if !ok || !strings.Contains(pk, `\n`) {
		return data
	}
	key["private_key"] = strings.ReplaceAll(pk, `\n`, "\n")
	fixed, err := json.Marshal(key)
	if err != nil {
		return data
	}
	return fixed
}
