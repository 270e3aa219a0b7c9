package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

type swaggerDoc struct {
	SecurityDefinitions map[string]json.RawMessage `json:"securityDefinitions"`
	Paths               map[string]map[string]struct {
		Security []map[string][]string `json:"security"`
	} `json:"paths"`
}

func TestDoc_ProtectedRoutesUseDeclaredScheme(t *testing.T) {
	raw, err := swag.ReadDoc()
	require.NoError(t, err)

	var doc swaggerDoc
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	require.Contains(t, doc.SecurityDefinitions, "BearerAuth")

	protected := map[string]string{
		"/users/logout":                 "post",
		"/users/change-password":        "post",
		"/users/update-account-details": "post",
		"/users/update-user-avatar":     "post",
		"/users/update-user-coverimage": "post",
		"/users/current-user":           "get",
	}

	for path, method := range doc.Paths {
		for verb, op := range method {
			if want, ok := protected[path]; ok && want == verb {
				require.Len(t, op.Security, 1, path)
				assert.Contains(t, op.Security[0], "BearerAuth", path)
				continue
			}
			assert.Empty(t, op.Security, "%s %s should be public", verb, path)
		}
	}
}
