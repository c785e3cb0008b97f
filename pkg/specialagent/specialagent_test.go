package specialagent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	params, err := Parse([]byte(`
email: ops@example.com
api_token: tok-123
account_id: acc-1
timeout: 60
dns: true
firewall: true
`))
	require.NoError(t, err)
	assert.Equal(t, "ops@example.com", params.Email)
	assert.Equal(t, "tok-123", params.APIToken)
	assert.Equal(t, "acc-1", params.AccountID)
	assert.Equal(t, 60, params.Timeout)
	assert.True(t, params.DNS)
	assert.True(t, params.Firewall)
	assert.False(t, params.CDNCache)
}

func TestParseRejectsMissingRequired(t *testing.T) {
	_, err := Parse([]byte(`email: ops@example.com`))
	assert.Error(t, err)

	_, err = Parse([]byte(`api_token: tok-123`))
	assert.Error(t, err)
}

func TestParseRejectsTimeoutOutOfRange(t *testing.T) {
	_, err := Parse([]byte(`
email: ops@example.com
api_token: tok-123
timeout: 900
`))
	assert.Error(t, err)
}

func TestParseMigratesLegacyKeys(t *testing.T) {
	params, err := Parse([]byte(`
email: ops@example.com
api-token: tok-hyphen
api_key: retired
`))
	require.NoError(t, err)
	assert.Equal(t, "tok-hyphen", params.APIToken)

	params, err = Parse([]byte(`
email: ops@example.com
auth:
  - api_token
  - tok-tuple
`))
	require.NoError(t, err)
	assert.Equal(t, "tok-tuple", params.APIToken)

	params, err = Parse([]byte(`
email: ops@example.com
auth:
  api_token: tok-nested
`))
	require.NoError(t, err)
	assert.Equal(t, "tok-nested", params.APIToken)
}

func TestCommandsFetchAll(t *testing.T) {
	params := &Params{
		Email:    "ops@example.com",
		APIToken: "tok-123",
		FetchAll: true,
		DNS:      true, // collapsed into --all
	}
	assert.Equal(t, []string{
		"--email", "ops@example.com",
		"--api-token", "tok-123",
		"--all",
	}, params.Commands())
}

func TestCommandsIndividualKinds(t *testing.T) {
	params := &Params{
		Email:     "ops@example.com",
		APIToken:  "tok-123",
		AccountID: "acc-1",
		Timeout:   60,
		CDNCache:  true,
		Firewall:  true,
		Gateway:   true,
		Verbose:   true,
	}
	assert.Equal(t, []string{
		"--email", "ops@example.com",
		"--api-token", "tok-123",
		"--account-id", "acc-1",
		"--timeout", "60",
		"--cdn-cache",
		"--firewall",
		"--gateway",
		"--verbose",
	}, params.Commands())
}
