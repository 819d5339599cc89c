package branding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmbeddedValues(t *testing.T) {
	assert.Equal(t, "dpgen", CLIName())
	assert.Equal(t, ".dpgen", HomeDir())
	assert.Equal(t, "DPGEN", EnvPrefix())
	assert.NotEmpty(t, UserAgent())
}

func TestEnvVar(t *testing.T) {
	assert.Equal(t, "DPGEN_GITHUB_TOKEN", EnvVar("github_token"))
	assert.Equal(t, "DPGEN_HOME", EnvVar("HOME"))
}
