package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfile_Validate(t *testing.T) {
	vault := t.TempDir()

	t.Run("valid profile", func(t *testing.T) {
		p := &Profile{Mode: "dev", Vault: vault, Port: 8080}
		require.NoError(t, p.Validate())
		assert.Equal(t, vault, p.Vault)
	})

	t.Run("unknown mode defaults to dev", func(t *testing.T) {
		p := &Profile{Mode: "staging", Vault: vault, Port: 8080}
		require.NoError(t, p.Validate())
		assert.Equal(t, "dev", p.Mode)
		assert.True(t, p.IsDev())
	})

	t.Run("missing vault", func(t *testing.T) {
		p := &Profile{Mode: "dev", Port: 8080}
		assert.Error(t, p.Validate())
	})

	t.Run("nonexistent vault", func(t *testing.T) {
		p := &Profile{Mode: "dev", Vault: "/does/not/exist", Port: 8080}
		assert.Error(t, p.Validate())
	})

	t.Run("invalid port", func(t *testing.T) {
		p := &Profile{Mode: "dev", Vault: vault, Port: 0}
		assert.Error(t, p.Validate())

		p = &Profile{Mode: "dev", Vault: vault, Port: 70000}
		assert.Error(t, p.Validate())
	})

	t.Run("trailing slash trimmed", func(t *testing.T) {
		p := &Profile{Mode: "prod", Vault: vault + "/", Port: 8080}
		require.NoError(t, p.Validate())
		assert.Equal(t, vault, p.Vault)
		assert.False(t, p.IsDev())
	})
}

func TestProfile_FromEnv(t *testing.T) {
	t.Setenv("VAULTGRAPH_MODE", "prod")
	t.Setenv("VAULTGRAPH_VAULT", "/notes")
	t.Setenv("VAULTGRAPH_FILTER_ORPHANS", "true")

	p := &Profile{Mode: "dev"}
	p.FromEnv()

	assert.Equal(t, "prod", p.Mode)
	assert.Equal(t, "/notes", p.Vault)
	assert.True(t, p.FilterOrphans)
	assert.False(t, p.Watch)
}
