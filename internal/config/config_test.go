package config

import (
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) string {
	return func(key string) string { return m[key] }
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(envMap(map[string]string{
		"DB_HOST":     "db.example.com",
		"DB_USER":     "app",
		"DB_PASSWORD": "secret",
	}))
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, VariantPushups, cfg.Variant)
	assert.Equal(t, "demo", cfg.DefaultUserID)
	assert.True(t, cfg.Bootstrap)
	assert.Equal(t, []string{"http://localhost:5173", "http://127.0.0.1:5173"}, cfg.CORSOrigins)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, "postgres", cfg.DB.Name)
	assert.Equal(t, "require", cfg.DB.SSLMode)
}

func TestLoadMissingRequired(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		missing string
	}{
		{"no host", map[string]string{"DB_USER": "u", "DB_PASSWORD": "p"}, "DB_HOST"},
		{"no user", map[string]string{"DB_HOST": "h", "DB_PASSWORD": "p"}, "DB_USER"},
		{"empty password", map[string]string{"DB_HOST": "h", "DB_USER": "u", "DB_PASSWORD": ""}, "DB_PASSWORD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(envMap(tt.env))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMissingEnv))
			assert.Contains(t, err.Error(), tt.missing)
		})
	}
}

func TestLoadDatabaseURLSkipsDiscreteVars(t *testing.T) {
	cfg, err := load(envMap(map[string]string{
		"DATABASE_URL": "postgres://u:p@localhost:5432/app?sslmode=disable",
	}))
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@localhost:5432/app?sslmode=disable", cfg.DB.DSN())
	assert.NotContains(t, cfg.DB.Redacted(), ":p@")
}

func TestLoadInvalidValues(t *testing.T) {
	base := map[string]string{"DB_HOST": "h", "DB_USER": "u", "DB_PASSWORD": "p"}

	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"port not a number", "DB_PORT", "abc"},
		{"port out of range", "DB_PORT", "70000"},
		{"unknown variant", "APP_VARIANT", "squats"},
		{"bootstrap not a bool", "DB_BOOTSTRAP", "maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := map[string]string{}
			for k, v := range base {
				env[k] = v
			}
			env[tt.key] = tt.val
			_, err := load(envMap(env))
			assert.Error(t, err)
		})
	}
}

func TestDSNEscapesPassword(t *testing.T) {
	d := DB{Host: "localhost", Port: 6543, Name: "elite", User: "app", Password: "p@ss:w/rd?", SSLMode: "disable"}

	u, err := url.Parse(d.DSN())
	require.NoError(t, err)

	pw, ok := u.User.Password()
	require.True(t, ok)
	assert.Equal(t, "p@ss:w/rd?", pw)
	assert.Equal(t, "localhost:6543", u.Host)
	assert.Equal(t, "/elite", u.Path)
	assert.Equal(t, "disable", u.Query().Get("sslmode"))
	assert.NotContains(t, d.Redacted(), "p@ss")
}
