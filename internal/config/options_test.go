package config

import (
	"bytes"
	stderrors "errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wagiedev/weather-mcp-go/internal/errors"
)

func envMap(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestNormalizeInitPolicy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "alias lenient", in: "lenient", want: "auto"},
		{name: "alias require", in: "require", want: "strict"},
		{name: "canonical unchanged", in: "strict", want: "strict"},
		{name: "empty unchanged", in: "", want: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := NormalizeInitPolicy(tc.in)
			if got != tc.want {
				t.Fatalf("NormalizeInitPolicy(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseInitPolicy(t *testing.T) {
	p, err := ParseInitPolicy("require")
	require.NoError(t, err)
	require.Equal(t, InitPolicyStrict, p)

	_, err = ParseInitPolicy("sometimes")
	require.Error(t, err)
	require.Contains(t, err.Error(), "sometimes")
}

func TestApplyDefaults(t *testing.T) {
	opts := &Options{}
	opts.ApplyDefaults()

	require.Equal(t, DefaultProviderTimeout, opts.ProviderTimeout)
	require.Equal(t, InitPolicyAuto, opts.InitPolicy)
	require.Equal(t, ServerInfo{Name: DefaultServerName, Version: DefaultServerVersion}, opts.ServerInfo)

	opts = &Options{ProviderTimeout: time.Second, InitPolicy: InitPolicyStrict, ServerInfo: ServerInfo{Name: "wx"}}
	opts.ApplyDefaults()

	require.Equal(t, time.Second, opts.ProviderTimeout)
	require.Equal(t, InitPolicyStrict, opts.InitPolicy)
	require.Equal(t, ServerInfo{Name: "wx", Version: DefaultServerVersion}, opts.ServerInfo)
}

func TestFromEnv(t *testing.T) {
	opts, err := FromEnv(envMap(map[string]string{
		EnvAPIKey:     " secret ",
		EnvBaseURL:    "http://localhost:9999",
		EnvTimeout:    "3",
		EnvInitPolicy: "lenient",
	}))
	require.NoError(t, err)

	require.Equal(t, "secret", opts.APIKey)
	require.Equal(t, "http://localhost:9999", opts.BaseURL)
	require.Equal(t, 3*time.Second, opts.ProviderTimeout)
	require.Equal(t, InitPolicyAuto, opts.InitPolicy)

	opts, err = FromEnv(envMap(nil))
	require.NoError(t, err)
	require.Equal(t, &Options{}, opts)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantKey string
	}{
		{name: "bad timeout", env: map[string]string{EnvTimeout: "soon"}, wantKey: EnvTimeout},
		{name: "negative timeout", env: map[string]string{EnvTimeout: "-2"}, wantKey: EnvTimeout},
		{name: "bad policy", env: map[string]string{EnvInitPolicy: "maybe"}, wantKey: EnvInitPolicy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromEnv(envMap(tt.env))

			cfgErr, ok := stderrors.AsType[*errors.ConfigurationError](err)
			require.True(t, ok)
			require.Equal(t, tt.wantKey, cfgErr.Key)
		})
	}
}

func TestParseTimeout(t *testing.T) {
	d, err := ParseTimeout("1500ms")
	require.NoError(t, err)
	require.Equal(t, 1500*time.Millisecond, d)

	_, err = ParseTimeout("0")
	require.Error(t, err)
}

func TestParseLogLevel(t *testing.T) {
	level, err := ParseLogLevel("")
	require.NoError(t, err)
	require.Equal(t, slog.LevelInfo, level)

	level, err = ParseLogLevel("debug")
	require.NoError(t, err)
	require.Equal(t, slog.LevelDebug, level)

	_, err = ParseLogLevel("chatty")
	require.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	log, err := NewLogger(&buf, "warn")
	require.NoError(t, err)

	log.Info("hidden")
	log.Warn("shown", "component", "test")

	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "msg=shown component=test")

	_, err = NewLogger(&buf, "loud")
	require.Error(t, err)
}
