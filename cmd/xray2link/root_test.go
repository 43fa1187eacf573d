package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xray2link/internal/logger"
	"xray2link/internal/share"
	"xray2link/internal/xray"
)

// chdir is a stand-in for t.Chdir, which requires Go 1.24+.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Errorf("restoring working directory: %v", err)
		}
	})
}

func TestMain(m *testing.M) {
	logger.Init(false, "")
	os.Exit(m.Run())
}

const testConfig = `{
  "inbounds": [
    {
      "protocol": "vless",
      "port": 443,
      "settings": {"clients": [
        {"id": "U1", "email": "a@b.com"},
        {"email": "broken@b.com"}
      ]},
      "streamSettings": {"network": "tcp", "security": "tls"}
    },
    {
      "protocol": "shadowsocks",
      "port": 8388,
      "settings": {"clients": [{"password": "pw", "email": "ss@b.com"}]}
    }
  ]
}`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// execute drives the root command the way a shell invocation would and resets
// flag state afterwards so tests stay independent.
func execute(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()

	listEmails, qrCode, verbose = false, false, false
	settingsFile, logFile = "", ""
	rootCmd.Flags().Lookup("qrcode").Changed = false
	rootCmd.Flags().Lookup("listemails").Changed = false
	rootCmd.Flags().Lookup("settings").Changed = false
	return err
}

func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	defer func() { os.Stdout = old }()

	runErr := fn()
	require.NoError(t, w.Close())
	out, readErr := io.ReadAll(r)
	require.NoError(t, readErr)
	return string(out), runErr
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"missing argument", errMissingArgument, exitMissingArgument},
		{"config read", fmt.Errorf("%w: /x.json: no such file", xray.ErrConfigRead), exitConfigRead},
		{"config parse", fmt.Errorf("%w: /x.json: bad token", xray.ErrConfigParse), exitConfigParse},
		{"client not found", fmt.Errorf("%w: a@b.com", xray.ErrClientNotFound), exitClientNotFound},
		{"unsupported protocol", fmt.Errorf("%w: %q", share.ErrUnsupportedProtocol, "shadowsocks"), exitUnsupportedProtocol},
		{"malformed client", &share.MalformedClientError{Protocol: "vless", Field: "id"}, exitMalformedClient},
		{"anything else", errors.New("boom"), exitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func TestMissingArgumentsBeforeConfigAccess(t *testing.T) {
	chdir(t, t.TempDir())

	// The config path does not even exist: the argument check must fire
	// before any file access, so the error is missing-argument, not read.
	err := execute(t, "does-not-exist.json")
	assert.ErrorIs(t, err, errMissingArgument)

	err = execute(t, "does-not-exist.json", "h.com")
	assert.ErrorIs(t, err, errMissingArgument)
}

func TestCommandErrorsMapToClasses(t *testing.T) {
	chdir(t, t.TempDir())
	cfg := writeConfig(t, testConfig)

	t.Run("unreadable config", func(t *testing.T) {
		err := execute(t, filepath.Join(t.TempDir(), "nope.json"), "h.com", "a@b.com")
		assert.ErrorIs(t, err, xray.ErrConfigRead)
		assert.Equal(t, exitConfigRead, exitCode(err))
	})

	t.Run("unparsable config", func(t *testing.T) {
		bad := writeConfig(t, `{"inbounds":`)
		err := execute(t, bad, "h.com", "a@b.com")
		assert.ErrorIs(t, err, xray.ErrConfigParse)
		assert.Equal(t, exitConfigParse, exitCode(err))
	})

	t.Run("client not found", func(t *testing.T) {
		err := execute(t, cfg, "h.com", "nobody@b.com")
		assert.ErrorIs(t, err, xray.ErrClientNotFound)
		assert.Equal(t, exitClientNotFound, exitCode(err))
	})

	t.Run("unsupported protocol", func(t *testing.T) {
		err := execute(t, cfg, "h.com", "ss@b.com")
		assert.ErrorIs(t, err, share.ErrUnsupportedProtocol)
		assert.Equal(t, exitUnsupportedProtocol, exitCode(err))
	})

	t.Run("malformed client", func(t *testing.T) {
		err := execute(t, cfg, "h.com", "broken@b.com")
		var malformed *share.MalformedClientError
		assert.True(t, errors.As(err, &malformed))
		assert.Equal(t, exitMalformedClient, exitCode(err))
	})
}

func TestGeneratePrintsLink(t *testing.T) {
	chdir(t, t.TempDir())
	cfg := writeConfig(t, testConfig)

	out, err := captureStdout(t, func() error {
		return execute(t, cfg, "h.com", "a@b.com")
	})
	require.NoError(t, err)
	assert.Equal(t, "vless://U1@h.com:443?type=tcp&security=tls#a%40b.com\n", out)
}

func TestListEmailsCommand(t *testing.T) {
	chdir(t, t.TempDir())
	cfg := writeConfig(t, testConfig)

	out, err := captureStdout(t, func() error {
		return execute(t, cfg, "--listemails")
	})
	require.NoError(t, err)
	assert.Contains(t, out, "Found client emails:")
	assert.Contains(t, out, "- a@b.com\n")
	assert.Contains(t, out, "- ss@b.com\n")
}

func TestListEmailsEmptyConfig(t *testing.T) {
	chdir(t, t.TempDir())
	cfg := writeConfig(t, `{"inbounds": []}`)

	out, err := captureStdout(t, func() error {
		return execute(t, cfg, "--listemails")
	})
	require.NoError(t, err, "an empty listing is not a failure")
	assert.Empty(t, out, "the notice goes to the diagnostic stream, not stdout")
}

func TestSettingsSupplyDefaultServer(t *testing.T) {
	chdir(t, t.TempDir())
	cfg := writeConfig(t, testConfig)
	require.NoError(t, os.WriteFile("xray2link.yaml", []byte("server_address: vpn.example.com\n"), 0644))

	// With a defaulted server, the single extra positional is the email.
	out, err := captureStdout(t, func() error {
		return execute(t, cfg, "a@b.com")
	})
	require.NoError(t, err)
	assert.Equal(t, "vless://U1@vpn.example.com:443?type=tcp&security=tls#a%40b.com\n", out)
}

func TestRenderFallbackOnOversizedPayload(t *testing.T) {
	chdir(t, t.TempDir())

	// An email this long pushes the URI past QR capacity, so rendering fails
	// and the plain link is printed instead, still exiting zero.
	huge := make([]byte, 4000)
	for i := range huge {
		huge[i] = 'a'
	}
	cfg := writeConfig(t, fmt.Sprintf(`{
	  "inbounds": [{
	    "protocol": "vless",
	    "port": 443,
	    "settings": {"clients": [{"id": "U1", "email": "%s"}]}
	  }]
	}`, huge))

	out, err := captureStdout(t, func() error {
		return runGenerate(cfg, "h.com", string(huge), true)
	})
	require.NoError(t, err)
	assert.Contains(t, out, "vless://U1@h.com:443")
}
