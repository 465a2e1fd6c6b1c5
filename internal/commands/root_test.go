package commands

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gemini-chat/internal/models"
)

// execute runs rootCmd with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	urlFlag = ""
	t.Cleanup(func() { urlFlag = "" })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func TestRelayURL(t *testing.T) {
	urlFlag = ""
	t.Cleanup(func() { urlFlag = "" })

	t.Setenv("GEMCHAT_URL", "")
	if got := relayURL(); got != defaultRelayURL {
		t.Errorf("expected default %q, got %q", defaultRelayURL, got)
	}

	t.Setenv("GEMCHAT_URL", "http://relay.example")
	if got := relayURL(); got != "http://relay.example" {
		t.Errorf("expected env URL, got %q", got)
	}

	urlFlag = "http://flag.example"
	if got := relayURL(); got != "http://flag.example" {
		t.Errorf("expected flag to win, got %q", got)
	}
}

func TestAskCommand_PlainOutput(t *testing.T) {
	var got models.ChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{"response":"**Go** is a language"}`))
	}))
	defer srv.Close()

	orig := isStdoutTTY
	isStdoutTTY = func() bool { return false }
	t.Cleanup(func() { isStdoutTTY = orig })

	out, err := execute(t, "--url", srv.URL, "ask", "what", "is", "Go?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Message != "what is Go?" || len(got.History) != 0 {
		t.Fatalf("unexpected request: %+v", got)
	}
	if strings.TrimSpace(out) != "**Go** is a language" {
		t.Fatalf("expected raw reply on non-terminal stdout, got %q", out)
	}
}

func TestAskCommand_RelayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"Message is required"}`))
	}))
	defer srv.Close()

	if _, err := execute(t, "--url", srv.URL, "ask", "hi"); err == nil {
		t.Fatalf("expected error for non-2xx relay response")
	}
}

func TestThemeCommand(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	steps := []struct {
		args []string
		want string
	}{
		{[]string{"theme", "dark"}, "dark"},
		{[]string{"theme"}, "dark"},
		{[]string{"theme", "toggle"}, "light"},
		{[]string{"theme"}, "light"},
	}

	for _, step := range steps {
		out, err := execute(t, step.args...)
		if err != nil {
			t.Fatalf("%v: unexpected error: %v", step.args, err)
		}
		if strings.TrimSpace(out) != step.want {
			t.Fatalf("%v: expected %q, got %q", step.args, step.want, out)
		}
	}
}

func TestThemeCommand_InvalidValue(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if _, err := execute(t, "theme", "purple"); err == nil {
		t.Fatalf("expected error for unknown theme")
	}
}
