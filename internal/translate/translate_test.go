package translate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/visualtopology/skadi-build/internal/llm"
)

type fakeTranslator struct {
	table map[string]string
	calls []string
}

func (f *fakeTranslator) Translate(_ context.Context, text, from, to string) (string, error) {
	f.calls = append(f.calls, from+">"+to+":"+text)
	out, ok := f.table[text]
	if !ok {
		return "", errors.New("no translation")
	}
	return out, nil
}

func writeJSON(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func readBundle(t *testing.T, path string) map[string]string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var b map[string]string
	if err := json.Unmarshal(data, &b); err != nil {
		t.Fatalf("target is not JSON: %v", err)
	}
	return b
}

func TestLanguageOf(t *testing.T) {
	tests := map[string]string{
		"l10n/bundle/en.json":    "en",
		"de.json":                "de",
		"/tmp/pt-BR.json":        "pt-BR",
		"bundles/zh-hans.bundle": "zh-hans",
	}
	for in, want := range tests {
		if got := LanguageOf(in); got != want {
			t.Errorf("LanguageOf(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFillBundleTranslatesOnlyMissingKeys(t *testing.T) {
	dir := t.TempDir()
	from := filepath.Join(dir, "en.json")
	to := filepath.Join(dir, "de.json")
	writeJSON(t, from, `{"save": "Save", "open": "Open", "close": "Close"}`)
	writeJSON(t, to, `{"save": "Speichern"}`)

	tr := &fakeTranslator{table: map[string]string{"Open": "Öffnen", "Close": "Schließen"}}
	res, err := FillBundle(context.Background(), tr, from, to)
	if err != nil {
		t.Fatalf("FillBundle() error = %v", err)
	}

	if res.From != "en" || res.To != "de" {
		t.Errorf("languages = %s -> %s", res.From, res.To)
	}
	if res.Translated != 2 || res.Kept != 1 || len(res.Failed) != 0 {
		t.Errorf("result = %+v", res)
	}
	for _, c := range tr.calls {
		if strings.Contains(c, "Save") {
			t.Errorf("existing key was re-translated: %s", c)
		}
	}

	got := readBundle(t, to)
	want := map[string]string{"save": "Speichern", "open": "Öffnen", "close": "Schließen"}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("target[%q] = %q, want %q", k, got[k], v)
		}
	}
}

func TestFillBundleSkipsFailures(t *testing.T) {
	dir := t.TempDir()
	from := filepath.Join(dir, "en.json")
	to := filepath.Join(dir, "fr.json")
	writeJSON(t, from, `{"a": "known", "b": "unknown"}`)

	tr := &fakeTranslator{table: map[string]string{"known": "connu"}}
	res, err := FillBundle(context.Background(), tr, from, to)
	if err != nil {
		t.Fatalf("FillBundle() error = %v", err)
	}
	if len(res.Failed) != 1 || res.Failed[0] != "b" {
		t.Errorf("Failed = %v, want [b]", res.Failed)
	}

	got := readBundle(t, to)
	if got["a"] != "connu" {
		t.Errorf("target[a] = %q", got["a"])
	}
	if _, ok := got["b"]; ok {
		t.Error("failed key should not be written")
	}
}

func TestFillBundleWritesTargetWhenEverythingFails(t *testing.T) {
	dir := t.TempDir()
	from := filepath.Join(dir, "en.json")
	to := filepath.Join(dir, "es.json")
	writeJSON(t, from, `{"a": "x"}`)

	if _, err := FillBundle(context.Background(), &fakeTranslator{}, from, to); err != nil {
		t.Fatalf("FillBundle() error = %v", err)
	}
	if got := readBundle(t, to); len(got) != 0 {
		t.Errorf("target = %v, want empty", got)
	}
}

func TestFillBundleMissingSource(t *testing.T) {
	dir := t.TempDir()
	_, err := FillBundle(context.Background(), &fakeTranslator{}, filepath.Join(dir, "en.json"), filepath.Join(dir, "de.json"))
	if err == nil {
		t.Fatal("expected error for missing source bundle")
	}
}

func TestFillBundleCancelled(t *testing.T) {
	dir := t.TempDir()
	from := filepath.Join(dir, "en.json")
	writeJSON(t, from, `{"a": "x"}`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := FillBundle(ctx, &fakeTranslator{}, from, filepath.Join(dir, "de.json")); !errors.Is(err, context.Canceled) {
		t.Errorf("FillBundle() error = %v, want context.Canceled", err)
	}
}

func TestLLMTranslator(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Prompt string `json:"prompt"`
			System string `json:"system"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		if !strings.Contains(req.Prompt, `"en"`) || !strings.Contains(req.Prompt, `"de"`) {
			t.Errorf("prompt missing languages: %q", req.Prompt)
		}
		if req.System == "" {
			t.Error("system prompt not set")
		}
		w.Write([]byte(`{"response": "  Speichern\n", "done": true}`))
	}))
	defer server.Close()

	tr := NewLLMTranslator(llm.NewOllamaClient(server.URL, "llama3.2"))
	got, err := tr.Translate(context.Background(), "Save", "en", "de")
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if got != "Speichern" {
		t.Errorf("Translate() = %q, want Speichern", got)
	}
}

func TestLLMTranslatorEmptyReply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response": "   ", "done": true}`))
	}))
	defer server.Close()

	tr := NewLLMTranslator(llm.NewOllamaClient(server.URL, "m"))
	if _, err := tr.Translate(context.Background(), "Save", "en", "de"); err == nil {
		t.Error("expected error for empty translation")
	}
}
