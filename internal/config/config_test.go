package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"LLM_PROVIDER", "LLM_MODEL", "OLLAMA_BASE_URL",
		"EMBEDDINGS_PROVIDER", "EMBEDDINGS_MODEL", "EMBEDDINGS_BASE_URL",
		"CHUNKER", "CHUNK_SIZE", "CHUNK_OVERLAP",
		"VECTOR_STORE", "DATA_DIR", "DEFAULT_URLS",
		"CHAT_DB_PATH", "SESSION_ID", "TOP_K", "LOG_FILE", "LOG_LEVEL",
		"OPENAI_API_KEY", "GROQ_API_KEY",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "ollama", cfg.LLM.Provider)
	require.Equal(t, "llama3.2", cfg.LLM.Model)
	require.Equal(t, "http://localhost:11434", cfg.LLM.BaseURL)
	require.Equal(t, "window", cfg.Chunker.Type)
	require.Equal(t, 500, cfg.Chunker.ChunkSize)
	require.Equal(t, 50, cfg.Chunker.ChunkOverlap)
	require.Equal(t, "memory", cfg.VectorStore.Type)
	require.Equal(t, 4, cfg.TopK)
	require.Equal(t, []string{"https://www.ibm.com/think/topics/agentic-ai"}, cfg.Ingest.URLs)
	require.Equal(t, "chat_history.db", cfg.Chat.DBPath)
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_MODEL", "llama3.1")
	t.Setenv("CHUNK_SIZE", "800")
	t.Setenv("TOP_K", "6")
	t.Setenv("DEFAULT_URLS", "https://a.example/one , https://b.example/two")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "llama3.1", cfg.LLM.Model)
	require.Equal(t, 800, cfg.Chunker.ChunkSize)
	require.Equal(t, 6, cfg.TopK)
	require.Equal(t, []string{"https://a.example/one", "https://b.example/two"}, cfg.Ingest.URLs)
}

func TestEnvOverridesYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("llm:\n  model: from-yaml\ntop_k: 9\n"), 0o644))
	t.Setenv("LLM_MODEL", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "from-env", cfg.LLM.Model)
	require.Equal(t, 9, cfg.TopK)
}

func TestOpenAIRequiresKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_PROVIDER", "openai")

	_, err := Load("")
	require.Error(t, err)
	require.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestGroqDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_PROVIDER", "groq")
	t.Setenv("GROQ_API_KEY", "gsk-test")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "GROQ_API_KEY", cfg.LLM.APIKeyEnv)
	require.Equal(t, "https://api.groq.com/openai", cfg.LLM.BaseURL)
	require.Equal(t, "gsk-test", cfg.APIKey())
}

func TestUnknownProviderRejected(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_PROVIDER", "bard")

	_, err := Load("")
	require.Error(t, err)
}

func TestOverlapMustBeSmallerThanSize(t *testing.T) {
	clearEnv(t)
	t.Setenv("CHUNK_SIZE", "100")
	t.Setenv("CHUNK_OVERLAP", "100")

	_, err := Load("")
	require.Error(t, err)
}

func TestSentenceOverlapMustBeSmallerThanChunk(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "chunker:\n  type: sentence\n  sentences_per_chunk: 3\n  overlap_sentences: 3\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "sentence overlap")
}

func TestSaveRoundTrip(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)
	cfg.LLM.Model = "mistral"

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "mistral", loaded.LLM.Model)
}
