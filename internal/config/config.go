package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// LLMConfig selects the chat completion provider and model.
type LLMConfig struct {
	Provider  string `yaml:"provider"`
	Model     string `yaml:"model"`
	BaseURL   string `yaml:"base_url"`
	APIKeyEnv string `yaml:"api_key_env"`
}

// EmbedderConfig selects and configures the text embedder implementation.
type EmbedderConfig struct {
	Provider  string `yaml:"provider"`
	Model     string `yaml:"model"`
	BaseURL   string `yaml:"base_url"`
	APIKeyEnv string `yaml:"api_key_env"`
}

// ChunkerConfig configures how documents are split into chunks.
type ChunkerConfig struct {
	Type              string `yaml:"type"`
	ChunkSize         int    `yaml:"chunk_size"`
	ChunkOverlap      int    `yaml:"chunk_overlap"`
	SentencesPerChunk int    `yaml:"sentences_per_chunk"`
	OverlapSentences  int    `yaml:"overlap_sentences"`
}

// QdrantConfig contains connection details for a Qdrant vector store.
type QdrantConfig struct {
	URL        string `yaml:"url"`
	APIKey     string `yaml:"api_key"`
	Collection string `yaml:"collection"`
}

// VectorStoreConfig selects the vector store backend.
type VectorStoreConfig struct {
	Type   string        `yaml:"type"`
	Qdrant *QdrantConfig `yaml:"qdrant,omitempty"`
}

// IngestConfig lists the document sources for the Q&A application.
type IngestConfig struct {
	DataDir string   `yaml:"data_dir"`
	URLs    []string `yaml:"urls"`
}

// ChatConfig configures the memory chatbot application.
type ChatConfig struct {
	DBPath    string `yaml:"db_path"`
	SessionID string `yaml:"session_id"`
}

// AppConfig is the root application configuration. Values come from the
// environment first; an optional config.yaml supplies anything not set there.
type AppConfig struct {
	LLM         LLMConfig         `yaml:"llm"`
	Embedder    EmbedderConfig    `yaml:"embedder"`
	Chunker     ChunkerConfig     `yaml:"chunker"`
	VectorStore VectorStoreConfig `yaml:"vector_store"`
	Ingest      IngestConfig      `yaml:"ingest"`
	Chat        ChatConfig        `yaml:"chat"`
	TopK        int               `yaml:"top_k"`
	LogFile     string            `yaml:"log_file"`
	LogLevel    string            `yaml:"log_level"`
}

const defaultURL = "https://www.ibm.com/think/topics/agentic-ai"

// Load builds the configuration: .env (if present), then the optional YAML
// file, then environment variables on top of both.
func Load(path string) (*AppConfig, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("loading .env: %w", err)
		}
	}

	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing %s: %w", path, err)
			}
		}
	}
	applyEnv(cfg)
	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/ragchat/config.yaml.
func LoadDefault() (*AppConfig, error) {
	if _, err := os.Stat("config.yaml"); err == nil {
		return Load("config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return Load("")
	}
	return Load(filepath.Join(home, ".config", "ragchat", "config.yaml"))
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// APIKey resolves the credential for the configured LLM provider.
func (c *AppConfig) APIKey() string {
	if c.LLM.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(c.LLM.APIKeyEnv)
}

func (c *AppConfig) validate() error {
	switch c.LLM.Provider {
	case "ollama":
	case "openai", "groq":
		if c.APIKey() == "" {
			return fmt.Errorf("%s is required for provider %q", c.LLM.APIKeyEnv, c.LLM.Provider)
		}
	default:
		return fmt.Errorf("unsupported LLM provider: %q", c.LLM.Provider)
	}
	if c.Chunker.Type == "window" && c.Chunker.ChunkOverlap >= c.Chunker.ChunkSize {
		return fmt.Errorf("chunk overlap %d must be smaller than chunk size %d",
			c.Chunker.ChunkOverlap, c.Chunker.ChunkSize)
	}
	if c.Chunker.Type == "sentence" && c.Chunker.OverlapSentences >= c.Chunker.SentencesPerChunk {
		return fmt.Errorf("sentence overlap %d must be smaller than sentences per chunk %d",
			c.Chunker.OverlapSentences, c.Chunker.SentencesPerChunk)
	}
	return nil
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		LLM:         LLMConfig{Provider: "ollama", Model: "llama3.2", BaseURL: "http://localhost:11434"},
		Embedder:    EmbedderConfig{Provider: "ollama", Model: "nomic-embed-text", BaseURL: "http://localhost:11434"},
		Chunker:     ChunkerConfig{Type: "window", ChunkSize: 500, ChunkOverlap: 50, SentencesPerChunk: 5, OverlapSentences: 1},
		VectorStore: VectorStoreConfig{Type: "memory"},
		Ingest:      IngestConfig{DataDir: "data", URLs: []string{defaultURL}},
		Chat:        ChatConfig{DBPath: "chat_history.db"},
		TopK:        4,
		LogFile:     "ragchat.log",
		LogLevel:    "info",
	}
}

func applyEnv(cfg *AppConfig) {
	cfg.LLM.Provider = strings.ToLower(getEnv("LLM_PROVIDER", cfg.LLM.Provider))
	cfg.LLM.Model = getEnv("LLM_MODEL", cfg.LLM.Model)
	cfg.LLM.BaseURL = getEnv("OLLAMA_BASE_URL", cfg.LLM.BaseURL)
	cfg.Embedder.Provider = strings.ToLower(getEnv("EMBEDDINGS_PROVIDER", cfg.Embedder.Provider))
	cfg.Embedder.Model = getEnv("EMBEDDINGS_MODEL", cfg.Embedder.Model)
	cfg.Embedder.BaseURL = getEnv("EMBEDDINGS_BASE_URL", cfg.Embedder.BaseURL)
	cfg.Chunker.Type = getEnv("CHUNKER", cfg.Chunker.Type)
	cfg.Chunker.ChunkSize = getEnvInt("CHUNK_SIZE", cfg.Chunker.ChunkSize)
	cfg.Chunker.ChunkOverlap = getEnvInt("CHUNK_OVERLAP", cfg.Chunker.ChunkOverlap)
	cfg.VectorStore.Type = getEnv("VECTOR_STORE", cfg.VectorStore.Type)
	cfg.Ingest.DataDir = getEnv("DATA_DIR", cfg.Ingest.DataDir)
	if urls := os.Getenv("DEFAULT_URLS"); urls != "" {
		cfg.Ingest.URLs = splitAndTrim(urls)
	}
	cfg.Chat.DBPath = getEnv("CHAT_DB_PATH", cfg.Chat.DBPath)
	cfg.Chat.SessionID = getEnv("SESSION_ID", cfg.Chat.SessionID)
	cfg.TopK = getEnvInt("TOP_K", cfg.TopK)
	cfg.LogFile = getEnv("LOG_FILE", cfg.LogFile)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)

	if cfg.VectorStore.Type == "qdrant" {
		if cfg.VectorStore.Qdrant == nil {
			cfg.VectorStore.Qdrant = &QdrantConfig{}
		}
		q := cfg.VectorStore.Qdrant
		q.URL = getEnv("QDRANT_URL", q.URL)
		q.APIKey = getEnv("QDRANT_API_KEY", q.APIKey)
		q.Collection = getEnv("QDRANT_COLLECTION", q.Collection)
	}
}

func applyDefaults(cfg *AppConfig) {
	switch cfg.LLM.Provider {
	case "openai":
		if cfg.LLM.APIKeyEnv == "" {
			cfg.LLM.APIKeyEnv = "OPENAI_API_KEY"
		}
		if cfg.LLM.BaseURL == "" || strings.Contains(cfg.LLM.BaseURL, "localhost:11434") {
			cfg.LLM.BaseURL = "https://api.openai.com"
		}
	case "groq":
		if cfg.LLM.APIKeyEnv == "" {
			cfg.LLM.APIKeyEnv = "GROQ_API_KEY"
		}
		if cfg.LLM.BaseURL == "" || strings.Contains(cfg.LLM.BaseURL, "localhost:11434") {
			cfg.LLM.BaseURL = "https://api.groq.com/openai"
		}
	}
	if cfg.Embedder.Provider == "openai" && cfg.Embedder.APIKeyEnv == "" {
		cfg.Embedder.APIKeyEnv = "OPENAI_API_KEY"
	}
	if cfg.VectorStore.Type == "qdrant" && cfg.VectorStore.Qdrant != nil {
		if cfg.VectorStore.Qdrant.Collection == "" {
			cfg.VectorStore.Qdrant.Collection = "ragchat"
		}
	}
	if cfg.TopK <= 0 {
		cfg.TopK = 4
	}
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
