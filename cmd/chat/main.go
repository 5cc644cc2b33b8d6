package main

import (
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/DhanushGowdaSP/Week2-Deliverables/internal/chat"
	"github.com/DhanushGowdaSP/Week2-Deliverables/internal/config"
	"github.com/DhanushGowdaSP/Week2-Deliverables/internal/llm"
	"github.com/DhanushGowdaSP/Week2-Deliverables/internal/logger"
	"github.com/DhanushGowdaSP/Week2-Deliverables/internal/memory"
	"github.com/DhanushGowdaSP/Week2-Deliverables/internal/tui"
)

func main() {
	cfg, err := config.LoadDefault()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := logger.Init(cfg.LogFile, cfg.LogLevel); err != nil {
		log.Fatalf("failed to open log file: %v", err)
	}

	store, err := memory.Open(cfg.Chat.DBPath)
	if err != nil {
		log.Fatalf("failed to open chat database: %v", err)
	}
	defer store.Close()

	client, err := llm.New(cfg)
	if err != nil {
		log.Fatalf("failed to build LLM client: %v", err)
	}

	sessionID := cfg.Chat.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	logger.Info("chat session starting", "session", sessionID, "provider", cfg.LLM.Provider, "model", cfg.LLM.Model)

	service := chat.NewService(store, client)
	model := tui.NewChat(service, sessionID)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		log.Fatalf("TUI error: %v", err)
	}
}
