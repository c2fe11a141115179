// Package agent routes named analysis agents to configured LLM providers.
package agent

import (
	"context"
	"fmt"
	"sync"

	"agricredit/pkg/core/llm"
)

// Config is loaded from config/models.yaml.
type Config struct {
	ActiveProvider string                 `yaml:"active_provider"`
	Agents         map[string]AgentConfig `yaml:"agents"`
}

// AgentConfig optionally pins one agent to a specific provider.
type AgentConfig struct {
	Provider    string `yaml:"provider"`
	Description string `yaml:"description"`
}

// Manager resolves providers for agents and handles global switching.
type Manager struct {
	mu        sync.RWMutex
	config    Config
	providers map[string]llm.Provider
}

func NewManager(config Config) *Manager {
	if config.ActiveProvider == "" {
		config.ActiveProvider = "gemini"
	}
	return &Manager{
		config: config,
		providers: map[string]llm.Provider{
			"gemini":   &llm.GeminiProvider{},
			"deepseek": &llm.DeepSeekProvider{},
		},
	}
}

// GetProvider resolves the provider for an agent: per-agent override first,
// then the global active provider, then gemini.
func (m *Manager) GetProvider(agentType string) llm.Provider {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if agentConfig, ok := m.config.Agents[agentType]; ok && agentConfig.Provider != "" {
		if p, ok := m.providers[agentConfig.Provider]; ok {
			return p
		}
	}
	if p, ok := m.providers[m.config.ActiveProvider]; ok {
		return p
	}
	return m.providers["gemini"]
}

// GetProviderByName retrieves a provider by its registered name.
func (m *Manager) GetProviderByName(name string) llm.Provider {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.providers[name]
}

// GetActiveProvider returns the global provider name.
func (m *Manager) GetActiveProvider() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config.ActiveProvider
}

// AvailableProviders lists the registered provider names.
func (m *Manager) AvailableProviders() []string {
	return []string{"gemini", "deepseek"}
}

// SetGlobalProvider switches the global active provider.
func (m *Manager) SetGlobalProvider(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.providers[name]; !ok {
		return fmt.Errorf("unknown provider: %s", name)
	}
	m.config.ActiveProvider = name
	return nil
}

// ExecutePrompt adapts the instructions for the agent's provider and runs
// the generation.
func (m *Manager) ExecutePrompt(ctx context.Context, agentType, prompt, systemPrompt string, options map[string]interface{}) (string, error) {
	provider := m.GetProvider(agentType)
	adapted := provider.AdaptInstructions(systemPrompt)
	return provider.GenerateResponse(ctx, prompt, adapted, options)
}
