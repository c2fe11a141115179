package main

import (
	"context"
	"fmt"
	"io/ioutil"
	"net/http"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"agricredit/pkg/api/config"
	"agricredit/pkg/api/statements"
	"agricredit/pkg/core/agent"
	"agricredit/pkg/core/prompt"
	"agricredit/pkg/core/store"
)

var agentMgr *agent.Manager

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize Prompt Library
	// Determine resources path (relative to executable or working directory)
	resourcesPath := "resources"
	if _, err := os.Stat(resourcesPath); os.IsNotExist(err) {
		// Try from executable directory
		exePath, _ := os.Executable()
		resourcesPath = filepath.Join(filepath.Dir(exePath), "resources")
	}
	if err := prompt.LoadFromDirectory(resourcesPath); err != nil {
		fmt.Printf("[WARNING] Failed to load prompt library: %v\n", err)
		fmt.Println("  Falling back to hardcoded prompts")
	} else {
		fmt.Printf("[PROMPT] Loaded %d prompts from %s\n", prompt.Get().Count(), resourcesPath)
	}

	// Initialize manager from config
	configData, _ := ioutil.ReadFile("config/models.yaml")
	var agentCfg agent.Config
	yaml.Unmarshal(configData, &agentCfg)
	agentMgr = agent.NewManager(agentCfg)

	// Persistence is optional: without DATABASE_URL the engine still
	// serves analyses, it just cannot store them per borrower.
	var repo store.AnalysisRepository
	ctx := context.Background()
	if err := store.InitDB(ctx); err != nil {
		fmt.Printf("[WARNING] Database unavailable, persistence disabled: %v\n", err)
	} else if err := store.EnsureSchema(ctx); err != nil {
		fmt.Printf("[WARNING] Schema setup failed, persistence disabled: %v\n", err)
	} else {
		repo = store.NewAnalysisRepo()
		defer store.Close()
	}

	// Config endpoints
	configHandler := config.NewHandler(agentMgr)
	http.HandleFunc("/api/config", configHandler.HandleConfig)
	http.HandleFunc("/api/config/switch", configHandler.HandleSwitch)

	// Statement analysis endpoints
	statements.InitHandler(agentMgr, repo)
	http.HandleFunc("/api/statements/analyze", statements.HandleAnalyze)
	http.HandleFunc("/api/statements/narrative", statements.HandleNarrative)
	http.HandleFunc("/api/statements/analysis", statements.HandleGetAnalysis)
	http.HandleFunc("/api/statements/convert", statements.HandleConvert)

	fmt.Println("API server starting on :8080...")
	fmt.Println("  - GET  /api/config")
	fmt.Println("  - POST /api/config/switch")
	fmt.Println("  - POST /api/statements/analyze  (income, balance or combined)")
	fmt.Println("  - POST /api/statements/narrative")
	fmt.Println("  - GET  /api/statements/analysis?borrower_id=")
	fmt.Println("  - POST /api/statements/convert  (xlsx/html/csv upload)")

	// Use log.Fatal-style exit so a busy port surfaces as a failure
	if err := http.ListenAndServe(":8080", nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
