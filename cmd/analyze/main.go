// Command analyze runs the statement engine from the command line:
// one or two statement files in, the full analysis JSON out. Useful for
// spot-checking a borrower's statements without starting the server.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"agricredit/pkg/core/analysis"
	"agricredit/pkg/core/extract"
	"agricredit/pkg/core/narrative"
	"agricredit/pkg/core/prompt"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, assuming environment variables are set.")
	}

	incomePath := flag.String("income", "", "income statement file (JSON grid or freeform text)")
	balancePath := flag.String("balance", "", "balance sheet file; with -income triggers combined analysis")
	periods := flag.Int("periods", 0, "target period count (default 3)")
	withMemo := flag.Bool("memo", false, "also generate a credit memo (requires GEMINI_API_KEY)")
	flag.Parse()

	if *incomePath == "" && *balancePath == "" {
		fmt.Fprintln(os.Stderr, "Usage: analyze -income <file> [-balance <file>] [-periods N] [-memo]")
		os.Exit(2)
	}

	engine := analysis.NewEngine()
	engine.ExtractOptions = extract.Options{Periods: *periods}

	ctx := context.Background()
	result, err := run(ctx, engine, *incomePath, *balancePath)
	if err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}

	out, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(out))

	if *withMemo {
		if err := prompt.LoadFromDirectory("resources"); err != nil {
			fmt.Printf("[WARNING] Prompt library unavailable, using built-in prompt: %v\n", err)
		}
		narrator, err := narrative.NewCreditNarrator(ctx)
		if err != nil {
			log.Fatalf("Narrator init failed: %v", err)
		}
		memo, err := narrator.Generate(ctx, result)
		if err != nil {
			log.Fatalf("Narrative failed: %v", err)
		}
		fmt.Printf("\n[MEMO] Rating: %s\n\n%s\n", memo.Verdict.Rating, memo.Summary)
	}
}

func run(ctx context.Context, engine *analysis.Engine, incomePath, balancePath string) (*analysis.StatementAnalysis, error) {
	switch {
	case incomePath != "" && balancePath != "":
		income, err := os.ReadFile(incomePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read income statement: %w", err)
		}
		balance, err := os.ReadFile(balancePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read balance sheet: %w", err)
		}
		return engine.AnalyzeCombined(ctx, string(income), string(balance))
	case balancePath != "":
		content, err := os.ReadFile(balancePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read balance sheet: %w", err)
		}
		return engine.Analyze(string(content), analysis.StatementBalance)
	default:
		content, err := os.ReadFile(incomePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read income statement: %w", err)
		}
		return engine.Analyze(string(content), analysis.StatementIncome)
	}
}
