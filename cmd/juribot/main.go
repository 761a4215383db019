// Command juribot is the JuriBot CLI: a legal document assistant that
// ingests PDFs, DOCX files and scans into sessions and answers
// questions about them.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/custodia-labs/juribot-cli/internal/adapters/driven/ai"
	"github.com/custodia-labs/juribot-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/juribot-cli/internal/adapters/driven/ocr/tesseract"
	"github.com/custodia-labs/juribot-cli/internal/adapters/driven/pdf"
	"github.com/custodia-labs/juribot-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/juribot-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/juribot-cli/internal/adapters/driven/sysexec"
	"github.com/custodia-labs/juribot-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/juribot-cli/internal/chunker"
	"github.com/custodia-labs/juribot-cli/internal/core/ports/driven"
	"github.com/custodia-labs/juribot-cli/internal/core/services"
	"github.com/custodia-labs/juribot-cli/internal/extractors"
	"github.com/custodia-labs/juribot-cli/internal/logger"
	"github.com/custodia-labs/juribot-cli/internal/normaliser"
)

// sweepInterval is how often idle sessions are checked for eviction.
const sweepInterval = time.Minute

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("initialising config store: %w", err)
	}

	settings := services.NewSettingsService(configStore, ai.NewConfigValidator())
	pipelineSettings := settings.Pipeline()

	// Extraction stack: native PDF text, poppler rasterizer, tesseract OCR.
	runner := sysexec.New()
	ocr := tesseract.New(runner)
	registry := extractors.NewRegistry(
		extractors.NewPDF(pdf.NewExtractor(), pdf.NewRasterizer(runner), ocr, pipelineSettings),
		extractors.NewImage(ocr, pipelineSettings),
		extractors.NewDocx(),
	)

	contextStore := memory.NewContextStore()
	sessionStore := memory.NewSessionStore()

	// History persistence is best effort: the pipeline works without it.
	var history driven.HistoryStore
	if store, err := sqlite.NewStore(""); err != nil {
		logger.Warn("History persistence disabled: %v", err)
	} else {
		history = store
		defer store.Close()
	}

	// No provider configured is fine at startup; commands that need the
	// model report it when invoked.
	var llm driven.LLMService
	if svc, err := ai.CreateLLMService(settings.LLM()); err != nil {
		logger.Debug("LLM provider not available: %v", err)
	} else {
		llm = svc
		defer llm.Close()
	}

	retriever := services.NewRetriever(contextStore, normaliser.Tagger{}, pipelineSettings.Budget)
	assembler := services.NewAssembler(pipelineSettings.Budget)
	router := services.NewRouter(llm)

	// Hindi documents are auto-translated when a provider is available.
	var translator *services.Translator
	if llm != nil {
		translator = services.NewTranslator(llm)
	}

	pipeline := services.NewPipeline(
		registry,
		normaliser.New(),
		chunker.New(),
		contextStore,
		sessionStore,
		history,
		retriever,
		assembler,
		router,
		translator,
		pipelineSettings,
	)

	sessions := services.NewSessionManager(
		sessionStore,
		contextStore,
		history,
		llm,
		pipelineSettings.SessionIdleTimeout,
	)
	go sessions.RunSweeper(ctx, sweepInterval)

	cli.SetServices(&cli.Services{
		Pipeline: pipeline,
		Session:  sessions,
		Settings: settings,
		History:  history,
	})

	return cli.ExecuteContext(ctx)
}
