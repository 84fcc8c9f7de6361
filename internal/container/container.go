package container

import (
	"context"
	"fmt"

	"datasentry/adapters/llm"
	"datasentry/adapters/memory"
	"datasentry/adapters/postgres"
	"datasentry/ai"
	"datasentry/app"
	"datasentry/internal"
	"datasentry/internal/analysis"
	"datasentry/internal/config"
	"datasentry/internal/dataset"
	"datasentry/internal/errors"
	"datasentry/internal/jobmapper"
	"datasentry/internal/migration"
	"datasentry/ports"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Infrastructure
	DB *sqlx.DB

	// Repositories (data access layer)
	DatasetRepo  ports.DatasetRepository
	AnalysisRepo ports.AnalysisRepository
	FileStorage  ports.FileStorage

	// AI collaborators; LLM is nil when AI is disabled
	LLM        ports.LLMClient
	Classifier ports.JobFunctionClassifier
	Industry   ports.IndustryNormalizer
	Insights   *ai.InsightGenerator

	// Pipeline and services
	Mapper         *jobmapper.Mapper
	Analyzer       *analysis.Analyzer
	Processor      *dataset.Processor
	QualityService *app.QualityService
}

// New creates a new dependency injection container. With a DATABASE_URL the
// repositories are backed by PostgreSQL and the schema is migrated; otherwise
// they live in memory for the process lifetime.
func New(ctx context.Context, cfg *config.Config, logger *internal.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	c := &Container{
		Config: cfg,
		Logger: logger.OrDefault(),
	}

	if err := c.initRepositories(ctx); err != nil {
		return nil, err
	}
	c.initAI()
	c.initPipeline()

	c.Logger.Info("[Container] Initialized (database: %t, ai: %t)", c.DB != nil, c.LLM != nil)
	return c, nil
}

// initRepositories initializes data access repositories
func (c *Container) initRepositories(ctx context.Context) error {
	c.FileStorage = dataset.NewLocalFileStorage(c.Config.Storage.UploadDir)

	if !c.Config.UsesDatabase() {
		c.DatasetRepo = memory.NewDatasetRepository()
		c.AnalysisRepo = memory.NewAnalysisRepository()
		return nil
	}

	db, err := OpenDatabase(ctx, c.Config.Database)
	if err != nil {
		return err
	}
	c.DB = db
	c.DatasetRepo = postgres.NewDatasetRepository(db)
	c.AnalysisRepo = postgres.NewAnalysisRepository(db)
	return nil
}

// OpenDatabase connects to PostgreSQL and applies the schema
func OpenDatabase(ctx context.Context, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", cfg.URL)
	if err != nil {
		return nil, errors.DatabaseError("failed to connect to database", err)
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	if err := migration.NewRunner().Run(ctx, db); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "database migration failed")
	}
	return db, nil
}

// initAI builds the LLM chain: OpenAI first when a key is set, then Ollama
func (c *Container) initAI() {
	c.LLM = NewLLMClient(c.Config.AI, c.Logger)
	if c.LLM == nil {
		return
	}
	c.Classifier = llm.NewJobFunctionClassifier(c.LLM, "")
	c.Industry = llm.NewIndustryNormalizer(c.LLM, "")
	c.Insights = ai.NewInsightGenerator(c.LLM, "", c.Config.AI.Timeout)
}

// NewLLMClient returns the configured fallback chain, or nil when AI is disabled
func NewLLMClient(cfg config.AIConfig, logger *internal.Logger) ports.LLMClient {
	if !cfg.Enabled {
		return nil
	}
	logger = logger.OrDefault()

	chain := llm.NewFallbackClient()
	if cfg.OpenAIKey != "" {
		openai, err := llm.NewOpenAIClient(llm.Config{
			APIKey:      cfg.OpenAIKey,
			BaseURL:     cfg.OpenAIBaseURL,
			Timeout:     cfg.Timeout,
			Temperature: cfg.Temperature,
		})
		if err != nil {
			logger.Warn("[Container] OpenAI client unavailable: %v", err)
		} else {
			chain.Add(openai, cfg.OpenAIModel)
		}
	}
	if cfg.OllamaURL != "" {
		chain.Add(llm.NewOllamaClient(cfg.OllamaURL, cfg.OllamaModel, cfg.Timeout), cfg.OllamaModel)
	}

	if chain.Len() == 0 {
		return nil
	}
	return chain
}

// initPipeline wires the mapper, analyzer, processor, and quality service
func (c *Container) initPipeline() {
	c.Mapper = jobmapper.NewMapper(c.Classifier, c.Config.AI.Timeout, c.Logger)
	if path := c.Config.Analysis.GroundTruthPath; path != "" {
		if _, err := c.Mapper.LoadGroundTruthFile(path); err != nil {
			c.Logger.Warn("[Container] Ground truth not loaded from %s, starting empty: %v", path, err)
		}
	}

	c.Analyzer = analysis.NewAnalyzer(c.Mapper, c.Industry, analysis.Config{
		Concurrency: c.Config.Analysis.Concurrency,
		AITimeout:   c.Config.AI.Timeout,
	}, c.Logger)

	c.Processor = dataset.NewProcessor(c.DatasetRepo, c.AnalysisRepo, c.FileStorage, c.Config.Storage.MaxFileSize, c.Logger)
	c.QualityService = app.NewQualityService(c.DatasetRepo, c.AnalysisRepo, c.Analyzer, c.Insights, c.Processor.Locks(), c.Logger)
}

// Close releases the database connection, if any
func (c *Container) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
