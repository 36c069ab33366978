package server

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"cv-suite/internal/analysis"
	"cv-suite/internal/auth"
	"cv-suite/internal/enhance"
	"cv-suite/internal/llm"
	"cv-suite/internal/llm/gemini"
	"cv-suite/internal/llm/openai"
	"cv-suite/internal/questions"
	"cv-suite/internal/sessions"
	"cv-suite/internal/shared/config"
	"cv-suite/internal/shared/metrics"
	"cv-suite/internal/shared/server/middleware"
	"cv-suite/internal/shared/server/respond"
	"cv-suite/internal/shared/storage/db"
	"cv-suite/internal/shared/storage/object"
	localstore "cv-suite/internal/shared/storage/object/local"
	s3store "cv-suite/internal/shared/storage/object/s3"
	"cv-suite/internal/uploads"
)

const pipelineGroup = "PIPELINE"

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.PasswordGate(cfg.AccessPassword),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				"DEFAULT":     {Rate: 10, Burst: 30},
				pipelineGroup: {Rate: 0.2, Burst: 3},
			},
			DefaultGroup: "DEFAULT",
			GroupFor:     classifyRequest,
		}),
	)

	// Dependencies
	store := newObjectStore(cfg)
	sqlDB := newDatabase(cfg)

	var repo sessions.Repo
	if sqlDB != nil {
		repo = &sessions.PGRepo{DB: sqlDB}
	} else {
		repo = sessions.NewMemoryRepo()
	}

	client := newLLMClient(cfg)

	uploadSvc := &uploads.Service{Store: store, Repo: repo, Provider: cfg.LLMProvider, Model: cfg.LLMModel}
	analysisSvc := &analysis.Service{Store: store, Repo: repo, LLM: client, Provider: cfg.LLMProvider, Model: cfg.LLMModel}
	questionsSvc := &questions.Service{Store: store, Repo: repo, LLM: client}
	enhanceSvc := &enhance.Service{Store: store, Repo: repo, LLM: client, Model: cfg.LLMModel}

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"status": "healthy"})
	})
	api.GET("/metrics", metrics.Handler())
	auth.NewHandler(cfg.AccessPassword).RegisterRoutes(api)
	uploads.NewHandler(uploadSvc).RegisterRoutes(api)
	analysis.NewHandler(analysisSvc).RegisterRoutes(api)
	questions.NewHandler(questionsSvc).RegisterRoutes(api)
	enhance.NewHandler(enhanceSvc).RegisterRoutes(api)

	return r
}

// classifyRequest puts the endpoints that hold a completion call open for the
// whole request under the tighter pipeline budget.
func classifyRequest(c *gin.Context) string {
	p := c.Request.URL.Path
	switch {
	case strings.Contains(p, "/analyze-cv/"),
		strings.HasSuffix(p, "/generate-questions"),
		strings.HasSuffix(p, "/generate-enhanced-resume"):
		return pipelineGroup
	default:
		return ""
	}
}

func newObjectStore(cfg config.Config) object.Store {
	if cfg.ObjectStoreType == "s3" {
		store, err := s3store.New(context.Background(), cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
		if err != nil {
			log.Printf("failed to init s3 store, falling back to local: %v", err)
		} else {
			return store
		}
	}
	return localstore.New(cfg.LocalStoreDir)
}

func newDatabase(cfg config.Config) *sql.DB {
	if cfg.DatabaseURL == "" {
		return nil
	}
	ctx := context.Background()
	conn, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		log.Printf("failed to connect database, falling back to memory: %v", err)
		return nil
	}
	if err := db.RunMigrations(ctx, conn); err != nil {
		log.Printf("failed to run migrations, falling back to memory: %v", err)
		return nil
	}
	return conn
}

func newLLMClient(cfg config.Config) llm.Client {
	switch cfg.LLMProvider {
	case "gemini":
		client, err := gemini.NewClient(context.Background(), os.Getenv("GEMINI_API_KEY"), cfg.LLMModel)
		if err != nil {
			log.Printf("failed to init gemini client: %v", err)
			return llm.PlaceholderClient{}
		}
		return client
	default:
		client, err := openai.NewClient(os.Getenv("OPENAI_API_KEY"), cfg.LLMModel)
		if err != nil {
			log.Printf("failed to init openai client: %v", err)
			return llm.PlaceholderClient{}
		}
		return client
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
