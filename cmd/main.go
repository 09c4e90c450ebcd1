package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/yungbote/talentgraph-backend/internal/graph"
	"github.com/yungbote/talentgraph-backend/internal/handlers"
	"github.com/yungbote/talentgraph-backend/internal/platform/envutil"
	"github.com/yungbote/talentgraph-backend/internal/platform/logger"
	"github.com/yungbote/talentgraph-backend/internal/platform/neo4jdb"
	"github.com/yungbote/talentgraph-backend/internal/repos"
	"github.com/yungbote/talentgraph-backend/internal/server"
	"github.com/yungbote/talentgraph-backend/internal/services"
)

func main() {
	_ = godotenv.Load()

	// Logger
	logMode := envutil.String("LOG_MODE", "development")
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Neo4j
	log.Info("Connecting to Neo4j from main...")
	client, err := neo4jdb.NewFromEnv(log)
	if err != nil {
		log.Fatal("Neo4j init failed", "error", err)
	}
	defer client.Close(context.Background())

	// Schema + constraints
	schema := graph.DefaultSchema()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	client.ApplyConstraints(ctx, graph.ConstraintDDL(schema))
	cancel()

	// Repos
	log.Info("Setting up Repos from main...")
	candidateRepo := repos.NewCandidateRepo(schema, client, log)
	skillRepo := repos.NewSkillRepo(schema, client, log)
	projectRepo := repos.NewProjectRepo(schema, client, log)
	languageRepo := repos.NewLanguageRepo(schema, client, log)
	jobTitleRepo := repos.NewJobTitleRepo(schema, client, log)
	majorRepo := repos.NewMajorRepo(schema, client, log)
	universityRepo := repos.NewUniversityRepo(schema, client, log)
	matchRepo := repos.NewMatchRepo(repos.DefaultMatchConfig(), client, log)

	// Services
	log.Info("Setting up Services from main...")
	candidateService := services.NewCandidateService(services.CandidateServiceDeps{
		Candidates:   candidateRepo,
		Skills:       skillRepo,
		Projects:     projectRepo,
		Languages:    languageRepo,
		JobTitles:    jobTitleRepo,
		Majors:       majorRepo,
		Universities: universityRepo,
	}, log)

	// Handlers
	log.Info("Setting up Handlers from main...")
	candidateHandler := handlers.NewCandidateHandler(candidateService, matchRepo)
	featureHandler := handlers.NewFeatureHandler(map[string]repos.FeatureRepo{
		"skills":       skillRepo,
		"projects":     projectRepo,
		"languages":    languageRepo,
		"job_titles":   jobTitleRepo,
		"majors":       majorRepo,
		"universities": universityRepo,
	})

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		CandidateHandler: candidateHandler,
		FeatureHandler:   featureHandler,
	})

	port := envutil.String("PORT", "8080")
	fmt.Printf("Server listening on :%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Warn("Server failed", "error", err)
	}
}
