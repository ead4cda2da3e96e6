package main

import (
	"context"
	"net/http"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mastercp/arena/internal/api"
	"github.com/mastercp/arena/internal/database"
	"github.com/mastercp/arena/internal/service"
	"github.com/mastercp/arena/internal/service/catalog_service"
	"github.com/mastercp/arena/internal/service/contest_service"
	"github.com/mastercp/arena/internal/service/leaderboard_service"
	"github.com/mastercp/arena/internal/service/rating_service"
	"github.com/mastercp/arena/internal/service/user_service"
	"github.com/redis/go-redis/v9"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	log "github.com/sirupsen/logrus"
)

const defaultProblemsFile = "problems.json"

var (
	apiConfig *api.Api
)

func initDatabase() database.Store {
	// get the database url
	dbURL := os.Getenv("DB_URL")
	if dbURL == "" {
		panic("dbURL not found")
	}

	// create a conneciton to the database
	pool, err := pgxpool.New(context.Background(), dbURL)
	if err != nil {
		panic(err)
	}

	// get the query tool with this connection
	return database.NewStore(pool)
}

func initRedis() *redis.Client {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		log.Warn("REDIS_URL not set, leaderboard falls back to the database")
		return nil
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		panic(err)
	}
	return redis.NewClient(opts)
}

func initCatalogService() *catalog_service.CatalogService {
	log.Info("initializing catalog service")
	problemsFile := os.Getenv("PROBLEMS_FILE")
	if problemsFile == "" {
		problemsFile = defaultProblemsFile
	}
	cs := &catalog_service.CatalogService{}
	if err := cs.LoadFromFile(problemsFile); err != nil {
		panic(err)
	}
	return cs
}

func initLeaderboardService(db database.Store, rdb *redis.Client) *leaderboard_service.LeaderboardService {
	return &leaderboard_service.LeaderboardService{
		DB:    db,
		Redis: rdb,
	}
}

func initUserService(
	db database.Store,
	cs *catalog_service.CatalogService,
	lb *leaderboard_service.LeaderboardService,
) *user_service.UserService {
	log.Info("initializing user service")
	return &user_service.UserService{
		DB:                       db,
		CatalogServiceConfig:     cs,
		LeaderboardServiceConfig: lb,
	}
}

func initContestService(
	db database.Store,
	cs *catalog_service.CatalogService,
	lb *leaderboard_service.LeaderboardService,
) *contest_service.ContestService {
	log.Info("initializing contest service")
	return &contest_service.ContestService{
		DB:                       db,
		CatalogServiceConfig:     cs,
		RatingServiceConfig:      &rating_service.RatingService{},
		LeaderboardServiceConfig: lb,
	}
}

func initApi(db database.Store) *api.Api {
	log.Info("initializing api config")
	rdb := initRedis()
	cs := initCatalogService()
	log.Info("catalog service created")
	lb := initLeaderboardService(db, rdb)
	log.Info("leaderboard service created")
	us := initUserService(db, cs, lb)
	log.Info("user service created")
	ctest := initContestService(db, cs, lb)
	log.Info("contest service created")
	a := api.Api{
		DB:                       db,
		UserServiceConfig:        us,
		ContestServiceConfig:     ctest,
		LeaderboardServiceConfig: lb,
		CatalogServiceConfig:     cs,
	}
	return &a
}

func setup() {
	godotenv.Load()
	service.InitializeServices()
	db := initDatabase()
	apiConfig = initApi(db)
}

func setCors(router *chi.Mux) {
	router.Use(
		cors.Handler(
			cors.Options{
				AllowedOrigins:   []string{"https://*", "http://*"},
				AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
				AllowedHeaders:   []string{"*"},
				AllowCredentials: false,
				ExposedHeaders:   []string{"Link"},
				MaxAge:           300,
			},
		),
	)
	log.Info("cors options has been set")
}

func main() {
	setup()

	// initialize a new router
	router := chi.NewRouter()
	setCors(router)

	// mount v1 router
	v1router := NewV1Router()
	router.Mount("/v1", v1router)
	log.Info("v1 router has been mounted")

	// find port for the server to start
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
		log.Warnf("port not found in environment. using default port %s", port)
	}

	// find the address to start the server
	apiAddress := os.Getenv("API_URL") + ":" + port

	log.Info("starting server")
	// create a server object to listen to all requests
	srv := http.Server{
		Handler: router,
		Addr:    apiAddress,
	}
	err := srv.ListenAndServe()
	if err != nil {
		log.Fatalf("Server cannot be started. Error: %v", err)
		return
	}

}
