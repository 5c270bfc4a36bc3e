package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/beka-birhanu/vinom-mazeview/api"
	api_i "github.com/beka-birhanu/vinom-mazeview/api/i"
	mazeapi "github.com/beka-birhanu/vinom-mazeview/api/maze"
	"github.com/beka-birhanu/vinom-mazeview/config"
	logger "github.com/beka-birhanu/vinom-mazeview/infrastruture/log"
	mazeclient "github.com/beka-birhanu/vinom-mazeview/infrastruture/mazeapi"
	"github.com/beka-birhanu/vinom-mazeview/infrastruture/repo"
	"github.com/beka-birhanu/vinom-mazeview/infrastruture/sortedstorage"
	"github.com/beka-birhanu/vinom-mazeview/service"
	"github.com/beka-birhanu/vinom-mazeview/service/i"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Global variables for dependencies
var (
	mongoClient    *mongo.Client
	redisClient    *redis.Client
	snapshotRepo   i.SnapshotRepo
	recentIndex    i.SortedIndex
	mazeService    i.MazeService
	session        *service.Session
	mazeController api_i.Controller
	router         *api.Router
	appLogger      i.Logger
)

func initMongo(ctx context.Context) {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", config.Envs.DBUser, config.Envs.DBPassword, config.Envs.DBHost, config.Envs.DBPort)

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Failed to connect to MongoDB: %v", err))
		os.Exit(1)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Error(fmt.Sprintf("MongoDB ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to MongoDB")
}

func initRedis(ctx context.Context) {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     config.Envs.RedisAddr,
		Password: config.Envs.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to Redis")
}

func initSnapshotRepo(client *mongo.Client) {
	snapshotRepo = repo.NewSnapshotRepo(client, config.Envs.DBName, "snapshots")
	appLogger.Info("Snapshot repository initialized")
}

func initRecentIndex(client *redis.Client) {
	var err error
	recentIndex, err = sortedstorage.NewRedisSortedIndex(client, config.Envs.RecentTTLSeconds)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating recent snapshots index: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Recent snapshots index initialized")
}

func initMazeService() {
	clientLogger, err := logger.New("MAZE-SERVICE", config.ColorPurple, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze service logger: %v", err))
		os.Exit(1)
	}

	mazeService, err = mazeclient.NewClient(mazeclient.Config{
		BaseURL: config.Envs.MazeServiceURL,
		Logger:  clientLogger,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze service client: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Maze service client initialized")
}

func initSession() {
	sessionLogger, err := logger.New("SESSION", config.ColorCyan, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating session logger: %v", err))
		os.Exit(1)
	}

	session, err = service.NewSession(&service.Config{
		MazeService:      mazeService,
		Snapshots:        snapshotRepo,
		Recent:           recentIndex,
		Logger:           sessionLogger,
		CanvasWidth:      config.Envs.CanvasWidth,
		CanvasHeight:     config.Envs.CanvasHeight,
		PlaybackInterval: time.Duration(config.Envs.PlaybackIntervalMS) * time.Millisecond,
		Rows:             config.Envs.DefaultRows,
		Cols:             config.Envs.DefaultCols,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze session: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Maze session initialized")
}

func initMazeController() {
	var err error
	mazeController, err = mazeapi.NewMazeController(session)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Maze controller initialized")
}

func initRouter() {
	gin.SetMode(config.Envs.GinMode)
	router = api.NewRouter(api.Config{
		Addr:        fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:     "/api",
		Controllers: []api_i.Controller{mazeController},
	})
	appLogger.Info("Router initialized")
}

// generateInitial fetches the first maze. The empty grid stays up if the service is down.
func generateInitial(ctx context.Context) {
	if err := session.Generate(ctx, config.Envs.DefaultRows, config.Envs.DefaultCols); err != nil {
		appLogger.Warning(fmt.Sprintf("Initial maze not generated: %v", err))
	}
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel() // Ensure the context is always canceled

	// Initialize dependencies
	appLogger, _ = logger.New("APP", config.ColorGreen, os.Stdout)

	initMongo(ctx)
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	initRedis(ctx)
	defer redisClient.Close()

	initSnapshotRepo(mongoClient)
	initRecentIndex(redisClient)
	initMazeService()
	initSession()
	defer session.Close()

	generateInitial(ctx)
	initMazeController()
	initRouter()

	// Run HTTP server
	if err := router.Run(); err != nil {
		appLogger.Error(fmt.Sprintf("Starting server: %v", err))
		os.Exit(1)
	}
}
