package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	infra "github.com/pot-code/coursehub/internal/infrastructure"
	"github.com/pot-code/coursehub/internal/infrastructure/driver"
	"github.com/pot-code/coursehub/internal/infrastructure/logging"
	"github.com/pot-code/coursehub/internal/infrastructure/uuid"
	ihttp "github.com/pot-code/coursehub/internal/interfaces/http"
	"github.com/pot-code/coursehub/internal/repository"
	"github.com/pot-code/coursehub/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	log.SetFlags(log.Lshortfile | log.Ldate | log.Ltime)
	option, err := infra.InitConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.NewLogger(&logging.Config{
		FilePath: option.Logging.FilePath,
		Level:    option.Logging.Level,
		AppID:    option.AppID,
		Env:      option.Env,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %s\n", err)
	}
	logger = logger.With(
		zap.String("service.id", option.AppID),
	)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbConn, err := driver.GetDBConnection(&driver.DBConfig{
		User:     option.Database.User,
		Password: option.Database.Password,
		MaxConn:  option.Database.MaxConn,
		Protocol: option.Database.Protocol,
		Driver:   option.Database.Driver,
		Host:     option.Database.Host,
		Port:     option.Database.Port,
		Query:    option.Database.Query,
		Schema:   option.Database.Schema,
	})
	if err != nil {
		logger.Fatal("Failed to create DB connection", zap.Error(err))
	}
	defer dbConn.Close(context.Background())
	logger.Debug("Create db connection instance", zap.String("db.driver", option.Database.Driver),
		zap.String("db.schema", option.Database.Schema),
		zap.String("db.host", option.Database.Host),
	)

	if option.Database.Migrate {
		if err := repository.InitSchema(logging.SetLoggerInContext(ctx, logger), dbConn); err != nil {
			logger.Fatal("Failed to initialize schema", zap.Error(err))
		}
		logger.Info("Schema is up to date")
	}

	rdb := driver.NewRedisClient(option.KVStore.Host, option.KVStore.Port, option.KVStore.Password)
	defer rdb.Close()

	UUIDGenerator := uuid.NewNanoIDGenerator(option.Security.IDLength)
	var (
		UserRepo     = repository.NewUserRepository(dbConn, UUIDGenerator)
		LessonRepo   = repository.NewLessonRepository(dbConn)
		ProgressRepo = repository.NewProgressRepository(dbConn, UUIDGenerator)
		QuizRepo     = repository.NewQuizRepository(dbConn, UUIDGenerator)
	)

	useCases := &ihttp.UseCases{
		User:     usecase.NewUserUseCase(UserRepo, option.Security.MaxLoginAttempts, option.Security.RetryTimeout),
		Lesson:   usecase.NewLessonUseCase(LessonRepo, ProgressRepo, QuizRepo, UserRepo, option.Course.Title),
		Progress: usecase.NewProgressUseCase(LessonRepo, ProgressRepo, QuizRepo),
	}

	if err := ihttp.Serve(ctx, dbConn, rdb, option, useCases, logger); err != nil {
		logger.Fatal("Server stopped", zap.Error(err))
	}
	logger.Info("Server stopped")
}
