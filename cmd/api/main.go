package main

import (
	"time"

	"app/internal/config"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/server"
	"app/internal/usecase"
	logx "app/pkg/logger"

	"github.com/joho/godotenv"
)

func main() {
	//.envは無くてもよい（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logx.Init()
		logx.Fatal().Err(err).Msg("config load failed")
	}

	logx.Init(logx.LoggerOpts{Environment: cfg.GoEnv})

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		logx.Fatal().Err(err).Msg("db connect failed")
	}
	if err := db.Migrate(gormDB); err != nil {
		logx.Fatal().Err(err).Msg("db migrate failed")
	}

	//Repository（GORM実装）生成
	txManager := infraRepo.NewTxManagerGorm(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	orderItemRepo := infraRepo.NewOrderItemGormRepository(gormDB)
	transactionRepo := infraRepo.NewTransactionGormRepository(gormDB)
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	surveyRepo := infraRepo.NewSurveyGormRepository(gormDB)

	//Usecase生成
	checkoutUC := usecase.NewCheckoutUsecase(txManager)
	orderUC := usecase.NewOrderUsecase(orderRepo, orderItemRepo)
	transactionUC := usecase.NewTransactionUsecase(orderRepo, transactionRepo)
	productUC := usecase.NewProductUsecase(productRepo, categoryRepo)
	categoryUC := usecase.NewCategoryUsecase(categoryRepo)
	userUC := usecase.NewUserUsecase(userRepo, 12)
	surveyUC := usecase.NewSurveyUsecase(surveyRepo)
	reportUC := usecase.NewReportUsecase(productRepo, orderItemRepo)
	authUC := usecase.NewAuthUsecase(userRepo, cfg.JWTSecret, 15*time.Minute)

	//Handler生成
	handlers := server.Handlers{
		Auth:        handler.NewAuthHandler(authUC),
		Order:       handler.NewOrderHandler(checkoutUC, orderUC),
		Transaction: handler.NewTransactionHandler(transactionUC),
		Product:     handler.NewProductHandler(productUC),
		Category:    handler.NewCategoryHandler(categoryUC),
		User:        handler.NewUserHandler(userUC),
		Survey:      handler.NewSurveyHandler(surveyUC),
		Report:      handler.NewReportHandler(reportUC),
	}

	//Server起動
	e := server.New()
	server.RegisterRoutes(e, cfg, handlers)

	addr := ":" + cfg.Port
	logx.Info().Str("addr", addr).Str("env", cfg.GoEnv).Msg("starting server")
	if err := server.Start(e, addr); err != nil {
		logx.Fatal().Err(err).Msg("server stopped")
	}
}
