package main

import (
	"net/http"

	"DocKeeper/internal/config"
	"DocKeeper/internal/handlers"
	"DocKeeper/internal/middleware"
	"DocKeeper/internal/repo"
	"DocKeeper/internal/service"
	"DocKeeper/internal/storage"

	"go.uber.org/zap"
)

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar)
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	files, err := storage.NewDisk(cfg.MediaRoot)
	if err != nil {
		sugar.Fatalw("failed to initialize file storage", "error", err)
	}

	userRepo := repo.NewUserRepository(gormDB)
	catRepo := repo.NewCategoryRepository(gormDB)
	docRepo := repo.NewDocumentRepository(gormDB)
	shareRepo := repo.NewShareRepository(gormDB)
	commentRepo := repo.NewCommentRepository(gormDB)
	notifRepo := repo.NewNotificationRepository(gormDB)

	userService := service.NewUserService(userRepo)
	docService := service.NewDocumentService(docRepo, userRepo, notifRepo, files, sugar)
	catService := service.NewCategoryService(catRepo, userRepo, sugar)
	shareService := service.NewShareService(shareRepo, docRepo, notifRepo, files, sugar)
	commentService := service.NewCommentService(commentRepo, docRepo, shareService, notifRepo, sugar)
	notifService := service.NewNotificationService(notifRepo)
	analyticsService := service.NewAnalyticsService(docRepo, files, sugar)
	transferService := service.NewTransferService(docService, files, sugar)

	h := handlers.NewHandler(handlers.Services{
		Users:         userService,
		Documents:     docService,
		Categories:    catService,
		Shares:        shareService,
		Comments:      commentService,
		Notifications: notifService,
		Analytics:     analyticsService,
		Transfer:      transferService,
	}, sugar, cfg)

	sugar.Infow(
		"Starting server",
		"addr", cfg.RunAddress,
	)

	sugar.Infow("Config",
		"RunAddress", cfg.RunAddress,
		"DatabaseDSN", cfg.DatabaseDSN,
		"MediaRoot", cfg.MediaRoot,
		"MaxUploadMB", cfg.MaxUploadMB,
	)

	if err := http.ListenAndServe(cfg.RunAddress, h.Router); err != nil {
		sugar.Fatalw("Server failed", "error", err)
	}
}
