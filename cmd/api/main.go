package main

import (
	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/logger"
	"app/internal/server"
	"app/internal/usecase"

	"github.com/joho/godotenv"
)

func main() {
	//.envは無くてもよい（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(logger.Options{
		Service: "remote-cart-api",
		Env:     cfg.GoEnv,
		Level:   cfg.LogLevel,
	})

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		panic(err)
	}
	if err := gormDB.AutoMigrate(&model.RemoteCart{}); err != nil {
		panic(err)
	}

	//Repository（GORM実装）生成
	cartRepo := infraRepo.NewRemoteCartGormRepository(gormDB)

	//Usecase生成
	cartUC := usecase.NewRemoteCartUsecase(cartRepo)

	//Handler生成
	cartH := handler.NewRemoteCartHandler(cartUC)

	//Server起動
	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}

	log.Info("starting remote cart api", "addr", addr)
	if err := server.Start(addr, cfg, cartH); err != nil {
		panic(err)
	}
}
