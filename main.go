package main

import (
	"formu.link/configs"
	"formu.link/configs/configslog"
	"formu.link/database"
	"formu.link/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"go.uber.org/zap"
)

func main() {
	configs.LoadEnv()
	configslog.InitLogger()
	defer configslog.Sync()

	db := configs.InitDB()

	// AUTO_MIGRATE=true ile şema açılışta güncellenir; üretimde
	// database/cmd aracı tercih edilir.
	if configs.GetEnv("AUTO_MIGRATE", "false") == "true" {
		if err := database.RunMigrationsInOrder(db); err != nil {
			configslog.Log.Fatal("Otomatik migrasyon başarısız", zap.Error(err))
		}
		if err := database.CheckAndRunSeeders(db); err != nil {
			configslog.Log.Fatal("Otomatik seed başarısız", zap.Error(err))
		}
	}

	engine := html.New("./views", ".html")
	engine.Reload(configs.GetEnv("APP_ENV", "development") != "production")

	app := fiber.New(fiber.Config{
		Views:       engine,
		ViewsLayout: "layouts/panel_layout",
		AppName:     "formu.link",
	})

	app.Static("/assets", "./assets")
	routes.SetupRoutes(app)

	addr := ":" + configs.AppPort()
	configslog.SLog.Infof("Sunucu %s adresinde dinliyor", addr)
	if err := app.Listen(addr); err != nil {
		configslog.Log.Fatal("Sunucu başlatılamadı", zap.Error(err))
	}
}
