package main

import (
	"flag"

	"formu.link/configs"
	"formu.link/configs/configslog"
	"formu.link/database"
)

func main() {
	configs.LoadEnv()
	configslog.InitLogger()
	defer configslog.Sync()

	migrateFlag := flag.Bool("migrate", false, "Migrasyonları çalıştır")
	seedFlag := flag.Bool("seed", false, "Seeder'ları çalıştır")
	flag.Parse()

	db := configs.InitDB()

	configslog.SLog.Info("Veritabanı başlatma işlemi çalıştırılıyor...")
	database.Initialize(db, *migrateFlag, *seedFlag)
}
