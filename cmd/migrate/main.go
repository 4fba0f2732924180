package main

import (
	config "transfer-storefront/configs"
	database "transfer-storefront/internal/pkg/db"
	"transfer-storefront/internal/pkg/logger"
)

func main() {
	logger.Setup()
	env, err := config.GetEnv()
	if err != nil {
		logger.Error.Println("Error getting environment", err)
		panic(err)
	}
	if env.DBDriver == database.MEMORY {
		logger.Info.Println("DB_DRIVER=memory, nothing to migrate")
		return
	}

	// Setup Database
	db, err := database.Setup(&database.Config{
		Host:     env.DBHost,
		Port:     env.DBPort,
		User:     env.DBUser,
		Password: env.DBPass,
		Database: env.DBName,
		SSLMode:  env.DBSSLMode,
		Driver:   env.DBDriver,
	})
	if err != nil {
		logger.Error.Println("Error setting up Database", err)
		return
	}
	defer func() { _ = db.Close() }()

	err = db.RunMigrations()
	if err != nil {
		logger.Error.Println("Error running migrations", err)
		return
	}

	logger.Info.Println("Migrations completed successfully")
}
