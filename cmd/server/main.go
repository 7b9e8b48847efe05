package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/jaguar8340/crm-KS/internal/config"
	"github.com/jaguar8340/crm-KS/internal/database"
	"github.com/jaguar8340/crm-KS/internal/handler"
	"github.com/jaguar8340/crm-KS/internal/queue"
	"github.com/jaguar8340/crm-KS/internal/repository"
	"github.com/jaguar8340/crm-KS/internal/router"
	queue_publisher "github.com/jaguar8340/crm-KS/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the vars directly
	cfg := config.Load()

	db, err := database.Open(cfg.MongoURL, cfg.DBName)
	if err != nil {
		log.Fatalf("connect to mongodb: %v", err)
	}
	defer func() { _ = database.Close(db) }()

	users := repository.NewUserRepo(db)
	customers := repository.NewCustomerRepo(db)
	vehicles := repository.NewVehicleRepo(db)
	employees := repository.NewEmployeeRepo(db)
	tasks := repository.NewTaskRepo(db)
	cases := repository.NewExperienceRepo(db)

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, login rate limiting disabled")
	}

	// Background reconciliation for vehicles orphaned by a crash inside
	// the customer cascade delete.
	go queue.StartCustomerDeletedConsumer(vehicles)

	h := router.Handlers{
		Auth:       handler.NewAuthHandler(cfg, users),
		Users:      handler.NewUserHandler(cfg, users),
		Customers:  handler.NewCustomerHandler(customers, vehicles, queue_publisher.PublishCustomerDeleted),
		Vehicles:   handler.NewVehicleHandler(vehicles, customers),
		Employees:  handler.NewEmployeeHandler(employees),
		Tasks:      handler.NewTaskHandler(tasks),
		Experience: handler.NewExperienceHandler(cases),
		Upload:     handler.NewUploadHandler(cfg.UploadDir),
	}

	e := echo.New()
	e.HideBanner = true
	router.Register(e, cfg, rdb, users, h)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, db=%s)", addr, cfg.Env, cfg.DBName)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
