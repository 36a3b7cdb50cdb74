package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/medbook/clinic-app/cron"
	"github.com/medbook/clinic-app/db"
	"github.com/medbook/clinic-app/redis"
	"github.com/medbook/clinic-app/routes"
)

func main() {
	app := fiber.New()
	db.Init()
	db.Migrate()
	redis.InitRedis()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("OK")
	})

	routes.SetupAuthRoutes(app)
	routes.SetupRBACRoutes(app)
	routes.SetupPatientRoutes(app)
	routes.SetupDoctorRoutes(app)
	routes.SetupAdminRoutes(app)

	cron.StartCronJobs()

	log.Fatal(app.Listen(":8000"))
}
