// file: internals/route/index.go
package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kyaungku_backend/internals/configs"
	middleware "kyaungku_backend/internals/middlewares/auth"
	"kyaungku_backend/internals/route/details"
)

// SetupRoutes mounts the public auth surface and the JWT-guarded admin
// group. Everything under /api/a requires the admin role.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	api := app.Group("/api")

	details.AuthRoutes(api.Group("/auth"), db)

	admin := api.Group("/a",
		middleware.AuthJWT(middleware.AuthJWTOpts{
			Secret:              configs.JWTSecret,
			AllowCookieFallback: true,
		}),
		middleware.RequireAdmin(),
	)
	details.RecordsAdminRoutes(admin, db)
}
