// file: internals/route/details/auth_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "kyaungku_backend/internals/features/users/auth/controller"
)

func AuthRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := authController.NewAuthController(db)
	r.Post("/login", ctrl.Login)
}
