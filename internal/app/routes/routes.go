package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/mhasan/dancecamp/internal/app/controllers"
	"github.com/mhasan/dancecamp/internal/app/models"
	"github.com/mhasan/dancecamp/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	classController *controllers.ClassController,
	instructorController *controllers.InstructorController,
	cartController *controllers.CartController,
	paymentController *controllers.PaymentController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/token", authController.IssueToken)
	}

	// Account registration happens right after the frontend sign-in flow,
	// before a token exists, so it stays public.
	v1.POST("/users", userController.RegisterUser)

	classes := v1.Group("/classes")
	{
		classes.GET("/approved", classController.GetApprovedClasses)
		classes.GET("/popular", classController.GetPopularClasses)
	}

	v1.GET("/instructors", instructorController.ListInstructors)

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		// Role checks; the email path segment must match the token subject
		usersSelf := authenticated.Group("/users")
		usersSelf.Use(authMiddleware.SelfRequired("email"))
		{
			usersSelf.GET("/admin/:email", userController.CheckAdminRole)
			usersSelf.GET("/instructor/:email", userController.CheckInstructorRole)
		}

		// Admin-only account management
		usersAdmin := authenticated.Group("/users")
		usersAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			usersAdmin.GET("", userController.GetAllUsers)
			usersAdmin.PATCH("/:id/role", userController.UpdateRole)
			usersAdmin.DELETE("/:id", userController.DeleteUser)
		}

		// Catalog
		classesProtected := authenticated.Group("/classes")
		{
			classesProtected.GET("/:id", classController.GetClassByID)

			classesInstructor := classesProtected.Group("")
			classesInstructor.Use(authMiddleware.RoleRequired(models.RoleInstructor))
			{
				classesInstructor.POST("", classController.CreateClass)
				classesInstructor.PATCH("/:id", classController.UpdateClass)
			}

			classesOwner := classesProtected.Group("")
			classesOwner.Use(authMiddleware.SelfRequired("email"))
			{
				classesOwner.GET("/instructor/:email", classController.GetMyClasses)
			}

			classesAdmin := classesProtected.Group("")
			classesAdmin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
			{
				classesAdmin.GET("", classController.GetAllClasses)
				classesAdmin.PATCH("/:id/status", classController.UpdateStatus)
				classesAdmin.PATCH("/:id/feedback", classController.SetFeedback)
			}
		}

		// Cart
		cart := authenticated.Group("/cart")
		{
			cart.POST("", cartController.SelectClass)
			cart.DELETE("/:id", cartController.RemoveEntry)

			cartSelf := cart.Group("")
			cartSelf.Use(authMiddleware.SelfRequired("email"))
			{
				cartSelf.GET("/:email", cartController.ListSelectedClasses)
			}
		}

		// Payments and settlement
		payments := authenticated.Group("/payments")
		{
			payments.POST("/intent", paymentController.CreateIntent)
			payments.POST("", paymentController.Settle)

			paymentsSelf := payments.Group("")
			paymentsSelf.Use(authMiddleware.SelfRequired("email"))
			{
				paymentsSelf.GET("/:email", paymentController.ListPayments)
				paymentsSelf.GET("/enrollments/:email", paymentController.ListEnrollments)
			}
		}
	}
}
