package routes

import (
	"github.com/gofiber/fiber/v2"

	"iqscaler/backend/config"
	"iqscaler/backend/controllers"
	"iqscaler/backend/middleware"
	"iqscaler/backend/services"
)

// UploadsPrefix is where the filesystem blob store is served.
const UploadsPrefix = "/uploads"

func SetupRoutes(app *fiber.App, svc *services.Services, cfg *config.Config) {
	// Middleware
	protect := middleware.Protect(svc.Users, cfg)
	admin := middleware.AdminOnly()

	// User routes; /profile must be registered before /:id
	authController := controllers.NewAuthController(svc.Users, cfg)
	userController := controllers.NewUserController(svc.Users)
	users := app.Group("/api/users")
	users.Post("/", authController.Register)
	users.Post("/login", authController.Login)
	users.Post("/forgotpassword", authController.ForgotPassword)
	users.Put("/resetpassword/:token", authController.ResetPassword)
	users.Get("/profile", protect, userController.GetProfile)
	users.Get("/", protect, admin, userController.ListUsers)
	users.Get("/:id", protect, admin, userController.GetUser)
	users.Put("/:id", protect, admin, userController.UpdateUser)
	users.Delete("/:id", protect, admin, userController.DeleteUser)

	// Question routes
	questionController := controllers.NewQuestionController(svc)
	questions := app.Group("/api/questions")
	questions.Get("/test", questionController.GetTest)
	questions.Post("/submit", protect, questionController.SubmitTest)
	questions.Get("/categories", protect, admin, questionController.Categories)
	questions.Get("/", protect, admin, questionController.ListQuestions)
	questions.Post("/", protect, admin, questionController.CreateQuestion)
	questions.Put("/:id", protect, admin, questionController.UpdateQuestion)
	questions.Delete("/:id", protect, admin, questionController.DeleteQuestion)

	// Config routes
	configController := controllers.NewConfigController(svc.Configs)
	app.Get("/api/config/test", configController.GetTestConfig)
	app.Put("/api/config/test", protect, admin, configController.UpdateTestConfig)

	// Result routes
	resultController := controllers.NewResultController(svc.Results)
	results := app.Group("/api/results")
	results.Get("/leaderboard", resultController.Leaderboard)
	results.Get("/myresults", protect, resultController.MyResults)
	results.Get("/", protect, admin, resultController.AllResults)
	results.Get("/:id", protect, resultController.GetResult)

	// Certificate routes
	certificateController := controllers.NewCertificateController(svc.Certificates, cfg)
	app.Get("/api/certificates/verify/:resultId", certificateController.VerifyCertificate)
	app.Get("/api/certificates/:id", protect, certificateController.GetCertificate)

	// Payment routes
	paymentController := controllers.NewPaymentController(svc.Payments)
	payments := app.Group("/api/payments", protect)
	payments.Get("/price", paymentController.GetPrice)
	payments.Post("/create-order", paymentController.CreateOrder)
	payments.Post("/verify", paymentController.VerifyPayment)
	payments.Put("/fail", paymentController.MarkFailed)
	payments.Get("/history", admin, paymentController.History)

	uploadController := controllers.NewUploadController(svc.Uploads)
	app.Post("/api/upload", protect, admin, uploadController.UploadImage)
	if cfg.BlobDriver == config.BlobFS {
		app.Static(UploadsPrefix, cfg.UploadDir)
	}

	contactController := controllers.NewContactController(svc.Contact)
	app.Post("/api/contact", contactController.SendMessage)
}
