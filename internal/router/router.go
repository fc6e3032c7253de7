package router

import (
	"github.com/Atomiksnip3r04/Gestore-spese/internal/bank"
	"github.com/Atomiksnip3r04/Gestore-spese/internal/config"
	"github.com/Atomiksnip3r04/Gestore-spese/internal/handler"
	"github.com/Atomiksnip3r04/Gestore-spese/internal/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine and mounts the API routes.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// avatars are served statically
	r.Static("/avatars", cfg.App.UploadDir)

	api := r.Group("/api")

	jwtSecret := cfg.JWT.Secret
	authHandler := handler.NewAuthHandler(db, jwtSecret, cfg.JWT.ExpireHours, cfg.Security.BcryptCost)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// home-page notices are visible without login, like the original
	// index page
	notifyHandler := handler.NewNotifyHandler(db, cfg.App.NoticeWindow)
	api.GET("/notices", notifyHandler.Notices)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(jwtSecret, db))

	protected.POST("/auth/logout", authHandler.Logout)
	protected.GET("/me", handler.GetMe)

	expenseHandler := handler.NewExpenseHandler(db)
	protected.GET("/expenses", expenseHandler.List)
	protected.POST("/expenses", expenseHandler.Create)
	protected.PUT("/expenses/:id", expenseHandler.Update)
	protected.DELETE("/expenses/:id", expenseHandler.Delete)

	incomeHandler := handler.NewIncomeHandler(db)
	protected.GET("/incomes", incomeHandler.List)
	protected.POST("/incomes", incomeHandler.Create)
	protected.PUT("/incomes/:id", incomeHandler.Update)
	protected.DELETE("/incomes/:id", incomeHandler.Delete)

	loanHandler := handler.NewLoanHandler(db)
	protected.GET("/loans", loanHandler.List)
	protected.POST("/loans", loanHandler.Create)
	protected.PUT("/loans/:id", loanHandler.Update)
	protected.DELETE("/loans/:id", loanHandler.Delete)

	recurringHandler := handler.NewRecurringHandler(db)
	protected.GET("/recurring", recurringHandler.List)
	protected.POST("/recurring", recurringHandler.Create)
	protected.PUT("/recurring/:id", recurringHandler.Update)
	protected.DELETE("/recurring/:id", recurringHandler.Delete)

	cardHandler := handler.NewCardHandler(db)
	protected.GET("/cards", cardHandler.List)
	protected.POST("/cards", cardHandler.Create)
	protected.PUT("/cards/:id", cardHandler.Update)
	protected.DELETE("/cards/:id", cardHandler.Delete)

	transactionHandler := handler.NewTransactionHandler(db)
	protected.GET("/transactions", transactionHandler.List)
	protected.POST("/transactions", transactionHandler.Create)
	protected.PUT("/transactions/:id", transactionHandler.Update)
	protected.DELETE("/transactions/:id", transactionHandler.Delete)

	statsHandler := handler.NewStatsHandler(db)
	protected.GET("/balance", statsHandler.Balance)
	protected.GET("/charts", statsHandler.Charts)
	protected.GET("/family", statsHandler.Family)

	protected.GET("/reminders", notifyHandler.Reminders)
	protected.GET("/family_expense_notifications", notifyHandler.FamilyExpenseNotifications)

	syncHandler := handler.NewSyncHandler(db, bank.NewClient(cfg.Bank), cfg.App.SyncWindow)
	protected.POST("/create_link_token", syncHandler.CreateLinkToken)
	protected.POST("/exchange_public_token", syncHandler.ExchangePublicToken)
	protected.GET("/sync_transactions", syncHandler.SyncTransactions)

	protected.POST("/update_notifications", handler.UpdateNotifications(db))
	protected.POST("/update_password", handler.ChangePassword(db, cfg.Security.BcryptCost))
	protected.POST("/profile/avatar", handler.UploadAvatar(db, cfg.App.UploadDir))
	protected.POST("/delete_account", handler.DeleteAccount(db))

	exportHandler := handler.NewExportHandler(db)
	protected.GET("/export/csv", exportHandler.ExportCSV)
	protected.GET("/export/xlsx", exportHandler.ExportXLSX)

	return r
}
