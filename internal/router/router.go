package router

import (
	"time"

	"credon/config"
	"credon/internal/handler"
	"credon/internal/middleware"
	"credon/internal/repository"
	"credon/internal/service"
	"credon/pkg/cloudinary"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func Setup(cfg *config.Config, db *gorm.DB, cloud cloudinary.Client) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(100, 60*time.Second)))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	walletRepo := repository.NewWalletRepository(db)
	planRepo := repository.NewPlanRepository(db)
	investmentRepo := repository.NewInvestmentRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	referralRepo := repository.NewReferralRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	noticeRepo := repository.NewNoticeRepository(db)
	supportRepo := repository.NewSupportRepository(db)
	pageRepo := repository.NewPageRepository(db)

	minDeposit, _ := decimal.NewFromString(cfg.Platform.MinDeposit)
	minWithdrawal, _ := decimal.NewFromString(cfg.Platform.MinWithdrawal)

	// Services
	authSvc := service.NewAuthService(cfg, db, userRepo, walletRepo)
	investmentSvc := service.NewInvestmentService(db, walletRepo, investmentRepo, planRepo)
	referralSvc := service.NewReferralService(db, userRepo, walletRepo, investmentRepo, referralRepo, transactionRepo)
	approvalSvc := service.NewApprovalService(db, userRepo, walletRepo, transactionRepo, minDeposit, minWithdrawal)
	automationSvc := service.NewAutomationService(settingRepo, walletRepo, investmentSvc, referralSvc)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	userHandler := handler.NewUserHandler(userRepo, walletRepo)
	investmentHandler := handler.NewInvestmentHandler(investmentSvc, investmentRepo, planRepo)
	transactionHandler := handler.NewTransactionHandler(approvalSvc, transactionRepo, settingRepo)
	referralHandler := handler.NewReferralHandler(userRepo, referralRepo)
	contentHandler := handler.NewContentHandler(noticeRepo, supportRepo, pageRepo)
	adminUserHandler := handler.NewAdminUserHandler(authSvc, userRepo, walletRepo, investmentRepo, transactionRepo)
	adminFinanceHandler := handler.NewAdminFinanceHandler(approvalSvc, transactionRepo, investmentRepo)
	adminContentHandler := handler.NewAdminContentHandler(noticeRepo, supportRepo, pageRepo, settingRepo, cloud)
	automationHandler := handler.NewAutomationHandler(automationSvc)

	authMw := middleware.AuthRequired(&cfg.JWT)

	api := r.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/admin/login", authHandler.AdminLogin)
			authGroup.GET("/validate-referral/:code", authHandler.ValidateReferral)
		}

		api.GET("/pages/:type", contentHandler.GetPage)
		api.GET("/plans", investmentHandler.ListPlans)

		user := api.Group("")
		user.Use(authMw)
		{
			user.GET("/profile", userHandler.Profile)
			user.GET("/wallet", userHandler.Wallet)

			user.POST("/investments/create", investmentHandler.Create)
			user.GET("/investments/my-investments", investmentHandler.MyInvestments)

			user.GET("/deposits/address", transactionHandler.DepositAddress)
			user.POST("/deposits/submit", transactionHandler.SubmitDeposit)
			user.POST("/withdrawals/request", transactionHandler.RequestWithdrawal)
			user.GET("/transactions/history", transactionHandler.History)

			user.GET("/referrals/my-referrals", referralHandler.MyReferrals)

			user.GET("/notices/active", contentHandler.ActiveNotices)
			user.POST("/support/create", contentHandler.CreateTicket)
			user.GET("/support/my-tickets", contentHandler.MyTickets)
		}

		admin := api.Group("/admin")
		admin.Use(authMw, middleware.AdminRequired())
		{
			admin.GET("/dashboard/stats", adminUserHandler.DashboardStats)

			admin.GET("/users", adminUserHandler.List)
			admin.POST("/users", adminUserHandler.Create)
			admin.GET("/users/:id", adminUserHandler.Details)
			admin.DELETE("/users/:id", adminUserHandler.Delete)
			admin.PUT("/users/:id/balance", adminUserHandler.UpdateBalance)
			admin.PUT("/users/:id/password", adminUserHandler.ResetPassword)

			admin.GET("/deposits/pending", adminFinanceHandler.PendingDeposits)
			admin.PUT("/deposits/:id/approve", adminFinanceHandler.ApproveDeposit)
			admin.PUT("/deposits/:id/reject", adminFinanceHandler.RejectDeposit)
			admin.GET("/withdrawals/pending", adminFinanceHandler.PendingWithdrawals)
			admin.PUT("/withdrawals/:id/approve", adminFinanceHandler.ApproveWithdrawal)
			admin.PUT("/withdrawals/:id/reject", adminFinanceHandler.RejectWithdrawal)
			admin.GET("/investments", adminFinanceHandler.ListInvestments)

			admin.GET("/notices", adminContentHandler.ListNotices)
			admin.POST("/notices", adminContentHandler.CreateNotice)
			admin.PUT("/notices/:id", adminContentHandler.UpdateNotice)
			admin.PUT("/notices/:id/toggle", adminContentHandler.ToggleNotice)
			admin.DELETE("/notices/:id", adminContentHandler.DeleteNotice)

			admin.GET("/support/tickets", adminContentHandler.ListTickets)
			admin.PUT("/support/tickets/:id", adminContentHandler.UpdateTicket)

			admin.PUT("/pages/:type", adminContentHandler.UpdatePage)
			admin.POST("/pages/:type/documents", adminContentHandler.UploadPageDocument)
			admin.DELETE("/pages/:type/documents/:docId", adminContentHandler.DeletePageDocument)

			admin.GET("/settings", adminContentHandler.GetSettings)
			admin.PUT("/settings/deposit-address", adminContentHandler.UpdateDepositAddress)

			admin.GET("/automation/status", automationHandler.Status)
			admin.PUT("/automation/toggle", automationHandler.Toggle)
			admin.POST("/automation/run-daily-roi", automationHandler.RunDailyROI)
			admin.POST("/automation/run-referral-bonuses", automationHandler.RunReferralBonuses)
			admin.POST("/automation/process-maturities", automationHandler.ProcessMaturities)
			admin.POST("/automation/reset-withdrawal-eligibility", automationHandler.ResetWithdrawalEligibility)
		}
	}

	return r
}
