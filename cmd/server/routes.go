package main

import (
	"github.com/gin-gonic/gin"
	"lend-circle.backend/internal/interfaces/http/handlers"
	"lend-circle.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler      *handlers.AuthHandler
	groupHandler     *handlers.GroupHandler
	portfolioHandler *handlers.PortfolioHandler
	lendingHandler   *handlers.LendingHandler
	authMiddleware   gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/refresh", d.authHandler.RefreshToken)
			auth.GET("/me", d.authMiddleware, d.authHandler.GetMe)
		}

		// Trust group routes (protected)
		groups := v1.Group("/groups")
		groups.Use(d.authMiddleware)
		{
			groups.POST("", d.groupHandler.CreateGroup)
			groups.POST("/:id/join", d.groupHandler.JoinGroup)
			groups.POST("/contribute", d.groupHandler.Contribute)
			groups.GET("/me", d.groupHandler.GetMyGroup)
		}

		// Portfolio routes (protected)
		portfolio := v1.Group("/portfolio")
		portfolio.Use(d.authMiddleware)
		{
			portfolio.PUT("", d.portfolioHandler.Upsert)
			portfolio.GET("", d.portfolioHandler.Get)
		}

		// Loan routes (protected); mutations are idempotency-keyed
		loans := v1.Group("/loans")
		loans.Use(d.authMiddleware)
		{
			loans.GET("", d.lendingHandler.ListLoans)
			loans.GET("/borrowing-power", d.lendingHandler.BorrowingPower)
			loans.POST("/borrow", middleware.IdempotencyMiddleware(), d.lendingHandler.Borrow)
			loans.POST("/auto-roll", middleware.IdempotencyMiddleware(), d.lendingHandler.AutoRoll)
			loans.POST("/submit", middleware.IdempotencyMiddleware(), d.lendingHandler.Submit)
			loans.POST("/:id/repay", middleware.IdempotencyMiddleware(), d.lendingHandler.Repay)
			loans.POST("/liquidation-check", d.lendingHandler.LiquidationCheck)
		}

		// FX simulation (protected)
		fx := v1.Group("/fx")
		fx.Use(d.authMiddleware)
		{
			fx.GET("/simulate", d.lendingHandler.SimulateFX)
		}
	}
}
