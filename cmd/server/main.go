package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/abuzarban/school-admin/internal/handler"
	"github.com/abuzarban/school-admin/internal/middleware"
	"github.com/abuzarban/school-admin/internal/repository"
	"github.com/abuzarban/school-admin/internal/service"
	"github.com/abuzarban/school-admin/internal/store"
	"github.com/abuzarban/school-admin/pkg/config"
	"github.com/abuzarban/school-admin/pkg/logger"
	corsmiddleware "github.com/abuzarban/school-admin/pkg/middleware/cors"
	reqidmiddleware "github.com/abuzarban/school-admin/pkg/middleware/requestid"
)

// @title School Admin API
// @version 1.0.0
// @description Single-tenant school administration and billing API
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	st, err := store.Open(cfg.DataDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to open store", "dir", cfg.DataDir, "error", err)
	}
	defer st.Close() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	validate := validator.New()

	studentRepo := repository.NewStudentRepository(st)
	classRepo := repository.NewClassRepository(st)
	sessionRepo := repository.NewSessionRepository(st)
	categoryRepo := repository.NewCategoryRepository(st)
	enrollmentRepo := repository.NewEnrollmentRepository(st)
	invoiceRepo := repository.NewInvoiceRepository(st)
	paymentRepo := repository.NewPaymentRepository(st)
	expenseRepo := repository.NewExpenseRepository(st)
	billingRepo := repository.NewBillingRepository(st)

	studentSvc := service.NewStudentService(studentRepo, validate, logr)
	classSvc := service.NewClassService(classRepo, studentRepo, validate, logr)
	sessionSvc := service.NewSessionService(sessionRepo, validate, logr)
	categorySvc := service.NewCategoryService(categoryRepo, validate, logr)
	enrollmentSvc := service.NewEnrollmentService(enrollmentRepo, billingRepo, categoryRepo, studentRepo, validate, logr)
	invoiceSvc := service.NewInvoiceService(invoiceRepo, billingRepo, categoryRepo, studentRepo, validate, logr)
	paymentSvc := service.NewPaymentService(paymentRepo, validate, logr)
	expenseSvc := service.NewExpenseService(expenseRepo, validate, logr)
	dashboardSvc := service.NewDashboardService(studentRepo, classRepo, sessionRepo, paymentRepo, expenseRepo, logr)
	exportSvc := service.NewExportService(paymentRepo, expenseRepo, invoiceRepo, studentRepo, categoryRepo, logr)

	var metricsSvc *service.MetricsService
	if cfg.Metrics.Enabled {
		metricsSvc = service.NewMetricsService()
		st.SetObserver(metricsSvc.ObserveStoreOperation)
	}

	studentHandler := handler.NewStudentHandler(studentSvc)
	classHandler := handler.NewClassHandler(classSvc)
	sessionHandler := handler.NewSessionHandler(sessionSvc)
	categoryHandler := handler.NewCategoryHandler(categorySvc)
	enrollmentHandler := handler.NewEnrollmentHandler(enrollmentSvc)
	invoiceHandler := handler.NewInvoiceHandler(invoiceSvc, exportSvc)
	paymentHandler := handler.NewPaymentHandler(paymentSvc, exportSvc)
	expenseHandler := handler.NewExpenseHandler(expenseSvc, exportSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	if metricsSvc != nil {
		r.Use(middleware.Metrics(metricsSvc))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	if metricsSvc != nil {
		r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))
	}

	api := r.Group(cfg.APIPrefix)
	{
		students := api.Group("/students")
		{
			students.GET("", studentHandler.List)
			students.POST("", studentHandler.Create)
			students.GET("/:id", studentHandler.Get)
			students.PUT("/:id", studentHandler.Update)
			students.DELETE("/:id", studentHandler.Delete)
		}

		classes := api.Group("/classes")
		{
			classes.GET("", classHandler.List)
			classes.POST("", classHandler.Create)
			classes.GET("/:id", classHandler.Get)
			classes.PUT("/:id", classHandler.Update)
			classes.DELETE("/:id", classHandler.Delete)
			classes.POST("/:id/invoices", invoiceHandler.GenerateForClass)
		}

		sessions := api.Group("/sessions")
		{
			sessions.GET("", sessionHandler.List)
			sessions.POST("", sessionHandler.Create)
			sessions.GET("/:id", sessionHandler.Get)
			sessions.PUT("/:id", sessionHandler.Update)
			sessions.DELETE("/:id", sessionHandler.Delete)
		}

		categories := api.Group("/payment-categories")
		{
			categories.GET("", categoryHandler.List)
			categories.POST("", categoryHandler.Create)
			categories.GET("/:id", categoryHandler.Get)
			categories.PUT("/:id", categoryHandler.Update)
			categories.DELETE("/:id", categoryHandler.Delete)
		}

		enrollments := api.Group("/enrollments")
		{
			enrollments.GET("", enrollmentHandler.List)
			enrollments.POST("", enrollmentHandler.Create)
			enrollments.PUT("/:id", enrollmentHandler.Update)
			enrollments.DELETE("/:id", enrollmentHandler.Delete)
		}

		invoices := api.Group("/invoices")
		{
			invoices.GET("", invoiceHandler.List)
			invoices.POST("", invoiceHandler.Create)
			invoices.GET("/:id", invoiceHandler.Get)
			invoices.PUT("/:id", invoiceHandler.Update)
			invoices.DELETE("/:id", invoiceHandler.Delete)
			invoices.GET("/:id/pdf", invoiceHandler.ReceiptPDF)
		}

		payments := api.Group("/payments")
		{
			payments.GET("", paymentHandler.List)
			payments.POST("", paymentHandler.Create)
			payments.GET("/summary", paymentHandler.OverallSummary)
			payments.GET("/summary/:studentId", paymentHandler.StudentSummary)
			payments.GET("/export", paymentHandler.ExportCSV)
			payments.GET("/:id", paymentHandler.Get)
			payments.PUT("/:id", paymentHandler.Update)
			payments.DELETE("/:id", paymentHandler.Delete)
		}

		expenses := api.Group("/expenses")
		{
			expenses.GET("", expenseHandler.List)
			expenses.POST("", expenseHandler.Create)
			expenses.GET("/summary", expenseHandler.Summary)
			expenses.GET("/export", expenseHandler.ExportCSV)
			expenses.GET("/:id", expenseHandler.Get)
			expenses.PUT("/:id", expenseHandler.Update)
			expenses.DELETE("/:id", expenseHandler.Delete)
		}

		api.GET("/dashboard", dashboardHandler.Summary)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "data_dir", cfg.DataDir)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
