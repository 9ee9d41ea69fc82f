package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sabigold/presence-backend-go/internal/config"
	appHTTP "github.com/sabigold/presence-backend-go/internal/handler/http"
	"github.com/sabigold/presence-backend-go/internal/pkg/authenticator"
	"github.com/sabigold/presence-backend-go/internal/pkg/cron"
	"github.com/sabigold/presence-backend-go/internal/pkg/database"
	"github.com/sabigold/presence-backend-go/internal/pkg/jwt"
	"github.com/sabigold/presence-backend-go/internal/pkg/sse"
	"github.com/sabigold/presence-backend-go/internal/repository/postgresql"
	attendanceService "github.com/sabigold/presence-backend-go/internal/service/attendance"
	serviceAuth "github.com/sabigold/presence-backend-go/internal/service/auth"
	employeeService "github.com/sabigold/presence-backend-go/internal/service/employee"
	leaveService "github.com/sabigold/presence-backend-go/internal/service/leave"
	notificationService "github.com/sabigold/presence-backend-go/internal/service/notification"
	reportService "github.com/sabigold/presence-backend-go/internal/service/report"
	settingsService "github.com/sabigold/presence-backend-go/internal/service/settings"
	verificationService "github.com/sabigold/presence-backend-go/internal/service/verification"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Fatal("Invalid APP_TIMEZONE: ", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	tx := postgresql.NewTransactor(db)
	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	logRepo := postgresql.NewAttendanceLogRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	settingsRepo := postgresql.NewSettingsRepository(db)

	hub := sse.NewHub()
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	platformAuth := authenticator.NewHeadless()

	faceVerifier := verificationService.NewFaceVerifier(employeeRepo)
	credentialVerifier := verificationService.NewCredentialVerifier(employeeRepo, platformAuth)
	pinVerifier := verificationService.NewPinVerifier(employeeRepo)
	resolver := verificationService.NewResolver(faceVerifier, credentialVerifier, pinVerifier, employeeRepo)

	notificationSvc := notificationService.NewService(notificationRepo, hub)
	settingsSvc := settingsService.NewService(settingsRepo)
	attendanceSvc := attendanceService.NewService(employeeRepo, logRepo, settingsRepo, notificationSvc, tx, hub)
	leaveSvc := leaveService.NewService(leaveRepo, employeeRepo, tx, hub)
	leaveRequestSvc := leaveService.NewRequestService(leaveRequestRepo, leaveRepo, employeeRepo, tx, hub)
	allowanceSvc := leaveService.NewAllowanceService(leaveRepo, employeeRepo, settingsRepo)
	employeeSvc := employeeService.NewService(employeeRepo)
	reportSvc := reportService.NewService(employeeRepo, logRepo, leaveRepo, settingsRepo)
	authSvc := serviceAuth.NewService(userRepo, JWTService)

	guard := cron.NewDayGuard(redisClient, "reconcile")
	reconcileJob := cron.NewReconcileJob(employeeRepo, logRepo, notificationSvc, tx, guard, loc)

	scheduler := cron.NewScheduler()
	reconcileJob.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	handlers := appHTTP.Handlers{
		Auth:         appHTTP.NewAuthHandler(authSvc),
		Kiosk:        appHTTP.NewKioskHandler(resolver, credentialVerifier, attendanceSvc, leaveSvc, leaveRequestSvc),
		Attendance:   appHTTP.NewAttendanceHandler(attendanceSvc),
		Employee:     appHTTP.NewEmployeeHandler(employeeSvc),
		Leave:        appHTTP.NewLeaveHandler(leaveSvc, leaveRequestSvc, allowanceSvc),
		Notification: appHTTP.NewNotificationHandler(notificationSvc),
		Settings:     appHTTP.NewSettingsHandler(settingsSvc),
		Report:       appHTTP.NewReportHandler(reportSvc),
		SSE:          appHTTP.NewSSEHandler(hub),
	}

	router := appHTTP.NewRouter(cfg, JWTService, handlers)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
