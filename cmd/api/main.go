package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/vtc-hr/attendance-backend-go/internal/config"
	appHTTP "github.com/vtc-hr/attendance-backend-go/internal/handler/http"
	"github.com/vtc-hr/attendance-backend-go/internal/pkg/database"
	"github.com/vtc-hr/attendance-backend-go/internal/pkg/jwt"
	"github.com/vtc-hr/attendance-backend-go/internal/pkg/sse"
	"github.com/vtc-hr/attendance-backend-go/internal/pkg/storage"
	"github.com/vtc-hr/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/vtc-hr/attendance-backend-go/internal/service/attendance"
	authService "github.com/vtc-hr/attendance-backend-go/internal/service/auth"
	employeeService "github.com/vtc-hr/attendance-backend-go/internal/service/employee"
	"github.com/vtc-hr/attendance-backend-go/internal/service/file"
	holidayService "github.com/vtc-hr/attendance-backend-go/internal/service/holiday"
	leaveService "github.com/vtc-hr/attendance-backend-go/internal/service/leave"
	salaryService "github.com/vtc-hr/attendance-backend-go/internal/service/salary"
	settingsService "github.com/vtc-hr/attendance-backend-go/internal/service/settings"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	employeeRepo := postgresql.NewEmployeeRepository(db)
	sessionRepo := postgresql.NewSessionRepository(db)
	balanceRepo := postgresql.NewLeaveBalanceRepository(db)
	requestRepo := postgresql.NewLeaveRequestRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	settingsRepo := postgresql.NewSettingsRepository(db)

	jwtSvc := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	hub := sse.NewHub()

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	fileSvc := file.NewFileService(fileStorage)
	authSvc := authService.NewAuthService(employeeRepo, jwtSvc)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	balanceSvc := leaveService.NewBalanceService(balanceRepo, holidayRepo)
	requestSvc := leaveService.NewRequestService(requestRepo, employeeRepo, balanceSvc, fileSvc, hub)
	sessionSvc := attendanceService.NewSessionService(sessionRepo, employeeRepo, balanceSvc, fileSvc, hub, logger)
	holidaySvc := holidayService.NewHolidayService(holidayRepo)
	salarySvc := salaryService.NewSalaryService(employeeRepo, sessionRepo)
	settingsSvc := settingsService.NewSettingsService(settingsRepo)

	router := appHTTP.NewRouter(jwtSvc, []string{cfg.App.FrontendURL}, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(authSvc, jwtSvc),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Attendance: appHTTP.NewAttendanceHandler(sessionSvc),
		Leave:      appHTTP.NewLeaveHandler(requestSvc),
		Holiday:    appHTTP.NewHolidayHandler(holidaySvc),
		Salary:     appHTTP.NewSalaryHandler(salarySvc),
		Settings:   appHTTP.NewSettingsHandler(settingsSvc),
		Events:     appHTTP.NewEventsHandler(hub, jwtSvc),
	})

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
