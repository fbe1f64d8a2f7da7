package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ekaramchari/hr-backend-go/internal/config"
	"github.com/ekaramchari/hr-backend-go/internal/domain/calendar"
	appHTTP "github.com/ekaramchari/hr-backend-go/internal/handler/http"
	"github.com/ekaramchari/hr-backend-go/internal/pkg/cron"
	"github.com/ekaramchari/hr-backend-go/internal/pkg/database"
	"github.com/ekaramchari/hr-backend-go/internal/pkg/jwt"
	"github.com/ekaramchari/hr-backend-go/internal/repository/postgresql"
	attendanceService "github.com/ekaramchari/hr-backend-go/internal/service/attendance"
	calendarService "github.com/ekaramchari/hr-backend-go/internal/service/calendar"
	reportService "github.com/ekaramchari/hr-backend-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logger := slog.Default()

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	directoryRepo := postgresql.NewDirectoryRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	activityLogRepo := postgresql.NewActivityLogRepository(db)
	reportRepo := postgresql.NewReportRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret)
	calendarResolver := calendarService.NewResolver(
		calendar.NewWeeklyOff(cfg.Attendance.WeeklyOffDays...),
		holidayRepo,
		logger,
	)
	txRunner := func(ctx context.Context, fn func(ctx context.Context) error) error {
		return postgresql.WithTransaction(ctx, db, fn)
	}
	attendanceSvc := attendanceService.NewAttendanceService(
		attendanceRepo,
		directoryRepo,
		calendarResolver,
		activityLogRepo,
		txRunner,
		cfg.Attendance,
		logger,
		time.Now,
	)
	reportSvc := reportService.NewReportService(
		reportRepo,
		directoryRepo,
		cfg.Attendance,
		logger,
		time.Now,
	)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc, cfg.Attendance.Timezone)
	holidayHandler := appHTTP.NewHolidayHandler(holidayRepo, cfg.Attendance.Timezone)
	reportHandler := appHTTP.NewReportHandler(reportSvc)

	router := appHTTP.NewRouter(cfg, jwtService, attendanceHandler, holidayHandler, reportHandler)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceSvc, cfg.Attendance).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	server := &http.Server{Addr: port, Handler: router}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Println("Server error:", err)
			stop <- syscall.SIGTERM
		}
	}()

	<-stop
	logger.Info("Shutting down")
	_ = server.Close()
}
