package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/geoattendance/geoattendance-backend-go/internal/config"
	appHTTP "github.com/geoattendance/geoattendance-backend-go/internal/handler/http"
	"github.com/geoattendance/geoattendance-backend-go/internal/pkg/database"
	"github.com/geoattendance/geoattendance-backend-go/internal/pkg/jwt"
	"github.com/geoattendance/geoattendance-backend-go/internal/pkg/sse"
	"github.com/geoattendance/geoattendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/geoattendance/geoattendance-backend-go/internal/service/attendance"
	liveService "github.com/geoattendance/geoattendance-backend-go/internal/service/live"
	reportService "github.com/geoattendance/geoattendance-backend-go/internal/service/report"
	siteService "github.com/geoattendance/geoattendance-backend-go/internal/service/site"
	workerService "github.com/geoattendance/geoattendance-backend-go/internal/service/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	workerRepo := postgresql.NewWorkerRepository(db)
	siteRepo := postgresql.NewSiteRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.SSEExpiration)
	hub := sse.NewHub()

	workerSvc := workerService.NewWorkerService(workerRepo, siteRepo)
	siteSvc := siteService.NewSiteService(siteRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, workerRepo, siteRepo)
	reportSvc := reportService.NewReportService(attendanceRepo, workerRepo, siteRepo, cfg.Report.PunctualityCutoffHour)
	liveSvc := liveService.NewLiveService(attendanceRepo)

	monitor := liveService.NewMonitor(liveSvc, hub, cfg.Live.RefreshInterval)
	monitor.Start()
	defer monitor.Stop()

	workerHandler := appHTTP.NewWorkerHandler(workerSvc)
	siteHandler := appHTTP.NewSiteHandler(siteSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)
	liveHandler := appHTTP.NewLiveHandler(liveSvc, hub, JWTService)

	router := appHTTP.NewRouter(
		cfg,
		JWTService,
		workerHandler,
		siteHandler,
		attendanceHandler,
		reportHandler,
		liveHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	server := &http.Server{Addr: port, Handler: router}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Println("Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("Shutting down...")
	if err := server.Close(); err != nil {
		fmt.Println("Shutdown error:", err)
	}
}
