package main

import (
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/timekeeping-engine-go/internal/config"
	appHTTP "github.com/cmlabs-hris/timekeeping-engine-go/internal/handler/http"
	"github.com/cmlabs-hris/timekeeping-engine-go/internal/pkg/cron"
	"github.com/cmlabs-hris/timekeeping-engine-go/internal/pkg/database"
	"github.com/cmlabs-hris/timekeeping-engine-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/timekeeping-engine-go/internal/repository/postgresql"
	timekeepingService "github.com/cmlabs-hris/timekeeping-engine-go/internal/service/timekeeping"
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

	shiftProvider := postgresql.NewShiftProvider(db)
	logStore := postgresql.NewLogStore(db)
	summarySink := postgresql.NewSummarySink(db)
	leaveProvider := postgresql.NewLeaveProvider(db)
	employeeDirectory := postgresql.NewEmployeeDirectory(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	timekeepingSvc, err := timekeepingService.NewTimekeepingService(
		shiftProvider,
		logStore,
		summarySink,
		leaveProvider,
	)
	if err != nil {
		fmt.Println("Error building timekeeping service:", err)
		return
	}

	timekeepingHandler := appHTTP.NewTimekeepingHandler(timekeepingSvc)

	router := appHTTP.NewRouter(JWTService, timekeepingHandler)

	if cfg.Cron.Enabled {
		scheduler := cron.NewScheduler()
		cron.NewTimekeepingJobs(timekeepingSvc, employeeDirectory).RegisterJobs(scheduler)
		scheduler.Start()
		defer scheduler.Stop()
	}

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
