package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"shuttle_booking_backend/internal/config"
	"shuttle_booking_backend/internal/database"
	"shuttle_booking_backend/internal/repositories"
	"shuttle_booking_backend/internal/services"
	"shuttle_booking_backend/pkg/utils"
)

func main() {
	configPath := flag.String("config", "", "Optional: path to a config file")
	code := flag.String("id", "", "Employee ID, e.g. IGA1-02849 (required)")
	name := flag.String("name", "", "Employee name (required)")
	shift := flag.String("shift", "day", "Shift type: day or night")
	lang := flag.String("lang", "zh", "Preferred language: zh, en or vi")
	deptID := flag.Int64("dept", 0, "Optional: department id")
	flag.Parse()

	if *code == "" || *name == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	utils.InitLogger(cfg.Log.Level, "console")

	db, err := database.InitDB(cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	req := services.CreateEmployeeRequest{
		EmployeeID:        *code,
		Name:              *name,
		ShiftType:         *shift,
		PreferredLanguage: *lang,
	}
	if *deptID > 0 {
		req.DepartmentID = deptID
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	employeeService := services.NewEmployeeService(repositories.NewEmployeeRepository(db))
	employee, err := employeeService.Create(ctx, req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to add employee: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("added employee %s (%s, %s shift, id=%d)\n", employee.Code, employee.Name, employee.ShiftType, employee.ID)
}
