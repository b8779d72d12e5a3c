package main

import (
	"context"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"nicbank/internal/config"
	"nicbank/internal/db"
	"nicbank/internal/model"
)

// Seeds the admin account and demo dashboard data. Safe to run repeatedly:
// the admin insert is idempotent and demo rows are only created into empty
// tables.
func main() {
	log.Println("Starting seed...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()

	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Println("ADMIN_EMAIL / ADMIN_PASSWORD not set, skipping admin seed")
	} else if err := db.EnsureAdmin(ctx, gormDB, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	} else {
		log.Printf("Admin account ensured for %s", cfg.AdminEmail)
	}

	if err := seedDashboardData(gormDB); err != nil {
		log.Fatalf("Failed to seed dashboard data: %v", err)
	}

	log.Println("Seed completed successfully")
}

func seedDashboardData(gormDB *gorm.DB) error {
	now := time.Now().UTC()

	if empty(gormDB, &model.Budget{}) {
		budgets := []model.Budget{
			{Amount: decimal.NewFromInt(14000)},
			{Amount: decimal.NewFromInt(10000)},
		}
		if err := gormDB.Create(&budgets).Error; err != nil {
			return err
		}
		log.Printf("Seeded %d budgets", len(budgets))
	}

	if empty(gormDB, &model.Customer{}) {
		customers := make([]model.Customer, 0, 20)
		names := []string{
			"Alva Mills", "Bennett Cole", "Carmen Ruiz", "Dilip Rao", "Eva Sharp",
			"Farid Aziz", "Greta Holm", "Hiro Tanaka", "Ines Duarte", "Jonas Weber",
			"Kavya Nair", "Luis Prieto", "Mina Osei", "Noel Barry", "Olga Petrov",
			"Pranav Shah", "Quinn Doyle", "Rosa Lima", "Samir Khan", "Tara Byrne",
		}
		for _, name := range names {
			customers = append(customers, model.Customer{Name: name})
		}
		if err := gormDB.Create(&customers).Error; err != nil {
			return err
		}
		log.Printf("Seeded %d customers", len(customers))
	}

	if empty(gormDB, &model.Task{}) {
		tasks := make([]model.Task, 0, 20)
		for i := 0; i < 20; i++ {
			status := "completed"
			if i%4 == 0 {
				status = "pending"
			}
			tasks = append(tasks, model.Task{Title: "Quarterly review item", Status: status})
		}
		if err := gormDB.Create(&tasks).Error; err != nil {
			return err
		}
		log.Printf("Seeded %d tasks", len(tasks))
	}

	if empty(gormDB, &model.Sale{}) {
		sales := make([]model.Sale, 0, 12)
		for month := 1; month <= 12; month++ {
			sales = append(sales, model.Sale{
				Amount:   decimal.NewFromInt(int64(1000 + month*250)),
				Status:   "completed",
				SaleDate: time.Date(now.Year(), time.Month(month), 15, 0, 0, 0, 0, time.UTC),
			})
		}
		if err := gormDB.Create(&sales).Error; err != nil {
			return err
		}
		log.Printf("Seeded %d sales", len(sales))
	}

	if empty(gormDB, &model.TrafficEntry{}) {
		traffic := []model.TrafficEntry{
			{Source: "desktop", Visits: 6300, RecordedAt: now},
			{Source: "tablet", Visits: 1500, RecordedAt: now},
			{Source: "phone", Visits: 2200, RecordedAt: now},
		}
		if err := gormDB.Create(&traffic).Error; err != nil {
			return err
		}
		log.Printf("Seeded %d traffic entries", len(traffic))
	}

	return nil
}

func empty(gormDB *gorm.DB, m interface{}) bool {
	var count int64
	if err := gormDB.Model(m).Count(&count).Error; err != nil {
		return false
	}
	return count == 0
}
