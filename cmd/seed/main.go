package main

import (
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"coworking/internal/config"
	"coworking/internal/database"
	"coworking/internal/domain"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM payments")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM discounts")
	db.Exec("DELETE FROM inventory_items")
	db.Exec("DELETE FROM workstations")
	db.Exec("DELETE FROM floors")
	db.Exec("DELETE FROM coworking_centers")
	db.Exec("DELETE FROM refresh_tokens")
	db.Exec("DELETE FROM manager_profiles")
	db.Exec("DELETE FROM users")

	// ================== USERS ==================
	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := domain.User{
		Email:        "admin@coworking.local",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
		Name:         "Platform Admin",
	}
	db.Create(&admin)
	log.Println("Admin created: admin@coworking.local / admin123")

	clients := []domain.User{}
	clientEmails := []string{"alice@example.com", "bob@example.com", "carol@example.com"}
	for i, email := range clientEmails {
		hash, _ := bcrypt.GenerateFromPassword([]byte("client123"), bcrypt.DefaultCost)
		client := domain.User{
			Email:        email,
			PasswordHash: string(hash),
			Role:         domain.RoleClient,
			Name:         fmt.Sprintf("Client %d", i+1),
			Phone:        fmt.Sprintf("+1 555 010 %04d", i+1),
		}
		db.Create(&client)
		clients = append(clients, client)
	}

	managers := []domain.User{}
	managerSeeds := []struct {
		email   string
		status  domain.ManagerStatus
		company string
	}{
		{"maria@hubworks.io", domain.ManagerApproved, "HubWorks"},
		{"denis@loftspace.io", domain.ManagerApproved, "LoftSpace"},
		{"nina@newdesk.io", domain.ManagerPending, "NewDesk"},
	}
	for i, m := range managerSeeds {
		hash, _ := bcrypt.GenerateFromPassword([]byte("manager123"), bcrypt.DefaultCost)
		manager := domain.User{
			Email:         m.email,
			PasswordHash:  string(hash),
			Role:          domain.RoleManager,
			Name:          fmt.Sprintf("Manager %d", i+1),
			ManagerStatus: m.status,
		}
		db.Create(&manager)
		managers = append(managers, manager)

		profile := domain.ManagerProfile{
			UserID:        manager.ID,
			CompanyName:   m.company,
			ContactPerson: manager.Name,
		}
		if m.status == domain.ManagerApproved {
			now := time.Now()
			profile.ApprovedAt = &now
			profile.ApprovedBy = &admin.ID
		}
		db.Create(&profile)
	}

	// ================== CENTERS ==================
	log.Println("Creating centers...")
	centers := make([]domain.CoworkingCenter, 0, 2)
	centerSeeds := []struct {
		manager domain.User
		name    string
		city    string
	}{
		{managers[0], "HubWorks Downtown", "Berlin"},
		{managers[1], "LoftSpace Riverside", "Hamburg"},
	}
	for i, cs := range centerSeeds {
		center := domain.CoworkingCenter{
			ManagerID:   cs.manager.ID,
			Name:        cs.name,
			Description: "Bright open space with meeting rooms and fast wifi",
			Address:     fmt.Sprintf("Main Street %d", i+10),
			City:        cs.city,
			Phone:       fmt.Sprintf("+49 30 555 01%02d", i+1),
			Email:       fmt.Sprintf("hello%d@coworking.local", i+1),
			OpenTime:    "08:00",
			CloseTime:   "22:00",
			IsActive:    true,
		}
		db.Create(&center)
		centers = append(centers, center)
	}

	// ================== FLOORS & WORKSTATIONS ==================
	log.Println("Creating floors and workstations...")
	fptr := func(v float64) *float64 { return &v }

	for ci, center := range centers {
		floor := domain.Floor{
			CenterID: center.ID,
			Name:     "Ground Floor",
			Level:    0,
			GridRows: 6,
			GridCols: 8,
		}
		db.Create(&floor)

		// desks with day/week/month pricing
		for i := 0; i < 4; i++ {
			ws := domain.Workstation{
				FloorID:           floor.ID,
				CenterID:          center.ID,
				Label:             fmt.Sprintf("D-%d%d", ci+1, i+1),
				Type:              domain.Desk,
				Capacity:          1,
				PosRow:            i / 2,
				PosCol:            i % 2,
				BasePricePerDay:   fptr(1000),
				BasePricePerWeek:  fptr(5500),
				BasePricePerMonth: fptr(18000),
				IsActive:          true,
			}
			db.Create(&ws)
		}

		// computer desk, day pricing only
		db.Create(&domain.Workstation{
			FloorID:         floor.ID,
			CenterID:        center.ID,
			Label:           fmt.Sprintf("CD-%d1", ci+1),
			Type:            domain.ComputerDesk,
			Capacity:        1,
			PosRow:          2,
			PosCol:          0,
			BasePricePerDay: fptr(1500),
			IsActive:        true,
		})

		// meeting room with an explicit hourly rate
		meetingRoom := domain.Workstation{
			FloorID:          floor.ID,
			CenterID:         center.ID,
			Label:            fmt.Sprintf("MR-%d1", ci+1),
			Type:             domain.MeetingRoom,
			Capacity:         6,
			PosRow:           4,
			PosCol:           6,
			BasePricePerHour: fptr(2000),
			IsActive:         true,
		}
		db.Create(&meetingRoom)

		// conference room without a rate, falls back to the configured default
		db.Create(&domain.Workstation{
			FloorID:  floor.ID,
			CenterID: center.ID,
			Label:    fmt.Sprintf("CR-%d1", ci+1),
			Type:     domain.ConferenceRoom,
			Capacity: 12,
			PosRow:   5,
			PosCol:   6,
			IsActive: true,
		})

		db.Create(&domain.InventoryItem{
			CenterID:      center.ID,
			WorkstationID: &meetingRoom.ID,
			Name:          "4K Display",
			Category:      "electronics",
			Quantity:      1,
			Condition:     "good",
		})
		db.Create(&domain.InventoryItem{
			CenterID:  center.ID,
			Name:      "Whiteboard",
			Category:  "furniture",
			Quantity:  3,
			Condition: "good",
		})
	}

	// ================== DISCOUNTS ==================
	log.Println("Creating discounts...")
	allDays := domain.WeekdayList{
		domain.Monday, domain.Tuesday, domain.Wednesday,
		domain.Thursday, domain.Friday, domain.Saturday, domain.Sunday,
	}
	weekdays := domain.WeekdayList{
		domain.Monday, domain.Tuesday, domain.Wednesday,
		domain.Thursday, domain.Friday,
	}
	morningHours := "08:00-12:00"
	usageLimit := 100

	db.Create(&domain.Discount{
		Name:            "Early Bird",
		Percentage:      20,
		StartDate:       time.Now().AddDate(0, -1, 0),
		EndDate:         time.Now().AddDate(0, 2, 0),
		ApplicableDays:  weekdays,
		ApplicableHours: &morningHours,
		IsActive:        true,
		Priority:        10,
	})
	db.Create(&domain.Discount{
		Name:              "Launch Promo",
		Percentage:        30,
		MaxDiscountAmount: fptr(500),
		UsageLimit:        &usageLimit,
		StartDate:         time.Now().AddDate(0, 0, -7),
		EndDate:           time.Now().AddDate(0, 1, 0),
		ApplicableDays:    allDays,
		IsActive:          true,
		Priority:          5,
	})

	// ================== BOOKINGS ==================
	log.Println("Creating sample bookings...")
	var desk domain.Workstation
	db.Where("type = ?", domain.Desk).First(&desk)

	start := time.Now().AddDate(0, 0, 2).Truncate(time.Hour)
	booking := domain.Booking{
		WorkstationID: desk.ID,
		CenterID:      desk.CenterID,
		UserID:        clients[0].ID,
		StartTime:     start,
		EndTime:       start.Add(24 * time.Hour),
		DurationTier:  domain.TierDay,
		Status:        domain.BookingActive,
		BasePrice:     1000,
		FinalPrice:    1000,
	}
	db.Create(&booking)
	db.Create(&domain.Payment{
		BookingID:  booking.ID,
		BasePrice:  booking.BasePrice,
		FinalPrice: booking.FinalPrice,
		Status:     domain.PaymentPaid,
	})

	log.Println("Seed finished.")
}
