package main

import (
	"context"
	"log"
	"math/rand"
	"time"

	"golang.org/x/crypto/bcrypt"

	"fitlink/internal/database"
	"fitlink/internal/domain"
	"fitlink/internal/repository"
)

func main() {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	ctx := context.Background()

	db, err := database.Connect("fitlink.db")
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM messages")
	db.Exec("DELETE FROM group_members")
	db.Exec("DELETE FROM groups")
	db.Exec("DELETE FROM challenge_participants")
	db.Exec("DELETE FROM challenges")
	db.Exec("DELETE FROM listings")
	db.Exec("DELETE FROM health_goals")
	db.Exec("DELETE FROM health_logs")
	db.Exec("DELETE FROM users")

	userRepo := repository.NewUserRepository(db)
	logRepo := repository.NewHealthLogRepository(db)
	goalRepo := repository.NewGoalRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	challengeRepo := repository.NewChallengeRepository(db)
	listingRepo := repository.NewListingRepository(db)

	// ================== USERS ==================
	log.Println("Creating users...")

	mustUser := func(email, password, name, bio string, role domain.UserRole) *domain.User {
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		u := &domain.User{
			Email:        email,
			PasswordHash: string(hash),
			Role:         role,
			Name:         name,
			Bio:          bio,
		}
		if err := userRepo.Create(ctx, u); err != nil {
			log.Fatal("create user:", err)
		}
		return u
	}

	admin := mustUser("admin@fitlink.io", "admin123", "Admin", "", domain.RoleAdmin)
	coach := mustUser("coach@fitlink.io", "coach123", "Dana the Coach", "Certified trainer, 10 years", domain.RoleCoach)
	alex := mustUser("alex@fitlink.io", "password1", "Alex", "Morning runner", domain.RoleMember)
	sam := mustUser("sam@fitlink.io", "password1", "Sam", "Trying to sleep more", domain.RoleMember)
	mira := mustUser("mira@fitlink.io", "password1", "Mira", "Yoga and hydration", domain.RoleMember)
	_ = admin

	// ================== HEALTH LOGS ==================
	log.Println("Creating health logs...")

	now := time.Now()
	for day := 0; day < 14; day++ {
		at := now.AddDate(0, 0, -day).Truncate(24 * time.Hour).Add(20 * time.Hour)
		for _, u := range []*domain.User{alex, sam, mira} {
			logs := []domain.HealthLog{
				{UserID: u.ID, Metric: domain.MetricSteps, Value: float64(5000 + rng.Intn(8000)), Unit: "steps", LoggedAt: at},
				{UserID: u.ID, Metric: domain.MetricWater, Value: float64(4 + rng.Intn(6)), Unit: "glasses", LoggedAt: at},
				{UserID: u.ID, Metric: domain.MetricSleep, Value: 5.5 + rng.Float64()*3, Unit: "hours", LoggedAt: at},
				{UserID: u.ID, Metric: domain.MetricExercise, Value: float64(10 + rng.Intn(50)), Unit: "minutes", LoggedAt: at},
			}
			for i := range logs {
				if err := logRepo.Create(ctx, &logs[i]); err != nil {
					log.Fatal("create log:", err)
				}
			}
		}
	}

	// ================== GOALS ==================
	log.Println("Creating goals...")

	goals := []domain.HealthGoal{
		{UserID: alex.ID, Metric: domain.MetricSteps, Target: 10000, Unit: "steps", Active: true},
		{UserID: alex.ID, Metric: domain.MetricWater, Target: 8, Unit: "glasses", Active: true},
		{UserID: sam.ID, Metric: domain.MetricSleep, Target: 8, Unit: "hours", Active: true},
		{UserID: mira.ID, Metric: domain.MetricExercise, Target: 45, Unit: "minutes", Active: true},
	}
	for i := range goals {
		if err := goalRepo.Create(ctx, &goals[i]); err != nil {
			log.Fatal("create goal:", err)
		}
	}

	// ================== GROUPS ==================
	log.Println("Creating groups...")

	runners := &domain.Group{Name: "Morning Runners", Description: "5k before breakfast", OwnerID: alex.ID}
	if err := groupRepo.Create(ctx, runners); err != nil {
		log.Fatal("create group:", err)
	}
	for _, id := range []int64{alex.ID, sam.ID, coach.ID} {
		if err := groupRepo.AddMember(ctx, runners.ID, id); err != nil {
			log.Fatal("add member:", err)
		}
	}

	yoga := &domain.Group{Name: "Yoga Club", Description: "Stretch and breathe", OwnerID: mira.ID}
	if err := groupRepo.Create(ctx, yoga); err != nil {
		log.Fatal("create group:", err)
	}
	for _, id := range []int64{mira.ID, sam.ID} {
		if err := groupRepo.AddMember(ctx, yoga.ID, id); err != nil {
			log.Fatal("add member:", err)
		}
	}

	messages := []domain.Message{
		{GroupID: runners.ID, SenderID: alex.ID, Type: domain.MessageTypeText, Body: "Who's in for tomorrow 7am?", SentAt: now.Add(-2 * time.Hour)},
		{GroupID: runners.ID, SenderID: sam.ID, Type: domain.MessageTypeText, Body: "Count me in", SentAt: now.Add(-90 * time.Minute)},
		{GroupID: runners.ID, SenderID: coach.ID, Type: domain.MessageTypeText, Body: "Keep the pace easy, long run on Sunday", SentAt: now.Add(-time.Hour)},
		{GroupID: yoga.ID, SenderID: mira.ID, Type: domain.MessageTypeText, Body: "New session plan is up", SentAt: now.Add(-30 * time.Minute)},
	}
	for i := range messages {
		if err := messageRepo.Create(ctx, &messages[i]); err != nil {
			log.Fatal("create message:", err)
		}
	}

	// ================== CHALLENGES ==================
	log.Println("Creating challenges...")

	weekly := &domain.Challenge{
		Title:       "Weekly 70k Steps",
		Description: "70,000 steps in seven days",
		Metric:      domain.MetricSteps,
		Target:      70000,
		StartDate:   now.AddDate(0, 0, -3),
		EndDate:     now.AddDate(0, 0, 4),
		CreatorID:   coach.ID,
		GroupID:     &runners.ID,
	}
	if err := challengeRepo.Create(ctx, weekly); err != nil {
		log.Fatal("create challenge:", err)
	}
	for _, id := range []int64{coach.ID, alex.ID, sam.ID} {
		if err := challengeRepo.Join(ctx, weekly.ID, id); err != nil {
			log.Fatal("join challenge:", err)
		}
	}

	hydration := &domain.Challenge{
		Title:     "Hydration Month",
		Metric:    domain.MetricWater,
		Target:    240,
		StartDate: now.AddDate(0, 0, 7),
		EndDate:   now.AddDate(0, 1, 7),
		CreatorID: mira.ID,
	}
	if err := challengeRepo.Create(ctx, hydration); err != nil {
		log.Fatal("create challenge:", err)
	}
	if err := challengeRepo.Join(ctx, hydration.ID, mira.ID); err != nil {
		log.Fatal("join challenge:", err)
	}

	// ================== LISTINGS ==================
	log.Println("Creating listings...")

	listings := []domain.Listing{
		{SellerID: alex.ID, Title: "Adjustable dumbbells 2x24kg", Description: "Barely used", Category: domain.CategoryEquipment, Price: 180, Currency: "USD", Status: domain.ListingActive},
		{SellerID: sam.ID, Title: "Resistance bands set", Category: domain.CategoryEquipment, Price: 25, Currency: "USD", Status: domain.ListingActive},
		{SellerID: mira.ID, Title: "Yoga mat, cork", Description: "Non-slip, 5mm", Category: domain.CategoryAccessories, Price: 40, Currency: "USD", Status: domain.ListingActive},
		{SellerID: coach.ID, Title: "Whey protein 2kg", Category: domain.CategorySupplements, Price: 55, Currency: "USD", Status: domain.ListingActive},
	}
	for i := range listings {
		if err := listingRepo.Create(ctx, &listings[i]); err != nil {
			log.Fatal("create listing:", err)
		}
	}

	log.Println("Seed complete.")
	log.Println("  admin@fitlink.io / admin123")
	log.Println("  coach@fitlink.io / coach123")
	log.Println("  alex@fitlink.io  / password1")
}
