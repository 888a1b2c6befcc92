package main

import (
	"log"

	"talent-show-backend/internal/config"
	"talent-show-backend/internal/models"
	"talent-show-backend/internal/repositories"
	"talent-show-backend/internal/utils"
	"talent-show-backend/pkg/database"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	// Load configuration
	cfg, err := config.NewConfigFromEnv()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	// Initialize database
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Database connection error: %v", err)
	}

	// Run migrations
	if err := repositories.AutoMigrate(db); err != nil {
		log.Fatalf("Migration error: %v", err)
	}

	log.Println("✅ Database migrations completed successfully")

	// Seed the fixed category catalog
	if err := seedCategories(db); err != nil {
		log.Fatalf("Failed to seed categories: %v", err)
	}

	log.Println("✅ Category catalog seeded (if not present)")

	// Create default admin user if not exists
	if err := createDefaultAdmin(db); err != nil {
		log.Fatalf("Failed to create default admin: %v", err)
	}

	log.Println("✅ Default admin user created (if not exists)")
	log.Println("🎉 Migration process completed!")
}

// seedCategories inserts the fixed competition categories. The catalog is
// immutable reference data; rows already present are left untouched.
func seedCategories(db *gorm.DB) error {
	categories := []models.Category{
		{Name: "Solo Singing", Kind: "singing", IsGroup: false},
		{Name: "Group Singing", Kind: "singing", IsGroup: true},
		{Name: "Solo Dancing", Kind: "dancing", IsGroup: false},
		{Name: "Group Dancing", Kind: "dancing", IsGroup: true},
	}

	for _, category := range categories {
		var existing models.Category
		if err := db.Where("name = ?", category.Name).First(&existing).Error; err == nil {
			continue
		}
		if err := db.Create(&category).Error; err != nil {
			return err
		}
		log.Printf("   Seeded category: %s", category.Name)
	}

	return nil
}

func createDefaultAdmin(db *gorm.DB) error {
	adminEmail := "admin@talentshow.edu"
	adminPassword := "admin123"

	// Check if admin already exists
	var existingAdmin models.User
	if err := db.Where("email = ?", adminEmail).First(&existingAdmin).Error; err == nil {
		log.Println("ℹ️  Default admin user already exists")
		return nil
	}

	// Hash password
	hashedPassword, err := utils.HashPassword(adminPassword)
	if err != nil {
		return err
	}

	// Create admin user
	admin := &models.User{
		Email:    adminEmail,
		Password: hashedPassword,
		Role:     "admin",
	}

	if err := db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Default admin user created:")
	log.Printf("   Email: %s", adminEmail)
	log.Printf("   Password: %s", adminPassword)
	log.Printf("   Role: %s", admin.Role)

	return nil
}
