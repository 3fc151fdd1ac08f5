package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"renthub/internal/database"
	"renthub/internal/domain"
	jwtsvc "renthub/internal/pkg/jwt"
	"renthub/internal/repository"
)

// Seeds a local database with demo accounts, a handful of published
// listings and one accepted reservation. Intended for development only.
func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "renthub.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM payments")
	db.Exec("DELETE FROM reservations")
	db.Exec("DELETE FROM listings")
	db.Exec("DELETE FROM student_profiles")
	db.Exec("DELETE FROM landlord_profiles")
	db.Exec("DELETE FROM users")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(db)
	listingRepo := repository.NewListingRepository(db)
	reservationRepo := repository.NewReservationRepository(db)

	log.Println("Creating users...")
	admin := &domain.User{Email: "admin@renthub.sn", Name: "Admin", Role: domain.RoleAdmin}
	landlord := &domain.User{Email: "moussa@renthub.sn", Name: "Moussa Diop", Phone: "+221 77 123 45 67", Role: domain.RoleLandlord}
	tenant := &domain.User{Email: "awa@renthub.sn", Name: "Awa Ndiaye", Phone: "+221 78 234 56 78", Role: domain.RoleTenant}
	student := &domain.User{Email: "ibrahima@renthub.sn", Name: "Ibrahima Fall", Role: domain.RoleStudent}
	for _, u := range []*domain.User{admin, landlord, tenant, student} {
		if err := userRepo.Create(ctx, u); err != nil {
			log.Fatal(err)
		}
	}

	if err := userRepo.SaveStudentProfile(ctx, &domain.StudentProfile{
		UserID:     student.ID,
		University: "Université Cheikh Anta Diop",
	}); err != nil {
		log.Fatal(err)
	}

	log.Println("Creating listings...")
	cities := []struct {
		city, district string
	}{
		{"Dakar", "Plateau"},
		{"Dakar", "Mermoz"},
		{"Saint-Louis", "Sor"},
	}

	listings := make([]*domain.Listing, 0, len(cities))
	for i, c := range cities {
		price, _ := domain.NewPrice(float64(80000+i*25000), domain.DefaultCurrency)
		deposit, _ := domain.NewPrice(float64(160000+i*50000), domain.DefaultCurrency)
		addr, _ := domain.NewAddress(c.city, c.district, fmt.Sprintf("%d Avenue Blaise Diagne", 10+i), nil, nil)

		l, err := domain.NewListing(
			landlord.ID,
			fmt.Sprintf("Appartement %d pièces à %s", i+2, c.district),
			"Appartement lumineux et bien situé, proche des commerces et des transports en commun.",
			domain.PropertyApartment,
			"long_term",
			price, deposit, addr,
			time.Now().UTC(),
		)
		if err != nil {
			log.Fatal(err)
		}
		rooms := i + 2
		l.RoomCount = &rooms
		l.Furnished = i%2 == 0
		l.Amenities = []string{"water", "electricity", "wifi"}

		if err := listingRepo.Create(ctx, l); err != nil {
			log.Fatal(err)
		}

		// approve and publish so the listing shows up in search
		prev := l.UpdatedAt
		if err := l.Approve(); err != nil {
			log.Fatal(err)
		}
		if err := l.AddPhoto(fmt.Sprintf("/static/uploads/demo/listing_%d.jpg", l.ID)); err != nil {
			log.Fatal(err)
		}
		if err := l.Publish(); err != nil {
			log.Fatal(err)
		}
		if err := listingRepo.Update(ctx, l, prev); err != nil {
			log.Fatal(err)
		}
		listings = append(listings, l)
	}

	log.Println("Creating a reservation...")
	start := time.Now().UTC().AddDate(0, 0, 14)
	end := start.AddDate(0, 1, 0)
	total, err := listings[0].Price.Multiply(end.Sub(start).Hours() / 24)
	if err != nil {
		log.Fatal(err)
	}

	res, err := domain.NewReservation(listings[0].ID, tenant.ID, landlord.ID, start, end, 2, total, listings[0].Deposit, "Demo reservation")
	if err != nil {
		log.Fatal(err)
	}
	if err := reservationRepo.CreateIfAvailable(ctx, res); err != nil {
		log.Fatal(err)
	}

	prev := res.UpdatedAt
	if err := res.Accept(); err != nil {
		log.Fatal(err)
	}
	if err := reservationRepo.Update(ctx, res, prev); err != nil {
		log.Fatal(err)
	}

	log.Println("Seed complete:")
	log.Printf("  admin:    %s", admin.Email)
	log.Printf("  landlord: %s (%d listings)", landlord.Email, len(listings))
	log.Printf("  tenant:   %s (reservation %d accepted)", tenant.Email, res.ID)
	log.Printf("  student:  %s", student.Email)

	// with a secret configured, mint dev tokens so the API is usable right away
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		j := jwtsvc.New(secret, 24*time.Hour)
		log.Println("Dev tokens (24h):")
		for _, u := range []*domain.User{admin, landlord, tenant, student} {
			token, err := j.GenerateToken(u.ID, u.Email, string(u.Role))
			if err != nil {
				log.Fatal(err)
			}
			log.Printf("  %-8s %s", u.Role, token)
		}
	}
}
