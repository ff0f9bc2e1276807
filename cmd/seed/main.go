package main

import (
	"context"
	"flag"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"grievance-portal/internal/config"
	"grievance-portal/internal/domain"
	"grievance-portal/internal/repository"
)

// Seeds the initial admin account, the standard department list, and the
// matching department staff accounts. Safe to run more than once: existing
// rows are left alone.
func main() {
	adminEmail := flag.String("admin-email", "admin@dut4life.ac.za", "admin account email")
	adminPassword := flag.String("admin-password", "", "admin account password (required on first run)")
	withDeptUsers := flag.Bool("dept-users", false, "also create one staff account per department")
	deptPassword := flag.String("dept-password", "", "password for created department accounts")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := config.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	repos := repository.NewRepositories(db)
	ctx := context.Background()

	if err := seedAdmin(ctx, repos, *adminEmail, *adminPassword); err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}

	created, err := seedDepartments(ctx, repos)
	if err != nil {
		log.Fatalf("Failed to seed departments: %v", err)
	}
	log.Printf("Departments: %d created", created)

	if *withDeptUsers {
		if *deptPassword == "" {
			log.Fatal("--dept-password is required with --dept-users")
		}
		if err := seedDepartmentUsers(ctx, repos, cfg, *deptPassword); err != nil {
			log.Fatalf("Failed to seed department users: %v", err)
		}
	}

	log.Println("Seeding complete")
}

func seedAdmin(ctx context.Context, repos *repository.Repositories, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	exists, err := repos.User.ExistsByEmail(ctx, email)
	if err != nil {
		return err
	}
	if exists {
		log.Printf("Admin %s already exists, skipping", email)
		return nil
	}

	if password == "" {
		log.Fatal("--admin-password is required when the admin account does not exist yet")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  "Portal Administrator",
		Role:         domain.RoleAdmin,
		IsActive:     true,
	}
	if err := repos.User.Create(ctx, admin); err != nil {
		return err
	}

	log.Printf("Created admin %s", email)
	return nil
}

func seedDepartments(ctx context.Context, repos *repository.Repositories) (int, error) {
	created := 0
	for _, name := range domain.DefaultDepartments {
		exists, err := repos.Department.ExistsByName(ctx, name)
		if err != nil {
			return created, err
		}
		if exists {
			continue
		}

		department := &domain.Department{
			ID:   uuid.New(),
			Name: name,
		}
		if err := repos.Department.Create(ctx, department); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

// seedDepartmentUsers creates one staff login per department. The account's
// display name must equal the department name exactly, it is how grievances
// are routed.
func seedDepartmentUsers(ctx context.Context, repos *repository.Repositories, cfg *config.Config, password string) error {
	departments, err := repos.Department.ListAll(ctx)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	domainSuffix := "dut4life.ac.za"
	if len(cfg.AllowedEmailDomains) > 0 {
		domainSuffix = cfg.AllowedEmailDomains[0]
	}

	for _, dept := range departments {
		email := departmentEmail(dept.Name, domainSuffix)

		exists, err := repos.User.ExistsByEmail(ctx, email)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		staff := &domain.User{
			ID:           uuid.New(),
			Email:        email,
			PasswordHash: string(hash),
			DisplayName:  dept.Name,
			Role:         domain.RoleDepartment,
			IsActive:     true,
		}
		if err := repos.User.Create(ctx, staff); err != nil {
			return err
		}
		log.Printf("Created department account %s", email)
	}

	return nil
}

func departmentEmail(name, domainSuffix string) string {
	slug := strings.ToLower(name)
	slug = strings.ReplaceAll(slug, " ", ".")
	slug = strings.ReplaceAll(slug, "&", "and")
	var b strings.Builder
	for _, r := range slug {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	return b.String() + "@" + domainSuffix
}
