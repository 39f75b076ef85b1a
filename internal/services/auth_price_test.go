package services_test

import (
	"errors"
	"testing"

	"github.com/Talibusmani77/lohakart-inquiry/internal/domain"
	"github.com/Talibusmani77/lohakart-inquiry/internal/repos"
	"github.com/Talibusmani77/lohakart-inquiry/internal/services"
)

func TestRegisterLoginLogout(t *testing.T) {
	db := memdb(t)
	users := repos.NewUserRepo(db)
	auth := &services.AuthService{Users: users}
	gate := services.NewRoleGate(repos.NewRoleRepo(db))

	u, err := auth.Register("sid-new", services.RegisterInput{
		Email: "sunil@alloyworks.test", Password: "Sunil#2024", Name: "Sunil Alloy Works",
		Company: "Alloy Works Pvt Ltd", City: "Rajkot", State: "GJ",
	})
	if err != nil {
		t.Fatal(err)
	}
	if gate.IsAdmin(u.ID) {
		t.Fatal("fresh registration must not be admin")
	}

	// Registration binds the session immediately
	cur, err := auth.CurrentUser("sid-new")
	if err != nil || cur == nil || cur.ID != u.ID {
		t.Fatalf("session not bound after register: %v %v", cur, err)
	}

	_, err = auth.Register("sid-dup", services.RegisterInput{
		Email: "SUNIL@alloyworks.test", Password: "Sunil#2024", Name: "Dup",
	})
	if !errors.Is(err, services.ErrEmailTaken) {
		t.Fatalf("want email-taken for case-variant duplicate, got %v", err)
	}

	if _, err := auth.Login("sid-2", "sunil@alloyworks.test", "wrongpass"); !errors.Is(err, services.ErrBadCreds) {
		t.Fatalf("want bad-creds, got %v", err)
	}
	if _, err := auth.Login("sid-2", "sunil@alloyworks.test", "Sunil#2024"); err != nil {
		t.Fatal(err)
	}

	if err := auth.Logout("sid-2"); err != nil {
		t.Fatal(err)
	}
	if cur, _ := auth.CurrentUser("sid-2"); cur != nil {
		t.Fatal("session survived logout")
	}
}

func TestRegisterIsAtomic(t *testing.T) {
	db := memdb(t)
	users := repos.NewUserRepo(db)
	auth := &services.AuthService{Users: users}

	// Break the company insert so registration fails mid-flight
	if _, err := db.Exec(`ALTER TABLE companies RENAME TO companies_hidden`); err != nil {
		t.Fatal(err)
	}
	in := services.RegisterInput{
		Email: "atomic@alloyworks.test", Password: "Atomic#2024", Name: "Atomic Metals",
		Company: "Atomic Metals Pvt Ltd",
	}
	if _, err := auth.Register("sid-atomic", in); err == nil {
		t.Fatal("register succeeded without a companies table")
	}

	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM users WHERE email = 'atomic@alloyworks.test'`); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("failed register left %d user rows behind", n)
	}

	// The email stayed free: the same registration works once storage is back
	if _, err := db.Exec(`ALTER TABLE companies_hidden RENAME TO companies`); err != nil {
		t.Fatal(err)
	}
	if _, err := auth.Register("sid-atomic", in); err != nil {
		t.Fatalf("retry after failed register: %v", err)
	}
}

func TestCreateAccountDuplicateEmailConflicts(t *testing.T) {
	db := memdb(t)
	users := repos.NewUserRepo(db)

	// The way a raced register would hit it, past the service's pre-check
	err := users.CreateAccount(repos.NewAccount{
		UserID: "u-race", Email: "ravi@lohakart.test", Hash: "x",
		Profile: domain.Profile{UserID: "u-race", Name: "Race"},
		Role:    domain.RoleUser, SessionID: "sid-race",
	})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("want conflict for duplicate email, got %v", err)
	}
}

func TestSeededDemoLogin(t *testing.T) {
	db := memdb(t)
	auth := &services.AuthService{Users: repos.NewUserRepo(db)}

	u, err := auth.Login("sid-demo", "ravi@lohakart.test", "Passw0rd!")
	if err != nil {
		t.Fatal(err)
	}
	if u.ID != "u-ravi" {
		t.Fatalf("logged in as %q, want u-ravi", u.ID)
	}
}

func TestPriceRecordValidation(t *testing.T) {
	db := memdb(t)
	svc := services.NewPriceService(repos.NewPriceRepo(db))

	for _, bad := range []string{"", "abc", "-5", "0"} {
		if _, err := svc.Record("zinc", bad, "", "", ""); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("price %q: want validation error, got %v", bad, err)
		}
	}

	p, err := svc.Record("zinc", "  268.40 ", "", "", "MCX close")
	if err != nil {
		t.Fatal(err)
	}
	if p.PricePerUnit != "268.4" {
		t.Fatalf("price not normalized: %q", p.PricePerUnit)
	}
	if p.Unit != "kg" || p.Currency != "INR" {
		t.Fatalf("defaults not applied: %+v", p)
	}

	latest, err := svc.Latest(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(latest) == 0 || latest[0].Metal != "zinc" {
		t.Fatalf("newest price not first: %+v", latest)
	}
}
