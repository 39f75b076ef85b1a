package repos

import (
	"log"
	"strings"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

// isUniqueViolation reports whether err is a UNIQUE constraint failure whose
// message names the given column or index fragment. The driver exposes no
// typed error, so this matches on the sqlite message text.
func isUniqueViolation(err error, needle string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") && strings.Contains(msg, needle)
}

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed baseline catalog and price index if DB is empty
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	// Ensure demo users and role grants exist (idempotent; safe to run every start)
	if err := seedUsers(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Users & Sessions
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);

-- Role grants: checked, never written, by the application core
CREATE TABLE IF NOT EXISTS user_roles(
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  role TEXT NOT NULL CHECK (role IN ('user','admin')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(user_id, role)
);

-- Companies & buyer profiles
CREATE TABLE IF NOT EXISTS companies(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  gst TEXT,
  city TEXT,
  state TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS profiles(
  user_id TEXT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
  name TEXT NOT NULL,
  phone TEXT,
  company_id TEXT REFERENCES companies(id),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);

-- Products
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  sku TEXT NOT NULL UNIQUE,
  title TEXT NOT NULL,
  slug TEXT NOT NULL UNIQUE,
  metal_type TEXT NOT NULL,
  category TEXT,
  grade TEXT,
  specs_json TEXT,
  images_json TEXT,
  stock_qty INTEGER NOT NULL DEFAULT 0 CHECK (stock_qty >= 0),
  min_order_qty INTEGER NOT NULL DEFAULT 1 CHECK (min_order_qty >= 1),
  active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_products_metal      ON products(metal_type);
CREATE INDEX IF NOT EXISTS idx_products_category   ON products(category);
CREATE INDEX IF NOT EXISTS idx_products_title      ON products(LOWER(title));
CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at);

-- Inquiry carts (one per browser session)
CREATE TABLE IF NOT EXISTS carts(
  id TEXT PRIMARY KEY,
  session_id TEXT UNIQUE NOT NULL,
  updated_at TEXT
);

CREATE TABLE IF NOT EXISTS cart_items(
  cart_id    TEXT NOT NULL REFERENCES carts(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE RESTRICT,
  qty INTEGER NOT NULL CHECK (qty >= 1),
  uom TEXT NOT NULL DEFAULT 'kg',
  note TEXT,
  created_at TEXT,
  updated_at TEXT,
  PRIMARY KEY (cart_id, product_id)
);

-- Inquiries (RFQs) and their line items
CREATE TABLE IF NOT EXISTS inquiries(
  id TEXT PRIMARY KEY,
  number TEXT NOT NULL UNIQUE,
  buyer_id TEXT NOT NULL REFERENCES users(id),
  company_id TEXT REFERENCES companies(id),
  delivery_address TEXT,
  delivery_city TEXT,
  delivery_state TEXT,
  delivery_pin TEXT,
  notes TEXT,
  status TEXT NOT NULL DEFAULT 'open' CHECK (status IN ('open','responded','negotiation','closed')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_inquiries_buyer      ON inquiries(buyer_id);
CREATE INDEX IF NOT EXISTS idx_inquiries_created_at ON inquiries(created_at);

CREATE TABLE IF NOT EXISTS inquiry_items(
  id TEXT PRIMARY KEY,
  inquiry_id TEXT NOT NULL REFERENCES inquiries(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL REFERENCES products(id),
  qty INTEGER NOT NULL CHECK (qty >= 1),
  uom TEXT,
  note TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_inquiry_items_inquiry ON inquiry_items(inquiry_id);

-- Append-only admin reply thread
CREATE TABLE IF NOT EXISTS inquiry_replies(
  id TEXT PRIMARY KEY,
  inquiry_id TEXT NOT NULL REFERENCES inquiries(id) ON DELETE CASCADE,
  message TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_inquiry_replies_inquiry ON inquiry_replies(inquiry_id);

-- Market price index
CREATE TABLE IF NOT EXISTS price_index(
  id TEXT PRIMARY KEY,
  metal TEXT NOT NULL,
  price_per_unit TEXT NOT NULL,
  unit TEXT NOT NULL DEFAULT 'kg',
  currency TEXT NOT NULL DEFAULT 'INR',
  source TEXT,
  timestamp TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_price_index_ts ON price_index(timestamp);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo catalog and price index")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO products(id,sku,title,slug,metal_type,category,grade,specs_json,images_json,stock_qty,min_order_qty,active) VALUES
	  ('prod-ss-304-sheet','SS-304-SH-2MM','Stainless Steel 304 Sheet 2mm','stainless-steel-304-sheet-2mm','stainless_steel','sheet','304',
	    '{"thickness":"2mm","finish":"2B","width":"1250mm"}','["products/ss-304-sheet/main.jpg"]',1200,50,1),
	  ('prod-ms-angle-50','MS-ANG-50X50','Mild Steel Angle 50x50x6','mild-steel-angle-50x50x6','mild_steel','angle','IS2062',
	    '{"size":"50x50mm","thickness":"6mm","length":"6m"}','["products/ms-angle-50/main.jpg"]',800,100,1),
	  ('prod-cu-rod-12','CU-ROD-12MM','Copper Rod 12mm','copper-rod-12mm','copper','rod','C11000',
	    '{"diameter":"12mm","length":"3m"}','["products/cu-rod-12/main.jpg"]',300,25,1),
	  ('prod-al-sheet-1','AL-SH-1MM','Aluminium Sheet 1mm 6061','aluminium-sheet-1mm-6061','aluminium','sheet','6061',
	    '{"thickness":"1mm","temper":"T6"}','["products/al-sheet-1/main.jpg"]',0,20,1)`)

	tx.MustExec(`INSERT INTO price_index(id,metal,price_per_unit,unit,currency,source) VALUES
	  ('px-ss','stainless_steel','215.50','kg','INR','LME reference'),
	  ('px-ms','mild_steel','58.75','kg','INR','LME reference'),
	  ('px-cu','copper','785.00','kg','INR','LME reference'),
	  ('px-al','aluminium','245.25','kg','INR','LME reference')`)

	return tx.Commit()
}

// seedUsers ensures a demo buyer and one admin (with role grant) exist.
func seedUsers(db *sqlx.DB) error {
	type u struct {
		ID, Email, Name, Role, Hash string
	}
	mk := func(id, email, name, role, raw string) u {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return u{ID: id, Email: email, Name: name, Role: role, Hash: string(h)}
	}

	users := []u{
		mk("u-ravi", "ravi@lohakart.test", "Ravi Traders", "user", "Passw0rd!"),
		mk("u-meera", "meera@lohakart.test", "Meera Fabrication", "user", "Passw0rd!"),
		mk("u-admin", "admin@lohakart.test", "Lohakart Admin", "admin", "Passw0rd!"),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range users {
		if _, err := tx.Exec(`
			INSERT INTO users(id,email,password_hash)
			VALUES(?,?,?)
			ON CONFLICT(email) DO NOTHING
		`, x.ID, x.Email, x.Hash); err != nil {
			return err
		}
		if _, err := tx.Exec(`
			INSERT INTO profiles(user_id,name)
			VALUES(?,?)
			ON CONFLICT(user_id) DO NOTHING
		`, x.ID, x.Name); err != nil {
			return err
		}
		if _, err := tx.Exec(`
			INSERT INTO user_roles(id,user_id,role)
			VALUES(?,?,?)
			ON CONFLICT(user_id,role) DO NOTHING
		`, "role-"+x.ID, x.ID, x.Role); err != nil {
			return err
		}
	}

	return tx.Commit()
}
