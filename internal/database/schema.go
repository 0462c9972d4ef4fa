package database

import (
	"context"
	"fmt"
)

// Table names of the telecom dataset, in dependency order.
var Tables = []string{"customers", "call_records", "data_usage", "billing"}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS customers (
	    customer_id INTEGER PRIMARY KEY AUTOINCREMENT,
	    first_name TEXT NOT NULL,
	    last_name TEXT NOT NULL,
	    phone_number TEXT UNIQUE NOT NULL,
	    email TEXT,
	    address TEXT,
	    city TEXT,
	    state TEXT,
	    zip_code TEXT,
	    plan_type TEXT,
	    monthly_fee REAL,
	    registration_date DATE,
	    status TEXT
	)`,

	`CREATE TABLE IF NOT EXISTS call_records (
	    call_id INTEGER PRIMARY KEY AUTOINCREMENT,
	    customer_id INTEGER,
	    receiver_number TEXT,
	    call_duration INTEGER,
	    call_type TEXT,
	    call_date DATETIME,
	    cost REAL,
	    FOREIGN KEY (customer_id) REFERENCES customers (customer_id)
	)`,

	`CREATE TABLE IF NOT EXISTS data_usage (
	    usage_id INTEGER PRIMARY KEY AUTOINCREMENT,
	    customer_id INTEGER,
	    usage_date DATE,
	    data_used_mb REAL,
	    data_type TEXT,
	    cost REAL,
	    FOREIGN KEY (customer_id) REFERENCES customers (customer_id)
	)`,

	`CREATE TABLE IF NOT EXISTS billing (
	    bill_id INTEGER PRIMARY KEY AUTOINCREMENT,
	    customer_id INTEGER,
	    bill_date DATE,
	    due_date DATE,
	    amount REAL,
	    payment_status TEXT,
	    payment_date DATE,
	    FOREIGN KEY (customer_id) REFERENCES customers (customer_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_call_records_customer ON call_records (customer_id)`,
	`CREATE INDEX IF NOT EXISTS idx_data_usage_customer ON data_usage (customer_id)`,
	`CREATE INDEX IF NOT EXISTS idx_billing_customer ON billing (customer_id)`,
}

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS customers (
	    customer_id BIGINT PRIMARY KEY AUTO_INCREMENT,
	    first_name VARCHAR(100) NOT NULL,
	    last_name VARCHAR(100) NOT NULL,
	    phone_number VARCHAR(20) NOT NULL,
	    email VARCHAR(255),
	    address VARCHAR(255),
	    city VARCHAR(100),
	    state VARCHAR(10),
	    zip_code VARCHAR(20),
	    plan_type VARCHAR(20),
	    monthly_fee DECIMAL(10,2),
	    registration_date DATE,
	    status VARCHAR(20),
	    UNIQUE KEY uk_phone_number (phone_number),
	    INDEX idx_plan_type (plan_type)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS call_records (
	    call_id BIGINT PRIMARY KEY AUTO_INCREMENT,
	    customer_id BIGINT,
	    receiver_number VARCHAR(20),
	    call_duration INT,
	    call_type VARCHAR(20),
	    call_date DATETIME,
	    cost DECIMAL(10,2),
	    FOREIGN KEY (customer_id) REFERENCES customers(customer_id),
	    INDEX idx_customer_id (customer_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS data_usage (
	    usage_id BIGINT PRIMARY KEY AUTO_INCREMENT,
	    customer_id BIGINT,
	    usage_date DATE,
	    data_used_mb DECIMAL(12,2),
	    data_type VARCHAR(20),
	    cost DECIMAL(10,2),
	    FOREIGN KEY (customer_id) REFERENCES customers(customer_id),
	    INDEX idx_customer_id (customer_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS billing (
	    bill_id BIGINT PRIMARY KEY AUTO_INCREMENT,
	    customer_id BIGINT,
	    bill_date DATE,
	    due_date DATE,
	    amount DECIMAL(10,2),
	    payment_status VARCHAR(20),
	    payment_date DATE NULL,
	    FOREIGN KEY (customer_id) REFERENCES customers(customer_id),
	    INDEX idx_customer_id (customer_id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

func (db *DB) schema() ([]string, error) {
	switch db.Driver {
	case DriverSQLite:
		return sqliteSchema, nil
	case DriverMySQL:
		return mysqlSchema, nil
	default:
		return nil, fmt.Errorf("no schema for driver %s", db.Driver)
	}
}

// SetupSchema creates the telecom tables if they do not exist
func (db *DB) SetupSchema(ctx context.Context) error {
	statements, err := db.schema()
	if err != nil {
		return err
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%w: create schema: %w", ErrPersistence, err)
		}
	}

	return nil
}

// DropSchema removes all telecom tables, dependents first
func (db *DB) DropSchema(ctx context.Context) error {
	for i := len(Tables) - 1; i >= 0; i-- {
		if _, err := db.ExecContext(ctx, "DROP TABLE IF EXISTS "+Tables[i]); err != nil {
			return fmt.Errorf("%w: drop %s: %w", ErrPersistence, Tables[i], err)
		}
	}

	return nil
}
