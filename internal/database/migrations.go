package database

// sqliteSchemaSQL creates the six collections for sqlite.
// Timestamps are RFC 3339 text so both dialects round-trip identically.
// Ownership references carry no foreign keys: the cascade in the service decides deletion order.
const sqliteSchemaSQL = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    role TEXT NOT NULL DEFAULT 'sales_representative',
    name TEXT NOT NULL DEFAULT '',
    email TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    last_login_date TEXT,
    created_by_user_id TEXT,
    is_active INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS customers (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    phone_number TEXT NOT NULL DEFAULT '',
    customer_status TEXT,
    first_contact_date TEXT NOT NULL,
    last_update_date TEXT NOT NULL,
    reminder_date TEXT,
    created_by_user_id TEXT NOT NULL,
    assigned_sales_rep_id TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_customers_assigned ON customers(assigned_sales_rep_id);
CREATE INDEX IF NOT EXISTS idx_customers_created_by ON customers(created_by_user_id);

CREATE TABLE IF NOT EXISTS deals (
    id TEXT PRIMARY KEY,
    customer_id TEXT NOT NULL,
    service TEXT NOT NULL DEFAULT '',
    lead_source TEXT NOT NULL DEFAULT '',
    sales_representative_id TEXT NOT NULL,
    status TEXT,
    deal_details TEXT NOT NULL DEFAULT '',
    deal_value REAL NOT NULL DEFAULT 0 CHECK (deal_value >= 0),
    creation_date TEXT NOT NULL,
    last_update_date TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_deals_rep ON deals(sales_representative_id);
CREATE INDEX IF NOT EXISTS idx_deals_customer ON deals(customer_id);

CREATE TABLE IF NOT EXISTS activities (
    id TEXT PRIMARY KEY,
    customer_id TEXT,
    deal_id TEXT,
    activity_date TEXT NOT NULL,
    activity_details TEXT NOT NULL DEFAULT '',
    activity_type TEXT NOT NULL,
    recorded_by_user_id TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_activities_recorded_by ON activities(recorded_by_user_id);

CREATE TABLE IF NOT EXISTS tasks (
    id TEXT PRIMARY KEY,
    customer_id TEXT,
    deal_id TEXT,
    assigned_to_user_id TEXT NOT NULL,
    task_description TEXT NOT NULL DEFAULT '',
    due_date TEXT NOT NULL,
    task_status TEXT,
    task_type TEXT NOT NULL,
    creation_date TEXT NOT NULL,
    completed_date TEXT,
    created_by_user_id TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_tasks_assigned ON tasks(assigned_to_user_id);
CREATE INDEX IF NOT EXISTS idx_tasks_created_by ON tasks(created_by_user_id);
CREATE INDEX IF NOT EXISTS idx_tasks_due_date ON tasks(due_date);

CREATE TABLE IF NOT EXISTS daily_reports (
    id TEXT PRIMARY KEY,
    report_date TEXT NOT NULL,
    sales_representative_id TEXT NOT NULL,
    new_customers_count INTEGER NOT NULL DEFAULT 0,
    completed_deals_count INTEGER NOT NULL DEFAULT 0,
    total_revenue_from_completed_deals REAL NOT NULL DEFAULT 0,
    daily_notes TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_daily_reports_rep ON daily_reports(sales_representative_id);
CREATE INDEX IF NOT EXISTS idx_daily_reports_date ON daily_reports(report_date);
`

// postgresSchemaSQL mirrors sqliteSchemaSQL with native boolean and double columns.
const postgresSchemaSQL = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    role TEXT NOT NULL DEFAULT 'sales_representative',
    name TEXT NOT NULL DEFAULT '',
    email TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    last_login_date TEXT,
    created_by_user_id TEXT,
    is_active BOOLEAN NOT NULL DEFAULT TRUE
);

CREATE TABLE IF NOT EXISTS customers (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    phone_number TEXT NOT NULL DEFAULT '',
    customer_status TEXT,
    first_contact_date TEXT NOT NULL,
    last_update_date TEXT NOT NULL,
    reminder_date TEXT,
    created_by_user_id TEXT NOT NULL,
    assigned_sales_rep_id TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_customers_assigned ON customers(assigned_sales_rep_id);
CREATE INDEX IF NOT EXISTS idx_customers_created_by ON customers(created_by_user_id);

CREATE TABLE IF NOT EXISTS deals (
    id TEXT PRIMARY KEY,
    customer_id TEXT NOT NULL,
    service TEXT NOT NULL DEFAULT '',
    lead_source TEXT NOT NULL DEFAULT '',
    sales_representative_id TEXT NOT NULL,
    status TEXT,
    deal_details TEXT NOT NULL DEFAULT '',
    deal_value DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (deal_value >= 0),
    creation_date TEXT NOT NULL,
    last_update_date TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_deals_rep ON deals(sales_representative_id);
CREATE INDEX IF NOT EXISTS idx_deals_customer ON deals(customer_id);

CREATE TABLE IF NOT EXISTS activities (
    id TEXT PRIMARY KEY,
    customer_id TEXT,
    deal_id TEXT,
    activity_date TEXT NOT NULL,
    activity_details TEXT NOT NULL DEFAULT '',
    activity_type TEXT NOT NULL,
    recorded_by_user_id TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_activities_recorded_by ON activities(recorded_by_user_id);

CREATE TABLE IF NOT EXISTS tasks (
    id TEXT PRIMARY KEY,
    customer_id TEXT,
    deal_id TEXT,
    assigned_to_user_id TEXT NOT NULL,
    task_description TEXT NOT NULL DEFAULT '',
    due_date TEXT NOT NULL,
    task_status TEXT,
    task_type TEXT NOT NULL,
    creation_date TEXT NOT NULL,
    completed_date TEXT,
    created_by_user_id TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_tasks_assigned ON tasks(assigned_to_user_id);
CREATE INDEX IF NOT EXISTS idx_tasks_created_by ON tasks(created_by_user_id);
CREATE INDEX IF NOT EXISTS idx_tasks_due_date ON tasks(due_date);

CREATE TABLE IF NOT EXISTS daily_reports (
    id TEXT PRIMARY KEY,
    report_date TEXT NOT NULL,
    sales_representative_id TEXT NOT NULL,
    new_customers_count INTEGER NOT NULL DEFAULT 0,
    completed_deals_count INTEGER NOT NULL DEFAULT 0,
    total_revenue_from_completed_deals DOUBLE PRECISION NOT NULL DEFAULT 0,
    daily_notes TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_daily_reports_rep ON daily_reports(sales_representative_id);
CREATE INDEX IF NOT EXISTS idx_daily_reports_date ON daily_reports(report_date);
`
