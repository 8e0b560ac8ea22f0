package main

import "fmt"

// Catalog holds the pools of reference values the generators draw from so
// that events look plausible without any external data source. Pools are
// read-only after startup and shared by every generator.
type Catalog struct {
	Users          []string
	Operations     []string
	Services       []string
	Databases      []string
	Tables         []string
	Endpoints      []string
	CacheKeys      []string
	Jobs           []string
	ConfigSections []string
	Resources      []string
	PaymentMethods []string
	SearchTerms    []string
}

func DefaultCatalog() *Catalog {
	return &Catalog{
		Users: []string{
			"alice", "bob", "carol", "dave", "erin", "frank", "grace", "heidi",
			"ivan", "judy", "mallory", "niaj", "olivia", "peggy", "rupert", "sybil",
		},
		Operations: []string{
			"create_order", "update_profile", "export_report", "sync_inventory",
			"refresh_token", "upload_document", "merge_accounts", "archive_project",
		},
		Services: []string{
			"checkout", "catalog", "billing", "shipping", "identity",
			"notifications", "search", "recommendations",
		},
		Databases: []string{
			"orders_db", "users_db", "inventory_db", "billing_db", "analytics_db",
		},
		Tables: []string{
			"orders", "customers", "line_items", "payments", "shipments", "audit_log",
		},
		Endpoints: []string{
			"/api/v1/orders", "/api/v1/users", "/api/v1/products",
			"/api/v1/payments", "/api/v1/search", "/api/v1/reports",
		},
		CacheKeys: []string{
			"session", "product", "pricing", "user_prefs", "feature_flags", "geo",
		},
		Jobs: []string{
			"nightly_reconciliation", "index_rebuild", "invoice_batch",
			"stale_session_sweep", "metrics_rollup",
		},
		ConfigSections: []string{
			"database", "cache", "auth", "rate_limits", "feature_flags", "telemetry",
		},
		Resources: []string{
			"cpu", "memory", "disk", "file_descriptors", "connection_pool",
		},
		PaymentMethods: []string{
			"visa", "mastercard", "amex", "paypal", "apple_pay", "bank_transfer",
		},
		SearchTerms: []string{
			"wireless headphones", "running shoes", "coffee grinder",
			"standing desk", "mechanical keyboard", "water bottle",
		},
	}
}

// Validate checks that every pool has at least one entry. An empty pool is a
// startup-time misconfiguration; it is never checked again per pick.
func (c *Catalog) Validate() error {
	pools := map[string][]string{
		"users":           c.Users,
		"operations":      c.Operations,
		"services":        c.Services,
		"databases":       c.Databases,
		"tables":          c.Tables,
		"endpoints":       c.Endpoints,
		"cache_keys":      c.CacheKeys,
		"jobs":            c.Jobs,
		"config_sections": c.ConfigSections,
		"resources":       c.Resources,
		"payment_methods": c.PaymentMethods,
		"search_terms":    c.SearchTerms,
	}
	for name, pool := range pools {
		if len(pool) == 0 {
			return fmt.Errorf("catalog pool %s is empty", name)
		}
	}
	return nil
}
