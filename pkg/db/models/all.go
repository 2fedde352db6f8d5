package models

// All returns every model registered for schema management, parents before children
// so AutoMigrate can create foreign keys in order.
func All() []any {
	return []any{
		&Tenant{},
		&Session{},
		&Order{},
		&Job{},
		&GeneratedAsset{},
		&SupportTicket{},
		&Notification{},
	}
}
