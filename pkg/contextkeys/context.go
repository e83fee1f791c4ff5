package contextkeys

// Custom type avoids collisions with other context values.
type contextKey string

// DBContextKey is the key under which a *gorm.DB (pool or transaction)
// travels through the request context.
const DBContextKey = contextKey("db")
