package repositories

import (
	"github.com/mhasan/dancecamp/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository    *UserRepository
	ClassRepository   *ClassRepository
	CartRepository    *CartRepository
	PaymentRepository *PaymentRepository
}

// NewRepositories initializes all repositories
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		UserRepository:    NewUserRepository(database.Pool),
		ClassRepository:   NewClassRepository(database.Pool),
		CartRepository:    NewCartRepository(database.Pool),
		PaymentRepository: NewPaymentRepository(database),
	}
}
