package repository

import "gorm.io/gorm"

type Repository struct {
	DB      *gorm.DB
	Users   UserRepo
	Games   GameRepo
	Orders  OrderRepo
	Reviews ReviewRepo
}

func New(db *gorm.DB) *Repository {
	return &Repository{
		DB:      db,
		Users:   NewUserRepo(db),
		Games:   NewGameRepo(db),
		Orders:  NewOrderRepo(db),
		Reviews: NewReviewRepo(db),
	}
}
