package auth

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	CreateUser(ctx context.Context, user *User) error
	FindUserByEmail(ctx context.Context, email string) (*User, error)
	FindUserByID(ctx context.Context, id string) (*User, error)

	CreateOrganizer(ctx context.Context, organizer *Organizer) error
	FindOrganizerByEmail(ctx context.Context, email string) (*Organizer, error)
	FindOrganizerByID(ctx context.Context, id string) (*Organizer, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateUser(ctx context.Context, user *User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *repository) FindUserByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) FindUserByID(ctx context.Context, id string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) CreateOrganizer(ctx context.Context, organizer *Organizer) error {
	return r.db.WithContext(ctx).Create(organizer).Error
}

func (r *repository) FindOrganizerByEmail(ctx context.Context, email string) (*Organizer, error) {
	var o Organizer
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repository) FindOrganizerByID(ctx context.Context, id string) (*Organizer, error) {
	var o Organizer
	err := r.db.WithContext(ctx).First(&o, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}
