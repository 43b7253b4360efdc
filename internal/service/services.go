package service

import (
	"github.com/eventroop/server/internal/config"
	"github.com/eventroop/server/internal/repository"
)

type Services struct {
	Auth       *AuthService
	Event      *EventService
	Membership *MembershipService
}

func NewServices(repos *repository.Repositories, cfg *config.Config) *Services {
	return &Services{
		Auth:       NewAuthService(repos.User, cfg),
		Event:      NewEventService(repos.Event),
		Membership: NewMembershipService(repos.Event),
	}
}
