package router

import (
	"dormhub/internal/handlers/auth"
	"dormhub/internal/handlers/booking"
	"dormhub/internal/handlers/dorm"
	"dormhub/internal/handlers/facility"
	"dormhub/internal/handlers/room"
	"dormhub/internal/handlers/user"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth     auth.Handler
	User     user.Handler
	Dorm     dorm.Handler
	Room     room.Handler
	Booking  booking.Handler
	Facility facility.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Dorm.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Facility.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
