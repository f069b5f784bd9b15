package router

import (
	"github.com/go-chi/chi/v5"

	"campus/internal/handlers/booking"
	"campus/internal/handlers/equipment"
	"campus/internal/handlers/program"
	"campus/internal/handlers/responsible"
	"campus/internal/handlers/room"
	"campus/internal/handlers/status"
	"campus/internal/handlers/teacher"
)

type DomainHandlers struct {
	Status      status.Handler
	Teacher     teacher.Handler
	Program     program.Handler
	Room        room.Handler
	Equipment   equipment.Handler
	Booking     booking.Handler
	Responsible responsible.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Status.Router(routerGroup)
		r.DomainHandlers.Teacher.Router(routerGroup)
		r.DomainHandlers.Program.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Equipment.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Responsible.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
