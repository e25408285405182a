package router

import (
	"lodge/internal/handlers/cancellation"
	"lodge/internal/handlers/customer"
	"lodge/internal/handlers/payment"
	"lodge/internal/handlers/reservation"
	"lodge/internal/handlers/room"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Customer     customer.Handler
	Room         room.Handler
	Reservation  reservation.Handler
	Payment      payment.Handler
	Cancellation cancellation.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Customer.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Reservation.Router(routerGroup)
		r.DomainHandlers.Payment.Router(routerGroup)
		r.DomainHandlers.Cancellation.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
