package cancellation

import (
	"lodge/infras/otel"
	"lodge/internal/domains/cancellation/model"
	"lodge/internal/domains/cancellation/service"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Cancellation
	otel    otel.Otel
}

func New(service service.Cancellation, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

// Cancelling a reservation is exposed under /reservations/{id}/cancel; this
// handler only serves the cancellation records.
func (handler *Handler) Router(router chi.Router) {
	router.Route("/cancellations", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetCancellations)
		routerGroup.Get("/{id}", handler.GetCancellationByID)
	})
}

// GetCancellations retrieves cancellation records with optional filtering.
// @Summary Get all cancellations
// @Description Retrieve cancellation records, optionally scoped to one reservation or customer.
// @Tags Cancellation
// @Accept json
// @Produce json
// @Param reservation_id query string false "Filter by reservation"
// @Param customer_id query string false "Filter by customer"
// @Success 200 {object} dto.GetCancellationsResponse "List of cancellations"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/cancellations [get]
func (handler *Handler) GetCancellations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCancellations")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
	}

	for _, field := range []string{model.FieldReservationID, model.FieldCustomerID} {
		if value := r.URL.Query().Get(field); value != "" {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorEq,
				Value:    value,
				Table:    model.TableName,
			})
		}
	}

	cancellations, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get cancellations")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Cancellations retrieved successfully")

	response.WithJSON(w, http.StatusOK, cancellations)
}

// GetCancellationByID retrieves a cancellation record by its ID.
// @Summary Get a cancellation by ID
// @Tags Cancellation
// @Accept json
// @Produce json
// @Param id path string true "Cancellation ID"
// @Success 200 {object} dto.CancellationResponse "Cancellation details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/cancellations/{id} [get]
func (handler *Handler) GetCancellationByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCancellationByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	cancellation, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get cancellation by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Cancellation retrieved successfully")

	response.WithJSON(w, http.StatusOK, cancellation)
}
