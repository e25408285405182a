package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"lodge/config"
	"lodge/infras/kafka"
	"lodge/infras/otel"
	"lodge/internal/domains/cancellation/model"
	"lodge/internal/domains/cancellation/model/dto"
	"lodge/internal/domains/cancellation/repository"
	paymentModel "lodge/internal/domains/payment/model"
	paymentRepo "lodge/internal/domains/payment/repository"
	reservationModel "lodge/internal/domains/reservation/model"
	reservationDto "lodge/internal/domains/reservation/model/dto"
	"lodge/internal/domains/reservation/pricing"
	reservationRepo "lodge/internal/domains/reservation/repository"
	reservationService "lodge/internal/domains/reservation/service"
	"lodge/shared"
	"lodge/shared/cache"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetCancellation    = "cancellation:get"
	cacheGetAllCancellation = "cancellation:gets"
	cacheCountCancellation  = "cancellation:count"
)

type Cancellation interface {
	CancelWithRefund(ctx context.Context, reservationID string, req dto.CancelReservationRequest) (dto.CancellationResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetCancellationsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.CancellationResponse, error)
}

type serviceImpl struct {
	repo            repository.Cancellation
	reservationRepo reservationRepo.Reservation
	paymentRepo     paymentRepo.Payment
	cfg             *config.Config
	cache           cache.RedisCache
	kafka           kafka.Client
	otel            otel.Otel
}

func New(repo repository.Cancellation, reservationRepo reservationRepo.Reservation, paymentRepo paymentRepo.Payment, cfg *config.Config, cache cache.RedisCache, kafkaClient kafka.Client, otel otel.Otel) Cancellation {
	return &serviceImpl{
		repo:            repo,
		reservationRepo: reservationRepo,
		paymentRepo:     paymentRepo,
		cfg:             cfg,
		cache:           cache,
		kafka:           kafkaClient,
		otel:            otel,
	}
}

// CancelWithRefund cancels a reservation on behalf of its customer and records
// the refund. The refund may not exceed what has actually been paid.
func (s *serviceImpl) CancelWithRefund(ctx context.Context, reservationID string, req dto.CancelReservationRequest) (res dto.CancellationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CancelWithRefund")
	defer scope.End()
	defer scope.TraceIfError(err)

	reservation, err := s.reservationRepo.Get(ctx, shared.FilterByID(reservationID, reservationModel.FieldID, reservationModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return res, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return res, failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	if reservation.CustomerID != req.CustomerID {
		return res, failure.Conflict("reservation does not belong to this customer") // nolint:wrapcheck
	}

	if req.RefundAmount < 0 {
		return res, failure.BadRequestFromString("refund amount must not be negative") // nolint:wrapcheck
	}

	if req.RefundAmount > 0 {
		paid, err := s.paymentRepo.SumForReservation(ctx, reservationID)
		if err != nil {
			log.Error().Err(err).Msg("failed to sum payments")

			return res, fmt.Errorf("failed to sum payments: %w", err)
		}

		if req.RefundAmount > paid+paymentModel.BalanceTolerance {
			return res, failure.UnprocessableEntity(fmt.Sprintf("refund of %.2f exceeds total paid of %.2f", req.RefundAmount, pricing.Round2(paid))) // nolint:wrapcheck
		}
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	cxl := req.ToModel(reservationID, user)

	if err = s.repo.CancelReservation(ctx, cxl); err != nil {
		log.Error().Err(err).Str("reservationID", reservationID).Msg("failed to cancel reservation")

		return res, err // nolint:wrapcheck
	}

	reservation.Status = reservationModel.StatusCancelled

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllCancellation)
		shared.InvalidateCaches(c, s.cache, cacheCountCancellation)
		shared.InvalidateCaches(c, s.cache, reservationService.CacheGetReservation)
		shared.InvalidateCaches(c, s.cache, reservationService.CacheGetAllReservation)
		shared.InvalidateCaches(c, s.cache, reservationService.CacheCountReservation)

		event := kafka.Message{Key: reservation.ID, Value: reservationDto.NewLifecycleEvent(reservationDto.LifecycleActionCancelled, reservation)}
		if err := s.kafka.SendMessages(c, constant.TopicReservationLifecycle, event); err != nil {
			log.Error().Err(err).Str("reservationID", reservation.ID).Msg("failed to publish reservation cancelled event")
		}
	}()

	res.FromModel(cxl)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetCancellationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllCancellation, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for cancellations")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count cancellations")

		return res, fmt.Errorf("failed to count cancellations: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get cancellations")

		return res, fmt.Errorf("failed to get cancellations: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save cancellations to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountCancellation, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for cancellation count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count cancellations")

		return res, fmt.Errorf("failed to count cancellations: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save cancellation count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.CancellationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetCancellation, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for cancellation")

		return res, nil
	}

	cxl, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get cancellation")

		return res, fmt.Errorf("failed to get cancellation: %w", err)
	}

	if cxl.ID == constant.Empty {
		return res, failure.NotFound("cancellation not found") // nolint:wrapcheck
	}

	res.FromModel(cxl)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save cancellation to cache")
		}
	}()

	return res, nil
}
