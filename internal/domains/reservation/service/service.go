package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"lodge/config"
	"lodge/infras/kafka"
	"lodge/infras/otel"
	customerModel "lodge/internal/domains/customer/model"
	customerRepo "lodge/internal/domains/customer/repository"
	"lodge/internal/domains/reservation/model"
	"lodge/internal/domains/reservation/model/dto"
	"lodge/internal/domains/reservation/pricing"
	"lodge/internal/domains/reservation/repository"
	roomModel "lodge/internal/domains/room/model"
	roomRepo "lodge/internal/domains/room/repository"
	"lodge/shared"
	"lodge/shared/cache"
	"lodge/shared/constant"
	"lodge/shared/daterange"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"
	"lodge/shared/timezone"

	"github.com/rs/zerolog/log"
)

// Cache key prefixes are exported so the cancellation flow can invalidate
// reservation reads after closing a reservation from outside this package.
const (
	CacheGetReservation    = "reservation:get"
	CacheGetAllReservation = "reservation:gets"
	CacheCountReservation  = "reservation:count"
)

type Reservation interface {
	Create(ctx context.Context, req dto.CreateReservationRequest) (dto.ReservationResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetReservationsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.ReservationResponse, error)
	Update(ctx context.Context, req dto.UpdateReservationRequest, id string) error
	Cancel(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	IsAvailable(ctx context.Context, roomID, checkIn, checkOut, excludeID string) (dto.AvailabilityResponse, error)
}

type serviceImpl struct {
	repo         repository.Reservation
	customerRepo customerRepo.Customer
	roomRepo     roomRepo.Room
	cfg          *config.Config
	cache        cache.RedisCache
	kafka        kafka.Client
	otel         otel.Otel
}

func New(repo repository.Reservation, customerRepo customerRepo.Customer, roomRepo roomRepo.Room, cfg *config.Config, cache cache.RedisCache, kafkaClient kafka.Client, otel otel.Otel) Reservation {
	return &serviceImpl{
		repo:         repo,
		customerRepo: customerRepo,
		roomRepo:     roomRepo,
		cfg:          cfg,
		cache:        cache,
		kafka:        kafkaClient,
		otel:         otel,
	}
}

func (s *serviceImpl) invalidateCaches(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != "" {
			if err := s.cache.Delete(c, shared.BuildCacheKey(CacheGetReservation, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete reservation from cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, CacheGetAllReservation)
		shared.InvalidateCaches(c, s.cache, CacheCountReservation)
	}()
}

func (s *serviceImpl) publishLifecycle(ctx context.Context, action string, res model.Reservation) {
	go func() {
		c := context.WithoutCancel(ctx)

		event := dto.NewLifecycleEvent(action, res)
		message := kafka.Message{Key: res.ID, Value: event}

		if err := s.kafka.SendMessages(c, constant.TopicReservationLifecycle, message); err != nil {
			log.Error().Err(err).Str("reservationID", res.ID).Str("action", action).Msg("failed to publish reservation lifecycle event")
		}
	}()
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReservationRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	stay, err := daterange.Parse(req.CheckInDate, req.CheckOutDate)
	if err != nil {
		return res, err
	}

	customerExists, err := s.customerRepo.Exist(ctx, shared.FilterByID(req.CustomerID, customerModel.FieldID, customerModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if customer exists")

		return res, fmt.Errorf("failed to check if customer exists: %w", err)
	}

	if !customerExists {
		return res, failure.NotFound("customer not found") // nolint:wrapcheck
	}

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	total, err := pricing.ComputeTotal(room.NightlyRate, stay.Nights())
	if err != nil {
		return res, err
	}

	reservation := req.ToModel(user, stay, total)

	if err = s.repo.InsertExclusive(ctx, reservation); err != nil {
		log.Error().Err(err).Str("roomID", req.RoomID).Msg("failed to create reservation")

		return res, err // nolint:wrapcheck
	}

	s.invalidateCaches(ctx, "")
	s.publishLifecycle(ctx, dto.LifecycleActionCreated, reservation)

	res.FromModel(reservation)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(CacheGetAllReservation, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservations")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return res, fmt.Errorf("failed to get reservations: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservations to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(CacheCountReservation, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservation count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservation count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(CacheGetReservation, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservation")

		return res, nil
	}

	reservation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return res, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return res, failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	res.FromModel(reservation)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservation to cache")
		}
	}()

	return res, nil
}

//nolint:cyclop
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateReservationRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateReservationRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return fmt.Errorf("failed to get reservation: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	if model.IsClosed(current.Status) {
		return failure.Conflict(fmt.Sprintf("reservation is %s and can no longer be modified", current.Status)) // nolint:wrapcheck
	}

	if req.Status != "" && req.Status != current.Status && !model.CanTransition(current.Status, req.Status) {
		return failure.Conflict(fmt.Sprintf("cannot transition reservation from %s to %s", current.Status, req.Status)) // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)

	if !req.ChangesStay() {
		if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
			log.Error().Err(err).Msg("failed to update reservation")

			return fmt.Errorf("failed to update reservation: %w", err)
		}
	} else {
		checkIn := current.CheckInDate
		checkOut := current.CheckOutDate

		if req.CheckInDate != "" {
			if checkIn, err = timezone.Parse(constant.StayDateFormat, req.CheckInDate); err != nil {
				return failure.BadRequestFromString("invalid check-in date, expected YYYY-MM-DD") // nolint:wrapcheck
			}
		}

		if req.CheckOutDate != "" {
			if checkOut, err = timezone.Parse(constant.StayDateFormat, req.CheckOutDate); err != nil {
				return failure.BadRequestFromString("invalid check-out date, expected YYYY-MM-DD") // nolint:wrapcheck
			}
		}

		stay, err := daterange.New(checkIn, checkOut)
		if err != nil {
			return err
		}

		roomID := current.RoomID
		if req.RoomID != "" {
			roomID = req.RoomID
		}

		room, err := s.roomRepo.Get(ctx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to get room")

			return fmt.Errorf("failed to get room: %w", err)
		}

		if room.ID == constant.Empty {
			return failure.NotFound("room not found") // nolint:wrapcheck
		}

		total, err := pricing.ComputeTotal(room.NightlyRate, stay.Nights())
		if err != nil {
			return err
		}

		updatedFields[model.FieldCheckInDate] = stay.CheckIn
		updatedFields[model.FieldCheckOutDate] = stay.CheckOut
		updatedFields[model.FieldTotalPrice] = total

		if err = s.repo.UpdateStayExclusive(ctx, id, roomID, stay, updatedFields); err != nil {
			log.Error().Err(err).Msg("failed to update reservation stay")

			return err // nolint:wrapcheck
		}

		current.RoomID = roomID
		current.CheckInDate = stay.CheckIn
		current.CheckOutDate = stay.CheckOut
		current.TotalPrice = total
	}

	action := dto.LifecycleActionUpdated

	if req.Status != "" {
		current.Status = req.Status

		if req.Status == model.StatusCancelled {
			action = dto.LifecycleActionCancelled
		}
	}

	s.invalidateCaches(ctx, id)
	s.publishLifecycle(ctx, action, current)

	return nil
}

func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return fmt.Errorf("failed to get reservation: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	if !model.CanTransition(current.Status, model.StatusCancelled) {
		return failure.Conflict(fmt.Sprintf("reservation is %s and can no longer be cancelled", current.Status)) // nolint:wrapcheck
	}

	updatedFields := map[string]any{
		model.FieldStatus:        model.StatusCancelled,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to cancel reservation")

		return fmt.Errorf("failed to cancel reservation: %w", err)
	}

	current.Status = model.StatusCancelled

	s.invalidateCaches(ctx, id)
	s.publishLifecycle(ctx, dto.LifecycleActionCancelled, current)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return fmt.Errorf("failed to get reservation: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete reservation")

		return fmt.Errorf("failed to delete reservation: %w", err)
	}

	s.invalidateCaches(ctx, id)
	s.publishLifecycle(ctx, dto.LifecycleActionDeleted, current)

	return nil
}

// IsAvailable reports whether the room is free for the requested stay,
// optionally ignoring one reservation (used when moving an existing booking).
func (s *serviceImpl) IsAvailable(ctx context.Context, roomID, checkIn, checkOut, excludeID string) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".IsAvailable")
	defer scope.End()
	defer scope.TraceIfError(err)

	stay, err := daterange.Parse(checkIn, checkOut)
	if err != nil {
		return res, err
	}

	roomExists, err := s.roomRepo.Exist(ctx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if room exists")

		return res, fmt.Errorf("failed to check if room exists: %w", err)
	}

	if !roomExists {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	overlap, err := s.repo.HasOverlap(ctx, roomID, stay, excludeID)
	if err != nil {
		log.Error().Err(err).Msg("failed to check room availability")

		return res, fmt.Errorf("failed to check room availability: %w", err)
	}

	return dto.AvailabilityResponse{
		RoomID:       roomID,
		CheckInDate:  stay.CheckIn.Format(constant.StayDateFormat),
		CheckOutDate: stay.CheckOut.Format(constant.StayDateFormat),
		Available:    !overlap,
	}, nil
}
