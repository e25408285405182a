package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"lodge/config"
	kafkaMocks "lodge/infras/kafka/mocks"
	"lodge/infras/otel/mocks"
	cancellationMocks "lodge/internal/domains/cancellation/mocks"
	"lodge/internal/domains/cancellation/model"
	"lodge/internal/domains/cancellation/model/dto"
	"lodge/internal/domains/cancellation/service"
	paymentMocks "lodge/internal/domains/payment/mocks"
	reservationMocks "lodge/internal/domains/reservation/mocks"
	reservationModel "lodge/internal/domains/reservation/model"
	cacheMocks "lodge/shared/cache/mocks"
	"lodge/shared/constant"
	"lodge/shared/failure"
)

type cancellationServiceMocks struct {
	repo            *cancellationMocks.MockCancellation
	reservationRepo *reservationMocks.MockReservation
	paymentRepo     *paymentMocks.MockPayment
	cache           *cacheMocks.MockRedisCache
	kafka           *kafkaMocks.MockClient
}

func newCancellationService(t *testing.T) (service.Cancellation, cancellationServiceMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)

	m := cancellationServiceMocks{
		repo:            cancellationMocks.NewMockCancellation(ctrl),
		reservationRepo: reservationMocks.NewMockReservation(ctrl),
		paymentRepo:     paymentMocks.NewMockPayment(ctrl),
		cache:           cacheMocks.NewMockRedisCache(ctrl),
		kafka:           kafkaMocks.NewMockClient(ctrl),
	}

	// Cache invalidation and event publishing run on background goroutines.
	m.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.kafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(m.repo, m.reservationRepo, m.paymentRepo, cfg, m.cache, m.kafka, mocks.NewOtel())

	return svc, m
}

func TestCancellationService_CancelWithRefund(t *testing.T) {
	svc, m := newCancellationService(t)

	reservation := reservationModel.Reservation{
		ID:         "res-id",
		CustomerID: "customer-id",
		RoomID:     "room-id",
		TotalPrice: 300,
		Status:     reservationModel.StatusConfirmed,
	}

	tests := []struct {
		name      string
		req       dto.CancelReservationRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful cancellation with refund",
			req: dto.CancelReservationRequest{
				CustomerID:   "customer-id",
				RefundAmount: 150,
				Reason:       "change of plans",
			},
			setupMock: func() {
				m.reservationRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(reservation, nil)

				m.paymentRepo.EXPECT().
					SumForReservation(gomock.Any(), "res-id").
					Return(200.0, nil)

				m.repo.EXPECT().
					CancelReservation(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "cancellation without refund skips the ledger",
			req: dto.CancelReservationRequest{
				CustomerID: "customer-id",
			},
			setupMock: func() {
				m.reservationRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(reservation, nil)

				m.repo.EXPECT().
					CancelReservation(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "refund exceeds total paid",
			req: dto.CancelReservationRequest{
				CustomerID:   "customer-id",
				RefundAmount: 200,
			},
			setupMock: func() {
				m.reservationRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(reservation, nil)

				m.paymentRepo.EXPECT().
					SumForReservation(gomock.Any(), "res-id").
					Return(150.0, nil)
			},
			wantErr:  true,
			wantCode: 422,
		},
		{
			name: "negative refund is rejected before touching the ledger",
			req: dto.CancelReservationRequest{
				CustomerID:   "customer-id",
				RefundAmount: -50,
			},
			setupMock: func() {
				m.reservationRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(reservation, nil)
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name: "reservation belongs to another customer",
			req: dto.CancelReservationRequest{
				CustomerID: "other-customer-id",
			},
			setupMock: func() {
				m.reservationRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(reservation, nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name: "reservation not found",
			req: dto.CancelReservationRequest{
				CustomerID: "customer-id",
			},
			setupMock: func() {
				m.reservationRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(reservationModel.Reservation{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name: "reservation already cancelled",
			req: dto.CancelReservationRequest{
				CustomerID: "customer-id",
			},
			setupMock: func() {
				m.reservationRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(reservation, nil)

				m.repo.EXPECT().
					CancelReservation(gomock.Any(), gomock.Any()).
					Return(failure.Conflict("reservation is already cancelled"))
			},
			wantErr:  true,
			wantCode: 409,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			res, err := svc.CancelWithRefund(ctx, "res-id", tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "res-id", res.ReservationID)
				assert.Equal(t, tt.req.RefundAmount, res.RefundAmount)
			}
		})
	}
}

func TestCancellationService_Get(t *testing.T) {
	svc, m := newCancellationService(t)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantID    string
	}{
		{
			name: "cache hit",
			setupMock: func() {
				m.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "cache miss, successful get from db",
			setupMock: func() {
				m.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Cancellation{ID: "cxl-id", ReservationID: "res-id"}, nil)
			},
			wantErr: false,
			wantID:  "cxl-id",
		},
		{
			name: "cancellation not found",
			setupMock: func() {
				m.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Cancellation{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Get(context.Background(), "cxl-id")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				if tt.wantID != "" {
					assert.Equal(t, tt.wantID, res.ID)
				}
			}
		})
	}
}
