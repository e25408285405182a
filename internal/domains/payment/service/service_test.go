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
	paymentMocks "lodge/internal/domains/payment/mocks"
	"lodge/internal/domains/payment/model"
	"lodge/internal/domains/payment/model/dto"
	"lodge/internal/domains/payment/service"
	reservationMocks "lodge/internal/domains/reservation/mocks"
	reservationModel "lodge/internal/domains/reservation/model"
	cacheMocks "lodge/shared/cache/mocks"
	"lodge/shared/constant"
	"lodge/shared/failure"
)

type paymentServiceMocks struct {
	repo            *paymentMocks.MockPayment
	reservationRepo *reservationMocks.MockReservation
	cache           *cacheMocks.MockRedisCache
	kafka           *kafkaMocks.MockClient
}

func newPaymentService(t *testing.T) (service.Payment, paymentServiceMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)

	m := paymentServiceMocks{
		repo:            paymentMocks.NewMockPayment(ctrl),
		reservationRepo: reservationMocks.NewMockReservation(ctrl),
		cache:           cacheMocks.NewMockRedisCache(ctrl),
		kafka:           kafkaMocks.NewMockClient(ctrl),
	}

	// Cache invalidation and event publishing run on background goroutines.
	m.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.kafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(m.repo, m.reservationRepo, cfg, m.cache, m.kafka, mocks.NewOtel())

	return svc, m
}

func TestPaymentService_Record(t *testing.T) {
	svc, m := newPaymentService(t)

	tests := []struct {
		name        string
		req         dto.CreatePaymentRequest
		setupMock   func()
		wantErr     bool
		wantCode    int
		wantBalance float64
		wantPaid    bool
	}{
		{
			name: "partial payment leaves a balance",
			req: dto.CreatePaymentRequest{
				ReservationID: "res-id",
				Amount:        100,
				Method:        model.MethodCreditCard,
			},
			setupMock: func() {
				m.repo.EXPECT().
					Record(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, pay model.Payment) (model.Payment, error) {
						pay.Balance = 200
						pay.FullyPaid = false

						return pay, nil
					})
			},
			wantErr:     false,
			wantBalance: 200,
			wantPaid:    false,
		},
		{
			name: "final payment settles the reservation",
			req: dto.CreatePaymentRequest{
				ReservationID: "res-id",
				Amount:        200,
				Method:        model.MethodCash,
			},
			setupMock: func() {
				m.repo.EXPECT().
					Record(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, pay model.Payment) (model.Payment, error) {
						pay.Balance = 0
						pay.FullyPaid = true

						return pay, nil
					})
			},
			wantErr:     false,
			wantBalance: 0,
			wantPaid:    true,
		},
		{
			name: "overpayment is rejected",
			req: dto.CreatePaymentRequest{
				ReservationID: "res-id",
				Amount:        300.01,
				Method:        model.MethodCreditCard,
			},
			setupMock: func() {
				m.repo.EXPECT().
					Record(gomock.Any(), gomock.Any()).
					Return(model.Payment{}, failure.UnprocessableEntity("payment of 300.01 exceeds outstanding balance of 300.00"))
			},
			wantErr:  true,
			wantCode: 422,
		},
		{
			name: "payment on cancelled reservation is rejected",
			req: dto.CreatePaymentRequest{
				ReservationID: "res-id",
				Amount:        100,
				Method:        model.MethodCreditCard,
			},
			setupMock: func() {
				m.repo.EXPECT().
					Record(gomock.Any(), gomock.Any()).
					Return(model.Payment{}, failure.Conflict("cannot record a payment on a cancelled reservation"))
			},
			wantErr:  true,
			wantCode: 409,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			res, err := svc.Record(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantBalance, res.Balance)
				assert.Equal(t, tt.wantPaid, res.FullyPaid)
			}
		})
	}
}

func TestPaymentService_Summary(t *testing.T) {
	svc, m := newPaymentService(t)

	reservation := reservationModel.Reservation{
		ID:         "res-id",
		TotalPrice: 300,
		Status:     reservationModel.StatusConfirmed,
	}

	tests := []struct {
		name            string
		setupMock       func()
		wantErr         bool
		wantOutstanding float64
		wantFullyPaid   bool
	}{
		{
			name: "partially paid",
			setupMock: func() {
				m.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				m.reservationRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(reservation, nil)

				m.repo.EXPECT().
					SumForReservation(gomock.Any(), "res-id").
					Return(100.0, nil)
			},
			wantErr:         false,
			wantOutstanding: 200,
			wantFullyPaid:   false,
		},
		{
			name: "fully paid",
			setupMock: func() {
				m.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				m.reservationRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(reservation, nil)

				m.repo.EXPECT().
					SumForReservation(gomock.Any(), "res-id").
					Return(300.0, nil)
			},
			wantErr:         false,
			wantOutstanding: 0,
			wantFullyPaid:   true,
		},
		{
			name: "reservation not found",
			setupMock: func() {
				m.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				m.reservationRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(reservationModel.Reservation{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Summary(context.Background(), "res-id")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantOutstanding, res.Outstanding)
				assert.Equal(t, tt.wantFullyPaid, res.FullyPaid)
			}
		})
	}
}

func TestPaymentService_Get(t *testing.T) {
	svc, m := newPaymentService(t)

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
					Return(model.Payment{ID: "pay-id", ReservationID: "res-id", Amount: 100}, nil)
			},
			wantErr: false,
			wantID:  "pay-id",
		},
		{
			name: "payment not found",
			setupMock: func() {
				m.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Payment{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Get(context.Background(), "pay-id")

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
