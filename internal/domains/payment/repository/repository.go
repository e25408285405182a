package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"lodge/infras/otel"
	"lodge/infras/postgres"
	"lodge/internal/domains/payment/model"
	reservationModel "lodge/internal/domains/reservation/model"
	reservationRepo "lodge/internal/domains/reservation/repository"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"
	"lodge/shared/logger"
	gRepo "lodge/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Payment interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Payment, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Payment, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)

	Record(ctx context.Context, pay model.Payment) (model.Payment, error)
	SumForReservation(ctx context.Context, reservationID string) (float64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Payment]
	db              *postgres.Connection
	reservationRepo reservationRepo.Reservation
	otel            otel.Otel
}

func New(db *postgres.Connection, reservationRepo reservationRepo.Reservation, otel otel.Otel) Payment {
	return &repositoryImpl{
		Repository:      gRepo.NewRepository[model.Payment](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:              db,
		reservationRepo: reservationRepo,
		otel:            otel,
	}
}

const sumQuery = "SELECT COALESCE(SUM(amount), 0) FROM payments WHERE reservation_id = :reservation_id"

func (repo *repositoryImpl) SumForReservation(ctx context.Context, reservationID string) (float64, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".payment.SumForReservation")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, sumQuery)

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, sumQuery)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to prepare payment sum statement: %w", err)
	}
	defer prepare.Close()

	var sum float64

	if err = prepare.GetContext(ctx, &sum, map[string]any{"reservation_id": reservationID}); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to sum payments: %w", err)
	}

	return sum, nil
}

func (repo *repositoryImpl) sumForReservationTx(ctx context.Context, sqltx *sqlx.Tx, reservationID string) (float64, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".payment.sumForReservationTx")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, sumQuery)

	prepare, err := sqltx.PrepareNamedContext(ctx, sumQuery)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to prepare payment sum statement: %w", err)
	}
	defer prepare.Close()

	var sum float64

	if err = prepare.GetContext(ctx, &sum, map[string]any{"reservation_id": reservationID}); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to sum payments: %w", err)
	}

	return sum, nil
}

// Record appends a payment to the ledger. The reservation row is locked for
// the whole sum-validate-insert sequence so two concurrent payments cannot
// both fit into the same remaining balance. The returned payment carries the
// computed balance and fully-paid flag.
func (repo *repositoryImpl) Record(ctx context.Context, pay model.Payment) (model.Payment, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".payment.Record")
	defer scope.End()

	err := repo.db.WithTx(ctx, func(sqltx *sqlx.Tx) error {
		reservation, err := repo.reservationRepo.GetForUpdateTx(ctx, sqltx, pay.ReservationID)
		if err != nil {
			return err
		}

		if reservation.ID == constant.Empty {
			return failure.NotFound("reservation not found") //nolint:wrapcheck
		}

		if reservation.Status == reservationModel.StatusCancelled {
			return failure.Conflict("cannot record a payment on a cancelled reservation") //nolint:wrapcheck
		}

		prior, err := repo.sumForReservationTx(ctx, sqltx, pay.ReservationID)
		if err != nil {
			return err
		}

		balance, fullyPaid, err := model.Settle(reservation.TotalPrice, prior, pay.Amount)
		if err != nil {
			return err
		}

		pay.Balance = balance
		pay.FullyPaid = fullyPaid

		return repo.InsertTx(ctx, sqltx, pay)
	})
	if err != nil {
		scope.TraceError(err)

		return model.Payment{}, err //nolint:wrapcheck
	}

	return pay, nil
}
