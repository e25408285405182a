package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"lodge/infras/otel"
	"lodge/infras/postgres"
	"lodge/internal/domains/cancellation/model"
	reservationModel "lodge/internal/domains/reservation/model"
	reservationRepo "lodge/internal/domains/reservation/repository"
	"lodge/shared"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"
	gRepo "lodge/shared/repository"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type Cancellation interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Cancellation, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Cancellation, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)

	CancelReservation(ctx context.Context, cxl model.Cancellation) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Cancellation]
	db              *postgres.Connection
	reservationRepo reservationRepo.Reservation
	otel            otel.Otel
}

func New(db *postgres.Connection, reservationRepo reservationRepo.Reservation, otel otel.Otel) Cancellation {
	return &repositoryImpl{
		Repository:      gRepo.NewRepository[model.Cancellation](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:              db,
		reservationRepo: reservationRepo,
		otel:            otel,
	}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == constant.PqErrorCodeUniqueViolation
	}

	return false
}

// CancelReservation closes the reservation and writes the cancellation record
// in one serializable transaction. The reservation row is locked first so the
// status check cannot race with a concurrent payment or second cancellation;
// the unique index on reservation_id backstops duplicates that slip past the
// status check.
func (repo *repositoryImpl) CancelReservation(ctx context.Context, cxl model.Cancellation) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".cancellation.CancelReservation")
	defer scope.End()

	return repo.db.WithTx(ctx, func(sqltx *sqlx.Tx) error { //nolint:wrapcheck
		reservation, err := repo.reservationRepo.GetForUpdateTx(ctx, sqltx, cxl.ReservationID)
		if err != nil {
			return err
		}

		if reservation.ID == constant.Empty {
			return failure.NotFound("reservation not found") //nolint:wrapcheck
		}

		if reservation.Status == reservationModel.StatusCancelled {
			return failure.Conflict("reservation is already cancelled") //nolint:wrapcheck
		}

		if !reservationModel.CanTransition(reservation.Status, reservationModel.StatusCancelled) {
			return failure.Conflict(fmt.Sprintf("reservation is %s and can no longer be cancelled", reservation.Status)) //nolint:wrapcheck
		}

		if err = repo.InsertTx(ctx, sqltx, cxl); err != nil {
			if isUniqueViolation(err) {
				return failure.Conflict("reservation is already cancelled") //nolint:wrapcheck
			}

			return err
		}

		updatedFields := map[string]any{
			reservationModel.FieldStatus: reservationModel.StatusCancelled,
			constant.FieldModifiedAt:     cxl.ModifiedAt,
			constant.FieldModifiedBy:     cxl.ModifiedBy,
		}

		return repo.reservationRepo.UpdateTx(ctx, sqltx, updatedFields, shared.FilterByID(cxl.ReservationID, reservationModel.FieldID, reservationModel.TableName))
	})
}
