package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"lodge/infras/otel"
	"lodge/infras/postgres"
	"lodge/internal/domains/reservation/model"
	"lodge/shared"
	"lodge/shared/constant"
	"lodge/shared/daterange"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"
	"lodge/shared/logger"
	gRepo "lodge/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Reservation interface {
	Insert(ctx context.Context, model model.Reservation) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Reservation, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Reservation, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error

	InsertExclusive(ctx context.Context, res model.Reservation) error
	UpdateStayExclusive(ctx context.Context, id, roomID string, stay daterange.Range, fields map[string]any) error
	HasOverlap(ctx context.Context, roomID string, stay daterange.Range, excludeID string) (bool, error)
	GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, id string) (model.Reservation, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Reservation]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Reservation {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Reservation](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// overlapFilter matches active reservations of the room whose half-open stay
// interval intersects the requested one. A checkout date equal to the
// requested check-in is not a conflict (same-day turnover).
func overlapFilter(roomID string, stay daterange.Range, excludeID string) gDto.FilterGroup {
	filters := []any{
		gDto.Filter{
			Field:    model.FieldRoomID,
			Value:    roomID,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		},
		gDto.Filter{
			Field:    model.FieldStatus,
			Value:    model.ActiveStatuses(),
			Operator: gDto.FilterOperatorIn,
			Table:    model.TableName,
		},
		gDto.Filter{
			ArgName:  "overlap_end",
			Field:    model.FieldCheckInDate,
			Value:    stay.CheckOut,
			Operator: gDto.FilterOperatorLess,
			Table:    model.TableName,
		},
		gDto.Filter{
			ArgName:  "overlap_start",
			Field:    model.FieldCheckOutDate,
			Value:    stay.CheckIn,
			Operator: gDto.FilterOperatorGreater,
			Table:    model.TableName,
		},
	}

	if excludeID != "" {
		filters = append(filters, gDto.Filter{
			ArgName:  "exclude_id",
			Field:    model.FieldID,
			Value:    excludeID,
			Operator: gDto.FilterOperatorNotEq,
			Table:    model.TableName,
		})
	}

	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  filters,
	}
}

func (repo *repositoryImpl) HasOverlap(ctx context.Context, roomID string, stay daterange.Range, excludeID string) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.HasOverlap")
	defer scope.End()

	return repo.Exist(ctx, overlapFilter(roomID, stay, excludeID)) //nolint:wrapcheck
}

// lockOverlappingTx locks every active reservation of the room that overlaps
// the requested stay and returns the first conflicting id, or "" when the
// room is free. Must run inside a serializable transaction so that two
// concurrent bookings cannot both see an empty result.
func (repo *repositoryImpl) lockOverlappingTx(ctx context.Context, sqltx *sqlx.Tx, roomID string, stay daterange.Range, excludeID string) (string, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.lockOverlappingTx")
	defer scope.End()

	filter := overlapFilter(roomID, stay, excludeID)
	where, args := repo.BuildWhereClause(ctx, filter)

	query := fmt.Sprintf("SELECT %s.%s FROM %s %s FOR UPDATE", model.TableName, model.FieldID, model.TableName, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	prepare, err := sqltx.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return "", fmt.Errorf("failed to prepare overlap lock statement: %w", err)
	}
	defer prepare.Close()

	var ids []string

	if err = prepare.SelectContext(ctx, &ids, args); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return "", fmt.Errorf("failed to lock overlapping reservations: %w", err)
	}

	if len(ids) == 0 {
		return "", nil
	}

	return ids[0], nil
}

// InsertExclusive creates a reservation only when no active reservation of
// the room overlaps its stay, holding the conflict check and the insert in
// one serializable transaction.
func (repo *repositoryImpl) InsertExclusive(ctx context.Context, res model.Reservation) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.InsertExclusive")
	defer scope.End()

	return repo.db.WithTx(ctx, func(sqltx *sqlx.Tx) error { //nolint:wrapcheck
		conflictID, err := repo.lockOverlappingTx(ctx, sqltx, res.RoomID, res.StayRange(), "")
		if err != nil {
			return err
		}

		if conflictID != "" {
			return failure.Conflict(fmt.Sprintf("room is not available for the requested dates, conflicts with reservation %s", conflictID)) //nolint:wrapcheck
		}

		return repo.InsertTx(ctx, sqltx, res)
	})
}

// UpdateStayExclusive applies fields to a reservation after re-checking that
// its (possibly new) room and dates are free, excluding the reservation
// itself from the conflict scan.
func (repo *repositoryImpl) UpdateStayExclusive(ctx context.Context, id, roomID string, stay daterange.Range, fields map[string]any) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.UpdateStayExclusive")
	defer scope.End()

	return repo.db.WithTx(ctx, func(sqltx *sqlx.Tx) error { //nolint:wrapcheck
		conflictID, err := repo.lockOverlappingTx(ctx, sqltx, roomID, stay, id)
		if err != nil {
			return err
		}

		if conflictID != "" {
			return failure.Conflict(fmt.Sprintf("room is not available for the requested dates, conflicts with reservation %s", conflictID)) //nolint:wrapcheck
		}

		return repo.UpdateTx(ctx, sqltx, fields, shared.FilterByID(id, model.FieldID, model.TableName))
	})
}

// GetForUpdateTx reads a reservation row with a row lock, returning the zero
// value when it does not exist.
func (repo *repositoryImpl) GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, id string) (model.Reservation, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.GetForUpdateTx")
	defer scope.End()

	var res model.Reservation

	query := fmt.Sprintf("SELECT * FROM %s WHERE %s = :id FOR UPDATE", model.TableName, model.FieldID)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	prepare, err := sqltx.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return res, fmt.Errorf("failed to prepare reservation lock statement: %w", err)
	}
	defer prepare.Close()

	err = prepare.GetContext(ctx, &res, map[string]any{"id": id})
	if errors.Is(err, sql.ErrNoRows) {
		return model.Reservation{}, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return res, fmt.Errorf("failed to lock reservation: %w", err)
	}

	return res, nil
}
