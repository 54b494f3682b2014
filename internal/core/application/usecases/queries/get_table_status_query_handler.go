package queries

import (
	"context"
	"database/sql"
	"errors"

	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetTableStatusQueryHandler reads one table's occupancy from the database.
// Answers only within the caller's tenant unless the caller is an operator.
type GetTableStatusQueryHandler struct {
	db *gorm.DB
}

// NewGetTableStatusQueryHandler creates a handler for table status queries.
func NewGetTableStatusQueryHandler(db *gorm.DB) GetTableStatusQueryHandler {
	return GetTableStatusQueryHandler{db: db}
}

// Handle executes the query. Returns ObjectNotFoundError for an unknown table
// and ScopeViolationError when the table belongs to another tenant.
func (h GetTableStatusQueryHandler) Handle(
	ctx context.Context,
	query GetTableStatusQuery,
) (GetTableStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetTableStatusQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			tenant_id,
			number,
			capacity,
			occupancy,
			occupant_name
		FROM tables
		WHERE id = ?
	`, query.TableID().String()).Row()

	var resp GetTableStatusQueryResponse
	var id, tenantID uuid.UUID

	err := row.Scan(
		&id,
		&tenantID,
		&resp.Number,
		&resp.Capacity,
		&resp.Occupancy,
		&resp.OccupantName,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetTableStatusQueryResponse{}, errs.NewObjectNotFoundError("table", query.TableID().String())
	}
	if err != nil {
		return GetTableStatusQueryResponse{}, errs.NewStorageUnavailableError("query table status", err)
	}

	ownerTenant, err := kernel.UUIDFromBytes(tenantID[:])
	if err != nil {
		return GetTableStatusQueryResponse{}, err
	}
	caller := query.Caller()
	if !caller.IsOperator() && !caller.TenantID().IsEqual(ownerTenant) {
		return GetTableStatusQueryResponse{}, errs.NewScopeViolationError(
			caller.TenantID().String(), ownerTenant.String())
	}

	tableID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetTableStatusQueryResponse{}, err
	}
	resp.ID = tableID

	return resp, nil
}
