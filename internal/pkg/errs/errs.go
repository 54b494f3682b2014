package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the generic error types. Use errors.Is against these
// to classify an error without depending on the concrete struct type.
var (
	ErrObjectNotFound  = errors.New("object not found")
	ErrValueIsInvalid  = errors.New("value is invalid")
	ErrValueIsRequired = errors.New("value is required")
)

// Sentinel errors for the coordination core's failure taxonomy.
var (
	ErrScopeViolation     = errors.New("scope violation")
	ErrItemUnavailable    = errors.New("item unavailable")
	ErrIllegalTransition  = errors.New("illegal transition")
	ErrTableOccupied      = errors.New("table occupied")
	ErrOrderLocked        = errors.New("order locked")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// sanitize collapses newlines so multi-line input cannot forge log records.
func sanitize(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "\r", " ")
}

// ObjectNotFoundError indicates that an entity could not be located by its
// identifier. Repositories return it instead of leaking driver-level
// not-found errors to the application layer.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

// NewObjectNotFoundError creates an ObjectNotFoundError without an underlying cause.
func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

// NewObjectNotFoundErrorWithCause creates an ObjectNotFoundError wrapping an
// underlying cause, typically a storage driver error.
func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: param is: %s, ID is: %v (cause: %s)",
			ErrObjectNotFound, e.ParamName, e.ID, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %v", ErrObjectNotFound, e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError indicates that a provided value failed validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewValueIsInvalidError creates a ValueIsInvalidError without an underlying cause.
func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

// NewValueIsInvalidErrorWithCause creates a ValueIsInvalidError wrapping the
// validation failure that caused it.
func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName))
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsRequiredError indicates that a required value was not provided.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

// NewValueIsRequiredError creates a ValueIsRequiredError without an underlying cause.
func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

// NewValueIsRequiredErrorWithCause creates a ValueIsRequiredError wrapping an
// underlying cause.
func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName))
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// ScopeViolationError indicates a caller attempted to touch an entity owned by
// a different tenant. It is always fatal to the request and never retried.
type ScopeViolationError struct {
	CallerTenant string
	OwnerTenant  string
}

// NewScopeViolationError creates a ScopeViolationError recording both tenant
// identities for audit logging.
func NewScopeViolationError(callerTenant, ownerTenant string) *ScopeViolationError {
	return &ScopeViolationError{CallerTenant: callerTenant, OwnerTenant: ownerTenant}
}

func (e *ScopeViolationError) Error() string {
	return sanitize(fmt.Sprintf("%s: caller tenant is: %s, owner tenant is: %s",
		ErrScopeViolation, e.CallerTenant, e.OwnerTenant))
}

func (e *ScopeViolationError) Unwrap() error {
	return ErrScopeViolation
}

// ItemUnavailableError indicates that a referenced menu item does not exist,
// belongs to another tenant, or is currently disabled. Surfaced to the customer
// client to prompt re-selection.
type ItemUnavailableError struct {
	MenuItemID string
	Cause      error
}

// NewItemUnavailableError creates an ItemUnavailableError for the given menu item.
func NewItemUnavailableError(menuItemID string) *ItemUnavailableError {
	return &ItemUnavailableError{MenuItemID: menuItemID}
}

// NewItemUnavailableErrorWithCause creates an ItemUnavailableError wrapping the
// lookup failure that caused it.
func NewItemUnavailableErrorWithCause(menuItemID string, cause error) *ItemUnavailableError {
	return &ItemUnavailableError{MenuItemID: menuItemID, Cause: cause}
}

func (e *ItemUnavailableError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrItemUnavailable, e.MenuItemID, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrItemUnavailable, e.MenuItemID))
}

func (e *ItemUnavailableError) Unwrap() error {
	return ErrItemUnavailable
}

// IllegalTransitionError indicates an attempted status change that is either
// not the immediate successor of the current status or not permitted for the
// acting role. The order is left untouched.
type IllegalTransitionError struct {
	From string
	To   string
	Role string
}

// NewIllegalTransitionError creates an IllegalTransitionError recording the
// attempted edge and the role that requested it.
func NewIllegalTransitionError(from, to, role string) *IllegalTransitionError {
	return &IllegalTransitionError{From: from, To: to, Role: role}
}

func (e *IllegalTransitionError) Error() string {
	return sanitize(fmt.Sprintf("%s: %s -> %s requested by %s", ErrIllegalTransition, e.From, e.To, e.Role))
}

func (e *IllegalTransitionError) Unwrap() error {
	return ErrIllegalTransition
}

// TableOccupiedError indicates a check-in attempt on a table that is already
// occupied, including the loser of a check-in race.
type TableOccupiedError struct {
	TableID      string
	OccupantName string
}

// NewTableOccupiedError creates a TableOccupiedError recording the current occupant.
func NewTableOccupiedError(tableID, occupantName string) *TableOccupiedError {
	return &TableOccupiedError{TableID: tableID, OccupantName: occupantName}
}

func (e *TableOccupiedError) Error() string {
	return sanitize(fmt.Sprintf("%s: %s", ErrTableOccupied, e.TableID))
}

func (e *TableOccupiedError) Unwrap() error {
	return ErrTableOccupied
}

// OrderLockedError indicates an attempted line-item mutation after the order
// left the "placed" status. This is a client programming error: line items are
// fixed once the kitchen has started.
type OrderLockedError struct {
	OrderID string
	Status  string
}

// NewOrderLockedError creates an OrderLockedError recording the status that
// locked the order.
func NewOrderLockedError(orderID, status string) *OrderLockedError {
	return &OrderLockedError{OrderID: orderID, Status: status}
}

func (e *OrderLockedError) Error() string {
	return sanitize(fmt.Sprintf("%s: %s in status %s", ErrOrderLocked, e.OrderID, e.Status))
}

func (e *OrderLockedError) Unwrap() error {
	return ErrOrderLocked
}

// StorageUnavailableError indicates an underlying persistence failure. Calling
// gateways retry it a bounded number of times with backoff before surfacing a
// transient failure to the client.
type StorageUnavailableError struct {
	Op    string
	Cause error
}

// NewStorageUnavailableError creates a StorageUnavailableError for the failed
// storage operation.
func NewStorageUnavailableError(op string, cause error) *StorageUnavailableError {
	return &StorageUnavailableError{Op: op, Cause: cause}
}

func (e *StorageUnavailableError) Error() string {
	if e.Cause != nil {
		return sanitize(fmt.Sprintf("%s: %s (cause: %s)", ErrStorageUnavailable, e.Op, e.Cause))
	}
	return sanitize(fmt.Sprintf("%s: %s", ErrStorageUnavailable, e.Op))
}

func (e *StorageUnavailableError) Unwrap() error {
	return ErrStorageUnavailable
}
