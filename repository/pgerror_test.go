package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"cashlytic-pos/apperror"
)

func TestClassifyErrorByCode(t *testing.T) {
	fk := &pgconn.PgError{Code: "23503", Message: "insert or update on table \"sales_master\" violates foreign key constraint"}
	missing := &pgconn.PgError{Code: "P0002", Message: "Sale with ID 9 does not exist"}
	dup := &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint \"products_code_key\""}

	assert.True(t, apperror.IsReference(classifyError("AddCompleteBill", 0, fk, onWrite)))
	assert.True(t, apperror.IsConstraint(classifyError("DeleteProduct", 3, fk, onDelete)))
	assert.True(t, apperror.IsNotFound(classifyError("DeleteSale", 9, missing, onDelete)))
	assert.True(t, apperror.IsConstraint(classifyError("AddProduct", 0, dup, onWrite)))
}

func TestClassifyErrorByMarker(t *testing.T) {
	assert.True(t, apperror.IsNotFound(classifyError("DeleteSale", 1, errors.New("Sale with ID 1 does not exist"), onDelete)))
	assert.True(t, apperror.IsConstraint(classifyError("DeleteProduct", 2, errors.New("Product with ID 2 has been sold and cannot be deleted."), onDelete)))
	assert.True(t, apperror.IsConstraint(classifyError("DeleteSalesperson", 3, errors.New("Salesperson with ID 3 has made sales and cannot be deleted."), onDelete)))
}

func TestClassifyErrorFallsBackToBoundary(t *testing.T) {
	cause := errors.New("connection refused")
	err := classifyError("GetSale", 5, fmt.Errorf("query failed: %w", cause), onWrite)

	assert.True(t, apperror.IsBoundary(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "GetSale(5)")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestClassifyErrorNil(t *testing.T) {
	assert.NoError(t, classifyError("Noop", 0, nil, onWrite))
}
