package employee_test

import (
	"context"
	"errors"
	"testing"

	"go-hris-leave/internal/employee"
	employeeerrors "go-hris-leave/internal/employee/errors"
	employeeMock "go-hris-leave/internal/employee/mock"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

func TestDirectory_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := employeeMock.NewMockRepository(ctrl)
		dir := employee.NewDirectory(repo)

		id := uuid.New()
		companyID := uuid.New()
		managerID := uuid.New()
		repo.EXPECT().FindByID(ctx, id.String()).Return(&employee.Employee{
			ID:        id,
			CompanyID: companyID,
			ManagerID: &managerID,
			FullName:  "Rina Kusuma",
		}, nil)

		got, err := dir.Resolve(ctx, id.String())

		assert.NoError(t, err)
		assert.Equal(t, companyID, got.CompanyID)
		assert.Equal(t, managerID, *got.ManagerID)
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := employeeMock.NewMockRepository(ctrl)
		dir := employee.NewDirectory(repo)

		repo.EXPECT().FindByID(ctx, gomock.Any()).Return(nil, gorm.ErrRecordNotFound)

		_, err := dir.Resolve(ctx, uuid.NewString())

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})

	t.Run("invalid id never reaches repository", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := employeeMock.NewMockRepository(ctrl)
		dir := employee.NewDirectory(repo)

		_, err := dir.Resolve(ctx, "not-a-uuid")

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidEmployeeID)
	})

	t.Run("repository failure is passed through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := employeeMock.NewMockRepository(ctrl)
		dir := employee.NewDirectory(repo)
		dbErr := errors.New("connection reset")

		repo.EXPECT().FindByID(ctx, gomock.Any()).Return(nil, dbErr)

		_, err := dir.Resolve(ctx, uuid.NewString())

		assert.ErrorIs(t, err, dbErr)
	})
}
