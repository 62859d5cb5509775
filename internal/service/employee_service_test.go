package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/taptime-api/internal/dto"
	"github.com/noah-isme/taptime-api/internal/models"
	appErrors "github.com/noah-isme/taptime-api/pkg/errors"
)

func TestEmployeeSearch(t *testing.T) {
	ctx := context.Background()
	sessions := newTestSessions(t)
	svc := NewEmployeeService(sessions, nil, nil)
	id := mountView(t, sessions, models.ViewEmployees)

	view, err := svc.List(ctx, id, dto.EmployeeQuery{Search: "tec001"})
	require.NoError(t, err)
	require.Len(t, view.Employees, 1)
	assert.Equal(t, "Sarah Williams", view.Employees[0].Name)

	view, err = svc.List(ctx, id, dto.EmployeeQuery{Search: "JOHN", Department: "Marketing"})
	require.NoError(t, err)
	require.Len(t, view.Employees, 1)
	assert.Equal(t, "Mike Johnson", view.Employees[0].Name)

	view, err = svc.List(ctx, id, dto.EmployeeQuery{Department: "all"})
	require.NoError(t, err)
	assert.Equal(t, 4, view.Total)
	assert.Len(t, view.Departments, 4)
}

func TestEmployeeAddKeepsDivisionOnlyForHR(t *testing.T) {
	ctx := context.Background()
	sessions := newTestSessions(t)
	svc := NewEmployeeService(sessions, nil, nil)
	id := mountView(t, sessions, models.ViewEmployees)

	hr, err := svc.Add(ctx, id, dto.CreateEmployeeRequest{
		Name: "Emily Davis", Position: "Trainer", Department: "HR", EmployeeCode: "HR002",
		HRDivision: models.DivisionTrainingManagement,
	})
	require.NoError(t, err)
	require.NotNil(t, hr.HRDivision)
	assert.Equal(t, models.DivisionTrainingManagement, *hr.HRDivision)
	assert.Equal(t, models.EmploymentRegular, hr.Status)

	fin, err := svc.Add(ctx, id, dto.CreateEmployeeRequest{
		Name: "Tom Brown", Position: "Analyst", Department: "Finance", EmployeeCode: "FIN002",
		HRDivision: models.DivisionRecords,
	})
	require.NoError(t, err)
	assert.Nil(t, fin.HRDivision)

	_, err = svc.Add(ctx, id, dto.CreateEmployeeRequest{Name: "No Code", Position: "x", Department: "HR"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	require.NoError(t, svc.Remove(ctx, id, fin.ID))
	assert.ErrorIs(t, svc.Remove(ctx, id, fin.ID), appErrors.ErrNotFound)

	view, err := svc.List(ctx, id, dto.EmployeeQuery{})
	require.NoError(t, err)
	assert.Equal(t, 5, view.Total)
}

func TestAddDepartment(t *testing.T) {
	ctx := context.Background()
	sessions := newTestSessions(t)
	svc := NewEmployeeService(sessions, nil, nil)
	id := mountView(t, sessions, models.ViewEmployees)

	dept, err := svc.AddDepartment(ctx, id, dto.CreateDepartmentRequest{Name: "Legal"})
	require.NoError(t, err)
	assert.Equal(t, "blue", dept.Color)
	assert.Zero(t, dept.EmployeeCount)

	_, err = svc.AddDepartment(ctx, id, dto.CreateDepartmentRequest{Name: "legal"})
	assert.ErrorIs(t, err, appErrors.ErrConflict)
	_, err = svc.AddDepartment(ctx, id, dto.CreateDepartmentRequest{Name: "Ops", Color: "pink"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}
