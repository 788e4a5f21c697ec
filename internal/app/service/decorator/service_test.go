package decorator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/homedeco/marketplace/internal/models"
	"github.com/homedeco/marketplace/internal/platform/db/dbtest"
	"github.com/homedeco/marketplace/pkg/tool"
	"github.com/homedeco/marketplace/pkg/types"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db := dbtest.Open(t)
	return NewService(zap.NewNop().Sugar(), db), db
}

func seedAccount(t *testing.T, db *gorm.DB, email string, role types.AccountRole) *models.Account {
	t.Helper()
	acc := &models.Account{ID: tool.GenerateUUIDV7(), Email: email, Role: role}
	require.NoError(t, db.Create(acc).Error)
	return acc
}

func TestApply_FilesPendingApplication(t *testing.T) {
	svc, _ := newTestService(t)

	res, err := svc.Apply(context.Background(), &ApplyRequest{Email: "dana@x.com", ServiceType: "painting"})
	require.NoError(t, err)
	require.False(t, res.AlreadyExists)
	require.Equal(t, types.ApplyStatusPending, res.Application.ApplyStatus)
	require.Empty(t, res.Application.WorkStatus)
}

func TestApply_DuplicateReturnsExisting(t *testing.T) {
	svc, db := newTestService(t)

	first, err := svc.Apply(context.Background(), &ApplyRequest{Email: "dana@x.com", ServiceType: "painting"})
	require.NoError(t, err)
	second, err := svc.Apply(context.Background(), &ApplyRequest{Email: "dana@x.com", ServiceType: "tiling"})
	require.NoError(t, err)
	require.True(t, second.AlreadyExists)
	require.Equal(t, first.Application.ID, second.Application.ID)

	var count int64
	require.NoError(t, db.Model(&models.DecoratorApplication{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestApply_AllowedAgainAfterRejection(t *testing.T) {
	svc, _ := newTestService(t)

	first, err := svc.Apply(context.Background(), &ApplyRequest{Email: "dana@x.com", ServiceType: "painting"})
	require.NoError(t, err)
	_, err = svc.Decide(context.Background(), &DecideRequest{
		ApplicationID: first.Application.ID,
		Email:         "dana@x.com",
		Status:        types.ApplyStatusRejected,
	})
	require.NoError(t, err)

	second, err := svc.Apply(context.Background(), &ApplyRequest{Email: "dana@x.com", ServiceType: "painting"})
	require.NoError(t, err)
	require.False(t, second.AlreadyExists)
	require.NotEqual(t, first.Application.ID, second.Application.ID)
}

func TestDecide_AcceptPromotesAccount(t *testing.T) {
	svc, db := newTestService(t)
	acc := seedAccount(t, db, "dana@x.com", types.AccountRoleUser)

	res, err := svc.Apply(context.Background(), &ApplyRequest{Email: "dana@x.com", ServiceType: "painting"})
	require.NoError(t, err)

	app, err := svc.Decide(context.Background(), &DecideRequest{
		ApplicationID: res.Application.ID,
		Email:         "dana@x.com",
		Status:        types.ApplyStatusAccepted,
	})
	require.NoError(t, err)
	require.Equal(t, types.ApplyStatusAccepted, app.ApplyStatus)
	require.Equal(t, models.WorkStatusAvailable, app.WorkStatus)

	var got models.Account
	require.NoError(t, db.First(&got, "id = ?", acc.ID).Error)
	require.Equal(t, types.AccountRoleDecorator, got.Role)
}

func TestDecide_RejectLeavesRoleUnchanged(t *testing.T) {
	svc, db := newTestService(t)
	acc := seedAccount(t, db, "dana@x.com", types.AccountRoleUser)

	res, err := svc.Apply(context.Background(), &ApplyRequest{Email: "dana@x.com", ServiceType: "painting"})
	require.NoError(t, err)

	app, err := svc.Decide(context.Background(), &DecideRequest{
		ApplicationID: res.Application.ID,
		Email:         "dana@x.com",
		Status:        types.ApplyStatusRejected,
	})
	require.NoError(t, err)
	require.Equal(t, types.ApplyStatusRejected, app.ApplyStatus)
	require.Empty(t, app.WorkStatus)

	var got models.Account
	require.NoError(t, db.First(&got, "id = ?", acc.ID).Error)
	require.Equal(t, types.AccountRoleUser, got.Role)
}

func TestDecide_TerminalStatesAreFinal(t *testing.T) {
	svc, db := newTestService(t)
	seedAccount(t, db, "dana@x.com", types.AccountRoleUser)

	res, err := svc.Apply(context.Background(), &ApplyRequest{Email: "dana@x.com", ServiceType: "painting"})
	require.NoError(t, err)
	_, err = svc.Decide(context.Background(), &DecideRequest{
		ApplicationID: res.Application.ID,
		Email:         "dana@x.com",
		Status:        types.ApplyStatusAccepted,
	})
	require.NoError(t, err)

	_, err = svc.Decide(context.Background(), &DecideRequest{
		ApplicationID: res.Application.ID,
		Email:         "dana@x.com",
		Status:        types.ApplyStatusRejected,
	})
	require.ErrorIs(t, err, ErrApplicationNotFound)
}

func TestDecide_EmailMustMatchApplication(t *testing.T) {
	svc, db := newTestService(t)
	seedAccount(t, db, "dana@x.com", types.AccountRoleUser)

	res, err := svc.Apply(context.Background(), &ApplyRequest{Email: "dana@x.com", ServiceType: "painting"})
	require.NoError(t, err)

	_, err = svc.Decide(context.Background(), &DecideRequest{
		ApplicationID: res.Application.ID,
		Email:         "erin@x.com",
		Status:        types.ApplyStatusAccepted,
	})
	require.ErrorIs(t, err, ErrApplicationNotFound)

	var app models.DecoratorApplication
	require.NoError(t, db.First(&app, "id = ?", res.Application.ID).Error)
	require.Equal(t, types.ApplyStatusPending, app.ApplyStatus)
}

func TestDecide_RejectsNonTerminalStatus(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Decide(context.Background(), &DecideRequest{
		ApplicationID: "app-1",
		Email:         "dana@x.com",
		Status:        types.ApplyStatusPending,
	})
	require.ErrorIs(t, err, ErrInvalidDecision)
}

func TestList_AcceptedOnly(t *testing.T) {
	svc, db := newTestService(t)
	seedAccount(t, db, "dana@x.com", types.AccountRoleUser)

	accepted, err := svc.Apply(context.Background(), &ApplyRequest{Email: "dana@x.com", ServiceType: "painting"})
	require.NoError(t, err)
	_, err = svc.Decide(context.Background(), &DecideRequest{
		ApplicationID: accepted.Application.ID,
		Email:         "dana@x.com",
		Status:        types.ApplyStatusAccepted,
	})
	require.NoError(t, err)
	_, err = svc.Apply(context.Background(), &ApplyRequest{Email: "erin@x.com", ServiceType: "tiling"})
	require.NoError(t, err)

	rows, err := svc.List(context.Background(), &ListRequest{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "dana@x.com", rows[0].Email)

	rows, err = svc.List(context.Background(), &ListRequest{ServiceType: "tiling"})
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestDelete(t *testing.T) {
	svc, _ := newTestService(t)

	res, err := svc.Apply(context.Background(), &ApplyRequest{Email: "dana@x.com", ServiceType: "painting"})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(context.Background(), res.Application.ID))
	require.ErrorIs(t, svc.Delete(context.Background(), res.Application.ID), ErrApplicationNotFound)
}
