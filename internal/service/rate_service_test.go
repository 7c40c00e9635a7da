package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/banbasresort/backoffice-api/internal/authz"
	"github.com/banbasresort/backoffice-api/internal/dto"
	"github.com/banbasresort/backoffice-api/internal/models"
	"github.com/banbasresort/backoffice-api/internal/repository"
)

func setupRateService(t *testing.T) RateService {
	t.Helper()

	dsn := fmt.Sprintf("file:rates_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.ExchangeRate{}, &models.ExchangeRateUpdate{}))

	svc := NewRateService(repository.NewRateRepository(db), validator.New(validator.WithRequiredStructEnabled()), testLogger())
	require.NoError(t, svc.Seed(context.Background()))
	return svc
}

func TestRateSeedInstallsDefaults(t *testing.T) {
	svc := setupRateService(t)

	rates, err := svc.List(context.Background(), viewerActor)
	require.NoError(t, err)
	require.Len(t, rates, 4)

	table, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	require.Equal(t, "1", table["NRS"].String())
	require.Equal(t, "0.0075", table["USD"].String())
}

func TestRateSeedIsIdempotent(t *testing.T) {
	svc := setupRateService(t)
	require.NoError(t, svc.Seed(context.Background()))

	rates, err := svc.List(context.Background(), viewerActor)
	require.NoError(t, err)
	require.Len(t, rates, 4)
}

func TestRateUpdateAppendsHistory(t *testing.T) {
	svc := setupRateService(t)

	result, err := svc.Update(context.Background(), adminActor, "usd", dto.RateUpdateRequest{Rate: "0.0080", Note: "quarterly review"})
	require.NoError(t, err)
	require.Equal(t, "USD", result.Code)
	require.Equal(t, "0.0075", result.OldRate)
	require.Equal(t, "0.008", result.NewRate)
	require.Equal(t, "Alice Admin", result.UpdatedBy)

	history, err := svc.History(context.Background(), viewerActor, "USD", 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, "quarterly review", history[0].Note)

	table, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	require.Equal(t, "0.008", table["USD"].String())
}

func TestRateUpdateAuthorization(t *testing.T) {
	svc := setupRateService(t)

	_, err := svc.Update(context.Background(), agentActor, "USD", dto.RateUpdateRequest{Rate: "0.0080"})
	require.ErrorIs(t, err, authz.ErrInsufficientRole)

	_, err = svc.Update(context.Background(), authz.Actor{}, "USD", dto.RateUpdateRequest{Rate: "0.0080"})
	require.ErrorIs(t, err, authz.ErrUnauthenticated)
}

func TestRateUpdateRejectsBaseAndBadInput(t *testing.T) {
	svc := setupRateService(t)

	_, err := svc.Update(context.Background(), adminActor, "NRS", dto.RateUpdateRequest{Rate: "2"})
	require.ErrorIs(t, err, ErrBaseImmutable)

	_, err = svc.Update(context.Background(), adminActor, "USD", dto.RateUpdateRequest{Rate: "0"})
	require.ErrorIs(t, err, ErrInvalidRate)

	_, err = svc.Update(context.Background(), adminActor, "USD", dto.RateUpdateRequest{Rate: "abc"})
	require.ErrorIs(t, err, ErrInvalidRate)

	_, err = svc.Update(context.Background(), adminActor, "GBP", dto.RateUpdateRequest{Rate: "0.006"})
	require.ErrorIs(t, err, ErrRateNotFound)
}
