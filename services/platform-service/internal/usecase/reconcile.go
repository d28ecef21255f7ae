package usecase

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/apperror"
	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/repository"
	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/tenancy"
)

const reconcileBatchSize = 100

// ReconcileUsecase completes provisionings that were interrupted after the
// admin user was written.
type ReconcileUsecase interface {
	Reconcile(ctx context.Context) (*ReconcileReport, error)
}

// ReconcileReport summarises a reconciliation run. Failed lists the ids of
// users that could not be repaired.
type ReconcileReport struct {
	Users               int
	InstancesCreated    int
	TenantCopiesCreated int
	Failed              []string
}

type reconcileUsecase struct {
	provisioner
	users repository.UserRepository
}

func NewReconcileUsecase(
	databases tenancy.DatabaseProvider,
	users repository.UserRepository,
	instances repository.InstanceRepository,
	tenants repository.TenantStore,
	dbPrefix string,
	logger *zerolog.Logger,
) ReconcileUsecase {
	return &reconcileUsecase{
		provisioner: provisioner{
			databases: databases,
			instances: instances,
			tenants:   tenants,
			dbPrefix:  dbPrefix,
			logger:    logger,
		},
		users: users,
	}
}

// Reconcile walks every admin user, creating the registry entry when it is
// missing and the tenant copy of the user when it is missing. A failure on
// one user is recorded and the walk continues.
func (u *reconcileUsecase) Reconcile(ctx context.Context) (*ReconcileReport, error) {
	report := &ReconcileReport{}
	sortBy := "_id"

	for offset := uint64(0); ; offset += reconcileBatchSize {
		users, err := u.users.ListUsers(ctx, repository.FilterUsersParams{
			Limit:  reconcileBatchSize,
			Offset: offset,
			SortBy: &sortBy,
		})
		if err != nil {
			return report, apperror.Persistence("list admin users", err)
		}

		for _, user := range users {
			if err := ctx.Err(); err != nil {
				return report, err
			}

			report.Users++
			userID := user.ID.Hex()

			instance, err := u.instances.GetInstanceByUserID(ctx, userID)
			if errors.Is(err, mongo.ErrNoDocuments) {
				instance, err = u.createInstance(ctx, userID)
				if err == nil {
					report.InstancesCreated++
				}
			}
			if err != nil {
				u.fail(report, userID, err, "failed to ensure tenant instance")
				continue
			}

			created, err := u.provisionTenant(ctx, user, instance.DBName)
			if err != nil {
				u.fail(report, userID, err, "failed to ensure tenant user copy")
				continue
			}
			if created {
				report.TenantCopiesCreated++
				u.logger.Info().
					Str("user_id", userID).
					Str("db_name", instance.DBName).
					Msg("restored tenant user copy")
			}
		}

		if len(users) < reconcileBatchSize {
			return report, nil
		}
	}
}

func (u *reconcileUsecase) fail(report *ReconcileReport, userID string, err error, msg string) {
	report.Failed = append(report.Failed, userID)
	u.logger.Error().Err(err).Str("user_id", userID).Msg(msg)
}
