package components

import (
	repo_impl "companion-booking/internal/infra/repository"
	"companion-booking/internal/usecase"
	"companion-booking/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewDBTX,
		shared.NewTxRunner,
		fx.Annotate(
			repo_impl.NewUserRepository,
			fx.As(new(usecase.UserRepository)),
		),
		fx.Annotate(
			repo_impl.NewCredentialRepository,
			fx.As(new(usecase.CredentialRepository)),
		),
		fx.Annotate(
			repo_impl.NewChannelRepository,
			fx.As(new(usecase.ChannelRepository)),
		),
		fx.Annotate(
			repo_impl.NewDedupStore,
			fx.As(new(usecase.DedupStore)),
		),
		fx.Annotate(
			repo_impl.NewWorkingHoursRepository,
			fx.As(new(usecase.WorkingHoursRepository)),
		),
		fx.Annotate(
			repo_impl.NewAppointmentRepository,
			fx.As(new(usecase.AppointmentRepository)),
			fx.As(new(usecase.AppointmentWindowLister)),
		),
		fx.Annotate(
			repo_impl.NewQuotaRepository,
			fx.As(new(usecase.QuotaRepository)),
		),
		fx.Annotate(
			repo_impl.NewCompanionRepository,
			fx.As(new(usecase.CompanionRepository)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) repo_impl.DBTX {
	return pool
}
