package slot

import (
	"go.uber.org/fx"
)

var Module = fx.Module("slot_repository",
	fx.Provide(
		NewPgx,
		fx.Annotate(
			func(repo *Pgx) Repository {
				return repo
			},
			fx.As(new(Repository)),
		),
	),
)
