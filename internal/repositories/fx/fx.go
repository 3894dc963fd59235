package fx

import (
	"github.com/socialspark/socialspark-bot/internal/repositories/brand"
	"github.com/socialspark/socialspark-bot/internal/repositories/library"
	"github.com/socialspark/socialspark-bot/internal/repositories/slot"
	"go.uber.org/fx"
)

var Module = fx.Options(
	brand.Module,
	slot.Module,
	library.Module,
)
