package app

import (
	"time"

	"go.uber.org/fx"

	"github.com/homedeco/marketplace/internal/app/api/server"
	"github.com/homedeco/marketplace/internal/app/service/account"
	"github.com/homedeco/marketplace/internal/app/service/booking"
	"github.com/homedeco/marketplace/internal/app/service/catalog"
	"github.com/homedeco/marketplace/internal/app/service/decorator"
	"github.com/homedeco/marketplace/internal/app/service/payment"
	"github.com/homedeco/marketplace/internal/platform/db"
	"github.com/homedeco/marketplace/internal/platform/identity"
	"github.com/homedeco/marketplace/internal/platform/stripegw"
	"github.com/homedeco/marketplace/pkg/config"
	"github.com/homedeco/marketplace/pkg/logger"
)

const (
	DefaultStartTimeout = 15 * time.Second
	DefaultStopTimeout  = 10 * time.Second
)

var Module = fx.Options(
	logger.Module,
	config.Module,
	db.Module,
	identity.Module,
	stripegw.Module,
	server.Module,
	account.Module,
	catalog.Module,
	decorator.Module,
	booking.Module,
	payment.Module,
)
