package identity

import (
	"go.uber.org/fx"

	mw "github.com/homedeco/marketplace/internal/app/api/middleware"
)

// Module binds the JWT verifier as the gate's identity check.
var Module = fx.Options(
	fx.Provide(NewJWTVerifier),
	fx.Provide(func(v *JWTVerifier) mw.IdentityVerifier { return v }),
)
