package migration

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	agedomain "github.com/smallbiznis/tripquote/internal/agecoefficient/domain"
	bundledomain "github.com/smallbiznis/tripquote/internal/bundle/domain"
	"github.com/smallbiznis/tripquote/internal/config"
	countrydomain "github.com/smallbiznis/tripquote/internal/country/domain"
	coveragedomain "github.com/smallbiznis/tripquote/internal/coveragelevel/domain"
	discountdomain "github.com/smallbiznis/tripquote/internal/discount/domain"
	durationdomain "github.com/smallbiznis/tripquote/internal/durationcoefficient/domain"
	promodomain "github.com/smallbiznis/tripquote/internal/promo/domain"
	riskdomain "github.com/smallbiznis/tripquote/internal/risktype/domain"
	"github.com/smallbiznis/tripquote/internal/seed"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// sqlite and mysql are dev conveniences; gorm derives the same
			// schema from the models.
			if err := conn.AutoMigrate(
				&countrydomain.Country{},
				&countrydomain.DefaultRate{},
				&coveragedomain.CoverageLevel{},
				&riskdomain.RiskType{},
				&riskdomain.AgeRiskModifier{},
				&agedomain.AgeCoefficient{},
				&durationdomain.DurationCoefficient{},
				&bundledomain.RiskBundle{},
				&promodomain.PromoCode{},
				&discountdomain.DiscountRule{},
			); err != nil {
				return err
			}
		}

		if cfg.SeedReferenceData {
			return seed.EnsureReferenceData(conn)
		}
		return nil
	}),
)
