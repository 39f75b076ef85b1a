package handlers

import (
	"github.com/jmoiron/sqlx"

	"github.com/Talibusmani77/lohakart-inquiry/internal/config"
	"github.com/Talibusmani77/lohakart-inquiry/internal/repos"
	"github.com/Talibusmani77/lohakart-inquiry/internal/services"
)

type Deps struct {
	ProductHandler *ProductHandler
	CartHandler    *CartHandler
	InquiryHandler *InquiryHandler
	AdminHandler   *AdminHandler
	PriceHandler   *PriceHandler
	Gate           *services.RoleGate
}

func NewDeps(db *sqlx.DB, cfg config.Config, auth *services.AuthService) *Deps {
	prodRepo := repos.NewProductRepo(db)
	cartRepo := repos.NewCartRepo(db)
	inqRepo := repos.NewInquiryRepo(db)
	replyRepo := repos.NewReplyRepo(db)
	userRepo := repos.NewUserRepo(db)
	roleRepo := repos.NewRoleRepo(db)
	priceRepo := repos.NewPriceRepo(db)

	catalogSvc := services.NewCatalogService(prodRepo)
	cartSvc := services.NewCartService(cartRepo, prodRepo)
	inqSvc := services.NewInquiryService(cartRepo, inqRepo, replyRepo, userRepo)
	priceSvc := services.NewPriceService(priceRepo)
	gate := services.NewRoleGate(roleRepo)

	return &Deps{
		ProductHandler: &ProductHandler{Catalog: catalogSvc},
		CartHandler:    &CartHandler{Cart: cartSvc},
		InquiryHandler: &InquiryHandler{Inq: inqSvc, Gate: gate},
		AdminHandler:   &AdminHandler{Inq: inqSvc, Catalog: catalogSvc, Prices: priceSvc, Prods: prodRepo, Inqs: inqRepo},
		PriceHandler:   &PriceHandler{Prices: priceSvc},
		Gate:           gate,
	}
}
