package handlers

import (
	"github.com/jmoiron/sqlx"

	"farmgate/internal/repos"
	"farmgate/internal/services"
)

type Deps struct {
	AuthHandler         *AuthHandler
	CategoryHandler     *CategoryHandler
	ProductHandler      *ProductHandler
	OrderHandler        *OrderHandler
	AdminHandler        *AdminHandler
	EventHandler        *EventHandler
	SubscriptionHandler *SubscriptionHandler
}

func NewDeps(db *sqlx.DB, auth *services.AuthService) *Deps {
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	eventRepo := repos.NewEventRepo(db)
	subRepo := repos.NewSubscriptionRepo(db)

	catalogSvc := services.NewCatalogService(catRepo, prodRepo)
	orderSvc := services.NewOrderService(orderRepo, prodRepo)
	eventSvc := services.NewEventService(eventRepo)
	subSvc := services.NewSubscriptionService(subRepo)

	return &Deps{
		AuthHandler:         &AuthHandler{Auth: auth},
		CategoryHandler:     &CategoryHandler{Catalog: catalogSvc},
		ProductHandler:      &ProductHandler{Catalog: catalogSvc},
		OrderHandler:        &OrderHandler{Orders: orderSvc},
		AdminHandler:        &AdminHandler{DB: db, Orders: orderSvc, Subs: subSvc},
		EventHandler:        &EventHandler{Events: eventSvc},
		SubscriptionHandler: &SubscriptionHandler{Subs: subSvc},
	}
}
