package main

import (
	"context"
	"fmt"
	"time"

	"go-foodorder/config"
	"go-foodorder/controllers"
	"go-foodorder/repository"
	"go-foodorder/repository/memory"
	"go-foodorder/routes"
	"go-foodorder/services"
	"go-foodorder/utils"

	"go.mongodb.org/mongo-driver/mongo"
)

// stores is the persistence chosen by STORAGE_DRIVER
type stores struct {
	users    repository.UserRepository
	menu     repository.MenuRepository
	carts    repository.CartRepository
	orders   repository.OrderRepository
	payments repository.PaymentRepository
	tx       repository.Transactor
	pinger   controllers.Pinger
	close    func(ctx context.Context) error
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	if cfg.StorageDriver == "memory" {
		utils.L.Warn("using in-memory storage; data is lost on exit")
		m := memory.NewStore()
		return &stores{
			users: m.Users, menu: m.Menu, carts: m.Carts, orders: m.Orders, payments: m.Payments,
			tx: m, pinger: m,
			close: func(context.Context) error { return nil },
		}, nil
	}

	// Connect to MongoDB
	client, err := utils.ConnectDB(ctx, cfg.MongoURI)
	if err != nil {
		return nil, err
	}
	store := repository.NewMongoStore(client, cfg.MongoDatabase, cfg.MongoTransactions)
	if err := store.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return &stores{
		users: store.Users, menu: store.Menu, carts: store.Carts, orders: store.Orders, payments: store.Payments,
		tx: store, pinger: store,
		close: func(ctx context.Context) error { return disconnect(ctx, client) },
	}, nil
}

// closeStores releases the storage within a bounded time, logging any error
func closeStores(st *stores) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := st.close(ctx); err != nil {
		utils.L.Error("close storage", "error", err)
	}
}

func disconnect(ctx context.Context, client *mongo.Client) error {
	if err := client.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnect mongodb: %w", err)
	}
	return nil
}

// application is the wired service graph
type application struct {
	accounts *services.AccountService
	guard    *services.IdentityGuard
	routes   routes.Controllers
}

func newApplication(cfg *config.Config, st *stores) (*application, error) {
	// Initialize EmailService
	mailer, err := utils.NewEmailService(cfg.MailDriver, cfg.EmailSender, cfg.PostmarkAPIToken, cfg.SendGridAPIKey)
	if err != nil {
		return nil, err
	}
	tokens := utils.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)

	accounts := services.NewAccountService(st.users, tokens)
	catalog := services.NewCatalogService(st.menu)
	carts := services.NewCartService(st.carts, st.menu)
	orders := services.NewOrderService(services.OrderDeps{
		Tx:       st.tx,
		Orders:   st.orders,
		Carts:    st.carts,
		Menu:     st.menu,
		Payments: st.payments,
		Users:    st.users,
		Mailer:   mailer,
	})
	payments := services.NewPaymentService(st.payments, st.carts, st.menu, services.ApproveGateway{})

	// Initialize controllers
	return &application{
		accounts: accounts,
		guard:    services.NewIdentityGuard(tokens, st.users),
		routes: routes.Controllers{
			Users:    controllers.NewUserController(accounts),
			Menu:     controllers.NewMenuController(catalog),
			Cart:     controllers.NewCartController(carts),
			Orders:   controllers.NewOrderController(orders),
			Admin:    controllers.NewAdminController(orders),
			Payments: controllers.NewPaymentController(payments),
			Health:   controllers.NewHealthController(st.pinger),
		},
	}, nil
}
