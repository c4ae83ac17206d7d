// Package routes wires the HTTP surface: repositories, services,
// controllers, and the route table.
package routes

import (
	"github.com/drovo/backend/app/controllers"
	"github.com/drovo/backend/app/middlewares"
	"github.com/drovo/backend/app/repositories"
	"github.com/drovo/backend/app/services"
	"github.com/drovo/backend/pkg/gateway"
	"github.com/drovo/backend/pkg/otp"
	"github.com/drovo/backend/pkg/router"
)

// Register mounts every API route on r. codes is the OTP store picked at
// boot (redis when configured, in-memory otherwise).
func Register(r *router.Router, codes otp.Store) {
	users := repositories.NewUserRepository()
	shops := repositories.NewShopRepository()
	foods := repositories.NewFoodRepository()
	orders := repositories.NewOrderRepository()

	authCtl := controllers.NewAuthController(services.NewAuthService(users, shops, codes))
	cartCtl := controllers.NewCartController(services.NewCartService(users))
	foodCtl := controllers.NewFoodController(services.NewCatalogService(foods))
	orderCtl := controllers.NewOrderController(services.NewOrderService(orders, users, shops))
	paymentCtl := controllers.NewPaymentController(services.NewPaymentService(shops, gateway.New()))
	shopCtl := controllers.NewShopController(services.NewShopService(shops, foods))

	gate := middlewares.ShopGate(shops)

	api := r.Group("/api")

	// Accounts
	api.Post("/register", "auth.register", authCtl.Register)
	api.Post("/login", "auth.login", authCtl.Login)
	api.Post("/send-otp", "auth.send-otp", authCtl.SendOTP)
	api.Post("/verify-otp", "auth.verify-otp", authCtl.VerifyOTP)
	api.Get("/profile", "auth.profile", authCtl.Profile, middlewares.Authenticate)

	// Catalog
	food := api.Group("/food")
	food.Post("/add", "food.add", foodCtl.Add, gate)
	food.Post("/edit/{id}", "food.edit", foodCtl.Edit, gate)
	food.Get("/list", "food.list.own", foodCtl.List)
	food.Get("/list/{shopId}", "food.list", foodCtl.List)
	food.Post("/remove", "food.remove", foodCtl.Remove, gate)
	food.Get("/{id}", "food.get", foodCtl.Get, gate)

	// Cart
	cart := api.Group("/cart", middlewares.Authenticate)
	cart.Post("/add", "cart.add", cartCtl.Add)
	cart.Post("/remove", "cart.remove", cartCtl.Remove)
	cart.Post("/get", "cart.get", cartCtl.Get)

	// Orders
	order := api.Group("/order")
	order.Post("/place", "order.place", orderCtl.Place, middlewares.Authenticate)
	order.Post("/userorders", "order.userorders", orderCtl.UserOrders, middlewares.Authenticate)
	order.Get("/list", "order.list", orderCtl.ShopOrders, gate)
	order.Post("/status", "order.status", orderCtl.UpdateStatus)
	order.Post("/feedback", "order.feedback", orderCtl.Feedback)
	order.Get("/{id}", "order.detail", orderCtl.Detail, middlewares.Authenticate)

	// Payments
	payment := api.Group("/payment")
	payment.Post("/create-order", "payment.create-order", paymentCtl.CreateOrder)
	payment.Post("/verify", "payment.verify", paymentCtl.Verify)
	payment.Post("/createRenewalOrder", "payment.create-renewal-order", paymentCtl.CreateRenewalOrder)
	payment.Post("/verifyRenewalPayment", "payment.verify-renewal", paymentCtl.VerifyRenewal, middlewares.Authenticate)

	// Shops
	shopGroup := api.Group("/shops")
	shopGroup.Get("/all", "shops.all", shopCtl.All)
	shopGroup.Get("/details", "shops.details", shopCtl.Details, middlewares.Authenticate)
	shopGroup.Get("/{shopId}", "shops.find", shopCtl.Find)
}
