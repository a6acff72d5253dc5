package main

import (
	"context"
	"log"
	"strings"

	"terreiro-backend/internal/audit"
	"terreiro-backend/internal/auth"
	"terreiro-backend/internal/caixa"
	"terreiro-backend/internal/cantigas"
	"terreiro-backend/internal/config"
	"terreiro-backend/internal/database"
	"terreiro-backend/internal/estoque"
	"terreiro-backend/internal/eventos"
	"terreiro-backend/internal/live"
	"terreiro-backend/internal/mensalidades"
	"terreiro-backend/internal/models"
	"terreiro-backend/internal/mural"
	"terreiro-backend/internal/seed"
	"terreiro-backend/internal/youtube"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	// Motor do dashboard: assina as coleções e publica o estado derivado
	// pelo hub websocket a cada mudança.
	bus := live.NewBus()
	hub := live.NewHub()
	engine := live.NewEngine(database.DB, bus, hub)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)
	engine.Start()
	defer engine.Stop()

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Erro inesperado:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Erro inesperado no servidor",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Público
	api.Post("/auth/register", auth.RegisterHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Autenticado
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	// Dashboard ao vivo
	protected.Get("/dashboard", live.DashboardHandler(engine))
	protected.Get("/dashboard/cash-chart", live.CashChartHandler(engine))
	protected.Use("/dashboard/live", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	protected.Get("/dashboard/live", websocket.New(hub.Serve(engine)))

	// Caixa
	protected.Get("/cash-transactions", caixa.ListTransactionsHandler())
	protected.Get("/cash-transactions/export", caixa.ExportTransactionsHandler())
	protected.Post("/cash-transactions", caixa.CreateTransactionHandler(bus))

	// Mensalidades
	protected.Get("/memberships", mensalidades.ListMembershipsHandler())
	protected.Get("/memberships/summary", mensalidades.MembershipSummaryHandler())
	protected.Post("/memberships", mensalidades.CreateMembershipHandler(bus))
	protected.Post("/memberships/ensure-month", mensalidades.EnsureMonthHandler(bus))
	protected.Post("/memberships/:id/toggle", mensalidades.ToggleMembershipHandler(bus))

	// Estoque
	protected.Get("/stock-items", estoque.ListItemsHandler())
	protected.Post("/stock-items/:id/adjust", estoque.AdjustQuantityHandler(bus))

	// Eventos
	protected.Get("/events", eventos.ListEventsHandler())

	// Cantigas
	protected.Get("/cantigas", cantigas.ListCantigasHandler())

	// Mural: recados e tarefas
	protected.Get("/focus-notes", mural.ListFocusNotesHandler())
	protected.Post("/focus-notes", mural.CreateFocusNoteHandler(bus))
	protected.Get("/action-items", mural.ListActionItemsHandler())
	protected.Post("/action-items", mural.CreateActionItemHandler(bus))
	protected.Put("/action-items/:id/status", mural.UpdateActionStatusHandler(bus))

	// Busca de áudios
	protected.Get("/youtube/search", youtube.SearchHandler(cfg))

	// Trilha de auditoria
	protected.Get("/audit-logs", audit.ListAuditLogsHandler())

	// Rotas restritas a MASTER (o servidor é quem manda, o disable de
	// botão no front é só cosmético)
	master := protected.Group("")
	master.Use(auth.RequireRole(models.RoleMaster))

	master.Get("/users", auth.ListUsersHandler())
	master.Put("/users/:id/approve", auth.ApproveUserHandler())
	master.Put("/users/:id/role", auth.UpdateRoleHandler())

	master.Put("/cash-transactions/:id", caixa.UpdateTransactionHandler(bus))
	master.Delete("/cash-transactions/:id", caixa.DeleteTransactionHandler(bus))
	master.Delete("/cash-transactions", caixa.ClearTransactionsHandler(bus))

	master.Put("/memberships/:id", mensalidades.UpdateMembershipHandler(bus))
	master.Delete("/memberships/:id", mensalidades.DeleteMembershipHandler(bus))
	master.Post("/memberships/reset", mensalidades.ResetMembershipsHandler(bus))

	master.Post("/stock-items", estoque.CreateItemHandler(bus))
	master.Put("/stock-items/:id", estoque.UpdateItemHandler(bus))
	master.Delete("/stock-items/:id", estoque.DeleteItemHandler(bus))
	master.Delete("/stock-items", estoque.ClearItemsHandler(bus))

	master.Post("/events", eventos.CreateEventHandler(bus))
	master.Put("/events/:id", eventos.UpdateEventHandler(bus))
	master.Delete("/events/:id", eventos.DeleteEventHandler(bus))

	master.Post("/cantigas", cantigas.CreateCantigaHandler(bus))
	master.Put("/cantigas/:id", cantigas.UpdateCantigaHandler(bus))
	master.Delete("/cantigas/:id", cantigas.DeleteCantigaHandler(bus))

	master.Delete("/action-items/:id", mural.DeleteActionItemHandler(bus))

	master.Post("/seed", seed.SeedBaseDataHandler(bus))

	log.Println("Servidor rodando na porta:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
