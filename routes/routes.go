package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Dosada05/cartola-league/handlers"
)

func SetupRoutes(
	router *chi.Mux,
	ledgerHandler *handlers.LedgerHandler,
	bracketHandler *handlers.BracketHandler,
	monthlyHandler *handlers.MonthlyHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Route("/leagues/{leagueID}", func(r chi.Router) {
		r.Get("/standings", ledgerHandler.GetStandingsHandler)

		r.Route("/participants/{teamID}", func(r chi.Router) {
			r.Get("/ledger", ledgerHandler.GetStatementHandler)
			r.Post("/ledger/export", ledgerHandler.ExportStatementHandler)
			r.Put("/adjustments/{slot}", ledgerHandler.UpdateAdjustmentHandler)
			r.Delete("/cache/{round}", ledgerHandler.InvalidateRoundHandler)
		})

		r.Route("/editions/{editionID}", func(r chi.Router) {
			r.Get("/bracket", bracketHandler.GetBracketHandler)
			r.Post("/bracket/export", bracketHandler.ExportBracketHandler)
		})

		r.Get("/monthly", monthlyHandler.ListHandler)
		r.Get("/monthly/{editionID}", monthlyHandler.GetByIDHandler)
	})

	router.Get("/ws/leagues/{leagueID}", webSocketHandler.ServeWs)
}
