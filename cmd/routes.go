package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
)

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	authMiddleware := standardMiddleware.Append(app.requireSession)
	adminMiddleware := standardMiddleware.Append(app.requireRole("admin"))

	mux := pat.New()

	// Session
	mux.Post("/session", standardMiddleware.ThenFunc(app.sessionHandler.SignIn))
	mux.Post("/session/register", standardMiddleware.ThenFunc(app.sessionHandler.SignUp))
	mux.Post("/session/refresh", standardMiddleware.ThenFunc(app.sessionHandler.RefreshSession))
	mux.Get("/session", standardMiddleware.ThenFunc(app.sessionHandler.GetSession))
	mux.Del("/session", standardMiddleware.ThenFunc(app.sessionHandler.SignOut))

	// Search
	mux.Get("/search", standardMiddleware.ThenFunc(app.searchHandler.GetResults))
	mux.Post("/search/filters", standardMiddleware.ThenFunc(app.searchHandler.UpdateFilters))
	mux.Post("/search/more", standardMiddleware.ThenFunc(app.searchHandler.LoadMore))
	mux.Post("/location", standardMiddleware.ThenFunc(app.searchHandler.UpdateLocation))

	// Services
	mux.Get("/services/:id", standardMiddleware.ThenFunc(app.serviceHandler.GetServiceByID))
	mux.Post("/services/request", authMiddleware.ThenFunc(app.serviceHandler.CreateServiceRequest))

	// Reviews and complaints
	mux.Post("/reviews", authMiddleware.ThenFunc(app.reviewHandler.CreateReview))
	mux.Post("/complaints", authMiddleware.ThenFunc(app.complaintHandler.CreateComplaint))

	// Notifications
	mux.Get("/notifications", authMiddleware.ThenFunc(app.notificationHandler.GetNotifications))
	mux.Get("/events", standardMiddleware.ThenFunc(app.notificationHandler.GetEvents))

	// Admin
	mux.Get("/admin/applications", adminMiddleware.ThenFunc(app.applicationHandler.ListApplications))
	mux.Post("/admin/applications/:id", adminMiddleware.ThenFunc(app.applicationHandler.ResolveApplication))

	return mux
}
