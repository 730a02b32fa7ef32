package rest

const (
	// api
	RouteApi = "/api"

	// users, all relative to RouteUsers and gated on su_full
	RouteUsers      = RouteApi + "/users"
	RouteFromEmail  = "/from-email/:email"
	RouteFromID     = "/from-id/:id"
	RouteListUsers  = "/list-users"
	RouteCreateUser = "/create-user"
	RouteByToken    = "/:token"
	RouteDelete     = "/delete/:token"
	RouteDisable    = "/disable/:token"
	RouteResetToken = "/reset-token/:token"

	// ops
	RouteHealth  = RouteApi + "/healthz"
	RouteMetrics = RouteApi + "/metrics"
)
