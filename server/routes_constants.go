package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	RouteIndex    = "/"
	RouteLogin    = "/auth/login"
	RouteLogout   = "/auth/logout"
	RouteCallback = "/callback"
	RouteReport   = "/report"
)
