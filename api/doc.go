// Package api serves the store over HTTP with gin.
//
// Routes live under /api:
//
//	GET    /api/{clients,bookings,galleries,packages,referral-programs}[?q=term]
//	POST   /api/{collection}              201 {"id": "..."}
//	GET    /api/{collection}/:id          404 when absent
//	PATCH  /api/{collection}/:id          204, also when absent
//	DELETE /api/{collection}/:id          204, also when absent
//	GET    /api/clients/:id/dependents
//	GET    /api/galleries/:id/qr.png
//	POST   /api/galleries/:id/images      multipart "file", optional "title"
//	GET    /api/settings/{profile,business,notifications,system}
//	PATCH  /api/settings/{profile,business,notifications,system}
//	GET    /api/dashboard | /api/stats | /api/referrals | /api/search?q=
//	GET    /api/reminders/due
//	GET    /api/ws                        websocket change feed
//
// Updates and deletes that match nothing still answer 204: the store treats
// them as no-ops, not errors.
package api
