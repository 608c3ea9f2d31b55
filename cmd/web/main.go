// @title           Recipe Book API
// @version         1.0
// @description     Recipe management backend with token authentication.
// @host            localhost:4000
// @BasePath        /api/v1
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
// @description     Type "Bearer <token>"

package main

import (
	"recipebook_backend/internal/app"

	_ "recipebook_backend/docs"
)

func main() {
	app.Run()
}
