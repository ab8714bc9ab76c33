// Package docs provides Swagger documentation for the API.
package docs

// @title CRM Campaign Call API
// @version 1.0
// @description Admin backend for customers, products, purchases, campaigns and call triggers
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@harhspalod.dev

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
