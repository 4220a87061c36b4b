package handlers

// @title Customers API
// @version 1.0
// @description CRUD service for customer records backed by a document store

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:3000
// @BasePath /

// @tag.name customers
// @tag.description Customer management operations

// @tag.name system
// @tag.description Root and health endpoints
