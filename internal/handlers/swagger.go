package handlers

// @title Sample Echo API
// @version 1.0.0
// @description Echoes the form fields, query arguments and JSON body of a request

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @BasePath /

// @tag.name echo
// @tag.description Request introspection

// @tag.name health
// @tag.description Liveness probe
