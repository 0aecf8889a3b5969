// Package docs registers the OpenAPI document served at /docs.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {"name": "Matchday"},
        "license": {"name": "MIT"},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/": {
            "get": {
                "description": "Returns API name, version and status.",
                "produces": ["application/json"],
                "tags": ["meta"],
                "summary": "API root info",
                "responses": {"200": {"description": "OK", "schema": {"type": "object"}}}
            }
        },
        "/health": {
            "get": {
                "description": "Returns basic health status and timestamp.",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {"200": {"description": "OK", "schema": {"type": "object"}}}
            }
        },
        "/health/db": {
            "get": {
                "description": "Verifies Postgres connectivity.",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Database health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object"}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object"}}
                }
            }
        },
        "/health/cache": {
            "get": {
                "description": "Returns response cache statistics (entries per resource, dataset version, invalidations).",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Cache health check",
                "responses": {"200": {"description": "OK", "schema": {"type": "object"}}}
            }
        },
        "/matches": {
            "get": {
                "description": "Returns match summaries grouped by match date, in date order.",
                "produces": ["application/json"],
                "tags": ["matches"],
                "summary": "List matches by day",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.MatchesResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            }
        },
        "/matches/{matchID}": {
            "get": {
                "description": "Returns the full match document.",
                "produces": ["application/json"],
                "tags": ["matches"],
                "summary": "Get match",
                "parameters": [{"type": "string", "description": "Match ID", "name": "matchID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.MatchDetailResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            }
        },
        "/players/{playerID}": {
            "get": {
                "description": "Returns the player profile with match history, totals and skills.",
                "produces": ["application/json"],
                "tags": ["players"],
                "summary": "Get player",
                "parameters": [{"type": "string", "description": "Player ID", "name": "playerID", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/provider.PlayerProfile"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handler.MatchesResponse": {
            "type": "object",
            "properties": {
                "matches_by_day": {
                    "type": "object",
                    "additionalProperties": {"type": "array", "items": {"type": "object"}}
                }
            }
        },
        "handler.MatchDetailResponse": {
            "type": "object",
            "properties": {
                "match_info": {"type": "object"},
                "lineups": {"type": "object"},
                "events": {"type": "array", "items": {"type": "object"}},
                "breakdown_data": {"type": "object"}
            }
        },
        "provider.PlayerProfile": {
            "type": "object",
            "properties": {
                "_id": {"type": "string"},
                "name": {"type": "string"},
                "position": {"type": "string"},
                "shirt_number": {"type": "integer"},
                "team_id": {"type": "string"},
                "team_name": {"type": "string"},
                "is_captain": {"type": "boolean"},
                "matches_played": {"type": "array", "items": {"type": "object"}},
                "total_stats": {"type": "object"},
                "skills": {"type": "object"}
            }
        },
        "respond.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "object",
                    "properties": {
                        "code": {"type": "string"},
                        "message": {"type": "string"}
                    }
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "localhost:5000",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "Matchday Data API",
	Description:      "Read API over ingested league matches and aggregated player profiles.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
