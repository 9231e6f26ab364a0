// Package docs holds the OpenAPI description served at /swagger/doc.json.
// Regenerate with `swag init -g cmd/server/main.go`.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/matches/today": {
            "get": {
                "description": "Live providers are tried in order; sample matchups are served when none answer",
                "produces": ["application/json"],
                "tags": ["Matches"],
                "summary": "Today's matchups",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/models.TodayMatches"}}}
            }
        },
        "/api/v1/matches/today/warm": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Matches"],
                "summary": "Warm the cache for today's players",
                "responses": {
                    "202": {"description": "Accepted", "schema": {"type": "object", "additionalProperties": true}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/players/{name}/metrics": {
            "get": {
                "description": "Overall and per-surface averages over the player's most recent matches",
                "produces": ["application/json"],
                "tags": ["Players"],
                "summary": "Player metrics",
                "parameters": [
                    {"type": "string", "description": "Player name", "name": "name", "in": "path", "required": true},
                    {"type": "string", "description": "Hard, Clay, Grass or Indoor", "name": "surface", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.AggregateMetrics"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/players/{name}/refresh": {
            "post": {
                "produces": ["application/json"],
                "tags": ["Players"],
                "summary": "Refresh player history",
                "parameters": [
                    {"type": "string", "description": "Player name", "name": "name", "in": "path", "required": true},
                    {"type": "boolean", "description": "Queue the refresh instead of waiting", "name": "async", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.RefreshResponse"}},
                    "202": {"description": "Accepted", "schema": {"type": "object", "additionalProperties": true}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Queue full", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/predict": {
            "get": {
                "description": "Weighted comparison of win rate, aces, efficiency and consistency",
                "produces": ["application/json"],
                "tags": ["Predictions"],
                "summary": "Predict a match",
                "parameters": [
                    {"type": "string", "description": "First player", "name": "player1", "in": "query", "required": true},
                    {"type": "string", "description": "Second player", "name": "player2", "in": "query", "required": true},
                    {"type": "string", "description": "Hard, Clay, Grass or Indoor", "name": "surface", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Prediction"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/predict/today": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Predictions"],
                "summary": "Predict today's matchups",
                "parameters": [
                    {"type": "string", "description": "Overrides each matchup's surface", "name": "surface", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.TodayPrediction"}}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/api/v1/predictions/history": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Predictions"],
                "summary": "Prediction history",
                "parameters": [
                    {"type": "string", "description": "Either side of the matchup", "name": "player", "in": "query"},
                    {"type": "string", "description": "Hard, Clay, Grass or Indoor", "name": "surface", "in": "query"},
                    {"type": "string", "description": "RFC 3339 timestamp", "name": "since", "in": "query"},
                    {"type": "integer", "description": "At most 1000, default 50", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.LoggedPrediction"}}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["System"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}}
            }
        },
        "/ready": {
            "get": {
                "description": "Pings the configured store and prediction log",
                "produces": ["application/json"],
                "tags": ["System"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}},
                    "503": {"description": "Service Unavailable", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        }
    },
    "definitions": {
        "models.MetricSet": {
            "type": "object",
            "properties": {
                "available": {"type": "boolean"},
                "matches": {"type": "integer"},
                "win_rate": {"type": "number", "x-nullable": true},
                "avg_aces": {"type": "number", "x-nullable": true},
                "avg_games": {"type": "number", "x-nullable": true},
                "avg_sets": {"type": "number", "x-nullable": true},
                "avg_double_faults": {"type": "number", "x-nullable": true},
                "avg_winners": {"type": "number", "x-nullable": true},
                "avg_tiebreaks": {"type": "number", "x-nullable": true},
                "aces_std_dev": {"type": "number", "x-nullable": true}
            }
        },
        "models.AggregateMetrics": {
            "type": "object",
            "properties": {
                "player": {"type": "string"},
                "overall": {"$ref": "#/definitions/models.MetricSet"},
                "by_surface": {"type": "object", "additionalProperties": {"$ref": "#/definitions/models.MetricSet"}},
                "surface": {"type": "string", "enum": ["Hard", "Clay", "Grass", "Indoor"]},
                "surface_metrics": {"$ref": "#/definitions/models.MetricSet"}
            }
        },
        "models.Factor": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "weight": {"type": "number"},
                "value": {"type": "number"},
                "neutral": {"type": "boolean"}
            }
        },
        "models.Prediction": {
            "type": "object",
            "properties": {
                "player1": {"type": "string"},
                "player2": {"type": "string"},
                "surface": {"type": "string", "enum": ["Hard", "Clay", "Grass", "Indoor"]},
                "favorite": {"type": "string"},
                "win_probability_p1": {"type": "number"},
                "win_probability_p2": {"type": "number"},
                "confidence": {"type": "number"},
                "factors": {"type": "array", "items": {"$ref": "#/definitions/models.Factor"}},
                "player1_scope": {"type": "string", "enum": ["overall", "surface"]},
                "player2_scope": {"type": "string", "enum": ["overall", "surface"]},
                "generated_at": {"type": "string"}
            }
        },
        "models.MatchPairing": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "player1": {"type": "string"},
                "player2": {"type": "string"},
                "surface": {"type": "string", "enum": ["Hard", "Clay", "Grass", "Indoor"]},
                "tournament": {"type": "string"},
                "start_time": {"type": "string"},
                "source": {"type": "string"}
            }
        },
        "models.TodayMatches": {
            "type": "object",
            "properties": {
                "date": {"type": "string"},
                "source": {"type": "string"},
                "fallback": {"type": "boolean"},
                "matches": {"type": "array", "items": {"$ref": "#/definitions/models.MatchPairing"}}
            }
        },
        "models.TodayPrediction": {
            "type": "object",
            "properties": {
                "match": {"$ref": "#/definitions/models.MatchPairing"},
                "prediction": {"$ref": "#/definitions/models.Prediction"},
                "error": {"type": "string"}
            }
        },
        "models.LoggedPrediction": {
            "type": "object",
            "properties": {
                "generated_at": {"type": "string"},
                "player1": {"type": "string"},
                "player2": {"type": "string"},
                "surface": {"type": "string"},
                "favorite": {"type": "string"},
                "win_probability_p1": {"type": "number"},
                "win_probability_p2": {"type": "number"},
                "confidence": {"type": "number"},
                "player1_scope": {"type": "string", "enum": ["overall", "surface"]},
                "player2_scope": {"type": "string", "enum": ["overall", "surface"]}
            }
        },
        "models.RefreshResponse": {
            "type": "object",
            "properties": {
                "player": {"type": "string"},
                "matches": {"type": "integer"},
                "source": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Tennis Stats API",
	Description:      "Head-to-head win probabilities from recent match history.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
