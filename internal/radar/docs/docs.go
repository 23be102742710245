// Package docs holds the OpenAPI description served under /swagger.
// Regenerate with: swag init -g cmd/radar-service/main.go -o internal/radar/docs
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
        "/news": {
            "get": {
                "description": "Load the active corpus and score every article",
                "produces": ["application/json"],
                "tags": ["radar"],
                "summary": "List scored news",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/entity.ScoredArticle"}}}
                }
            }
        },
        "/dashboard_data": {
            "get": {
                "produces": ["application/json"],
                "tags": ["radar"],
                "summary": "Get dashboard metrics",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entity.DashboardMetrics"}}
                }
            }
        },
        "/alerts": {
            "get": {
                "produces": ["application/json"],
                "tags": ["radar"],
                "summary": "List alerts",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/entity.Alert"}}}
                }
            }
        },
        "/pipeline": {
            "get": {
                "description": "Returns scored news, alerts, dashboard metrics, the risk briefing and the market report",
                "produces": ["application/json"],
                "tags": ["radar"],
                "summary": "Run the full pipeline",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entity.PipelineResult"}}
                }
            }
        },
        "/generate_brief": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["radar"],
                "summary": "Generate a briefing for one article",
                "parameters": [
                    {"description": "Article to brief", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.GenerateBriefRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.GenerateBriefResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/data_source": {
            "get": {
                "produces": ["application/json"],
                "tags": ["radar"],
                "summary": "Describe the active data source",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SourceInfo"}}
                }
            }
        },
        "/sentiment": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["radar"],
                "summary": "Score ad-hoc text",
                "parameters": [
                    {"description": "Text to score", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.SentimentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entity.SentimentResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/status": {
            "get": {
                "produces": ["application/json"],
                "tags": ["radar"],
                "summary": "Get component status",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.StatusResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "dto.GenerateBriefRequest": {
            "type": "object",
            "properties": {
                "news_content": {"type": "string"},
                "news_id": {"type": "integer"},
                "news_title": {"type": "string"},
                "stock_code": {"type": "string"},
                "stock_name": {"type": "string"}
            }
        },
        "dto.GenerateBriefResponse": {
            "type": "object",
            "properties": {
                "brief_content": {"type": "string"},
                "brief_title": {"type": "string"},
                "generated_time": {"type": "string"},
                "news_id": {"type": "integer"}
            }
        },
        "dto.SentimentRequest": {
            "type": "object",
            "properties": {
                "content": {"type": "string"},
                "title": {"type": "string"}
            }
        },
        "dto.SourceInfo": {
            "type": "object",
            "properties": {
                "article_count": {"type": "integer"},
                "modified": {"type": "string"},
                "path": {"type": "string"},
                "reason": {"type": "string"},
                "size": {"type": "string"},
                "timestamp": {"type": "string"},
                "used_seed": {"type": "boolean"}
            }
        },
        "dto.StatusResponse": {
            "type": "object",
            "properties": {
                "analyzer": {
                    "type": "object",
                    "properties": {
                        "analyzed_count": {"type": "integer"},
                        "method": {"type": "string"}
                    }
                },
                "generator": {
                    "type": "object",
                    "properties": {
                        "generated_count": {"type": "integer"},
                        "last_generated": {"type": "string"}
                    }
                },
                "source": {"$ref": "#/definitions/dto.SourceInfo"}
            }
        },
        "entity.Alert": {
            "type": "object",
            "properties": {
                "confidence": {"type": "number"},
                "id": {"type": "integer"},
                "publish_time": {"type": "string"},
                "sentiment_score": {"type": "number"},
                "stock_code": {"type": "string"},
                "title": {"type": "string"}
            }
        },
        "entity.DashboardMetrics": {
            "type": "object",
            "properties": {
                "alert_count": {"type": "integer"},
                "avg_confidence": {"type": "number"},
                "high_risk": {"type": "integer"},
                "keyword_hits": {"type": "integer"},
                "medium_risk": {"type": "integer"},
                "risk_news_count": {"type": "integer"},
                "risk_ratio": {"type": "number"},
                "total_news": {"type": "integer"},
                "update_time": {"type": "string"}
            }
        },
        "entity.KeywordCounts": {
            "type": "object",
            "properties": {
                "neutral": {"type": "integer"},
                "positive": {"type": "integer"},
                "risk": {"type": "integer"},
                "total": {"type": "integer"}
            }
        },
        "entity.PipelineResult": {
            "type": "object",
            "properties": {
                "alerts": {"type": "array", "items": {"$ref": "#/definitions/entity.Alert"}},
                "dashboard": {"$ref": "#/definitions/entity.DashboardMetrics"},
                "market_report": {"type": "string"},
                "news": {"type": "array", "items": {"$ref": "#/definitions/entity.ScoredArticle"}},
                "risk_brief": {"type": "string"},
                "run_id": {"type": "string"}
            }
        },
        "entity.ScoredArticle": {
            "type": "object",
            "properties": {
                "alert": {"type": "boolean"},
                "confidence": {"type": "number"},
                "content": {"type": "string"},
                "id": {"type": "integer"},
                "is_risk": {"type": "boolean"},
                "keyword_counts": {"$ref": "#/definitions/entity.KeywordCounts"},
                "publish_time": {"type": "string"},
                "score_bucket": {"type": "string", "enum": ["high-risk", "medium-risk", "neutral", "positive"]},
                "sentiment_label": {"type": "string", "enum": ["risk", "positive", "neutral"]},
                "sentiment_score": {"type": "number"},
                "source": {"type": "string"},
                "stock_code": {"type": "string"},
                "stock_industry": {"type": "string"},
                "stock_name": {"type": "string"},
                "title": {"type": "string"}
            }
        },
        "entity.SentimentResult": {
            "type": "object",
            "properties": {
                "analysis_time": {"type": "string"},
                "confidence": {"type": "number"},
                "error": {"type": "string"},
                "keyword_counts": {"$ref": "#/definitions/entity.KeywordCounts"},
                "method": {"type": "string"},
                "sentiment_label": {"type": "string", "enum": ["risk", "positive", "neutral"]},
                "sentiment_score": {"type": "number"},
                "success": {"type": "boolean"},
                "text": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Market Risk Radar API",
	Description:      "Scores market news for risk, aggregates alerts and renders briefings.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
