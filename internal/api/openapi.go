package api

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
)

func RegisterDocsHandlers(r *mux.Router) {
	r.HandleFunc("/docs/openapi.json", openAPIHandler).Methods("GET")
}

func openAPIHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write([]byte(openAPIJSON)); err != nil {
		log.Printf("Error writing OpenAPI document: %v", err)
	}
}

// Only the routes of the active variant are mounted; the document lists both.
const openAPIJSON = `{
  "openapi": "3.0.3",
  "info": {
    "title": "e-lite API",
    "description": "Personal exercise log. A deployment serves either the pushups or the exercise routes.",
    "version": "0.1.0"
  },
  "paths": {
    "/health": {
      "get": {
        "summary": "Liveness",
        "tags": ["Health"],
        "responses": {"200": {"description": "Service is up"}}
      }
    },
    "/health/db": {
      "get": {
        "summary": "Database connectivity",
        "tags": ["Health"],
        "responses": {
          "200": {"description": "Database answered select now()"},
          "503": {"description": "Database unreachable"}
        }
      }
    },
    "/pushups": {
      "post": {
        "summary": "Append a pushup record",
        "tags": ["Pushups"],
        "requestBody": {
          "required": true,
          "content": {"application/json": {"schema": {"$ref": "#/components/schemas/PushupCreate"}}}
        },
        "responses": {
          "201": {"description": "Record created"},
          "400": {"description": "Malformed JSON"},
          "422": {"description": "Validation failed"},
          "500": {"description": "Store error"}
        }
      },
      "get": {
        "summary": "List pushup records, newest first",
        "tags": ["Pushups"],
        "parameters": [
          {"name": "user_id", "in": "query", "schema": {"type": "string", "maxLength": 64}},
          {"name": "limit", "in": "query", "schema": {"type": "integer", "minimum": 1, "maximum": 500, "default": 100}}
        ],
        "responses": {
          "200": {"description": "Records", "content": {"application/json": {"schema": {"type": "object", "properties": {"ok": {"type": "boolean"}, "items": {"type": "array", "items": {"$ref": "#/components/schemas/Pushup"}}}}}}},
          "500": {"description": "Store error"}
        }
      }
    },
    "/pushups/stats": {
      "get": {
        "summary": "Aggregate pushup statistics",
        "tags": ["Pushups"],
        "parameters": [{"name": "user_id", "in": "query", "schema": {"type": "string"}}],
        "responses": {
          "200": {"description": "Stats", "content": {"application/json": {"schema": {"$ref": "#/components/schemas/PushupStats"}}}},
          "500": {"description": "Store error"}
        }
      }
    },
    "/pushups/daily": {
      "get": {
        "summary": "Reps per UTC day, zero-filled, oldest first",
        "tags": ["Pushups"],
        "parameters": [
          {"name": "user_id", "in": "query", "schema": {"type": "string"}},
          {"name": "days", "in": "query", "schema": {"type": "integer", "minimum": 1, "maximum": 365, "default": 30}}
        ],
        "responses": {
          "200": {"description": "Daily series"},
          "500": {"description": "Store error"}
        }
      }
    },
    "/exercise": {
      "post": {
        "summary": "Upsert the value for a user, exercise and day",
        "tags": ["Exercise"],
        "requestBody": {
          "required": true,
          "content": {"application/json": {"schema": {"$ref": "#/components/schemas/ExerciseEntry"}}}
        },
        "responses": {
          "201": {"description": "Saved"},
          "400": {"description": "Malformed JSON"},
          "422": {"description": "Validation failed"},
          "500": {"description": "Store error"}
        }
      },
      "get": {
        "summary": "List daily values, newest first",
        "tags": ["Exercise"],
        "parameters": [
          {"name": "user_id", "in": "query", "schema": {"type": "string"}},
          {"name": "exercise", "in": "query", "required": true, "schema": {"type": "string"}},
          {"name": "from", "in": "query", "schema": {"type": "string", "format": "date"}},
          {"name": "to", "in": "query", "schema": {"type": "string", "format": "date"}},
          {"name": "limit", "in": "query", "schema": {"type": "integer", "minimum": 1, "maximum": 3650, "default": 365}}
        ],
        "responses": {
          "200": {"description": "Entries"},
          "400": {"description": "Missing exercise or malformed date"},
          "500": {"description": "Store error"}
        }
      }
    }
  },
  "components": {
    "schemas": {
      "PushupCreate": {
        "type": "object",
        "required": ["reps"],
        "properties": {
          "user_id": {"type": "string", "minLength": 1, "maxLength": 64},
          "reps": {"type": "integer", "minimum": 1, "maximum": 10000}
        }
      },
      "Pushup": {
        "type": "object",
        "properties": {
          "id": {"type": "integer"},
          "user_id": {"type": "string"},
          "reps": {"type": "integer"},
          "created_at": {"type": "string", "format": "date-time"}
        }
      },
      "PushupStats": {
        "type": "object",
        "properties": {
          "ok": {"type": "boolean"},
          "user_id": {"type": "string"},
          "total_reps": {"type": "integer"},
          "best_reps": {"type": "integer"},
          "today_reps": {"type": "integer"},
          "records_count": {"type": "integer"}
        }
      },
      "ExerciseEntry": {
        "type": "object",
        "required": ["user_id", "exercise", "value"],
        "properties": {
          "user_id": {"type": "string", "minLength": 1, "maxLength": 64},
          "exercise": {"type": "string", "minLength": 1, "maxLength": 64},
          "value": {"type": "integer", "minimum": 0, "maximum": 100000},
          "entry_date": {"type": "string", "format": "date"}
        }
      }
    }
  }
}`
