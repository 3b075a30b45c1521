// Package docs registers the OpenAPI description served at /swagger.
package docs

import (
	"strings"

	"github.com/swaggo/swag"
)

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
        "/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a user",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "register", "required": true, "schema": {"$ref": "#/definitions/RegisterInput"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Response"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/Response"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/Response"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Log in",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "login", "required": true, "schema": {"$ref": "#/definitions/LoginInput"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Response"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/Response"}}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["auth"],
                "summary": "Refresh tokens",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "refresh", "required": true, "schema": {"$ref": "#/definitions/RefreshRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Response"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["auth"],
                "summary": "Current user",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/Response"}}
                }
            }
        },
        "/companies/profile": @profile:CompanyProfile@,
        "/candidates/profile": @profile:CandidateProfile@,
        "/nbfc/profile": @profile:NBFCProfile@,
        "/candidates/calculate-buyout": {
            "post": {
                "tags": ["candidates"],
                "summary": "Notice period buyout",
                "description": "Daily salary is monthly salary / 30; buyout is daily salary times notice days.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "input", "required": true, "schema": {"$ref": "#/definitions/BuyoutInput"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Response"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/Response"}}
                }
            }
        },
        "/health": {
            "get": {
                "tags": ["system"],
                "summary": "Health check",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Response"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/Response"}}
                }
            }
        }
    },
    "definitions": {
        "Response": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "data": {},
                "error": {"$ref": "#/definitions/ErrorDetail"},
                "requestId": {"type": "string"}
            }
        },
        "ErrorDetail": {
            "type": "object",
            "properties": {
                "kind": {"type": "string", "enum": ["ValidationError", "Conflict", "Unauthorized", "Forbidden", "NotFound", "TooManyRequests", "ServiceUnavailable", "InternalError"]},
                "details": {"type": "array", "items": {"type": "string"}}
            }
        },
        "RegisterInput": {
            "type": "object",
            "required": ["email", "password", "role"],
            "properties": {
                "email": {"type": "string", "format": "email"},
                "password": {"type": "string", "minLength": 8, "maxLength": 100, "description": "At most 72 bytes; needs a digit and an uppercase letter"},
                "role": {"type": "string", "enum": ["company", "candidate", "nbfc"]}
            }
        },
        "LoginInput": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "RefreshRequest": {
            "type": "object",
            "required": ["refreshToken"],
            "properties": {"refreshToken": {"type": "string"}}
        },
        "BuyoutInput": {
            "type": "object",
            "required": ["monthlySalary", "noticePeriodDays"],
            "properties": {
                "monthlySalary": {"type": "number", "minimum": 0},
                "noticePeriodDays": {"type": "integer", "minimum": 0, "maximum": 365}
            }
        },
        "CompanyProfileInput": {
            "type": "object",
            "required": ["companyName"],
            "properties": {
                "companyName": {"type": "string", "minLength": 2, "maxLength": 200},
                "industry": {"type": "string"},
                "size": {"type": "string", "enum": ["startup", "small", "medium", "large", "enterprise"]},
                "gstin": {"type": "string", "minLength": 15, "maxLength": 15},
                "cin": {"type": "string", "minLength": 21, "maxLength": 21},
                "website": {"type": "string"},
                "phone": {"type": "string"},
                "address": {"type": "string"},
                "city": {"type": "string"},
                "state": {"type": "string"}
            }
        },
        "CompanyProfilePatch": {"$ref": "#/definitions/CompanyProfileInput"},
        "CandidateProfileInput": {
            "type": "object",
            "required": ["fullName", "phone"],
            "properties": {
                "fullName": {"type": "string", "minLength": 2, "maxLength": 100},
                "phone": {"type": "string", "minLength": 10, "maxLength": 15},
                "dateOfBirth": {"type": "string", "format": "date-time"},
                "currentCompany": {"type": "string"},
                "currentDesignation": {"type": "string"},
                "currentCtc": {"type": "number", "minimum": 0},
                "expectedCtc": {"type": "number", "minimum": 0},
                "noticePeriodDays": {"type": "integer", "minimum": 0, "maximum": 365},
                "experienceYears": {"type": "number", "minimum": 0, "maximum": 50},
                "skills": {"type": "array", "items": {"type": "string"}},
                "highestEducation": {"type": "string"},
                "preferredLocations": {"type": "array", "items": {"type": "string"}},
                "openToBuyout": {"type": "boolean"},
                "city": {"type": "string"},
                "state": {"type": "string"}
            }
        },
        "CandidateProfilePatch": {"$ref": "#/definitions/CandidateProfileInput"},
        "NBFCProfileInput": {
            "type": "object",
            "required": ["nbfcName", "licenseNumber"],
            "properties": {
                "nbfcName": {"type": "string", "minLength": 2, "maxLength": 200},
                "licenseNumber": {"type": "string", "minLength": 5, "maxLength": 50},
                "website": {"type": "string"},
                "contactPerson": {"type": "string"},
                "phone": {"type": "string"},
                "address": {"type": "string"},
                "city": {"type": "string"},
                "state": {"type": "string"},
                "interestRateMin": {"type": "number", "minimum": 0, "maximum": 100},
                "interestRateMax": {"type": "number", "minimum": 0, "maximum": 100},
                "minLoanAmount": {"type": "number", "minimum": 0},
                "maxLoanAmount": {"type": "number", "minimum": 0},
                "minTenureMonths": {"type": "integer", "minimum": 1, "maximum": 360},
                "maxTenureMonths": {"type": "integer", "minimum": 1, "maximum": 360}
            }
        },
        "NBFCProfilePatch": {"$ref": "#/definitions/NBFCProfileInput"}
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "NinetyToZero API",
	Description:      "Notice-period buyout marketplace connecting companies, candidates and NBFCs.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  expandProfilePaths(docTemplate),
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

// profilePaths is the POST/GET/PUT block shared by every profile kind.
const profilePaths = `{
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["profiles"],
                "summary": "Create the caller's @name@",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "profile", "required": true, "schema": {"$ref": "#/definitions/@name@Input"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Response"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/Response"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/Response"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/Response"}}
                }
            },
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["profiles"],
                "summary": "Get the caller's @name@",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Response"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Response"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["profiles"],
                "summary": "Update the caller's @name@; only supplied fields change",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "patch", "required": true, "schema": {"$ref": "#/definitions/@name@Patch"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Response"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/Response"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/Response"}}
                }
            }
        }`

func expandProfilePaths(tmpl string) string {
	for _, name := range []string{"CompanyProfile", "CandidateProfile", "NBFCProfile"} {
		tmpl = strings.Replace(tmpl, "@profile:"+name+"@", strings.ReplaceAll(profilePaths, "@name@", name), 1)
	}
	return tmpl
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
