// Package docs registers the OpenAPI document served under /swagger/.
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
        "/nft/session": {
            "get": {
                "description": "Returns the native currency and the connected account (empty when disconnected)",
                "produces": ["application/json"],
                "tags": ["nft"],
                "summary": "Get session surface",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.SessionResponse"}}
                }
            }
        },
        "/nft/session/qr": {
            "get": {
                "description": "Returns a PNG QR code of the connected account",
                "produces": ["image/png"],
                "tags": ["nft"],
                "summary": "Account QR code",
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/nft/wallet/check": {
            "post": {
                "description": "Loads an already-authorized account without prompting the user",
                "produces": ["application/json"],
                "tags": ["nft"],
                "summary": "Check wallet connection",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.WalletResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/nft/wallet/connect": {
            "post": {
                "description": "Asks the wallet to authorize the marketplace and resynchronizes the session",
                "produces": ["application/json"],
                "tags": ["nft"],
                "summary": "Connect wallet",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.WalletResponse"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        },
        "/nft/upload": {
            "post": {
                "description": "Stores the multipart \"file\" field on IPFS and returns its gateway URL",
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["nft"],
                "summary": "Upload file to IPFS",
                "parameters": [
                    {"type": "file", "description": "File to upload", "name": "file", "in": "formData", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.UploadResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/model.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/model.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "model.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "error": {"type": "string"}
            }
        },
        "model.SessionResponse": {
            "type": "object",
            "properties": {
                "chainId": {"type": "string"},
                "checksumAccount": {"type": "string"},
                "connected": {"type": "boolean"},
                "currentAccount": {"type": "string"},
                "nftCurrency": {"type": "string"},
                "shortAccount": {"type": "string"},
                "walletInstalled": {"type": "boolean"}
            }
        },
        "model.UploadResponse": {
            "type": "object",
            "properties": {
                "url": {"type": "string"}
            }
        },
        "model.WalletResponse": {
            "type": "object",
            "properties": {
                "account": {"type": "string"},
                "shortAccount": {"type": "string"}
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
	Title:            "NFT Marketplace API",
	Description:      "Wallet session and IPFS upload service for the NFT marketplace.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
