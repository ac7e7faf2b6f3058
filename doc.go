// Package wnbrowser is a hypermedia-driven browser for a WordNet-derived
// synset and image dataset.
//
// # Overview
//
// The system consists of a REST API server and a generic console client.
// Every response from the server is a self-describing Mason document: it
// carries its own namespaces, hypermedia controls (valid state transitions)
// and, for mutating controls, the JSON schema of the expected request body.
// The console client drives the whole application purely by interpreting
// those controls; it has no built-in knowledge of any endpoint beyond the
// entry point.
//
//	┌──────────────────┐
//	│  Console client  │  generic control loop, schema-driven prompts
//	└────────┬─────────┘
//	         │ Mason documents
//	┌────────▼─────────┐
//	│   API server     │  Echo REST handlers + document builder
//	└────────┬─────────┘
//	         │
//	┌────────▼─────────┐
//	│  SQLite store    │  synsets, images, hyponym edges (cascading keys)
//	└──────────────────┘
//
// # Usage
//
// Start the API server:
//
//	wnbrowser server --config configs/config.yaml
//
// Browse the API interactively:
//
//	wnbrowser browse
//
// Populate the database from the ImageNet flat files:
//
//	wnbrowser load-db --dir ./data
//
// # API Endpoints
//
//   - GET              /api/                                        - entry point
//   - GET, POST        /api/synsets/                                - synset collection
//   - GET, PUT, DELETE /api/synsets/{wnid}/                         - synset item
//   - GET, POST        /api/synsets/{wnid}/hyponyms/                - hyponym collection
//   - GET, DELETE      /api/synsets/{wnid}/hyponyms/{hyponymWnid}/  - hyponym item
//   - GET, POST        /api/synsets/{wnid}/images/                  - synset image collection
//   - GET, PUT, DELETE /api/synsets/{wnid}/images/{imid}/           - image item
//   - GET              /api/images/                                 - all images (read-only)
//
// # Configuration
//
// Configuration can be provided via a YAML file, a .env file, or environment
// variables with the WB_ prefix:
//
//	server:
//	  host: localhost
//	  port: 8080
//	database:
//	  path: wnbrowser.db
//	client:
//	  api_url: http://localhost:8080
package wnbrowser
