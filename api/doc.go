// Package api exposes the corpus analytics engine over HTTP: hybrid search,
// temporal trends, tag co-occurrence, and corpus statistics as JSON, plus
// health and Prometheus metrics endpoints.
package api
