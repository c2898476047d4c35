package graphql

import "net/http"

//go:generate mockgen -source=doer.go -destination=mock_graphql/mock_doer.go -package=mock_graphql
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}
